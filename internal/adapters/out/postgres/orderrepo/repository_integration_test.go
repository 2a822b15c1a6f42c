package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	catalog    pgtest.Catalog
	repository *orderrepo.GormOrderRepository
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	c, err := suite.pg.SeedCatalog()
	suite.Require().NoError(err)
	suite.catalog = c
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB)
	suite.now = time.Date(2025, 12, 18, 10, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) placedOrder() *order.Order {
	c, err := cart.New(kernel.NewUUID(), suite.catalog.CustomerID)
	suite.Require().NoError(err)

	fee := decimal.RequireFromString("2.50")
	vendor := &catalog.Vendor{ID: suite.catalog.VendorID, OwnerID: suite.catalog.OwnerID, BaseDeliveryFee: &fee}
	product := catalog.Product{
		ID:       suite.catalog.ProductID,
		VendorID: suite.catalog.VendorID,
		Name:     "Falafel wrap",
		Price:    decimal.RequireFromString("10.00"),
		IsActive: true,
	}
	_, err = c.AddItem(product, vendor, 3)
	suite.Require().NoError(err)
	addressID := suite.catalog.AddressID
	suite.Require().NoError(c.SetFulfillment(kernel.FulfillmentDelivery, &addressID))

	o, err := order.Place(kernel.NewUUID(), c, suite.now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) statusTrail(id kernel.UUID) []orderrepo.StatusEventDTO {
	var events []orderrepo.StatusEventDTO
	suite.Require().NoError(suite.pg.DB.Where("order_id = ?", id.Bytes()).Order("id").Find(&events).Error)
	return events
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsItemsTotalsAndPlacementEvent() {
	ctx := context.Background()
	o := suite.placedOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PendingVendorConfirm, stored.Status())
	suite.Equal(suite.catalog.CustomerID, stored.CustomerID())
	suite.Equal(suite.catalog.AddressID, *stored.AddressID())
	suite.True(decimal.RequireFromString("32.50").Equal(stored.Totals().Total))
	suite.Require().Len(stored.Items(), 1)
	suite.Equal(3, stored.Items()[0].Quantity)
	suite.Equal("Falafel wrap", stored.Items()[0].Name)
	suite.Equal(suite.catalog.ProductID, *stored.Items()[0].ProductID)

	events := suite.statusTrail(o.ID())
	suite.Require().Len(events, 1)
	suite.Equal(order.PendingVendorConfirm.String(), events[0].Status)
	suite.Equal("placed", events[0].Note)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsOneEventPerTransition() {
	ctx := context.Background()
	o := suite.placedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	owner := suite.catalog.OwnerID
	suite.Require().NoError(o.Confirm(owner, suite.now.Add(time.Minute)))
	suite.Require().NoError(o.MarkReady(owner, suite.now.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForDelivery, stored.Status())

	events := suite.statusTrail(o.ID())
	suite.Require().Len(events, 3)
	suite.Equal(order.VendorConfirmed.String(), events[1].Status)
	suite.Equal(order.ReadyForDelivery.String(), events[2].Status)
	suite.Equal(owner.Bytes(), *events[2].CausedBy)

	// Events already written are not written again.
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Len(suite.statusTrail(o.ID()), 3)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StoresLockedAtWhenReady() {
	ctx := context.Background()
	o := suite.placedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	readyAt := suite.now.Add(10 * time.Minute)
	suite.Require().NoError(o.Confirm(suite.catalog.OwnerID, suite.now))
	suite.Require().NoError(o.MarkReady(suite.catalog.OwnerID, readyAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsOpenForBids())
	suite.Require().NotNil(stored.LockedAt())
	suite.True(readyAt.Equal(*stored.LockedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o, err := suite.catalog.Order(order.ReadyForDelivery, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksSecondLocker() {
	ctx := context.Background()
	o, err := suite.catalog.Order(order.ReadyForDelivery, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first := suite.pg.DB.Begin()
	defer first.Rollback()
	_, err = orderrepo.NewGormOrderRepository(first).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	acquired := make(chan *order.Order, 1)
	go func() {
		second := suite.pg.DB.Begin()
		defer second.Rollback()
		locked, lockErr := orderrepo.NewGormOrderRepository(second).GetForUpdate(ctx, o.ID())
		if lockErr != nil {
			acquired <- nil
			return
		}
		acquired <- locked
	}()

	select {
	case <-acquired:
		suite.Fail("second transaction acquired the row lock while the first held it")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(o.AssignDriver(suite.catalog.CustomerID, suite.now))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(first).Update(ctx, o))
	suite.Require().NoError(first.Commit().Error)

	select {
	case locked := <-acquired:
		suite.Require().NotNil(locked)
		suite.Equal(order.DriverAssigned, locked.Status())
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never acquired the row lock")
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
