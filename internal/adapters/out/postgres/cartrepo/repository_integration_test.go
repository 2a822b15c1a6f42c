package cartrepo_test

import (
	"context"
	"sync"
	"testing"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	catalog    pgtest.Catalog
	repository *cartrepo.GormCartRepository
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	c, err := suite.pg.SeedCatalog()
	suite.Require().NoError(err)
	suite.catalog = c
	suite.repository = cartrepo.NewGormCartRepository(suite.pg.DB)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *CartRepositoryIntegrationTestSuite) vendor() *catalog.Vendor {
	fee := decimal.RequireFromString("2.50")
	return &catalog.Vendor{ID: suite.catalog.VendorID, OwnerID: suite.catalog.OwnerID, BaseDeliveryFee: &fee}
}

func (suite *CartRepositoryIntegrationTestSuite) product(id kernel.UUID, name, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		VendorID: suite.catalog.VendorID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetOrCreate_ReturnsSameCart() {
	ctx := context.Background()

	first, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	suite.True(first.IsEmpty())
	suite.Equal(kernel.FulfillmentDelivery, first.Fulfillment())

	second, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), second.ID())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetOrCreate_ConcurrentFirstAccess() {
	ctx := context.Background()
	owner := kernel.NewUUID()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[kernel.UUID]struct{}{}
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := suite.pg.DB.Begin()
			c, err := cartrepo.NewGormCartRepository(tx).GetOrCreate(ctx, owner)
			if err != nil {
				tx.Rollback()
				return
			}
			tx.Commit()
			mu.Lock()
			ids[c.ID()] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	suite.Len(ids, 1)
	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&cartrepo.CartDTO{}).Where("owner_id = ?", owner.Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ReplacesItemsInOrder() {
	ctx := context.Background()
	secondProductID := kernel.NewUUID()
	suite.Require().NoError(suite.pg.Product(secondProductID, suite.catalog.VendorID, "Hummus", decimal.RequireFromString("4.00"), nil))

	c, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	wrap, err := c.AddItem(suite.product(suite.catalog.ProductID, "Falafel wrap", "10.00"), suite.vendor(), 1)
	suite.Require().NoError(err)
	_, err = c.AddItem(suite.product(secondProductID, "Hummus", "4.00"), suite.vendor(), 2)
	suite.Require().NoError(err)
	addressID := suite.catalog.AddressID
	suite.Require().NoError(c.SetFulfillment(kernel.FulfillmentDelivery, &addressID))
	suite.Require().NoError(suite.repository.Save(ctx, c))

	stored, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	suite.Require().Len(stored.Items(), 2)
	suite.Equal("Falafel wrap", stored.Items()[0].Name())
	suite.Equal("Hummus", stored.Items()[1].Name())
	suite.Equal(2, stored.Items()[1].Quantity())
	suite.Equal(suite.catalog.VendorID, *stored.VendorID())
	suite.Equal(suite.catalog.AddressID, *stored.AddressID())
	suite.True(decimal.RequireFromString("23.00").Equal(stored.Pricing().Total))

	suite.Require().NoError(stored.RemoveItem(wrap.ID()))
	suite.Require().NoError(suite.repository.Save(ctx, stored))

	reloaded, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	suite.Require().Len(reloaded.Items(), 1)
	suite.Equal("Hummus", reloaded.Items()[0].Name())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ClearResetsVendor() {
	ctx := context.Background()

	c, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	_, err = c.AddItem(suite.product(suite.catalog.ProductID, "Falafel wrap", "10.00"), suite.vendor(), 1)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, c))

	c.Clear()
	suite.Require().NoError(suite.repository.Save(ctx, c))

	stored, err := suite.repository.GetOrCreate(ctx, suite.catalog.CustomerID)
	suite.Require().NoError(err)
	suite.True(stored.IsEmpty())
	suite.Nil(stored.VendorID())
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
