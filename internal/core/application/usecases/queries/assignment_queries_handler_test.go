package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/assignmentrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type AssignmentQueriesHandlerTestSuite struct {
	suite.Suite
	pg             *pgtest.Database
	catalog        pgtest.Catalog
	now            time.Time
	assignmentRepo *assignmentrepo.GormAssignmentRepository

	driverID     kernel.UUID
	assignmentID kernel.UUID
}

func (suite *AssignmentQueriesHandlerTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.assignmentRepo = assignmentrepo.NewGormAssignmentRepository(pg.DB)
}

func (suite *AssignmentQueriesHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.now = time.Date(2025, 12, 18, 12, 0, 0, 0, time.UTC)

	c, err := suite.pg.SeedCatalog()
	suite.Require().NoError(err)
	suite.catalog = c

	suite.driverID = kernel.NewUUID()
	suite.assignmentID = suite.assignedOrder(c)
}

func (suite *AssignmentQueriesHandlerTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AssignmentQueriesHandlerTestSuite) assignedOrder(c pgtest.Catalog) kernel.UUID {
	ctx := context.Background()
	o, err := c.Order(order.DriverAssigned, suite.now.Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.pg.DB).Add(ctx, o))

	a, err := assignment.New(kernel.NewUUID(), o.ID(), suite.driverID, suite.now.Add(-30*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignmentRepo.Add(ctx, a))
	return a.ID()
}

func (suite *AssignmentQueriesHandlerTestSuite) record(assignmentID kernel.UUID, lat, lng float64, at time.Time) {
	location, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	p, err := assignment.NewTrackingPoint(assignmentID, location, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignmentRepo.AddTrackingPoint(context.Background(), p))
}

func (suite *AssignmentQueriesHandlerTestSuite) caps(id kernel.UUID, vendors []kernel.UUID, roles ...actor.Role) actor.Capabilities {
	c, err := actor.NewCapabilities(id, roles, vendors)
	suite.Require().NoError(err)
	return c
}

func (suite *AssignmentQueriesHandlerTestSuite) customer() actor.Capabilities {
	return suite.caps(suite.catalog.CustomerID, nil, actor.RoleCustomer)
}

func (suite *AssignmentQueriesHandlerTestSuite) tracking(
	caller actor.Capabilities,
	assignmentID kernel.UUID,
) (queries.Tracking, error) {
	query, err := queries.NewGetTrackingQuery(caller, assignmentID)
	suite.Require().NoError(err)
	return queries.NewGetTrackingQueryHandler(suite.pg.DB).Handle(context.Background(), query)
}

func (suite *AssignmentQueriesHandlerTestSuite) navigation(
	caller actor.Capabilities,
	assignmentID kernel.UUID,
) (queries.NavigationLinks, error) {
	query, err := queries.NewGetNavigationLinksQuery(caller, assignmentID)
	suite.Require().NoError(err)
	return queries.NewGetNavigationLinksQueryHandler(suite.pg.DB).Handle(context.Background(), query)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestTracking_NoPointsYet() {
	got, err := suite.tracking(suite.customer(), suite.assignmentID)
	suite.Require().NoError(err)

	suite.Equal(suite.assignmentID, got.AssignmentID)
	suite.Equal(order.DriverAssigned, got.Status)
	suite.Nil(got.LatestPoint)
	suite.Nil(got.ETAMinutes)
	suite.Empty(got.Trail)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestTracking_TrailIsNewestFirstAndCapped() {
	for i := range 25 {
		suite.record(suite.assignmentID, 52.52+float64(i)*0.0001, 13.405, suite.now.Add(time.Duration(i)*time.Second))
	}

	got, err := suite.tracking(suite.customer(), suite.assignmentID)
	suite.Require().NoError(err)

	suite.Require().Len(got.Trail, assignment.TrailLength)
	suite.Equal(suite.now.Add(24*time.Second), got.Trail[0].CapturedAt)
	suite.Equal(suite.now.Add(5*time.Second), got.Trail[assignment.TrailLength-1].CapturedAt)

	suite.Require().NotNil(got.LatestPoint)
	suite.Equal(got.Trail[0], *got.LatestPoint)
	suite.InDelta(52.5224, got.LatestPoint.Location.Lat(), 1e-6)

	suite.Require().NotNil(got.ETAMinutes)
	suite.Equal(assignment.EstimateETAMinutes(got.LatestPoint.Location, suite.catalog.AddressLocation), *got.ETAMinutes)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestTracking_ETAFallsBackToVendor() {
	addressID := kernel.NewUUID()
	suite.Require().NoError(suite.pg.Address(addressID, &suite.catalog.CustomerID, nil, nil))
	c := suite.catalog
	c.AddressID = addressID
	assignmentID := suite.assignedOrder(c)

	suite.record(assignmentID, 52.50, 13.40, suite.now)

	got, err := suite.tracking(suite.customer(), assignmentID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got.ETAMinutes)
	suite.Equal(assignment.EstimateETAMinutes(got.LatestPoint.Location, suite.catalog.VendorLocation), *got.ETAMinutes)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestTracking_Viewers() {
	tests := []struct {
		name    string
		caller  actor.Capabilities
		allowed bool
	}{
		{"customer", suite.customer(), true},
		{"vendor owner", suite.caps(suite.catalog.OwnerID, []kernel.UUID{suite.catalog.VendorID}, actor.RoleVendor), true},
		{"admin", suite.caps(kernel.NewUUID(), nil, actor.RoleAdmin), true},
		{"other customer", suite.caps(kernel.NewUUID(), nil, actor.RoleCustomer), false},
		{"other vendor", suite.caps(kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()}, actor.RoleVendor), false},
		{"assigned driver", suite.caps(suite.driverID, nil, actor.RoleDriver), false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.tracking(tt.caller, suite.assignmentID)
			if tt.allowed {
				suite.NoError(err)
				return
			}
			suite.ErrorIs(err, errs.ErrAccessDenied)
		})
	}
}

func (suite *AssignmentQueriesHandlerTestSuite) TestTracking_UnknownAssignment() {
	_, err := suite.tracking(suite.customer(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestNavigation_BothLinks() {
	got, err := suite.navigation(suite.caps(suite.driverID, nil, actor.RoleDriver), suite.assignmentID)
	suite.Require().NoError(err)

	suite.Require().NotNil(got.PickupURL)
	suite.Equal(assignment.NavigationURL(suite.catalog.VendorLocation, "Vendor "+suite.catalog.VendorID.String()[:8]), *got.PickupURL)
	suite.Require().NotNil(got.DropoffURL)
	suite.Equal(assignment.NavigationURL(suite.catalog.AddressLocation, "1 Test Street"), *got.DropoffURL)
	suite.Contains(*got.DropoffURL, "query=1+Test+Street")
}

func (suite *AssignmentQueriesHandlerTestSuite) TestNavigation_MissingCoordinatesGiveNilLink() {
	addressID := kernel.NewUUID()
	suite.Require().NoError(suite.pg.Address(addressID, &suite.catalog.CustomerID, nil, nil))
	c := suite.catalog
	c.AddressID = addressID
	assignmentID := suite.assignedOrder(c)

	got, err := suite.navigation(suite.caps(kernel.NewUUID(), nil, actor.RoleAdmin), assignmentID)
	suite.Require().NoError(err)
	suite.NotNil(got.PickupURL)
	suite.Nil(got.DropoffURL)
}

func (suite *AssignmentQueriesHandlerTestSuite) TestNavigation_OnlyTheAssignedDriver() {
	_, err := suite.navigation(suite.caps(kernel.NewUUID(), nil, actor.RoleDriver), suite.assignmentID)
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.navigation(suite.customer(), suite.assignmentID)
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func TestAssignmentQueriesHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentQueriesHandlerTestSuite))
}
