package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 12, 18, 10, 0, 0, 0, time.UTC)

func testClock() *clock.Manual {
	return clock.NewManual(now)
}

// MockFactory serves every *UoWFactory interface of the commands package.
type MockFactory[T any] struct{ mock.Mock }

func (m *MockFactory[T]) Create() T {
	args := m.Called()
	return args.Get(0).(T)
}

// MockUoW implements every unit-of-work group. Repository accessors are stubbed
// with Maybe so tests only order the calls that matter.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) BidRepository() ports.BidRepository {
	return m.Called().Get(0).(ports.BidRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) VerificationRepository() ports.VerificationRepository {
	return m.Called().Get(0).(ports.VerificationRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.Called().Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	return m.Called().Get(0).(ports.CatalogRepository)
}

type repos struct {
	orders        *MockOrderRepository
	carts         *MockCartRepository
	bids          *MockBidRepository
	assignments   *MockAssignmentRepository
	verifications *MockVerificationRepository
	payments      *MockPaymentRepository
	outbox        *MockOutboxRepository
	catalog       *MockCatalogRepository
}

// newUoW wires a MockUoW to a fresh set of repository mocks.
func newUoW() (*MockUoW, repos) {
	r := repos{
		orders:        new(MockOrderRepository),
		carts:         new(MockCartRepository),
		bids:          new(MockBidRepository),
		assignments:   new(MockAssignmentRepository),
		verifications: new(MockVerificationRepository),
		payments:      new(MockPaymentRepository),
		outbox:        new(MockOutboxRepository),
		catalog:       new(MockCatalogRepository),
	}
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(r.orders).Maybe()
	uow.On("CartRepository").Return(r.carts).Maybe()
	uow.On("BidRepository").Return(r.bids).Maybe()
	uow.On("AssignmentRepository").Return(r.assignments).Maybe()
	uow.On("VerificationRepository").Return(r.verifications).Maybe()
	uow.On("PaymentRepository").Return(r.payments).Maybe()
	uow.On("OutboxRepository").Return(r.outbox).Maybe()
	uow.On("CatalogRepository").Return(r.catalog).Maybe()
	return uow, r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.orders.AssertExpectations(t)
	r.carts.AssertExpectations(t)
	r.bids.AssertExpectations(t)
	r.assignments.AssertExpectations(t)
	r.verifications.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
	r.catalog.AssertExpectations(t)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetOrCreate(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBidRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) FindByOrderAndDriver(ctx context.Context, orderID, driverID kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, orderID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) AddTrackingPoint(ctx context.Context, p assignment.TrackingPoint) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockAssignmentRepository) ListRecentTrackingPoints(
	ctx context.Context,
	assignmentID kernel.UUID,
	limit int,
) ([]assignment.TrackingPoint, error) {
	args := m.Called(ctx, assignmentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]assignment.TrackingPoint), args.Error(1)
}

type MockVerificationRepository struct{ mock.Mock }

func (m *MockVerificationRepository) Find(
	ctx context.Context,
	orderID kernel.UUID,
	kind verification.Type,
) (*verification.Verification, error) {
	args := m.Called(ctx, orderID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verification.Verification), args.Error(1)
}

func (m *MockVerificationRepository) Save(ctx context.Context, v *verification.Verification) error {
	return m.Called(ctx, v).Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Enqueue(ctx context.Context, intents ...notification.Intent) error {
	return m.Called(ctx, intents).Error(0)
}

func (m *MockOutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]notification.Intent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Intent), args.Error(1)
}

func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockOutboxRepository) MarkFailed(
	ctx context.Context,
	id kernel.UUID,
	cause string,
	maxAttempts int,
	at time.Time,
) error {
	return m.Called(ctx, id, cause, maxAttempts, at).Error(0)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetVendor(ctx context.Context, id kernel.UUID) (*catalog.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Vendor), args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetAddress(ctx context.Context, id kernel.UUID) (*catalog.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Address), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, intent notification.Intent) error {
	return m.Called(ctx, intent).Error(0)
}

type StaticCodeGenerator string

func (g StaticCodeGenerator) Generate() (string, error) {
	return string(g), nil
}

func capabilities(t *testing.T, id kernel.UUID, roles ...actor.Role) actor.Capabilities {
	t.Helper()
	caps, err := actor.NewCapabilities(id, roles, nil)
	require.NoError(t, err)
	return caps
}

func vendorCapabilities(t *testing.T, id, vendorID kernel.UUID) actor.Capabilities {
	t.Helper()
	caps, err := actor.NewCapabilities(id, []actor.Role{actor.RoleVendor}, []kernel.UUID{vendorID})
	require.NoError(t, err)
	return caps
}

func geoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func restoredOrder(t *testing.T, customerID kernel.UUID, status order.Status, addressID *kernel.UUID) *order.Order {
	t.Helper()
	fulfillment := kernel.FulfillmentPickup
	if addressID != nil {
		fulfillment = kernel.FulfillmentDelivery
	}
	o, err := order.Restore(
		kernel.NewUUID(), customerID, kernel.NewUUID(), addressID,
		fulfillment, status, pricing.Breakdown{}, nil, now.Add(-time.Hour), nil,
	)
	require.NoError(t, err)
	return o
}
