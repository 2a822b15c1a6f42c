package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func biddingFactory(uow *MockUoW) *MockFactory[commands.BiddingUoW] {
	factory := new(MockFactory[commands.BiddingUoW])
	factory.On("Create").Return(uow).Once()
	return factory
}

func storedBid(t *testing.T, orderID kernel.UUID, status bid.Status, expiresAt time.Time) *bid.Bid {
	t.Helper()
	b, err := bid.Restore(
		kernel.NewUUID(), orderID, kernel.NewUUID(), money("5.00"),
		nil, nil, status, expiresAt, now.Add(-time.Hour),
	)
	require.NoError(t, err)
	return b
}

func TestSubmitBidCommandHandler_Handle(t *testing.T) {
	t.Run("should create a bid with distance and notify the customer", func(t *testing.T) {
		ctx := t.Context()
		customerID := kernel.NewUUID()
		addressID := kernel.NewUUID()
		o := restoredOrder(t, customerID, order.ReadyForDelivery, &addressID)
		driverID := kernel.NewUUID()

		vendorAt := geoPoint(t, 37.7749, -122.4194)
		dropoffAt := geoPoint(t, 37.7849, -122.4094)
		vendor := &catalog.Vendor{ID: o.VendorID(), OwnerID: kernel.NewUUID(), Location: &vendorAt}
		address := &catalog.Address{ID: addressID, UserID: &customerID, Location: &dropoffAt}

		ttl := 10
		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, driverID, actor.RoleDriver), o.ID(), bid.Offer{Amount: money("7.25"), TTLMinutes: &ttl})
		require.NoError(t, err)

		uow, r := newUoW()
		var intents []notification.Intent
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
			r.catalog.On("GetVendor", ctx, o.VendorID()).Return(vendor, nil).Once(),
			r.catalog.On("GetAddress", ctx, addressID).Return(address, nil).Once(),
			r.bids.On("FindByOrderAndDriver", ctx, o.ID(), driverID).
				Return(nil, errs.NewObjectNotFoundError("bid", driverID)).Once(),
			r.bids.On("Add", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
			r.outbox.On("Enqueue", ctx, mock.Anything).
				Run(func(args mock.Arguments) { intents = args.Get(1).([]notification.Intent) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		b, err := commands.NewSubmitBidCommandHandler(biddingFactory(uow), testClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, bid.Pending, b.Status())
		assert.Equal(t, now.Add(10*time.Minute), b.ExpiresAt())
		require.NotNil(t, b.DistanceKm())
		assert.InDelta(t, 1.41, *b.DistanceKm(), 0.02)

		require.Len(t, intents, 1)
		assert.True(t, intents[0].Recipient.IsEqual(customerID))
		assert.Equal(t, "New delivery bid", intents[0].Title)
		r.assertExpectations(t)
	})

	t.Run("should reopen an expired bid in place", func(t *testing.T) {
		ctx := t.Context()
		o := restoredOrder(t, kernel.NewUUID(), order.ReadyForDelivery, nil)
		existing := storedBid(t, o.ID(), bid.Pending, now.Add(-time.Minute))
		driverID := existing.DriverID()

		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, driverID, actor.RoleDriver), o.ID(), bid.Offer{Amount: money("9.00")})
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
		r.bids.On("FindByOrderAndDriver", ctx, o.ID(), driverID).Return(existing, nil).Once()
		r.bids.On("Update", ctx, existing).Return(nil).Once()
		r.outbox.On("Enqueue", ctx, mock.Anything).Return(nil).Once()

		b, err := commands.NewSubmitBidCommandHandler(biddingFactory(uow), testClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, b.ID().IsEqual(existing.ID()))
		assert.Equal(t, "9.00", b.Amount().StringFixed(2))
		assert.Equal(t, now.Add(bid.DefaultTTL), b.ExpiresAt())
		assert.Nil(t, b.DistanceKm())
		r.bids.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should reject a driver holding a live bid", func(t *testing.T) {
		ctx := t.Context()
		o := restoredOrder(t, kernel.NewUUID(), order.ReadyForDelivery, nil)
		existing := storedBid(t, o.ID(), bid.Pending, now.Add(time.Minute))

		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, existing.DriverID(), actor.RoleDriver), o.ID(), bid.Offer{Amount: money("9.00")})
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
		r.bids.On("FindByOrderAndDriver", ctx, o.ID(), existing.DriverID()).Return(existing, nil).Once()

		_, err = commands.NewSubmitBidCommandHandler(biddingFactory(uow), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, bid.ErrAlreadyBid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject an order that is not ready", func(t *testing.T) {
		ctx := t.Context()
		o := restoredOrder(t, kernel.NewUUID(), order.VendorConfirmed, nil)

		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, kernel.NewUUID(), actor.RoleDriver), o.ID(), bid.Offer{Amount: money("1.00")})
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		_, err = commands.NewSubmitBidCommandHandler(biddingFactory(uow), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrOrderNotAvailableForBidding)
	})

	t.Run("should reject an assigned order", func(t *testing.T) {
		ctx := t.Context()
		o := restoredOrder(t, kernel.NewUUID(), order.ReadyForDelivery, nil)

		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, kernel.NewUUID(), actor.RoleDriver), o.ID(), bid.Offer{Amount: money("1.00")})
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once()

		_, err = commands.NewSubmitBidCommandHandler(biddingFactory(uow), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrOrderNotAvailableForBidding)
	})

	t.Run("should deny callers without the driver role", func(t *testing.T) {
		cmd, err := commands.NewSubmitBidCommand(
			capabilities(t, kernel.NewUUID(), actor.RoleCustomer), kernel.NewUUID(), bid.Offer{Amount: money("1.00")})
		require.NoError(t, err)
		factory := new(MockFactory[commands.BiddingUoW])

		_, err = commands.NewSubmitBidCommandHandler(factory, testClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestNewSubmitBidCommand_Validation(t *testing.T) {
	eta, ttl := 0, 200
	_, err := commands.NewSubmitBidCommand(
		capabilities(t, kernel.NewUUID(), actor.RoleDriver),
		kernel.NewUUID(),
		bid.Offer{Amount: money("-1"), ETAMinutes: &eta, TTLMinutes: &ttl},
	)

	require.Error(t, err)
	fields := errs.FieldErrors(err)
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "eta_minutes")
	assert.Contains(t, fields, "expires_in_minutes")
}

func TestAcceptBidCommandHandler_Handle(t *testing.T) {
	t.Run("should award the second of three bids", func(t *testing.T) {
		ctx := t.Context()
		customerID := kernel.NewUUID()
		o := restoredOrder(t, customerID, order.ReadyForDelivery, nil)
		bids := []*bid.Bid{
			storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour)),
			storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour)),
			storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour)),
		}

		cmd, err := commands.NewAcceptBidCommand(capabilities(t, customerID, actor.RoleCustomer), o.ID(), bids[1].ID())
		require.NoError(t, err)

		uow, r := newUoW()
		var intents []notification.Intent
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
			r.bids.On("ListByOrder", ctx, o.ID()).Return(bids, nil).Once(),
			r.orders.On("Update", ctx, o).Return(nil).Once(),
			r.assignments.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
			r.bids.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Times(3),
			r.outbox.On("Enqueue", ctx, mock.Anything).
				Run(func(args mock.Arguments) { intents = args.Get(1).([]notification.Intent) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		a, err := commands.NewAcceptBidCommandHandler(
			biddingFactory(uow), services.NewBidAwarder(), testClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, a.DriverID().IsEqual(bids[1].DriverID()))
		assert.Equal(t, now, a.AcceptedAt())
		assert.Equal(t, order.DriverAssigned, o.Status())
		assert.Equal(t, bid.Declined, bids[0].Status())
		assert.Equal(t, bid.Accepted, bids[1].Status())
		assert.Equal(t, bid.Declined, bids[2].Status())

		require.Len(t, intents, 1)
		assert.True(t, intents[0].Recipient.IsEqual(bids[1].DriverID()))
		r.assertExpectations(t)
	})

	t.Run("should reject an order that already has an assignment", func(t *testing.T) {
		ctx := t.Context()
		customerID := kernel.NewUUID()
		o := restoredOrder(t, customerID, order.DriverAssigned, nil)
		bids := []*bid.Bid{storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour))}

		cmd, err := commands.NewAcceptBidCommand(capabilities(t, customerID, actor.RoleCustomer), o.ID(), bids[0].ID())
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once()
		r.bids.On("ListByOrder", ctx, o.ID()).Return(bids, nil).Once()

		_, err = commands.NewAcceptBidCommandHandler(
			biddingFactory(uow), services.NewBidAwarder(), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
		r.assignments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject a bid that expired before acceptance", func(t *testing.T) {
		ctx := t.Context()
		customerID := kernel.NewUUID()
		o := restoredOrder(t, customerID, order.ReadyForDelivery, nil)
		stale := storedBid(t, o.ID(), bid.Pending, now.Add(-time.Second))

		cmd, err := commands.NewAcceptBidCommand(capabilities(t, customerID, actor.RoleCustomer), o.ID(), stale.ID())
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		r.assignments.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
		r.bids.On("ListByOrder", ctx, o.ID()).Return([]*bid.Bid{stale}, nil).Once()

		_, err = commands.NewAcceptBidCommandHandler(
			biddingFactory(uow), services.NewBidAwarder(), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, bid.ErrBidNotAvailable)
		assert.Equal(t, order.ReadyForDelivery, o.Status())
	})

	t.Run("should deny anyone but the customer", func(t *testing.T) {
		ctx := t.Context()
		o := restoredOrder(t, kernel.NewUUID(), order.ReadyForDelivery, nil)

		cmd, err := commands.NewAcceptBidCommand(
			capabilities(t, kernel.NewUUID(), actor.RoleCustomer), o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		_, err = commands.NewAcceptBidCommandHandler(
			biddingFactory(uow), services.NewBidAwarder(), testClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		r.bids.AssertNotCalled(t, "ListByOrder", mock.Anything, mock.Anything)
	})
}

// lockedOrderStore stands in for the order row: GetForUpdate blocks until the
// previous holder rolls back, which every handler does on return.
type lockedOrderStore struct {
	mu       sync.Mutex
	assigned *assignment.Assignment
}

type storeAssignments struct {
	store *lockedOrderStore
}

func (s storeAssignments) Add(_ context.Context, a *assignment.Assignment) error {
	s.store.assigned = a
	return nil
}

func (s storeAssignments) Update(context.Context, *assignment.Assignment) error {
	return errors.New("unexpected call")
}

func (s storeAssignments) Get(context.Context, kernel.UUID) (*assignment.Assignment, error) {
	return nil, errors.New("unexpected call")
}

func (s storeAssignments) ExistsForOrder(context.Context, kernel.UUID) (bool, error) {
	return s.store.assigned != nil, nil
}

func (s storeAssignments) AddTrackingPoint(context.Context, assignment.TrackingPoint) error {
	return errors.New("unexpected call")
}

func (s storeAssignments) ListRecentTrackingPoints(context.Context, kernel.UUID, int) ([]assignment.TrackingPoint, error) {
	return nil, errors.New("unexpected call")
}

func TestAcceptBidCommandHandler_Handle_ConcurrentAcceptsAssignOnce(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	o := restoredOrder(t, customerID, order.ReadyForDelivery, nil)
	bids := []*bid.Bid{
		storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour)),
		storedBid(t, o.ID(), bid.Pending, now.Add(time.Hour)),
	}
	store := &lockedOrderStore{}

	newLockingUoW := func() *MockUoW {
		orders := new(MockOrderRepository)
		bidRepo := new(MockBidRepository)
		outbox := new(MockOutboxRepository)
		held := false

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Run(func(mock.Arguments) {
			if held {
				held = false
				store.mu.Unlock()
			}
		}).Return(nil)
		uow.On("OrderRepository").Return(orders)
		uow.On("BidRepository").Return(bidRepo)
		uow.On("OutboxRepository").Return(outbox)
		uow.On("AssignmentRepository").Return(storeAssignments{store: store})

		orders.On("GetForUpdate", ctx, o.ID()).Run(func(mock.Arguments) {
			store.mu.Lock()
			held = true
		}).Return(o, nil)
		orders.On("Update", ctx, o).Return(nil)
		bidRepo.On("ListByOrder", ctx, o.ID()).Return(bids, nil)
		bidRepo.On("Update", ctx, mock.Anything).Return(nil)
		outbox.On("Enqueue", ctx, mock.Anything).Return(nil)
		return uow
	}

	results := make([]error, len(bids))
	var wg sync.WaitGroup
	for i, b := range bids {
		factory := new(MockFactory[commands.BiddingUoW])
		factory.On("Create").Return(newLockingUoW())
		cmd, err := commands.NewAcceptBidCommand(capabilities(t, customerID, actor.RoleCustomer), o.ID(), b.ID())
		require.NoError(t, err)
		handler := commands.NewAcceptBidCommandHandler(factory, services.NewBidAwarder(), testClock())

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	}
	assert.Equal(t, 1, succeeded)
	require.NotNil(t, store.assigned)
	assert.Equal(t, order.DriverAssigned, o.Status())

	var accepted int
	for _, b := range bids {
		if b.Status() == bid.Accepted {
			accepted++
			assert.True(t, store.assigned.DriverID().IsEqual(b.DriverID()))
		}
	}
	assert.Equal(t, 1, accepted)
}
