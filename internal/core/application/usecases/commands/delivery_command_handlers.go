package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"
)

// RecordLocationCommandHandler stores driver positions.
type RecordLocationCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      clock.Clock
}

func NewRecordLocationCommandHandler(uowFactory DeliveryUoWFactory, clk clock.Clock) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle appends a point. Trail writes never lock the order.
func (h RecordLocationCommandHandler) Handle(ctx context.Context, cmd RecordLocationCommand) (assignment.TrackingPoint, error) {
	if err := cmd.Validate(); err != nil {
		return assignment.TrackingPoint{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return assignment.TrackingPoint{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	a, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return assignment.TrackingPoint{}, err
	}
	if err = cmd.Actor().CanDrive(a.DriverID()); err != nil {
		return assignment.TrackingPoint{}, err
	}

	point, err := assignment.NewTrackingPoint(a.ID(), cmd.Location(), h.clock.Now())
	if err != nil {
		return assignment.TrackingPoint{}, err
	}
	if err = assignmentRepo.AddTrackingPoint(ctx, point); err != nil {
		return assignment.TrackingPoint{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return assignment.TrackingPoint{}, err
	}
	return point, nil
}

// lockAssignment authorizes the caller against the assignment, takes the row
// lock of its order and reloads the assignment under that lock. Milestone
// checks made afterwards cannot race another request for the same order.
func lockAssignment(
	ctx context.Context,
	uow DeliveryUoW,
	assignmentID kernel.UUID,
	authorize func(a *assignment.Assignment) error,
) (*order.Order, *assignment.Assignment, error) {
	assignmentRepo := uow.AssignmentRepository()
	a, err := assignmentRepo.Get(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if err = authorize(a); err != nil {
		return nil, nil, err
	}
	o, err := uow.OrderRepository().GetForUpdate(ctx, a.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if a, err = assignmentRepo.Get(ctx, assignmentID); err != nil {
		return nil, nil, err
	}
	return o, a, nil
}

// vendorOwner resolves who is told about a delivery on the vendor side.
// A vendor missing from the catalog yields nil rather than failing the delivery.
func vendorOwner(ctx context.Context, catalogRepo ports.CatalogRepository, vendorID kernel.UUID) (*kernel.UUID, error) {
	vendor, err := catalogRepo.GetVendor(ctx, vendorID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	owner := vendor.OwnerID
	return &owner, nil
}

// MarkPickedUpCommandHandler records pickups by the assigned driver.
type MarkPickedUpCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      clock.Clock
}

func NewMarkPickedUpCommandHandler(uowFactory DeliveryUoWFactory, clk clock.Clock) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle stamps picked_up_at and moves the order en route. Repeated calls, and
// calls after delivery, return the assignment unchanged.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, a, err := lockAssignment(ctx, uow, cmd.AssignmentID(), func(a *assignment.Assignment) error {
		return cmd.Actor().CanDrive(a.DriverID())
	})
	if err != nil {
		return nil, err
	}
	if a.IsPickedUp() || a.IsDelivered() {
		return a, nil
	}

	now := h.clock.Now()
	if err = o.MarkEnRoute(cmd.Actor().ActorID(), now); err != nil {
		return nil, err
	}
	a.MarkPickedUp(now)

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// MarkDeliveredCommandHandler delivers without a code.
// Repeated calls return the delivered assignment without new events.
type MarkDeliveredCommandHandler struct {
	uowFactory DeliveryUoWFactory
	finalizer  services.DeliveryFinalizer
	clock      clock.Clock
}

func NewMarkDeliveredCommandHandler(
	uowFactory DeliveryUoWFactory,
	finalizer services.DeliveryFinalizer,
	clk clock.Clock,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{uowFactory: uowFactory, finalizer: finalizer, clock: clk}
}

// Handle is the manual delivery path. It checks no code and settles no payment.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, a, err := lockAssignment(ctx, uow, cmd.AssignmentID(), func(a *assignment.Assignment) error {
		return cmd.Actor().CanDrive(a.DriverID())
	})
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	changed, err := h.finalizer.FinalizeManual(o, a, cmd.Actor().ActorID(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return a, nil
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}
	if err = enqueueDelivered(ctx, uow, o, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// enqueueDelivered tells the customer and the vendor owner about the delivery.
func enqueueDelivered(ctx context.Context, uow DeliveryUoW, o *order.Order, now time.Time) error {
	owner, err := vendorOwner(ctx, uow.CatalogRepository(), o.VendorID())
	if err != nil {
		return err
	}
	return uow.OutboxRepository().Enqueue(ctx, notification.OrderDelivered(o.CustomerID(), owner, o.ID(), now)...)
}

// IssueDeliveryCodeCommandHandler gives the customer a dropoff code.
type IssueDeliveryCodeCommandHandler struct {
	uowFactory DeliveryUoWFactory
	codes      ports.CodeGenerator
}

// NewIssueDeliveryCodeCommandHandler creates a handler drawing codes from codes.
func NewIssueDeliveryCodeCommandHandler(
	uowFactory DeliveryUoWFactory,
	codes ports.CodeGenerator,
) IssueDeliveryCodeCommandHandler {
	return IssueDeliveryCodeCommandHandler{uowFactory: uowFactory, codes: codes}
}

// Handle issues a fresh code, replacing a pending one for the order.
// The code is returned to the caller. Once the delivery was verified the
// verification is kept and verification.ErrAlreadyVerified is returned.
func (h IssueDeliveryCodeCommandHandler) Handle(
	ctx context.Context,
	cmd IssueDeliveryCodeCommand,
) (*verification.Verification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = cmd.Actor().CanActAsCustomerOf(o.CustomerID()); err != nil {
		return nil, err
	}

	code, err := h.codes.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate delivery code: %w", err)
	}

	verificationRepo := uow.VerificationRepository()
	v, err := verificationRepo.Find(ctx, o.ID(), verification.TypeOTP)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if v, err = verification.Issue(kernel.NewUUID(), o.ID(), code); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err = v.Reissue(code); err != nil {
			return nil, err
		}
	}
	if err = verificationRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// VerifyDeliveryCommandHandler completes deliveries with a code.
type VerifyDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	finalizer  services.DeliveryFinalizer
	clock      clock.Clock
}

func NewVerifyDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	finalizer services.DeliveryFinalizer,
	clk clock.Clock,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{uowFactory: uowFactory, finalizer: finalizer, clock: clk}
}

// Handle checks the code and the driver's position and, when both pass,
// delivers the order and settles cash on delivery in the same transaction.
// Any failure leaves verification, assignment, order and payments untouched.
func (h VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, a, err := lockAssignment(ctx, uow, cmd.AssignmentID(), func(a *assignment.Assignment) error {
		return cmd.Actor().CanDrive(a.DriverID())
	})
	if err != nil {
		return nil, err
	}

	v, err := uow.VerificationRepository().Find(ctx, o.ID(), verification.TypeOTP)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	var dropoff *kernel.GeoPoint
	if o.AddressID() != nil {
		address, addrErr := uow.CatalogRepository().GetAddress(ctx, *o.AddressID())
		if addrErr != nil && !errors.Is(addrErr, errs.ErrObjectNotFound) {
			return nil, addrErr
		}
		if address != nil {
			dropoff = address.Location
		}
	}

	payments, err := uow.PaymentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	settled, err := h.finalizer.FinalizeVerified(o, a, v, payments, cmd.Code(), cmd.Location(), dropoff, now)
	if err != nil {
		return nil, err
	}

	if err = uow.VerificationRepository().Save(ctx, v); err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	for _, p := range settled {
		if err = uow.PaymentRepository().Update(ctx, p); err != nil {
			return nil, err
		}
	}
	if err = enqueueDelivered(ctx, uow, o, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
