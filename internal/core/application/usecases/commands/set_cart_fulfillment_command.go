package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetCartFulfillmentCommandIsNotConstructed = errors.New(
	"SetCartFulfillmentCommand must be created via NewSetCartFulfillmentCommand constructor",
)

// SetCartFulfillmentCommand switches the cart between pickup and delivery.
// Delivery requires an address owned by the caller.
type SetCartFulfillmentCommand struct {
	actor       actor.Capabilities
	fulfillment kernel.FulfillmentType
	addressID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetCartFulfillmentCommand creates a new fulfillment command.
//
// Parameters:
//   - caller: the cart owner
//   - fulfillment: pickup or delivery
//   - addressID: required for delivery, dropped for pickup
//
// Returns:
//   - SetCartFulfillmentCommand: validated command
//   - error: cart.ErrAddressRequired or a ValueIsInvalidError
func NewSetCartFulfillmentCommand(
	caller actor.Capabilities,
	fulfillment kernel.FulfillmentType,
	addressID *kernel.UUID,
) (SetCartFulfillmentCommand, error) {
	var addressErr error
	if fulfillment.IsDelivery() && addressID == nil {
		addressErr = cart.ErrAddressRequired
	}
	if err := errors.Join(caller.ActorID().Validate(), fulfillment.Validate(), addressErr); err != nil {
		return SetCartFulfillmentCommand{}, err
	}
	if !fulfillment.IsDelivery() {
		addressID = nil
	}
	return SetCartFulfillmentCommand{
		actor:       caller,
		fulfillment: fulfillment,
		addressID:   addressID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetCartFulfillmentCommandIsNotConstructed if validation fails.
func (c SetCartFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrSetCartFulfillmentCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c SetCartFulfillmentCommand) Actor() actor.Capabilities {
	return c.actor
}

// Fulfillment returns the requested fulfillment type.
func (c SetCartFulfillmentCommand) Fulfillment() kernel.FulfillmentType {
	return c.fulfillment
}

// AddressID returns the delivery address, nil for pickup.
func (c SetCartFulfillmentCommand) AddressID() *kernel.UUID {
	return c.addressID
}
