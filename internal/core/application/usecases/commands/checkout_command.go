package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand places an order from the caller's cart.
//
// Example:
//
//	method := payment.MethodCOD
//	cmd, err := NewCheckoutCommand(caps, &method)
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct {
	actor         actor.Capabilities
	paymentMethod payment.Method

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a new checkout command.
//
// Parameters:
//   - caller: the authenticated customer
//   - paymentMethod: card or cod; nil selects payment.MethodCard
//
// Returns:
//   - CheckoutCommand: validated command
//   - error: a ValueIsInvalidError for an unknown method or an invalid caller id
func NewCheckoutCommand(caller actor.Capabilities, paymentMethod *payment.Method) (CheckoutCommand, error) {
	method := payment.MethodCard
	if paymentMethod != nil {
		method = *paymentMethod
	}
	if err := errors.Join(caller.ActorID().Validate(), method.Validate()); err != nil {
		return CheckoutCommand{}, err
	}
	return CheckoutCommand{
		actor:         caller,
		paymentMethod: method,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckoutCommandIsNotConstructed if validation fails.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c CheckoutCommand) Actor() actor.Capabilities {
	return c.actor
}

// PaymentMethod returns the method the order's payment record is created with.
func (c CheckoutCommand) PaymentMethod() payment.Method {
	return c.paymentMethod
}
