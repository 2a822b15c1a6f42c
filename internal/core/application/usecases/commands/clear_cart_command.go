package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand empties the caller's cart and forgets its vendor.
type ClearCartCommand struct {
	actor actor.Capabilities

	guard guard.ConstructorGuard
}

// NewClearCartCommand creates a new clear-cart command.
func NewClearCartCommand(caller actor.Capabilities) (ClearCartCommand, error) {
	if err := caller.ActorID().Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{actor: caller, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClearCartCommandIsNotConstructed if validation fails.
func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c ClearCartCommand) Actor() actor.Capabilities {
	return c.actor
}
