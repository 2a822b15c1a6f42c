package commands

import (
	"errors"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains one batch of the notification outbox.
type DispatchNotificationsCommand struct {
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a new dispatch command.
//
// Parameters:
//   - batchSize: the most intents claimed in one run
//   - maxAttempts: failed attempts after which an intent is given up
//
// Returns:
//   - DispatchNotificationsCommand: validated command
//   - error: a ValueIsOutOfRangeError for each value below one
func NewDispatchNotificationsCommand(batchSize, maxAttempts int) (DispatchNotificationsCommand, error) {
	var batchErr, attemptsErr error
	if batchSize < 1 {
		batchErr = errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, math.MaxInt32)
	}
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsOutOfRangeError("max_attempts", maxAttempts, 1, math.MaxInt32)
	}
	if err := errors.Join(batchErr, attemptsErr); err != nil {
		return DispatchNotificationsCommand{}, err
	}
	return DispatchNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchNotificationsCommandIsNotConstructed if validation fails.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// BatchSize returns the most intents claimed in one run.
func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}

// MaxAttempts returns the attempt limit passed to the outbox.
func (c DispatchNotificationsCommand) MaxAttempts() int {
	return c.maxAttempts
}
