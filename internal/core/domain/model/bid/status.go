package bid

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the stored state of a bid.
type Status string

const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Declined Status = "declined"
	Expired  Status = "expired"
)

// Validate checks that s is one of Pending, Accepted, Declined or Expired.
func (s Status) Validate() error {
	switch s {
	case Pending, Accepted, Declined, Expired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid bid status", string(s)))
	}
}

// String returns the stored representation.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the bid can no longer change.
func (s Status) IsTerminal() bool {
	return s != Pending
}
