package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructor functions.
// It is returned when validating a zero-value UUID, which is how a missing identifier surfaces.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the value object that identifies every entity in the marketplace: carts,
// orders, bids, assignments, verifications, payments and outbox notifications.
// It wraps github.com/google/uuid so the domain never handles raw identifiers.
//
// The zero value of UUID is invalid and must be constructed using one of the
// factory functions: NewUUID, UUIDFromString, UUIDFromBytes or FromGoogle.
//
// UUID is immutable and safe for concurrent use. It implements
// encoding.TextMarshaler so it can appear directly in JSON request and response
// bodies and in echo path parameters.
//
// Example usage:
//
//	// Create a new random UUID
//	orderID := kernel.NewUUID()
//
//	// Parse an identifier sent by a client
//	bidID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return err
//	}
type UUID struct { //nolint:recvcheck // UnmarshalText needs a pointer receiver
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to create identifiers for new entities.
//
// Example:
//
//	cartID := kernel.NewUUID()
//	fmt.Println(cartID.String()) // e.g., "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the standard forms understood by uuid.Parse, including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Returns an error if the string is not a valid UUID.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from its 16-byte representation.
//
// Returns an error if the slice is not exactly 16 bytes long or encodes the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// FromGoogle wraps an already parsed uuid.UUID, typically read from storage.
func FromGoogle(id uuid.UUID) UUID {
	return UUID{id: id}
}

// FromGooglePtr maps a nullable column to a nullable identifier.
func FromGooglePtr(id *uuid.UUID) *UUID {
	if id == nil {
		return nil
	}
	v := UUID{id: *id}
	return &v
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for storage layers and DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// BytesPtr is the nullable-column counterpart of Bytes.
func BytesPtr(u *UUID) *uuid.UUID {
	if u == nil {
		return nil
	}
	raw := u.id
	return &raw
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
//
// Constructors of aggregates and commands join the Validate results of every
// identifier they receive, so a missing id surfaces as a ValueIsRequiredError.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using UUIDFromString.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
