package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("bid not constructed")

	t.Run("constructed_guard_passes_with_custom_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("constructed_guard_passes_with_nil_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type ticket struct {
		code  string
		guard guard.ConstructorGuard
	}
	errTicket := errors.New("ticket must be created via newTicket")
	newTicket := func(code string) ticket {
		return ticket{code: code, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newTicket("042917").guard.Validate(errTicket))

	var zero ticket
	require.ErrorIs(t, zero.guard.Validate(errTicket), errTicket)
}
