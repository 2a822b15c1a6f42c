package actor_test

import (
	"testing"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caps(t *testing.T, id kernel.UUID, roles []actor.Role, vendors ...kernel.UUID) actor.Capabilities {
	t.Helper()
	c, err := actor.NewCapabilities(id, roles, vendors)
	require.NoError(t, err)
	return c
}

func TestNewCapabilities(t *testing.T) {
	_, err := actor.NewCapabilities(kernel.UUID{}, nil, nil)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCapabilities_Predicates(t *testing.T) {
	me := kernel.NewUUID()
	someoneElse := kernel.NewUUID()
	myVendor := kernel.NewUUID()
	otherVendor := kernel.NewUUID()

	admin := caps(t, kernel.NewUUID(), []actor.Role{actor.RoleAdmin})
	customer := caps(t, me, []actor.Role{actor.RoleCustomer})
	vendor := caps(t, me, []actor.Role{actor.RoleVendor}, myVendor)
	driver := caps(t, me, []actor.Role{actor.RoleDriver})
	vendorWithoutRole := caps(t, me, nil, myVendor)

	tests := []struct {
		name    string
		check   func() error
		allowed bool
	}{
		{"admin bids", admin.CanBid, true},
		{"driver bids", driver.CanBid, true},
		{"customer cannot bid", customer.CanBid, false},

		{"customer shops", customer.CanShop, true},
		{"driver cannot shop", driver.CanShop, false},

		{"own order", func() error { return customer.CanActAsCustomerOf(me) }, true},
		{"foreign order", func() error { return customer.CanActAsCustomerOf(someoneElse) }, false},
		{"driver with same id is not a customer", func() error { return driver.CanActAsCustomerOf(me) }, false},
		{"admin on any order", func() error { return admin.CanActAsCustomerOf(someoneElse) }, true},

		{"owned vendor", func() error { return vendor.CanManageVendor(myVendor) }, true},
		{"foreign vendor", func() error { return vendor.CanManageVendor(otherVendor) }, false},
		{"ownership without vendor role", func() error { return vendorWithoutRole.CanManageVendor(myVendor) }, false},

		{"assigned driver", func() error { return driver.CanDrive(me) }, true},
		{"other driver", func() error { return driver.CanDrive(someoneElse) }, false},
		{"admin drives", func() error { return admin.CanDrive(someoneElse) }, true},

		{"customer tracks", func() error { return customer.CanTrack(me, otherVendor) }, true},
		{"vendor tracks", func() error { return vendor.CanTrack(someoneElse, myVendor) }, true},
		{"driver cannot track", func() error { return driver.CanTrack(someoneElse, otherVendor) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrAccessDenied)
		})
	}
}

func TestCapabilities_RolesAreCopied(t *testing.T) {
	roles := []actor.Role{actor.RoleDriver}
	c := caps(t, kernel.NewUUID(), roles)

	roles[0] = actor.RoleAdmin

	assert.False(t, c.IsAdmin())
	assert.True(t, c.IsDriver())
}
