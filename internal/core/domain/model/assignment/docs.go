// Package assignment binds one driver to one order after a bid is accepted and
// follows the delivery from pickup to handoff.
//
// Milestones are idempotent: MarkPickedUp and MarkDelivered return false when
// the milestone is already stamped, and callers then return the current state
// instead of failing. Tracking points form an append-only trail read newest first.
package assignment
