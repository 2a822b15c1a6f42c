// Package bid models a driver's offer to deliver a ready order.
//
// A bid is pending until it is accepted, declined because another bid won, or
// expires. Expiry is never swept in the background: callers reconcile a bid
// against the clock whenever they read its status, and the accept path does the
// same inside its critical section, so a stale pending bid can never win.
package bid
