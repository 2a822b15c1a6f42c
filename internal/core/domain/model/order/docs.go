// Package order provides the Order aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Order: the frozen checkout snapshot (items and money fields) plus its status
//   - Status: the lifecycle enum with guarded transitions
//   - StatusEvent: one audit record per status change
//
// State transitions:
//
//	pending_vendor_confirm ──> vendor_confirmed ──> ready_for_delivery
//	          │                                           ^
//	          └───────────────────────────────────────────┘
//	ready_for_delivery ──> driver_assigned ──> en_route ──> delivered
//	                              │                            ^
//	                              └────────────────────────────┘
//
// Every status change records a StatusEvent that the repository drains with
// PullStatusEvents and persists in the same transaction. Marking an order ready
// stamps locked_at; items and money fields never change after placement.
package order
