// Package services provides domain services that coordinate several aggregates
// in one business step.
//
// The package includes:
//   - BidAwarder: accepts one bid on an order, declines the rest and binds the driver
//   - DeliveryFinalizer: closes a delivery through OTP verification or manually
//
// Services mutate the aggregates they are given and never touch storage; the
// calling handler persists the result inside a single unit of work.
package services
