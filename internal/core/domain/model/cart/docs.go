// Package cart implements the customer's single-vendor shopping cart.
//
// A cart holds price and delivery-fee snapshots taken when items are added and
// re-synced whenever the same product is added again. Totals are never stored:
// Pricing recomputes them from the live items through the pricing package, the
// same projection checkout freezes into an order.
//
// Key business rules:
//   - All items come from one vendor; adding another vendor's product is rejected
//   - Removing the last item releases the vendor
//   - Delivery requires an address; pickup carries none
package cart
