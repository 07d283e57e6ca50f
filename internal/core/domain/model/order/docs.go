// Package order provides the Order aggregate: a paid delivery created at
// checkout from a priced quote, tracked through its lifecycle until it is
// delivered or cancelled.
//
// The package includes:
//   - Order: the aggregate root holding the quote request, the price snapshot,
//     the payment charge and the tracking timeline
//   - Status: a state machine that enforces valid status transitions
//   - Event: one timeline entry appended on every transition
//
// Key business rules:
//   - Scheduled orders start as Scheduled, instant orders start as Confirmed
//   - Tracking moves Confirmed -> PickedUp -> InTransit -> Delivered, one step at a time
//   - Only Scheduled and Confirmed orders can be cancelled
//   - Delivered and Cancelled are final
//   - Only the owning account may read or cancel an order
package order
