// Package kernel provides core domain primitives shared by the quote, order and
// account models.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: An amount in integer minor units tagged with an ISO 4217 currency code
//   - GeoPoint: A validated latitude/longitude pair with great-circle distance
//
// These primitives enforce their invariants at construction time. They are immutable
// and safe for concurrent use.
package kernel
