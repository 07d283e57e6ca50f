// Package quote holds the value objects that describe a delivery quote request:
// the package category, its weight, the scheduling choice and the request that
// ties them to a pickup and a delivery address.
//
// Everything here is immutable and validated at construction. A Request has no
// identity and is never persisted; it is built per call and priced by
// services.Calculate.
//
// Key business rules:
//   - Addresses are free text and must be non-empty after trimming
//   - Category is one of nine known values; medical and electronics are premium
//   - Weight is non-negative and held in whole grams
//   - A scheduled request needs a pickup time that is not in the past and a
//     dropoff time strictly after it; an instant request ignores both
package quote
