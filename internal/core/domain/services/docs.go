// Package services provides domain services for the parcel quote system: the
// pricing rules that turn a quote.Request and a travel distance into a
// quote.Breakdown of fees.
//
// The package includes:
//   - Tariff: the table of fees, thresholds and rates, with one canonical GBP default
//   - Calculate: a pure function from tariff, request and distance to a quote.Breakdown
//   - PriceCalculator: a Tariff bound to the service-area check, used by the use cases
//
// Pricing never reads the clock, the network or any shared state, so the same
// inputs always produce the same quote.Breakdown.
package services
