// Package queries holds the read side of the service. Query handlers read the
// orders table directly with SQL through *gorm.DB and return flat views shaped
// for the HTTP layer, without loading aggregates.
package queries
