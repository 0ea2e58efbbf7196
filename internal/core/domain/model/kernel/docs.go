// Package kernel contains shared value objects used across all domain
// aggregates: UUID identifiers and Money amounts in integer minor currency
// units. Value objects in this package are immutable and safe for
// concurrent use.
package kernel
