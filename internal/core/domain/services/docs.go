// Package services contains stateless domain services: performance
// aggregation over the shipment event log, carrier selection, and the
// insight analyzers.
package services
