// Package shipment contains the immutable shipment record, the event-log
// entry that all carrier performance metrics and insights are derived from.
package shipment
