// Package routing contains the value objects of the carrier selection flow:
// the routing request, the candidate pool and the resulting decision.
package routing
