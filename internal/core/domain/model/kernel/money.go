package kernel

import "math"

// RoundMoney rounds a currency amount to two decimal places using the
// round-half-up convention. All cost arithmetic in the routing core goes
// through this single function so that ties always break the same way.
//
// Amounts are expected to be non-negative; the half-up convention is defined
// for that domain.
func RoundMoney(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// RoundHalfUp rounds a value to the nearest integer, with .5 rounding up.
// Used for discrete counts derived from fractional projections, e.g. the
// number of preventable RTO events.
func RoundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
