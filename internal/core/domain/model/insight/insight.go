// Package insight defines the advisory recommendation value object produced
// by the analytics pipeline.
package insight

// Type identifies which analyzer produced the insight.
type Type string

const (
	TypeCostOptimization     Type = "COST_OPTIMIZATION"
	TypeRTOPrevention        Type = "RTO_PREVENTION"
	TypeEfficiencyComparison Type = "EFFICIENCY_COMPARISON"
	TypeGrowthOpportunity    Type = "GROWTH_OPPORTUNITY"
)

// Priority orders insights for presentation. Lower value means more urgent.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Insight is one advisory recommendation derived from a company's shipment
// history. Insights are never auto-applied; they only inform the merchant.
//
// Confidence is in [0, 1] and reflects sample size and recency of the
// underlying data. Metrics carries the analyzer's supporting numbers so the
// summary stays verifiable.
type Insight struct {
	Type       Type
	Priority   Priority
	Confidence float64
	Summary    string
	Metrics    map[string]float64
}
