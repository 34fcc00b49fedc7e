package services

import (
	"time"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"
)

// InsightPolicy holds the business thresholds the analyzers apply. Defaults
// match the documented product policy; deployments may tune them without
// touching analyzer code.
type InsightPolicy struct {
	// MinOrderCount is the minimum shipments on a lane before any
	// recommendation about it is made.
	MinOrderCount int

	// MinPerOrderSaving is the strict per-order saving threshold for a cost
	// recommendation. Savings at exactly this value do not qualify.
	MinPerOrderSaving float64

	// MinSharedReasonRTOs is the minimum returns sharing one reason before
	// the pattern counts as addressable.
	MinSharedReasonRTOs int

	// MitigationEffectiveness is the assumed fraction of addressable returns
	// a mitigation prevents.
	MitigationEffectiveness float64

	// MitigationCostPerShipment is the assumed cost of applying a mitigation
	// across all shipments that produced returns.
	MitigationCostPerShipment float64
}

// DefaultInsightPolicy returns the standard analyzer thresholds.
func DefaultInsightPolicy() InsightPolicy {
	return InsightPolicy{
		MinOrderCount:             5,
		MinPerOrderSaving:         15,
		MinSharedReasonRTOs:       3,
		MitigationEffectiveness:   0.6,
		MitigationCostPerShipment: 2,
	}
}

// AnalysisInput is the shared input every analyzer receives: one company's
// shipment history plus the carrier catalog for what-if comparisons.
type AnalysisInput struct {
	CompanyID kernel.UUID
	AsOf      time.Time
	Records   []*shipment.Record
	Carriers  []*carrier.Profile
	Policy    InsightPolicy
}

// Analyzer is one independent insight strategy. Returning a nil insight with
// a nil error means the pattern the analyzer looks for is absent, which is
// the common case and not an error.
type Analyzer interface {
	Name() string
	Analyze(input AnalysisInput) (*insight.Insight, error)
}

// Confidence tuning shared by the analyzers. Confidence grows linearly with
// sample size up to fullConfidenceSamples and decays when the newest
// supporting record is stale.
const (
	fullConfidenceSamples = 50
	freshDataWindow       = 30 * 24 * time.Hour
	staleDataWindow       = 90 * 24 * time.Hour
)

// confidenceFrom derives a [0, 1] confidence from how much supporting data
// exists and how fresh it is.
func confidenceFrom(sampleCount int, latest, asOf time.Time) float64 {
	if sampleCount <= 0 {
		return 0
	}

	base := float64(sampleCount) / fullConfidenceSamples
	if base > 1 {
		base = 1
	}

	age := asOf.Sub(latest)
	switch {
	case age <= freshDataWindow:
		return base
	case age <= staleDataWindow:
		return base * 0.75
	default:
		return base * 0.5
	}
}
