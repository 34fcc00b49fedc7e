package routing

import (
	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
)

// Candidate pairs a carrier's static configuration with its derived
// performance snapshot for the requested zone.
type Candidate struct {
	Profile     *carrier.Profile
	Performance carrier.Performance
}

// RankedCandidate is one scored entry in the final ordering.
type RankedCandidate struct {
	CarrierID     kernel.UUID
	CarrierName   string
	Score         float64
	EstimatedCost float64
	EstimatedDays int
}

// Decision is the outcome of carrier selection: the winner, the numbers it
// won on, human-readable reasons, and the full ranking for auditability.
//
// Warnings carries non-fatal signals, such as fallback performance priors
// being used for a candidate.
type Decision struct {
	SelectedCarrierID kernel.UUID
	CarrierName       string
	EstimatedCost     float64
	EstimatedDays     int
	Score             float64
	Reasons           []string
	Warnings          []string
	Alternatives      []RankedCandidate
}
