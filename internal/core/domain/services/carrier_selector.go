package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/routing"
)

// ErrNoServiceableCarrier is the sentinel wrapped by NoServiceableCarrierError.
var ErrNoServiceableCarrier = errors.New("no serviceable carrier for request")

// NoServiceableCarrierError reports that every candidate was excluded before
// ranking, with the per-carrier exclusion reasons for diagnostics.
type NoServiceableCarrierError struct {
	Zone       kernel.Zone
	Exclusions []string
}

func NewNoServiceableCarrierError(zone kernel.Zone, exclusions []string) *NoServiceableCarrierError {
	return &NoServiceableCarrierError{Zone: zone, Exclusions: exclusions}
}

func (e *NoServiceableCarrierError) Error() string {
	return fmt.Sprintf("no serviceable carrier for request: zone is: %s, excluded: %d", e.Zone, len(e.Exclusions))
}

func (e *NoServiceableCarrierError) Unwrap() error {
	return ErrNoServiceableCarrier
}

// Weights is one weighting scheme over the three component scores.
// The components sum to 1 for every built-in profile.
type Weights struct {
	Cost        float64
	Speed       float64
	Reliability float64
}

// profileWeights maps each priority profile to its weighting scheme.
var profileWeights = map[routing.PriorityProfile]Weights{
	routing.ProfileCost:        {Cost: 0.6, Speed: 0.2, Reliability: 0.2},
	routing.ProfileSpeed:       {Cost: 0.2, Speed: 0.6, Reliability: 0.2},
	routing.ProfileReliability: {Cost: 0.2, Speed: 0.2, Reliability: 0.6},
	routing.ProfileBalanced:    {Cost: 0.33, Speed: 0.33, Reliability: 0.34},
}

// SelectorConfig holds the normalization ceilings and the preferred-carrier
// boost. The ceilings turn raw cost and delivery days into 0-100 scores: a
// candidate at or above the ceiling scores zero for that component.
type SelectorConfig struct {
	MaxReasonableCost float64
	MaxReasonableDays int
	PreferredBoost    float64
}

// DefaultSelectorConfig returns the standard selection tuning.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MaxReasonableCost: 100,
		MaxReasonableDays: 7,
		PreferredBoost:    1.1,
	}
}

// CarrierSelector is a domain service that ranks serviceable carriers for a
// routing request and picks the winner. Selection is fully deterministic:
// identical inputs always produce the identical decision.
//
// Business rules:
//   - Candidates not serving the zone or violating a hard constraint are
//     excluded before ranking, never merely ranked lower
//   - Component scores are weighted by the request's priority profile
//   - The preferred carrier's final score is boosted after filtering, so
//     preference can reorder survivors but cannot resurrect an excluded carrier
//   - Ties break by lower cost, then by carrier id
type CarrierSelector struct {
	config SelectorConfig
}

// NewCarrierSelector creates a CarrierSelector with the given tuning.
// Zero-value config fields fall back to the defaults.
func NewCarrierSelector(config SelectorConfig) CarrierSelector {
	defaults := DefaultSelectorConfig()
	if config.MaxReasonableCost <= 0 {
		config.MaxReasonableCost = defaults.MaxReasonableCost
	}
	if config.MaxReasonableDays <= 0 {
		config.MaxReasonableDays = defaults.MaxReasonableDays
	}
	if config.PreferredBoost < 1 {
		config.PreferredBoost = defaults.PreferredBoost
	}
	return CarrierSelector{config: config}
}

type scoredCandidate struct {
	profile       *carrier.Profile
	performance   carrier.Performance
	estimatedCost float64
	estimatedDays int
	score         float64
}

// SelectBestCarrier evaluates the candidates against the request and returns
// the winning decision.
//
// Returns a NoServiceableCarrierError (wrapping ErrNoServiceableCarrier)
// when no candidate survives serviceability and constraint filtering.
func (s CarrierSelector) SelectBestCarrier(
	request routing.Request,
	candidates []routing.Candidate,
) (routing.Decision, error) {
	if err := request.Validate(); err != nil {
		return routing.Decision{}, err
	}

	weights := profileWeights[request.Profile()]
	zone := request.Zone()

	var (
		scored     []scoredCandidate
		exclusions []string
		warnings   []string
	)

	for _, candidate := range candidates {
		if err := candidate.Profile.Validate(); err != nil {
			return routing.Decision{}, err
		}
		name := candidate.Profile.Name()

		if !candidate.Profile.Serviceable(zone) {
			exclusions = append(exclusions, fmt.Sprintf("%s does not serve %s", name, zone))
			continue
		}

		breakdown, err := candidate.Profile.RateTable().EstimateCost(
			request.WeightKg(), request.Dimensions(), zone, request.PaymentMode(), request.Express())
		if err != nil {
			return routing.Decision{}, err
		}

		days, err := candidate.Profile.EstimatedDays(zone, request.Express())
		if err != nil {
			return routing.Decision{}, err
		}

		if maxCost := request.MaxCost(); maxCost != nil && breakdown.Total > *maxCost {
			exclusions = append(exclusions,
				fmt.Sprintf("%s cost %.2f exceeds limit %.2f", name, breakdown.Total, *maxCost))
			continue
		}
		if maxDays := request.MaxDeliveryDays(); maxDays != nil && days > *maxDays {
			exclusions = append(exclusions,
				fmt.Sprintf("%s needs %d days, limit is %d", name, days, *maxDays))
			continue
		}

		if candidate.Performance.DefaultsUsed {
			warnings = append(warnings,
				fmt.Sprintf("%s has no history in %s, default metrics used", name, zone))
		}

		score := s.compositeScore(weights, breakdown.Total, days, candidate.Performance)
		if preferred := request.PreferredCarrierID(); preferred != nil &&
			candidate.Profile.ID().IsEqual(*preferred) {
			score *= s.config.PreferredBoost
		}

		scored = append(scored, scoredCandidate{
			profile:       candidate.Profile,
			performance:   candidate.Performance,
			estimatedCost: breakdown.Total,
			estimatedDays: days,
			score:         score,
		})
	}

	if len(scored) == 0 {
		return routing.Decision{}, NewNoServiceableCarrierError(zone, exclusions)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].estimatedCost != scored[j].estimatedCost {
			return scored[i].estimatedCost < scored[j].estimatedCost
		}
		return scored[i].profile.ID().String() < scored[j].profile.ID().String()
	})

	winner := scored[0]
	decision := routing.Decision{
		SelectedCarrierID: winner.profile.ID(),
		CarrierName:       winner.profile.Name(),
		EstimatedCost:     winner.estimatedCost,
		EstimatedDays:     winner.estimatedDays,
		Score:             winner.score,
		Reasons:           s.reasons(request, winner),
		Warnings:          warnings,
		Alternatives:      make([]routing.RankedCandidate, 0, len(scored)),
	}
	for _, candidate := range scored {
		decision.Alternatives = append(decision.Alternatives, routing.RankedCandidate{
			CarrierID:     candidate.profile.ID(),
			CarrierName:   candidate.profile.Name(),
			Score:         candidate.score,
			EstimatedCost: candidate.estimatedCost,
			EstimatedDays: candidate.estimatedDays,
		})
	}

	return decision, nil
}

// compositeScore blends the three 0-100 component scores by the profile
// weights. Cost and speed are normalized against the configured ceilings,
// reliability is already a percentage.
func (s CarrierSelector) compositeScore(
	weights Weights,
	cost float64,
	days int,
	performance carrier.Performance,
) float64 {
	costScore := clampScore((1 - cost/s.config.MaxReasonableCost) * 100)
	speedScore := clampScore((1 - float64(days)/float64(s.config.MaxReasonableDays)) * 100)

	return weights.Cost*costScore +
		weights.Speed*speedScore +
		weights.Reliability*performance.Reliability
}

func (s CarrierSelector) reasons(request routing.Request, winner scoredCandidate) []string {
	reasons := []string{
		fmt.Sprintf("%s profile ranked %s first with score %.2f",
			request.Profile(), winner.profile.Name(), winner.score),
		fmt.Sprintf("estimated cost %.2f, estimated delivery %d days",
			winner.estimatedCost, winner.estimatedDays),
	}
	if winner.performance.DefaultsUsed {
		reasons = append(reasons, "performance metrics are defaults, no history for this lane")
	} else {
		reasons = append(reasons, fmt.Sprintf("reliability %.1f%% over %d shipments",
			winner.performance.Reliability, winner.performance.SampleCount))
	}
	if preferred := request.PreferredCarrierID(); preferred != nil &&
		winner.profile.ID().IsEqual(*preferred) {
		reasons = append(reasons, "preferred carrier boost applied")
	}
	return reasons
}

func clampScore(score float64) float64 {
	return math.Min(100, math.Max(0, score))
}
