package services

import (
	"fmt"
	"time"

	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/model/kernel"
)

// GrowthOpportunityAnalyzer splits the recent history into two equal halves
// and looks for a lane whose volume is accelerating. Growing lanes are where
// negotiating rates or adding a carrier pays off soonest.
type GrowthOpportunityAnalyzer struct{}

func NewGrowthOpportunityAnalyzer() GrowthOpportunityAnalyzer {
	return GrowthOpportunityAnalyzer{}
}

func (GrowthOpportunityAnalyzer) Name() string {
	return "growth-opportunity"
}

const (
	// growthLookback is the total history considered, split into two halves.
	growthLookback = 60 * 24 * time.Hour

	// growthFactor is the minimum recent-half over earlier-half volume ratio.
	growthFactor = 1.5

	// growthConfidenceScale keeps predictive confidence strictly below what
	// the historical analyzers can reach on the same sample. Extrapolating a
	// trend is weaker evidence than measuring what already happened.
	growthConfidenceScale = 0.6
)

func (GrowthOpportunityAnalyzer) Analyze(input AnalysisInput) (*insight.Insight, error) {
	midpoint := input.AsOf.Add(-growthLookback / 2)
	cutoff := input.AsOf.Add(-growthLookback)

	type halves struct {
		earlier int
		recent  int
		latest  time.Time
	}
	lanes := map[kernel.Zone]*halves{}

	for _, record := range input.Records {
		if record == nil || record.CreatedAt().Before(cutoff) || record.CreatedAt().After(input.AsOf) {
			continue
		}
		zone := record.DestinationZone()
		lane := lanes[zone]
		if lane == nil {
			lane = &halves{}
			lanes[zone] = lane
		}
		if record.CreatedAt().Before(midpoint) {
			lane.earlier++
		} else {
			lane.recent++
		}
		if record.CreatedAt().After(lane.latest) {
			lane.latest = record.CreatedAt()
		}
	}

	var best *insight.Insight
	var bestRatio float64

	for _, zone := range []kernel.Zone{
		kernel.ZoneLocal, kernel.ZoneZonal, kernel.ZoneMetro, kernel.ZoneRestOfCountry,
	} {
		lane := lanes[zone]
		if lane == nil || lane.earlier == 0 || lane.recent < input.Policy.MinOrderCount {
			continue
		}

		ratio := float64(lane.recent) / float64(lane.earlier)
		if ratio < growthFactor || ratio <= bestRatio {
			continue
		}

		bestRatio = ratio
		best = &insight.Insight{
			Type:       insight.TypeGrowthOpportunity,
			Priority:   insight.PriorityLow,
			Confidence: growthConfidenceScale * confidenceFrom(lane.recent+lane.earlier, lane.latest, input.AsOf),
			Summary: fmt.Sprintf(
				"%s volume grew %.0f%% over the last month (%d vs %d shipments)",
				zone, (ratio-1)*100, lane.recent, lane.earlier),
			Metrics: map[string]float64{
				"earlierCount": float64(lane.earlier),
				"recentCount":  float64(lane.recent),
				"growthRatio":  kernel.RoundMoney(ratio),
			},
		}
	}

	return best, nil
}
