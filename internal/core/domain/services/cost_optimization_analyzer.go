package services

import (
	"fmt"
	"time"

	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/model/kernel"
)

// CostOptimizationAnalyzer compares what a company actually paid per lane
// with the cheapest alternative carrier configured for that lane. The
// carrier already handling most of the lane's volume is never proposed as
// the alternative. A recommendation is only made when the lane has enough
// volume and the per-order saving strictly exceeds the policy threshold.
type CostOptimizationAnalyzer struct{}

func NewCostOptimizationAnalyzer() CostOptimizationAnalyzer {
	return CostOptimizationAnalyzer{}
}

func (CostOptimizationAnalyzer) Name() string {
	return "cost-optimization"
}

type laneStats struct {
	count       int
	totalCost   float64
	totalWeight float64
	latest      time.Time
	byCarrier   map[kernel.UUID]int
}

// mostUsedCarrier returns the carrier behind the largest share of the lane.
// Ties break on the carrier ID string so the pick is deterministic.
func (s *laneStats) mostUsedCarrier() kernel.UUID {
	var best kernel.UUID
	bestCount := 0
	for id, count := range s.byCarrier {
		if count > bestCount || (count == bestCount && id.String() < best.String()) {
			best = id
			bestCount = count
		}
	}
	return best
}

func (CostOptimizationAnalyzer) Analyze(input AnalysisInput) (*insight.Insight, error) {
	lanes := map[kernel.Zone]*laneStats{}
	for _, record := range input.Records {
		if record == nil {
			continue
		}
		zone := record.DestinationZone()
		stats := lanes[zone]
		if stats == nil {
			stats = &laneStats{byCarrier: map[kernel.UUID]int{}}
			lanes[zone] = stats
		}
		stats.count++
		stats.totalCost += record.CostAmount()
		stats.totalWeight += record.WeightKg()
		stats.byCarrier[record.CarrierID()]++
		if record.CreatedAt().After(stats.latest) {
			stats.latest = record.CreatedAt()
		}
	}

	var (
		best        *insight.Insight
		bestSavings float64
	)

	for _, zone := range []kernel.Zone{
		kernel.ZoneLocal, kernel.ZoneZonal, kernel.ZoneMetro, kernel.ZoneRestOfCountry,
	} {
		stats := lanes[zone]
		if stats == nil || stats.count < input.Policy.MinOrderCount {
			continue
		}

		avgCost := stats.totalCost / float64(stats.count)
		avgWeight := stats.totalWeight / float64(stats.count)
		incumbent := stats.mostUsedCarrier()

		cheapest, carrierName, found := cheapestAlternativeFor(input, zone, avgWeight, incumbent)
		if !found {
			continue
		}

		perOrderSaving := avgCost - cheapest
		if perOrderSaving <= input.Policy.MinPerOrderSaving {
			continue
		}

		projected := kernel.RoundMoney(perOrderSaving * float64(stats.count))
		if projected <= bestSavings {
			continue
		}

		priority := insight.PriorityMedium
		if projected >= 1000 {
			priority = insight.PriorityHigh
		}

		bestSavings = projected
		best = &insight.Insight{
			Type:       insight.TypeCostOptimization,
			Priority:   priority,
			Confidence: confidenceFrom(stats.count, stats.latest, input.AsOf),
			Summary: fmt.Sprintf(
				"switching %s shipments to %s would save about %.2f per order (%.2f over %d orders)",
				zone, carrierName, perOrderSaving, projected, stats.count),
			Metrics: map[string]float64{
				"orderCount":       float64(stats.count),
				"avgCurrentCost":   kernel.RoundMoney(avgCost),
				"cheapestAltCost":  cheapest,
				"perOrderSaving":   kernel.RoundMoney(perOrderSaving),
				"projectedSavings": projected,
				"avgBookedWeight":  kernel.RoundMoney(avgWeight),
			},
		}
	}

	return best, nil
}

// cheapestAlternativeFor estimates standard prepaid cost for each configured
// carrier on the lane and returns the cheapest one that is not the incumbent.
// The average booked weight stands in for the lane's typical parcel.
func cheapestAlternativeFor(
	input AnalysisInput, zone kernel.Zone, avgWeight float64, incumbent kernel.UUID,
) (float64, string, bool) {
	var (
		cheapest float64
		name     string
		found    bool
	)

	for _, profile := range input.Carriers {
		if profile.Validate() != nil || !profile.Serviceable(zone) {
			continue
		}
		if profile.ID().IsEqual(incumbent) {
			continue
		}
		breakdown, err := profile.RateTable().EstimateCost(
			avgWeight, kernel.Dimensions{}, zone, kernel.PaymentModePrepaid, false)
		if err != nil {
			continue
		}
		if !found || breakdown.Total < cheapest {
			cheapest = breakdown.Total
			name = profile.Name()
			found = true
		}
	}

	return cheapest, name, found
}
