package services

import (
	"fmt"
	"sort"
	"time"

	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/model/kernel"
)

// EfficiencyComparisonAnalyzer compares the delivery speed of the carriers a
// company actually used on the same lane. When a less-used carrier has been
// materially faster than the dominant one, the gap is surfaced.
type EfficiencyComparisonAnalyzer struct{}

func NewEfficiencyComparisonAnalyzer() EfficiencyComparisonAnalyzer {
	return EfficiencyComparisonAnalyzer{}
}

func (EfficiencyComparisonAnalyzer) Name() string {
	return "efficiency-comparison"
}

// materialSpeedGapDays is the minimum average delivery-day gap worth
// surfacing.
const materialSpeedGapDays = 1.0

type carrierLaneStats struct {
	carrierID kernel.UUID
	count     int
	delivered int
	totalDays float64
	latest    time.Time
}

func (a EfficiencyComparisonAnalyzer) Analyze(input AnalysisInput) (*insight.Insight, error) {
	var best *insight.Insight

	for _, zone := range []kernel.Zone{
		kernel.ZoneLocal, kernel.ZoneZonal, kernel.ZoneMetro, kernel.ZoneRestOfCountry,
	} {
		candidate := a.analyzeLane(input, zone)
		if candidate == nil {
			continue
		}
		if best == nil || candidate.Confidence > best.Confidence {
			best = candidate
		}
	}

	return best, nil
}

func (EfficiencyComparisonAnalyzer) analyzeLane(input AnalysisInput, zone kernel.Zone) *insight.Insight {
	byCarrier := map[kernel.UUID]*carrierLaneStats{}
	for _, record := range input.Records {
		if record == nil || record.DestinationZone() != zone {
			continue
		}
		stats := byCarrier[record.CarrierID()]
		if stats == nil {
			stats = &carrierLaneStats{carrierID: record.CarrierID()}
			byCarrier[record.CarrierID()] = stats
		}
		stats.count++
		if days, ok := record.DeliveryDays(); ok {
			stats.delivered++
			stats.totalDays += days
		}
		if record.CreatedAt().After(stats.latest) {
			stats.latest = record.CreatedAt()
		}
	}

	// Only carriers with enough delivered volume on the lane are comparable.
	var comparable []*carrierLaneStats
	for _, stats := range byCarrier {
		if stats.count >= input.Policy.MinOrderCount && stats.delivered > 0 {
			comparable = append(comparable, stats)
		}
	}
	if len(comparable) < 2 {
		return nil
	}

	sort.Slice(comparable, func(i, j int) bool {
		return comparable[i].carrierID.String() < comparable[j].carrierID.String()
	})

	dominant := comparable[0]
	fastest := comparable[0]
	for _, stats := range comparable[1:] {
		if stats.count > dominant.count {
			dominant = stats
		}
		if stats.avgDays() < fastest.avgDays() {
			fastest = stats
		}
	}

	gap := dominant.avgDays() - fastest.avgDays()
	if fastest.carrierID == dominant.carrierID || gap < materialSpeedGapDays {
		return nil
	}

	fastestName := carrierNameByID(input, fastest.carrierID)
	dominantName := carrierNameByID(input, dominant.carrierID)
	latest := dominant.latest
	if fastest.latest.After(latest) {
		latest = fastest.latest
	}

	return &insight.Insight{
		Type:       insight.TypeEfficiencyComparison,
		Priority:   insight.PriorityMedium,
		Confidence: confidenceFrom(dominant.count+fastest.count, latest, input.AsOf),
		Summary: fmt.Sprintf(
			"%s delivers %s shipments %.1f days faster on average than %s",
			fastestName, zone, gap, dominantName),
		Metrics: map[string]float64{
			"dominantAvgDays": kernel.RoundMoney(dominant.avgDays()),
			"fastestAvgDays":  kernel.RoundMoney(fastest.avgDays()),
			"avgDaysGap":      kernel.RoundMoney(gap),
			"dominantCount":   float64(dominant.count),
			"fastestCount":    float64(fastest.count),
		},
	}
}

func (s *carrierLaneStats) avgDays() float64 {
	if s.delivered == 0 {
		return 0
	}
	return s.totalDays / float64(s.delivered)
}

func carrierNameByID(input AnalysisInput, id kernel.UUID) string {
	for _, profile := range input.Carriers {
		if profile.Validate() == nil && profile.ID().IsEqual(id) {
			return profile.Name()
		}
	}
	return id.String()
}
