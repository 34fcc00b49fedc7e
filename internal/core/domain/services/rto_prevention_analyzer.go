package services

import (
	"fmt"

	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/model/kernel"
)

// RTOPreventionAnalyzer looks for a dominant return reason in the company's
// RTO history and quantifies what addressing it would be worth.
//
// The arithmetic is deliberately simple and explainable:
//   - preventable returns = round(shared-reason returns x mitigation effectiveness)
//   - estimated savings   = preventable returns x average loss per return
//   - mitigation cost     = all returns x per-shipment mitigation cost
//   - net benefit         = estimated savings - mitigation cost
type RTOPreventionAnalyzer struct{}

func NewRTOPreventionAnalyzer() RTOPreventionAnalyzer {
	return RTOPreventionAnalyzer{}
}

func (RTOPreventionAnalyzer) Name() string {
	return "rto-prevention"
}

func (RTOPreventionAnalyzer) Analyze(input AnalysisInput) (*insight.Insight, error) {
	var (
		rtoCount  int
		totalLoss float64
		byReason  = map[string]int{}
		latest    = input.AsOf
		haveAny   bool
	)

	for _, record := range input.Records {
		if record == nil || !record.RTOFlag() {
			continue
		}
		rtoCount++
		totalLoss += record.CostAmount()
		if reason := record.RTOReason(); reason != "" {
			byReason[reason]++
		}
		if !haveAny || record.CreatedAt().After(latest) {
			latest = record.CreatedAt()
			haveAny = true
		}
	}

	if rtoCount == 0 {
		return nil, nil
	}

	topReason, topCount := dominantReason(byReason)
	if topCount < input.Policy.MinSharedReasonRTOs {
		return nil, nil
	}

	avgLoss := totalLoss / float64(rtoCount)
	preventable := kernel.RoundHalfUp(float64(topCount) * input.Policy.MitigationEffectiveness)
	savings := kernel.RoundMoney(float64(preventable) * avgLoss)
	mitigationCost := kernel.RoundMoney(float64(rtoCount) * input.Policy.MitigationCostPerShipment)
	netBenefit := kernel.RoundMoney(savings - mitigationCost)

	priority := insight.PriorityHigh
	if netBenefit <= 0 {
		priority = insight.PriorityLow
	}

	return &insight.Insight{
		Type:       insight.TypeRTOPrevention,
		Priority:   priority,
		Confidence: confidenceFrom(rtoCount, latest, input.AsOf),
		Summary: fmt.Sprintf(
			"%d of %d returns share reason %q; mitigating it could prevent %d returns and save %.2f net",
			topCount, rtoCount, topReason, preventable, netBenefit),
		Metrics: map[string]float64{
			"rtoCount":          float64(rtoCount),
			"sharedReasonCount": float64(topCount),
			"avgLossPerReturn":  kernel.RoundMoney(avgLoss),
			"preventableCount":  float64(preventable),
			"estimatedSavings":  savings,
			"mitigationCost":    mitigationCost,
			"netBenefit":        netBenefit,
		},
	}, nil
}

// dominantReason picks the most frequent reason, breaking count ties by the
// lexicographically smaller reason so the result is deterministic.
func dominantReason(byReason map[string]int) (string, int) {
	var (
		topReason string
		topCount  int
	)
	for reason, count := range byReason {
		if count > topCount || (count == topCount && reason < topReason) {
			topReason = reason
			topCount = count
		}
	}
	return topReason, topCount
}
