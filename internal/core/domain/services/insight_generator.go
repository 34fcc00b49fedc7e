package services

import (
	"fmt"
	"log/slog"
	"sort"

	"routing/internal/core/domain/model/insight"
)

// InsightGenerator runs the configured analyzers over a company's shipment
// history and merges their findings into one ordered list.
//
// Analyzer failures are isolated: a panicking or erroring analyzer is logged
// and skipped, and the remaining analyzers still contribute. A company must
// never lose all insights because one strategy hit bad data.
type InsightGenerator struct {
	analyzers []Analyzer
	logger    *slog.Logger
}

// NewInsightGenerator creates a generator over the given analyzers.
// A nil logger falls back to the default slog logger.
func NewInsightGenerator(logger *slog.Logger, analyzers ...Analyzer) *InsightGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightGenerator{
		analyzers: analyzers,
		logger:    logger.With("component", "insight-generator"),
	}
}

// DefaultAnalyzers returns the standard analyzer set in its canonical order.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		NewCostOptimizationAnalyzer(),
		NewRTOPreventionAnalyzer(),
		NewEfficiencyComparisonAnalyzer(),
		NewGrowthOpportunityAnalyzer(),
	}
}

// Generate runs every analyzer and returns the found insights ordered by
// priority, then by confidence within the same priority. The result is empty,
// never nil-dereferencing, when no analyzer finds anything.
func (g *InsightGenerator) Generate(input AnalysisInput) []insight.Insight {
	insights := make([]insight.Insight, 0, len(g.analyzers))

	for _, analyzer := range g.analyzers {
		found, err := g.runIsolated(analyzer, input)
		if err != nil {
			g.logger.Error("analyzer failed, skipping",
				"analyzer", analyzer.Name(), "company_id", input.CompanyID, "error", err)
			continue
		}
		if found != nil {
			insights = append(insights, *found)
		}
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Priority != insights[j].Priority {
			return insights[i].Priority < insights[j].Priority
		}
		if insights[i].Confidence != insights[j].Confidence {
			return insights[i].Confidence > insights[j].Confidence
		}
		return insights[i].Type < insights[j].Type
	})

	return insights
}

// runIsolated converts an analyzer panic into an error so one bad strategy
// cannot take down the whole generation pass.
func (g *InsightGenerator) runIsolated(analyzer Analyzer, input AnalysisInput) (found *insight.Insight, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = fmt.Errorf("analyzer panicked: %v", r)
		}
	}()

	return analyzer.Analyze(input)
}
