package queries

import (
	"context"
	"time"

	"routing/internal/core/domain/model/insight"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
)

// GenerateInsightsQueryHandler assembles the analyzer input from the shipment
// log and the carrier catalog, then delegates to the insight generator.
type GenerateInsightsQueryHandler struct {
	shipments ports.ShipmentRepository
	catalog   ports.CarrierCatalog
	generator *services.InsightGenerator
	policy    services.InsightPolicy
	now       func() time.Time
}

// NewGenerateInsightsQueryHandler creates a handler for insight generation.
// A nil now falls back to time.Now.
func NewGenerateInsightsQueryHandler(
	shipments ports.ShipmentRepository,
	catalog ports.CarrierCatalog,
	generator *services.InsightGenerator,
	policy services.InsightPolicy,
	now func() time.Time,
) GenerateInsightsQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GenerateInsightsQueryHandler{
		shipments: shipments,
		catalog:   catalog,
		generator: generator,
		policy:    policy,
		now:       now,
	}
}

// Handle executes the query. A company with no shipment history gets an
// empty insight list, not an error.
func (h GenerateInsightsQueryHandler) Handle(
	ctx context.Context,
	query GenerateInsightsQuery,
) ([]insight.Insight, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lookback := query.Lookback()
	if lookback <= 0 {
		lookback = DefaultInsightLookback
	}
	asOf := h.now()

	records, err := h.shipments.GetByCompany(ctx, query.CompanyID(), asOf.Add(-lookback), asOf)
	if err != nil {
		return nil, err
	}

	carriers, err := h.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	return h.generator.Generate(services.AnalysisInput{
		CompanyID: query.CompanyID(),
		AsOf:      asOf,
		Records:   records,
		Carriers:  carriers,
		Policy:    h.policy,
	}), nil
}
