package queries

import (
	"errors"
	"fmt"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// DefaultInsightLookback is the shipment history window analyzed when the
// caller does not specify one. Long enough for the growth analyzer's
// half-over-half comparison and the cost analyzers' lane minimums.
const DefaultInsightLookback = 180 * 24 * time.Hour

var ErrGenerateInsightsQueryIsNotConstructed = errors.New(
	"GenerateInsightsQuery must be created via NewGenerateInsightsQuery constructor",
)

// GenerateInsightsQuery runs the analyzer set over one company's shipment
// history and returns the found insights in priority order.
type GenerateInsightsQuery struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID
	lookback  time.Duration

	guard guard.ConstructorGuard
}

// NewGenerateInsightsQuery creates an insight generation query. A zero
// lookback falls back to DefaultInsightLookback.
func NewGenerateInsightsQuery(companyID kernel.UUID, lookback time.Duration) (GenerateInsightsQuery, error) {
	query := GenerateInsightsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCompanyID(companyID),
		query.setLookback(lookback),
	); err != nil {
		return GenerateInsightsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GenerateInsightsQuery) Validate() error {
	return q.guard.Validate(ErrGenerateInsightsQueryIsNotConstructed)
}

// CompanyID returns the shipping company under analysis.
func (q GenerateInsightsQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Lookback returns the history window, zero meaning the default.
func (q GenerateInsightsQuery) Lookback() time.Duration {
	return q.lookback
}

func (q *GenerateInsightsQuery) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	q.companyID = companyID
	return nil
}

func (q *GenerateInsightsQuery) setLookback(lookback time.Duration) error {
	if lookback < 0 {
		return errs.NewValueIsInvalidErrorWithCause("lookback",
			fmt.Errorf("%v is negative", lookback))
	}

	q.lookback = lookback
	return nil
}
