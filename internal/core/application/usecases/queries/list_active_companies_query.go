package queries

import (
	"errors"
	"fmt"
	"time"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// DefaultActivityLookback bounds how far back a company's last booking may be
// for the company to still count as active.
const DefaultActivityLookback = 30 * 24 * time.Hour

var ErrListActiveCompaniesQueryIsNotConstructed = errors.New(
	"ListActiveCompaniesQuery must be created via NewListActiveCompaniesQuery constructor",
)

// ListActiveCompaniesQuery retrieves the companies that booked at least one
// shipment within the lookback window. Used by the scheduled insight refresh
// to decide whose history is worth analyzing.
type ListActiveCompaniesQuery struct { //nolint:recvcheck //using for validation
	lookback time.Duration

	guard guard.ConstructorGuard
}

// NewListActiveCompaniesQuery creates an active-companies query. A zero
// lookback falls back to DefaultActivityLookback.
func NewListActiveCompaniesQuery(lookback time.Duration) (ListActiveCompaniesQuery, error) {
	query := ListActiveCompaniesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLookback(lookback); err != nil {
		return ListActiveCompaniesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListActiveCompaniesQuery) Validate() error {
	return q.guard.Validate(ErrListActiveCompaniesQueryIsNotConstructed)
}

// Lookback returns the activity window, zero meaning the default.
func (q ListActiveCompaniesQuery) Lookback() time.Duration {
	return q.lookback
}

func (q *ListActiveCompaniesQuery) setLookback(lookback time.Duration) error {
	if lookback < 0 {
		return errs.NewValueIsInvalidErrorWithCause("lookback",
			fmt.Errorf("%v is negative", lookback))
	}

	q.lookback = lookback
	return nil
}
