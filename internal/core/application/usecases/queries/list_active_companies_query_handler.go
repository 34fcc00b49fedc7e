package queries

import (
	"context"
	"time"

	"routing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListActiveCompaniesQueryHandler reads the distinct booking companies from
// the shipment log.
type ListActiveCompaniesQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewListActiveCompaniesQueryHandler creates a handler for active-company queries.
// A nil now falls back to time.Now.
func NewListActiveCompaniesQueryHandler(db *gorm.DB, now func() time.Time) ListActiveCompaniesQueryHandler {
	if now == nil {
		now = time.Now
	}
	return ListActiveCompaniesQueryHandler{db: db, now: now}
}

// Handle executes the query. Results are sorted by company id for
// deterministic iteration order.
func (h ListActiveCompaniesQueryHandler) Handle(
	ctx context.Context,
	query ListActiveCompaniesQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lookback := query.Lookback()
	if lookback <= 0 {
		lookback = DefaultActivityLookback
	}
	asOf := h.now()

	companies := make([]kernel.UUID, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT company_id
		FROM shipments
		WHERE created_at BETWEEN ? AND ?
		ORDER BY company_id
	`, asOf.Add(-lookback), asOf).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		companyID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		companies = append(companies, companyID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return companies, nil
}
