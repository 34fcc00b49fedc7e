// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read storage directly and never mutate state.
package queries

import (
	"errors"
	"fmt"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var ErrGetCarrierPerformanceQueryIsNotConstructed = errors.New(
	"GetCarrierPerformanceQuery must be created via NewGetCarrierPerformanceQuery constructor",
)

// GetCarrierPerformanceQuery retrieves the derived performance snapshot for
// one carrier in one zone over a lookback window.
//
// Example:
//
//	query, err := NewGetCarrierPerformanceQuery(carrierID, kernel.ZoneMetro, 0)
//	if err != nil {
//	    return err
//	}
//
//	performance, err := handler.Handle(ctx, query)
type GetCarrierPerformanceQuery struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	zone      kernel.Zone
	window    time.Duration

	guard guard.ConstructorGuard
}

// NewGetCarrierPerformanceQuery creates a performance query. A zero window
// falls back to the default aggregation lookback.
func NewGetCarrierPerformanceQuery(
	carrierID kernel.UUID,
	zone kernel.Zone,
	window time.Duration,
) (GetCarrierPerformanceQuery, error) {
	query := GetCarrierPerformanceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCarrierID(carrierID),
		query.setZone(zone),
		query.setWindow(window),
	); err != nil {
		return GetCarrierPerformanceQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCarrierPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrGetCarrierPerformanceQueryIsNotConstructed)
}

// CarrierID returns the carrier under evaluation.
func (q GetCarrierPerformanceQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// Zone returns the destination zone the metrics are segmented by.
func (q GetCarrierPerformanceQuery) Zone() kernel.Zone {
	return q.zone
}

// Window returns the lookback window, zero meaning the default.
func (q GetCarrierPerformanceQuery) Window() time.Duration {
	return q.window
}

func (q *GetCarrierPerformanceQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}

func (q *GetCarrierPerformanceQuery) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	q.zone = zone
	return nil
}

func (q *GetCarrierPerformanceQuery) setWindow(window time.Duration) error {
	if window < 0 {
		return errs.NewValueIsInvalidErrorWithCause("window",
			fmt.Errorf("%v is negative", window))
	}

	q.window = window
	return nil
}
