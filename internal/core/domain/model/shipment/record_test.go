package shipment_test

import (
	"testing"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() shipment.RecordParams {
	createdAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	deliveredAt := createdAt.Add(72 * time.Hour)

	return shipment.RecordParams{
		ID:              kernel.NewUUID(),
		OrderID:         kernel.NewUUID(),
		CompanyID:       kernel.NewUUID(),
		CarrierID:       kernel.NewUUID(),
		OriginZone:      kernel.ZoneMetro,
		DestinationZone: kernel.ZoneZonal,
		WeightKg:        1.2,
		CostAmount:      86.50,
		Status:          shipment.StatusDelivered,
		CreatedAt:       createdAt,
		DeliveredAt:     &deliveredAt,
	}
}

func TestNewRecord(t *testing.T) {
	t.Run("valid delivered record", func(t *testing.T) {
		params := validParams()

		record, err := shipment.NewRecord(params)

		require.NoError(t, err)
		require.NoError(t, record.Validate())
		assert.Equal(t, params.OrderID, record.OrderID())
		assert.Equal(t, shipment.StatusDelivered, record.Status())

		days, delivered := record.DeliveryDays()
		assert.True(t, delivered)
		assert.InDelta(t, 3.0, days, 1e-9)
	})

	t.Run("rto record with reason", func(t *testing.T) {
		params := validParams()
		params.Status = shipment.StatusRTO
		params.DeliveredAt = nil
		params.NDRFlag = true
		params.RTOFlag = true
		params.RTOReason = "customer unavailable"

		record, err := shipment.NewRecord(params)

		require.NoError(t, err)
		assert.True(t, record.RTOFlag())
		assert.Equal(t, "customer unavailable", record.RTOReason())

		_, delivered := record.DeliveryDays()
		assert.False(t, delivered)
	})

	testCases := []struct {
		name   string
		mutate func(*shipment.RecordParams)
	}{
		{"missing id", func(p *shipment.RecordParams) { p.ID = kernel.UUID{} }},
		{"missing order id", func(p *shipment.RecordParams) { p.OrderID = kernel.UUID{} }},
		{"missing company id", func(p *shipment.RecordParams) { p.CompanyID = kernel.UUID{} }},
		{"missing carrier id", func(p *shipment.RecordParams) { p.CarrierID = kernel.UUID{} }},
		{"invalid origin zone", func(p *shipment.RecordParams) { p.OriginZone = kernel.ZoneUnknown }},
		{"invalid destination zone", func(p *shipment.RecordParams) { p.DestinationZone = kernel.ZoneUnknown }},
		{"zero weight", func(p *shipment.RecordParams) { p.WeightKg = 0 }},
		{"negative cost", func(p *shipment.RecordParams) { p.CostAmount = -1 }},
		{"unknown status", func(p *shipment.RecordParams) { p.Status = shipment.StatusUnknown }},
		{"zero created at", func(p *shipment.RecordParams) { p.CreatedAt = time.Time{} }},
		{"delivered without delivery time", func(p *shipment.RecordParams) { p.DeliveredAt = nil }},
		{"rto reason without rto flag", func(p *shipment.RecordParams) {
			p.RTOReason = "address issue"
		}},
		{"delivery time on in transit record", func(p *shipment.RecordParams) {
			p.Status = shipment.StatusInTransit
		}},
		{"delivery before creation", func(p *shipment.RecordParams) {
			early := p.CreatedAt.Add(-time.Hour)
			p.DeliveredAt = &early
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)

			_, err := shipment.NewRecord(params)

			require.Error(t, err)
		})
	}

	t.Run("nil record fails validation", func(t *testing.T) {
		var record *shipment.Record
		require.ErrorIs(t, record.Validate(), shipment.ErrRecordIsNotConstructed)
	})
}

func TestRestoreRecord(t *testing.T) {
	params := validParams()

	record := shipment.RestoreRecord(params)

	require.NoError(t, record.Validate())
	assert.Equal(t, params.ID, record.ID())
	assert.Equal(t, params.CarrierID, record.CarrierID())
	assert.Equal(t, params.DestinationZone, record.DestinationZone())
	assert.Equal(t, params.CostAmount, record.CostAmount())
}
