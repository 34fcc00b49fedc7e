package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/order"
	"routing/internal/core/domain/model/routing"
	"routing/internal/core/domain/model/shipment"
	"routing/internal/core/domain/services"
	"routing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog struct {
	profiles []*carrier.Profile
}

func (c staticCatalog) All(context.Context) ([]*carrier.Profile, error) {
	return c.profiles, nil
}

func (c staticCatalog) Get(_ context.Context, id kernel.UUID) (*carrier.Profile, error) {
	for _, profile := range c.profiles {
		if profile.ID().IsEqual(id) {
			return profile, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("carrierID", id.String())
}

type stubPerformanceProvider struct {
	err error
}

func (s stubPerformanceProvider) Performance(
	_ context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
) (carrier.Performance, error) {
	if s.err != nil {
		return carrier.Performance{}, s.err
	}
	return carrier.DefaultPerformance(carrierID, zone), nil
}

func zonalProfile(t *testing.T, name string, baseRate float64) *carrier.Profile {
	t.Helper()
	rateTable, err := carrier.NewRateTable(baseRate, 0, 1.5, 0, 0.02, 20)
	require.NoError(t, err)
	profile, err := carrier.NewProfile(kernel.NewUUID(), name, rateTable, []carrier.ServiceLevel{
		{Zone: kernel.ZoneZonal, StandardDays: 3, ExpressDays: 2},
	})
	require.NoError(t, err)
	return profile
}

func metroOnlyProfile(t *testing.T, name string) *carrier.Profile {
	t.Helper()
	rateTable, err := carrier.NewRateTable(40, 0, 1.5, 0, 0.02, 20)
	require.NoError(t, err)
	profile, err := carrier.NewProfile(kernel.NewUUID(), name, rateTable, []carrier.ServiceLevel{
		{Zone: kernel.ZoneMetro, StandardDays: 2, ExpressDays: 1},
	})
	require.NoError(t, err)
	return profile
}

func seedConfirmedOrder(t *testing.T, store *memoryOrderStore) *order.Order {
	t.Helper()
	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), createdAt)
	require.NoError(t, err)
	require.NoError(t, aggregate.TransitionTo(order.StatusConfirmed, createdAt.Add(time.Minute), "ops", ""))
	store.put(aggregate)
	return aggregate
}

func newRouteHandler(
	factory *memoryUoWFactory,
	catalog staticCatalog,
	perf stubPerformanceProvider,
	at time.Time,
) commands.RouteOrderCommandHandler {
	return commands.NewRouteOrderCommandHandler(
		fullUoWFactory{factory},
		catalog,
		perf,
		services.NewCarrierSelector(services.SelectorConfig{}),
		instantPolicy(3),
		func() time.Time { return at },
	)
}

func TestRouteOrderCommandHandler_Handle_AssignsWinnerAndBooksShipment(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()
	aggregate := seedConfirmedOrder(t, store)
	bookedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	cheap := zonalProfile(t, "Cheap Express", 40)
	costly := zonalProfile(t, "Costly Express", 70)
	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{costly, cheap}},
		stubPerformanceProvider{}, bookedAt)

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	decision, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, decision.SelectedCarrierID.IsEqual(cheap.ID()))
	assert.Equal(t, "Cheap Express", decision.CarrierName)
	assert.InDelta(t, 40.0, decision.EstimatedCost, 1e-9)
	assert.Equal(t, 3, decision.EstimatedDays)
	assert.Len(t, decision.Alternatives, 2)

	stored, err := store.get(aggregate.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusCarrierAssigned, stored.Status())
	assert.Equal(t, int64(3), stored.ConcurrencyVersion())
	require.NotNil(t, stored.CarrierID())
	assert.True(t, stored.CarrierID().IsEqual(cheap.ID()))
	require.NotNil(t, stored.ActiveShipmentID())

	records := factory.log.all()
	require.Len(t, records, 1)
	booked := records[0]
	assert.True(t, booked.ID().IsEqual(*stored.ActiveShipmentID()))
	assert.True(t, booked.OrderID().IsEqual(aggregate.ID()))
	assert.True(t, booked.CompanyID().IsEqual(aggregate.CompanyID()))
	assert.True(t, booked.CarrierID().IsEqual(cheap.ID()))
	// Pair-derived classification: the lane zone lands on both ends.
	assert.Equal(t, kernel.ZoneZonal, booked.OriginZone())
	assert.Equal(t, kernel.ZoneZonal, booked.DestinationZone())
	assert.InDelta(t, 0.5, booked.WeightKg(), 1e-9)
	assert.InDelta(t, decision.EstimatedCost, booked.CostAmount(), 1e-9)
	assert.Equal(t, shipment.StatusInTransit, booked.Status())
	assert.Equal(t, bookedAt, booked.CreatedAt())
}

func TestRouteOrderCommandHandler_Handle_NoServiceableCarrier(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()
	aggregate := seedConfirmedOrder(t, store)

	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{metroOnlyProfile(t, "Metro Only")}},
		stubPerformanceProvider{}, time.Now())

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrNoServiceableCarrier)

	assert.Equal(t, int64(2), store.version(aggregate.ID()), "failed routing must not touch the order")
	assert.Empty(t, factory.log.all())
}

func TestRouteOrderCommandHandler_Handle_OrderNotRoutable(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()
	aggregate := seedOrder(t, store) // still Created, routing requires Confirmed

	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{zonalProfile(t, "Cheap Express", 40)}},
		stubPerformanceProvider{}, time.Now())

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	assert.Equal(t, int64(1), store.version(aggregate.ID()))
	assert.Empty(t, factory.log.all())
}

func TestRouteOrderCommandHandler_Handle_ShipmentAlreadyActive(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()
	aggregate := seedConfirmedOrder(t, store)

	inFlight := kernel.NewUUID()
	params := snapshotOrder(aggregate)
	params.ActiveShipmentID = &inFlight
	store.putParams(params)

	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{zonalProfile(t, "Cheap Express", 40)}},
		stubPerformanceProvider{}, time.Now())

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrShipmentAlreadyActive)
	assert.Empty(t, factory.log.all())
}

func TestRouteOrderCommandHandler_Handle_PerformanceProviderError(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()
	aggregate := seedConfirmedOrder(t, store)

	providerErr := errors.New("lane metrics unavailable")
	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{zonalProfile(t, "Cheap Express", 40)}},
		stubPerformanceProvider{err: providerErr}, time.Now())

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, providerErr)
	assert.Equal(t, int64(2), store.version(aggregate.ID()))
}

func TestRouteOrderCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	store := newMemoryOrderStore()

	factory := newMemoryUoWFactory(store)
	h := newRouteHandler(factory, staticCatalog{profiles: []*carrier.Profile{zonalProfile(t, "Cheap Express", 40)}},
		stubPerformanceProvider{}, time.Now())

	cmd, err := commands.NewRouteOrderCommand(kernel.NewUUID(), zonalRoutingRequest(t, routing.ProfileCost))
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, factory.log.all())
}
