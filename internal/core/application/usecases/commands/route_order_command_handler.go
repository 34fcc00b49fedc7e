package commands

import (
	"context"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/routing"
	"routing/internal/core/domain/model/shipment"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
	"routing/internal/pkg/optimistic"
)

// routingActor is recorded in the order history for routing transitions.
const routingActor = "router"

// RouteOrderCommandHandler selects the best carrier for an order and books
// the shipment. The carrier assignment on the order and the shipment record
// commit in one transaction, under the same optimistic retry discipline as
// every other order mutation.
type RouteOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.CarrierCatalog
	perf       ports.PerformanceProvider
	selector   services.CarrierSelector
	policy     optimistic.Policy
	now        func() time.Time
}

// NewRouteOrderCommandHandler creates a handler for routing operations.
// A nil now falls back to time.Now.
func NewRouteOrderCommandHandler(
	uowFactory UoWFactory,
	catalog ports.CarrierCatalog,
	perf ports.PerformanceProvider,
	selector services.CarrierSelector,
	policy optimistic.Policy,
	now func() time.Time,
) RouteOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return RouteOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		perf:       perf,
		selector:   selector,
		policy:     policy,
		now:        now,
	}
}

// Handle routes the order: scores the configured carriers against the
// request, assigns the winner and appends the shipment record.
//
// Fails with a no-serviceable-carrier error when every candidate is
// excluded, and with an invalid transition error when the order is not in a
// routable state.
func (h *RouteOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RouteOrderCommand,
) (routing.Decision, error) {
	if err := cmd.Validate(); err != nil {
		return routing.Decision{}, err
	}

	candidates, err := h.collectCandidates(ctx, cmd.Request())
	if err != nil {
		return routing.Decision{}, err
	}

	decision, err := h.selector.SelectBestCarrier(cmd.Request(), candidates)
	if err != nil {
		return routing.Decision{}, err
	}

	err = optimistic.Execute(ctx, h.policy, cmd.OrderID().String(), func(ctx context.Context) (int64, error) {
		return h.assign(ctx, cmd, decision)
	})
	if err != nil {
		return routing.Decision{}, err
	}

	return decision, nil
}

// collectCandidates pairs every configured carrier with its performance
// snapshot for the request's zone. Serviceability filtering is the
// selector's concern; the handler only gathers inputs.
func (h *RouteOrderCommandHandler) collectCandidates(
	ctx context.Context,
	request routing.Request,
) ([]routing.Candidate, error) {
	profiles, err := h.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]routing.Candidate, 0, len(profiles))
	for _, profile := range profiles {
		performance, perfErr := h.perf.Performance(ctx, profile.ID(), request.Zone())
		if perfErr != nil {
			return nil, perfErr
		}
		candidates = append(candidates, routing.Candidate{
			Profile:     profile,
			Performance: performance,
		})
	}

	return candidates, nil
}

func (h *RouteOrderCommandHandler) assign(
	ctx context.Context,
	cmd RouteOrderCommand,
	decision routing.Decision,
) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	loadedVersion := aggregate.ConcurrencyVersion()
	shipmentID := kernel.NewUUID()
	bookedAt := h.now()

	if err = aggregate.AssignCarrier(decision.SelectedCarrierID, shipmentID, bookedAt, routingActor); err != nil {
		return loadedVersion, err
	}

	request := cmd.Request()
	record, err := shipment.NewRecord(shipment.RecordParams{
		ID:              shipmentID,
		OrderID:         aggregate.ID(),
		CompanyID:       aggregate.CompanyID(),
		CarrierID:       decision.SelectedCarrierID,
		// The zone is classified from the pincode pair, so the lane zone is
		// recorded on both ends.
		OriginZone:      request.Zone(),
		DestinationZone: request.Zone(),
		WeightKg:        request.WeightKg(),
		CostAmount:      decision.EstimatedCost,
		Status:          shipment.StatusInTransit,
		CreatedAt:       bookedAt,
	})
	if err != nil {
		return loadedVersion, err
	}

	if err = uow.ShipmentRepository().Add(ctx, record); err != nil {
		return loadedVersion, err
	}

	if err = orderRepo.UpdateWithVersion(ctx, aggregate, loadedVersion); err != nil {
		return loadedVersion, err
	}

	if err = uow.Commit(ctx); err != nil {
		return loadedVersion, err
	}

	return aggregate.ConcurrencyVersion(), nil
}
