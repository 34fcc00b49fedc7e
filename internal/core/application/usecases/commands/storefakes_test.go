package commands_test

import (
	"context"
	"sync"
	"time"

	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/order"
	"routing/internal/core/domain/model/shipment"
	"routing/internal/core/ports"
	"routing/internal/pkg/errs"
)

// memoryOrderStore is a concurrency-safe conditional-write order store for
// handler tests. It mirrors the version gate of the real repository: an
// update only applies when the stored version still equals the version the
// caller loaded, everything else fails with a version conflict.
type memoryOrderStore struct {
	mu     sync.Mutex
	orders map[kernel.UUID]order.RestoreOrderParams
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{orders: make(map[kernel.UUID]order.RestoreOrderParams)}
}

func snapshotOrder(aggregate *order.Order) order.RestoreOrderParams {
	return order.RestoreOrderParams{
		ID:                 aggregate.ID(),
		CompanyID:          aggregate.CompanyID(),
		Status:             aggregate.Status(),
		ConcurrencyVersion: aggregate.ConcurrencyVersion(),
		CarrierID:          aggregate.CarrierID(),
		ActiveShipmentID:   aggregate.ActiveShipmentID(),
		StatusHistory:      aggregate.StatusHistory(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

func (s *memoryOrderStore) put(aggregate *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[aggregate.ID()] = snapshotOrder(aggregate)
}

func (s *memoryOrderStore) putParams(params order.RestoreOrderParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[params.ID] = params
}

func (s *memoryOrderStore) get(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	params, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id.String())
	}
	return order.RestoreOrder(params), nil
}

func (s *memoryOrderStore) updateWithVersion(aggregate *order.Order, loadedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
	}
	if current.ConcurrencyVersion != loadedVersion {
		return errs.NewVersionConflictError(aggregate.ID().String(), loadedVersion)
	}
	s.orders[aggregate.ID()] = snapshotOrder(aggregate)
	return nil
}

// bumpVersion simulates a competing writer landing between a handler's read
// and its conditional write.
func (s *memoryOrderStore) bumpVersion(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	params := s.orders[id]
	params.ConcurrencyVersion++
	s.orders[id] = params
}

func (s *memoryOrderStore) version(id kernel.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].ConcurrencyVersion
}

// memoryShipmentLog is an append-only in-memory shipment log.
type memoryShipmentLog struct {
	mu      sync.Mutex
	records []*shipment.Record
}

func (l *memoryShipmentLog) add(record *shipment.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

func (l *memoryShipmentLog) all() []*shipment.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	records := make([]*shipment.Record, len(l.records))
	copy(records, l.records)
	return records
}

// memoryOrderRepo adapts the store to ports.OrderRepository. The afterGet
// hook lets tests inject competing writes between read and conditional write.
type memoryOrderRepo struct {
	store    *memoryOrderStore
	afterGet func(id kernel.UUID)
}

func (r *memoryOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.put(aggregate)
	return nil
}

func (r *memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	aggregate, err := r.store.get(id)
	if err != nil {
		return nil, err
	}
	if r.afterGet != nil {
		r.afterGet(id)
	}
	return aggregate, nil
}

func (r *memoryOrderRepo) UpdateWithVersion(_ context.Context, aggregate *order.Order, loadedVersion int64) error {
	return r.store.updateWithVersion(aggregate, loadedVersion)
}

type memoryShipmentRepo struct {
	log *memoryShipmentLog
}

func (r *memoryShipmentRepo) Add(_ context.Context, record *shipment.Record) error {
	r.log.add(record)
	return nil
}

func (r *memoryShipmentRepo) GetByCarrierAndZone(
	_ context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
	from, to time.Time,
) ([]*shipment.Record, error) {
	var matched []*shipment.Record
	for _, record := range r.log.all() {
		if record.CarrierID() == carrierID && record.DestinationZone() == zone &&
			!record.CreatedAt().Before(from) && !record.CreatedAt().After(to) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (r *memoryShipmentRepo) GetByCompany(
	_ context.Context,
	companyID kernel.UUID,
	from, to time.Time,
) ([]*shipment.Record, error) {
	var matched []*shipment.Record
	for _, record := range r.log.all() {
		if record.CompanyID() == companyID &&
			!record.CreatedAt().Before(from) && !record.CreatedAt().After(to) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// memoryUoW satisfies both commands.OrderUoW and commands.UoW. Writes apply
// immediately under the store mutex; the conditional update itself is the
// atomicity the handlers under test depend on.
type memoryUoW struct {
	orders    *memoryOrderRepo
	shipments *memoryShipmentRepo
}

func (u *memoryUoW) Begin(context.Context) error    { return nil }
func (u *memoryUoW) Commit(context.Context) error   { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return u.orders
}

func (u *memoryUoW) ShipmentRepository() ports.ShipmentRepository {
	return u.shipments
}

type memoryUoWFactory struct {
	store    *memoryOrderStore
	log      *memoryShipmentLog
	afterGet func(id kernel.UUID)
}

func newMemoryUoWFactory(store *memoryOrderStore) *memoryUoWFactory {
	return &memoryUoWFactory{store: store, log: &memoryShipmentLog{}}
}

func (f *memoryUoWFactory) create() *memoryUoW {
	return &memoryUoW{
		orders:    &memoryOrderRepo{store: f.store, afterGet: f.afterGet},
		shipments: &memoryShipmentRepo{log: f.log},
	}
}

// orderUoWFactory exposes the factory under the order-only interface.
type orderUoWFactory struct{ *memoryUoWFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.create() }

// fullUoWFactory exposes the factory under the cross-aggregate interface.
type fullUoWFactory struct{ *memoryUoWFactory }

func (f fullUoWFactory) Create() commands.UoW { return f.create() }
