package commands

import (
	"context"
	"fmt"
	"time"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/optimistic"
)

// ApplyTransitionCommandHandler moves orders along the lifecycle graph under
// optimistic concurrency. Every attempt runs the full cycle against fresh
// state: read, validate reachability, mutate, version-gated write. A lost
// write race is retried transparently; an invalid transition is a logic
// error and fails immediately without retry.
type ApplyTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     optimistic.Policy
	now        func() time.Time
}

// NewApplyTransitionCommandHandler creates a handler for lifecycle transitions.
// A nil now falls back to time.Now.
func NewApplyTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	policy optimistic.Policy,
	now func() time.Time,
) ApplyTransitionCommandHandler {
	if now == nil {
		now = time.Now
	}
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		now:        now,
	}
}

// Handle processes the transition command.
//
// With ExpectedVersion set, a stored version mismatch fails immediately with
// a version-is-invalid error; without it, conflicts retry per the policy and
// exhaustion surfaces a concurrency conflict error carrying the last
// observed version.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return optimistic.Execute(ctx, h.policy, cmd.OrderID().String(), func(ctx context.Context) (int64, error) {
		return h.attempt(ctx, cmd)
	})
}

func (h *ApplyTransitionCommandHandler) attempt(ctx context.Context, cmd ApplyTransitionCommand) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	loadedVersion := aggregate.ConcurrencyVersion()
	if expected := cmd.ExpectedVersion(); expected != nil && *expected != loadedVersion {
		return loadedVersion, errs.NewVersionIsInvalidErrorWithCause("expectedVersion",
			fmt.Errorf("stored version is %d, caller expected %d", loadedVersion, *expected))
	}

	if err = aggregate.TransitionTo(cmd.Target(), h.now(), cmd.Actor(), cmd.Note()); err != nil {
		return loadedVersion, err
	}

	if err = repo.UpdateWithVersion(ctx, aggregate, loadedVersion); err != nil {
		return loadedVersion, err
	}

	if err = uow.Commit(ctx); err != nil {
		return loadedVersion, err
	}

	return aggregate.ConcurrencyVersion(), nil
}
