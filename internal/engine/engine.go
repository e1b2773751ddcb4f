// Package engine drives the decision loop: one snapshot in, exactly one
// action out. Deferred actions from the scheduler take the tick's slot
// before a fresh router decision is made.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/scheduler"
)

// Config holds the dependencies for the engine
type Config struct {
	Router    *coordinators.Router
	Scheduler *scheduler.Scheduler
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Router == nil {
		vb.RequiredField("Router")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}

	return vb.Build()
}

// TickInput carries one snapshot plus executor feedback about the
// previously emitted action.
type TickInput struct {
	State *entities.GameState

	// LastActionInvalid reports that the executor could not run the
	// previous action (target gone, trade expired). The action is treated
	// as consumed; it is never retried.
	LastActionInvalid bool
}

// TickOutput is the single action chosen for the tick
type TickOutput struct {
	Action entities.Action
	// Source names the coordinator the action came from, or "scheduler"
	// for a deferred action.
	Source    string
	Reasoning string
}

// Engine owns the per-tick sequencing. Safe for use from a single gateway
// connection; internal state is guarded for defensive reuse.
type Engine struct {
	router *coordinators.Router
	sched  *scheduler.Scheduler

	mu sync.Mutex
	// backlog holds due deferred actions not yet emitted; one leaves per
	// tick so the one-action-per-tick contract holds.
	backlog []entities.Action
	last    entities.Action
}

// New creates an engine
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		router: cfg.Router,
		sched:  cfg.Scheduler,
	}, nil
}

// Tick produces exactly one action for the snapshot. Due deferred actions
// are emitted first, then the router decides fresh. A stale previous
// action is logged and dropped, never retried.
func (e *Engine) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if input.LastActionInvalid && e.last.Type != entities.ActionNone {
		slog.Info("previous action invalidated by executor, dropped",
			"action", e.last.Type,
			"target_id", e.last.TargetID,
		)
		e.last = entities.NoAction()
	}

	e.backlog = append(e.backlog, e.sched.Due()...)

	if len(e.backlog) > 0 {
		action := e.backlog[0]
		e.backlog = e.backlog[1:]
		e.last = action
		return &TickOutput{
			Action:    action,
			Source:    "scheduler",
			Reasoning: "deferred action due",
		}, nil
	}

	decision, err := e.router.Decide(ctx, input.State)
	if err != nil {
		return nil, errors.Wrap(err, "router decision failed")
	}

	e.last = decision.Action
	return &TickOutput{
		Action:    decision.Action,
		Source:    decision.Source,
		Reasoning: decision.Reasoning,
	}, nil
}
