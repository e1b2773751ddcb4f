package coordinators_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
)

// fakeCoordinator is a scriptable coordinator for router tests
type fakeCoordinator struct {
	name    string
	handles bool
	recs    []coordinators.Recommendation
	err     error
	panics  bool
	delay   time.Duration
}

func (f *fakeCoordinator) Name() string      { return f.name }
func (f *fakeCoordinator) Priority() float64 { return 50 }

func (f *fakeCoordinator) CanHandle(state *entities.GameState) bool { return f.handles }

func (f *fakeCoordinator) Recommend(ctx context.Context, state *entities.GameState) ([]coordinators.Recommendation, error) {
	if f.panics {
		panic("scripted panic")
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.recs, f.err
}

func rec(actionType entities.ActionType, priority, confidence float64) coordinators.Recommendation {
	return coordinators.Recommendation{
		Action:     entities.Action{Type: actionType},
		Priority:   priority,
		Confidence: confidence,
	}
}

func newRouter(t *testing.T, coords ...coordinators.Coordinator) *coordinators.Router {
	t.Helper()
	r, err := coordinators.NewRouter(&coordinators.RouterConfig{Coordinators: coords})
	require.NoError(t, err)
	return r
}

func TestNewRouter_RequiresCoordinators(t *testing.T) {
	_, err := coordinators.NewRouter(&coordinators.RouterConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDecide_NilState(t *testing.T) {
	r := newRouter(t, &fakeCoordinator{name: "a", handles: true})
	_, err := r.Decide(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDecide_SelectsMaxPriorityTimesConfidence(t *testing.T) {
	r := newRouter(t,
		&fakeCoordinator{name: "low", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionMove, 50, 0.9), // weight 45
		}},
		&fakeCoordinator{name: "high", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionAttack, 80, 0.85), // weight 68
		}},
	)

	d, err := r.Decide(context.Background(), &entities.GameState{})
	require.NoError(t, err)
	assert.Equal(t, entities.ActionAttack, d.Action.Type)
	assert.Equal(t, "high", d.Source)
	assert.Equal(t, 2, d.Considered)
}

func TestDecide_TieGoesToFirstRegistered(t *testing.T) {
	r := newRouter(t,
		&fakeCoordinator{name: "first", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionMove, 60, 0.5),
		}},
		&fakeCoordinator{name: "second", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionAttack, 60, 0.5),
		}},
	)

	for i := 0; i < 10; i++ {
		d, err := r.Decide(context.Background(), &entities.GameState{})
		require.NoError(t, err)
		assert.Equal(t, "first", d.Source)
	}
}

func TestDecide_EmptyRecommendationsYieldNoop(t *testing.T) {
	r := newRouter(t,
		&fakeCoordinator{name: "idle", handles: false},
		&fakeCoordinator{name: "quiet", handles: true},
	)

	d, err := r.Decide(context.Background(), &entities.GameState{})
	require.NoError(t, err)
	assert.Equal(t, entities.ActionNone, d.Action.Type)
	assert.Empty(t, d.Source)
}

func TestDecide_FaultingCoordinatorIsIsolated(t *testing.T) {
	r := newRouter(t,
		&fakeCoordinator{name: "broken", handles: true, err: errors.Internal("boom")},
		&fakeCoordinator{name: "panicky", handles: true, panics: true},
		&fakeCoordinator{name: "healthy", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionPickUp, 40, 0.8),
		}},
	)

	d, err := r.Decide(context.Background(), &entities.GameState{})
	require.NoError(t, err)
	assert.Equal(t, entities.ActionPickUp, d.Action.Type)
	assert.Equal(t, "healthy", d.Source)
}

func TestDecide_ContractViolationDropped(t *testing.T) {
	r := newRouter(t,
		&fakeCoordinator{name: "cheater", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionAttack, 150, 1.0), // priority out of range
			rec(entities.ActionAttack, 50, 1.5),  // confidence out of range
		}},
		&fakeCoordinator{name: "honest", handles: true, recs: []coordinators.Recommendation{
			rec(entities.ActionMove, 10, 0.5),
		}},
	)

	d, err := r.Decide(context.Background(), &entities.GameState{})
	require.NoError(t, err)
	assert.Equal(t, "honest", d.Source)
	assert.Equal(t, 1, d.Considered)
}

func TestDecide_BudgetOverrunTreatedAsFailed(t *testing.T) {
	r, err := coordinators.NewRouter(&coordinators.RouterConfig{
		Coordinators: []coordinators.Coordinator{
			&fakeCoordinator{name: "slow", handles: true, delay: 500 * time.Millisecond, recs: []coordinators.Recommendation{
				rec(entities.ActionAttack, 100, 1.0),
			}},
			&fakeCoordinator{name: "fast", handles: true, recs: []coordinators.Recommendation{
				rec(entities.ActionMove, 20, 0.5),
			}},
		},
		TickBudget: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	d, err := r.Decide(context.Background(), &entities.GameState{})
	require.NoError(t, err)
	assert.Equal(t, "fast", d.Source)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}
