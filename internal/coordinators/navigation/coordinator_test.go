package navigation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators/navigation"
	"github.com/openrune/botcore/internal/entities"
)

func newCoordinator(t *testing.T, cfg config.NavigationConfig) *navigation.Coordinator {
	t.Helper()
	c, err := navigation.NewCoordinator(&navigation.Config{Navigation: cfg})
	require.NoError(t, err)
	return c
}

func openMap(width, height int) *entities.MapInfo {
	return entities.NewMapInfo("prontera", width, height, func(entities.Position) bool {
		return true
	})
}

func navState(m *entities.MapInfo, start, goal entities.Position) *entities.GameState {
	return &entities.GameState{
		Character:   entities.CharacterState{Position: start},
		Destination: &goal,
		Map:         m,
	}
}

func TestCanHandle(t *testing.T) {
	coord := newCoordinator(t, config.Default().Navigation)
	m := openMap(50, 50)

	assert.True(t, coord.CanHandle(navState(m, entities.Position{X: 0, Y: 0}, entities.Position{X: 10, Y: 10})))

	assert.False(t, coord.CanHandle(&entities.GameState{Map: m}), "no destination")
	assert.False(t, coord.CanHandle(&entities.GameState{
		Destination: &entities.Position{X: 10, Y: 10},
	}), "no map")
}

func TestRecommendPlansPath(t *testing.T) {
	coord := newCoordinator(t, config.Default().Navigation)
	m := openMap(50, 50)
	state := navState(m, entities.Position{X: 0, Y: 0}, entities.Position{X: 10, Y: 0})

	recs, err := coord.Recommend(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, entities.ActionMove, rec.Action.Type)
	require.NotEmpty(t, rec.Action.Path)
	assert.Equal(t, entities.Position{X: 0, Y: 0}, rec.Action.Path[0])
	assert.Equal(t, entities.Position{X: 10, Y: 0}, rec.Action.Path[len(rec.Action.Path)-1])
	require.NotNil(t, rec.Action.Destination)
	assert.Equal(t, *rec.Action.Destination, rec.Action.Path[len(rec.Action.Path)-1])
}

func TestRecommendTruncatesToSegment(t *testing.T) {
	cfg := config.Default().Navigation
	cfg.SegmentLength = 5
	coord := newCoordinator(t, cfg)
	m := openMap(100, 100)
	state := navState(m, entities.Position{X: 0, Y: 0}, entities.Position{X: 80, Y: 0})

	recs, err := coord.Recommend(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Len(t, recs[0].Action.Path, 5)
	assert.Equal(t, entities.Position{X: 4, Y: 0}, *recs[0].Action.Destination,
		"segment end becomes the interim destination")
}

func TestRecommendAlreadyThere(t *testing.T) {
	coord := newCoordinator(t, config.Default().Navigation)
	m := openMap(50, 50)
	state := navState(m, entities.Position{X: 10, Y: 10}, entities.Position{X: 10, Y: 11})

	recs, err := coord.Recommend(context.Background(), state)
	require.NoError(t, err)
	assert.Empty(t, recs, "within goal tolerance, nothing to do")
}

func TestRecommendUnreachableGoal(t *testing.T) {
	coord := newCoordinator(t, config.Default().Navigation)
	// Goal sealed inside a wall ring.
	m := entities.NewMapInfo("cave", 30, 30, func(p entities.Position) bool {
		onRing := (p.X == 19 || p.X == 21 || p.Y == 19 || p.Y == 21) &&
			p.X >= 19 && p.X <= 21 && p.Y >= 19 && p.Y <= 21
		return !onRing
	})
	state := navState(m, entities.Position{X: 0, Y: 0}, entities.Position{X: 20, Y: 20})

	recs, err := coord.Recommend(context.Background(), state)
	require.NoError(t, err, "unreachable goal is not an error")
	assert.Empty(t, recs)
}

func TestConfigValidation(t *testing.T) {
	cfg := config.Default().Navigation
	cfg.MaxExpansions = 0
	_, err := navigation.NewCoordinator(&navigation.Config{Navigation: cfg})
	assert.Error(t, err)

	cfg = config.Default().Navigation
	cfg.SegmentLength = 0
	_, err = navigation.NewCoordinator(&navigation.Config{Navigation: cfg})
	assert.Error(t, err)
}
