package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators/economy"
	"github.com/openrune/botcore/internal/entities"
)

func newCoordinator(t *testing.T) *economy.Coordinator {
	t.Helper()
	c, err := economy.NewCoordinator(&economy.Config{Economy: config.Default().Economy})
	require.NoError(t, err)
	return c
}

func TestCanHandle(t *testing.T) {
	c := newCoordinator(t)

	assert.False(t, c.CanHandle(&entities.GameState{
		Character: entities.CharacterState{Weight: 10, MaxWeight: 100},
	}))

	assert.True(t, c.CanHandle(&entities.GameState{
		GroundItems: []entities.GroundItem{item("loot", 1, 1)},
	}))

	assert.True(t, c.CanHandle(&entities.GameState{
		Character: entities.CharacterState{Weight: 90, MaxWeight: 100},
	}))
}

func TestRecommend_OneRecommendationPerPickup(t *testing.T) {
	c := newCoordinator(t)
	state := &entities.GameState{
		Character: entities.CharacterState{Weight: 10, MaxWeight: 100},
		GroundItems: []entities.GroundItem{
			item("cheap", 1, 5),
			item("precious", 50, 5),
		},
	}

	recs, err := c.Recommend(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Ranked best first, confidence falling with rank.
	assert.Equal(t, "precious", recs[0].Action.ItemID)
	assert.Equal(t, "cheap", recs[1].Action.ItemID)
	assert.Greater(t, recs[0].Confidence, recs[1].Confidence)
	for _, r := range recs {
		assert.Equal(t, entities.ActionPickUp, r.Action.Type)
		assert.True(t, r.Valid())
	}
}

func TestRecommend_OverweightGoesToStorage(t *testing.T) {
	c := newCoordinator(t)
	state := &entities.GameState{
		Character:   entities.CharacterState{Weight: 90, MaxWeight: 100},
		GroundItems: []entities.GroundItem{item("tempting", 100, 2)},
	}

	recs, err := c.Recommend(context.Background(), state)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	// The storage trip outranks any pickup this tick.
	assert.Equal(t, entities.ActionTalkToNPC, recs[0].Action.Type)
	assert.Equal(t, "storage", recs[0].Action.TargetID)
	assert.Greater(t, recs[0].Priority*recs[0].Confidence, recs[1].Priority*recs[1].Confidence)
}

func TestRecommend_InventoryFullGoesSelling(t *testing.T) {
	c := newCoordinator(t)
	state := &entities.GameState{
		Character: entities.CharacterState{Weight: 10, MaxWeight: 100, InventoryUsed: 60},
	}

	recs, err := c.Recommend(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "vendor", recs[0].Action.TargetID)
}

func TestRecommend_NothingToDo(t *testing.T) {
	c := newCoordinator(t)
	recs, err := c.Recommend(context.Background(), &entities.GameState{
		Character: entities.CharacterState{Weight: 10, MaxWeight: 100},
	})
	require.NoError(t, err)
	assert.Empty(t, recs)
}
