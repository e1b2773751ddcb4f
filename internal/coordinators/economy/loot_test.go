package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/coordinators/economy"
	"github.com/openrune/botcore/internal/entities"
)

func item(id string, value int64, distance float64) entities.GroundItem {
	return entities.GroundItem{ID: id, Name: id, Value: value, Distance: distance}
}

func TestScoreItem_Formula(t *testing.T) {
	t.Run("base terms", func(t *testing.T) {
		// value*10 + (30-distance)*2
		assert.Equal(t, 5.0*10+20*2, economy.ScoreItem(item("i", 5, 10)))
	})

	t.Run("distance capped", func(t *testing.T) {
		assert.Equal(t, 10.0, economy.ScoreItem(item("i", 1, 99)))
	})

	t.Run("bonuses stack", func(t *testing.T) {
		it := item("i", 0, 30)
		it.Rarity = entities.RarityRare
		it.IsQuestItem = true
		it.ExpiringSoon = true
		assert.Equal(t, 50.0+40+20, economy.ScoreItem(it))
	})

	t.Run("high rarity", func(t *testing.T) {
		it := item("i", 0, 30)
		it.Rarity = entities.RarityHigh
		assert.Equal(t, 30.0, economy.ScoreItem(it))
	})
}

func TestPrioritizeLoot_TotalOrder(t *testing.T) {
	items := []entities.GroundItem{
		item("cheap", 1, 5),
		item("precious", 100, 25),
		item("medium", 10, 10),
	}

	ranked := economy.PrioritizeLoot(items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "precious", ranked[0].Item.ID)
	assert.Equal(t, "medium", ranked[1].Item.ID)
	assert.Equal(t, "cheap", ranked[2].Item.ID)
}

func TestPrioritizeLoot_StableOnTies(t *testing.T) {
	// Identical items score identically and must keep discovery order.
	items := []entities.GroundItem{
		item("first_seen", 5, 10),
		item("second_seen", 5, 10),
		item("third_seen", 5, 10),
	}

	ranked := economy.PrioritizeLoot(items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first_seen", ranked[0].Item.ID)
	assert.Equal(t, "second_seen", ranked[1].Item.ID)
	assert.Equal(t, "third_seen", ranked[2].Item.ID)
}

func TestPrioritizeLoot_Empty(t *testing.T) {
	assert.Nil(t, economy.PrioritizeLoot(nil))
}
