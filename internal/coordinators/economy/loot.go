package economy

import (
	"sort"

	"github.com/openrune/botcore/internal/entities"
)

// Loot scoring weights
const (
	lootValueWeight    = 10.0
	lootDistanceBase   = 30.0
	lootDistanceWeight = 2.0
	lootRareBonus      = 50.0
	lootHighBonus      = 30.0
	lootQuestBonus     = 40.0
	lootExpiringBonus  = 20.0
)

// LootScore is one ground item's pickup ranking
type LootScore struct {
	Item  entities.GroundItem
	Score float64
}

// ScoreItem computes the pickup score for one ground item
func ScoreItem(item entities.GroundItem) float64 {
	distance := item.Distance
	if distance > lootDistanceBase {
		distance = lootDistanceBase
	}
	score := float64(item.Value)*lootValueWeight + (lootDistanceBase-distance)*lootDistanceWeight

	switch item.Rarity {
	case entities.RarityRare:
		score += lootRareBonus
	case entities.RarityHigh:
		score += lootHighBonus
	}
	if item.IsQuestItem {
		score += lootQuestBonus
	}
	if item.ExpiringSoon {
		score += lootExpiringBonus
	}
	return score
}

// PrioritizeLoot produces a total order over the ground items, best pickup
// first. The sort is stable: items with identical scores keep their
// discovery order.
func PrioritizeLoot(items []entities.GroundItem) []LootScore {
	if len(items) == 0 {
		return nil
	}

	scored := make([]LootScore, len(items))
	for i, item := range items {
		scored[i] = LootScore{Item: item, Score: ScoreItem(item)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
