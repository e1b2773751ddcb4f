package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/coordinators/combat"
	"github.com/openrune/botcore/internal/entities"
)

const maxEngage = 20.0

func monster(id string, distance float64, threat int) entities.Monster {
	return entities.Monster{
		ID:          id,
		Name:        id,
		Distance:    distance,
		ThreatLevel: threat,
		HPPercent:   100,
	}
}

func TestScoreTarget_Terms(t *testing.T) {
	t.Run("closeness", func(t *testing.T) {
		s := combat.ScoreTarget(monster("m", 5, 0), "", maxEngage)
		assert.Equal(t, 75.0, s.Score) // (20-5)*5
	})

	t.Run("distance capped, never negative", func(t *testing.T) {
		s := combat.ScoreTarget(monster("m", 300, 0), "", maxEngage)
		assert.Equal(t, 0.0, s.Score)
	})

	t.Run("all bonuses stack", func(t *testing.T) {
		m := entities.Monster{
			ID:            "boss",
			Distance:      20,
			ThreatLevel:   3,
			HPPercent:     10,
			IsAttackingMe: true,
			IsBoss:        true,
		}
		s := combat.ScoreTarget(m, "boss", maxEngage)
		// threat 30 + attacking 50 + current 30 + low hp 20 + boss 15
		assert.Equal(t, 145.0, s.Score)
	})
}

func TestScoreTarget_MonotoneInThreat(t *testing.T) {
	prev := -1.0
	for threat := 0; threat <= 10; threat++ {
		s := combat.ScoreTarget(monster("m", 10, threat), "", maxEngage)
		assert.Greater(t, s.Score, prev)
		prev = s.Score
	}
}

func TestScoreTarget_MonotoneInAttackingMe(t *testing.T) {
	calm := combat.ScoreTarget(monster("m", 10, 2), "", maxEngage)

	angry := monster("m", 10, 2)
	angry.IsAttackingMe = true
	assert.Greater(t, combat.ScoreTarget(angry, "", maxEngage).Score, calm.Score)
}

func TestSelectTarget_EmptyList(t *testing.T) {
	assert.Nil(t, combat.SelectTarget(nil, "", maxEngage))
}

func TestSelectTarget_PicksMaximum(t *testing.T) {
	monsters := []entities.Monster{
		monster("far", 18, 1),
		monster("near", 2, 1),
		monster("medium", 10, 1),
	}

	best := combat.SelectTarget(monsters, "", maxEngage)
	require.NotNil(t, best)
	assert.Equal(t, "near", best.Monster.ID)
}

func TestSelectTarget_TieKeepsFirstEncountered(t *testing.T) {
	monsters := []entities.Monster{
		monster("alpha", 10, 2),
		monster("beta", 10, 2),
	}

	best := combat.SelectTarget(monsters, "", maxEngage)
	require.NotNil(t, best)
	assert.Equal(t, "alpha", best.Monster.ID)
}

func TestSelectTarget_FocusRetention(t *testing.T) {
	monsters := []entities.Monster{
		monster("shiny", 9, 1),
		monster("locked", 10, 1),
	}

	// Without a lock the closer monster wins; with the lock the current
	// target's +30 outweighs the small closeness edge.
	assert.Equal(t, "shiny", combat.SelectTarget(monsters, "", maxEngage).Monster.ID)
	assert.Equal(t, "locked", combat.SelectTarget(monsters, "locked", maxEngage).Monster.ID)
}
