package combat

import (
	"fmt"
	"strings"

	"github.com/openrune/botcore/internal/entities"
)

// Target scoring weights. The sum ranks every visible monster; the maximum
// wins, ties broken by input order.
const (
	closenessWeight   = 5.0
	threatWeight      = 10.0
	attackingMeBonus  = 50.0
	focusRetention    = 30.0
	finishOffBonus    = 20.0
	bossBonus         = 15.0
	finishOffHPCutoff = 30.0
)

// TargetScore is one monster's ranking with the terms that produced it
type TargetScore struct {
	Monster entities.Monster
	Score   float64
	Reasons string
}

// ScoreTarget computes the weighted sum for one monster. maxDistance caps
// the closeness term so far-away monsters score zero for proximity rather
// than negative.
func ScoreTarget(m entities.Monster, currentTargetID string, maxDistance float64) TargetScore {
	var reasons []string

	distance := m.Distance
	if distance > maxDistance {
		distance = maxDistance
	}
	closeness := (maxDistance - distance) * closenessWeight
	score := closeness
	if closeness > 0 {
		reasons = append(reasons, fmt.Sprintf("closeness +%.0f", closeness))
	}

	threat := float64(m.ThreatLevel) * threatWeight
	score += threat
	if threat > 0 {
		reasons = append(reasons, fmt.Sprintf("threat +%.0f", threat))
	}

	if m.IsAttackingMe {
		score += attackingMeBonus
		reasons = append(reasons, "attacking me")
	}
	if m.ID != "" && m.ID == currentTargetID {
		score += focusRetention
		reasons = append(reasons, "current target")
	}
	if m.HPPercent < finishOffHPCutoff {
		score += finishOffBonus
		reasons = append(reasons, "low hp")
	}
	if m.IsBoss {
		score += bossBonus
		reasons = append(reasons, "boss")
	}

	return TargetScore{
		Monster: m,
		Score:   score,
		Reasons: strings.Join(reasons, ", "),
	}
}

// SelectTarget ranks all visible monsters and returns the best, nil when
// the list is empty. Equal scores keep the first-encountered monster.
func SelectTarget(monsters []entities.Monster, currentTargetID string, maxDistance float64) *TargetScore {
	var best *TargetScore
	for _, m := range monsters {
		scored := ScoreTarget(m, currentTargetID, maxDistance)
		if best == nil || scored.Score > best.Score {
			s := scored
			best = &s
		}
	}
	return best
}
