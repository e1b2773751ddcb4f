// Package combat implements the combat coordinator: emergency checks first,
// then target selection and attack/skill choice.
package combat

import (
	"context"
	"fmt"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
)

const (
	// AOE is worth it at this many monsters in close range
	aoeMonsterCount = 3
	aoeRange        = 5.0

	// Minimum SP ratio before spending a skill
	skillSPRatio = 0.3

	attackConfidence = 0.75
	skillConfidence  = 0.85
	aoeConfidence    = 0.85
)

// Per-class single-target and area skills. Job tables beyond these basics
// live outside the core.
var classSkills = map[string]struct {
	single string
	area   string
}{
	"Swordsman": {single: "Bash", area: "Magnum Break"},
	"Knight":    {single: "Bash", area: "Magnum Break"},
	"Magician":  {single: "Fire Bolt", area: "Thunderstorm"},
	"Wizard":    {single: "Fire Bolt", area: "Storm Gust"},
	"Archer":    {single: "Double Strafe", area: "Arrow Shower"},
	"Hunter":    {single: "Double Strafe", area: "Arrow Shower"},
}

// Config holds the dependencies for the combat coordinator
type Config struct {
	Combat config.CombatConfig
}

// Validate ensures the tuning values are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Combat.EmergencyHPRatio <= 0 || c.Combat.EmergencyHPRatio > 1 {
		vb.InvalidField("Combat.EmergencyHPRatio", "must be in (0,1]")
	}
	if c.Combat.EmergencyMonsterCount <= 0 {
		vb.InvalidField("Combat.EmergencyMonsterCount", "must be positive")
	}
	if c.Combat.MaxEngageDistance <= 0 {
		vb.InvalidField("Combat.MaxEngageDistance", "must be positive")
	}

	return vb.Build()
}

// Coordinator proposes combat actions for the tick
type Coordinator struct {
	cfg config.CombatConfig
}

// NewCoordinator creates a combat coordinator
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Coordinator{cfg: cfg.Combat}, nil
}

// Name identifies the coordinator in logs
func (c *Coordinator) Name() string { return "combat" }

// Priority is the coordinator's base recommendation weight
func (c *Coordinator) Priority() float64 { return coordinators.PriorityCombat }

// CanHandle activates on visible monsters or an HP emergency
func (c *Coordinator) CanHandle(state *entities.GameState) bool {
	if len(state.Monsters) > 0 {
		return true
	}
	return state.Character.HPRatio() < c.cfg.EmergencyHPRatio
}

// Recommend checks the emergency condition first; an emergency recommendation
// (priority 100, confidence 1.0) short-circuits all other combat logic for
// the tick.
func (c *Coordinator) Recommend(ctx context.Context, state *entities.GameState) ([]coordinators.Recommendation, error) {
	if rec := c.emergency(state); rec != nil {
		return []coordinators.Recommendation{*rec}, nil
	}

	if len(state.Monsters) == 0 {
		return nil, nil
	}

	target := SelectTarget(state.Monsters, state.CurrentTargetID, c.cfg.MaxEngageDistance)
	if target == nil {
		return nil, nil
	}

	if rec := c.areaAttack(state); rec != nil {
		return []coordinators.Recommendation{*rec}, nil
	}

	skills, hasSkills := classSkills[state.Character.JobClass]
	if hasSkills && state.Character.SPRatio() >= skillSPRatio {
		return []coordinators.Recommendation{{
			Action: entities.Action{
				Type:     entities.ActionUseSkill,
				TargetID: target.Monster.ID,
				Skill:    skills.single,
			},
			Priority:   c.Priority(),
			Confidence: skillConfidence,
			Reasoning:  fmt.Sprintf("%s on %s (%s)", skills.single, target.Monster.Name, target.Reasons),
		}}, nil
	}

	return []coordinators.Recommendation{{
		Action: entities.Action{
			Type:     entities.ActionAttack,
			TargetID: target.Monster.ID,
		},
		Priority:   c.Priority(),
		Confidence: attackConfidence,
		Reasoning:  fmt.Sprintf("attack %s (%s)", target.Monster.Name, target.Reasons),
	}}, nil
}

func (c *Coordinator) emergency(state *entities.GameState) *coordinators.Recommendation {
	if state.Character.HPRatio() < c.cfg.EmergencyHPRatio {
		return &coordinators.Recommendation{
			Action:     entities.Action{Type: entities.ActionHeal},
			Priority:   100,
			Confidence: 1.0,
			Reasoning:  fmt.Sprintf("emergency: HP at %.0f%%", state.Character.HPRatio()*100),
		}
	}

	attackers := 0
	for _, m := range state.Monsters {
		if m.IsAttackingMe {
			attackers++
		}
	}
	if attackers >= c.cfg.EmergencyMonsterCount {
		return &coordinators.Recommendation{
			Action:     entities.Action{Type: entities.ActionEscape},
			Priority:   100,
			Confidence: 1.0,
			Reasoning:  fmt.Sprintf("emergency: %d monsters attacking", attackers),
		}
	}

	return nil
}

func (c *Coordinator) areaAttack(state *entities.GameState) *coordinators.Recommendation {
	skills, ok := classSkills[state.Character.JobClass]
	if !ok || skills.area == "" || state.Character.SPRatio() < skillSPRatio {
		return nil
	}

	nearby := 0
	for _, m := range state.Monsters {
		if m.Distance <= aoeRange {
			nearby++
		}
	}
	if nearby < aoeMonsterCount {
		return nil
	}

	return &coordinators.Recommendation{
		Action: entities.Action{
			Type:  entities.ActionUseSkill,
			Skill: skills.area,
		},
		Priority:   c.Priority(),
		Confidence: aoeConfidence,
		Reasoning:  fmt.Sprintf("%d monsters in range, using %s", nearby, skills.area),
	}
}
