// Package config loads the agent configuration from a YAML file once at
// process start. Invalid values fail startup; nothing here is re-read per
// tick.
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openrune/botcore/internal/errors"
)

// Config is the full agent configuration surface
type Config struct {
	// Redis endpoint for reputation persistence; empty runs in-memory
	Redis RedisConfig `yaml:"redis"`

	Gateway GatewayConfig `yaml:"gateway"`

	// TickBudgetMS bounds each coordinator invocation per tick
	TickBudgetMS int `yaml:"tick_budget_ms"`

	// RNGSeed seeds probabilistic policy decisions; zero means seed from
	// the wall clock.
	RNGSeed int64 `yaml:"rng_seed"`

	Combat     CombatConfig     `yaml:"combat"`
	Economy    EconomyConfig    `yaml:"economy"`
	Navigation NavigationConfig `yaml:"navigation"`
	Social     SocialConfig     `yaml:"social"`
	TextGen    TextGenConfig    `yaml:"textgen"`
}

// RedisConfig configures reputation persistence
type RedisConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// GatewayConfig configures the websocket gateway
type GatewayConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// CombatConfig tunes the combat coordinator
type CombatConfig struct {
	Enabled bool `yaml:"enabled"`
	// EmergencyHPRatio triggers the escape/heal short-circuit
	EmergencyHPRatio float64 `yaml:"emergency_hp_ratio"`
	// EmergencyMonsterCount of simultaneous attackers triggers escape
	EmergencyMonsterCount int `yaml:"emergency_monster_count"`
	// MaxEngageDistance caps the closeness term in target scoring
	MaxEngageDistance float64 `yaml:"max_engage_distance"`
}

// EconomyConfig tunes loot and trade behavior
type EconomyConfig struct {
	Enabled bool `yaml:"enabled"`
	// OverweightRatio above which the agent heads to storage
	OverweightRatio float64 `yaml:"overweight_ratio"`
	// InventorySellThreshold item count above which the agent goes selling
	InventorySellThreshold int `yaml:"inventory_sell_threshold"`
	// HighValueTradeThreshold in zeny; trades above it require a Trusted
	// counterpart regardless of fairness
	HighValueTradeThreshold int64 `yaml:"high_value_trade_threshold"`
}

// NavigationConfig tunes pathfinding
type NavigationConfig struct {
	Enabled bool `yaml:"enabled"`
	// MaxExpansions caps A* search per request
	MaxExpansions int `yaml:"max_expansions"`
	// GoalTolerance is the arrival distance
	GoalTolerance float64 `yaml:"goal_tolerance"`
	// SegmentLength truncates returned paths; long routes are walked in
	// segments
	SegmentLength int `yaml:"segment_length"`
}

// SocialConfig tunes the interaction decision maker
type SocialConfig struct {
	Enabled bool `yaml:"enabled"`
	// InviteRateLimit invites per window from one player before rejection
	// plus a reputation penalty
	InviteRateLimit int `yaml:"invite_rate_limit"`
	// InviteRateWindowS is the rolling window in seconds
	InviteRateWindowS int `yaml:"invite_rate_window_s"`
	// MidTierAcceptProbability for party invites in the acquaintance band
	MidTierAcceptProbability float64 `yaml:"mid_tier_accept_probability"`
	// TypingDelayMSPerChar models human typing before a chat reply sends
	TypingDelayMSPerChar int `yaml:"typing_delay_ms_per_char"`
	// MaxTypingDelayMS caps the modeled delay
	MaxTypingDelayMS int `yaml:"max_typing_delay_ms"`
	// MaxDuelLevelGap above which duels are declined
	MaxDuelLevelGap int `yaml:"max_duel_level_gap"`
}

// TextGenConfig configures the external text-generation collaborator
type TextGenConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	TimeoutMS   int     `yaml:"timeout_ms"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// TickBudget returns the per-coordinator budget as a duration
func (c *Config) TickBudget() time.Duration {
	return time.Duration(c.TickBudgetMS) * time.Millisecond
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Gateway:      GatewayConfig{ListenAddr: ":8722"},
		TickBudgetMS: 100,
		Combat: CombatConfig{
			Enabled:               true,
			EmergencyHPRatio:      0.3,
			EmergencyMonsterCount: 5,
			MaxEngageDistance:     20,
		},
		Economy: EconomyConfig{
			Enabled:                 true,
			OverweightRatio:         0.85,
			InventorySellThreshold:  50,
			HighValueTradeThreshold: 50000,
		},
		Navigation: NavigationConfig{
			Enabled:       true,
			MaxExpansions: 10000,
			GoalTolerance: 1.5,
			SegmentLength: 32,
		},
		Social: SocialConfig{
			Enabled:                  true,
			InviteRateLimit:          3,
			InviteRateWindowS:        60,
			MidTierAcceptProbability: 0.5,
			TypingDelayMSPerChar:     55,
			MaxTypingDelayMS:         3000,
			MaxDuelLevelGap:          10,
		},
		TextGen: TextGenConfig{
			TimeoutMS:   2000,
			MaxTokens:   80,
			Temperature: 0.8,
		},
	}
}

// Load reads the configuration from path, applying defaults for anything
// unset. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would misbehave at runtime. Configuration
// errors are fatal at startup only; per-tick execution never re-validates.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TickBudgetMS <= 0 {
		vb.InvalidField("tick_budget_ms", "must be positive")
	}
	if c.Combat.EmergencyHPRatio <= 0 || c.Combat.EmergencyHPRatio > 1 {
		vb.InvalidField("combat.emergency_hp_ratio", "must be in (0,1]")
	}
	if c.Combat.EmergencyMonsterCount <= 0 {
		vb.InvalidField("combat.emergency_monster_count", "must be positive")
	}
	if c.Combat.MaxEngageDistance <= 0 {
		vb.InvalidField("combat.max_engage_distance", "must be positive")
	}
	if c.Economy.OverweightRatio <= 0 || c.Economy.OverweightRatio > 1 {
		vb.InvalidField("economy.overweight_ratio", "must be in (0,1]")
	}
	if c.Economy.HighValueTradeThreshold < 0 {
		vb.InvalidField("economy.high_value_trade_threshold", "must be non-negative")
	}
	if c.Navigation.MaxExpansions <= 0 {
		vb.InvalidField("navigation.max_expansions", "must be positive")
	}
	if c.Navigation.GoalTolerance < 0 {
		vb.InvalidField("navigation.goal_tolerance", "must be non-negative")
	}
	if c.Navigation.SegmentLength <= 0 {
		vb.InvalidField("navigation.segment_length", "must be positive")
	}
	if c.Social.InviteRateLimit <= 0 {
		vb.InvalidField("social.invite_rate_limit", "must be positive")
	}
	if c.Social.InviteRateWindowS <= 0 {
		vb.InvalidField("social.invite_rate_window_s", "must be positive")
	}
	if c.Social.MidTierAcceptProbability < 0 || c.Social.MidTierAcceptProbability > 1 {
		vb.InvalidField("social.mid_tier_accept_probability", "must be in [0,1]")
	}
	if c.TextGen.TimeoutMS <= 0 {
		vb.InvalidField("textgen.timeout_ms", "must be positive")
	}
	if c.TextGen.Temperature < 0 || c.TextGen.Temperature > 2 {
		vb.InvalidField("textgen.temperature", "must be in [0,2]")
	}

	return vb.Build()
}
