// Package social implements the social coordinator: the gate every inbound
// chat line, buff request, trade window, party invite, and duel challenge
// passes through. Decisions are tier-gated policy, fed by the reputation
// manager and, for chat, the text-generation collaborator.
package social

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openrune/botcore/internal/clients/textgen"
	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/coordinators/economy"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/orchestrators/reputation"
	"github.com/openrune/botcore/internal/pkg/clock"
	"github.com/openrune/botcore/internal/pkg/rng"
	repo "github.com/openrune/botcore/internal/repositories/reputation"
	"github.com/openrune/botcore/internal/scheduler"
)

// Reputation deltas for social outcomes
const (
	deltaFriendlyChat = 1
	deltaGaveBuff     = 2
	deltaJoinedParty  = 5
	deltaRateLimited  = -5
)

// Game chat lines are cut at this length
const maxChatLength = 120

const (
	acceptConfidence = 0.8
	rejectConfidence = 0.6
)

// classBuffs maps the agent's job class to the support skill it gives back
// when a buff request is accepted.
var classBuffs = map[string]string{
	"Acolyte":   "Blessing",
	"Priest":    "Blessing",
	"Monk":      "Blessing",
	"Swordsman": "Endure",
	"Knight":    "Endure",
	"Crusader":  "Endure",
	"Magician":  "Energy Coat",
	"Wizard":    "Energy Coat",
	"Sage":      "Energy Coat",
}

// Config holds the dependencies for the social coordinator
type Config struct {
	Social     config.SocialConfig
	Economy    config.EconomyConfig
	Reputation reputation.Service
	TextGen    textgen.Client
	Scheduler  *scheduler.Scheduler
	Random     rng.Source
	Clock      clock.Clock
}

// Validate ensures all required dependencies are provided. TextGen is
// optional; without it the agent simply never chats back.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Reputation == nil {
		vb.RequiredField("Reputation")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Social.InviteRateLimit <= 0 {
		vb.InvalidField("Social.InviteRateLimit", "must be positive")
	}
	if c.Social.MidTierAcceptProbability < 0 || c.Social.MidTierAcceptProbability > 1 {
		vb.InvalidField("Social.MidTierAcceptProbability", "must be in [0,1]")
	}

	return vb.Build()
}

// Coordinator evaluates inbound interactions and emits accept, reject,
// counter-offer, or chat recommendations.
type Coordinator struct {
	cfg        config.SocialConfig
	economyCfg config.EconomyConfig
	rep        reputation.Service
	textGen    textgen.Client
	sched      *scheduler.Scheduler
	random     rng.Source
	limiter    *inviteLimiter
}

// NewCoordinator creates a social coordinator
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	window := time.Duration(cfg.Social.InviteRateWindowS) * time.Second

	return &Coordinator{
		cfg:        cfg.Social,
		economyCfg: cfg.Economy,
		rep:        cfg.Reputation,
		textGen:    cfg.TextGen,
		sched:      cfg.Scheduler,
		random:     cfg.Random,
		limiter:    newInviteLimiter(cfg.Clock, cfg.Social.InviteRateLimit, window),
	}, nil
}

// Name identifies the coordinator in logs
func (c *Coordinator) Name() string { return "social" }

// Priority is the coordinator's base recommendation weight
func (c *Coordinator) Priority() float64 { return coordinators.PrioritySocial }

// CanHandle activates when the snapshot carries inbound interactions
func (c *Coordinator) CanHandle(state *entities.GameState) bool {
	return len(state.Interactions) > 0
}

// Recommend runs every inbound interaction through the decision pipeline:
// rate limit, blacklist short-circuit, then the type handler. Each
// interaction yields at most one recommendation.
func (c *Coordinator) Recommend(ctx context.Context, state *entities.GameState) ([]coordinators.Recommendation, error) {
	var recs []coordinators.Recommendation
	for i := range state.Interactions {
		req := &state.Interactions[i]
		if rec := c.evaluate(ctx, req, state); rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (c *Coordinator) evaluate(ctx context.Context, req *entities.InteractionRequest, state *entities.GameState) *coordinators.Recommendation {
	if req.PlayerID == "" {
		return nil
	}

	if isInvite(req.Type) && !c.limiter.Allow(req.PlayerID) {
		c.adjust(ctx, req.PlayerID, deltaRateLimited, "invite rate limit exceeded")
		return c.reject(req, "too many invites, slow down")
	}

	record := c.record(ctx, req.PlayerID)

	if record.Flags.IsBlacklisted || record.Tier == repo.TierBlocked {
		if req.Type == entities.InteractionChat {
			// Blacklisted players get silence, not a reply.
			return nil
		}
		return c.reject(req, "not interested")
	}

	if busy(state) && req.Type != entities.InteractionChat {
		return c.reject(req, "busy right now, maybe later")
	}

	switch req.Type {
	case entities.InteractionChat:
		return c.handleChat(ctx, req, record)
	case entities.InteractionBuff:
		return c.handleBuff(ctx, req, record, state)
	case entities.InteractionTrade:
		return c.handleTrade(ctx, req, record)
	case entities.InteractionParty:
		return c.handleParty(ctx, req, record)
	case entities.InteractionDuel:
		return c.handleDuel(req, record, state)
	default:
		slog.Warn("unknown interaction type", "type", req.Type, "player_id", req.PlayerID)
		return nil
	}
}

// handleChat asks the text-generation collaborator for a reply and schedules
// it behind a typing delay. Any failure degrades to silence.
func (c *Coordinator) handleChat(ctx context.Context, req *entities.InteractionRequest, record *repo.Record) *coordinators.Recommendation {
	if c.textGen == nil || record.Tier == repo.TierSuspicious {
		return nil
	}

	prompt := fmt.Sprintf("player %s (%s) says: %s", req.PlayerName, record.Tier, req.Message)
	resp, err := c.textGen.Generate(ctx, &textgen.Request{PromptContext: prompt})
	if err != nil {
		slog.Warn("chat reply unavailable, staying silent",
			"player_id", req.PlayerID,
			"error", err,
		)
		return nil
	}
	if resp == nil || resp.Text == "" {
		return nil
	}

	reply := resp.Text
	if len(reply) > maxChatLength {
		reply = reply[:maxChatLength]
	}

	c.sched.ScheduleAfter(c.typingDelay(reply), entities.Action{
		Type:     entities.ActionChat,
		TargetID: req.PlayerID,
		Message:  reply,
	})
	c.adjust(ctx, req.PlayerID, deltaFriendlyChat, "friendly chat")

	// The reply itself is deferred; nothing competes for this tick's slot.
	return nil
}

func (c *Coordinator) handleBuff(ctx context.Context, req *entities.InteractionRequest, record *repo.Record, state *entities.GameState) *coordinators.Recommendation {
	if !record.Tier.AtLeast(repo.TierNeutral) {
		return c.reject(req, "sorry, no")
	}

	skill, ok := classBuffs[state.Character.JobClass]
	if !ok {
		return c.reject(req, "I have no buffs to give")
	}

	// The buff goes out slightly later, like a player switching targets.
	c.sched.ScheduleAfter(time.Second, entities.Action{
		Type:     entities.ActionUseSkill,
		TargetID: req.PlayerID,
		Skill:    skill,
	})
	c.adjust(ctx, req.PlayerID, deltaGaveBuff, "gave buff")

	return c.accept(req, fmt.Sprintf("buffing %s with %s", req.PlayerName, skill))
}

func (c *Coordinator) handleTrade(ctx context.Context, req *entities.InteractionRequest, record *repo.Record) *coordinators.Recommendation {
	decision := economy.EvaluateTrade(req.Trade, record, c.economyCfg.HighValueTradeThreshold)

	if decision.ReputationDelta != 0 {
		c.adjust(ctx, req.PlayerID, decision.ReputationDelta, decision.Reason)
	}

	switch decision.Verdict {
	case economy.TradeAccept:
		return c.accept(req, decision.Reason)
	case economy.TradeNegotiate:
		return &coordinators.Recommendation{
			Action: entities.Action{
				Type:         entities.ActionCounterOffer,
				TargetID:     req.PlayerID,
				CounterValue: decision.CounterValue,
			},
			Priority:   c.Priority(),
			Confidence: acceptConfidence,
			Reasoning:  decision.Reason,
		}
	default:
		return c.reject(req, decision.Reason)
	}
}

func (c *Coordinator) handleParty(ctx context.Context, req *entities.InteractionRequest, record *repo.Record) *coordinators.Recommendation {
	accept := false
	switch {
	case record.Flags.IsFriend || record.Flags.IsGuildMember:
		accept = true
	case record.Tier.AtLeast(repo.TierFriendly):
		accept = true
	case record.Tier == repo.TierAcquaintance:
		accept = c.random.Float64() < c.cfg.MidTierAcceptProbability
	}

	if !accept {
		return c.reject(req, "not looking for a party right now")
	}

	c.adjust(ctx, req.PlayerID, deltaJoinedParty, "joined party")
	return c.accept(req, fmt.Sprintf("joining %s's party", req.PlayerName))
}

func (c *Coordinator) handleDuel(req *entities.InteractionRequest, record *repo.Record, state *entities.GameState) *coordinators.Recommendation {
	gap := req.PlayerLevel - state.Character.Level
	if gap < 0 {
		gap = -gap
	}
	if gap > c.cfg.MaxDuelLevelGap {
		return c.reject(req, "level gap too wide for a fair duel")
	}
	if !record.Tier.AtLeast(repo.TierFriendly) {
		return c.reject(req, "I only duel people I know")
	}
	return c.accept(req, fmt.Sprintf("accepting duel with %s", req.PlayerName))
}

// record reads the counterpart's trust record, degrading to the neutral
// default when the reputation service fails.
func (c *Coordinator) record(ctx context.Context, playerID string) *repo.Record {
	out, err := c.rep.GetReputation(ctx, &reputation.GetReputationInput{PlayerID: playerID})
	if err != nil {
		slog.Warn("reputation unavailable, treating player as neutral",
			"player_id", playerID,
			"error", err,
		)
		return repo.NewRecord(playerID)
	}
	return out.Record
}

func (c *Coordinator) adjust(ctx context.Context, playerID string, delta int, reason string) {
	if _, err := c.rep.AdjustReputation(ctx, &reputation.AdjustReputationInput{
		PlayerID: playerID,
		Delta:    delta,
		Reason:   reason,
	}); err != nil {
		slog.Error("reputation adjustment failed",
			"player_id", playerID,
			"delta", delta,
			"reason", reason,
			"error", err,
		)
	}
}

func (c *Coordinator) typingDelay(reply string) time.Duration {
	ms := len(reply) * c.cfg.TypingDelayMSPerChar
	if ms > c.cfg.MaxTypingDelayMS {
		ms = c.cfg.MaxTypingDelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Coordinator) accept(req *entities.InteractionRequest, reasoning string) *coordinators.Recommendation {
	return &coordinators.Recommendation{
		Action: entities.Action{
			Type:     entities.ActionAcceptRequest,
			TargetID: req.PlayerID,
		},
		Priority:   c.Priority(),
		Confidence: acceptConfidence,
		Reasoning:  reasoning,
	}
}

func (c *Coordinator) reject(req *entities.InteractionRequest, message string) *coordinators.Recommendation {
	return &coordinators.Recommendation{
		Action: entities.Action{
			Type:     entities.ActionRejectRequest,
			TargetID: req.PlayerID,
			Message:  message,
		},
		Priority:   c.Priority(),
		Confidence: rejectConfidence,
		Reasoning:  message,
	}
}

func isInvite(t entities.InteractionType) bool {
	switch t {
	case entities.InteractionParty, entities.InteractionDuel, entities.InteractionTrade:
		return true
	}
	return false
}

// busy reports whether the agent should wave off non-chat interactions
func busy(state *entities.GameState) bool {
	return state.InCombat || state.HasActiveQuest()
}
