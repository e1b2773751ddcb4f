// Package entities defines the snapshot types the decision core reads each
// tick. A GameState is owned by the caller and immutable for the tick;
// coordinators only read it.
package entities

import "time"

// CharacterState is the agent's own character within the snapshot
type CharacterState struct {
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	HP            int      `json:"hp"`
	MaxHP         int      `json:"max_hp"`
	SP            int      `json:"sp"`
	MaxSP         int      `json:"max_sp"`
	Weight        int      `json:"weight"`
	MaxWeight     int      `json:"max_weight"`
	Zeny          int64    `json:"zeny"`
	JobClass      string   `json:"job_class"`
	Position      Position `json:"position"`
	StatusEffects []string `json:"status_effects,omitempty"`
	InventoryUsed int      `json:"inventory_used"`
}

// HPRatio returns current HP as a fraction of max, 0 when max is unknown
func (c *CharacterState) HPRatio() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

// SPRatio returns current SP as a fraction of max, 0 when max is unknown
func (c *CharacterState) SPRatio() float64 {
	if c.MaxSP <= 0 {
		return 0
	}
	return float64(c.SP) / float64(c.MaxSP)
}

// WeightRatio returns carried weight as a fraction of capacity
func (c *CharacterState) WeightRatio() float64 {
	if c.MaxWeight <= 0 {
		return 0
	}
	return float64(c.Weight) / float64(c.MaxWeight)
}

// Monster is a visible monster and the attributes targeting depends on
type Monster struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Distance      float64 `json:"distance"`
	ThreatLevel   int     `json:"threat_level"`
	HPPercent     float64 `json:"hp_percent"`
	IsAttackingMe bool    `json:"is_attacking_me"`
	IsBoss        bool    `json:"is_boss"`
}

// ItemRarity classifies ground items for loot scoring
type ItemRarity string

// Item rarity levels
const (
	RarityCommon ItemRarity = "common"
	RarityHigh   ItemRarity = "high"
	RarityRare   ItemRarity = "rare"
)

// GroundItem is an item lying on the ground within pickup consideration
type GroundItem struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Distance     float64    `json:"distance"`
	Value        int64      `json:"value"`
	Rarity       ItemRarity `json:"rarity"`
	IsQuestItem  bool       `json:"is_quest_item"`
	ExpiringSoon bool       `json:"expiring_soon"`
	Position     Position   `json:"position"`
}

// Player is another player visible near the agent
type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Level         int     `json:"level"`
	Guild         string  `json:"guild,omitempty"`
	Distance      float64 `json:"distance"`
	IsPartyMember bool    `json:"is_party_member"`
}

// Quest is an active or available quest in the snapshot
type Quest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	TargetIDs []string `json:"target_ids,omitempty"`
}

// InteractionType labels inbound social events
type InteractionType string

// Interaction categories
const (
	InteractionChat  InteractionType = "chat"
	InteractionBuff  InteractionType = "buff"
	InteractionTrade InteractionType = "trade"
	InteractionParty InteractionType = "party"
	InteractionDuel  InteractionType = "duel"
)

// TradeOffer describes an incoming trade: what the counterpart offers and
// what they ask for, in estimated zeny value.
type TradeOffer struct {
	OfferedValue   int64    `json:"offered_value"`
	RequestedValue int64    `json:"requested_value"`
	OfferedItems   []string `json:"offered_items,omitempty"`
	RequestedItems []string `json:"requested_items,omitempty"`
	// DescribedItems is what the counterpart claims to be offering; a
	// mismatch against OfferedItems is a scam signal.
	DescribedItems []string `json:"described_items,omitempty"`
}

// InteractionRequest is one inbound social event (chat line, trade window,
// party invite, duel challenge, buff request).
type InteractionRequest struct {
	Type        InteractionType `json:"type"`
	PlayerID    string          `json:"player_id"`
	PlayerName  string          `json:"player_name"`
	PlayerLevel int             `json:"player_level,omitempty"`
	Message     string          `json:"message,omitempty"`
	MessageKind string          `json:"message_kind,omitempty"`
	Trade       *TradeOffer     `json:"trade,omitempty"`
	ReceivedAt  time.Time       `json:"received_at"`
}

// GameState is the immutable-for-the-tick snapshot the core decides from
type GameState struct {
	Tick            uint64               `json:"tick"`
	Character       CharacterState       `json:"character"`
	Monsters        []Monster            `json:"monsters,omitempty"`
	GroundItems     []GroundItem         `json:"ground_items,omitempty"`
	NearbyPlayers   []Player             `json:"nearby_players,omitempty"`
	Quests          []Quest              `json:"quests,omitempty"`
	Interactions    []InteractionRequest `json:"interactions,omitempty"`
	CurrentTargetID string               `json:"current_target_id,omitempty"`
	Destination     *Position            `json:"destination,omitempty"`
	Map             *MapInfo             `json:"-"`
	InCombat        bool                 `json:"in_combat"`
}

// PlayerByID finds a nearby player in the snapshot, nil if absent
func (s *GameState) PlayerByID(id string) *Player {
	for i := range s.NearbyPlayers {
		if s.NearbyPlayers[i].ID == id {
			return &s.NearbyPlayers[i]
		}
	}
	return nil
}

// HasActiveQuest reports whether any quest in the snapshot is active
func (s *GameState) HasActiveQuest() bool {
	for _, q := range s.Quests {
		if q.Active {
			return true
		}
	}
	return false
}
