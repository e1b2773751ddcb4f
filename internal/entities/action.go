package entities

// ActionType discriminates the command vocabulary the executor understands
type ActionType string

// Action types
const (
	ActionNone          ActionType = "none"
	ActionAttack        ActionType = "attack"
	ActionUseSkill      ActionType = "use_skill"
	ActionMove          ActionType = "move"
	ActionPickUp        ActionType = "pick_up"
	ActionTalkToNPC     ActionType = "talk_to_npc"
	ActionChat          ActionType = "chat"
	ActionAcceptRequest ActionType = "accept_request"
	ActionRejectRequest ActionType = "reject_request"
	ActionCounterOffer  ActionType = "counter_offer"
	ActionEscape        ActionType = "escape"
	ActionHeal          ActionType = "heal"
)

// Action is the single executable command a tick produces. Exactly one
// Action leaves the core per tick, possibly ActionNone.
type Action struct {
	Type        ActionType `json:"type"`
	TargetID    string     `json:"target_id,omitempty"`
	Skill       string     `json:"skill,omitempty"`
	Destination *Position  `json:"destination,omitempty"`
	Path        []Position `json:"path,omitempty"`
	ItemID      string     `json:"item_id,omitempty"`
	Message     string     `json:"message,omitempty"`
	// CounterValue carries the proposed zeny value on a counter-offer
	CounterValue int64 `json:"counter_value,omitempty"`
}

// NoAction is the tick output when nothing is worth doing
func NoAction() Action {
	return Action{Type: ActionNone}
}
