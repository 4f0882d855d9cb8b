package models

// CadenceSlot is the weekly-rotation bucket a day falls into. It is derived
// from completed-mode counters, not from the wall-clock weekday.
type CadenceSlot string

const (
	SlotNew   CadenceSlot = "new"
	SlotLight CadenceSlot = "light"
	SlotDeep  CadenceSlot = "deep"
)

// DailyModeResolution is the engine's decision for one day. It is derived on
// every query and never persisted. ReinforcementReviewDay and
// ReinforcementCheckpointDay are 0 when no checkpoint is active.
type DailyModeResolution struct {
	Mode                               ReviewMode  `json:"mode"`
	WeeklySlot                         CadenceSlot `json:"weekly_slot"`
	CurrentDay                         int         `json:"current_day"`
	IsMilestoneDay                     bool        `json:"is_milestone_day"`
	ReinforcementReviewDay             int         `json:"reinforcement_review_day,omitempty"`
	ReinforcementCheckpointDay         int         `json:"reinforcement_checkpoint_day,omitempty"`
	PendingReinforcementCheckpointDays []int       `json:"pending_reinforcement_checkpoint_days"`
	DateKey                            string      `json:"date_key"`
}
