package models

// GuardrailStatus classifies the forward/reinforcement balance.
type GuardrailStatus string

const (
	GuardrailBalanced          GuardrailStatus = "balanced"
	GuardrailLowReinforcement  GuardrailStatus = "low_reinforcement"
	GuardrailHighReinforcement GuardrailStatus = "high_reinforcement"
)

// GuardrailSummary is an advisory snapshot of the forward-vs-reinforcement
// activity ratio. It never blocks progression.
type GuardrailSummary struct {
	ForwardCount       int             `json:"forward_count"`
	ReinforcementCount int             `json:"reinforcement_count"`
	ReinforcementRatio float64         `json:"reinforcement_ratio"`
	Status             GuardrailStatus `json:"status"`
	Message            string          `json:"message"`
}
