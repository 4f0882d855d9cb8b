package review

import (
	"fmt"

	"github.com/example/practicebot/pkg/models"
)

// Default guardrail bounds: reinforcement should make up 20–30% of all
// completed activity.
const (
	DefaultGuardrailMin = 0.20
	DefaultGuardrailMax = 0.30
)

// EvaluateGuardrail classifies the forward/reinforcement balance of the
// completed work. It is observational only: it never mutates state or blocks
// progression.
func EvaluateGuardrail(progress models.UserProgress, minRatio, maxRatio float64) models.GuardrailSummary {
	counts := progress.ReviewModeCompletionCounts
	summary := models.GuardrailSummary{
		ForwardCount: counts.NewDay,
		ReinforcementCount: counts.LightReview + counts.DeepConsolidation + counts.Milestone +
			len(progress.CompletedReinforcementCheckpointDays),
	}

	total := summary.ForwardCount + summary.ReinforcementCount
	if total == 0 {
		summary.Status = models.GuardrailBalanced
		summary.Message = "No sessions completed yet."
		return summary
	}

	summary.ReinforcementRatio = float64(summary.ReinforcementCount) / float64(total)

	switch {
	case summary.ReinforcementRatio < minRatio:
		summary.Status = models.GuardrailLowReinforcement
		summary.Message = fmt.Sprintf("Only %.0f%% of your sessions were review. Consider an extra light review soon.",
			summary.ReinforcementRatio*100)
	case summary.ReinforcementRatio > maxRatio:
		summary.Status = models.GuardrailHighReinforcement
		summary.Message = fmt.Sprintf("%.0f%% of your sessions were review. You can push into new material.",
			summary.ReinforcementRatio*100)
	default:
		summary.Status = models.GuardrailBalanced
		summary.Message = "Your forward/review balance looks good."
	}
	return summary
}
