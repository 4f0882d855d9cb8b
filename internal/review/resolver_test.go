package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/practicebot/internal/planconfig"
	"github.com/example/practicebot/pkg/models"
)

var testDate = time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

func testPlan() models.ReviewPlan {
	// default plan has cadence {new:5, light:1, deep:1}, milestones
	// {30,60,90} and six checkpoints
	return planconfig.DefaultPlan()
}

func TestResolveDailyModeIsPure(t *testing.T) {
	p := models.UserProgress{
		CurrentDay:                 17,
		ReviewModeCompletionCounts: models.ReviewModeCounts{NewDay: 12, LightReview: 2, DeepConsolidation: 2},
	}
	first := ResolveDailyMode(p, testPlan(), testDate)
	second := ResolveDailyMode(p, testPlan(), testDate)
	require.Equal(t, first, second)
}

func TestCadenceRotationIsDrivenByCompletedWork(t *testing.T) {
	tests := []struct {
		completed models.ReviewModeCounts
		wantSlot  models.CadenceSlot
		wantMode  models.ReviewMode
	}{
		{models.ReviewModeCounts{}, models.SlotNew, models.ModeNewDay},
		{models.ReviewModeCounts{NewDay: 4}, models.SlotNew, models.ModeNewDay},
		{models.ReviewModeCounts{NewDay: 5}, models.SlotLight, models.ModeLightReview},
		{models.ReviewModeCounts{NewDay: 5, LightReview: 1}, models.SlotDeep, models.ModeDeepConsolidation},
		// full cycle wraps around
		{models.ReviewModeCounts{NewDay: 5, LightReview: 1, DeepConsolidation: 1}, models.SlotNew, models.ModeNewDay},
		// milestone completions are excluded from the cycle
		{models.ReviewModeCounts{NewDay: 5, Milestone: 2}, models.SlotLight, models.ModeLightReview},
	}

	for _, tt := range tests {
		p := models.UserProgress{CurrentDay: 2, ReviewModeCompletionCounts: tt.completed}
		got := ResolveDailyMode(p, testPlan(), testDate)
		require.Equal(t, tt.wantSlot, got.WeeklySlot, "counts %+v", tt.completed)
		require.Equal(t, tt.wantMode, got.Mode, "counts %+v", tt.completed)
	}
}

func TestMilestoneOverridesCadenceSlot(t *testing.T) {
	p := models.UserProgress{
		CurrentDay: 60,
		// slot would be light without the override
		ReviewModeCompletionCounts: models.ReviewModeCounts{NewDay: 5},
	}
	got := ResolveDailyMode(p, testPlan(), testDate)
	require.True(t, got.IsMilestoneDay)
	require.Equal(t, models.ModeMilestone, got.Mode)
	require.Equal(t, models.SlotLight, got.WeeklySlot)
}

func TestMostRecentlyDueCheckpointSurfaces(t *testing.T) {
	plan := testPlan()
	plan.ReinforcementCheckpoints = []models.ReinforcementCheckpoint{
		{CurrentDay: 15, ReviewDay: 1},
		{CurrentDay: 30, ReviewDay: 10},
		{CurrentDay: 45, ReviewDay: 15},
	}

	p := models.UserProgress{CurrentDay: 46}
	got := ResolveDailyMode(p, plan, testDate)

	require.Equal(t, 45, got.ReinforcementCheckpointDay)
	require.Equal(t, 15, got.ReinforcementReviewDay)
	require.Equal(t, []int{15, 30, 45}, got.PendingReinforcementCheckpointDays)
}

func TestCompletedCheckpointsStopSurfacing(t *testing.T) {
	plan := testPlan()
	plan.ReinforcementCheckpoints = []models.ReinforcementCheckpoint{
		{CurrentDay: 15, ReviewDay: 1},
		{CurrentDay: 30, ReviewDay: 10},
		{CurrentDay: 45, ReviewDay: 15},
	}

	p := models.UserProgress{
		CurrentDay:                           46,
		CompletedReinforcementCheckpointDays: []int{45},
	}
	got := ResolveDailyMode(p, plan, testDate)

	// with 45 done, the next most recently due pending checkpoint is 30
	require.Equal(t, 30, got.ReinforcementCheckpointDay)
	require.Equal(t, 10, got.ReinforcementReviewDay)
	require.Equal(t, []int{15, 30}, got.PendingReinforcementCheckpointDays)

	p.CompletedReinforcementCheckpointDays = []int{15, 30, 45}
	got = ResolveDailyMode(p, plan, testDate)
	require.Zero(t, got.ReinforcementCheckpointDay)
	require.Zero(t, got.ReinforcementReviewDay)
	require.Empty(t, got.PendingReinforcementCheckpointDays)
}

func TestNotYetDueCheckpointsStayHidden(t *testing.T) {
	p := models.UserProgress{CurrentDay: 10}
	got := ResolveDailyMode(p, testPlan(), testDate)
	require.Zero(t, got.ReinforcementCheckpointDay)
	require.Empty(t, got.PendingReinforcementCheckpointDays)
}

func TestResolveClampsCurrentDay(t *testing.T) {
	got := ResolveDailyMode(models.UserProgress{CurrentDay: 0}, testPlan(), testDate)
	require.Equal(t, 1, got.CurrentDay)
	require.Equal(t, models.DateKey(testDate), got.DateKey)
}
