package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/practicebot/pkg/models"
)

func TestSanitizeProgressClampsAndSorts(t *testing.T) {
	dirty := models.UserProgress{
		CurrentDay:                           -3,
		Streak:                               -1,
		TotalMinutes:                         -10,
		LastCompletedDate:                    "not-a-date",
		SessionsCompleted:                    []int{5, 0, 5, 2, -7},
		CompletedReinforcementCheckpointDays: []int{30, 15, 30},
		LightReviewCompletedDates:            []string{"2026-08-02", "garbage", "2026-08-01", "2026-08-02"},
		ReviewModeCompletionCounts:           models.ReviewModeCounts{NewDay: -4, LightReview: 2},
	}

	clean := SanitizeProgress(dirty)

	require.Equal(t, 1, clean.CurrentDay)
	require.Equal(t, 0, clean.Streak)
	require.Equal(t, 0, clean.TotalMinutes)
	require.Empty(t, clean.LastCompletedDate)
	require.Equal(t, []int{2, 5}, clean.SessionsCompleted)
	require.Equal(t, []int{15, 30}, clean.CompletedReinforcementCheckpointDays)
	require.Equal(t, []string{"2026-08-01", "2026-08-02"}, clean.LightReviewCompletedDates)
	require.Equal(t, 0, clean.ReviewModeCompletionCounts.NewDay)
	require.Equal(t, 2, clean.ReviewModeCompletionCounts.LightReview)
}

func TestSanitizeProgressKeepsValidRecord(t *testing.T) {
	valid := models.UserProgress{
		CurrentDay:        9,
		Streak:            3,
		SessionsCompleted: []int{1, 2, 3},
		TotalMinutes:      45,
		LastCompletedDate: "2026-08-27",
	}
	clean := SanitizeProgress(valid)
	require.Equal(t, 9, clean.CurrentDay)
	require.Equal(t, 3, clean.Streak)
	require.Equal(t, []int{1, 2, 3}, clean.SessionsCompleted)
	require.Equal(t, "2026-08-27", clean.LastCompletedDate)
}

func TestSanitizeDraft(t *testing.T) {
	dirty := models.SessionDraft{
		DayNumber:       -1,
		StartedAt:       "08/28/2026",
		ElapsedSeconds:  -30,
		CompletedBlocks: []string{"b", "", "a", "b"},
	}
	clean := SanitizeDraft(dirty)
	require.Equal(t, 0, clean.DayNumber)
	require.Empty(t, clean.StartedAt)
	require.Equal(t, 0, clean.ElapsedSeconds)
	require.Equal(t, []string{"a", "b"}, clean.CompletedBlocks)
}
