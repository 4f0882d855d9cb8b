package progress

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/pkg/models"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 8, 28, 14, 0, 0, 0, time.Local)

func newTestService(t *testing.T) (*Service, *database.ProgressStore) {
	t.Helper()
	store, err := database.Open(database.Options{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	q := queue.New()
	t.Cleanup(q.Close)

	progressStore := database.NewProgressStore(store)
	return NewService(progressStore, q, fixedClock{now: testNow}), progressStore
}

func TestCompleteSessionStartsStreak(t *testing.T) {
	service, _ := newTestService(t)

	p, err := service.CompleteSession(1, 600, 90)
	require.NoError(t, err)

	require.Equal(t, 1, p.Streak)
	require.Equal(t, 2, p.CurrentDay)
	require.Equal(t, []int{1}, p.SessionsCompleted)
	require.Equal(t, 10, p.TotalMinutes)
	require.Equal(t, models.DateKey(testNow), p.LastCompletedDate)
}

func TestCompleteSessionSameDayRepeatDoesNotInflateStreak(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.CompleteSession(1, 60, 90)
	require.NoError(t, err)
	p, err := service.CompleteSession(1, 60, 90)
	require.NoError(t, err)

	require.Equal(t, 1, p.Streak)
	require.Equal(t, []int{1}, p.SessionsCompleted)
}

func TestCompleteSessionExtendsStreakAcrossConsecutiveDays(t *testing.T) {
	service, store := newTestService(t)

	yesterday := models.DateKey(testNow.AddDate(0, 0, -1))
	require.NoError(t, store.Save(models.UserProgress{
		CurrentDay:        5,
		Streak:            4,
		LastCompletedDate: yesterday,
	}))

	p, err := service.CompleteSession(5, 60, 90)
	require.NoError(t, err)
	require.Equal(t, 5, p.Streak)
	require.Equal(t, 6, p.CurrentDay)
}

func TestCompleteSessionResetsStreakAfterGap(t *testing.T) {
	service, store := newTestService(t)

	require.NoError(t, store.Save(models.UserProgress{
		CurrentDay:        5,
		Streak:            9,
		LastCompletedDate: "2026-08-20",
	}))

	p, err := service.CompleteSession(5, 60, 90)
	require.NoError(t, err)
	require.Equal(t, 1, p.Streak)
}

func TestCompleteSessionPastDayNeverAdvancesPointer(t *testing.T) {
	service, store := newTestService(t)

	require.NoError(t, store.Save(models.UserProgress{CurrentDay: 10}))

	p, err := service.CompleteSession(3, 60, 90)
	require.NoError(t, err)
	require.Equal(t, 10, p.CurrentDay)
	require.Contains(t, p.SessionsCompleted, 3)
}

func TestCompleteSessionCapsAtTotalDays(t *testing.T) {
	service, store := newTestService(t)

	require.NoError(t, store.Save(models.UserProgress{CurrentDay: 90}))

	p, err := service.CompleteSession(90, 60, 90)
	require.NoError(t, err)
	require.Equal(t, 90, p.CurrentDay)
}

func TestCompleteSessionMinutesRounding(t *testing.T) {
	service, _ := newTestService(t)

	// 1 second still counts as one minute
	p, err := service.CompleteSession(1, 1, 90)
	require.NoError(t, err)
	require.Equal(t, 1, p.TotalMinutes)

	// zero seconds adds nothing
	p, err = service.CompleteSession(1, 0, 90)
	require.NoError(t, err)
	require.Equal(t, 1, p.TotalMinutes)

	// 61 seconds rounds up to two minutes
	p, err = service.CompleteSession(2, 61, 90)
	require.NoError(t, err)
	require.Equal(t, 3, p.TotalMinutes)
}

func TestCheckpointBookkeeping(t *testing.T) {
	service, _ := newTestService(t)

	p, err := service.MarkReinforcementCheckpointOffered(15)
	require.NoError(t, err)
	require.Equal(t, []int{15}, p.OfferedReinforcementCheckpointDays)
	require.Empty(t, p.CompletedReinforcementCheckpointDays)

	p, err = service.CompleteReinforcementCheckpoint(30)
	require.NoError(t, err)
	require.Equal(t, []int{30}, p.CompletedReinforcementCheckpointDays)
	require.Equal(t, []int{15, 30}, p.OfferedReinforcementCheckpointDays)

	// repeating is a no-op on the sets
	p, err = service.CompleteReinforcementCheckpoint(30)
	require.NoError(t, err)
	require.Equal(t, []int{30}, p.CompletedReinforcementCheckpointDays)
}

func TestCompleteReinforcementCheckpointRejectsNonPositiveDay(t *testing.T) {
	service, _ := newTestService(t)

	before := service.Current()
	p, err := service.CompleteReinforcementCheckpoint(0)
	require.NoError(t, err)
	require.Equal(t, before, p)

	p, err = service.CompleteReinforcementCheckpoint(-5)
	require.NoError(t, err)
	require.Equal(t, before, p)
}

func TestMicroReviewCompletionImpliesShown(t *testing.T) {
	service, _ := newTestService(t)

	p, err := service.MarkMicroReviewCompleted(testNow)
	require.NoError(t, err)

	key := models.DateKey(testNow)
	require.Equal(t, []string{key}, p.MicroReviewShownDates)
	require.Equal(t, []string{key}, p.MicroReviewCompletedDates)
}

func TestIncrementReviewModeCompletion(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.IncrementReviewModeCompletion(models.ModeNewDay)
	require.NoError(t, err)
	_, err = service.IncrementReviewModeCompletion(models.ModeNewDay)
	require.NoError(t, err)
	p, err := service.IncrementReviewModeCompletion(models.ModeLightReview)
	require.NoError(t, err)

	require.Equal(t, 2, p.ReviewModeCompletionCounts.NewDay)
	require.Equal(t, 1, p.ReviewModeCompletionCounts.LightReview)

	// unknown mode is a no-op
	same, err := service.IncrementReviewModeCompletion("bogus")
	require.NoError(t, err)
	require.Equal(t, p, same)
}

// Concurrent mutations on the same record must both land, regardless of
// completion order.
func TestConcurrentMutationsLoseNoUpdate(t *testing.T) {
	service, _ := newTestService(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := service.CompleteSession(1, 600, 90)
		require.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := service.IncrementReviewModeCompletion(models.ModeNewDay)
		require.NoError(t, err)
	}()
	wg.Wait()

	final := service.Current()
	require.Equal(t, []int{1}, final.SessionsCompleted)
	require.Equal(t, 10, final.TotalMinutes)
	require.Equal(t, 1, final.ReviewModeCompletionCounts.NewDay)
}

func TestConcurrentCheckpointCompletions(t *testing.T) {
	service, _ := newTestService(t)

	days := []int{15, 30, 45, 60, 75, 90}
	var wg sync.WaitGroup
	for _, day := range days {
		day := day
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CompleteReinforcementCheckpoint(day)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	final := service.Current()
	require.Equal(t, days, final.CompletedReinforcementCheckpointDays)
	require.Equal(t, days, final.OfferedReinforcementCheckpointDays)
}
