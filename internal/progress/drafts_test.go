package progress

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/pkg/models"
)

func newTestDrafts(t *testing.T) *Drafts {
	t.Helper()
	store, err := database.Open(database.Options{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	q := queue.New()
	t.Cleanup(q.Close)

	return NewDrafts(database.NewDraftStore(store), q, fixedClock{now: testNow})
}

func TestDraftLifecycle(t *testing.T) {
	drafts := newTestDrafts(t)

	draft, err := drafts.Begin(4)
	require.NoError(t, err)
	require.NotEmpty(t, draft.ID)
	require.Equal(t, 4, draft.DayNumber)
	require.Equal(t, models.DateKey(testNow), draft.StartedAt)

	draft, err = drafts.RecordBlock("warmup", 120)
	require.NoError(t, err)
	require.Equal(t, []string{"warmup"}, draft.CompletedBlocks)
	require.Equal(t, 120, draft.ElapsedSeconds)

	// duplicate block ids collapse, elapsed time accumulates
	draft, err = drafts.RecordBlock("warmup", 60)
	require.NoError(t, err)
	require.Equal(t, []string{"warmup"}, draft.CompletedBlocks)
	require.Equal(t, 180, draft.ElapsedSeconds)

	require.NoError(t, drafts.Clear())
	require.Empty(t, drafts.Current().ID)
}

func TestBeginReplacesExistingDraft(t *testing.T) {
	drafts := newTestDrafts(t)

	first, err := drafts.Begin(2)
	require.NoError(t, err)
	_, err = drafts.RecordBlock("warmup", 60)
	require.NoError(t, err)

	second, err := drafts.Begin(3)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, 3, second.DayNumber)
	require.Empty(t, drafts.Current().CompletedBlocks)
}

func TestRecordBlockWithoutDraftIsNoOp(t *testing.T) {
	drafts := newTestDrafts(t)

	draft, err := drafts.RecordBlock("warmup", 60)
	require.NoError(t, err)
	require.Empty(t, draft.ID)
	require.Empty(t, drafts.Current().CompletedBlocks)
}

func TestBeginRejectsNonPositiveDay(t *testing.T) {
	drafts := newTestDrafts(t)

	draft, err := drafts.Begin(0)
	require.NoError(t, err)
	require.Empty(t, draft.ID)
}
