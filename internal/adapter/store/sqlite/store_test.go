package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Graylog2/reviewbot/internal/adapter/store/sqlite"
	"github.com/Graylog2/reviewbot/internal/usecase/lint"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := lint.RunRecord{
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		BaseSHA:   "aaaa1111",
		HeadSHA:   "bbbb2222",
		Files:     2,
		Hints:     1,
		Status:    lint.StatusFailed,
	}
	second := lint.RunRecord{
		CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		BaseSHA:   "bbbb2222",
		HeadSHA:   "cccc3333",
		Files:     1,
		Hints:     0,
		Status:    lint.StatusPassed,
	}

	require.NoError(t, store.RecordRun(ctx, first))
	require.NoError(t, store.RecordRun(ctx, second))

	records, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, second, records[0])
	assert.Equal(t, first, records[1])
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		rec := lint.RunRecord{
			CreatedAt: time.Date(2026, 8, 1, 10, i, 0, 0, time.UTC),
			BaseSHA:   "base",
			HeadSHA:   "head",
			Status:    lint.StatusPassed,
		}
		require.NoError(t, store.RecordRun(ctx, rec))
	}

	records, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordRunRejectsUnknownStatus(t *testing.T) {
	store := newTestStore(t)

	err := store.RecordRun(context.Background(), lint.RunRecord{
		BaseSHA: "a",
		HeadSHA: "b",
		Status:  "exploded",
	})

	require.Error(t, err)
}

func TestStorePersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, lint.RunRecord{
		BaseSHA: "a", HeadSHA: "b", Status: lint.StatusPassed,
	}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
