package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "bingo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bingo.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Ping())
}

func TestStatsEmpty(t *testing.T) {
	st := newTestStore(t)
	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Record(ctx, Draw{SessionID: "a", Reason: ReasonInit, PoolSize: 10, Filled: 10}))
	require.NoError(t, st.Record(ctx, Draw{SessionID: "a", Reason: ReasonNew, PoolSize: 30, Filled: 24}))
	require.NoError(t, st.Record(ctx, Draw{SessionID: "b", Reason: ReasonClear, PoolSize: 0, Filled: 0}))

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Draws)
	assert.Equal(t, 2, stats.Sessions)
	assert.InDelta(t, 40.0/3.0, stats.AvgPoolSize, 0.001)
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	base := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, reason := range []string{ReasonInit, ReasonNew, ReasonClear} {
		require.NoError(t, st.Record(ctx, Draw{
			SessionID: "a",
			Reason:    reason,
			PoolSize:  i,
			DrawnAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, st.Record(ctx, Draw{SessionID: "other", Reason: ReasonInit}))

	got, err := st.Recent(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ReasonClear, got[0].Reason)
	assert.Equal(t, ReasonNew, got[1].Reason)
	assert.True(t, got[0].DrawnAt.Equal(base.Add(2*time.Second)))
}
