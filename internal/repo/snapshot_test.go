package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/repo"
	"github.com/jbackman/instructor-scheduler/backend/testutil"
)

// beginTestTx starts a transaction that is rolled back when the test ends,
// so every test sees a clean snapshots table without manual cleanup.
func beginTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// TestSnapshotRepo_SaveAndLoad round-trips a populated aggregate through the
// jsonb column.
func TestSnapshotRepo_SaveAndLoad(t *testing.T) {
	r := repo.NewSnapshotRepo(beginTestTx(t))
	ctx := context.Background()

	st := domain.NewState()
	day := st.EnsureDay("2025-01-06")
	day.Beginners.MainID = "default-1"
	day.Beginners.Assistants = []string{"default-2"}
	day.Merge = domain.MergeBegChi
	st.CancelledDays["2025-01-09"] = true
	st.DeletedDefaultIDs = []string{"default-8"}

	require.NoError(t, r.Save(ctx, repo.StorageKey, st))

	loaded, err := r.Load(ctx, repo.StorageKey)
	require.NoError(t, err)

	assert.Equal(t, "default-1", loaded.SlotAt("2025-01-06", domain.GroupBeginners).MainID)
	assert.Equal(t, []string{"default-2"}, loaded.SlotAt("2025-01-06", domain.GroupBeginners).Assistants)
	assert.Equal(t, domain.MergeBegChi, loaded.Day("2025-01-06").Merge)
	assert.True(t, loaded.CancelledDays["2025-01-09"])
	assert.Equal(t, []string{"default-8"}, loaded.DeletedDefaultIDs)
	assert.Len(t, loaded.Instructors, 7)
}

// TestSnapshotRepo_SaveOverwrites verifies the upsert: a second save under
// the same key replaces the first snapshot entirely.
func TestSnapshotRepo_SaveOverwrites(t *testing.T) {
	r := repo.NewSnapshotRepo(beginTestTx(t))
	ctx := context.Background()

	first := domain.NewState()
	first.EnsureDay("2025-01-06").Beginners.MainID = "default-1"
	require.NoError(t, r.Save(ctx, repo.StorageKey, first))

	second := domain.NewState()
	second.EnsureDay("2025-02-03").Adults.MainID = "default-2"
	require.NoError(t, r.Save(ctx, repo.StorageKey, second))

	loaded, err := r.Load(ctx, repo.StorageKey)
	require.NoError(t, err)
	assert.Nil(t, loaded.Day("2025-01-06"))
	assert.Equal(t, "default-2", loaded.SlotAt("2025-02-03", domain.GroupAdults).MainID)
}

func TestSnapshotRepo_Load_missing(t *testing.T) {
	r := repo.NewSnapshotRepo(beginTestTx(t))

	_, err := r.Load(context.Background(), "no-such-key")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSnapshotRepo_Load_normalizesNilMaps verifies a sparse stored document
// (old snapshots may omit fields) loads with usable non-nil maps and the
// default class-day pattern rather than an empty calendar.
func TestSnapshotRepo_Load_normalizesNilMaps(t *testing.T) {
	tx := beginTestTx(t)
	ctx := context.Background()

	_, err := tx.Exec(ctx,
		`INSERT INTO snapshots (key, data) VALUES ($1, $2)`,
		repo.StorageKey, []byte(`{"instructors":[]}`),
	)
	require.NoError(t, err)

	loaded, err := repo.NewSnapshotRepo(tx).Load(ctx, repo.StorageKey)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Schedule)
	assert.NotNil(t, loaded.CancelledDays)
	assert.Equal(t, domain.DefaultClassDays(), loaded.ClassDays)
}
