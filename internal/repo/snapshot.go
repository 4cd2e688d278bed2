// Package repo contains all database access logic for the scheduler.
// The whole application state persists as a single JSON snapshot under a
// fixed storage key — the Postgres equivalent of the original browser
// localStorage entry. No business logic lives here.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// StorageKey is the fixed key the application snapshot is stored under.
const StorageKey = "instructor-scheduler-state"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SnapshotRepo defines the persistence operations for the application
// snapshot. The service layer depends on this interface, not the concrete
// Postgres implementation, which allows the service to be unit-tested with
// a mock.
type SnapshotRepo interface {
	// Load reads and decodes the snapshot stored under key.
	// Returns domain.ErrNotFound when no snapshot exists yet.
	Load(ctx context.Context, key string) (*domain.State, error)

	// Save upserts the snapshot under key, replacing any previous one.
	Save(ctx context.Context, key string, st *domain.State) error
}

// pgSnapshotRepo is the Postgres implementation of SnapshotRepo.
type pgSnapshotRepo struct {
	db db
}

// NewSnapshotRepo constructs a SnapshotRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewSnapshotRepo(db db) SnapshotRepo {
	return &pgSnapshotRepo{db: db}
}

func (r *pgSnapshotRepo) Load(ctx context.Context, key string) (*domain.State, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM snapshots WHERE key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.Load: %w", err)
	}

	var st domain.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.Load: decode snapshot: %w", err)
	}
	if st.Schedule == nil {
		st.Schedule = make(map[string]*domain.DaySchedule)
	}
	if st.CancelledDays == nil {
		st.CancelledDays = make(map[string]bool)
	}
	// Snapshots written before the pattern was configurable omit classDays;
	// those keep the default pattern instead of an empty calendar.
	if st.ClassDays == nil {
		st.ClassDays = domain.DefaultClassDays()
	}
	return &st, nil
}

func (r *pgSnapshotRepo) Save(ctx context.Context, key string, st *domain.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("repo.SnapshotRepo.Save: encode snapshot: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO snapshots (key, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("repo.SnapshotRepo.Save: %w", err)
	}
	return nil
}
