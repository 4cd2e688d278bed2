package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/repo"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// SnapshotService bridges the in-memory state and the persistence adapter.
// Loading is deliberately forgiving: a missing or corrupt snapshot leaves
// the current in-memory state untouched — the worst-case failure mode is
// "nothing happened", never a crash or a half-loaded aggregate.
type SnapshotService struct {
	store *state.Store
	repo  repo.SnapshotRepo
}

// NewSnapshotService constructs a SnapshotService.
func NewSnapshotService(store *state.Store, r repo.SnapshotRepo) *SnapshotService {
	return &SnapshotService{store: store, repo: r}
}

// Save persists the current state under the fixed storage key.
func (s *SnapshotService) Save(ctx context.Context) error {
	var snapshot *domain.State
	s.store.View(func(st *domain.State) {
		// Deep-copy via JSON so the repo can serialize outside the lock.
		raw, err := json.Marshal(st)
		if err != nil {
			return
		}
		var cp domain.State
		if json.Unmarshal(raw, &cp) == nil {
			snapshot = &cp
		}
	})
	if snapshot == nil {
		return fmt.Errorf("service.SnapshotService.Save: %w: state not serializable", domain.ErrValidation)
	}
	if err := s.repo.Save(ctx, repo.StorageKey, snapshot); err != nil {
		return fmt.Errorf("service.SnapshotService.Save: %w", err)
	}
	return nil
}

// Load reads the stored snapshot, reconciles the seed roster into it, and
// swaps it in. Returns (false, nil) when no snapshot exists yet. Any other
// failure is logged and returned without the in-memory state changing.
func (s *SnapshotService) Load(ctx context.Context) (bool, error) {
	loaded, err := s.repo.Load(ctx, repo.StorageKey)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.Warn("snapshot load failed, keeping in-memory state", "error", err)
		return false, fmt.Errorf("service.SnapshotService.Load: %w", err)
	}

	loaded.ReconcileDefaults()
	s.store.Replace(loaded)
	s.store.Notify()
	return true, nil
}
