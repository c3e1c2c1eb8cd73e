package memory

import (
	"context"
	"sync"

	"github.com/movearena/team-league/internal/domain/snapshot"
)

type snapshotKey struct {
	gameID string
	teamID string
	kind   snapshot.Kind
}

type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[snapshotKey]snapshot.TeamSnapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{snapshots: make(map[snapshotKey]snapshot.TeamSnapshot)}
}

func (r *SnapshotRepository) Upsert(_ context.Context, item snapshot.TeamSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshotKey{item.GameID, item.TeamID, item.Kind}] = item
	return nil
}

func (r *SnapshotRepository) Get(_ context.Context, gameID, teamID string, kind snapshot.Kind) (snapshot.TeamSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.snapshots[snapshotKey{gameID, teamID, kind}]
	return item, ok, nil
}

func (r *SnapshotRepository) DeleteByGame(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.snapshots {
		if key.gameID == gameID {
			delete(r.snapshots, key)
		}
	}
	return nil
}
