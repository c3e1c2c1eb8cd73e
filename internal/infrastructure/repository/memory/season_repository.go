package memory

import (
	"context"
	"sync"

	"github.com/movearena/team-league/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
	deleted map[string]bool
}

func NewSeasonRepository(seasons ...season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		byID[item.ID] = item
	}
	return &SeasonRepository{seasons: byID, deleted: make(map[string]bool)}
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.deleted[id] {
		return season.Season{}, false, nil
	}
	item, ok := r.seasons[id]
	return item, ok, nil
}

func (r *SeasonRepository) ListActive(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for id, item := range r.seasons {
		if r.deleted[id] || item.Status != season.StatusActive {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SeasonRepository) MarkCompleted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.seasons[id]
	if !ok {
		return nil
	}
	item.Status = season.StatusCompleted
	r.seasons[id] = item
	return nil
}

func (r *SeasonRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}
