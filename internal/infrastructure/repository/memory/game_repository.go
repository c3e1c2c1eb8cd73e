package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

func NewGameRepository(games ...game.Game) *GameRepository {
	byID := make(map[string]game.Game, len(games))
	for _, item := range games {
		byID[item.ID] = item
	}
	return &GameRepository{games: byID}
}

func (r *GameRepository) InsertBatch(_ context.Context, items []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.games[item.ID] = item
	}
	return nil
}

func (r *GameRepository) GetByID(_ context.Context, id string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.games[id]
	return item, ok, nil
}

func (r *GameRepository) ListBySeason(_ context.Context, seasonID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.games {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListDue(_ context.Context, seasonID string, status game.Status, cutoff time.Time) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.games {
		if item.SeasonID == seasonID && item.Status == status && !item.KickoffAt.After(cutoff) {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListBySeasonAndStatus(_ context.Context, seasonID string, status game.Status) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.games {
		if item.SeasonID == seasonID && item.Status == status {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListFinishedResults(_ context.Context, seasonID string) ([]game.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]game.Game, 0)
	for _, item := range r.games {
		if item.SeasonID == seasonID && item.Status == game.StatusEvaluated &&
			item.HomeScore != nil && item.AwayScore != nil {
			games = append(games, item)
		}
	}
	sortGames(games)

	out := make([]game.Result, 0, len(games))
	for _, item := range games {
		out = append(out, game.Result{
			GameID:       item.ID,
			SeasonID:     item.SeasonID,
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			HomeScore:    *item.HomeScore,
			AwayScore:    *item.AwayScore,
			WinnerTeamID: item.WinnerTeamID,
		})
	}
	return out, nil
}

func (r *GameRepository) UpdateStatus(_ context.Context, id string, expected, next game.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.games[id]
	if !ok || item.Status != expected {
		return false, nil
	}
	if err := game.Transition(expected, next); err != nil {
		return false, err
	}
	item.Status = next
	item.UpdatedAt = time.Now().UTC()
	r.games[id] = item
	return true, nil
}

func (r *GameRepository) FinalizeResult(_ context.Context, result game.Result) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.games[result.GameID]
	if !ok || item.Status != game.StatusFinished {
		return false, nil
	}

	homeScore, awayScore := result.HomeScore, result.AwayScore
	item.Status = game.StatusEvaluated
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.WinnerTeamID = result.WinnerTeamID
	item.UpdatedAt = time.Now().UTC()
	r.games[result.GameID] = item
	return true, nil
}

func (r *GameRepository) Postpone(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.games[id]
	if !ok || item.Status != game.StatusScheduled {
		return false, nil
	}
	item.Status = game.StatusPostponed
	item.UpdatedAt = time.Now().UTC()
	r.games[id] = item
	return true, nil
}

func (r *GameRepository) DeletePendingBySeason(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.games {
		if item.SeasonID != seasonID {
			continue
		}
		if item.Status == game.StatusScheduled || item.Status == game.StatusInProgress {
			delete(r.games, id)
		}
	}
	return nil
}

func sortGames(items []game.Game) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		return items[i].ID < items[j].ID
	})
}
