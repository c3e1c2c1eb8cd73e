package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/movearena/team-league/internal/domain/livegame"
)

type LiveGameRepository struct {
	mu        sync.RWMutex
	liveGames map[string]livegame.LiveGame
	events    map[string][]livegame.ScoreEvent
}

func NewLiveGameRepository() *LiveGameRepository {
	return &LiveGameRepository{
		liveGames: make(map[string]livegame.LiveGame),
		events:    make(map[string][]livegame.ScoreEvent),
	}
}

func (r *LiveGameRepository) Create(_ context.Context, item livegame.LiveGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.liveGames[item.GameID]; exists {
		return nil
	}
	r.liveGames[item.GameID] = item
	return nil
}

func (r *LiveGameRepository) GetByGameID(_ context.Context, gameID string) (livegame.LiveGame, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.liveGames[gameID]
	return item, ok, nil
}

func (r *LiveGameRepository) AppendEvent(_ context.Context, event livegame.ScoreEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.liveGames[event.GameID]
	item.GameID = event.GameID
	switch event.Side {
	case livegame.SideHome:
		item.HomeScore += event.Points
		item.HomePower += event.Power
	case livegame.SideAway:
		item.AwayScore += event.Points
		item.AwayPower += event.Power
	}
	occurredAt := event.OccurredAt
	item.LastScorerUserID = event.UserID
	item.LastScorerUsername = event.Username
	item.LastScoredAt = &occurredAt
	r.liveGames[event.GameID] = item

	r.events[event.GameID] = append(r.events[event.GameID], event)
	return nil
}

func (r *LiveGameRepository) ListEvents(_ context.Context, gameID string) ([]livegame.ScoreEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]livegame.ScoreEvent(nil), r.events[gameID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

func (r *LiveGameRepository) Deactivate(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.liveGames[gameID]
	if !ok {
		return nil
	}
	item.Active = false
	r.liveGames[gameID] = item
	return nil
}

func (r *LiveGameRepository) DeleteByGame(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.liveGames, gameID)
	delete(r.events, gameID)
	return nil
}
