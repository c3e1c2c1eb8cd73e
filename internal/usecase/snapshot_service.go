package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/platform/logging"
)

// SnapshotService captures a team's aggregate conditioning at the start and
// end of a game. Capture is idempotent: retaking a snapshot overwrites the
// previous row for the same (game, team, kind).
type SnapshotService struct {
	snapshotRepo snapshot.Repository
	memberRepo   member.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewSnapshotService(snapshotRepo snapshot.Repository, memberRepo member.Repository, logger *logging.Logger) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		memberRepo:   memberRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SnapshotService) Capture(ctx context.Context, gameID, teamID string, kind snapshot.Kind) (snapshot.TeamSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Capture")
	defer span.End()

	cond, err := s.memberRepo.AggregateConditioning(ctx, teamID)
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("aggregate team conditioning team=%s: %w", teamID, err)
	}

	item := snapshot.TeamSnapshot{
		GameID:      gameID,
		TeamID:      teamID,
		Kind:        kind,
		Stamina:     cond.Stamina,
		Strength:    cond.Strength,
		MemberCount: cond.MemberCount,
		CapturedAt:  s.now().UTC(),
	}
	if err := s.snapshotRepo.Upsert(ctx, item); err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("upsert %s snapshot game=%s team=%s: %w", kind, gameID, teamID, err)
	}

	return item, nil
}

func (s *SnapshotService) Get(ctx context.Context, gameID, teamID string, kind snapshot.Kind) (snapshot.TeamSnapshot, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Get")
	defer span.End()

	item, exists, err := s.snapshotRepo.Get(ctx, gameID, teamID, kind)
	if err != nil {
		return snapshot.TeamSnapshot{}, false, fmt.Errorf("get %s snapshot game=%s team=%s: %w", kind, gameID, teamID, err)
	}
	return item, exists, nil
}
