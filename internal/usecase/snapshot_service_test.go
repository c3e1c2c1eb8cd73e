package usecase

import (
	"context"
	"testing"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
)

func TestSnapshotService_Capture_AggregatesActiveMembersOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := memory.NewMemberRepository(
		member.TeamMember{TeamID: "team-a", UserID: "user-1", Username: "one", Active: true, Stamina: 12, Strength: 8},
		member.TeamMember{TeamID: "team-a", UserID: "user-2", Username: "two", Active: true, Stamina: 7, Strength: 11},
		member.TeamMember{TeamID: "team-a", UserID: "user-3", Username: "gone", Active: false, Stamina: 99, Strength: 99},
	)
	service := NewSnapshotService(memory.NewSnapshotRepository(), memberRepo, nil)

	item, err := service.Capture(ctx, "g1", "team-a", snapshot.KindStart)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if item.Stamina != 19 || item.Strength != 19 || item.MemberCount != 2 {
		t.Fatalf("unexpected aggregate: %+v", item)
	}
	if item.Total() != 38 {
		t.Fatalf("expected total 38, got %d", item.Total())
	}
}

func TestSnapshotService_Capture_RetakeOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := memory.NewMemberRepository(
		member.TeamMember{TeamID: "team-a", UserID: "user-1", Username: "one", Active: true, Stamina: 10, Strength: 10},
	)
	snapshotRepo := memory.NewSnapshotRepository()
	service := NewSnapshotService(snapshotRepo, memberRepo, nil)

	if _, err := service.Capture(ctx, "g1", "team-a", snapshot.KindStart); err != nil {
		t.Fatalf("first capture: %v", err)
	}
	memberRepo.SetConditioning("team-a", "user-1", 15, 20)
	if _, err := service.Capture(ctx, "g1", "team-a", snapshot.KindStart); err != nil {
		t.Fatalf("second capture: %v", err)
	}

	stored, ok, err := snapshotRepo.Get(ctx, "g1", "team-a", snapshot.KindStart)
	if err != nil || !ok {
		t.Fatalf("get snapshot: ok=%v err=%v", ok, err)
	}
	if stored.Total() != 35 {
		t.Fatalf("expected retake to overwrite, total=%d", stored.Total())
	}
}
