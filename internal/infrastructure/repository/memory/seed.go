package memory

import (
	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/team"
)

const SeedLeagueID = "movearena-demo-league"

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-morning-owls", Name: "Morning Owls", Color: "#1F6FEB", OwnerUserID: "user-ana"},
		{ID: "team-pace-setters", Name: "Pace Setters", Color: "#D73A49", OwnerUserID: "user-bram"},
		{ID: "team-iron-herons", Name: "Iron Herons", Color: "#22863A", OwnerUserID: "user-cleo"},
		{ID: "team-night-shift", Name: "Night Shift", Color: "#6F42C1", OwnerUserID: "user-dika"},
	}
}

func SeedMembers() []member.TeamMember {
	return []member.TeamMember{
		{TeamID: "team-morning-owls", UserID: "user-ana", Username: "ana", Active: true, Stamina: 42, Strength: 31},
		{TeamID: "team-morning-owls", UserID: "user-eko", Username: "eko", Active: true, Stamina: 35, Strength: 28},
		{TeamID: "team-morning-owls", UserID: "user-fay", Username: "fay", Active: false, Stamina: 12, Strength: 9},
		{TeamID: "team-pace-setters", UserID: "user-bram", Username: "bram", Active: true, Stamina: 48, Strength: 22},
		{TeamID: "team-pace-setters", UserID: "user-gita", Username: "gita", Active: true, Stamina: 39, Strength: 33},
		{TeamID: "team-iron-herons", UserID: "user-cleo", Username: "cleo", Active: true, Stamina: 29, Strength: 44},
		{TeamID: "team-iron-herons", UserID: "user-hadi", Username: "hadi", Active: true, Stamina: 31, Strength: 38},
		{TeamID: "team-night-shift", UserID: "user-dika", Username: "dika", Active: true, Stamina: 36, Strength: 27},
		{TeamID: "team-night-shift", UserID: "user-inge", Username: "inge", Active: true, Stamina: 33, Strength: 30},
	}
}

func SeedTeamIDs() []string {
	teams := SeedTeams()
	ids := make([]string, 0, len(teams))
	for _, item := range teams {
		ids = append(ids, item.ID)
	}
	return ids
}
