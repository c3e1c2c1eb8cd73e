package member

// TeamMember is the read-only membership record consumed by snapshot
// aggregation and broadcast fan-out. Stamina and strength are maintained by
// the activity-stat pipeline and treated as opaque inputs here.
type TeamMember struct {
	TeamID   string
	UserID   string
	Username string
	Active   bool
	Stamina  int
	Strength int
}

// Conditioning is the aggregate over a team's active members.
type Conditioning struct {
	Stamina     int
	Strength    int
	MemberCount int
}
