package team

// Team is referenced, not owned, by the league engine. Membership and
// conditioning live with the member records.
type Team struct {
	ID          string
	Name        string
	Color       string
	OwnerUserID string
}
