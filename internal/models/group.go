package models

// Group represents a set of members sharing expenses. Expenses and their
// splits are owned by the group; settlements reference it for scoping.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// MemberIDs is the list of member IDs in this group.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.MemberIDs {
		if m == memberID {
			return true
		}
	}
	return false
}
