package models

// Group is a named set of people sharing one debt ledger.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Trip", "Flat 3B").
	// Names are unique so the CLI can address groups by name.
	Name string

	// Members are person names in the order they joined.
	// Membership only grows.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether name belongs to the group.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}
