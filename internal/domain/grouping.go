package domain

// CategoryGroup pairs a category with its ordered member rows.
type CategoryGroup struct {
	Category Category
	Members  []RosterEntry
}

// GroupByCategory projects the flat roster sequence into the fixed category
// display order, preserving each category's internal order and omitting
// categories with no members. The projection holds no state of its own.
func GroupByCategory(entries []RosterEntry) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(Categories))
	for _, category := range Categories {
		var members []RosterEntry
		for _, entry := range entries {
			if entry.Category == category {
				members = append(members, entry)
			}
		}
		if len(members) > 0 {
			groups = append(groups, CategoryGroup{Category: category, Members: members})
		}
	}
	return groups
}
