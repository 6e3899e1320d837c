package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func entry(id string, category Category) RosterEntry {
	return RosterEntry{ID: id, FullName: "member-" + id, Category: category}
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	t.Run("groups follow the fixed display order", func(t *testing.T) {
		groups := GroupByCategory([]RosterEntry{
			entry("1", CategorySecurity),
			entry("2", CategoryAdministration),
			entry("3", CategoryJournalism),
		})
		require.Len(t, groups, 3)
		require.Equal(t, CategoryAdministration, groups[0].Category)
		require.Equal(t, CategoryJournalism, groups[1].Category)
		require.Equal(t, CategorySecurity, groups[2].Category)
	})

	t.Run("members keep their sequence order within a group", func(t *testing.T) {
		groups := GroupByCategory([]RosterEntry{
			entry("1", CategoryJournalism),
			entry("2", CategoryAdministration),
			entry("3", CategoryJournalism),
		})
		require.Equal(t, CategoryJournalism, groups[1].Category)
		require.Equal(t, "1", groups[1].Members[0].ID)
		require.Equal(t, "3", groups[1].Members[1].ID)
	})

	t.Run("empty categories are omitted", func(t *testing.T) {
		groups := GroupByCategory([]RosterEntry{entry("1", CategorySecurity)})
		require.Len(t, groups, 1)
		require.Equal(t, CategorySecurity, groups[0].Category)
	})

	t.Run("empty roster yields no groups", func(t *testing.T) {
		require.Empty(t, GroupByCategory(nil))
	})
}

func TestCategoryRole(t *testing.T) {
	t.Parallel()

	require.Equal(t, RoleAdministration, CategoryAdministration.Role())
	require.Equal(t, RoleJournalism, CategoryJournalism.Role())
	require.Equal(t, RoleSecurity, CategorySecurity.Role())
}

func TestCategoryForRole(t *testing.T) {
	t.Parallel()

	for role, want := range map[CredentialRole]Category{
		RoleAdministration: CategoryAdministration,
		RoleJournalism:     CategoryJournalism,
		RoleSecurity:       CategorySecurity,
	} {
		category, ok := CategoryForRole(role)
		require.True(t, ok)
		require.Equal(t, want, category)
	}

	for _, role := range []CredentialRole{RoleAdmin, RoleUnderReview, "ghost"} {
		_, ok := CategoryForRole(role)
		require.False(t, ok)
	}
}

func TestMemberStatusToggle(t *testing.T) {
	t.Parallel()

	require.Equal(t, StatusOffline, StatusOnline.Toggle())
	require.Equal(t, StatusOnline, StatusOffline.Toggle())
}
