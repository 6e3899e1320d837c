package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/events"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
)

var (
	adminCaps  = auth.Capabilities{IsAdmin: true, CanWarn: true, CanPostNews: true}
	viewerCaps = auth.Capabilities{}
)

func seedEntry(id, fullName string, category domain.Category) domain.RosterEntry {
	return domain.RosterEntry{
		ID:       id,
		Role:     string(category.Role()),
		FullName: fullName,
		Status:   domain.StatusOffline,
		Date:     "2024-01-15",
		Task:     domain.DefaultTask,
		Category: category,
	}
}

func newRosterFixture(entries ...domain.RosterEntry) (*RosterService, *fakeRosterRepo, *fakeCredentialRepo) {
	roster := &fakeRosterRepo{}
	for i := range entries {
		entries[i].Position = i
	}
	roster.entries = entries

	creds := &fakeCredentialRepo{}
	svc := NewRosterService(RosterDependencies{
		RosterRepo:     roster,
		CredentialRepo: creds,
		Dispatcher:     events.NewInMemoryDispatcher(),
	})
	return svc, roster, creds
}

func idsOf(entries []domain.RosterEntry) []string {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	return ids
}

func TestAddEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture()
		entry, err := svc.AddEntry(ctx, viewerCaps, "someone", domain.CategoryJournalism, "Emma")
		require.NoError(t, err)
		require.Nil(t, entry)
		require.Empty(t, roster.entries)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, _, creds := newRosterFixture()
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Emma", Role: domain.RoleUnderReview})

		_, err := svc.AddEntry(ctx, adminCaps, "Felix Brock", domain.Category("Catering"), "Emma")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("fails when nobody is registered", func(t *testing.T) {
		svc, _, _ := newRosterFixture()
		_, err := svc.AddEntry(ctx, adminCaps, "Felix Brock", domain.CategoryJournalism, "Emma")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "NO_REGISTERED_USERS", domainErr.Code)
	})

	t.Run("refuses a character already on the roster", func(t *testing.T) {
		svc, _, creds := newRosterFixture(seedEntry("1", "Emma", domain.CategoryJournalism))
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Emma", Role: domain.RoleJournalism})

		_, err := svc.AddEntry(ctx, adminCaps, "Felix Brock", domain.CategorySecurity, "Emma")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "ALREADY_ASSIGNED", domainErr.Code)
	})

	t.Run("appends the member and syncs the credential role", func(t *testing.T) {
		svc, roster, creds := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Emma", Role: domain.RoleUnderReview})

		entry, err := svc.AddEntry(ctx, adminCaps, "Felix Brock", domain.CategoryJournalism, "Emma")
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.Equal(t, "Emma", entry.FullName)
		require.Equal(t, "journalism", entry.Role)
		require.Equal(t, domain.StatusOffline, entry.Status)
		require.Equal(t, domain.DefaultTask, entry.Task)
		require.Zero(t, entry.Warnings)

		require.Len(t, roster.entries, 2)
		require.Equal(t, entry.ID, roster.entries[1].ID)

		cred, err := creds.GetByName(ctx, "Emma")
		require.NoError(t, err)
		require.Equal(t, domain.RoleJournalism, cred.Role)
	})

	t.Run("tolerates a character without a credential row", func(t *testing.T) {
		svc, roster, creds := newRosterFixture()
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Somebody Else", Role: domain.RoleUnderReview})

		entry, err := svc.AddEntry(ctx, adminCaps, "Felix Brock", domain.CategorySecurity, "Lisa")
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.Len(t, roster.entries, 1)
	})
}

func TestActivateMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a roster entry for a fresh activation", func(t *testing.T) {
		svc, roster, creds := newRosterFixture()
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Emma", Role: domain.RoleUnderReview})

		entry, err := svc.ActivateMember(ctx, adminCaps, "Felix Brock", "Emma", domain.RoleJournalism)
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.Equal(t, domain.CategoryJournalism, entry.Category)
		require.Equal(t, "journalism", entry.Role)
		require.Len(t, roster.entries, 1)

		cred, err := creds.GetByName(ctx, "Emma")
		require.NoError(t, err)
		require.Equal(t, domain.RoleJournalism, cred.Role)
	})

	t.Run("re-activation only updates the credential role", func(t *testing.T) {
		svc, roster, creds := newRosterFixture(seedEntry("1", "Emma", domain.CategoryJournalism))
		creds.creds = append(creds.creds, &domain.Credential{CharacterName: "Emma", Role: domain.RoleJournalism})

		entry, err := svc.ActivateMember(ctx, adminCaps, "Felix Brock", "Emma", domain.RoleSecurity)
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.Len(t, roster.entries, 1)
		require.Equal(t, domain.CategoryJournalism, roster.entries[0].Category)

		cred, err := creds.GetByName(ctx, "Emma")
		require.NoError(t, err)
		require.Equal(t, domain.RoleSecurity, cred.Role)
	})

	t.Run("rejects roles without a roster category", func(t *testing.T) {
		svc, _, _ := newRosterFixture()
		_, err := svc.ActivateMember(ctx, adminCaps, "Felix Brock", "Emma", domain.RoleUnderReview)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture()
		entry, err := svc.ActivateMember(ctx, viewerCaps, "someone", "Emma", domain.RoleJournalism)
		require.NoError(t, err)
		require.Nil(t, entry)
		require.Empty(t, roster.entries)
	})
}

func TestEditField(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("edits each supported field in place", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))

		require.NoError(t, svc.EditField(ctx, adminCaps, "1", FieldTask, "Organize a poetry night"))
		require.NoError(t, svc.EditField(ctx, adminCaps, "1", FieldDate, "2024-02-01"))
		require.NoError(t, svc.EditField(ctx, adminCaps, "1", FieldFullName, "Sarah J."))
		require.NoError(t, svc.EditField(ctx, adminCaps, "1", FieldRole, "Minister"))

		entry := roster.entries[0]
		require.Equal(t, "Organize a poetry night", entry.Task)
		require.Equal(t, "2024-02-01", entry.Date)
		require.Equal(t, "Sarah J.", entry.FullName)
		require.Equal(t, "Minister", entry.Role)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		svc, _, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		err := svc.EditField(ctx, adminCaps, "1", EditableField("salary"), "1000")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc, _, _ := newRosterFixture()
		err := svc.EditField(ctx, adminCaps, "missing", FieldTask, "anything")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		require.NoError(t, svc.EditField(ctx, viewerCaps, "1", FieldTask, "hijacked"))
		require.Equal(t, domain.DefaultTask, roster.entries[0].Task)
	})
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the entry", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.DeleteEntry(ctx, adminCaps, "Felix Brock", "1"))
		require.Equal(t, []string{"2"}, idsOf(roster.entries))
	})

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		require.NoError(t, svc.DeleteEntry(ctx, adminCaps, "Felix Brock", "missing"))
		require.Len(t, roster.entries, 1)
	})

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		require.NoError(t, svc.DeleteEntry(ctx, viewerCaps, "someone", "1"))
		require.Len(t, roster.entries, 1)
	})
}

func TestToggleStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))

	require.NoError(t, svc.ToggleStatus(ctx, adminCaps, "1"))
	require.Equal(t, domain.StatusOnline, roster.entries[0].Status)

	require.NoError(t, svc.ToggleStatus(ctx, adminCaps, "1"))
	require.Equal(t, domain.StatusOffline, roster.entries[0].Status)
}

func TestToggleWarning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pressing a level sets it, pressing it again clears it", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))

		require.NoError(t, svc.ToggleWarning(ctx, adminCaps, "Felix Brock", "1", 2))
		require.Equal(t, 2, roster.entries[0].Warnings)

		require.NoError(t, svc.ToggleWarning(ctx, adminCaps, "Felix Brock", "1", 2))
		require.Zero(t, roster.entries[0].Warnings)
	})

	t.Run("a different level overwrites", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))

		require.NoError(t, svc.ToggleWarning(ctx, adminCaps, "Felix Brock", "1", 1))
		require.NoError(t, svc.ToggleWarning(ctx, adminCaps, "Felix Brock", "1", 3))
		require.Equal(t, 3, roster.entries[0].Warnings)
	})

	t.Run("rejects out-of-range levels", func(t *testing.T) {
		svc, _, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		for _, level := range []int{0, 4, -1} {
			err := svc.ToggleWarning(ctx, adminCaps, "Felix Brock", "1", level)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		}
	})

	t.Run("silently refuses without the warn capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		require.NoError(t, svc.ToggleWarning(ctx, viewerCaps, "someone", "1", 1))
		require.Zero(t, roster.entries[0].Warnings)
	})
}

func TestReorderByDrag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("moves the source immediately before the target", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Michael", domain.CategoryAdministration),
			seedEntry("3", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "3", "1"))
		require.Equal(t, []string{"3", "1", "2"}, idsOf(roster.entries))
	})

	t.Run("dragging downward also lands before the target", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Michael", domain.CategoryAdministration),
			seedEntry("3", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "1", "3"))
		require.Equal(t, []string{"2", "1", "3"}, idsOf(roster.entries))
	})

	t.Run("source adopts the target's category", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "1", "2"))

		moved, err := roster.GetByID(ctx, "1")
		require.NoError(t, err)
		require.Equal(t, domain.CategoryJournalism, moved.Category)
	})

	t.Run("dropping onto itself is a no-op", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "1", "1"))
		require.Equal(t, []string{"1", "2"}, idsOf(roster.entries))
	})

	t.Run("unknown ids are a no-op", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "1", "ghost"))
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "ghost", "1"))
		require.Equal(t, []string{"1"}, idsOf(roster.entries))
	})

	t.Run("positions are rewritten contiguously", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Michael", domain.CategoryAdministration),
			seedEntry("3", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, adminCaps, "2", "1"))
		for i, entry := range roster.entries {
			require.Equal(t, i, entry.Position)
		}
	})

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Emma", domain.CategoryJournalism),
		)
		require.NoError(t, svc.ReorderByDrag(ctx, viewerCaps, "2", "1"))
		require.Equal(t, []string{"1", "2"}, idsOf(roster.entries))
	})
}

func TestMoveWithinCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newFixture := func() (*RosterService, *fakeRosterRepo) {
		svc, roster, _ := newRosterFixture(
			seedEntry("1", "Sarah", domain.CategoryAdministration),
			seedEntry("2", "Emma", domain.CategoryJournalism),
			seedEntry("3", "David", domain.CategoryJournalism),
			seedEntry("4", "Lisa", domain.CategorySecurity),
		)
		return svc, roster
	}

	grouped := func(t *testing.T, svc *RosterService) map[domain.Category][]string {
		t.Helper()
		groups, err := svc.Grouped(ctx)
		require.NoError(t, err)
		out := map[domain.Category][]string{}
		for _, group := range groups {
			out[group.Category] = idsOf(group.Members)
		}
		return out
	}

	t.Run("swaps with the member above", func(t *testing.T) {
		svc, _ := newFixture()
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "3", domain.CategoryJournalism, MoveUp))
		require.Equal(t, []string{"3", "2"}, grouped(t, svc)[domain.CategoryJournalism])
	})

	t.Run("swaps with the member below", func(t *testing.T) {
		svc, _ := newFixture()
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "2", domain.CategoryJournalism, MoveDown))
		require.Equal(t, []string{"3", "2"}, grouped(t, svc)[domain.CategoryJournalism])
	})

	t.Run("top and bottom boundaries are no-ops", func(t *testing.T) {
		svc, _ := newFixture()
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "2", domain.CategoryJournalism, MoveUp))
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "3", domain.CategoryJournalism, MoveDown))
		require.Equal(t, []string{"2", "3"}, grouped(t, svc)[domain.CategoryJournalism])
	})

	t.Run("an id outside the category is a no-op", func(t *testing.T) {
		svc, _ := newFixture()
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "4", domain.CategoryJournalism, MoveUp))
		require.Equal(t, []string{"2", "3"}, grouped(t, svc)[domain.CategoryJournalism])
	})

	t.Run("other categories keep their relative order", func(t *testing.T) {
		svc, _ := newFixture()
		require.NoError(t, svc.MoveWithinCategory(ctx, adminCaps, "3", domain.CategoryJournalism, MoveUp))
		result := grouped(t, svc)
		require.Equal(t, []string{"1"}, result[domain.CategoryAdministration])
		require.Equal(t, []string{"4"}, result[domain.CategorySecurity])
	})

	t.Run("rejects unknown directions", func(t *testing.T) {
		svc, _ := newFixture()
		err := svc.MoveWithinCategory(ctx, adminCaps, "2", domain.CategoryJournalism, MoveDirection("sideways"))
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("silently refuses without admin capability", func(t *testing.T) {
		svc, roster := newFixture()
		before := idsOf(roster.entries)
		require.NoError(t, svc.MoveWithinCategory(ctx, viewerCaps, "3", domain.CategoryJournalism, MoveUp))
		require.Equal(t, before, idsOf(roster.entries))
	})
}

func TestSetAvatar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, roster, _ := newRosterFixture(seedEntry("1", "Sarah", domain.CategoryAdministration))

	require.NoError(t, svc.SetAvatar(ctx, adminCaps, "1", "data:image/png;base64,aGk="))
	require.Equal(t, "data:image/png;base64,aGk=", roster.entries[0].Avatar)

	require.NoError(t, svc.SetAvatar(ctx, viewerCaps, "1", "data:image/png;base64,bm8="))
	require.Equal(t, "data:image/png;base64,aGk=", roster.entries[0].Avatar)
}
