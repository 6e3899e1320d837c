package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/events"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/pkg/apperrors"
)

// MoveDirection selects the neighbor for an in-category swap.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// EditableField enumerates the roster fields admins can edit inline.
type EditableField string

const (
	FieldTask     EditableField = "task"
	FieldDate     EditableField = "date"
	FieldFullName EditableField = "fullName"
	FieldRole     EditableField = "role"
)

// RosterService owns the ordered member sequence and its mutations. Every
// mutating operation takes the caller's capability flags as an explicit
// precondition and silently no-ops when the required capability is missing;
// that refusal is a simplification, not a security boundary.
type RosterService struct {
	roster      repository.RosterRepository
	credentials repository.CredentialRepository
	dispatcher  events.Dispatcher
}

// RosterDependencies encapsulates store requirements for the service.
type RosterDependencies struct {
	RosterRepo     repository.RosterRepository
	CredentialRepo repository.CredentialRepository
	Dispatcher     events.Dispatcher
}

// NewRosterService constructs the service.
func NewRosterService(deps RosterDependencies) *RosterService {
	return &RosterService{
		roster:      deps.RosterRepo,
		credentials: deps.CredentialRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Entries returns the flat backing sequence in position order.
func (s *RosterService) Entries(ctx context.Context) ([]domain.RosterEntry, error) {
	entries, err := s.roster.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// Grouped projects the flat sequence into the fixed category display order,
// omitting empty categories. Recomputed on every call.
func (s *RosterService) Grouped(ctx context.Context) ([]domain.CategoryGroup, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByCategory(entries), nil
}

// AddEntry assigns a registered character to a category, appending a fresh
// member row and synchronizing the credential's role to the category. The
// returned entry is nil when the caller lacks admin capability.
func (s *RosterService) AddEntry(ctx context.Context, caps auth.Capabilities, actor string, category domain.Category, characterName string) (*domain.RosterEntry, error) {
	if !caps.IsAdmin {
		return nil, nil
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(category)})
	}

	count, err := s.credentials.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if count == 0 {
		return nil, apperrors.NewNoRegisteredUsers()
	}

	if _, err := s.roster.GetByFullName(ctx, characterName); err == nil {
		return nil, apperrors.NewAlreadyAssigned(characterName)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	entry := &domain.RosterEntry{
		ID:       uuid.NewString(),
		Role:     string(category.Role()),
		FullName: characterName,
		Status:   domain.StatusOffline,
		Date:     time.Now().Format("2006-01-02"),
		Task:     domain.DefaultTask,
		Category: category,
		Warnings: 0,
	}
	if err := s.roster.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	// The credential is correlated by name only; a missing credential row is
	// tolerated rather than treated as a failure.
	if err := s.credentials.UpdateRole(ctx, characterName, category.Role()); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberAdded, actor, events.MemberAddedPayload{
		EntryID:       entry.ID,
		CharacterName: characterName,
		Category:      category,
	})
	return entry, nil
}

// ActivateMember promotes an underreview character into an operational role,
// creating their roster entry when absent. Re-activating an already rostered
// character only updates the credential role.
func (s *RosterService) ActivateMember(ctx context.Context, caps auth.Capabilities, actor, characterName string, newRole domain.CredentialRole) (*domain.RosterEntry, error) {
	if !caps.IsAdmin {
		return nil, nil
	}
	category, ok := domain.CategoryForRole(newRole)
	if !ok {
		return nil, apperrors.NewValidationError("role has no roster category", map[string]any{"role": string(newRole)})
	}

	entry, err := s.roster.GetByFullName(ctx, characterName)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if entry == nil {
		entry = &domain.RosterEntry{
			ID:       uuid.NewString(),
			Role:     string(newRole),
			FullName: characterName,
			Status:   domain.StatusOffline,
			Date:     time.Now().Format("2006-01-02"),
			Task:     domain.DefaultTask,
			Category: category,
			Warnings: 0,
		}
		if err := s.roster.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.credentials.UpdateRole(ctx, characterName, newRole); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberActivated, actor, events.MemberActivatedPayload{
		CharacterName: characterName,
		NewRole:       newRole,
		Category:      category,
	})
	return entry, nil
}

// EditField replaces one inline-editable field in place. No validation is
// applied to the value beyond it being a string.
func (s *RosterService) EditField(ctx context.Context, caps auth.Capabilities, id string, field EditableField, value string) error {
	if !caps.IsAdmin {
		return nil
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}

	switch field {
	case FieldTask:
		entry.Task = value
	case FieldDate:
		entry.Date = value
	case FieldFullName:
		entry.FullName = value
	case FieldRole:
		entry.Role = value
	default:
		return apperrors.NewValidationError("unknown field", map[string]any{"field": string(field)})
	}

	return apperrors.MapError(s.roster.Update(ctx, entry))
}

// DeleteEntry removes the entry unconditionally. Deleting an unknown id is
// not an error.
func (s *RosterService) DeleteEntry(ctx context.Context, caps auth.Capabilities, actor, id string) error {
	if !caps.IsAdmin {
		return nil
	}

	entry, err := s.roster.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}

	if err := s.roster.Delete(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberRemoved, actor, events.MemberRemovedPayload{
		EntryID:       id,
		CharacterName: entry.FullName,
	})
	return nil
}

// ToggleStatus flips a member between online and offline.
func (s *RosterService) ToggleStatus(ctx context.Context, caps auth.Capabilities, id string) error {
	if !caps.IsAdmin {
		return nil
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}
	entry.Status = entry.Status.Toggle()
	return apperrors.MapError(s.roster.Update(ctx, entry))
}

// ToggleWarning presses one of the W1..W3 slots: pressing the member's
// current level removes the warning, any other press overwrites the level.
// Applying the same level twice returns the member to their original state.
func (s *RosterService) ToggleWarning(ctx context.Context, caps auth.Capabilities, actor, id string, level int) error {
	if !caps.CanWarn {
		return nil
	}
	if level < domain.MinWarningLevel || level > domain.MaxWarningLevel {
		return apperrors.NewValidationError("warning level out of range", map[string]any{"level": level})
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}

	newLevel := level
	if entry.Warnings == level {
		newLevel = 0
	}
	entry.Warnings = newLevel
	if err := s.roster.Update(ctx, entry); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberWarned, actor, events.MemberWarnedPayload{
		EntryID:       id,
		CharacterName: entry.FullName,
		Level:         level,
		NewLevel:      newLevel,
	})
	return nil
}

// SetAvatar attaches an inline data-URL image to a member row.
func (s *RosterService) SetAvatar(ctx context.Context, caps auth.Capabilities, id, avatar string) error {
	if !caps.IsAdmin {
		return nil
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return err
	}
	entry.Avatar = avatar
	return apperrors.MapError(s.roster.Update(ctx, entry))
}

// ReorderByDrag drops the source entry immediately before the target entry
// in the flat sequence, adopting the target's category when they differ.
// Dropping an entry onto itself, or referencing an unknown id, is a no-op.
func (s *RosterService) ReorderByDrag(ctx context.Context, caps auth.Capabilities, sourceID, targetID string) error {
	if !caps.IsAdmin {
		return nil
	}
	if sourceID == targetID {
		return nil
	}

	entries, err := s.roster.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	sourceIdx := indexByID(entries, sourceID)
	targetIdx := indexByID(entries, targetID)
	if sourceIdx < 0 || targetIdx < 0 {
		return nil
	}

	source := entries[sourceIdx]
	if source.Category != entries[targetIdx].Category {
		source.Category = entries[targetIdx].Category
	}

	reordered := make([]domain.RosterEntry, 0, len(entries))
	reordered = append(reordered, entries[:sourceIdx]...)
	reordered = append(reordered, entries[sourceIdx+1:]...)

	insertAt := indexByID(reordered, targetID)
	reordered = append(reordered, domain.RosterEntry{})
	copy(reordered[insertAt+1:], reordered[insertAt:])
	reordered[insertAt] = source

	return apperrors.MapError(s.roster.ReplaceAll(ctx, reordered))
}

// MoveWithinCategory swaps the entry with its neighbor inside its category
// partition and reassembles the flat sequence as (others, category). Moving
// past either boundary, or naming an id absent from the category, is a
// no-op. The reassembly relocates the whole category block to the tail of
// the backing sequence; the grouped projection hides this.
func (s *RosterService) MoveWithinCategory(ctx context.Context, caps auth.Capabilities, id string, category domain.Category, direction MoveDirection) error {
	if !caps.IsAdmin {
		return nil
	}

	entries, err := s.roster.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	var inCategory, others []domain.RosterEntry
	for _, entry := range entries {
		if entry.Category == category {
			inCategory = append(inCategory, entry)
		} else {
			others = append(others, entry)
		}
	}

	idx := indexByID(inCategory, id)
	switch direction {
	case MoveUp:
		if idx <= 0 {
			return nil
		}
		inCategory[idx], inCategory[idx-1] = inCategory[idx-1], inCategory[idx]
	case MoveDown:
		if idx < 0 || idx >= len(inCategory)-1 {
			return nil
		}
		inCategory[idx], inCategory[idx+1] = inCategory[idx+1], inCategory[idx]
	default:
		return apperrors.NewValidationError("unknown direction", map[string]any{"direction": string(direction)})
	}

	return apperrors.MapError(s.roster.ReplaceAll(ctx, append(others, inCategory...)))
}

func (s *RosterService) getEntry(ctx context.Context, id string) (*domain.RosterEntry, error) {
	entry, err := s.roster.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("roster entry", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

func (s *RosterService) publish(ctx context.Context, eventType events.EventType, actor string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{CharacterName: actor},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func indexByID(entries []domain.RosterEntry, id string) int {
	for i, entry := range entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}
