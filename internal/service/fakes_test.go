package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/repository"
)

// In-memory doubles for the store interfaces, enough fidelity for service
// tests: pgx.ErrNoRows on misses, insertion order preserved.

type fakeCredentialRepo struct {
	creds []*domain.Credential
}

func (f *fakeCredentialRepo) Create(_ context.Context, cred *domain.Credential) error {
	now := time.Now()
	cred.CreatedAt = now
	cred.UpdatedAt = now
	stored := *cred
	f.creds = append(f.creds, &stored)
	return nil
}

func (f *fakeCredentialRepo) GetByName(_ context.Context, characterName string) (*domain.Credential, error) {
	for _, cred := range f.creds {
		if cred.CharacterName == characterName {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCredentialRepo) UpdateRole(_ context.Context, characterName string, role domain.CredentialRole) error {
	for _, cred := range f.creds {
		if cred.CharacterName == characterName {
			cred.Role = role
			cred.UpdatedAt = time.Now()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCredentialRepo) List(_ context.Context) ([]domain.Credential, error) {
	out := make([]domain.Credential, 0, len(f.creds))
	for _, cred := range f.creds {
		out = append(out, *cred)
	}
	return out, nil
}

func (f *fakeCredentialRepo) ListByRole(_ context.Context, role domain.CredentialRole) ([]domain.Credential, error) {
	var out []domain.Credential
	for _, cred := range f.creds {
		if cred.Role == role {
			out = append(out, *cred)
		}
	}
	return out, nil
}

func (f *fakeCredentialRepo) Count(_ context.Context) (int, error) {
	return len(f.creds), nil
}

type fakeRosterRepo struct {
	entries []domain.RosterEntry
}

func (f *fakeRosterRepo) Create(_ context.Context, entry *domain.RosterEntry) error {
	now := time.Now()
	entry.Position = len(f.entries)
	entry.CreatedAt = now
	entry.UpdatedAt = now
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRosterRepo) Update(_ context.Context, entry *domain.RosterEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			entry.Position = f.entries[i].Position
			entry.UpdatedAt = time.Now()
			f.entries[i] = *entry
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeRosterRepo) Delete(_ context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			for j := range f.entries {
				f.entries[j].Position = j
			}
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeRosterRepo) GetByID(_ context.Context, id string) (*domain.RosterEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			copied := f.entries[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRosterRepo) GetByFullName(_ context.Context, fullName string) (*domain.RosterEntry, error) {
	for i := range f.entries {
		if f.entries[i].FullName == fullName {
			copied := f.entries[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRosterRepo) List(_ context.Context) ([]domain.RosterEntry, error) {
	out := make([]domain.RosterEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeRosterRepo) ReplaceAll(_ context.Context, entries []domain.RosterEntry) error {
	replaced := make([]domain.RosterEntry, len(entries))
	for i, entry := range entries {
		entry.Position = i
		replaced[i] = entry
	}
	f.entries = replaced
	return nil
}

type fakeNewsRepo struct {
	posts []domain.NewsPost
}

func (f *fakeNewsRepo) Create(_ context.Context, post *domain.NewsPost) error {
	f.posts = append([]domain.NewsPost{*post}, f.posts...)
	return nil
}

func (f *fakeNewsRepo) Delete(_ context.Context, id string) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNewsRepo) List(_ context.Context) ([]domain.NewsPost, error) {
	out := make([]domain.NewsPost, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

type fakeLoginInfoStore struct {
	info *repository.SavedLoginInfo
}

func (f *fakeLoginInfoStore) Save(_ context.Context, info repository.SavedLoginInfo) error {
	f.info = &info
	return nil
}

func (f *fakeLoginInfoStore) Get(_ context.Context) (*repository.SavedLoginInfo, error) {
	if f.info == nil {
		return nil, nil
	}
	copied := *f.info
	return &copied, nil
}

func (f *fakeLoginInfoStore) Clear(_ context.Context) error {
	f.info = nil
	return nil
}

type fakeSpotlightStore struct {
	name string
}

func (f *fakeSpotlightStore) Set(_ context.Context, characterName string) error {
	f.name = characterName
	return nil
}

func (f *fakeSpotlightStore) Get(_ context.Context) (string, error) {
	return f.name, nil
}

func (f *fakeSpotlightStore) Clear(_ context.Context) error {
	f.name = ""
	return nil
}

type fakeNoticeStore struct {
	notices map[string]string
}

func newFakeNoticeStore() *fakeNoticeStore {
	return &fakeNoticeStore{notices: map[string]string{}}
}

func (f *fakeNoticeStore) Put(_ context.Context, characterName, message string, _ time.Duration) error {
	f.notices[characterName] = message
	return nil
}

func (f *fakeNoticeStore) Get(_ context.Context, characterName string) (string, error) {
	return f.notices[characterName], nil
}
