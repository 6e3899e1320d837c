package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dashboard-service/internal/domain"
)

// CredentialRepository defines persistence access for registered characters.
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	GetByName(ctx context.Context, characterName string) (*domain.Credential, error)
	UpdateRole(ctx context.Context, characterName string, role domain.CredentialRole) error
	List(ctx context.Context) ([]domain.Credential, error)
	ListByRole(ctx context.Context, role domain.CredentialRole) ([]domain.Credential, error)
	Count(ctx context.Context) (int, error)
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	const query = `
        INSERT INTO credentials (character_name, password, role)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		cred.CharacterName,
		cred.Password,
		cred.Role,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
}

func (r *credentialRepository) GetByName(ctx context.Context, characterName string) (*domain.Credential, error) {
	const query = `
        SELECT character_name, password, role, created_at, updated_at
        FROM credentials WHERE character_name=$1`

	var cred domain.Credential
	if err := r.pool.QueryRow(ctx, query, characterName).Scan(
		&cred.CharacterName,
		&cred.Password,
		&cred.Role,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) UpdateRole(ctx context.Context, characterName string, role domain.CredentialRole) error {
	const query = `
        UPDATE credentials SET role=$1, updated_at=NOW()
        WHERE character_name=$2`

	cmd, err := r.pool.Exec(ctx, query, role, characterName)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *credentialRepository) List(ctx context.Context) ([]domain.Credential, error) {
	const query = `
        SELECT character_name, password, role, created_at, updated_at
        FROM credentials ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCredentials(rows)
}

func (r *credentialRepository) ListByRole(ctx context.Context, role domain.CredentialRole) ([]domain.Credential, error) {
	const query = `
        SELECT character_name, password, role, created_at, updated_at
        FROM credentials WHERE role=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCredentials(rows)
}

func (r *credentialRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanCredentials(rows pgx.Rows) ([]domain.Credential, error) {
	var result []domain.Credential
	for rows.Next() {
		var cred domain.Credential
		if err := rows.Scan(
			&cred.CharacterName,
			&cred.Password,
			&cred.Role,
			&cred.CreatedAt,
			&cred.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cred)
	}
	return result, rows.Err()
}
