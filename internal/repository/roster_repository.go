package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dashboard-service/internal/domain"
)

// RosterRepository handles persistence for roster entries. List returns the
// flat backing sequence in position order; ReplaceAll rewrites the whole
// sequence in one transaction, which is how reordering mutations persist
// their result.
type RosterRepository interface {
	Create(ctx context.Context, entry *domain.RosterEntry) error
	Update(ctx context.Context, entry *domain.RosterEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.RosterEntry, error)
	GetByFullName(ctx context.Context, fullName string) (*domain.RosterEntry, error)
	List(ctx context.Context) ([]domain.RosterEntry, error)
	ReplaceAll(ctx context.Context, entries []domain.RosterEntry) error
}

type rosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository instantiates the repository.
func NewRosterRepository(pool *pgxpool.Pool) RosterRepository {
	return &rosterRepository{pool: pool}
}

const rosterColumns = `id, role, full_name, avatar, status, date, task, category, warnings, position, created_at, updated_at`

func (r *rosterRepository) Create(ctx context.Context, entry *domain.RosterEntry) error {
	const query = `
        INSERT INTO roster_entries (id, role, full_name, avatar, status, date, task, category, warnings, position)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,
            (SELECT COALESCE(MAX(position)+1, 0) FROM roster_entries))
        RETURNING position, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.Role,
		entry.FullName,
		entry.Avatar,
		entry.Status,
		entry.Date,
		entry.Task,
		entry.Category,
		entry.Warnings,
	).Scan(&entry.Position, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *rosterRepository) Update(ctx context.Context, entry *domain.RosterEntry) error {
	const query = `
        UPDATE roster_entries
        SET role=$1, full_name=$2, avatar=$3, status=$4, date=$5, task=$6, category=$7, warnings=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		entry.Role,
		entry.FullName,
		entry.Avatar,
		entry.Status,
		entry.Date,
		entry.Task,
		entry.Category,
		entry.Warnings,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rosterRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM roster_entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rosterRepository) GetByID(ctx context.Context, id string) (*domain.RosterEntry, error) {
	const query = `SELECT ` + rosterColumns + ` FROM roster_entries WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *rosterRepository) GetByFullName(ctx context.Context, fullName string) (*domain.RosterEntry, error) {
	const query = `SELECT ` + rosterColumns + ` FROM roster_entries WHERE full_name=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, fullName))
}

func (r *rosterRepository) List(ctx context.Context) ([]domain.RosterEntry, error) {
	const query = `SELECT ` + rosterColumns + ` FROM roster_entries ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RosterEntry
	for rows.Next() {
		var entry domain.RosterEntry
		if err := scanRosterEntry(rows, &entry); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *rosterRepository) ReplaceAll(ctx context.Context, entries []domain.RosterEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE roster_entries SET category=$1, position=$2, updated_at=NOW()
        WHERE id=$3`

	for i, entry := range entries {
		if _, err := tx.Exec(ctx, query, entry.Category, i, entry.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *rosterRepository) scanOne(row pgx.Row) (*domain.RosterEntry, error) {
	var entry domain.RosterEntry
	if err := scanRosterEntry(row, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanRosterEntry(row pgx.Row, entry *domain.RosterEntry) error {
	return row.Scan(
		&entry.ID,
		&entry.Role,
		&entry.FullName,
		&entry.Avatar,
		&entry.Status,
		&entry.Date,
		&entry.Task,
		&entry.Category,
		&entry.Warnings,
		&entry.Position,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
}
