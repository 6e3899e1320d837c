package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dashboard-service/internal/domain"
)

// NewsRepository handles persistence for news feed posts.
type NewsRepository interface {
	Create(ctx context.Context, post *domain.NewsPost) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.NewsPost, error)
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository instantiates the repository.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

func (r *newsRepository) Create(ctx context.Context, post *domain.NewsPost) error {
	const query = `
        INSERT INTO news_posts (id, author_name, content, image, posted_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.AuthorName,
		post.Content,
		post.Image,
		post.Timestamp,
	)
	return err
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM news_posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) List(ctx context.Context) ([]domain.NewsPost, error) {
	const query = `
        SELECT id, author_name, content, image, posted_at
        FROM news_posts ORDER BY posted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NewsPost
	for rows.Next() {
		var post domain.NewsPost
		if err := rows.Scan(
			&post.ID,
			&post.AuthorName,
			&post.Content,
			&post.Image,
			&post.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}
