package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"twitter_app/internal/common"
	"twitter_app/internal/domain/model"
)

type MicropostRepository interface {
	Create(ctx context.Context, post *model.Micropost) error
	FindByID(ctx context.Context, id int64) (*model.Micropost, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Micropost, int, error)
}

type pgMicropostRepository struct {
	db *sql.DB
}

func NewPgMicropostRepository(db *sql.DB) MicropostRepository {
	return &pgMicropostRepository{db: db}
}

func (r *pgMicropostRepository) Create(ctx context.Context, post *model.Micropost) error {
	query := `INSERT INTO microposts (content, user_id)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, post.Content, post.UserID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgMicropostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgMicropostRepository) FindByID(ctx context.Context, id int64) (*model.Micropost, error) {
	query := `SELECT id, content, user_id, created_at FROM microposts WHERE id = $1`
	post := &model.Micropost{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Content, &post.UserID, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMicropostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgMicropostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM microposts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgMicropostRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgMicropostRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's microposts newest first.
func (r *pgMicropostRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Micropost, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM microposts WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("pgMicropostRepository.ListByUser count: %w", err)
	}

	query := `SELECT id, content, user_id, created_at
	          FROM microposts
	          WHERE user_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgMicropostRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	posts := []model.Micropost{}
	for rows.Next() {
		var p model.Micropost
		if err := rows.Scan(&p.ID, &p.Content, &p.UserID, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgMicropostRepository.ListByUser scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgMicropostRepository.ListByUser rows.Err: %w", err)
	}

	return posts, total, nil
}
