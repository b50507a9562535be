package postgres

import (
	"context"
	"database/sql"
	"time"

	"slidecraft/internal/domain"
)

// SlideRepo implements slide repository operations on DB.
type SlideRepo struct {
	db *DB
}

// NewSlideRepo wraps a DB as a SlideRepository.
func NewSlideRepo(db *DB) *SlideRepo {
	return &SlideRepo{db: db}
}

// Create stores a new slide.
func (r *SlideRepo) Create(ctx context.Context, ownerID int64, data []byte) (*domain.Slide, error) {
	var s domain.Slide
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO slides (slide_data, owner_id, created_at) VALUES ($1, $2, $3) RETURNING id, slide_data, owner_id, created_at",
		data, ownerID, time.Now(),
	).Scan(&s.ID, &s.Data, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByOwner retrieves a slide by ID scoped to its owner. A slide that
// exists under a different owner is reported as absent.
func (r *SlideRepo) GetByOwner(ctx context.Context, id, ownerID int64) (*domain.Slide, error) {
	var s domain.Slide
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, slide_data, owner_id, created_at FROM slides WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&s.ID, &s.Data, &s.OwnerID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByOwner lists all slides owned by ownerID, newest first.
func (r *SlideRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Slide, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, slide_data, owner_id, created_at FROM slides WHERE owner_id = $1 ORDER BY id DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []domain.Slide
	for rows.Next() {
		var s domain.Slide
		if err := rows.Scan(&s.ID, &s.Data, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

// Delete deletes a slide by ID.
func (r *SlideRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM slides WHERE id = $1", id)
	return err
}
