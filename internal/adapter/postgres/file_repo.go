package postgres

import (
	"context"
	"database/sql"
	"time"

	"slidecraft/internal/domain"
)

// FileRepo implements uploaded-file repository operations on DB.
type FileRepo struct {
	db *DB
}

// NewFileRepo wraps a DB as a FileRepository.
func NewFileRepo(db *DB) *FileRepo {
	return &FileRepo{db: db}
}

// Create stores a new file record.
func (r *FileRepo) Create(ctx context.Context, file *domain.UploadedFile) (*domain.UploadedFile, error) {
	var f domain.UploadedFile
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO uploaded_files (filename, stored_name, path, file_type, owner_id, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, filename, stored_name, path, file_type, owner_id, created_at",
		file.Filename, file.StoredName, file.Path, file.Type, file.OwnerID, time.Now(),
	).Scan(&f.ID, &f.Filename, &f.StoredName, &f.Path, &f.Type, &f.OwnerID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByOwner retrieves a file record by ID scoped to its owner.
func (r *FileRepo) GetByOwner(ctx context.Context, id, ownerID int64) (*domain.UploadedFile, error) {
	var f domain.UploadedFile
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, filename, stored_name, path, file_type, owner_id, created_at FROM uploaded_files WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&f.ID, &f.Filename, &f.StoredName, &f.Path, &f.Type, &f.OwnerID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByOwner lists all file records owned by ownerID, newest first.
func (r *FileRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.UploadedFile, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, filename, stored_name, path, file_type, owner_id, created_at FROM uploaded_files WHERE owner_id = $1 ORDER BY id DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.UploadedFile
	for rows.Next() {
		var f domain.UploadedFile
		if err := rows.Scan(&f.ID, &f.Filename, &f.StoredName, &f.Path, &f.Type, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Delete deletes a file record by ID.
func (r *FileRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM uploaded_files WHERE id = $1", id)
	return err
}
