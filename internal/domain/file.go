package domain

import (
	"context"
	"time"
)

// UploadedFile is the metadata record for a file stored on disk.
// Filename is the client-supplied name, StoredName the unique name on disk.
type UploadedFile struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	StoredName string    `json:"stored_name"`
	Path       string    `json:"-"`
	Type       string    `json:"file_type"`
	OwnerID    int64     `json:"owner_id"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FileRepository is the port for uploaded-file metadata. Lookups are
// owner-scoped like SlideRepository.
type FileRepository interface {
	Create(ctx context.Context, file *UploadedFile) (*UploadedFile, error)
	GetByOwner(ctx context.Context, id, ownerID int64) (*UploadedFile, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]UploadedFile, error)
	Delete(ctx context.Context, id int64) error
}
