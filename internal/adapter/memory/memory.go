// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"sync"
	"time"

	"slidecraft/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu     sync.Mutex
	users  []*domain.User
	slides []*domain.Slide
	files  []*domain.UploadedFile

	userIDCounter  int64
	slideIDCounter int64
	fileIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SlideRepository = (*SlideRepo)(nil)
var _ domain.FileRepository = (*FileRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)

	copied := *u
	return &copied, nil
}

// --- SlideRepository ---

// SlideRepo exposes the slide operations of DB.
type SlideRepo struct {
	db *DB
}

// Slides wraps the DB as a SlideRepository.
func (db *DB) Slides() *SlideRepo {
	return &SlideRepo{db: db}
}

// Create stores a new slide.
func (r *SlideRepo) Create(ctx context.Context, ownerID int64, data []byte) (*domain.Slide, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.slideIDCounter++
	s := &domain.Slide{
		ID:        r.db.slideIDCounter,
		Data:      append([]byte(nil), data...),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	r.db.slides = append(r.db.slides, s)

	copied := *s
	return &copied, nil
}

// GetByOwner retrieves a slide by ID scoped to its owner.
func (r *SlideRepo) GetByOwner(ctx context.Context, id, ownerID int64) (*domain.Slide, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.slides {
		if s.ID == id && s.OwnerID == ownerID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByOwner lists all slides owned by ownerID, newest first.
func (r *SlideRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Slide, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.Slide
	for i := len(r.db.slides) - 1; i >= 0; i-- {
		if r.db.slides[i].OwnerID == ownerID {
			out = append(out, *r.db.slides[i])
		}
	}
	return out, nil
}

// Delete deletes a slide by ID.
func (r *SlideRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, s := range r.db.slides {
		if s.ID == id {
			r.db.slides = append(r.db.slides[:i], r.db.slides[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- FileRepository ---

// FileRepo exposes the uploaded-file operations of DB.
type FileRepo struct {
	db *DB
}

// Files wraps the DB as a FileRepository.
func (db *DB) Files() *FileRepo {
	return &FileRepo{db: db}
}

// Create stores a new file record.
func (r *FileRepo) Create(ctx context.Context, file *domain.UploadedFile) (*domain.UploadedFile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.fileIDCounter++
	f := &domain.UploadedFile{
		ID:         r.db.fileIDCounter,
		Filename:   file.Filename,
		StoredName: file.StoredName,
		Path:       file.Path,
		Type:       file.Type,
		OwnerID:    file.OwnerID,
		CreatedAt:  time.Now().UTC(),
	}
	r.db.files = append(r.db.files, f)

	copied := *f
	return &copied, nil
}

// GetByOwner retrieves a file record by ID scoped to its owner.
func (r *FileRepo) GetByOwner(ctx context.Context, id, ownerID int64) (*domain.UploadedFile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, f := range r.db.files {
		if f.ID == id && f.OwnerID == ownerID {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByOwner lists all file records owned by ownerID, newest first.
func (r *FileRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.UploadedFile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.UploadedFile
	for i := len(r.db.files) - 1; i >= 0; i-- {
		if r.db.files[i].OwnerID == ownerID {
			out = append(out, *r.db.files[i])
		}
	}
	return out, nil
}

// Delete deletes a file record by ID.
func (r *FileRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, f := range r.db.files {
		if f.ID == id {
			r.db.files = append(r.db.files[:i], r.db.files[i+1:]...)
			return nil
		}
	}
	return nil
}
