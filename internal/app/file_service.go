package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"slidecraft/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize is the upload size limit in bytes.
const MaxUploadSize = 10 << 20 // 10 MiB

var (
	// ErrFileNotFound covers both a missing file and a file owned by another
	// user.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFileType indicates an unknown upload category.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrInvalidContentType indicates a content type outside the category's
	// allowlist.
	ErrInvalidContentType = errors.New("invalid content type")
	// ErrFileTooLarge indicates an upload over MaxUploadSize.
	ErrFileTooLarge = errors.New("file too large")
)

// allowedContentTypes maps an upload category to its content-type allowlist.
var allowedContentTypes = map[string]map[string]bool{
	"image": {
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
	},
	"font": {
		"font/ttf":   true,
		"font/otf":   true,
		"font/woff":  true,
		"font/woff2": true,
	},
	"video": {
		"video/mp4":  true,
		"video/webm": true,
		"video/ogg":  true,
	},
}

// FileService stores uploads on disk under root and their metadata in the
// repository.
type FileService struct {
	repo   domain.FileRepository
	root   string
	logger zerolog.Logger
}

// NewFileService creates a FileService writing under root.
func NewFileService(repo domain.FileRepository, root string) *FileService {
	return &FileService{
		repo:   repo,
		root:   root,
		logger: log.With().Str("component", "files").Logger(),
	}
}

// Save validates and writes an upload, then records its metadata. A partial
// file left by a failed write or a failed metadata insert is removed.
func (s *FileService) Save(ctx context.Context, ownerID int64, fileType, filename, contentType string, size int64, r io.Reader) (*domain.UploadedFile, error) {
	allowed, ok := allowedContentTypes[fileType]
	if !ok {
		return nil, ErrInvalidFileType
	}
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if !allowed[contentType] {
		return nil, fmt.Errorf("%w: %s for %s upload", ErrInvalidContentType, contentType, fileType)
	}

	stored := uuid.NewString() + filepath.Ext(filename)
	dir := filepath.Join(s.root, fileType+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, stored)

	if err := writeFile(path, io.LimitReader(r, MaxUploadSize+1)); err != nil {
		s.removeQuietly(path)
		return nil, fmt.Errorf("save upload: %w", err)
	}

	file, err := s.repo.Create(ctx, &domain.UploadedFile{
		Filename:   filepath.Base(filename),
		StoredName: stored,
		Path:       path,
		Type:       fileType,
		OwnerID:    ownerID,
	})
	if err != nil {
		s.removeQuietly(path)
		return nil, err
	}
	return file, nil
}

// Get returns the file metadata only when it belongs to ownerID.
func (s *FileService) Get(ctx context.Context, ownerID, id int64) (*domain.UploadedFile, error) {
	file, err := s.repo.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// ListMine returns all file records owned by ownerID.
func (s *FileService) ListMine(ctx context.Context, ownerID int64) ([]domain.UploadedFile, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes the metadata record first, then the file on disk. A failed
// disk removal after the record is gone is logged, not surfaced; the delete
// already succeeded from the caller's point of view.
func (s *FileService) Delete(ctx context.Context, ownerID, id int64) (*domain.UploadedFile, error) {
	file, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, file.ID); err != nil {
		return nil, err
	}

	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).
			Int64("file_id", file.ID).
			Str("path", file.Path).
			Msg("record deleted but disk removal failed")
	}
	return file, nil
}

func writeFile(path string, r io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

func (s *FileService) removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove partial upload")
	}
}
