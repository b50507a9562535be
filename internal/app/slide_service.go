package app

import (
	"context"
	"errors"

	"slidecraft/internal/domain"
)

// ErrSlideNotFound covers both a missing slide and a slide owned by another
// user, so existence is never leaked across accounts.
var ErrSlideNotFound = errors.New("slide not found")

// SlideService encapsulates slide CRUD use cases.
type SlideService struct {
	repo domain.SlideRepository
}

// NewSlideService creates a SlideService backed by the given repository.
func NewSlideService(repo domain.SlideRepository) *SlideService {
	return &SlideService{repo: repo}
}

// Create stores a new slide owned by ownerID.
func (s *SlideService) Create(ctx context.Context, ownerID int64, data []byte) (*domain.Slide, error) {
	if len(data) == 0 {
		return nil, errors.New("slide_data is required")
	}
	return s.repo.Create(ctx, ownerID, data)
}

// Get returns the slide only when it belongs to ownerID.
func (s *SlideService) Get(ctx context.Context, ownerID, id int64) (*domain.Slide, error) {
	slide, err := s.repo.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if slide == nil {
		return nil, ErrSlideNotFound
	}
	return slide, nil
}

// ListMine returns all slides owned by ownerID.
func (s *SlideService) ListMine(ctx context.Context, ownerID int64) ([]domain.Slide, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes the slide when it belongs to ownerID, returning the deleted
// record.
func (s *SlideService) Delete(ctx context.Context, ownerID, id int64) (*domain.Slide, error) {
	slide, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, slide.ID); err != nil {
		return nil, err
	}
	return slide, nil
}
