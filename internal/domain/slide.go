package domain

import (
	"context"
	"time"
)

// Slide is a single slide document. Data is an opaque blob owned by the
// frontend editor; the backend never inspects it.
type Slide struct {
	ID        int64     `json:"id"`
	Data      []byte    `json:"-"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlideRepository is the port for slide persistence. Lookups are owner-scoped:
// a slide that exists but belongs to another user is reported as absent.
type SlideRepository interface {
	Create(ctx context.Context, ownerID int64, data []byte) (*Slide, error)
	GetByOwner(ctx context.Context, id, ownerID int64) (*Slide, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Slide, error)
	Delete(ctx context.Context, id int64) error
}
