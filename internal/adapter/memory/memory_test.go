package memory

import (
	"context"
	"testing"

	"slidecraft/internal/domain"
)

func TestUserRoundtrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("Create assigned no ID")
	}

	got, err := db.GetByUsername(ctx, "alice")
	if err != nil || got == nil || got.ID != u.ID {
		t.Errorf("GetByUsername = %+v, %v", got, err)
	}

	got, err = db.GetByID(ctx, u.ID)
	if err != nil || got == nil || got.Username != "alice" {
		t.Errorf("GetByID = %+v, %v", got, err)
	}

	if got, _ := db.GetByUsername(ctx, "bob"); got != nil {
		t.Errorf("GetByUsername(bob) = %+v, want nil", got)
	}
}

func TestSlideOwnerScoping(t *testing.T) {
	db := New()
	repo := db.Slides()
	ctx := context.Background()

	s, err := repo.Create(ctx, 1, []byte("deck"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got, _ := repo.GetByOwner(ctx, s.ID, 1); got == nil {
		t.Error("GetByOwner as owner = nil, want slide")
	}
	// Existing slide under a different owner is reported absent.
	if got, _ := repo.GetByOwner(ctx, s.ID, 2); got != nil {
		t.Errorf("GetByOwner as other user = %+v, want nil", got)
	}

	mine, _ := repo.ListByOwner(ctx, 1)
	theirs, _ := repo.ListByOwner(ctx, 2)
	if len(mine) != 1 || len(theirs) != 0 {
		t.Errorf("ListByOwner: mine=%d theirs=%d, want 1 and 0", len(mine), len(theirs))
	}

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := repo.GetByOwner(ctx, s.ID, 1); got != nil {
		t.Errorf("GetByOwner after delete = %+v, want nil", got)
	}
}

func TestFileOwnerScoping(t *testing.T) {
	db := New()
	repo := db.Files()
	ctx := context.Background()

	f, err := repo.Create(ctx, &domain.UploadedFile{
		Filename:   "cat.png",
		StoredName: "abc123.png",
		Path:       "/tmp/uploads/images/abc123.png",
		Type:       "image",
		OwnerID:    1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got, _ := repo.GetByOwner(ctx, f.ID, 1); got == nil {
		t.Error("GetByOwner as owner = nil, want file")
	}
	if got, _ := repo.GetByOwner(ctx, f.ID, 2); got != nil {
		t.Errorf("GetByOwner as other user = %+v, want nil", got)
	}

	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := repo.GetByOwner(ctx, f.ID, 1); got != nil {
		t.Errorf("GetByOwner after delete = %+v, want nil", got)
	}
}

func TestSlideListNewestFirst(t *testing.T) {
	db := New()
	repo := db.Slides()
	ctx := context.Background()

	first, _ := repo.Create(ctx, 1, []byte("a"))
	second, _ := repo.Create(ctx, 1, []byte("b"))

	list, _ := repo.ListByOwner(ctx, 1)
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("ListByOwner order = %+v", list)
	}
}
