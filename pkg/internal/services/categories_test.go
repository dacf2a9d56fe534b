package services

import (
	"testing"

	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/samber/lo"
)

func TestCategoryCreateWithUnknownParent(t *testing.T) {
	s := newTestServices(t)

	_, err := s.categories.Create("News", "news", "", lo.ToPtr(uint(999)))
	if code := requestErrorCode(t, err); code != errs.CodeBadRequest {
		t.Fatalf("expected %s, got %s", errs.CodeBadRequest, code)
	}
}

func TestCategoryHierarchy(t *testing.T) {
	s := newTestServices(t)

	root, err := s.categories.Create("News", "news", "", nil)
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	tech, err := s.categories.Create("Tech", "tech", "", &root.ID)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if _, err := s.categories.Create("Sports", "sports", "", &root.ID); err != nil {
		t.Fatalf("create child: %v", err)
	}

	listed, err := s.categories.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(listed))
	}
	for _, category := range listed {
		switch category.ID {
		case root.ID:
			if len(category.Children) != 2 {
				t.Fatalf("expected 2 children under root, got %d", len(category.Children))
			}
		default:
			if len(category.Children) != 0 {
				t.Fatalf("expected no children under %s, got %d", category.Slug, len(category.Children))
			}
			if category.Parent == nil || category.Parent.ID != root.ID {
				t.Fatalf("expected parent preloaded on %s", category.Slug)
			}
		}
	}

	got, err := s.categories.Get(root.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Children) != 2 {
		t.Fatal("expected children loaded on direct lookup")
	}

	bySlug, err := s.categories.GetBySlug("tech")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != tech.ID {
		t.Fatal("expected slug lookup to resolve")
	}
}

func TestCategoryLookupMissIsNil(t *testing.T) {
	s := newTestServices(t)

	got, err := s.categories.Get(42)
	if err != nil || got != nil {
		t.Fatalf("expected nil miss, got %v err=%v", got, err)
	}

	bySlug, err := s.categories.GetBySlug("nope")
	if err != nil || bySlug != nil {
		t.Fatalf("expected nil miss, got %v err=%v", bySlug, err)
	}
}

func TestCategoryUpdateParentAxis(t *testing.T) {
	s := newTestServices(t)

	root, err := s.categories.Create("News", "news", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	child, err := s.categories.Create("Tech", "tech", "", &root.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Omitted parent leaves the hierarchy alone.
	updated, err := s.categories.Update(child.ID, UpdateCategoryOpts{Name: lo.ToPtr("Technology")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != root.ID {
		t.Fatal("expected parent untouched")
	}

	// Explicit null detaches.
	updated, err = s.categories.Update(child.ID, UpdateCategoryOpts{ParentID: Some[*uint](nil)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ParentID != nil {
		t.Fatal("expected parent cleared")
	}

	_, err = s.categories.Update(child.ID, UpdateCategoryOpts{ParentID: Some(lo.ToPtr(uint(999)))})
	if code := requestErrorCode(t, err); code != errs.CodeBadRequest {
		t.Fatalf("expected %s, got %s", errs.CodeBadRequest, code)
	}
}

func TestCategoryDelete(t *testing.T) {
	s := newTestServices(t)

	category, err := s.categories.Create("News", "news", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := s.categories.Delete(category.ID)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got ok=%v err=%v", ok, err)
	}

	ok, err = s.categories.Delete(category.ID)
	if err != nil || ok {
		t.Fatalf("expected repeated delete to report false, got ok=%v err=%v", ok, err)
	}
}
