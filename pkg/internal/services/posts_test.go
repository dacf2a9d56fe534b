package services

import (
	"testing"
	"time"

	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

func postIDs(posts []models.Post) []uint {
	return lo.Map(posts, func(p models.Post, _ int) uint { return p.ID })
}

func TestPostLifecycleVisibility(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	post := seedPost(t, s, CreatePostOpts{
		Title:    "Draft story",
		Slug:     "draft-story",
		Content:  datatypes.JSONMap{"body": "text"},
		AuthorID: author.ID,
	})

	if post.PublishedAt != nil {
		t.Fatal("expected new post to start as a draft")
	}

	published, _ := s.posts.ListPublished(PublishedFilter{})
	drafts, _ := s.posts.ListDrafts()
	all, _ := s.posts.ListAll()
	if len(published) != 0 || len(drafts) != 1 || len(all) != 1 {
		t.Fatalf("draft visibility wrong: published=%d drafts=%d all=%d", len(published), len(drafts), len(all))
	}

	if _, err := s.posts.Publish(post.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, _ = s.posts.ListPublished(PublishedFilter{})
	drafts, _ = s.posts.ListDrafts()
	if len(published) != 1 || len(drafts) != 0 {
		t.Fatalf("published visibility wrong: published=%d drafts=%d", len(published), len(drafts))
	}

	// Trashing hides the post everywhere except the trash listing and keeps
	// the publication axis intact.
	if ok, err := s.posts.Trash(post.ID); err != nil || !ok {
		t.Fatalf("trash: ok=%v err=%v", ok, err)
	}
	published, _ = s.posts.ListPublished(PublishedFilter{})
	all, _ = s.posts.ListAll()
	trashed, _ := s.posts.ListTrashed()
	if len(published) != 0 || len(all) != 0 || len(trashed) != 1 {
		t.Fatalf("trash visibility wrong: published=%d all=%d trashed=%d", len(published), len(all), len(trashed))
	}
	if _, err := s.posts.Get(post.ID); err == nil {
		t.Fatal("expected trashed post to be invisible to direct lookup")
	}

	if ok, err := s.posts.Restore(post.ID); err != nil || !ok {
		t.Fatalf("restore: ok=%v err=%v", ok, err)
	}
	published, _ = s.posts.ListPublished(PublishedFilter{})
	if len(published) != 1 {
		t.Fatal("expected restore to bring back pre-trash visibility")
	}

	if ok, err := s.posts.Restore(post.ID); err != nil || ok {
		t.Fatalf("expected restore of a live post to report false, got ok=%v err=%v", ok, err)
	}

	if ok, err := s.posts.DeletePermanently(post.ID); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	trashed, _ = s.posts.ListTrashed()
	all, _ = s.posts.ListAll()
	if len(trashed) != 0 || len(all) != 0 {
		t.Fatal("expected permanent delete to remove the row outright")
	}
}

func TestPostUnpublishReturnsToDrafts(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	post := seedPost(t, s, CreatePostOpts{
		Title:    "Story",
		Slug:     "story",
		Content:  datatypes.JSONMap{"body": "text"},
		AuthorID: author.ID,
	})

	if _, err := s.posts.Publish(post.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := s.posts.Unpublish(post.ID); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	drafts, _ := s.posts.ListDrafts()
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft after unpublish, got %d", len(drafts))
	}
}

func TestListPublishedFilters(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	tech, err := s.categories.Create("Tech", "tech", "", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	golang, err := s.tags.Create("Go", "go", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	first := seedPost(t, s, CreatePostOpts{
		Title:      "Go concurrency patterns",
		Slug:       "go-concurrency",
		Content:    datatypes.JSONMap{"body": "channels"},
		Excerpt:    lo.ToPtr("Channels and goroutines"),
		AuthorID:   author.ID,
		CategoryID: &tech.ID,
		TagIDs:     []uint{golang.ID},
	})
	second := seedPost(t, s, CreatePostOpts{
		Title:    "Cooking for beginners",
		Slug:     "cooking",
		Content:  datatypes.JSONMap{"body": "pasta"},
		AuthorID: author.ID,
	})
	draft := seedPost(t, s, CreatePostOpts{
		Title:      "Go generics deep dive",
		Slug:       "go-generics",
		Content:    datatypes.JSONMap{"body": "types"},
		AuthorID:   author.ID,
		CategoryID: &tech.ID,
		TagIDs:     []uint{golang.ID},
	})

	for _, id := range []uint{first.ID, second.ID} {
		if _, err := s.posts.Publish(id); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	cases := []struct {
		label  string
		filter PublishedFilter
		want   []uint
	}{
		{"no filter", PublishedFilter{}, []uint{first.ID, second.ID}},
		{"category", PublishedFilter{Category: "tech"}, []uint{first.ID}},
		{"tag", PublishedFilter{Tag: "go"}, []uint{first.ID}},
		{"keyword title", PublishedFilter{Keyword: "COOKING"}, []uint{second.ID}},
		{"keyword excerpt", PublishedFilter{Keyword: "goroutines"}, []uint{first.ID}},
		{"composed", PublishedFilter{Category: "tech", Tag: "go", Keyword: "concurrency"}, []uint{first.ID}},
		{"composed miss", PublishedFilter{Category: "tech", Keyword: "cooking"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			got, err := s.posts.ListPublished(tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			ids := postIDs(got)
			if len(ids) != len(tc.want) {
				t.Fatalf("expected %d posts, got %v", len(tc.want), ids)
			}
			for _, id := range tc.want {
				if !lo.Contains(ids, id) {
					t.Fatalf("expected post %d in %v", id, ids)
				}
			}
			if lo.Contains(ids, draft.ID) {
				t.Fatal("draft leaked into published listing")
			}
		})
	}
}

func TestPostCreateResolution(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	_, err := s.posts.Create(CreatePostOpts{
		Title:    "Orphan",
		Slug:     "orphan",
		Content:  datatypes.JSONMap{"body": "x"},
		AuthorID: 999,
	})
	if code := requestErrorCode(t, err); code != errs.CodeNotFound {
		t.Fatalf("expected %s for unknown author, got %s", errs.CodeNotFound, code)
	}

	_, err = s.posts.Create(CreatePostOpts{
		Title:      "Lost",
		Slug:       "lost",
		Content:    datatypes.JSONMap{"body": "x"},
		AuthorID:   author.ID,
		CategoryID: lo.ToPtr(uint(999)),
	})
	if code := requestErrorCode(t, err); code != errs.CodeBadRequest {
		t.Fatalf("expected %s for unknown category, got %s", errs.CodeBadRequest, code)
	}

	// Unknown tag ids are tolerated, not fatal.
	golang, err := s.tags.Create("Go", "go", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	post := seedPost(t, s, CreatePostOpts{
		Title:    "Tagged",
		Slug:     "tagged",
		Content:  datatypes.JSONMap{"body": "x"},
		AuthorID: author.ID,
		TagIDs:   []uint{golang.ID, 999},
	})
	got, err := s.posts.Get(post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != golang.ID {
		t.Fatalf("expected only the known tag attached, got %d", len(got.Tags))
	}
	if got.Author.ID != author.ID {
		t.Fatal("expected author preloaded")
	}
}

func TestPostUpdatePartialSemantics(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	tech, err := s.categories.Create("Tech", "tech", "", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	golang, err := s.tags.Create("Go", "go", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	rust, err := s.tags.Create("Rust", "rust", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	post := seedPost(t, s, CreatePostOpts{
		Title:      "Original",
		Slug:       "original",
		Content:    datatypes.JSONMap{"body": "v1"},
		Excerpt:    lo.ToPtr("first cut"),
		AuthorID:   author.ID,
		CategoryID: &tech.ID,
		TagIDs:     []uint{golang.ID},
	})

	// Omitted fields stay untouched.
	updated, err := s.posts.Update(post.ID, UpdatePostOpts{Title: lo.ToPtr("Renamed")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.Slug != "original" {
		t.Fatalf("partial update went wrong: %+v", updated)
	}
	if updated.CategoryID == nil || *updated.CategoryID != tech.ID {
		t.Fatal("expected category untouched")
	}
	if updated.Excerpt == nil || *updated.Excerpt != "first cut" {
		t.Fatal("expected excerpt untouched")
	}

	// Explicit null clears the category.
	updated, err = s.posts.Update(post.ID, UpdatePostOpts{CategoryID: Some[*uint](nil)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CategoryID != nil {
		t.Fatal("expected category cleared")
	}

	// A provided tag list replaces the set wholesale.
	updated, err = s.posts.Update(post.ID, UpdatePostOpts{TagIDs: Some([]uint{rust.ID})})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != rust.ID {
		t.Fatalf("expected tags replaced, got %+v", updated.Tags)
	}

	updated, err = s.posts.Update(post.ID, UpdatePostOpts{TagIDs: Some([]uint{})})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatal("expected empty list to clear all tags")
	}

	// Banner url rides the same provided-vs-absent rail.
	updated, err = s.posts.Update(post.ID, UpdatePostOpts{BannerURL: Some(lo.ToPtr("https://cdn.example.com/banner.png"))})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.BannerURL == nil || *updated.BannerURL != "https://cdn.example.com/banner.png" {
		t.Fatal("expected banner url set")
	}

	_, err = s.posts.Update(post.ID, UpdatePostOpts{CategoryID: Some(lo.ToPtr(uint(999)))})
	if code := requestErrorCode(t, err); code != errs.CodeBadRequest {
		t.Fatalf("expected %s for unknown category, got %s", errs.CodeBadRequest, code)
	}
}

func TestPostVerifyAccess(t *testing.T) {
	s := newTestServices(t)

	owner, err := s.users.Create("Owner", "owner@example.com", "secret123", models.RoleAuthor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := s.users.Create("Other", "other@example.com", "secret123", models.RoleAuthor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	admin, err := s.users.Create("Admin", "admin@example.com", "secret123", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	post := seedPost(t, s, CreatePostOpts{
		Title:    "Mine",
		Slug:     "mine",
		Content:  datatypes.JSONMap{"body": "x"},
		AuthorID: owner.ID,
	})

	cases := []struct {
		label   string
		user    models.User
		allowed bool
	}{
		{"owner", owner, true},
		{"other author", other, false},
		{"admin", admin, true},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			err := s.posts.VerifyAccess(post.ID, tc.user)
			if tc.allowed && err != nil {
				t.Fatalf("expected access, got %v", err)
			}
			if !tc.allowed {
				if code := requestErrorCode(t, err); code != errs.CodeForbidden {
					t.Fatalf("expected %s, got %s", errs.CodeForbidden, code)
				}
			}
		})
	}
}

func TestPurgeExpiredTrash(t *testing.T) {
	s := newTestServices(t)
	author := seedAuthor(t, s)

	old := seedPost(t, s, CreatePostOpts{
		Title:    "Old",
		Slug:     "old",
		Content:  datatypes.JSONMap{"body": "x"},
		AuthorID: author.ID,
	})
	fresh := seedPost(t, s, CreatePostOpts{
		Title:    "Fresh",
		Slug:     "fresh",
		Content:  datatypes.JSONMap{"body": "x"},
		AuthorID: author.ID,
	})

	for _, id := range []uint{old.ID, fresh.ID} {
		if _, err := s.posts.Trash(id); err != nil {
			t.Fatalf("trash: %v", err)
		}
	}

	// Backdate one of the trashed rows past the retention window.
	stale := time.Now().Add(-48 * time.Hour)
	if err := s.posts.db.Unscoped().Model(&models.Post{}).
		Where("id = ?", old.ID).
		Update("deleted_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	purged, err := s.posts.PurgeExpiredTrash(24 * time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged post, got %d", purged)
	}

	trashed, _ := s.posts.ListTrashed()
	if len(trashed) != 1 || trashed[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh trash entry to survive, got %v", postIDs(trashed))
	}
}
