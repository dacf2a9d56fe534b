package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/pressroomhq/pressroom/pkg/internal/cache"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func FilterPostPublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("posts.published_at IS NOT NULL")
}

func FilterPostDraft(tx *gorm.DB) *gorm.DB {
	return tx.Where("posts.published_at IS NULL")
}

func FilterPostWithCategory(tx *gorm.DB, slug string) *gorm.DB {
	return tx.Joins("JOIN categories ON categories.id = posts.category_id").
		Where("categories.slug = ?", slug)
}

func FilterPostWithTag(tx *gorm.DB, slug string) *gorm.DB {
	return tx.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.slug = ?", slug).
		Group("posts.id")
}

// FilterPostWithKeyword matches the probe case-insensitively against title
// or excerpt. LOWER/LIKE instead of ILIKE keeps the predicate portable
// across postgres and the sqlite test harness.
func FilterPostWithKeyword(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.excerpt) LIKE ?)", probe, probe)
}

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Category").
		Preload("Tags")
}

type PostService struct {
	db     *gorm.DB
	counts *marshaler.Marshaler

	users      *UserService
	categories *CategoryService
	tags       *TagService
}

func NewPostService(db *gorm.DB, counts *marshaler.Marshaler, users *UserService, categories *CategoryService, tags *TagService) *PostService {
	return &PostService{
		db:         db,
		counts:     counts,
		users:      users,
		categories: categories,
		tags:       tags,
	}
}

// ListAll returns every non-trashed post, drafts included, newest first.
func (s *PostService) ListAll() ([]models.Post, error) {
	var posts []models.Post
	err := PreloadPostGeneral(s.db).Order("posts.created_at DESC").Find(&posts).Error
	return posts, err
}

type PublishedFilter struct {
	Category string
	Tag      string
	Keyword  string
}

// ListPublished narrows the published, non-trashed set by the optional
// category slug, tag slug and keyword. The filters compose conjunctively and
// each one is independent of the others.
func (s *PostService) ListPublished(filter PublishedFilter) ([]models.Post, error) {
	tx := FilterPostPublished(s.db.Model(&models.Post{}))

	if len(filter.Category) > 0 {
		tx = FilterPostWithCategory(tx, filter.Category)
	}
	if len(filter.Tag) > 0 {
		tx = FilterPostWithTag(tx, filter.Tag)
	}
	if len(filter.Keyword) > 0 {
		tx = FilterPostWithKeyword(tx, filter.Keyword)
	}

	var posts []models.Post
	err := PreloadPostGeneral(tx).Order("posts.published_at DESC").Find(&posts).Error
	return posts, err
}

func (s *PostService) ListDrafts() ([]models.Post, error) {
	var posts []models.Post
	err := PreloadPostGeneral(FilterPostDraft(s.db)).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListTrashed is the one listing that looks inside the trash, newest
// trashed first.
func (s *PostService) ListTrashed() ([]models.Post, error) {
	var posts []models.Post
	err := PreloadPostGeneral(s.db.Unscoped()).
		Where("posts.deleted_at IS NOT NULL").
		Order("posts.deleted_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostService) Get(id uint) (models.Post, error) {
	var post models.Post
	if err := PreloadPostGeneral(s.db).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, errs.NotFound("Post not found")
		}
		return post, err
	}
	return post, nil
}

// GetBySlug is a soft lookup: a miss is nil, not an error.
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := PreloadPostGeneral(s.db).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

type CreatePostOpts struct {
	Title      string
	Slug       string
	Content    datatypes.JSONMap
	Excerpt    *string
	AuthorID   uint
	CategoryID *uint
	TagIDs     []uint
}

// Create persists a new draft. The author must resolve; a provided category
// must resolve; unknown tag ids are silently dropped.
func (s *PostService) Create(opts CreatePostOpts) (models.Post, error) {
	var post models.Post

	author, err := s.users.Get(opts.AuthorID)
	if err != nil {
		return post, err
	}

	var category *models.Category
	if opts.CategoryID != nil {
		category, err = s.categories.Get(*opts.CategoryID)
		if err != nil {
			return post, err
		}
		if category == nil {
			return post, errs.BadRequest("Category not found")
		}
	}

	tags, err := s.tags.GetByIDs(opts.TagIDs)
	if err != nil {
		return post, err
	}

	post = models.Post{
		Title:    opts.Title,
		Slug:     opts.Slug,
		Content:  opts.Content,
		Excerpt:  opts.Excerpt,
		AuthorID: author.ID,
		Author:   author,
		Tags:     tags,
	}
	if category != nil {
		post.CategoryID = &category.ID
		post.Category = category
	}

	if err := validate.Struct(post); err != nil {
		return post, errs.BadUserInput(err.Error())
	}

	log.Debug().Str("slug", post.Slug).Uint("author", post.AuthorID).Msg("Creating a new draft post...")

	if err := s.db.Omit("Author", "Category", "Tags.*").Create(&post).Error; err != nil {
		return post, err
	}

	s.invalidateCounts()
	return post, nil
}

type UpdatePostOpts struct {
	Title      *string
	Slug       *string
	Content    datatypes.JSONMap
	Excerpt    *string
	BannerURL  Opt[*string]
	CategoryID Opt[*uint]
	TagIDs     Opt[[]uint]
}

// Update applies provided-vs-absent partial semantics: omitted fields stay
// untouched, an explicit null category clears it, and a provided tag list
// (empty included) replaces the whole set.
func (s *PostService) Update(id uint, opts UpdatePostOpts) (models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return post, err
	}

	if opts.CategoryID.Valid {
		if opts.CategoryID.Value == nil {
			post.CategoryID = nil
			post.Category = nil
		} else {
			category, err := s.categories.Get(*opts.CategoryID.Value)
			if err != nil {
				return post, err
			}
			if category == nil {
				return post, errs.BadRequest("Category not found")
			}
			post.CategoryID = &category.ID
			post.Category = category
		}
	}

	if opts.Title != nil {
		post.Title = *opts.Title
	}
	if opts.Slug != nil {
		post.Slug = *opts.Slug
	}
	if opts.Content != nil {
		post.Content = opts.Content
	}
	if opts.Excerpt != nil {
		post.Excerpt = opts.Excerpt
	}
	if opts.BannerURL.Valid {
		post.BannerURL = opts.BannerURL.Value
	}

	if err := validate.Struct(post); err != nil {
		return post, errs.BadUserInput(err.Error())
	}

	if err := s.db.Omit(clause.Associations).Save(&post).Error; err != nil {
		return post, err
	}

	if opts.TagIDs.Valid {
		tags, err := s.tags.GetByIDs(opts.TagIDs.Value)
		if err != nil {
			return post, err
		}
		if err := s.db.Model(&post).Association("Tags").Replace(&tags); err != nil {
			return post, err
		}
		post.Tags = tags
	}

	s.invalidateCounts()
	return post, nil
}

func (s *PostService) Publish(id uint) (models.Post, error) {
	return s.setPublishedAt(id, lo.ToPtr(time.Now()))
}

func (s *PostService) Unpublish(id uint) (models.Post, error) {
	return s.setPublishedAt(id, nil)
}

func (s *PostService) setPublishedAt(id uint, at *time.Time) (models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return post, err
	}

	post.PublishedAt = at
	if err := s.db.Omit(clause.Associations).Save(&post).Error; err != nil {
		return post, err
	}

	return post, nil
}

// Trash soft-deletes the post; the published_at axis is left alone so a
// restore brings the pre-trash visibility back.
func (s *PostService) Trash(id uint) (bool, error) {
	res := s.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	s.invalidateCounts()
	return res.RowsAffected == 1, nil
}

func (s *PostService) Restore(id uint) (bool, error) {
	res := s.db.Unscoped().Model(&models.Post{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return false, res.Error
	}

	s.invalidateCounts()
	return res.RowsAffected == 1, nil
}

// DeletePermanently removes the row outright, bypassing the trash.
func (s *PostService) DeletePermanently(id uint) (bool, error) {
	if err := s.db.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
		return false, err
	}

	res := s.db.Unscoped().Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	s.invalidateCounts()
	return res.RowsAffected == 1, nil
}

// VerifyAccess lets admins through unconditionally and authors through only
// for their own posts.
func (s *PostService) VerifyAccess(id uint, user models.User) error {
	switch user.Role {
	case models.RoleSuperAdmin, models.RoleAdmin:
		return nil
	case models.RoleAuthor:
		var count int64
		if err := s.db.Model(&models.Post{}).
			Where("id = ? AND author_id = ?", id, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.Forbidden("Forbidden")
		}
		return nil
	}

	return errs.Forbidden("Forbidden")
}

func (s *PostService) invalidateCounts() {
	cache.InvalidatePostCounts(context.Background(), s.counts)
}
