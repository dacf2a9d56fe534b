package services

import (
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"gorm.io/gorm"
)

type TagService struct {
	db     *gorm.DB
	counts *marshaler.Marshaler
}

func NewTagService(db *gorm.DB, counts *marshaler.Marshaler) *TagService {
	return &TagService{db: db, counts: counts}
}

func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("created_at DESC").Find(&tags).Error
	return tags, err
}

func (s *TagService) Get(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByIDs returns only the tags that exist; unknown ids are dropped without
// an error. The post service depends on that leniency.
func (s *TagService) GetByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	var tags []models.Tag
	err := s.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (s *TagService) Create(name, slug, description string) (models.Tag, error) {
	tag := models.Tag{
		Name:        name,
		Slug:        slug,
		Description: description,
	}

	if err := validate.Struct(tag); err != nil {
		return tag, errs.BadUserInput(err.Error())
	}

	err := s.db.Create(&tag).Error
	return tag, err
}

type UpdateTagOpts struct {
	Name        *string
	Slug        *string
	Description *string
}

func (s *TagService) Update(id uint, opts UpdateTagOpts) (models.Tag, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Tag{}, err
	}
	if existing == nil {
		return models.Tag{}, errs.NotFound("Tag not found")
	}
	tag := *existing

	if opts.Name != nil {
		tag.Name = *opts.Name
	}
	if opts.Slug != nil {
		tag.Slug = *opts.Slug
	}
	if opts.Description != nil {
		tag.Description = *opts.Description
	}

	if err := validate.Struct(tag); err != nil {
		return tag, errs.BadUserInput(err.Error())
	}

	err = s.db.Save(&tag).Error
	return tag, err
}

// Delete is unconditional; association rows go with the tag.
func (s *TagService) Delete(id uint) (bool, error) {
	if err := s.db.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
		return false, err
	}

	res := s.db.Delete(&models.Tag{}, id)
	return res.RowsAffected == 1, res.Error
}

// CountPosts is a derived aggregate restricted to non-trashed posts.
func (s *TagService) CountPosts(id uint) (int64, error) {
	return cachedCount(s.counts, fmt.Sprintf("post-count/tag#%d", id), func() (int64, error) {
		var count int64
		err := s.db.Model(&models.Post{}).
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", id).
			Count(&count).Error
		return count, err
	})
}
