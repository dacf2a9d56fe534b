package services

import (
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	db     *gorm.DB
	counts *marshaler.Marshaler
}

func NewCategoryService(db *gorm.DB, counts *marshaler.Marshaler) *CategoryService {
	return &CategoryService{db: db, counts: counts}
}

// List returns every category ordered by creation, with parents eagerly
// loaded and children attached from a single pass over the result set.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Parent").Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	byParent := make(map[uint][]models.Category, len(categories))
	for _, category := range categories {
		if category.ParentID != nil {
			byParent[*category.ParentID] = append(byParent[*category.ParentID], category)
		}
	}
	for idx := range categories {
		categories[idx].Children = byParent[categories[idx].ID]
	}

	return categories, nil
}

// Get returns nil without an error when the id does not resolve; callers
// decide whether that is a soft miss or a hard failure.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Parent").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.db.Where("parent_id = ?", category.ID).Find(&category.Children).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Parent").Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.db.Where("parent_id = ?", category.ID).Find(&category.Children).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) resolveParent(id uint) (*models.Category, error) {
	parent, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, errs.BadRequest("Parent category not found")
	}
	return parent, nil
}

func (s *CategoryService) Create(name, slug, description string, parentID *uint) (models.Category, error) {
	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
	}

	if parentID != nil {
		parent, err := s.resolveParent(*parentID)
		if err != nil {
			return category, err
		}
		category.ParentID = &parent.ID
		category.Parent = parent
	}

	if err := validate.Struct(category); err != nil {
		return category, errs.BadUserInput(err.Error())
	}

	err := s.db.Omit("Parent").Create(&category).Error
	return category, err
}

type UpdateCategoryOpts struct {
	Name        *string
	Slug        *string
	Description *string
	ParentID    Opt[*uint]
}

func (s *CategoryService) Update(id uint, opts UpdateCategoryOpts) (models.Category, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Category{}, err
	}
	if existing == nil {
		return models.Category{}, errs.NotFound("Category not found")
	}
	category := *existing

	// Parent reassignment is not validated against cycles; the source system
	// never did and the stored rows stay well-formed either way.
	if opts.ParentID.Valid {
		if opts.ParentID.Value == nil {
			category.ParentID = nil
			category.Parent = nil
		} else {
			parent, err := s.resolveParent(*opts.ParentID.Value)
			if err != nil {
				return category, err
			}
			category.ParentID = &parent.ID
			category.Parent = parent
		}
	}

	if opts.Name != nil {
		category.Name = *opts.Name
	}
	if opts.Slug != nil {
		category.Slug = *opts.Slug
	}
	if opts.Description != nil {
		category.Description = *opts.Description
	}

	if err := validate.Struct(category); err != nil {
		return category, errs.BadUserInput(err.Error())
	}

	err = s.db.Omit("Parent", "Children").Save(&category).Error
	return category, err
}

// Delete is unconditional: the schema sets children and referencing posts to
// a null parent/category on the way out.
func (s *CategoryService) Delete(id uint) (bool, error) {
	res := s.db.Delete(&models.Category{}, id)
	return res.RowsAffected == 1, res.Error
}

// CountPosts is a derived aggregate over non-trashed posts.
func (s *CategoryService) CountPosts(id uint) (int64, error) {
	return cachedCount(s.counts, fmt.Sprintf("post-count/category#%d", id), func() (int64, error) {
		var count int64
		err := s.db.Model(&models.Post{}).Where("category_id = ?", id).Count(&count).Error
		return count, err
	})
}
