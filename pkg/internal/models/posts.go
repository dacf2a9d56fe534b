package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post lives on two independent axes: published_at decides draft versus
// published, deleted_at decides active versus trashed. A post can be trashed
// while still published; restoring it brings the pre-trash visibility back.
type Post struct {
	BaseModel

	Title   string            `json:"title" validate:"required"`
	Slug    string            `json:"slug" gorm:"uniqueIndex" validate:"required,lowercase"`
	Excerpt *string           `json:"excerpt"`
	Content datatypes.JSONMap `json:"content"`

	BannerURL *string `json:"banner_url"`

	AuthorID uint `json:"author_id"`
	Author   User `json:"author" gorm:"constraint:OnDelete:RESTRICT" validate:"-"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL" validate:"-"`

	Tags []Tag `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" validate:"-"`

	PublishedAt *time.Time     `json:"published_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
