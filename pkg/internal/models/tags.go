package models

type Tag struct {
	BaseModel

	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" gorm:"uniqueIndex" validate:"required,lowercase"`

	Posts []Post `json:"posts" gorm:"many2many:post_tags" validate:"-"`
}
