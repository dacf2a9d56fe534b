package models

type Category struct {
	BaseModel

	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" gorm:"uniqueIndex" validate:"required,lowercase"`

	ParentID *uint     `json:"parent_id"`
	Parent   *Category `json:"parent" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" validate:"-"`

	// Derived index built by the service in one pass, never stored.
	Children []Category `json:"children" gorm:"-" validate:"-"`
}
