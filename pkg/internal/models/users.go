package models

type UserRole = string

const (
	RoleSuperAdmin = UserRole("SUPER_ADMIN")
	RoleAdmin      = UserRole("ADMIN")
	RoleAuthor     = UserRole("AUTHOR")
)

type User struct {
	BaseModel

	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Password  string   `json:"-"`
	Role      UserRole `json:"role" gorm:"default:AUTHOR" validate:"required,oneof=SUPER_ADMIN ADMIN AUTHOR"`
	AvatarURL *string  `json:"avatar_url"`

	Posts []Post `json:"posts" gorm:"foreignKey:AuthorID" validate:"-"`
}
