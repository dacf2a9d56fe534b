package services

import (
	"errors"

	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/pressroomhq/pressroom/pkg/internal/security"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) Get(id uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, errs.NotFound("User not found")
		}
		return user, err
	}
	return user, nil
}

func (s *UserService) emailTaken(email string) (bool, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *UserService) Create(name, email, password string, role models.UserRole) (models.User, error) {
	var user models.User

	taken, err := s.emailTaken(email)
	if err != nil {
		return user, err
	}
	if taken {
		return user, errs.BadUserInput("Email already exists")
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return user, err
	}

	user = models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}

	if err := validate.Struct(user); err != nil {
		return user, errs.BadUserInput(err.Error())
	}

	err = s.db.Create(&user).Error
	return user, err
}

type UpdateUserOpts struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *models.UserRole
	AvatarURL *string
}

func (s *UserService) Update(id uint, opts UpdateUserOpts) (models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return user, err
	}

	if opts.Name != nil {
		user.Name = *opts.Name
	}

	// Uniqueness is only re-checked when the email actually changes.
	if opts.Email != nil && *opts.Email != user.Email {
		taken, err := s.emailTaken(*opts.Email)
		if err != nil {
			return user, err
		}
		if taken {
			return user, errs.BadUserInput("Email already exists")
		}
		user.Email = *opts.Email
	}

	if opts.Password != nil {
		hashed, err := security.HashPassword(*opts.Password)
		if err != nil {
			return user, err
		}
		user.Password = hashed
	}

	if opts.Role != nil {
		user.Role = *opts.Role
	}

	if opts.AvatarURL != nil {
		user.AvatarURL = opts.AvatarURL
	}

	if err := validate.Struct(user); err != nil {
		return user, errs.BadUserInput(err.Error())
	}

	err = s.db.Save(&user).Error
	return user, err
}

func (s *UserService) Delete(id uint) (bool, error) {
	user, err := s.Get(id)
	if err != nil {
		return false, err
	}

	res := s.db.Delete(&user)
	return res.RowsAffected == 1, res.Error
}

// VerifyCredential reports the same error for an unknown email and a wrong
// password so the response leaks nothing about which one failed.
func (s *UserService) VerifyCredential(email, password string) (models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return user, errs.Unauthenticated("Invalid email or password")
	}

	if !security.VerifyPassword(user.Password, password) {
		return user, errs.Unauthenticated("Invalid email or password")
	}

	return user, nil
}
