package database

import (
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.User{},
	&models.Category{},
	&models.Tag{},
	&models.Post{},
}

func RunMigration(source *gorm.DB) error {
	return source.AutoMigrate(AutoMaintainRange...)
}
