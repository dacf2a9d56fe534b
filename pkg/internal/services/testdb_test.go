package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/pressroomhq/pressroom/pkg/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database per test. The shared-cache dsn
// keeps every pooled connection pointed at the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := database.RunMigration(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

type testServices struct {
	users      *UserService
	categories *CategoryService
	tags       *TagService
	posts      *PostService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	db := newTestDB(t)
	users := NewUserService(db)
	categories := NewCategoryService(db, nil)
	tags := NewTagService(db, nil)
	posts := NewPostService(db, nil, users, categories, tags)

	return testServices{
		users:      users,
		categories: categories,
		tags:       tags,
		posts:      posts,
	}
}
