package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// newTestDB opens an isolated in-memory database. The pool is pinned to a
// single connection so the memory database survives between queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type testEnv struct {
	db         *gorm.DB
	tasks      *TaskService
	categories *CategoryService
	taskRepo   *repository.TaskRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return &testEnv{
		db:         db,
		tasks:      NewTaskService(taskRepo, categoryRepo),
		categories: NewCategoryService(categoryRepo),
		taskRepo:   taskRepo,
	}
}

// newUser inserts a bare user row and returns its id.
func newUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := model.User{Email: email, PasswordHash: "x"}
	if err := db.WithContext(context.Background()).Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}
