package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CategoryAll is the filter sentinel meaning "no category constraint".
const CategoryAll = "all"

// TaskInput carries raw form/JSON values for creating a task.
type TaskInput struct {
	Title       string
	Description string
	CategoryID  string // raw value; empty or unknown means uncategorized
	Priority    string
	Status      string
	DueDate     string // YYYY-MM-DD; empty means no due date
}

// TaskUpdate carries a partial edit; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	CategoryID  *string
	Priority    *string
	Status      *string
	DueDate     *string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationErr("title", "required")
	}

	dueDate, err := ParseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = "todo"
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  s.resolveCategoryID(ctx, userID, input.CategoryID),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    ParsePriority(input.Priority),
		Status:      status,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Insert(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return task, err
}

// Update merges the provided fields into the task. An empty update is
// rejected; a blank title is skipped rather than erasing the old one.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, update TaskUpdate) error {
	fields := map[string]interface{}{}

	if update.Title != nil {
		if title := strings.TrimSpace(*update.Title); title != "" {
			fields["title"] = title
		}
	}
	if update.Description != nil {
		fields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Status != nil {
		fields["status"] = strings.ToLower(strings.TrimSpace(*update.Status))
	}
	if update.Priority != nil {
		fields["priority"] = ParsePriority(*update.Priority)
	}
	if update.CategoryID != nil {
		if id := s.resolveCategoryID(ctx, userID, *update.CategoryID); id != nil {
			fields["category_id"] = *id
		}
	}
	if update.DueDate != nil && *update.DueDate != "" {
		dueDate, err := ParseDueDate(*update.DueDate)
		if err != nil {
			return err
		}
		fields["due_date"] = dueDate
	}

	if len(fields) == 0 {
		return validationErr("fields", "no fields to update")
	}

	err := s.taskRepo.Update(ctx, userID, taskID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *TaskService) Complete(ctx context.Context, userID, taskID uint, completedAt time.Time) error {
	err := s.taskRepo.Complete(ctx, userID, taskID, completedAt)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	err := s.taskRepo.Delete(ctx, userID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListDashboard returns the user's active tasks, optionally narrowed by
// category and search text, ordered per sortMode.
func (s *TaskService) ListDashboard(ctx context.Context, userID uint, categoryParam, sortMode, search string) ([]model.Task, error) {
	filter := repository.TaskFilter{
		UserID: userID,
		Search: search,
	}
	filter.CategoryID = s.resolveCategoryFilter(ctx, userID, categoryParam)
	return s.taskRepo.Query(ctx, filter, sortMode)
}

// ListHistory returns the user's completed tasks, most recently finished first.
func (s *TaskService) ListHistory(ctx context.Context, userID uint, categoryParam, search string) ([]model.Task, error) {
	filter := repository.TaskFilter{
		UserID:        userID,
		OnlyCompleted: true,
		Search:        search,
	}
	filter.CategoryID = s.resolveCategoryFilter(ctx, userID, categoryParam)
	return s.taskRepo.Query(ctx, filter, "")
}

// ListUpcoming returns active tasks in due-date order for digest building.
func (s *TaskService) ListUpcoming(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.Query(ctx, repository.TaskFilter{UserID: userID}, repository.SortDueDate)
}

// resolveCategoryFilter turns a request parameter into a category id
// constraint. The value may be the "all" sentinel, a numeric id, or a
// category name. An unmatched name leaves the filter unconstrained: the
// value comes from a dropdown the user can race against a rename, so the
// stale constraint is dropped instead of failing the whole query.
func (s *TaskService) resolveCategoryFilter(ctx context.Context, userID uint, param string) *uint {
	param = strings.TrimSpace(param)
	if param == "" || strings.EqualFold(param, CategoryAll) {
		return nil
	}
	if id, err := strconv.ParseUint(param, 10, 32); err == nil {
		cid := uint(id)
		return &cid
	}
	category, err := s.categoryRepo.FindByName(ctx, userID, param)
	if err != nil {
		return nil
	}
	return &category.ID
}

// resolveCategoryID validates a raw category id against the user's own
// categories; anything unknown means uncategorized.
func (s *TaskService) resolveCategoryID(ctx context.Context, userID uint, raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	category, err := s.categoryRepo.FindByID(ctx, userID, uint(id))
	if err != nil {
		return nil
	}
	return &category.ID
}
