package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// Sort modes accepted by Query. Anything else falls back to updated_at DESC
// (completed_at DESC for history queries).
const (
	SortPriority = "priority"
	SortDueDate  = "due_date"
)

// TaskFilter narrows task queries to one user's slice of the table.
// OnlyCompleted wins over IncludeCompleted; with both false the query
// returns active tasks only.
type TaskFilter struct {
	UserID           uint
	IncludeCompleted bool
	OnlyCompleted    bool
	CategoryID       *uint
	Search           string
}

// TaskRepository handles CRUD and filtered queries for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update merges the given columns into the task matching (id, user).
// Returns gorm.ErrRecordNotFound when no row matches, including rows
// owned by another user.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Complete marks the task done and stamps completed_at. Calling it again
// just moves the completion timestamp.
func (r *TaskRepository) Complete(ctx context.Context, userID, taskID uint, completedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(map[string]interface{}{
			"status":       model.StatusDone,
			"completed_at": completedAt,
			"updated_at":   completedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("complete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Query returns the tasks matching the filter, ordered by sortMode.
// Tasks without a due date always sort after dated ones.
func (r *TaskRepository) Query(ctx context.Context, filter TaskFilter, sortMode string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	switch {
	case filter.OnlyCompleted:
		q = q.Where("status = ?", model.StatusDone)
	case !filter.IncludeCompleted:
		q = q.Where("status <> ?", model.StatusDone)
	}

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch sortMode {
	case SortPriority:
		q = q.Order("priority ASC, due_date NULLS LAST")
	case SortDueDate:
		q = q.Order("due_date NULLS LAST, priority ASC")
	default:
		if filter.OnlyCompleted {
			q = q.Order("completed_at DESC")
		} else {
			q = q.Order("updated_at DESC")
		}
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}
