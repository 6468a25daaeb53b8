package service

import (
	"sort"
	"strconv"
	"time"

	"taskboard/internal/model"
)

// TaskView is the display-ready shape handed to the rendering layer: ids as
// strings, dates as ISO strings or absent, priority as text.
type TaskView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
	DaysLeft    *int   `json:"days_left,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// CategoryView is the display shape of a category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewTaskView formats a stored task for display. catNames resolves category
// ids to names; now anchors the days-left computation.
func NewTaskView(task model.Task, catNames map[uint]string, now time.Time) TaskView {
	view := TaskView{
		ID:        strconv.FormatUint(uint64(task.ID), 10),
		Title:     task.Title,
		Priority:  PriorityText(task.Priority),
		Status:    task.Status,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}
	view.Description = task.Description

	if task.CategoryID != nil {
		view.CategoryID = strconv.FormatUint(uint64(*task.CategoryID), 10)
		view.Category = catNames[*task.CategoryID]
	}
	if task.DueDate != nil {
		view.DueDate = task.DueDate.Format(dueDateLayout)
		if !task.Completed() {
			days := daysUntil(*task.DueDate, now)
			view.DaysLeft = &days
		}
	}
	if task.CompletedAt != nil {
		view.CompletedAt = task.CompletedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// NewTaskViews formats a task sequence, preserving its order.
func NewTaskViews(tasks []model.Task, categories []model.Category, now time.Time) []TaskView {
	catNames := CategoryNames(categories)
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, NewTaskView(task, catNames, now))
	}
	return views
}

func NewCategoryViews(categories []model.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{
			ID:   strconv.FormatUint(uint64(category.ID), 10),
			Name: category.Name,
		})
	}
	return views
}

// CategoryNames builds an id-to-name lookup.
func CategoryNames(categories []model.Category) map[uint]string {
	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names
}

// Upcoming picks the active tasks due within the next week (today counts)
// and orders them soonest first.
func Upcoming(tasks []model.Task, categories []model.Category, now time.Time) []TaskView {
	catNames := CategoryNames(categories)
	var upcoming []TaskView
	for _, task := range tasks {
		if task.Completed() || task.DueDate == nil {
			continue
		}
		if days := daysUntil(*task.DueDate, now); days < 0 || days > 7 {
			continue
		}
		upcoming = append(upcoming, NewTaskView(task, catNames, now))
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return *upcoming[i].DaysLeft < *upcoming[j].DaysLeft
	})
	return upcoming
}

// daysUntil counts whole calendar days from now's date to due's date.
// Due today is 0, overdue is negative.
func daysUntil(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n) / (24 * time.Hour))
}
