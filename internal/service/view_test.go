package service

import (
	"testing"
	"time"

	"taskboard/internal/model"
)

func dayOffset(now time.Time, days int) *time.Time {
	d := now.AddDate(0, 0, days)
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func TestUpcomingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: 1, Title: "due in 8 days", DueDate: dayOffset(now, 8)},
		{ID: 2, Title: "due today", DueDate: dayOffset(now, 0)},
		{ID: 3, Title: "overdue", DueDate: dayOffset(now, -1)},
		{ID: 4, Title: "due in a week", DueDate: dayOffset(now, 7)},
		{ID: 5, Title: "no due date"},
		{ID: 6, Title: "done tomorrow", Status: model.StatusDone, DueDate: dayOffset(now, 1)},
		{ID: 7, Title: "due in 3 days", DueDate: dayOffset(now, 3)},
	}

	upcoming := Upcoming(tasks, nil, now)

	wantOrder := []string{"due today", "due in 3 days", "due in a week"}
	if len(upcoming) != len(wantOrder) {
		t.Fatalf("got %d upcoming tasks, want %d", len(upcoming), len(wantOrder))
	}
	for i, want := range wantOrder {
		if upcoming[i].Title != want {
			t.Errorf("upcoming[%d] = %q, want %q", i, upcoming[i].Title, want)
		}
	}

	wantDays := []int{0, 3, 7}
	for i, want := range wantDays {
		if upcoming[i].DaysLeft == nil || *upcoming[i].DaysLeft != want {
			t.Errorf("upcoming[%d].DaysLeft = %v, want %d", i, upcoming[i].DaysLeft, want)
		}
	}
}

func TestNewTaskView(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	catID := uint(4)
	completedAt := now.Add(-time.Hour)

	task := model.Task{
		ID:         42,
		CategoryID: &catID,
		Title:      "Buy milk",
		Priority:   model.PriorityHigh,
		Status:     "todo",
		DueDate:    dayOffset(now, 2),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	view := NewTaskView(task, map[uint]string{catID: "Shopping"}, now)
	if view.ID != "42" {
		t.Errorf("ID = %q, want \"42\"", view.ID)
	}
	if view.Priority != "High" {
		t.Errorf("Priority = %q, want High", view.Priority)
	}
	if view.Category != "Shopping" {
		t.Errorf("Category = %q, want Shopping", view.Category)
	}
	if view.DueDate != "2026-03-12" {
		t.Errorf("DueDate = %q, want 2026-03-12", view.DueDate)
	}
	if view.DaysLeft == nil || *view.DaysLeft != 2 {
		t.Errorf("DaysLeft = %v, want 2", view.DaysLeft)
	}

	task.Status = model.StatusDone
	task.CompletedAt = &completedAt
	view = NewTaskView(task, nil, now)
	if view.DaysLeft != nil {
		t.Errorf("completed task should carry no DaysLeft, got %d", *view.DaysLeft)
	}
	if view.CompletedAt == "" {
		t.Error("completed task should carry CompletedAt")
	}
}

func TestNewTaskViewUnknownPriority(t *testing.T) {
	view := NewTaskView(model.Task{ID: 1, Priority: 7}, nil, time.Now())
	if view.Priority != "Medium" {
		t.Errorf("Priority = %q, want Medium for out-of-range code", view.Priority)
	}
	if view.DueDate != "" {
		t.Errorf("DueDate = %q, want absent", view.DueDate)
	}
}
