package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"taskboard/internal/mail"
	"taskboard/internal/repository"
)

// ReminderService builds upcoming-deadline digests and mails them out.
type ReminderService struct {
	taskSvc      *TaskService
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	mailer       mail.Mailer
}

func NewReminderService(taskSvc *TaskService, categoryRepo *repository.CategoryRepository, userRepo *repository.UserRepository, mailer mail.Mailer) *ReminderService {
	return &ReminderService{
		taskSvc:      taskSvc,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

// Digest renders a plain-text summary of the user's tasks due within the
// next week. The second return is false when there is nothing to report.
func (s *ReminderService) Digest(ctx context.Context, userID uint, now time.Time) (string, bool, error) {
	tasks, err := s.taskSvc.ListUpcoming(ctx, userID)
	if err != nil {
		return "", false, err
	}
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", false, err
	}

	upcoming := Upcoming(tasks, categories, now)
	if len(upcoming) == 0 {
		return "", false, nil
	}

	var builder strings.Builder
	builder.WriteString("Tasks due within the next 7 days:\n\n")
	for _, view := range upcoming {
		line := fmt.Sprintf("- %s (%s)", view.Title, view.Priority)
		if view.Category != "" {
			line += " [" + view.Category + "]"
		}
		switch days := *view.DaysLeft; days {
		case 0:
			line += " — due today"
		case 1:
			line += " — due tomorrow"
		default:
			line += fmt.Sprintf(" — due in %d days (%s)", days, view.DueDate)
		}
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	return builder.String(), true, nil
}

// SendDigests mails every user with upcoming deadlines. Per-user failures
// are logged and skipped so one bad address cannot stall the run.
func (s *ReminderService) SendDigests(ctx context.Context, now time.Time) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, user := range users {
		body, ok, err := s.Digest(ctx, user.ID, now)
		if err != nil {
			log.Printf("build digest for user %d: %v", user.ID, err)
			continue
		}
		if !ok {
			continue
		}
		if err := s.mailer.Send(user.Email, "Your upcoming deadlines", body); err != nil {
			log.Printf("send digest to user %d: %v", user.ID, err)
		}
	}
	return nil
}
