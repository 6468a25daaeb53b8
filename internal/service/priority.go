package service

import (
	"strings"
	"time"

	"taskboard/internal/model"
)

var priorityCodes = map[string]int{
	"high":   model.PriorityHigh,
	"medium": model.PriorityMedium,
	"low":    model.PriorityLow,
}

var priorityNames = map[int]string{
	model.PriorityHigh:   "High",
	model.PriorityMedium: "Medium",
	model.PriorityLow:    "Low",
}

// ParsePriority maps user input to a stored priority code, case-insensitively.
// Unrecognized input defaults to medium.
func ParsePriority(raw string) int {
	if code, ok := priorityCodes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return code
	}
	return model.PriorityMedium
}

// PriorityText renders a stored priority code for display.
func PriorityText(code int) string {
	if name, ok := priorityNames[code]; ok {
		return name
	}
	return "Medium"
}

const dueDateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD due date. Empty input means no due date;
// anything else that fails to parse is rejected.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, validationErr("due_date", "expected YYYY-MM-DD")
	}
	return &due, nil
}
