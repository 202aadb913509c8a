package service

import (
	"errors"
	"strings"
	"time"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUserNotFound     = errors.New("unknown userId")
)

// ValidationError reports which input field was rejected.
// It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// dateLayouts are tried in order; inputs without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006",
	"January 2, 2006",
}

// ParseDate accepts the ISO-8601 forms clients send plus a few human-readable ones.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return storedTime(t), true
		}
	}
	return time.Time{}, false
}

// storedTime drops what BSON DateTime can't hold, so a date reads back exactly as it was written.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
