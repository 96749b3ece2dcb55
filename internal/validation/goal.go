package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxUserIDLength      = 100
)

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return errors.New("title is too long (max 200 characters)")
	}

	return nil
}

// ValidateUserID validates the owning user reference of a goal
func ValidateUserID(userID string) error {
	trimmed := strings.TrimSpace(userID)

	if trimmed == "" {
		return errors.New("userId is required")
	}

	if len(trimmed) > maxUserIDLength {
		return errors.New("userId is too long (max 100 characters)")
	}

	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return errors.New("description is too long (max 2000 characters)")
	}
	return nil
}
