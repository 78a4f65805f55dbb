package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxExpenseDescriptionLength = 100

var (
	ErrAmountNegative     = errors.New("the amount must not be negative")
	ErrDescriptionTooLong = errors.New("the description must not be longer than 100 characters")
)

// normalizeDate returns the date in UTC. The zero date is replaced by the current time.
func normalizeDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now().In(time.UTC)
	}

	return date.In(time.UTC)
}

// trimDescription trims whitespace from the description and verifies
// its length if maxLength is larger than zero.
func trimDescription(description string, maxLength int) (string, error) {
	description = strings.TrimSpace(description)
	if maxLength > 0 && len([]rune(description)) > maxLength {
		return "", ErrDescriptionTooLong
	}

	return description, nil
}

// checkCategory verifies that the category exists and belongs to the owner.
// C is the category model the record references.
func checkCategory[C any](tx *gorm.DB, ownerID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	return tx.Where("id = ? AND owner_id = ?", *categoryID, ownerID).Take(new(C)).Error
}
