package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrLimitExceeded = errors.New("the category limit is exceeded")

// LimitExceededError is returned by RecordExpense when the expense was
// recorded, but the sum of all expenses in its category is larger than
// the category limit.
type LimitExceededError struct {
	CategoryID   uuid.UUID
	CategoryName string
	Limit        decimal.Decimal
	Total        decimal.Decimal
	Exceeded     decimal.Decimal // Total - Limit
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s: the expenses in '%s' sum up to %s, the limit is %s", ErrLimitExceeded, e.CategoryName, e.Total, e.Limit)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// RecordExpense persists the expense and checks the limit of its category.
//
// When the limit is exceeded, the expense is still persisted and a
// *LimitExceededError is returned.
func RecordExpense(db *gorm.DB, expense *Expense) error {
	var exceeded *LimitExceededError

	err := db.Transaction(func(tx *gorm.DB) error {
		// The owner is locked before the category, in the same order as in DeleteCategory
		err := lockOwner(tx, expense.OwnerID)
		if err != nil {
			return err
		}

		var category ExpenseCategory
		if expense.CategoryID != nil {
			// Concurrent expenses for the same category must see each other in the sum
			err := tx.Clauses(forUpdate).Where("id = ? AND owner_id = ?", *expense.CategoryID, expense.OwnerID).Take(&category).Error
			if err != nil {
				return err
			}
		}

		err = tx.Create(expense).Error
		if err != nil {
			return err
		}

		if expense.CategoryID == nil || !category.Limit.Valid {
			return nil
		}

		total, err := ExpenseSum(tx, expense.OwnerID, category.ID)
		if err != nil {
			return err
		}

		if total.GreaterThan(category.Limit.Decimal) {
			exceeded = &LimitExceededError{
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Limit:        category.Limit.Decimal,
				Total:        total,
				Exceeded:     total.Sub(category.Limit.Decimal),
			}
		}

		return nil
	})
	if err != nil {
		return generalError(err)
	}

	if exceeded != nil {
		return exceeded
	}

	return nil
}
