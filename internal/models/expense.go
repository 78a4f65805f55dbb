package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money the owner spent.
type Expense struct {
	DefaultModel
	Owner       User            `json:"-"`
	OwnerID     uuid.UUID       `gorm:"index"`
	Category    ExpenseCategory `json:"-"`
	CategoryID  *uuid.UUID      `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Date        time.Time
}

// AfterFind updates the timestamps and the date to use UTC.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	err := e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}
	e.Date = e.Date.In(time.UTC)
	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	err := e.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	description, err := trimDescription(e.Description, maxExpenseDescriptionLength)
	if err != nil {
		return err
	}
	e.Description = description
	e.Date = normalizeDate(e.Date)

	return checkCategory[ExpenseCategory](tx, e.OwnerID, e.CategoryID)
}

// BeforeUpdate validates the updated fields. The receiver holds the
// values currently stored.
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	update, ok := updateDest[Expense](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Amount") && update.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("Description") {
		description, err := trimDescription(update.Description, maxExpenseDescriptionLength)
		if err != nil {
			return err
		}
		tx.Statement.SetColumn("Description", description)
	}

	if tx.Statement.Changed("Date") {
		tx.Statement.SetColumn("Date", normalizeDate(update.Date))
	}

	if tx.Statement.Changed("CategoryID") {
		return checkCategory[ExpenseCategory](tx, e.OwnerID, update.CategoryID)
	}

	return nil
}
