package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money the owner received.
type Income struct {
	DefaultModel
	Owner       User            `json:"-"`
	OwnerID     uuid.UUID       `gorm:"index"`
	Category    IncomeCategory  `json:"-"`
	CategoryID  *uuid.UUID      `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Date        time.Time
}

func (i *Income) AfterFind(tx *gorm.DB) error {
	err := i.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}
	i.Date = i.Date.In(time.UTC)
	return nil
}

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	err := i.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if i.Amount.IsNegative() {
		return ErrAmountNegative
	}

	// Income descriptions are not limited in length
	i.Description, _ = trimDescription(i.Description, 0)
	i.Date = normalizeDate(i.Date)

	return checkCategory[IncomeCategory](tx, i.OwnerID, i.CategoryID)
}

func (i *Income) BeforeUpdate(tx *gorm.DB) error {
	update, ok := updateDest[Income](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Amount") && update.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("Description") {
		description, _ := trimDescription(update.Description, 0)
		tx.Statement.SetColumn("Description", description)
	}

	if tx.Statement.Changed("Date") {
		tx.Statement.SetColumn("Date", normalizeDate(update.Date))
	}

	if tx.Statement.Changed("CategoryID") {
		return checkCategory[IncomeCategory](tx, i.OwnerID, update.CategoryID)
	}

	return nil
}
