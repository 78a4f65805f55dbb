package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCategoryName is the name of the default category of each kind.
const DefaultCategoryName = "Uncategorized"

// CategoryKind distinguishes expense categories from income categories.
type CategoryKind string

const (
	KindExpense CategoryKind = "expense"
	KindIncome  CategoryKind = "income"
)

var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryNameReserved  = fmt.Errorf("the category name '%s' is reserved for the default category", DefaultCategoryName)
	ErrCategoryProtected     = errors.New("cannot delete/rename default category")
	ErrCategoryKindUnknown   = errors.New("the category kind is unknown")
	ErrLimitNegative         = errors.New("the limit must not be negative")
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

// ExpenseCategory groups expenses and optionally limits their sum.
type ExpenseCategory struct {
	DefaultModel
	Owner   User      `json:"-"`
	OwnerID uuid.UUID `gorm:"uniqueIndex:expense_category_owner_name"`
	Name    string    `gorm:"uniqueIndex:expense_category_owner_name"`
	Note    string
	Limit   decimal.NullDecimal `gorm:"column:spending_limit;type:DECIMAL(20,8)"` // Upper bound for the sum of all expenses in the category
	Default bool                `gorm:"column:is_default"`                        // The default category can neither be renamed nor deleted
}

// IncomeCategory groups incomes.
type IncomeCategory struct {
	DefaultModel
	Owner   User      `json:"-"`
	OwnerID uuid.UUID `gorm:"uniqueIndex:income_category_owner_name"`
	Name    string    `gorm:"uniqueIndex:income_category_owner_name"`
	Note    string
	Default bool `gorm:"column:is_default"`
}

// validateName checks a category name that is about to be saved.
func validateName(name string, isDefault bool) error {
	if name == "" {
		return ErrCategoryNameEmpty
	}

	if !isDefault && name == DefaultCategoryName {
		return ErrCategoryNameReserved
	}

	return nil
}

// updateDest returns the values passed to Updates for the model type.
func updateDest[T any](tx *gorm.DB) (T, bool) {
	switch d := tx.Statement.Dest.(type) {
	case T:
		return d, true
	case *T:
		return *d, true
	}

	var zero T
	return zero, false
}

func (c *ExpenseCategory) BeforeCreate(tx *gorm.DB) error {
	err := c.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.Limit.Valid && c.Limit.Decimal.IsNegative() {
		return ErrLimitNegative
	}

	return validateName(c.Name, c.Default)
}

// BeforeUpdate rejects all updates of the default category. For all other
// categories, it validates the updated values.
func (c *ExpenseCategory) BeforeUpdate(tx *gorm.DB) error {
	if c.Default {
		return ErrCategoryProtected
	}

	update, ok := updateDest[ExpenseCategory](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := strings.TrimSpace(update.Name)
		if err := validateName(name, false); err != nil {
			return err
		}
		tx.Statement.SetColumn("Name", name)
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(update.Note))
	}

	if tx.Statement.Changed("Limit") && update.Limit.Valid && update.Limit.Decimal.IsNegative() {
		return ErrLimitNegative
	}

	return nil
}

func (c *ExpenseCategory) BeforeDelete(_ *gorm.DB) error {
	if c.Default {
		return ErrCategoryProtected
	}
	return nil
}

func (c *IncomeCategory) BeforeCreate(tx *gorm.DB) error {
	err := c.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return validateName(c.Name, c.Default)
}

// BeforeUpdate rejects all updates of the default category. For all other
// categories, it validates the updated values.
func (c *IncomeCategory) BeforeUpdate(tx *gorm.DB) error {
	if c.Default {
		return ErrCategoryProtected
	}

	update, ok := updateDest[IncomeCategory](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := strings.TrimSpace(update.Name)
		if err := validateName(name, false); err != nil {
			return err
		}
		tx.Statement.SetColumn("Name", name)
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(update.Note))
	}

	return nil
}

func (c *IncomeCategory) BeforeDelete(_ *gorm.DB) error {
	if c.Default {
		return ErrCategoryProtected
	}
	return nil
}

// categoryView is the part of a category that the kind independent
// functions need.
type categoryView struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Default bool
}

func (c ExpenseCategory) view() categoryView {
	return categoryView{ID: c.ID, OwnerID: c.OwnerID, Name: c.Name, Default: c.Default}
}

func (c IncomeCategory) view() categoryView {
	return categoryView{ID: c.ID, OwnerID: c.OwnerID, Name: c.Name, Default: c.Default}
}

// category is implemented by pointers to both category models.
type category[C any] interface {
	*C
	view() categoryView
}

// record is implemented by both record models.
type record interface {
	Expense | Income
}

// DefaultExpenseCategory returns the owner's default expense category.
// It is created if it does not exist.
func DefaultExpenseCategory(db *gorm.DB, ownerID uuid.UUID) (ExpenseCategory, error) {
	return defaultCategory(db, ExpenseCategory{OwnerID: ownerID, Name: DefaultCategoryName, Default: true})
}

// DefaultIncomeCategory returns the owner's default income category.
// It is created if it does not exist.
func DefaultIncomeCategory(db *gorm.DB, ownerID uuid.UUID) (IncomeCategory, error) {
	return defaultCategory(db, IncomeCategory{OwnerID: ownerID, Name: DefaultCategoryName, Default: true})
}

// defaultCategory finds the default category for the owner of template. If there is
// none, template is created.
func defaultCategory[C any, P category[C]](db *gorm.DB, template C) (C, error) {
	ownerID := P(&template).view().OwnerID

	var c C
	err := db.Where("owner_id = ? AND is_default = ?", ownerID, true).Take(&c).Error
	if err == nil {
		return c, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return c, err
	}

	err = db.Create(&template).Error
	if err != nil {
		return c, err
	}

	return template, nil
}

// DeleteCategory deletes a category of the owner.
//
// All expenses or incomes of the category are moved to the default category
// of the same kind first. The default category is created if it does not exist.
// Everything happens in one transaction.
func DeleteCategory(db *gorm.DB, ownerID, id uuid.UUID, kind CategoryKind) error {
	switch kind {
	case KindExpense:
		return deleteCategory[ExpenseCategory, *ExpenseCategory, Expense](db, ExpenseCategory{OwnerID: ownerID, Name: DefaultCategoryName, Default: true}, id)
	case KindIncome:
		return deleteCategory[IncomeCategory, *IncomeCategory, Income](db, IncomeCategory{OwnerID: ownerID, Name: DefaultCategoryName, Default: true}, id)
	}

	return fmt.Errorf("%w: %s", ErrCategoryKindUnknown, kind)
}

func deleteCategory[C any, P category[C], R record](db *gorm.DB, fallback C, id uuid.UUID) error {
	ownerID := P(&fallback).view().OwnerID

	err := db.Transaction(func(tx *gorm.DB) error {
		// Concurrent deletions for the same owner must not both create a default category
		err := lockOwner(tx, ownerID)
		if err != nil {
			return err
		}

		var c C
		err = tx.Clauses(forUpdate).Where("id = ? AND owner_id = ?", id, ownerID).Take(&c).Error
		if err != nil {
			return err
		}

		if P(&c).view().Default {
			return ErrCategoryProtected
		}

		d, err := defaultCategory[C, P](tx, fallback)
		if err != nil {
			return err
		}

		err = tx.Session(&gorm.Session{SkipHooks: true}).
			Model(new(R)).
			Where("owner_id = ? AND category_id = ?", ownerID, id).
			Update("category_id", P(&d).view().ID).
			Error
		if err != nil {
			return err
		}

		return tx.Delete(&c).Error
	})

	return generalError(err)
}
