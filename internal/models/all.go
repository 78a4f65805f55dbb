package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// ExpenseSum returns the sum of all expenses of the owner in the category.
func ExpenseSum(db *gorm.DB, ownerID, categoryID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("expenses").
		Where("owner_id = ? AND category_id = ?", ownerID, categoryID).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting the sum of expenses for category %s failed: %w", categoryID, err)
	}

	return sum.Decimal, nil
}

// RecordFilter restricts the records of an owner.
type RecordFilter struct {
	OwnerID    uuid.UUID
	From       time.Time  // Only records at or after this time. Ignored if zero.
	Until      time.Time  // Only records at or before this time. Ignored if zero.
	CategoryID *uuid.UUID // Only records in this category
}

// Scope applies the filter to a query on expenses or incomes.
func (f RecordFilter) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("owner_id = ?", f.OwnerID)

	if !f.From.IsZero() {
		db = db.Where("date >= ?", f.From.In(time.UTC))
	}

	if !f.Until.IsZero() {
		db = db.Where("date <= ?", f.Until.In(time.UTC))
	}

	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}

	return db
}

// Finances is the overview of the records of an owner.
type Finances struct {
	Incomes      []Income
	Expenses     []Expense
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Balance      decimal.Decimal // IncomeTotal - ExpenseTotal
}

// OwnerFinances returns all incomes and expenses matching the filter with their totals.
func OwnerFinances(db *gorm.DB, filter RecordFilter) (Finances, error) {
	var f Finances

	err := db.Scopes(filter.Scope).Order("date ASC").Find(&f.Incomes).Error
	if err != nil {
		return Finances{}, err
	}

	err = db.Scopes(filter.Scope).Order("date ASC").Find(&f.Expenses).Error
	if err != nil {
		return Finances{}, err
	}

	f.IncomeTotal = decimal.Zero
	for _, i := range f.Incomes {
		f.IncomeTotal = f.IncomeTotal.Add(i.Amount)
	}

	f.ExpenseTotal = decimal.Zero
	for _, e := range f.Expenses {
		f.ExpenseTotal = f.ExpenseTotal.Add(e.Amount)
	}

	f.Balance = f.IncomeTotal.Sub(f.ExpenseTotal)
	return f, nil
}

// Investment is the sum of the expenses in one investment category.
type Investment struct {
	Category ExpenseCategory
	Sum      decimal.Decimal
	Expenses []Expense
}

// Investments summarizes the investments of an owner.
type Investments struct {
	Total       decimal.Decimal
	Investments []Investment
}

// IsInvestmentCategory reports if the category name matches any of the glob patterns.
// The comparison is case insensitive.
func IsInvestmentCategory(name string, patterns []string) bool {
	// A Caser is stateful and must not be shared
	fold := cases.Fold()

	name = fold.String(name)
	for _, pattern := range patterns {
		if glob.Glob(fold.String(strings.TrimSpace(pattern)), name) {
			return true
		}
	}

	return false
}

// OwnerInvestments sums up the expenses in all expense categories of the
// owner that match one of the patterns.
func OwnerInvestments(db *gorm.DB, ownerID uuid.UUID, patterns []string) (Investments, error) {
	var categories []ExpenseCategory
	err := db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return Investments{}, err
	}

	result := Investments{Total: decimal.Zero, Investments: []Investment{}}
	for _, category := range categories {
		if !IsInvestmentCategory(category.Name, patterns) {
			continue
		}

		investment := Investment{Category: category, Sum: decimal.Zero}
		err := db.Where("owner_id = ? AND category_id = ?", ownerID, category.ID).Order("date ASC").Find(&investment.Expenses).Error
		if err != nil {
			return Investments{}, err
		}

		for _, e := range investment.Expenses {
			investment.Sum = investment.Sum.Add(e.Amount)
		}

		result.Total = result.Total.Add(investment.Sum)
		result.Investments = append(result.Investments, investment)
	}

	return result, nil
}
