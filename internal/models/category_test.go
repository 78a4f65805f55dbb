package models_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	user := suite.createTestUser()

	name := "\t Travel  "
	note := "  For holidays "

	category := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID, Name: name, Note: note})
	assert.Equal(suite.T(), strings.TrimSpace(name), category.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), category.Note)

	err := models.DB.Model(&category).Select("Name").Updates(models.ExpenseCategory{Name: " Vacation "}).Error
	require.Nil(suite.T(), err)

	var reloaded models.ExpenseCategory
	require.Nil(suite.T(), models.DB.First(&reloaded, category.ID).Error)
	assert.Equal(suite.T(), "Vacation", reloaded.Name)
}

func (suite *TestSuiteStandard) TestCategoryCreateValidation() {
	user := suite.createTestUser()

	tests := []struct {
		name     string
		category models.ExpenseCategory
		err      error
	}{
		{"Reserved name", models.ExpenseCategory{OwnerID: user.ID, Name: models.DefaultCategoryName}, models.ErrCategoryNameReserved},
		{"Empty name", models.ExpenseCategory{OwnerID: user.ID, Name: "  "}, models.ErrCategoryNameEmpty},
		{"Duplicate name", models.ExpenseCategory{OwnerID: user.ID, Name: "Groceries"}, models.ErrCategoryNameNotUnique},
		{"Negative limit", models.ExpenseCategory{OwnerID: user.ID, Name: "Debt", Limit: decimal.NewNullDecimal(decimal.NewFromInt(-1))}, models.ErrLimitNegative},
		{"Unknown owner", models.ExpenseCategory{OwnerID: uuid.New(), Name: "Orphan"}, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.category).Error
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			// Foreign keys are enforced by the database
			assert.NotNil(t, err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerOwner() {
	first := suite.createTestUser()
	second := suite.createTestUser()

	_ = suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: first.ID, Name: "Travel"})
	_ = suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: second.ID, Name: "Travel"})

	err := models.DB.Create(&models.IncomeCategory{OwnerID: first.ID, Name: "Salary"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryRenameGuard() {
	user := suite.createTestUser()

	defaultExpense, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	defaultIncome, err := models.DefaultIncomeCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	tests := []struct {
		name string
		fn   func() error
		err  error
	}{
		{
			"Rename default expense category",
			func() error {
				return models.DB.Model(&defaultExpense).Select("Name").Updates(models.ExpenseCategory{Name: "Misc"}).Error
			},
			models.ErrCategoryProtected,
		},
		{
			"Rename default expense category to its own name",
			func() error {
				return models.DB.Model(&defaultExpense).Select("Name").Updates(models.ExpenseCategory{Name: models.DefaultCategoryName}).Error
			},
			models.ErrCategoryProtected,
		},
		{
			"Set limit on default expense category",
			func() error {
				return models.DB.Model(&defaultExpense).Select("Limit").Updates(models.ExpenseCategory{Limit: decimal.NewNullDecimal(decimal.NewFromInt(5))}).Error
			},
			models.ErrCategoryProtected,
		},
		{
			"Rename default income category",
			func() error {
				return models.DB.Model(&defaultIncome).Select("Name").Updates(models.IncomeCategory{Name: "Misc"}).Error
			},
			models.ErrCategoryProtected,
		},
		{
			"Rename other category to reserved name",
			func() error {
				rent := suite.expenseCategoryByName(user.ID, "Rent")
				return models.DB.Model(&rent).Select("Name").Updates(models.ExpenseCategory{Name: models.DefaultCategoryName}).Error
			},
			models.ErrCategoryNameReserved,
		},
		{
			"Negative limit",
			func() error {
				rent := suite.expenseCategoryByName(user.ID, "Rent")
				return models.DB.Model(&rent).Select("Limit").Updates(models.ExpenseCategory{Limit: decimal.NewNullDecimal(decimal.NewFromInt(-10))}).Error
			},
			models.ErrLimitNegative,
		},
		{
			"Rename other category",
			func() error {
				rent := suite.expenseCategoryByName(user.ID, "Rent")
				return models.DB.Model(&rent).Select("Name").Updates(models.ExpenseCategory{Name: "Housing"}).Error
			},
			nil,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if tt.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}

	// The default categories are unchanged
	var reloaded models.ExpenseCategory
	require.Nil(suite.T(), models.DB.First(&reloaded, defaultExpense.ID).Error)
	assert.Equal(suite.T(), models.DefaultCategoryName, reloaded.Name)
	assert.False(suite.T(), reloaded.Limit.Valid)
}

func (suite *TestSuiteStandard) TestCategoryClearLimit() {
	user := suite.createTestUser()
	category := suite.createTestExpenseCategory(models.ExpenseCategory{
		OwnerID: user.ID,
		Limit:   decimal.NewNullDecimal(decimal.NewFromInt(100)),
	})

	err := models.DB.Model(&category).Select("Limit").Updates(models.ExpenseCategory{}).Error
	require.Nil(suite.T(), err)

	var reloaded models.ExpenseCategory
	require.Nil(suite.T(), models.DB.First(&reloaded, category.ID).Error)
	assert.False(suite.T(), reloaded.Limit.Valid)
}

func (suite *TestSuiteStandard) TestDeleteCategoryReassignsRecords() {
	user := suite.createTestUser()
	travel := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID, Name: "Travel"})
	groceries := suite.expenseCategoryByName(user.ID, "Groceries")

	e1 := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &travel.ID, Amount: decimal.NewFromInt(10)})
	e2 := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &travel.ID, Amount: decimal.NewFromInt(20)})
	e3 := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &groceries.ID, Amount: decimal.NewFromInt(30)})

	err := models.DeleteCategory(models.DB, user.ID, travel.ID, models.KindExpense)
	require.Nil(suite.T(), err)

	defaultCategory, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	for _, e := range []models.Expense{e1, e2} {
		var reloaded models.Expense
		require.Nil(suite.T(), models.DB.First(&reloaded, e.ID).Error)
		require.NotNil(suite.T(), reloaded.CategoryID)
		assert.Equal(suite.T(), defaultCategory.ID, *reloaded.CategoryID)
	}

	var untouched models.Expense
	require.Nil(suite.T(), models.DB.First(&untouched, e3.ID).Error)
	assert.Equal(suite.T(), groceries.ID, *untouched.CategoryID)

	err = models.DB.First(&models.ExpenseCategory{}, travel.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteIncomeCategoryReassignsRecords() {
	user := suite.createTestUser()
	gifts := suite.createTestIncomeCategory(models.IncomeCategory{OwnerID: user.ID, Name: "Lottery"})

	income := suite.createTestIncome(models.Income{OwnerID: user.ID, CategoryID: &gifts.ID, Amount: decimal.NewFromInt(500)})

	err := models.DeleteCategory(models.DB, user.ID, gifts.ID, models.KindIncome)
	require.Nil(suite.T(), err)

	defaultCategory, err := models.DefaultIncomeCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	var reloaded models.Income
	require.Nil(suite.T(), models.DB.First(&reloaded, income.ID).Error)
	assert.Equal(suite.T(), defaultCategory.ID, *reloaded.CategoryID)
}

func (suite *TestSuiteStandard) TestDeleteCategoryCreatesMissingDefault() {
	user := suite.createTestUser()
	defaultCategory, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	// Remove the default category, bypassing the delete guard
	err = models.DB.Session(&gorm.Session{SkipHooks: true}).Delete(&defaultCategory).Error
	require.Nil(suite.T(), err)

	travel := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID, Name: "Travel"})
	expense := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &travel.ID, Amount: decimal.NewFromInt(10)})

	err = models.DeleteCategory(models.DB, user.ID, travel.ID, models.KindExpense)
	require.Nil(suite.T(), err)

	recreated, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)
	assert.NotEqual(suite.T(), defaultCategory.ID, recreated.ID)
	assert.Equal(suite.T(), models.DefaultCategoryName, recreated.Name)
	assert.True(suite.T(), recreated.Default)

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, expense.ID).Error)
	assert.Equal(suite.T(), recreated.ID, *reloaded.CategoryID)

	var count int64
	models.DB.Model(&models.ExpenseCategory{}).Where("owner_id = ? AND is_default = ?", user.ID, true).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestDeleteCategoryErrors() {
	owner := suite.createTestUser()
	other := suite.createTestUser()

	defaultCategory, err := models.DefaultExpenseCategory(models.DB, owner.ID)
	require.Nil(suite.T(), err)

	foreign := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: other.ID, Name: "Foreign"})

	tests := []struct {
		name string
		id   uuid.UUID
		kind models.CategoryKind
		err  error
	}{
		{"Default category", defaultCategory.ID, models.KindExpense, models.ErrCategoryProtected},
		{"Category of other owner", foreign.ID, models.KindExpense, models.ErrResourceNotFound},
		{"Unknown category", uuid.New(), models.KindExpense, models.ErrResourceNotFound},
		{"Expense category as income category", suite.expenseCategoryByName(owner.ID, "Rent").ID, models.KindIncome, models.ErrResourceNotFound},
		{"Unknown kind", defaultCategory.ID, models.CategoryKind("savings"), models.ErrCategoryKindUnknown},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DeleteCategory(models.DB, owner.ID, tt.id, tt.kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	// Nothing was deleted
	err = models.DB.First(&models.ExpenseCategory{}, foreign.ID).Error
	assert.Nil(suite.T(), err)
	err = models.DB.First(&models.ExpenseCategory{}, defaultCategory.ID).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestDeleteDefaultCategoryDirectly() {
	user := suite.createTestUser()
	defaultCategory, err := models.DefaultIncomeCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	err = models.DB.Delete(&defaultCategory).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryProtected)
}

func (suite *TestSuiteStandard) TestDefaultCategoryIdempotent() {
	user := suite.createTestUser()

	first, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	second, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.True(suite.T(), first.Default)

	var count int64
	models.DB.Model(&models.ExpenseCategory{}).Where("owner_id = ? AND is_default = ?", user.ID, true).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}
