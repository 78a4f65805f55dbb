package models_test

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestRecordExpenseConcurrent verifies that concurrent expenses in one limited
// category see each other in the sum.
func (suite *TestSuiteStandard) TestRecordExpenseConcurrent() {
	user := suite.createTestUser()
	car := suite.createTestExpenseCategory(models.ExpenseCategory{
		OwnerID: user.ID,
		Name:    "Car",
		Limit:   decimal.NewNullDecimal(decimal.NewFromInt(100)),
	})

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		totals []string
		errs   []error
	)

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			expense := models.Expense{OwnerID: user.ID, CategoryID: &car.ID, Amount: decimal.NewFromInt(20)}
			err := models.RecordExpense(models.DB, &expense)

			mu.Lock()
			defer mu.Unlock()

			var exceeded *models.LimitExceededError
			if errors.As(err, &exceeded) {
				totals = append(totals, exceeded.Total.String())
				return
			}

			if err != nil {
				errs = append(errs, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(suite.T(), errs)

	// Only the sixth to tenth expense take the category over the limit,
	// each with its own running total
	assert.ElementsMatch(suite.T(), []string{"120", "140", "160", "180", "200"}, totals)

	sum, err := models.ExpenseSum(models.DB, user.ID, car.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(200)), sum.String())
}

// removeDefaultExpenseCategory deletes the default expense category of the user,
// bypassing the delete guard.
func (suite *TestSuiteStandard) removeDefaultExpenseCategory(ownerID uuid.UUID) {
	defaultCategory, err := models.DefaultExpenseCategory(models.DB, ownerID)
	require.Nil(suite.T(), err)

	err = models.DB.Session(&gorm.Session{SkipHooks: true}).Delete(&defaultCategory).Error
	require.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) defaultExpenseCategoryCount(ownerID uuid.UUID) int64 {
	var count int64
	err := models.DB.Model(&models.ExpenseCategory{}).Where("owner_id = ? AND is_default = ?", ownerID, true).Count(&count).Error
	require.Nil(suite.T(), err)

	return count
}

// TestDeleteCategoryConcurrent verifies that concurrent deletions create
// only one default category.
func (suite *TestSuiteStandard) TestDeleteCategoryConcurrent() {
	user := suite.createTestUser()
	suite.removeDefaultExpenseCategory(user.ID)

	var categories []models.ExpenseCategory
	for range 3 {
		category := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID})
		suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &category.ID, Amount: decimal.NewFromInt(5)})
		categories = append(categories, category)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(categories))
	for i, category := range categories {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = models.DeleteCategory(models.DB, user.ID, category.ID, models.KindExpense)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.Nil(suite.T(), err)
	}

	assert.Equal(suite.T(), int64(1), suite.defaultExpenseCategoryCount(user.ID))

	defaultCategory, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.Expense{}).Where("owner_id = ? AND category_id = ?", user.ID, defaultCategory.ID).Count(&count)
	assert.Equal(suite.T(), int64(3), count, "All expenses must be moved to the one default category")
}

// TestDeleteCategorySequentialWithoutDefault verifies that the default category
// created by the first deletion is reused by the second one.
func (suite *TestSuiteStandard) TestDeleteCategorySequentialWithoutDefault() {
	user := suite.createTestUser()
	suite.removeDefaultExpenseCategory(user.ID)

	travel := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID, Name: "Travel"})
	books := suite.createTestExpenseCategory(models.ExpenseCategory{OwnerID: user.ID, Name: "Books"})
	e1 := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &travel.ID, Amount: decimal.NewFromInt(10)})
	e2 := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &books.ID, Amount: decimal.NewFromInt(20)})

	require.Nil(suite.T(), models.DeleteCategory(models.DB, user.ID, travel.ID, models.KindExpense))
	first, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), models.DeleteCategory(models.DB, user.ID, books.ID, models.KindExpense))
	second, err := models.DefaultExpenseCategory(models.DB, user.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), int64(1), suite.defaultExpenseCategoryCount(user.ID))

	for _, e := range []models.Expense{e1, e2} {
		var reloaded models.Expense
		require.Nil(suite.T(), models.DB.Where("id = ?", e.ID).Take(&reloaded).Error)
		require.NotNil(suite.T(), reloaded.CategoryID)
		assert.Equal(suite.T(), first.ID, *reloaded.CategoryID)
	}
}

// TestDeleteCategoryRollback verifies that a failing deletion leaves the
// records in their category.
func (suite *TestSuiteStandard) TestDeleteCategoryRollback() {
	user := suite.createTestUser()
	suite.removeDefaultExpenseCategory(user.ID)

	rent := suite.expenseCategoryByName(user.ID, "Rent")
	expense := suite.createTestExpense(models.Expense{OwnerID: user.ID, CategoryID: &rent.ID, Amount: decimal.NewFromInt(950)})

	errDelete := errors.New("deleting categories is broken")
	err := models.DB.Callback().Delete().Before("gorm:delete").Register("test:fail_category_delete", func(db *gorm.DB) {
		if db.Statement.Table == "expense_categories" {
			_ = db.AddError(errDelete)
		}
	})
	require.Nil(suite.T(), err)

	err = models.DeleteCategory(models.DB, user.ID, rent.ID, models.KindExpense)
	assert.ErrorIs(suite.T(), err, errDelete)

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.Where("id = ?", expense.ID).Take(&reloaded).Error)
	require.NotNil(suite.T(), reloaded.CategoryID)
	assert.Equal(suite.T(), rent.ID, *reloaded.CategoryID)

	// The category and the missing default are unchanged as well
	require.Nil(suite.T(), models.DB.Where("id = ?", rent.ID).Take(&models.ExpenseCategory{}).Error)
	assert.Equal(suite.T(), int64(0), suite.defaultExpenseCategoryCount(user.ID))
}
