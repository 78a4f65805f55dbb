package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryEditable represents all user configurable parameters
type ExpenseCategoryEditable struct {
	Name  string              `json:"name" example:"Groceries" default:""`                                 // Name of the category
	Note  string              `json:"note" example:"Food and household supplies" default:""`               // Notes about the category
	Limit decimal.NullDecimal `json:"limit" swaggertype:"number" example:"350.00" extensions:"x-nullable"` // Upper bound for the sum of all expenses in the category. null for no limit
}

func (editable ExpenseCategoryEditable) model(ownerID uuid.UUID) models.ExpenseCategory {
	return models.ExpenseCategory{
		OwnerID: ownerID,
		Name:    editable.Name,
		Note:    editable.Note,
		Limit:   editable.Limit,
	}
}

type ExpenseCategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expense-categories/3b1ea324-d438-4419-882a-2fc91d71772f"`    // The category itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Expenses in this category
}

type ExpenseCategory struct {
	models.DefaultModel
	ExpenseCategoryEditable
	Default bool                 `json:"default" example:"false"` // The default category can neither be renamed nor deleted
	Links   ExpenseCategoryLinks `json:"links"`

	// These fields are computed
	Spent decimal.Decimal `json:"spent" example:"120.50"` // Sum of all expenses in the category
}

func newExpenseCategory(c *gin.Context, model models.ExpenseCategory) (ExpenseCategory, error) {
	url := c.GetString(string(models.DBContextURL))

	spent, err := models.ExpenseSum(models.DB, model.OwnerID, model.ID)
	if err != nil {
		return ExpenseCategory{}, err
	}

	return ExpenseCategory{
		DefaultModel: model.DefaultModel,
		ExpenseCategoryEditable: ExpenseCategoryEditable{
			Name:  model.Name,
			Note:  model.Note,
			Limit: model.Limit,
		},
		Default: model.Default,
		Links: ExpenseCategoryLinks{
			Self:     fmt.Sprintf("%s/v1/expense-categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s", url, model.ID),
		},
		Spent: spent,
	}, nil
}

type ExpenseCategoryListResponse struct {
	Data       []ExpenseCategory `json:"data"`                                                          // List of expense categories
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type ExpenseCategoryCreateResponse struct {
	Data  []ExpenseCategoryResponse `json:"data"`                                                          // List of the created expense categories or their respective error
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *ExpenseCategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ExpenseCategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseCategoryResponse struct {
	Data  *ExpenseCategory `json:"data"`                                                          // Data for the expense category
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseCategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}
