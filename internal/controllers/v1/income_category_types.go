package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
)

// IncomeCategoryEditable represents all user configurable parameters
type IncomeCategoryEditable struct {
	Name string `json:"name" example:"Salary" default:""`                       // Name of the category
	Note string `json:"note" example:"Monthly pay from my employer" default:""` // Notes about the category
}

func (editable IncomeCategoryEditable) model(ownerID uuid.UUID) models.IncomeCategory {
	return models.IncomeCategory{
		OwnerID: ownerID,
		Name:    editable.Name,
		Note:    editable.Note,
	}
}

type IncomeCategoryLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/income-categories/3b1ea324-d438-4419-882a-2fc91d71772f"`   // The category itself
	Incomes string `json:"incomes" example:"https://example.com/api/v1/incomes?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Incomes in this category
}

type IncomeCategory struct {
	models.DefaultModel
	IncomeCategoryEditable
	Default bool                `json:"default" example:"false"` // The default category can neither be renamed nor deleted
	Links   IncomeCategoryLinks `json:"links"`
}

func newIncomeCategory(c *gin.Context, model models.IncomeCategory) IncomeCategory {
	url := c.GetString(string(models.DBContextURL))

	return IncomeCategory{
		DefaultModel: model.DefaultModel,
		IncomeCategoryEditable: IncomeCategoryEditable{
			Name: model.Name,
			Note: model.Note,
		},
		Default: model.Default,
		Links: IncomeCategoryLinks{
			Self:    fmt.Sprintf("%s/v1/income-categories/%s", url, model.ID),
			Incomes: fmt.Sprintf("%s/v1/incomes?category=%s", url, model.ID),
		},
	}
}

type IncomeCategoryListResponse struct {
	Data       []IncomeCategory `json:"data"`                                                          // List of income categories
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type IncomeCategoryCreateResponse struct {
	Data  []IncomeCategoryResponse `json:"data"`                                                          // List of the created income categories or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *IncomeCategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, IncomeCategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeCategoryResponse struct {
	Data  *IncomeCategory `json:"data"`                                                          // Data for the income category
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeCategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}
