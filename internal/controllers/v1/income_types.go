package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	ez_uuid "github.com/pocket-ledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	CategoryID  *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the income category. null for no category
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"2500.00" minimum:"0"` // The amount received
	Description string          `json:"description" example:"October salary" default:""`           // Description
	Date        time.Time       `json:"date" example:"1815-12-10T18:43:00.271152Z"`                // Date of the income. Defaults to the time of creation
}

func (editable IncomeEditable) model(ownerID uuid.UUID) models.Income {
	return models.Income{
		OwnerID:     ownerID,
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		Description: editable.Description,
		Date:        editable.Date,
	}
}

type IncomeLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/incomes/d430d7c3-d14c-4712-9336-ee56965a6673"`               // The income itself
	Category string `json:"category" example:"https://example.com/api/v1/income-categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category of the income. Empty if it has none
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	income := Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			CategoryID:  model.CategoryID,
			Amount:      model.Amount,
			Description: model.Description,
			Date:        model.Date,
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
	}

	if model.CategoryID != nil {
		income.Links.Category = fmt.Sprintf("%s/v1/income-categories/%s", url, *model.CategoryID)
	}

	return income
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of incomes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`                                                          // List of the created incomes or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeQueryFilter struct {
	CategoryID        ez_uuid.UUID    `form:"category" filterField:"false"`                                        // By ID of the income category
	FromDate          time.Time       `form:"fromDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"`  // Incomes at and after this date
	UntilDate         time.Time       `form:"untilDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"` // Incomes before and at this date
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"`                               // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"`                               // Amount more than or equal to this
	Description       string          `form:"description" filterField:"false"`                                     // By description
	Offset            uint            `form:"offset" filterField:"false"`                                          // The offset of the first income returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`                                           // Maximum number of incomes to return. Defaults to 50.
}

func (f IncomeQueryFilter) recordFilter(ownerID uuid.UUID) models.RecordFilter {
	return models.RecordFilter{
		OwnerID:    ownerID,
		From:       f.FromDate,
		Until:      endOfDay(f.UntilDate),
		CategoryID: f.CategoryID.Ptr(),
	}
}
