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

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	CategoryID  *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the expense category. null for no category
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"14.03" minimum:"0"`   // The amount spent
	Description string          `json:"description" example:"Weekly shopping" default:""`          // Description, at most 100 characters
	Date        time.Time       `json:"date" example:"1815-12-10T18:43:00.271152Z"`                // Date of the expense. Defaults to the time of creation
}

func (editable ExpenseEditable) model(ownerID uuid.UUID) models.Expense {
	return models.Expense{
		OwnerID:     ownerID,
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		Description: editable.Description,
		Date:        editable.Date,
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"`               // The expense itself
	Category string `json:"category" example:"https://example.com/api/v1/expense-categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category of the expense. Empty if it has none
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	expense := Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			CategoryID:  model.CategoryID,
			Amount:      model.Amount,
			Description: model.Description,
			Date:        model.Date,
		},
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}

	if model.CategoryID != nil {
		expense.Links.Category = fmt.Sprintf("%s/v1/expense-categories/%s", url, *model.CategoryID)
	}

	return expense
}

// LimitExceeded describes by how much an expense took its category over the limit.
type LimitExceeded struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the category
	CategoryName string          `json:"categoryName" example:"Rent"`                               // Name of the category
	Limit        decimal.Decimal `json:"limit" swaggertype:"number" example:"1000"`                 // The limit of the category
	Total        decimal.Decimal `json:"total" swaggertype:"number" example:"1050"`                 // Sum of all expenses in the category, including the new one
	Exceeded     decimal.Decimal `json:"exceeded" swaggertype:"number" example:"50"`                // Total - Limit
}

func newLimitExceeded(e *models.LimitExceededError) *LimitExceeded {
	return &LimitExceeded{
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Limit:        e.Limit,
		Total:        e.Total,
		Exceeded:     e.Exceeded,
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data          *Expense       `json:"data"`                                                          // Data for the expense
	Error         *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	LimitExceeded *LimitExceeded `json:"limitExceeded,omitempty"`                                       // Set if the expense was recorded, but took its category over the limit
}

type ExpenseQueryFilter struct {
	CategoryID        ez_uuid.UUID    `form:"category" filterField:"false"`                                        // By ID of the expense category
	FromDate          time.Time       `form:"fromDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"`  // Expenses at and after this date
	UntilDate         time.Time       `form:"untilDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"` // Expenses before and at this date
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"`                               // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"`                               // Amount more than or equal to this
	Description       string          `form:"description" filterField:"false"`                                     // By description
	Offset            uint            `form:"offset" filterField:"false"`                                          // The offset of the first expense returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`                                           // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) recordFilter(ownerID uuid.UUID) models.RecordFilter {
	return models.RecordFilter{
		OwnerID:    ownerID,
		From:       f.FromDate,
		Until:      endOfDay(f.UntilDate),
		CategoryID: f.CategoryID.Ptr(),
	}
}
