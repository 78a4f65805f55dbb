package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	ez_uuid "github.com/pocket-ledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type FinancesTotals struct {
	Income  decimal.Decimal `json:"income" swaggertype:"number" example:"2500"`    // Sum of all incomes
	Expense decimal.Decimal `json:"expense" swaggertype:"number" example:"1830.2"` // Sum of all expenses
	Balance decimal.Decimal `json:"balance" swaggertype:"number" example:"669.8"`  // Income - Expense
}

type Finances struct {
	Incomes  []Income       `json:"incomes"`  // All incomes matching the filter, ordered by date
	Expenses []Expense      `json:"expenses"` // All expenses matching the filter, ordered by date
	Totals   FinancesTotals `json:"totals"`   // Totals for incomes and expenses
}

type FinancesResponse struct {
	Data  *Finances `json:"data"`                                                          // Data for the finances overview
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FinancesQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category"`                                        // By ID of the expense or income category
	FromDate   time.Time    `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Records at and after this date
	UntilDate  time.Time    `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Records before and at this date
}

func (f FinancesQueryFilter) recordFilter(ownerID uuid.UUID) models.RecordFilter {
	return models.RecordFilter{
		OwnerID:    ownerID,
		From:       f.FromDate,
		Until:      endOfDay(f.UntilDate),
		CategoryID: f.CategoryID.Ptr(),
	}
}

type Investment struct {
	Category ExpenseCategory `json:"category"`                               // The investment category
	Sum      decimal.Decimal `json:"sum" swaggertype:"number" example:"400"` // Sum of all expenses in the category
	Expenses []Expense       `json:"expenses"`                               // All expenses in the category, ordered by date
}

type Investments struct {
	Total       decimal.Decimal `json:"total" swaggertype:"number" example:"1200"` // Sum of all investments
	Investments []Investment    `json:"investments"`                               // Investments per category
}

type InvestmentsResponse struct {
	Data  *Investments `json:"data"`                                            // Data for the investment summary
	Error *string      `json:"error" example:"an error occurred on the server"` // The error, if any occurred
}
