package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/pocket-ledger/backend/internal/export"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// RegisterFinancesRoutes registers the routes for the finances overview with
// the RouterGroup that is passed.
func RegisterFinancesRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsFinances)
	r.GET("", GetFinances)

	r.OPTIONS("/export", OptionsFinancesExport)
	r.GET("/export", ExportFinances)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Finances
// @Success		204
// @Router			/v1/finances [options]
func OptionsFinances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Finances
// @Success		204
// @Router			/v1/finances/export [options]
func OptionsFinancesExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get finances
// @Description	Returns all incomes and expenses of the authenticated user with their totals
// @Tags			Finances
// @Produce		json
// @Security		BearerAuth
// @Success		200			{object}	FinancesResponse
// @Failure		400			{object}	FinancesResponse
// @Failure		500			{object}	FinancesResponse
// @Param			category	query		string	false	"Filter by category ID"
// @Param			fromDate	query		string	false	"Records at and after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Records before and at this date, YYYY-MM-DD"
// @Router			/v1/finances [get]
func GetFinances(c *gin.Context) {
	var filter FinancesQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, FinancesResponse{
			Error: &s,
		})
		return
	}

	finances, err := models.OwnerFinances(models.DB, filter.recordFilter(auth.User(c).ID))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancesResponse{
			Error: &s,
		})
		return
	}

	data := Finances{
		Incomes:  make([]Income, 0, len(finances.Incomes)),
		Expenses: make([]Expense, 0, len(finances.Expenses)),
		Totals: FinancesTotals{
			Income:  finances.IncomeTotal,
			Expense: finances.ExpenseTotal,
			Balance: finances.Balance,
		},
	}

	for _, income := range finances.Incomes {
		data.Incomes = append(data.Incomes, newIncome(c, income))
	}

	for _, expense := range finances.Expenses {
		data.Expenses = append(data.Expenses, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, FinancesResponse{Data: &data})
}

// @Summary		Export finances
// @Description	Exports all incomes and expenses of the authenticated user as XLSX workbook
// @Tags			Finances
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security		BearerAuth
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			category	query		string	false	"Filter by category ID"
// @Param			fromDate	query		string	false	"Records at and after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Records before and at this date, YYYY-MM-DD"
// @Router			/v1/finances/export [get]
func ExportFinances(c *gin.Context) {
	var filter FinancesQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	owner := auth.User(c)

	finances, err := models.OwnerFinances(models.DB, filter.recordFilter(owner.ID))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	categories, err := categoryNames(owner.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	f, err := export.Workbook(finances, categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("closing the finances workbook failed")
		}
	}()

	buffer, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"finances-%s.xlsx\"", time.Now().In(time.UTC).Format("2006-01-02")))
	c.Data(http.StatusOK, export.ContentType, buffer.Bytes())
}

// categoryNames returns the names of all categories of the owner by their ID.
func categoryNames(ownerID uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)

	var expenseCategories []models.ExpenseCategory
	err := models.DB.Where("owner_id = ?", ownerID).Find(&expenseCategories).Error
	if err != nil {
		return nil, err
	}

	for _, category := range expenseCategories {
		names[category.ID] = category.Name
	}

	var incomeCategories []models.IncomeCategory
	err = models.DB.Where("owner_id = ?", ownerID).Find(&incomeCategories).Error
	if err != nil {
		return nil, err
	}

	for _, category := range incomeCategories {
		names[category.ID] = category.Name
	}

	return names, nil
}
