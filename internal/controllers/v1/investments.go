package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// Glob patterns that identify investment categories by their name
var investmentPatterns []string

// RegisterInvestmentRoutes registers the routes for the investment summary with
// the RouterGroup that is passed. Expense categories with names matching
// any of the glob patterns are investment categories.
func RegisterInvestmentRoutes(r *gin.RouterGroup, patterns []string) {
	investmentPatterns = patterns

	r.OPTIONS("", OptionsInvestments)
	r.GET("", GetInvestments)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Investments
// @Success		204
// @Router			/v1/investments [options]
func OptionsInvestments(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get investments
// @Description	Returns the sum of expenses per investment category of the authenticated user
// @Tags			Investments
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	InvestmentsResponse
// @Failure		500	{object}	InvestmentsResponse
// @Router			/v1/investments [get]
func GetInvestments(c *gin.Context) {
	investments, err := models.OwnerInvestments(models.DB, auth.User(c).ID, investmentPatterns)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentsResponse{
			Error: &s,
		})
		return
	}

	data := Investments{
		Total:       investments.Total,
		Investments: make([]Investment, 0, len(investments.Investments)),
	}

	for _, i := range investments.Investments {
		category, err := newExpenseCategory(c, i.Category)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), InvestmentsResponse{
				Error: &s,
			})
			return
		}

		investment := Investment{
			Category: category,
			Sum:      i.Sum,
			Expenses: make([]Expense, 0, len(i.Expenses)),
		}

		for _, expense := range i.Expenses {
			investment.Expenses = append(investment.Expenses, newExpense(c, expense))
		}

		data.Investments = append(data.Investments, investment)
	}

	c.JSON(http.StatusOK, InvestmentsResponse{Data: &data})
}
