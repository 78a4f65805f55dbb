package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Users             string `json:"users" example:"https://example.com/api/v1/users"`                          // URL of the user creation endpoint
	Me                string `json:"me" example:"https://example.com/api/v1/users/me"`                          // URL of the authenticated user
	ExpenseCategories string `json:"expenseCategories" example:"https://example.com/api/v1/expense-categories"` // URL of expense category list endpoint
	IncomeCategories  string `json:"incomeCategories" example:"https://example.com/api/v1/income-categories"`   // URL of income category list endpoint
	Expenses          string `json:"expenses" example:"https://example.com/api/v1/expenses"`                    // URL of expense list endpoint
	Incomes           string `json:"incomes" example:"https://example.com/api/v1/incomes"`                      // URL of income list endpoint
	Finances          string `json:"finances" example:"https://example.com/api/v1/finances"`                    // URL of the finances overview
	Investments       string `json:"investments" example:"https://example.com/api/v1/investments"`              // URL of the investment summary
}

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Users:             url + "/users",
			Me:                url + "/users/me",
			ExpenseCategories: url + "/expense-categories",
			IncomeCategories:  url + "/income-categories",
			Expenses:          url + "/expenses",
			Incomes:           url + "/incomes",
			Finances:          url + "/finances",
			Investments:       url + "/investments",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
