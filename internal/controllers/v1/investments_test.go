package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestInvestments() {
	_, auth := createTestUser(suite.T())
	_, otherAuth := createTestUser(suite.T())

	stocks := createTestExpenseCategory(suite.T(), auth, v1.ExpenseCategoryEditable{Name: "Investments: Stocks"})
	pension := createTestExpenseCategory(suite.T(), auth, v1.ExpenseCategoryEditable{Name: "Пенсійні інвестиції"})
	other := createTestExpenseCategory(suite.T(), otherAuth, v1.ExpenseCategoryEditable{Name: "Investments"})
	rent := expenseCategoryByName(suite.T(), auth, "Rent")

	createTestExpense(suite.T(), auth, v1.ExpenseEditable{CategoryID: &stocks.Data.ID, Amount: decimal.NewFromInt(300), Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})
	createTestExpense(suite.T(), auth, v1.ExpenseEditable{CategoryID: &stocks.Data.ID, Amount: decimal.NewFromInt(200), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	createTestExpense(suite.T(), auth, v1.ExpenseEditable{CategoryID: &pension.Data.ID, Amount: decimal.NewFromInt(150)})
	createTestExpense(suite.T(), auth, v1.ExpenseEditable{CategoryID: &rent.ID, Amount: decimal.NewFromInt(1000)})
	createTestExpense(suite.T(), otherAuth, v1.ExpenseEditable{CategoryID: &other.Data.ID, Amount: decimal.NewFromInt(9999)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/investments", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InvestmentsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.NewFromInt(650).Equal(response.Data.Total), "Total is %s", response.Data.Total)
	suite.Require().Len(response.Data.Investments, 2)

	// Categories are ordered by name
	stocksInvestment := response.Data.Investments[0]
	suite.Assert().Equal(stocks.Data.ID, stocksInvestment.Category.ID)
	suite.Assert().True(decimal.NewFromInt(500).Equal(stocksInvestment.Sum))
	suite.Require().Len(stocksInvestment.Expenses, 2)
	suite.Assert().True(decimal.NewFromInt(200).Equal(stocksInvestment.Expenses[0].Amount), "Expenses must be ordered by date")

	suite.Assert().Equal(pension.Data.ID, response.Data.Investments[1].Category.ID)
	suite.Assert().True(decimal.NewFromInt(150).Equal(response.Data.Investments[1].Sum))
}

func (suite *TestSuiteStandard) TestInvestmentsEmpty() {
	_, auth := createTestUser(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/investments", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InvestmentsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Total.IsZero())
	suite.Assert().Len(response.Data.Investments, 0)

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/investments", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}
