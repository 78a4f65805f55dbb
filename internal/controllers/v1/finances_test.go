package v1_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/export"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

// createTestFinances records incomes and expenses in two months for the user.
func createTestFinances(t *testing.T, auth map[string]string) {
	salary := incomeCategoryByName(t, auth, "Salary")
	rent := expenseCategoryByName(t, auth, "Rent")
	groceries := expenseCategoryByName(t, auth, "Groceries")

	createTestIncome(t, auth, v1.IncomeEditable{CategoryID: &salary.ID, Amount: decimal.NewFromInt(3000), Description: "January", Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)})
	createTestIncome(t, auth, v1.IncomeEditable{CategoryID: &salary.ID, Amount: decimal.NewFromInt(3000), Description: "February", Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)})
	createTestExpense(t, auth, v1.ExpenseEditable{CategoryID: &rent.ID, Amount: decimal.NewFromInt(1000), Description: "January", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	createTestExpense(t, auth, v1.ExpenseEditable{CategoryID: &rent.ID, Amount: decimal.NewFromInt(1000), Description: "February", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})
	createTestExpense(t, auth, v1.ExpenseEditable{CategoryID: &groceries.ID, Amount: decimal.RequireFromString("120.45"), Description: "Market", Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)})
}

func (suite *TestSuiteStandard) TestFinances() {
	_, auth := createTestUser(suite.T())
	_, otherAuth := createTestUser(suite.T())
	createTestFinances(suite.T(), auth)
	createTestFinances(suite.T(), otherAuth)

	rent := expenseCategoryByName(suite.T(), auth, "Rent")

	tests := []struct {
		name     string
		query    string
		incomes  int
		expenses int
		income   string
		expense  string
		balance  string
	}{
		{"All", "", 2, 3, "6000", "2120.45", "3879.55"},
		{"February", "fromDate=2024-02-01&untilDate=2024-02-29", 1, 2, "3000", "1120.45", "1879.55"},
		{"Until January", "untilDate=2024-01-31", 1, 1, "3000", "1000", "2000"},
		{"Category", fmt.Sprintf("category=%s", rent.ID), 0, 2, "0", "2000", "-2000"},
		{"Nothing", "fromDate=2025-01-01", 0, 0, "0", "0", "0"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/finances?%s", tt.query), "", auth)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.FinancesResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data.Incomes, tt.incomes)
			assert.Len(t, response.Data.Expenses, tt.expenses)
			assert.True(t, decimal.RequireFromString(tt.income).Equal(response.Data.Totals.Income), "Income is %s", response.Data.Totals.Income)
			assert.True(t, decimal.RequireFromString(tt.expense).Equal(response.Data.Totals.Expense), "Expense is %s", response.Data.Totals.Expense)
			assert.True(t, decimal.RequireFromString(tt.balance).Equal(response.Data.Totals.Balance), "Balance is %s", response.Data.Totals.Balance)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/finances?category=notaUUID", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestFinancesExport() {
	_, auth := createTestUser(suite.T())
	createTestFinances(suite.T(), auth)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/finances/export?fromDate=2024-02-01", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Equal(export.ContentType, r.Header().Get("Content-Type"))
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "attachment; filename=\"finances-")

	f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
	suite.Require().Nil(err)
	defer f.Close()

	suite.Assert().Equal([]string{export.SheetExpenses, export.SheetIncomes}, f.GetSheetList())

	expenses, err := f.GetRows(export.SheetExpenses)
	suite.Require().Nil(err)

	// Header, two expenses and the total
	suite.Require().Len(expenses, 4)
	suite.Assert().Equal([]string{"2024-02-01", "Rent", "February", "1000"}, expenses[1])
	suite.Assert().Equal("Groceries", expenses[2][1])
	suite.Assert().Equal("Total", expenses[3][0])
	suite.Assert().Equal("1120.45", expenses[3][3])

	incomes, err := f.GetRows(export.SheetIncomes)
	suite.Require().Nil(err)
	suite.Require().Len(incomes, 3)
	suite.Assert().Equal("Salary", incomes[1][1])

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/finances/export?untilDate=tomorrow", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestFinancesDBClosed() {
	_, auth := createTestUser(suite.T())
	suite.CloseDB()

	for _, path := range []string{"/v1/finances", "/v1/finances/export", "/v1/investments"} {
		r := test.Request(suite.T(), http.MethodGet, "http://example.com"+path, "", auth)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	}
}
