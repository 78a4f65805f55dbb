package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestIncomesCreate() {
	_, auth := createTestUser(suite.T())
	salary := incomeCategoryByName(suite.T(), auth, "Salary")

	i := createTestIncome(suite.T(), auth, v1.IncomeEditable{CategoryID: &salary.ID, Amount: decimal.NewFromInt(2500), Description: "October"})
	suite.Assert().True(decimal.NewFromInt(2500).Equal(i.Data.Amount))
	suite.Assert().Equal(salary.Links.Self, i.Data.Links.Category)
	suite.Assert().False(i.Data.Date.IsZero(), "Date must default to the time of creation")

	// Income descriptions are not limited
	long := strings.Repeat("a", 500)
	i = createTestIncome(suite.T(), auth, v1.IncomeEditable{Amount: decimal.NewFromInt(1), Description: long})
	suite.Assert().Equal(long, i.Data.Description)

	// Expense categories are not income categories
	rent := expenseCategoryByName(suite.T(), auth, "Rent")
	createTestIncome(suite.T(), auth, v1.IncomeEditable{CategoryID: &rent.ID, Amount: decimal.NewFromInt(1)}, http.StatusNotFound)

	i = createTestIncome(suite.T(), auth, v1.IncomeEditable{Amount: decimal.NewFromInt(-1)}, http.StatusBadRequest)
	suite.Require().NotNil(i.Error)
	suite.Assert().Equal(models.ErrAmountNegative.Error(), *i.Error)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", `{ "amount": 2 }`, auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesGetFilter() {
	_, auth := createTestUser(suite.T())
	_, otherAuth := createTestUser(suite.T())
	salary := incomeCategoryByName(suite.T(), auth, "Salary")

	createTestIncome(suite.T(), auth, v1.IncomeEditable{CategoryID: &salary.ID, Amount: decimal.NewFromInt(2500), Description: "January", Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)})
	createTestIncome(suite.T(), auth, v1.IncomeEditable{CategoryID: &salary.ID, Amount: decimal.NewFromInt(2600), Description: "February", Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)})
	createTestIncome(suite.T(), auth, v1.IncomeEditable{Amount: decimal.NewFromInt(40), Description: "Flea market", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	createTestIncome(suite.T(), otherAuth, v1.IncomeEditable{Amount: decimal.NewFromInt(1), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 3, http.StatusOK},
		{"Category", fmt.Sprintf("category=%s", salary.ID), 2, http.StatusOK},
		{"From date", "fromDate=2024-02-29", 2, http.StatusOK},
		{"Until date", "untilDate=2024-02-29", 2, http.StatusOK},
		{"Description", "description=market", 1, http.StatusOK},
		{"Amount", "amountMoreOrEqual=2500", 2, http.StatusOK},
		{"Offset", "offset=2", 1, http.StatusOK},
		{"Invalid date", "untilDate=2024-13-01", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.IncomeListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/incomes?%s", tt.query), "", auth)
			test.AssertHTTPStatus(t, &r, tt.status)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}

	// Newest first
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/incomes", "", auth)
	var re v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &re)
	suite.Require().Len(re.Data, 3)
	suite.Assert().Equal("Flea market", re.Data[0].Description)
	suite.Assert().Equal("January", re.Data[2].Description)
}

func (suite *TestSuiteStandard) TestIncomesUpdate() {
	_, auth := createTestUser(suite.T())
	_, otherAuth := createTestUser(suite.T())
	gifts := incomeCategoryByName(suite.T(), auth, "Gifts")
	i := createTestIncome(suite.T(), auth, v1.IncomeEditable{Amount: decimal.NewFromInt(50), Description: "Birthday"})

	r := test.Request(suite.T(), http.MethodPatch, i.Data.Links.Self, fmt.Sprintf(`{"categoryId": "%s", "date": "2024-05-01T00:00:00Z"}`, gifts.ID), auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Require().NotNil(updated.Data.CategoryID)
	suite.Assert().Equal(gifts.ID, *updated.Data.CategoryID)
	suite.Assert().True(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Equal(updated.Data.Date), updated.Data.Date)
	suite.Assert().Equal("Birthday", updated.Data.Description)

	tests := []struct {
		name   string
		url    string
		body   string
		auth   map[string]string
		status int
	}{
		{"Negative amount", i.Data.Links.Self, `{"amount": -5}`, auth, http.StatusBadRequest},
		{"Unknown category", i.Data.Links.Self, fmt.Sprintf(`{"categoryId": "%s"}`, uuid.New()), auth, http.StatusNotFound},
		{"Broken JSON", i.Data.Links.Self, `{"amount": 5`, auth, http.StatusBadRequest},
		{"Other user", i.Data.Links.Self, `{"amount": 5}`, otherAuth, http.StatusNotFound},
		{"Unknown income", fmt.Sprintf("http://example.com/v1/incomes/%s", uuid.New()), `{"amount": 5}`, auth, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.url, tt.body, tt.auth)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesDelete() {
	_, auth := createTestUser(suite.T())
	i := createTestIncome(suite.T(), auth, v1.IncomeEditable{Amount: decimal.NewFromInt(50)})

	r := test.Request(suite.T(), http.MethodDelete, i.Data.Links.Self, "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, i.Data.Links.Self, "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomesDBClosed() {
	_, auth := createTestUser(suite.T())
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/incomes", "", auth)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized, http.StatusInternalServerError)
}
