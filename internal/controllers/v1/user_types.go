package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
)

// UserCreate contains the parameters for a new user
type UserCreate struct {
	Username string `json:"username" example:"alex"`                  // Name the user logs in with
	Password string `json:"password" example:"correct horse battery"` // Password of the user. Only the bcrypt hash is stored
}

type UserLinks struct {
	Self              string `json:"self" example:"https://example.com/api/v1/users/me"`
	ExpenseCategories string `json:"expenseCategories" example:"https://example.com/api/v1/expense-categories"`
	IncomeCategories  string `json:"incomeCategories" example:"https://example.com/api/v1/income-categories"`
	Expenses          string `json:"expenses" example:"https://example.com/api/v1/expenses"`
	Incomes           string `json:"incomes" example:"https://example.com/api/v1/incomes"`
}

type User struct {
	models.DefaultModel
	Username string    `json:"username" example:"alex"` // Name the user logs in with
	Active   bool      `json:"active" example:"true"`   // Inactive users cannot use the API
	Links    UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		Username:     model.Username,
		Active:       model.Active,
		Links: UserLinks{
			Self:              fmt.Sprintf("%s/v1/users/me", url),
			ExpenseCategories: fmt.Sprintf("%s/v1/expense-categories", url),
			IncomeCategories:  fmt.Sprintf("%s/v1/income-categories", url),
			Expenses:          fmt.Sprintf("%s/v1/expenses", url),
			Incomes:           fmt.Sprintf("%s/v1/incomes", url),
		},
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`                                           // Data for the user
	Error *string `json:"error" example:"this username is already taken"` // The error, if any occurred
}

type Token struct {
	AccessToken string    `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.Et9HFtf9R3GEMA0IICOfFMVXY7kkTX1wr4qCyhIf58U"` // Bearer token for the Authorization header
	TokenType   string    `json:"tokenType" example:"bearer"`                                                                                 // Always "bearer"
	ExpiresAt   time.Time `json:"expiresAt" example:"2024-04-02T19:28:44.491514Z"`                                                            // Time the token expires
}

type TokenResponse struct {
	Data  *Token  `json:"data"`                                                  // The issued token
	Error *string `json:"error" example:"the username or the password is wrong"` // The error, if any occurred
}
