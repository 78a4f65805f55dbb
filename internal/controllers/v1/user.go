package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// Lifetime of the tokens issued with the username and password
const tokenTTL = 24 * time.Hour

// Secret the tokens are signed with
var tokenSecret []byte

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed. authenticate is used for
// all routes that need an authenticated user, secret signs
// the tokens issued for users.
func RegisterUserRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc, secret []byte) {
	tokenSecret = secret

	r.OPTIONS("", OptionsUserList)
	r.POST("", CreateUser)

	r.OPTIONS("/token", OptionsUserToken)
	r.POST("/token", CreateUserToken)

	r.OPTIONS("/me", OptionsUserMe)
	r.GET("/me", authenticate, GetUserMe)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/token [options]
func OptionsUserToken(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/me [options]
func OptionsUserMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create user
// @Description	Creates a new user with the default categories
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserCreate	true	"User"
// @Router			/v1/users [post]
func CreateUser(c *gin.Context) {
	var create UserCreate
	err := httputil.BindData(c, &create)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	user, err := models.NewUser(create.Username, create.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Issue token
// @Description	Issues a bearer token for the user with the username and password
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201			{object}	TokenResponse
// @Failure		400			{object}	TokenResponse
// @Failure		401			{object}	TokenResponse
// @Failure		500			{object}	TokenResponse
// @Param			credentials	body		UserCreate	true	"Credentials"
// @Router			/v1/users/token [post]
func CreateUserToken(c *gin.Context) {
	var credentials UserCreate
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	user, err := models.Authenticate(models.DB, credentials.Username, credentials.Password)
	if errors.Is(err, models.ErrCredentialsWrong) || errors.Is(err, models.ErrUserInactive) {
		s := err.Error()
		c.JSON(http.StatusUnauthorized, TokenResponse{
			Error: &s,
		})
		return
	} else if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	expiresAt := time.Now().Add(tokenTTL).In(time.UTC)
	token, err := auth.NewToken(tokenSecret, user.ID, tokenTTL)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, TokenResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Data: &Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}})
}

// @Summary		Get authenticated user
// @Description	Returns the user the bearer token was issued for
// @Tags			Users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/users/me [get]
func GetUserMe(c *gin.Context) {
	data := newUser(c, auth.User(c))
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}
