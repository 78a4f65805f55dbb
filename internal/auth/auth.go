package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"gorm.io/gorm"
)

type Context string

// ContextUser is the key for the authenticated user in the gin context.
const ContextUser Context = "pl-backend-user"

var (
	ErrTokenMissing = errors.New("the request must contain a bearer token in the Authorization header")
	ErrTokenInvalid = errors.New("the bearer token is invalid or expired")
	ErrUserUnknown  = errors.New("the user of the bearer token does not exist")
)

type httpError struct {
	Error string `json:"error" example:"the bearer token is invalid or expired"`
}

// NewToken issues a token for the user. Tokens are usually issued by
// the identity provider, this is used for tooling and tests.
func NewToken(secret []byte, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(secret)
}

// ParseToken verifies the token and returns the user ID from its subject.
func ParseToken(secret []byte, tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, errors.Join(ErrTokenInvalid, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Join(ErrTokenInvalid, err)
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.Join(ErrTokenInvalid, err)
	}

	return id, nil
}

// Middleware authenticates requests with the bearer token in the
// Authorization header and stores the user in the context.
func Middleware(secret []byte, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, tokenString, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrTokenMissing.Error()})
			return
		}

		id, err := ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrTokenInvalid.Error()})
			return
		}

		var user models.User
		err = db.Where("id = ?", id).Take(&user).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrUserUnknown.Error()})
			return
		} else if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpError{Error: err.Error()})
			return
		}

		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: models.ErrUserInactive.Error()})
			return
		}

		c.Set(string(ContextUser), user)
		c.Next()
	}
}

// User returns the authenticated user. It must only be called in
// handlers behind Middleware.
func User(c *gin.Context) models.User {
	return c.MustGet(string(ContextUser)).(models.User)
}
