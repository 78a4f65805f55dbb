package test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/auth"
	"github.com/stretchr/testify/require"
)

// AuthHeader returns the Authorization header for the user with a token
// signed with the secret from JWT_SECRET.
func AuthHeader(t *testing.T, userID uuid.UUID) map[string]string {
	secret, ok := os.LookupEnv("JWT_SECRET")
	require.True(t, ok, "environment variable JWT_SECRET must be set")

	token, err := auth.NewToken([]byte(secret), userID, time.Hour)
	require.Nil(t, err, "token could not be signed")

	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)}
}
