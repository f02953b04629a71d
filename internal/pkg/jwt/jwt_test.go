package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken_RoundTrip(t *testing.T) {
	// Setup
	svc := NewJWTService("test-secret", time.Hour)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	// Act
	token, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@factory.test", user.RoleAdmin)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour).Unix(), expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestNewJWTService_DefaultExpiration(t *testing.T) {
	svc := NewJWTService("secret", 0)
	assert.Equal(t, time.Hour, svc.accessTokenExpiration)
}

func TestClaimsFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-9",
		"email":   "sup@factory.test",
		"role":    "supervisor",
	})
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	claims, err := ClaimsFromContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-9", Email: "sup@factory.test", Role: user.RoleSupervisor}, claims)
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)

	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{"role": "admin"})
	require.NoError(t, err)

	_, err = ClaimsFromContext(jwtauth.NewContext(context.Background(), token, nil))
	assert.ErrorIs(t, err, ErrMissingClaims)
}
