package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 24 * time.Hour
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name   string
		userID string
		email  string
		role   string
	}{
		{
			name:   "regular user",
			userID: "550e8400-e29b-41d4-a716-446655440000",
			email:  "user@example.com",
			role:   "user",
		},
		{
			name:   "admin user",
			userID: "6fa459ea-ee8a-3ca4-894e-db77e160355e",
			email:  "admin@example.com",
			role:   "admin",
		},
		{
			name:   "email with plus sign",
			userID: "16fd2706-8baf-433b-82eb-8c7fada847da",
			email:  "user+tag@example.com",
			role:   "user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.email, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID())
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("correct_secret", 24*time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "malformed token",
			token: func(_ *testing.T) string {
				return "not.a.jwt"
			},
		},
		{
			name: "empty token",
			token: func(_ *testing.T) string {
				return ""
			},
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := NewJWTMaker("another_secret", 24*time.Hour)
				token, err := other.GenerateToken("some-uid", "user@example.com", "user")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := NewJWTMaker("correct_secret", -time.Minute)
				token, err := expired.GenerateToken("some-uid", "user@example.com", "user")
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token(t))
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ClaimsBoundToIssuedUser(t *testing.T) {
	maker := NewJWTMaker("correct_secret", 24*time.Hour)

	tokenA, err := maker.GenerateToken("user-a", "a@example.com", "user")
	require.NoError(t, err)
	tokenB, err := maker.GenerateToken("user-b", "b@example.com", "user")
	require.NoError(t, err)

	claimsA, err := maker.ParseToken(tokenA)
	require.NoError(t, err)
	claimsB, err := maker.ParseToken(tokenB)
	require.NoError(t, err)

	// токен пользователя A никогда не даёт данные пользователя B
	assert.Equal(t, "user-a", claimsA.UserID())
	assert.Equal(t, "user-b", claimsB.UserID())
	assert.NotEqual(t, claimsA.UserID(), claimsB.UserID())
	assert.NotEqual(t, claimsA.Email, claimsB.Email)
}
