package utils

import (
	"testing"
	"time"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	input := &models.UserClaims{
		UserID:       7,
		Username:     "chantaiman",
		Role:         models.RoleMember,
		TokenVersion: 2,
	}
	access, refresh, err := GenerateTokens(input)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	_, claims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "chantaiman", claims.Username)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.Equal(t, 2, claims.TokenVersion)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenLifetimesAreConfigurable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("JWT_REFRESH_TTL", "48h")

	access, refresh, err := GenerateTokens(&models.UserClaims{UserID: 1})
	require.NoError(t, err)

	_, accessClaims, err := ParseToken(access)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), accessClaims.ExpiresAt.Time, time.Minute)

	_, refreshClaims, err := ParseToken(refresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), refreshClaims.ExpiresAt.Time, time.Minute)
}

func TestGenerateTokensRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Equal(t, ErrSecretNotConfigured, err)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}
