package utils

import (
	"testing"
	"time"

	"usercenter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	claims := &models.UserClaims{
		UserID:      7,
		Role:        "user",
		Permissions: models.GetDefaultPermissions("user"),
	}

	token, err := GenerateToken(claims, "secret", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), parsed.UserID)
	assert.True(t, parsed.HasPermission(models.PermissionWalletWrite))

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken(token, "other")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := GenerateToken(claims, "secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(expired, "secret")
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := GenerateToken(claims, "", time.Hour)
		assert.Error(t, err)
	})
}
