package auth

import (
	"testing"

	"business-tracker-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(1, "alice", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(1), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_UnknownRole(t *testing.T) {
	token, err := GenerateToken(1, "alice", models.Role("superadmin"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.Error(t, err)
}
