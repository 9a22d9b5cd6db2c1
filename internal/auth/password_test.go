package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)

	require.True(t, CheckPassword(hashed, "s3cret"))
	require.False(t, CheckPassword(hashed, "wrong"))
	require.False(t, CheckPassword("not-a-hash", "s3cret"))
}
