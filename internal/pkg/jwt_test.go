package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairRoundTrip(t *testing.T) {
	pair, err := GeneratePair("u1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	// Tokens are not interchangeable between roles.
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)

	fresh, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)
	claims, err = ParseAccess(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
