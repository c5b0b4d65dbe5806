package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("test-secret", 7, 3, 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAuth("Bearer "+tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, float64(3), claims["role_id"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret-a", 1, 2, 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "secret-b")
	require.Error(t, err)
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
