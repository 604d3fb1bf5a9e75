package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)

	require.NoError(t, ComparePassword(hashed, "s3cret-pass"))
	require.Error(t, ComparePassword(hashed, "wrong-pass"))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
