package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	never := func(context.Context, string) (bool, error) { return false, nil }

	for i := 0; i < 100; i++ {
		code, err := generateCode(context.Background(), rng, never)
		require.NoError(t, err)
		require.Len(t, code, codeLength)
		require.NoError(t, validateCode(code))
	}
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	calls := 0
	exists := func(_ context.Context, code string) (bool, error) {
		calls++
		return calls <= 3, nil // first three candidates taken
	}

	code, err := generateCode(context.Background(), rng, exists)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 4, calls)
}

func TestGenerateCodeBoundedRetries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	always := func(context.Context, string) (bool, error) { return true, nil }

	_, err := generateCode(context.Background(), rng, always)
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode("  abcd "))
	assert.Equal(t, "WXYZ", NormalizeCode("wXyZ"))
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, validateCode("ABCD"))
	assert.ErrorIs(t, validateCode("ABC"), ErrValidation)
	assert.ErrorIs(t, validateCode("ABCDE"), ErrValidation)
	assert.ErrorIs(t, validateCode("AB1D"), ErrValidation)
}
