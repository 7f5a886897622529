package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_SaltedButVerifiable(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	second, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "s3cret-pass")
	assert.True(t, h.Verify(first, "s3cret-pass"))
	assert.True(t, h.Verify(second, "s3cret-pass"))
	assert.False(t, h.Verify(first, "s3cret-pasS"))
	assert.False(t, h.Verify(first, ""))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("not-a-bcrypt-hash", "whatever"))
	assert.False(t, h.Verify("", "whatever"))
}

func TestNewPasswordHasher_CostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost)
	assert.Equal(t, 12, NewPasswordHasher(12).Cost)

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
