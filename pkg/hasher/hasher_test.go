package hasher_test

import (
	"testing"

	"github.com/Astemirdum/library-records/pkg/hasher"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	t.Parallel()
	h := hasher.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.True(t, h.Verify("secret123", hash))
	require.False(t, h.Verify("secret124", hash))
	require.False(t, h.Verify("secret123", "not-a-hash"))
}
