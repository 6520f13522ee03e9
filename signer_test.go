package security_test

import (
	"testing"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSigner(t *testing.T) {
	t.Run("sign and verify round-trip", func(t *testing.T) {
		signer, err := security.NewHMACSigner("HS256", []byte("key"))
		require.NoError(t, err)
		assert.Equal(t, "HS256", signer.Algorithm())

		payload := []byte("header.payload")
		sig, err := signer.Sign(payload)
		require.NoError(t, err)
		require.NotEmpty(t, sig)

		assert.NoError(t, signer.Verify(payload, sig))
	})

	t.Run("verification fails for a different key", func(t *testing.T) {
		signer := security.MustHMACSigner("HS256", []byte("key"))
		other := security.MustHMACSigner("HS256", []byte("other"))

		payload := []byte("header.payload")
		sig, err := signer.Sign(payload)
		require.NoError(t, err)

		err = other.Verify(payload, sig)
		require.Error(t, err)
		assert.Equal(t, security.TextCodeTokenInvalidSignature, security.ErrorTextCode(err))
	})

	t.Run("supports the HS family", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			signer, err := security.NewHMACSigner(alg, []byte("key"))
			require.NoError(t, err)
			assert.Equal(t, alg, signer.Algorithm())
		}
	})

	t.Run("rejects empty keys and foreign algorithms", func(t *testing.T) {
		_, err := security.NewHMACSigner("HS256", nil)
		assert.Error(t, err)

		_, err = security.NewHMACSigner("RS256", []byte("key"))
		assert.Error(t, err)

		_, err = security.NewHMACSigner("nope", []byte("key"))
		assert.Error(t, err)
	})
}
