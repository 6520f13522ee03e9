package security_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTokenValidator(t *testing.T) {
	service, _ := newTestTokenService(t, time.Hour)
	validator := security.ServiceTokenValidator(service)

	token, err := service.IssueToken(testPrincipal(t))
	require.NoError(t, err)

	claims, err := validator.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["sub"])

	_, err = validator.Validate("garbage")
	assert.True(t, security.IsTokenMalformedError(err))
}

func TestTokenValidatorFunc(t *testing.T) {
	t.Run("adapts a function", func(t *testing.T) {
		v := security.TokenValidatorFunc(func(token string) (security.TokenClaims, error) {
			return security.TokenClaims{"sub": token}, nil
		})

		claims, err := v.Validate("u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", claims["sub"])
	})

	t.Run("nil func reads malformed", func(t *testing.T) {
		var v security.TokenValidatorFunc
		_, err := v.Validate("anything")
		assert.True(t, security.IsTokenMalformedError(err))
	})
}

func TestMultiTokenValidator(t *testing.T) {
	primary, _ := newTestTokenService(t, time.Hour)
	secondary := security.NewTokenService(
		security.MustHMACSigner("HS256", []byte("secondary-key")),
		time.Hour, "other-issuer", nil, nil,
	)

	multi := security.NewMultiTokenValidator(
		nil,
		security.ServiceTokenValidator(primary),
		security.ServiceTokenValidator(secondary),
	)

	t.Run("accepts tokens from the first service", func(t *testing.T) {
		token, err := primary.IssueToken(testPrincipal(t))
		require.NoError(t, err)

		claims, err := multi.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims["sub"])
	})

	t.Run("falls through signature failures to later validators", func(t *testing.T) {
		token, err := secondary.IssueToken(testPrincipal(t))
		require.NoError(t, err)

		claims, err := multi.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "other-issuer", claims["iss"])
	})

	t.Run("stops on non-signature failures", func(t *testing.T) {
		expired, err := primary.IssueTokenWithExpiration(testPrincipal(t), 0)
		require.NoError(t, err)

		_, err = multi.Validate(expired)
		assert.True(t, security.IsTokenExpiredError(err))
	})

	t.Run("returns the last failure when nothing matches", func(t *testing.T) {
		_, err := multi.Validate("garbage")
		assert.True(t, security.IsTokenMalformedError(err))
	})

	t.Run("empty composite reads malformed", func(t *testing.T) {
		empty := security.NewMultiTokenValidator()
		_, err := empty.Validate("anything")
		assert.True(t, security.IsTokenMalformedError(err))
	})
}
