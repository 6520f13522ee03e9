package security_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPrincipal(t *testing.T, roles ...security.Role) *security.AuthPrincipal {
	t.Helper()
	p, err := security.NewPrincipalBuilder().
		WithID("u1").
		WithUsername("alice").
		WithRoles(roles...).
		Build()
	require.NoError(t, err)
	return p
}

func TestAuthenticationBuilder_Build(t *testing.T) {
	t.Run("requires principal and method", func(t *testing.T) {
		_, err := security.NewAuthenticationBuilder().Build()
		require.Error(t, err)

		_, err = security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t)).
			Build()
		require.Error(t, err)

		_, err = security.NewAuthenticationBuilder().
			WithMethod("password").
			Build()
		require.Error(t, err)

		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t)).
			WithMethod("password").
			Build()
		require.NoError(t, err)
		assert.True(t, auth.Authenticated())
		assert.Equal(t, "password", auth.Method())
	})

	t.Run("building twice yields equal authentications", func(t *testing.T) {
		builder := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t, security.NewRole("ADMIN"))).
			WithMethod("password").
			WithSessionID("s1")

		first, err := builder.Build()
		require.NoError(t, err)
		second, err := builder.Build()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestAuthentication_AuthorityDerivation(t *testing.T) {
	admin := security.NewRole("admin",
		security.NewPermission("user:delete"),
		security.NewPermission("user:create"),
	)
	editor := security.NewRole("editor", security.NewPermission("doc:write"))

	t.Run("derives role and permission authorities", func(t *testing.T) {
		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t, admin, editor)).
			WithMethod("password").
			Build()
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			"ROLE_ADMIN", "ROLE_EDITOR",
			"USER:DELETE", "USER:CREATE", "DOC:WRITE",
		}, auth.Authorities())
	})

	t.Run("merges explicitly added authorities", func(t *testing.T) {
		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t, editor)).
			WithMethod("password").
			WithAuthority("SCOPE_API").
			Build()
		require.NoError(t, err)

		assert.True(t, auth.HasAuthority("SCOPE_API"))
		assert.True(t, auth.HasAuthority("ROLE_EDITOR"))
		assert.True(t, auth.HasAuthority("DOC:WRITE"))
	})
}

func TestAuthentication_Expiry(t *testing.T) {
	t.Run("no expiry window means never expired", func(t *testing.T) {
		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t)).
			WithMethod("password").
			Build()
		require.NoError(t, err)

		assert.False(t, auth.IsExpired())
	})

	t.Run("past window reads expired", func(t *testing.T) {
		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t)).
			WithMethod("password").
			WithExpiresAt(time.Now().Add(-time.Minute)).
			Build()
		require.NoError(t, err)

		assert.True(t, auth.IsExpired())
	})

	t.Run("future window reads valid", func(t *testing.T) {
		auth, err := security.NewAuthenticationBuilder().
			WithPrincipal(buildPrincipal(t)).
			WithMethod("password").
			WithExpiresAt(time.Now().Add(time.Hour)).
			Build()
		require.NoError(t, err)

		assert.False(t, auth.IsExpired())
	})
}

func TestAuthentication_Context(t *testing.T) {
	auth, err := security.NewAuthenticationBuilder().
		WithPrincipal(buildPrincipal(t)).
		WithMethod("token").
		WithSessionID("sess-1").
		WithClientIP("10.0.0.1").
		WithUserAgent("cli/1.0").
		WithClaim(security.NewClaim("amr", "pwd")).
		WithAttribute("request_id", "r-1").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "sess-1", auth.SessionID())
	assert.Equal(t, "10.0.0.1", auth.ClientIP())
	assert.Equal(t, "cli/1.0", auth.UserAgent())

	c, ok := auth.Claim("amr")
	require.True(t, ok)
	assert.Equal(t, "pwd", c.Value)

	v, ok := auth.Attribute("request_id")
	require.True(t, ok)
	assert.Equal(t, "r-1", v)
}
