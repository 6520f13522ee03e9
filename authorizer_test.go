package security_test

import (
	"testing"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer_Permissions(t *testing.T) {
	admin := security.NewRole("ADMIN", security.NewPermission("user:delete"))
	editor := security.NewRole("EDITOR", security.NewPermission("doc:write"))

	p, err := security.NewPrincipalBuilder().
		WithID("u1").
		WithUsername("alice").
		WithRoles(admin, editor).
		Build()
	require.NoError(t, err)

	checker := security.NewAuthorizer()

	t.Run("permission union across roles", func(t *testing.T) {
		assert.True(t, checker.HasPermission(p, "user:delete"))
		assert.True(t, checker.HasPermission(p, "doc:write"))
		assert.False(t, checker.HasPermission(p, "doc:read"))
	})

	t.Run("all and any over the union", func(t *testing.T) {
		assert.True(t, checker.HasAllPermissions(p, "user:delete", "doc:write"))
		assert.False(t, checker.HasAllPermissions(p, "user:delete", "doc:read"))
		assert.True(t, checker.HasAnyPermission(p, "doc:read", "doc:write"))
		assert.False(t, checker.HasAnyPermission(p, "doc:read"))
	})

	t.Run("nil principal holds nothing", func(t *testing.T) {
		assert.False(t, checker.HasPermission(nil, "user:delete"))
		assert.False(t, checker.HasRole(nil, "ADMIN"))
		assert.False(t, checker.CanAccess(nil, "doc", "read"))
	})
}

func TestAuthorizer_Roles(t *testing.T) {
	p, err := security.NewPrincipalBuilder().
		WithID("u1").
		WithUsername("alice").
		WithRoles(security.NewRole("ADMIN"), security.NewRole("EDITOR")).
		Build()
	require.NoError(t, err)

	checker := security.NewAuthorizer()

	assert.True(t, checker.HasRole(p, "ADMIN"))
	assert.False(t, checker.HasRole(p, "VIEWER"))
	assert.True(t, checker.HasAnyRole(p, "VIEWER", "EDITOR"))
	assert.False(t, checker.HasAnyRole(p, "VIEWER", "OWNER"))
	assert.True(t, checker.HasAllRoles(p, "ADMIN", "EDITOR"))
	assert.False(t, checker.HasAllRoles(p, "ADMIN", "VIEWER"))
}

func TestAuthorizer_CanAccess(t *testing.T) {
	viewer := security.NewRole("VIEWER",
		security.Permission{Name: "read-all", Action: "read"},
	)
	docAdmin := security.NewRole("DOC_ADMIN",
		security.Permission{Name: "doc-all", Resource: "doc"},
	)

	p, err := security.NewPrincipalBuilder().
		WithID("u1").
		WithUsername("alice").
		WithRoles(viewer, docAdmin).
		Build()
	require.NoError(t, err)

	checker := security.NewAuthorizer()

	assert.True(t, checker.CanAccess(p, "doc", "read"))
	assert.True(t, checker.CanAccess(p, "user", "read"))
	assert.True(t, checker.CanAccess(p, "doc", "delete"))
	assert.False(t, checker.CanAccess(p, "user", "delete"))
}
