package security_test

import (
	"testing"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	t.Run("holds permissions by name", func(t *testing.T) {
		role := security.NewRole("EDITOR",
			security.NewPermission("doc:write"),
			security.NewPermission("doc:read"),
		)

		assert.Equal(t, "EDITOR", role.Name())
		assert.True(t, role.HasPermission("doc:write"))
		assert.False(t, role.HasPermission("user:delete"))
		assert.Len(t, role.Permissions(), 2)
	})

	t.Run("permission set is fixed after construction", func(t *testing.T) {
		role := security.NewRole("EDITOR", security.NewPermission("doc:write"))

		perms := role.Permissions()
		perms[0] = security.NewPermission("doc:delete")

		assert.True(t, role.HasPermission("doc:write"))
		assert.False(t, role.HasPermission("doc:delete"))
	})

	t.Run("parent role names are metadata only", func(t *testing.T) {
		role := security.NewRoleWithParents("EDITOR", []string{"VIEWER"},
			security.NewPermission("doc:write"),
		)

		assert.ElementsMatch(t, []string{"VIEWER"}, role.ParentRoleNames())
		// no inheritance: the parent's permissions never appear
		assert.False(t, role.HasPermission("doc:read"))
	})

	t.Run("equal compares by name", func(t *testing.T) {
		a := security.NewRole("ADMIN", security.NewPermission("user:delete"))
		b := security.NewRole("ADMIN")

		assert.True(t, a.Equal(b))
	})

	t.Run("description is optional", func(t *testing.T) {
		role := security.NewRole("ADMIN").WithDescription("full access")

		assert.Equal(t, "full access", role.Description())
	})
}
