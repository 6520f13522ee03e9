package security_test

import (
	"testing"

	"github.com/goliatone/go-security"
	"github.com/stretchr/testify/assert"
)

func TestPermission_Matches(t *testing.T) {
	t.Run("unscoped permission matches any resource and action", func(t *testing.T) {
		p := security.NewPermission("p")

		assert.True(t, p.Matches("doc", "read"))
		assert.True(t, p.Matches("user", "delete"))
	})

	t.Run("scoped permission matches its own resource and action", func(t *testing.T) {
		p := security.NewScopedPermission("p", "doc", "read")

		assert.True(t, p.Matches("doc", "read"))
		assert.False(t, p.Matches("doc", "write"))
		assert.False(t, p.Matches("user", "read"))
	})

	t.Run("resource wildcard with fixed action", func(t *testing.T) {
		p := security.Permission{Name: "read-anything", Action: "read"}

		assert.True(t, p.Matches("doc", "read"))
		assert.True(t, p.Matches("user", "read"))
		assert.False(t, p.Matches("doc", "write"))
	})

	t.Run("action wildcard with fixed resource", func(t *testing.T) {
		p := security.Permission{Name: "doc-anything", Resource: "doc"}

		assert.True(t, p.Matches("doc", "read"))
		assert.True(t, p.Matches("doc", "write"))
		assert.False(t, p.Matches("user", "read"))
	})
}

func TestPermission_IdentityByName(t *testing.T) {
	t.Run("equal compares by name only", func(t *testing.T) {
		a := security.NewScopedPermission("p", "doc", "read")
		b := security.NewScopedPermission("p", "user", "delete")

		assert.True(t, a.Equal(b))
	})

	t.Run("same-named permissions collide in a role", func(t *testing.T) {
		first := security.NewScopedPermission("p", "doc", "read")
		second := security.NewScopedPermission("p", "user", "delete")

		role := security.NewRole("ADMIN", first, second)

		assert.Len(t, role.Permissions(), 1)
		kept, ok := role.Permission("p")
		assert.True(t, ok)
		assert.Equal(t, "user", kept.Resource)
	})
}
