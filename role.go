package security

// Role bundles permissions under a name. Identity is by Name only. The
// permission set is fixed at construction; duplicate permission names
// collapse to the last one given.
//
// ParentRoleNames is carried as declared metadata. Nothing in this package
// resolves a role hierarchy: authority derivation and permission
// aggregation consult only the role's own permissions.
type Role struct {
	name            string
	description     string
	permissions     map[string]Permission
	parentRoleNames map[string]struct{}
}

// NewRole creates a role with the given permissions.
func NewRole(name string, permissions ...Permission) Role {
	return NewRoleWithParents(name, nil, permissions...)
}

// NewRoleWithParents creates a role that declares parent role names.
func NewRoleWithParents(name string, parentRoleNames []string, permissions ...Permission) Role {
	perms := make(map[string]Permission, len(permissions))
	for _, p := range permissions {
		perms[p.Name] = p
	}

	var parents map[string]struct{}
	if len(parentRoleNames) > 0 {
		parents = make(map[string]struct{}, len(parentRoleNames))
		for _, n := range parentRoleNames {
			parents[n] = struct{}{}
		}
	}

	return Role{
		name:            name,
		permissions:     perms,
		parentRoleNames: parents,
	}
}

// WithDescription returns a copy of the role with a description set.
func (r Role) WithDescription(description string) Role {
	r.description = description
	return r
}

// Name returns the role name.
func (r Role) Name() string {
	return r.name
}

// Description returns the role description.
func (r Role) Description() string {
	return r.description
}

// HasPermission reports whether the role holds a permission by name.
func (r Role) HasPermission(name string) bool {
	_, ok := r.permissions[name]
	return ok
}

// Permission looks up a permission by name.
func (r Role) Permission(name string) (Permission, bool) {
	p, ok := r.permissions[name]
	return p, ok
}

// Permissions returns the role's permissions. The returned slice is a copy.
func (r Role) Permissions() []Permission {
	out := make([]Permission, 0, len(r.permissions))
	for _, p := range r.permissions {
		out = append(out, p)
	}
	return out
}

// ParentRoleNames returns the declared parent role names. The returned
// slice is a copy.
func (r Role) ParentRoleNames() []string {
	out := make([]string, 0, len(r.parentRoleNames))
	for n := range r.parentRoleNames {
		out = append(out, n)
	}
	return out
}

// Equal compares roles by name.
func (r Role) Equal(other Role) bool {
	return r.name == other.name
}

func (r Role) String() string {
	return r.name
}
