package security

// Permission is a named capability, optionally scoped to a resource and an
// action. Identity is by Name only: two permissions with the same name are
// the same permission regardless of scope, so sets keyed by name collapse
// them. That is intentional identity semantics, not value semantics.
type Permission struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// NewPermission creates an unscoped permission.
func NewPermission(name string) Permission {
	return Permission{Name: name}
}

// NewScopedPermission creates a permission scoped to a resource and action.
func NewScopedPermission(name, resource, action string) Permission {
	return Permission{Name: name, Resource: resource, Action: action}
}

// Matches reports whether this permission grants the given resource/action
// pair. An empty Resource or Action on the permission is a wildcard for
// that dimension.
func (p Permission) Matches(resource, action string) bool {
	if p.Resource != "" && p.Resource != resource {
		return false
	}
	if p.Action != "" && p.Action != action {
		return false
	}
	return true
}

// Equal compares permissions by name.
func (p Permission) Equal(other Permission) bool {
	return p.Name == other.Name
}

func (p Permission) String() string {
	return p.Name
}
