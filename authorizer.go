package security

// Authorizer is the default AuthorizationChecker. It is stateless: every
// answer is computed from the principal's roles and their permissions, so
// a single instance can serve any number of concurrent callers.
type Authorizer struct{}

// Verify interface compliance
var _ AuthorizationChecker = (*Authorizer)(nil)

// NewAuthorizer returns the default permission checker.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// HasPermission reports whether the named permission appears in the union
// of permissions across all of the principal's roles.
func (a *Authorizer) HasPermission(p *AuthPrincipal, permission string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles() {
		if role.HasPermission(permission) {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of the named permissions
// is held.
func (a *Authorizer) HasAnyPermission(p *AuthPrincipal, permissions ...string) bool {
	for _, perm := range permissions {
		if a.HasPermission(p, perm) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every named permission is held.
func (a *Authorizer) HasAllPermissions(p *AuthPrincipal, permissions ...string) bool {
	for _, perm := range permissions {
		if !a.HasPermission(p, perm) {
			return false
		}
	}
	return true
}

// CanAccess reports whether any permission across the principal's roles
// matches the resource/action pair, honoring permission wildcards.
func (a *Authorizer) CanAccess(p *AuthPrincipal, resource, action string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles() {
		for _, perm := range role.Permissions() {
			if perm.Matches(resource, action) {
				return true
			}
		}
	}
	return false
}

// HasRole reports direct role membership by name.
func (a *Authorizer) HasRole(p *AuthPrincipal, role string) bool {
	if p == nil {
		return false
	}
	return p.HasRole(role)
}

// HasAnyRole reports whether at least one of the named roles is held.
func (a *Authorizer) HasAnyRole(p *AuthPrincipal, roles ...string) bool {
	for _, r := range roles {
		if a.HasRole(p, r) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether every named role is held.
func (a *Authorizer) HasAllRoles(p *AuthPrincipal, roles ...string) bool {
	for _, r := range roles {
		if !a.HasRole(p, r) {
			return false
		}
	}
	return true
}
