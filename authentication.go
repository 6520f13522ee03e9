package security

import (
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Authentication is the immutable result of a successful authentication
// attempt. It holds the principal, the method that authenticated it, the
// authority set derived from the principal's roles and permissions, and
// the validity window. Instances are created per attempt and discarded
// once the token or session backing them is gone.
type Authentication struct {
	principal       *AuthPrincipal
	method          string
	authorities     map[string]struct{}
	claims          map[string]Claim
	attributes      map[string]any
	authenticated   bool
	authenticatedAt time.Time
	expiresAt       time.Time
	sessionID       string
	clientIP        string
	userAgent       string
}

// Principal returns the authenticated principal.
func (a *Authentication) Principal() *AuthPrincipal { return a.principal }

// Method returns the authentication method, e.g. "password" or "token".
func (a *Authentication) Method() string { return a.method }

// Authenticated reports whether the attempt succeeded.
func (a *Authentication) Authenticated() bool { return a.authenticated }

// AuthenticatedAt returns when the authentication happened.
func (a *Authentication) AuthenticatedAt() time.Time { return a.authenticatedAt }

// ExpiresAt returns the end of the validity window, zero when unbounded.
func (a *Authentication) ExpiresAt() time.Time { return a.expiresAt }

// SessionID returns the session context identifier, empty when unset.
func (a *Authentication) SessionID() string { return a.sessionID }

// ClientIP returns the client address, empty when unset.
func (a *Authentication) ClientIP() string { return a.clientIP }

// UserAgent returns the client user agent, empty when unset.
func (a *Authentication) UserAgent() string { return a.userAgent }

// IsExpired reports whether a validity window was set and has passed.
func (a *Authentication) IsExpired() bool {
	return !a.expiresAt.IsZero() && time.Now().After(a.expiresAt)
}

// HasAuthority reports membership in the derived authority set.
func (a *Authentication) HasAuthority(authority string) bool {
	_, ok := a.authorities[authority]
	return ok
}

// Authorities returns the authority set sorted for stable iteration.
func (a *Authentication) Authorities() []string {
	out := make([]string, 0, len(a.authorities))
	for auth := range a.authorities {
		out = append(out, auth)
	}
	sort.Strings(out)
	return out
}

// Claim looks up an authentication claim by name.
func (a *Authentication) Claim(name string) (Claim, bool) {
	c, ok := a.claims[name]
	return c, ok
}

// Attribute looks up an authentication attribute by name.
func (a *Authentication) Attribute(name string) (any, bool) {
	v, ok := a.attributes[name]
	return v, ok
}

// RoleAuthority normalizes a role name to its authority form, ROLE_ plus
// the upper-cased name.
func RoleAuthority(roleName string) string {
	return "ROLE_" + strings.ToUpper(roleName)
}

// PermissionAuthority normalizes a permission name to its authority form,
// the upper-cased name.
func PermissionAuthority(permissionName string) string {
	return strings.ToUpper(permissionName)
}

// AuthenticationBuilder accumulates authentication state and freezes it at
// Build. Build derives the authority set from the principal's roles and
// permissions exactly once; authorities added through WithAuthority are
// merged in. Calling Build twice with the same state yields equal values.
type AuthenticationBuilder struct {
	principal       *AuthPrincipal
	method          string
	authorities     map[string]struct{}
	claims          map[string]Claim
	attributes      map[string]any
	authenticated   bool
	authenticatedAt time.Time
	expiresAt       time.Time
	sessionID       string
	clientIP        string
	userAgent       string
}

// NewAuthenticationBuilder returns a builder for an authenticated result.
func NewAuthenticationBuilder() *AuthenticationBuilder {
	return &AuthenticationBuilder{
		authorities:   map[string]struct{}{},
		claims:        map[string]Claim{},
		attributes:    map[string]any{},
		authenticated: true,
	}
}

func (b *AuthenticationBuilder) WithPrincipal(p *AuthPrincipal) *AuthenticationBuilder {
	b.principal = p
	return b
}

func (b *AuthenticationBuilder) WithMethod(method string) *AuthenticationBuilder {
	b.method = method
	return b
}

// WithAuthority adds an explicit authority on top of the derived set.
func (b *AuthenticationBuilder) WithAuthority(authority string) *AuthenticationBuilder {
	b.authorities[authority] = struct{}{}
	return b
}

// WithAuthorities adds multiple explicit authorities.
func (b *AuthenticationBuilder) WithAuthorities(authorities ...string) *AuthenticationBuilder {
	for _, a := range authorities {
		b.authorities[a] = struct{}{}
	}
	return b
}

func (b *AuthenticationBuilder) WithClaim(claim Claim) *AuthenticationBuilder {
	b.claims[claim.Name] = claim
	return b
}

func (b *AuthenticationBuilder) WithAttribute(name string, value any) *AuthenticationBuilder {
	b.attributes[name] = value
	return b
}

func (b *AuthenticationBuilder) WithAuthenticated(authenticated bool) *AuthenticationBuilder {
	b.authenticated = authenticated
	return b
}

func (b *AuthenticationBuilder) WithAuthenticatedAt(t time.Time) *AuthenticationBuilder {
	b.authenticatedAt = t
	return b
}

func (b *AuthenticationBuilder) WithExpiresAt(t time.Time) *AuthenticationBuilder {
	b.expiresAt = t
	return b
}

func (b *AuthenticationBuilder) WithSessionID(sessionID string) *AuthenticationBuilder {
	b.sessionID = sessionID
	return b
}

func (b *AuthenticationBuilder) WithClientIP(clientIP string) *AuthenticationBuilder {
	b.clientIP = clientIP
	return b
}

func (b *AuthenticationBuilder) WithUserAgent(userAgent string) *AuthenticationBuilder {
	b.userAgent = userAgent
	return b
}

// Build validates required fields, derives authorities, and returns the
// frozen value.
func (b *AuthenticationBuilder) Build() (*Authentication, error) {
	err := validation.Errors{
		"method": validation.Validate(b.method, validation.Required),
	}.Filter()
	if err == nil && b.principal == nil {
		err = validation.Errors{
			"principal": errors.New("principal is required", errors.CategoryValidation),
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid authentication").
			WithTextCode(TextCodeValidationMissingField)
	}

	authorities := make(map[string]struct{}, len(b.authorities))
	for a := range b.authorities {
		authorities[a] = struct{}{}
	}
	for _, role := range b.principal.Roles() {
		authorities[RoleAuthority(role.Name())] = struct{}{}
		for _, perm := range role.Permissions() {
			authorities[PermissionAuthority(perm.Name)] = struct{}{}
		}
	}

	claims := make(map[string]Claim, len(b.claims))
	for k, v := range b.claims {
		claims[k] = v
	}
	attributes := make(map[string]any, len(b.attributes))
	for k, v := range b.attributes {
		attributes[k] = v
	}

	// Defaulting is recorded on the builder so repeated builds of the
	// same state produce equal values.
	if b.authenticatedAt.IsZero() {
		b.authenticatedAt = time.Now()
	}

	return &Authentication{
		principal:       b.principal,
		method:          b.method,
		authorities:     authorities,
		claims:          claims,
		attributes:      attributes,
		authenticated:   b.authenticated,
		authenticatedAt: b.authenticatedAt,
		expiresAt:       b.expiresAt,
		sessionID:       b.sessionID,
		clientIP:        b.clientIP,
		userAgent:       b.userAgent,
	}, nil
}
