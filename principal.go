package security

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// AuthPrincipal is an authenticated identity. Instances are built through
// PrincipalBuilder, validated at Build, and never mutated afterwards, so
// they are safe to share across goroutines.
type AuthPrincipal struct {
	id          string
	username    string
	displayName string
	email       string
	roles       map[string]Role
	claims      map[string]Claim
	attributes  map[string]any
	active      bool
	expired     bool
	createdAt   time.Time
	updatedAt   time.Time
}

// ID returns the principal id.
func (p *AuthPrincipal) ID() string { return p.id }

// Username returns the username.
func (p *AuthPrincipal) Username() string { return p.username }

// DisplayName returns the display name, which defaults to the username.
func (p *AuthPrincipal) DisplayName() string { return p.displayName }

// Email returns the email, empty when unset.
func (p *AuthPrincipal) Email() string { return p.email }

// Active reports whether the account is active.
func (p *AuthPrincipal) Active() bool { return p.active }

// Expired reports whether the account is expired.
func (p *AuthPrincipal) Expired() bool { return p.expired }

// CreatedAt returns the account creation time.
func (p *AuthPrincipal) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the account update time.
func (p *AuthPrincipal) UpdatedAt() time.Time { return p.updatedAt }

// Roles returns the principal's roles. The returned slice is a copy.
func (p *AuthPrincipal) Roles() []Role {
	out := make([]Role, 0, len(p.roles))
	for _, r := range p.roles {
		out = append(out, r)
	}
	return out
}

// Role looks up a role by name.
func (p *AuthPrincipal) Role(name string) (Role, bool) {
	r, ok := p.roles[name]
	return r, ok
}

// HasRole reports direct role membership by name.
func (p *AuthPrincipal) HasRole(name string) bool {
	_, ok := p.roles[name]
	return ok
}

// Claim looks up a claim by name.
func (p *AuthPrincipal) Claim(name string) (Claim, bool) {
	c, ok := p.claims[name]
	return c, ok
}

// Claims returns the principal's claims. The returned slice is a copy.
func (p *AuthPrincipal) Claims() []Claim {
	out := make([]Claim, 0, len(p.claims))
	for _, c := range p.claims {
		out = append(out, c)
	}
	return out
}

// Attribute looks up an attribute by name.
func (p *AuthPrincipal) Attribute(name string) (any, bool) {
	v, ok := p.attributes[name]
	return v, ok
}

// Permissions returns the union of permissions across all roles,
// deduplicated by permission name.
func (p *AuthPrincipal) Permissions() []Permission {
	seen := map[string]Permission{}
	for _, r := range p.roles {
		for _, perm := range r.Permissions() {
			seen[perm.Name] = perm
		}
	}
	out := make([]Permission, 0, len(seen))
	for _, perm := range seen {
		out = append(out, perm)
	}
	return out
}

// PrincipalBuilder accumulates principal state and freezes it at Build.
// The builder owns its working state exclusively; Build copies everything
// into the returned value, so later builder mutations never leak into a
// built principal. Calling Build twice with the same state yields equal
// principals.
type PrincipalBuilder struct {
	id          string
	username    string
	displayName string
	email       string
	roles       map[string]Role
	claims      map[string]Claim
	attributes  map[string]any
	active      bool
	expired     bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPrincipalBuilder returns a builder for an active, non-expired principal.
func NewPrincipalBuilder() *PrincipalBuilder {
	return &PrincipalBuilder{
		roles:      map[string]Role{},
		claims:     map[string]Claim{},
		attributes: map[string]any{},
		active:     true,
	}
}

func (b *PrincipalBuilder) WithID(id string) *PrincipalBuilder {
	b.id = id
	return b
}

func (b *PrincipalBuilder) WithUsername(username string) *PrincipalBuilder {
	b.username = username
	return b
}

func (b *PrincipalBuilder) WithDisplayName(displayName string) *PrincipalBuilder {
	b.displayName = displayName
	return b
}

func (b *PrincipalBuilder) WithEmail(email string) *PrincipalBuilder {
	b.email = email
	return b
}

// WithRole adds a role. Roles are keyed by name, last write wins.
func (b *PrincipalBuilder) WithRole(role Role) *PrincipalBuilder {
	b.roles[role.Name()] = role
	return b
}

// WithRoles adds multiple roles.
func (b *PrincipalBuilder) WithRoles(roles ...Role) *PrincipalBuilder {
	for _, r := range roles {
		b.roles[r.Name()] = r
	}
	return b
}

// WithClaim adds a claim. Claims are keyed by name, last write wins.
func (b *PrincipalBuilder) WithClaim(claim Claim) *PrincipalBuilder {
	b.claims[claim.Name] = claim
	return b
}

// WithAttribute adds an arbitrary attribute.
func (b *PrincipalBuilder) WithAttribute(name string, value any) *PrincipalBuilder {
	b.attributes[name] = value
	return b
}

func (b *PrincipalBuilder) WithActive(active bool) *PrincipalBuilder {
	b.active = active
	return b
}

func (b *PrincipalBuilder) WithExpired(expired bool) *PrincipalBuilder {
	b.expired = expired
	return b
}

func (b *PrincipalBuilder) WithCreatedAt(t time.Time) *PrincipalBuilder {
	b.createdAt = t
	return b
}

func (b *PrincipalBuilder) WithUpdatedAt(t time.Time) *PrincipalBuilder {
	b.updatedAt = t
	return b
}

// Build validates required fields and returns the frozen principal.
func (b *PrincipalBuilder) Build() (*AuthPrincipal, error) {
	err := validation.Errors{
		"id":       validation.Validate(b.id, validation.Required),
		"username": validation.Validate(b.username, validation.Required),
	}.Filter()
	if err != nil {
		return nil, errors.Wrap(err, ErrPrincipalInvalid.Category, ErrPrincipalInvalid.Message).
			WithTextCode(ErrPrincipalInvalid.TextCode)
	}

	displayName := b.displayName
	if displayName == "" {
		displayName = b.username
	}

	roles := make(map[string]Role, len(b.roles))
	for k, v := range b.roles {
		roles[k] = v
	}
	claims := make(map[string]Claim, len(b.claims))
	for k, v := range b.claims {
		claims[k] = v
	}
	attributes := make(map[string]any, len(b.attributes))
	for k, v := range b.attributes {
		attributes[k] = v
	}

	return &AuthPrincipal{
		id:          b.id,
		username:    b.username,
		displayName: displayName,
		email:       b.email,
		roles:       roles,
		claims:      claims,
		attributes:  attributes,
		active:      b.active,
		expired:     b.expired,
		createdAt:   b.createdAt,
		updatedAt:   b.updatedAt,
	}, nil
}
