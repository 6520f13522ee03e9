package security

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// AuthenticationManager authenticates inbound requests into Authentications.
// Implementations must be stateless and safe for concurrent use.
type AuthenticationManager interface {
	// Authenticate verifies the request and returns the resulting
	// Authentication, or a typed error on failure.
	Authenticate(ctx context.Context, req *AuthenticationRequest) (*Authentication, error)

	// Supports reports whether this manager handles the given request type.
	Supports(requestType string) bool

	// SupportedTypes lists the request types this manager handles.
	SupportedTypes() []string

	// Validate performs structural validation of the request without
	// authenticating. It must have no side effects.
	Validate(req *AuthenticationRequest) error
}

// AuthorizationChecker answers role/permission/resource-action questions
// against a principal.
type AuthorizationChecker interface {
	HasPermission(p *AuthPrincipal, permission string) bool
	HasAnyPermission(p *AuthPrincipal, permissions ...string) bool
	HasAllPermissions(p *AuthPrincipal, permissions ...string) bool
	CanAccess(p *AuthPrincipal, resource, action string) bool
	HasRole(p *AuthPrincipal, role string) bool
	HasAnyRole(p *AuthPrincipal, roles ...string) bool
	HasAllRoles(p *AuthPrincipal, roles ...string) bool
}

// TokenService issues, validates, parses, and refreshes signed tokens
// carrying principal claims. Tokens are self-contained; no server-side
// lookup is needed to verify one.
type TokenService interface {
	// IssueToken signs a token derived from the principal using the
	// service's default expiration.
	IssueToken(p *AuthPrincipal) (string, error)

	// IssueTokenWithExpiration signs a token derived from the principal.
	// A zero ttl produces a token that is expired on arrival.
	IssueTokenWithExpiration(p *AuthPrincipal, ttl time.Duration) (string, error)

	// IssueClaims signs a token carrying the given custom claims.
	IssueClaims(claims map[string]any, ttl time.Duration) (string, error)

	// ValidateToken reports whether the token parses, its signature
	// verifies, and it has not expired. It never returns an error.
	ValidateToken(token string) bool

	// ParseToken verifies the token and returns its full claim map.
	ParseToken(token string) (TokenClaims, error)

	// GetClaim reads a single claim from a verified token. The boolean
	// reports whether the claim exists; parse failures read as not found.
	GetClaim(token, name string) (any, bool)

	// Subject returns the sub claim of a verified token.
	Subject(token string) (string, error)

	// ExpirationTime returns the exp claim of a verified token.
	ExpirationTime(token string) (time.Time, error)

	// IsTokenExpired reports whether the token is past its expiration.
	// Any parse or verification failure reads as expired.
	IsTokenExpired(token string) bool

	// RefreshToken re-issues a valid token with a fresh expiration and
	// token id, preserving every other claim verbatim.
	RefreshToken(token string) (string, error)

	// RevokeToken marks the token as revoked. Without a revocation store
	// this is a no-op: tokens are stateless.
	RevokeToken(token string) error

	// IsRevoked reports whether the token was revoked. Without a
	// revocation store it always returns false.
	IsRevoked(token string) bool
}

// RevocationStore is the denylist extension point behind RevokeToken and
// IsRevoked. The package ships no implementation.
type RevocationStore interface {
	Revoke(tokenID string, expiresAt time.Time) error
	Contains(tokenID string) bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SECURITY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SECURITY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SECURITY "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
