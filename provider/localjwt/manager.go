package localjwt

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-security"
	"github.com/google/uuid"
)

// Claim names consumed while rebuilding a principal from token claims.
// Everything else on the token becomes a principal claim.
var identityClaimNames = map[string]struct{}{
	"sub": {}, "iss": {}, "aud": {}, "iat": {}, "exp": {}, "nbf": {}, "jti": {},
	"username": {}, "displayName": {}, "email": {}, "active": {},
	"createdAt": {}, "updatedAt": {}, "roles": {},
}

// Manager authenticates password and token requests. It is stateless:
// every call works off the request and the injected collaborators, so a
// single instance serves concurrent callers.
type Manager struct {
	store      PrincipalStore
	tokens     security.TokenService
	validator  security.TokenValidator
	sessionTTL time.Duration
	logger     security.Logger
}

// Verify interface compliance
var _ security.AuthenticationManager = (*Manager)(nil)

// NewManager creates a manager that verifies passwords against the store
// and tokens against the token service.
func NewManager(store PrincipalStore, tokens security.TokenService, sessionTTL time.Duration, logger security.Logger) *Manager {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Manager{
		store:      store,
		tokens:     tokens,
		validator:  security.ServiceTokenValidator(tokens),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// WithTokenValidators accepts additional validators for externally issued
// tokens, tried after the provider's own token service.
func (m *Manager) WithTokenValidators(validators ...security.TokenValidator) *Manager {
	all := append([]security.TokenValidator{security.ServiceTokenValidator(m.tokens)}, validators...)
	m.validator = security.NewMultiTokenValidator(all...)
	return m
}

// Supports reports whether the manager handles the request type.
func (m *Manager) Supports(requestType string) bool {
	switch requestType {
	case security.RequestTypePassword, security.RequestTypeToken:
		return true
	}
	return false
}

// SupportedTypes lists the request types this manager handles.
func (m *Manager) SupportedTypes() []string {
	return []string{security.RequestTypePassword, security.RequestTypeToken}
}

// Validate performs structural validation only; it never touches the
// principal store.
func (m *Manager) Validate(req *security.AuthenticationRequest) error {
	if req == nil {
		return security.ErrMalformedRequest
	}
	return req.Validate()
}

// Authenticate verifies the request and returns the resulting
// Authentication.
func (m *Manager) Authenticate(ctx context.Context, req *security.AuthenticationRequest) (*security.Authentication, error) {
	if req == nil {
		return nil, security.ErrMalformedRequest
	}
	if !m.Supports(req.Type) {
		return nil, errors.New("authentication method not supported: "+req.Type, security.ErrMethodUnsupported.Category).
			WithTextCode(security.ErrMethodUnsupported.TextCode)
	}
	if err := m.Validate(req); err != nil {
		return nil, err
	}

	switch req.Type {
	case security.RequestTypePassword:
		return m.authenticatePassword(ctx, req)
	default:
		return m.authenticateToken(ctx, req)
	}
}

func (m *Manager) authenticatePassword(ctx context.Context, req *security.AuthenticationRequest) (*security.Authentication, error) {
	principal, err := m.store.VerifyPrincipal(ctx, req.Username, req.Password)
	if err != nil {
		m.logger.Debug("Manager password verification failed", "username", req.Username, "error", err)
		// Unknown usernames read as bad credentials so callers cannot
		// probe for accounts.
		if stderrors.Is(err, security.ErrPrincipalNotFound) {
			return nil, security.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ensurePrincipalUsable(principal); err != nil {
		return nil, err
	}

	builder := security.NewAuthenticationBuilder().
		WithPrincipal(principal).
		WithMethod(security.RequestTypePassword).
		WithSessionID(uuid.NewString()).
		WithClientIP(req.ClientIP).
		WithUserAgent(req.UserAgent)
	if m.sessionTTL > 0 {
		builder.WithExpiresAt(time.Now().Add(m.sessionTTL))
	}
	return builder.Build()
}

func (m *Manager) authenticateToken(ctx context.Context, req *security.AuthenticationRequest) (*security.Authentication, error) {
	claims, err := m.validator.Validate(req.Token)
	if err != nil {
		return nil, err
	}

	principal, err := principalFromClaims(claims)
	if err != nil {
		return nil, err
	}
	if err := ensurePrincipalUsable(principal); err != nil {
		return nil, err
	}

	builder := security.NewAuthenticationBuilder().
		WithPrincipal(principal).
		WithMethod(security.RequestTypeToken).
		WithClientIP(req.ClientIP).
		WithUserAgent(req.UserAgent)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		builder.WithExpiresAt(exp.Time)
	}
	if jti, _ := claims["jti"].(string); jti != "" {
		builder.WithSessionID(jti)
	}
	return builder.Build()
}

func ensurePrincipalUsable(p *security.AuthPrincipal) error {
	if !p.Active() {
		return security.ErrAccountDisabled
	}
	if p.Expired() {
		return security.ErrAccountExpired
	}
	return nil
}

// principalFromClaims rebuilds a principal from verified token claims.
// Role permissions are not carried on the wire per role, so rebuilt roles
// are name-only; the token's permissions array survives as a principal
// claim.
func principalFromClaims(claims security.TokenClaims) (*security.AuthPrincipal, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, security.ErrTokenMalformed
	}

	username, _ := claims["username"].(string)
	if username == "" {
		username = sub
	}

	builder := security.NewPrincipalBuilder().
		WithID(sub).
		WithUsername(username)

	if v, ok := claims["displayName"].(string); ok {
		builder.WithDisplayName(v)
	}
	if v, ok := claims["email"].(string); ok {
		builder.WithEmail(v)
	}
	if v, ok := claims["active"].(bool); ok {
		builder.WithActive(v)
	}
	if v, ok := claims["createdAt"].(float64); ok {
		builder.WithCreatedAt(time.Unix(int64(v), 0))
	}
	if v, ok := claims["updatedAt"].(float64); ok {
		builder.WithUpdatedAt(time.Unix(int64(v), 0))
	}

	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if name, ok := r.(string); ok && name != "" {
				builder.WithRole(security.NewRole(name))
			}
		}
	}

	for name, value := range claims {
		if _, reserved := identityClaimNames[name]; reserved {
			continue
		}
		builder.WithClaim(security.NewClaim(name, value))
	}

	principal, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, security.ErrTokenMalformed.Category, security.ErrTokenMalformed.Message).
			WithTextCode(security.ErrTokenMalformed.TextCode)
	}
	return principal, nil
}

type noopLogger struct{}

func (noopLogger) Debug(format string, args ...any) {}
func (noopLogger) Info(format string, args ...any)  {}
func (noopLogger) Error(format string, args ...any) {}
