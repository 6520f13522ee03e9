package security

import (
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenClaims is the full claim map of a parsed token.
type TokenClaims = jwt.MapClaims

// Registered and principal-derived claim names. Principal claims whose
// names collide with these are not merged into issued tokens.
var reservedClaimNames = map[string]struct{}{
	"sub": {}, "iss": {}, "aud": {}, "iat": {}, "exp": {}, "nbf": {}, "jti": {},
	"username": {}, "displayName": {}, "email": {}, "active": {},
	"createdAt": {}, "updatedAt": {}, "roles": {}, "permissions": {},
}

// TokenServiceImpl implements the TokenService interface on top of an
// injected Signer. Operations are pure functions of the token string and
// the signer, so a single instance is safe for concurrent use.
type TokenServiceImpl struct {
	signer          Signer
	tokenExpiration time.Duration
	issuer          string
	audience        jwt.ClaimStrings
	revocations     RevocationStore
	logger          Logger
	now             func() time.Time
}

// Verify interface compliance
var _ TokenService = (*TokenServiceImpl)(nil)

// NewTokenService creates a new TokenService instance.
func NewTokenService(signer Signer, tokenExpiration time.Duration, issuer string, audience jwt.ClaimStrings, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signer:          signer,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		audience:        audience,
		logger:          logger,
		now:             time.Now,
	}
}

// WithRevocationStore wires a denylist behind RevokeToken and IsRevoked.
// Without one both operations are documented no-ops.
func (ts *TokenServiceImpl) WithRevocationStore(store RevocationStore) *TokenServiceImpl {
	ts.revocations = store
	return ts
}

// WithClock overrides the time source, for tests.
func (ts *TokenServiceImpl) WithClock(now func() time.Time) *TokenServiceImpl {
	if now != nil {
		ts.now = now
	}
	return ts
}

// signerMethod adapts a Signer to the jwt signing method contract. The key
// argument is ignored: key material lives inside the Signer.
type signerMethod struct {
	signer Signer
}

func (m signerMethod) Alg() string {
	return m.signer.Algorithm()
}

func (m signerMethod) Sign(signingString string, key any) ([]byte, error) {
	return m.signer.Sign([]byte(signingString))
}

func (m signerMethod) Verify(signingString string, sig []byte, key any) error {
	return m.signer.Verify([]byte(signingString), sig)
}

// IssueToken signs a token derived from the principal using the default
// expiration.
func (ts *TokenServiceImpl) IssueToken(p *AuthPrincipal) (string, error) {
	return ts.IssueTokenWithExpiration(p, ts.tokenExpiration)
}

// IssueTokenWithExpiration signs a token derived from the principal. A
// zero ttl sets exp to the issuance instant, producing a token that is
// already expired.
func (ts *TokenServiceImpl) IssueTokenWithExpiration(p *AuthPrincipal, ttl time.Duration) (string, error) {
	if p == nil {
		return "", errors.New("principal must not be nil", errors.CategoryBadInput).
			WithTextCode(TextCodeTokenIssueFailed)
	}
	return ts.stampAndSign(ts.claimsFromPrincipal(p), ttl)
}

// IssueClaims signs a token carrying the given custom claims plus the
// standard iss, aud, iat, exp, and jti claims.
func (ts *TokenServiceImpl) IssueClaims(claims map[string]any, ttl time.Duration) (string, error) {
	out := TokenClaims{}
	for k, v := range claims {
		switch k {
		case "iat", "exp", "nbf", "jti":
			// stamped fresh below
		default:
			out[k] = v
		}
	}
	return ts.stampAndSign(out, ttl)
}

// ValidateToken reports whether the token parses, verifies, and has not
// expired. It never returns an error.
func (ts *TokenServiceImpl) ValidateToken(token string) bool {
	_, err := ts.ParseToken(token)
	return err == nil
}

// ParseToken decodes the token, verifies its signature through the
// injected signer, checks the validity window, and returns the full claim
// map.
func (ts *TokenServiceImpl) ParseToken(token string) (TokenClaims, error) {
	parser := jwt.NewParser()

	parsed, parts, err := parser.ParseUnverified(token, TokenClaims{})
	if err != nil {
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if alg, _ := parsed.Header["alg"].(string); alg != ts.signer.Algorithm() {
		ts.logger.Error("TokenService parse encountered unexpected signing method", "alg", parsed.Header["alg"])
		return nil, ErrTokenInvalidSignature
	}

	sig, err := parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	signingString := strings.Join(parts[0:2], ".")
	if err := ts.signer.Verify([]byte(signingString), sig); err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(TokenClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenMalformed
	}
	if !ts.now().Before(exp.Time) {
		return nil, ErrTokenExpired
	}

	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil && ts.now().Before(nbf.Time) {
		return nil, errors.New("token is not yet valid", errors.CategoryAuth).
			WithTextCode(TextCodeTokenParseFailed)
	}

	if ts.revocations != nil {
		if jti, _ := claims["jti"].(string); jti != "" && ts.revocations.Contains(jti) {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// GetClaim reads a single claim from a verified token. Parse failures
// read as not found.
func (ts *TokenServiceImpl) GetClaim(token, name string) (any, bool) {
	claims, err := ts.ParseToken(token)
	if err != nil {
		return nil, false
	}
	v, ok := claims[name]
	return v, ok
}

// Subject returns the sub claim of a verified token.
func (ts *TokenServiceImpl) Subject(token string) (string, error) {
	claims, err := ts.ParseToken(token)
	if err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "token has no subject").
			WithTextCode(TextCodeTokenParseFailed)
	}
	return sub, nil
}

// ExpirationTime returns the exp claim of a verified token.
func (ts *TokenServiceImpl) ExpirationTime(token string) (time.Time, error) {
	claims, err := ts.ParseToken(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenMalformed
	}
	return exp.Time, nil
}

// IsTokenExpired reports whether the token is past its expiration. Any
// parse or verification failure reads as expired, failing closed.
func (ts *TokenServiceImpl) IsTokenExpired(token string) bool {
	_, err := ts.ParseToken(token)
	return err != nil
}

// RefreshToken re-issues a valid token with a fresh expiration and token
// id. The iat, exp, nbf, and jti claims are replaced; every other claim,
// including issuer and audience, is preserved verbatim.
func (ts *TokenServiceImpl) RefreshToken(token string) (string, error) {
	claims, err := ts.ParseToken(token)
	if err != nil {
		return "", err
	}

	out := TokenClaims{}
	for k, v := range claims {
		switch k {
		case "iat", "exp", "nbf", "jti":
		default:
			out[k] = v
		}
	}

	refreshed, err := ts.stampAndSign(out, ts.tokenExpiration)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to refresh token").
			WithTextCode(TextCodeTokenRefreshFailed)
	}
	return refreshed, nil
}

// RevokeToken records the token in the revocation store. Without a store
// it is a no-op: tokens are stateless and remain valid until exp.
func (ts *TokenServiceImpl) RevokeToken(token string) error {
	if ts.revocations == nil {
		ts.logger.Debug("TokenService revoke is a no-op without a revocation store")
		return nil
	}

	claims, err := ts.ParseToken(token)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to revoke token").
			WithTextCode(TextCodeTokenRevokeFailed)
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no id to revoke", errors.CategoryBadInput).
			WithTextCode(TextCodeTokenRevokeFailed)
	}

	exp, _ := claims.GetExpirationTime()
	expiresAt := time.Time{}
	if exp != nil {
		expiresAt = exp.Time
	}
	return ts.revocations.Revoke(jti, expiresAt)
}

// IsRevoked reports whether the token's id is in the revocation store.
// Without a store it always returns false.
func (ts *TokenServiceImpl) IsRevoked(token string) bool {
	if ts.revocations == nil {
		return false
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, TokenClaims{})
	if err != nil {
		return false
	}
	claims, ok := parsed.Claims.(TokenClaims)
	if !ok {
		return false
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return false
	}
	return ts.revocations.Contains(jti)
}

// claimsFromPrincipal derives the wire claim set from a principal: the
// standard identity claims, role and permission name arrays, and the
// principal's own claims by name where they do not collide with a
// reserved name.
func (ts *TokenServiceImpl) claimsFromPrincipal(p *AuthPrincipal) TokenClaims {
	claims := TokenClaims{
		"sub":         p.ID(),
		"username":    p.Username(),
		"displayName": p.DisplayName(),
		"active":      p.Active(),
	}
	if email := p.Email(); email != "" {
		claims["email"] = email
	}
	if createdAt := p.CreatedAt(); !createdAt.IsZero() {
		claims["createdAt"] = createdAt.Unix()
	}
	if updatedAt := p.UpdatedAt(); !updatedAt.IsZero() {
		claims["updatedAt"] = updatedAt.Unix()
	}

	roles := make([]string, 0, len(p.Roles()))
	for _, r := range p.Roles() {
		roles = append(roles, r.Name())
	}
	sort.Strings(roles)
	claims["roles"] = roles

	permissions := make([]string, 0)
	for _, perm := range p.Permissions() {
		permissions = append(permissions, perm.Name)
	}
	sort.Strings(permissions)
	claims["permissions"] = permissions

	for _, c := range p.Claims() {
		if _, reserved := reservedClaimNames[c.Name]; reserved {
			continue
		}
		claims[c.Name] = c.Value
	}

	return claims
}

// stampAndSign sets iat, exp, and a fresh jti, fills issuer and audience
// when the claim set does not already carry them, and signs.
func (ts *TokenServiceImpl) stampAndSign(claims TokenClaims, ttl time.Duration) (string, error) {
	now := ts.now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))
	claims["jti"] = uuid.NewString()

	if _, ok := claims["iss"]; !ok && ts.issuer != "" {
		claims["iss"] = ts.issuer
	}
	if _, ok := claims["aud"]; !ok && len(ts.audience) > 0 {
		claims["aud"] = ts.audience
	}

	token := jwt.NewWithClaims(signerMethod{signer: ts.signer}, claims)
	signed, err := token.SignedString(ts.signer)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token").
			WithTextCode(TextCodeTokenIssueFailed)
	}
	return signed, nil
}
