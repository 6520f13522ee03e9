package security

import (
	"encoding/json"
	stderrors "errors"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenValidator validates tokens and extracts claims without tying
// callers to a specific signing implementation.
type TokenValidator interface {
	Validate(token string) (TokenClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(token string) (TokenClaims, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(token string) (TokenClaims, error) {
	if f == nil {
		return nil, ErrTokenMalformed
	}
	return f(token)
}

// ServiceTokenValidator adapts a TokenService into a TokenValidator.
func ServiceTokenValidator(ts TokenService) TokenValidator {
	return TokenValidatorFunc(func(token string) (TokenClaims, error) {
		return ts.ParseToken(token)
	})
}

// MultiTokenValidator tries validators in order until one succeeds. It
// treats signature and malformed failures as "try next" and returns the
// last such error if all validators fail.
type MultiTokenValidator struct {
	validators []TokenValidator
}

// Verify interface compliance
var _ TokenValidator = (*MultiTokenValidator)(nil)

// NewMultiTokenValidator filters nil validators and returns a composite
// validator.
func NewMultiTokenValidator(validators ...TokenValidator) *MultiTokenValidator {
	filtered := make([]TokenValidator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			filtered = append(filtered, v)
		}
	}
	return &MultiTokenValidator{validators: filtered}
}

// Validate satisfies the TokenValidator interface.
func (m *MultiTokenValidator) Validate(token string) (TokenClaims, error) {
	var lastErr error
	for _, v := range m.validators {
		claims, err := v.Validate(token)
		if err == nil {
			return claims, nil
		}
		switch ErrorTextCode(err) {
		case TextCodeTokenMalformed, TextCodeTokenInvalidSignature:
			lastErr = err
			continue
		}
		return nil, err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrTokenMalformed
}

// JWKSTokenValidator verifies externally issued tokens against a JSON Web
// Key Set. It is verify-only: issuance stays with the external identity
// provider.
type JWKSTokenValidator struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience []string
}

// Verify interface compliance
var _ TokenValidator = (*JWKSTokenValidator)(nil)

// NewJWKSTokenValidator fetches the key set from a JWKS URL. The keyfunc
// layer refreshes keys per its options.
func NewJWKSTokenValidator(jwksURL string, options keyfunc.Options) (*JWKSTokenValidator, error) {
	jwks, err := keyfunc.Get(jwksURL, options)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load JWK set").
			WithTextCode(TextCodeSystemUnavailable)
	}
	return &JWKSTokenValidator{jwks: jwks}, nil
}

// NewStaticJWKSTokenValidator builds a validator from raw JWKS JSON,
// useful when keys are distributed out of band.
func NewStaticJWKSTokenValidator(rawJWKS json.RawMessage) (*JWKSTokenValidator, error) {
	jwks, err := keyfunc.NewJSON(rawJWKS)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse JWK set").
			WithTextCode(TextCodeConfigInvalid)
	}
	return &JWKSTokenValidator{jwks: jwks}, nil
}

// WithIssuer requires tokens to carry the given issuer.
func (v *JWKSTokenValidator) WithIssuer(issuer string) *JWKSTokenValidator {
	v.issuer = issuer
	return v
}

// WithAudience requires tokens to carry one of the given audiences.
func (v *JWKSTokenValidator) WithAudience(audience ...string) *JWKSTokenValidator {
	v.audience = audience
	return v
}

// Validate parses and verifies the token against the key set.
func (v *JWKSTokenValidator) Validate(token string) (TokenClaims, error) {
	options := make([]jwt.ParserOption, 0, 1)
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, TokenClaims{}, v.jwks.Keyfunc, options...)
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, errors.Wrap(err, ErrTokenInvalidSignature.Category, ErrTokenInvalidSignature.Message).
				WithTextCode(ErrTokenInvalidSignature.TextCode)
		case stderrors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, errors.Wrap(err, errors.CategoryAuth, "token issuer is not trusted").
				WithTextCode(TextCodeTokenParseFailed)
		default:
			return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
				WithTextCode(ErrTokenMalformed.TextCode)
		}
	}

	claims, ok := parsed.Claims.(TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if len(v.audience) > 0 && !audienceAllowed(claims, v.audience) {
		return nil, errors.New("token audience is not accepted", errors.CategoryAuth).
			WithTextCode(TextCodeTokenParseFailed).
			WithCode(errors.CodeUnauthorized)
	}
	return claims, nil
}

func audienceAllowed(claims TokenClaims, allowed []string) bool {
	aud, err := claims.GetAudience()
	if err != nil {
		return false
	}
	for _, got := range aud {
		for _, want := range allowed {
			if got == want {
				return true
			}
		}
	}
	return false
}
