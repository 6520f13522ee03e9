package security

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Signer is the injected cryptographic capability behind TokenService.
// Implementations are parameterized by an algorithm identifier and key
// material fixed at construction; the token layer never sees the key.
type Signer interface {
	// Algorithm returns the identifier written to the token's alg header.
	Algorithm() string

	// Sign produces a signature over the payload.
	Sign(payload []byte) ([]byte, error)

	// Verify checks a signature over the payload, returning an error when
	// it does not match.
	Verify(payload, signature []byte) error
}

// HMACSigner signs with an HMAC-SHA algorithm (HS256, HS384, or HS512),
// delegating to the matching jwt signing method.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	key    []byte
}

// Verify interface compliance
var _ Signer = (*HMACSigner)(nil)

// NewHMACSigner creates a signer for the given algorithm and key bytes.
func NewHMACSigner(algorithm string, key []byte) (*HMACSigner, error) {
	if len(key) == 0 {
		return nil, errors.New("signing key must not be empty", errors.CategoryBadInput).
			WithTextCode(TextCodeConfigMissing)
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, errors.New("unsupported HMAC algorithm: "+algorithm, errors.CategoryBadInput).
			WithTextCode(TextCodeConfigInvalid)
	}

	return &HMACSigner{method: method, key: key}, nil
}

// MustHMACSigner is NewHMACSigner that panics on error, for wiring static
// configuration.
func MustHMACSigner(algorithm string, key []byte) *HMACSigner {
	s, err := NewHMACSigner(algorithm, key)
	if err != nil {
		panic(err)
	}
	return s
}

// Algorithm returns the configured algorithm identifier.
func (s *HMACSigner) Algorithm() string {
	return s.method.Alg()
}

// Sign produces the HMAC signature over the payload.
func (s *HMACSigner) Sign(payload []byte) ([]byte, error) {
	sig, err := s.method.Sign(string(payload), s.key)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to sign payload").
			WithTextCode(TextCodeTokenIssueFailed)
	}
	return sig, nil
}

// Verify checks the HMAC signature over the payload.
func (s *HMACSigner) Verify(payload, signature []byte) error {
	if err := s.method.Verify(string(payload), signature, s.key); err != nil {
		return errors.Wrap(err, ErrTokenInvalidSignature.Category, ErrTokenInvalidSignature.Message).
			WithTextCode(ErrTokenInvalidSignature.TextCode)
	}
	return nil
}
