package localjwt

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-security"
)

// Config holds the provider's token settings.
type Config struct {
	// SigningKey is the HMAC key material.
	SigningKey string

	// Algorithm is the HMAC algorithm identifier.
	// Default: "HS256".
	Algorithm string

	// Issuer is written to the iss claim of issued tokens.
	Issuer string

	// Audience is written to the aud claim of issued tokens.
	Audience []string

	// TokenExpiration is the default token lifetime.
	// Default: 1 hour.
	TokenExpiration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(signingKey string) Config {
	return Config{
		SigningKey:      signingKey,
		Algorithm:       "HS256",
		TokenExpiration: time.Hour,
	}
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	err := validation.Errors{
		"signing_key": validation.Validate(c.SigningKey, validation.Required),
		"algorithm":   validation.Validate(c.Algorithm, validation.Required),
	}.Filter()
	if err != nil {
		return errors.Wrap(err, security.ErrConfigInvalid.Category, security.ErrConfigInvalid.Message).
			WithTextCode(security.ErrConfigInvalid.TextCode)
	}
	return nil
}

// applyProviderConfig overlays registry-supplied settings onto the config.
func (c Config) applyProviderConfig(pc security.ProviderConfig) Config {
	if v, ok := pc.String("signing_key"); ok {
		c.SigningKey = v
	}
	if v, ok := pc.String("algorithm"); ok {
		c.Algorithm = v
	}
	if v, ok := pc.String("issuer"); ok {
		c.Issuer = v
	}
	if v, ok := pc.Strings("audience"); ok {
		c.Audience = v
	}
	if v, ok := pc.Int("token_expiration_seconds"); ok {
		c.TokenExpiration = time.Duration(v) * time.Second
	}
	return c
}
