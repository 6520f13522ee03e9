package localjwt_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-security"
	"github.com/goliatone/go-security/provider/localjwt"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := localjwt.DefaultConfig("key")

		assert.Equal(t, "key", cfg.SigningKey)
		assert.Equal(t, "HS256", cfg.Algorithm)
		assert.Equal(t, time.Hour, cfg.TokenExpiration)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires a signing key", func(t *testing.T) {
		cfg := localjwt.DefaultConfig("")
		err := cfg.Validate()
		assert.Equal(t, security.TextCodeConfigInvalid, security.ErrorTextCode(err))
	})

	t.Run("requires an algorithm", func(t *testing.T) {
		cfg := localjwt.DefaultConfig("key")
		cfg.Algorithm = ""
		assert.Error(t, cfg.Validate())
	})
}
