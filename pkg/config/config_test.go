package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("MAIL_TRANSPORT", "")
		t.Setenv("AI_TIMEOUT", "")
		t.Setenv("MAX_UPLOAD_MB", "")

		cfg := Load()

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "smtp", cfg.MailTransport)
		assert.Equal(t, 30*time.Second, cfg.AITimeout)
		assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("SMTP_PORT", "2525")
		t.Setenv("SMTP_SKIP_TLS_VERIFY", "YES")
		t.Setenv("JWT_ACCESS_EXPIRY", "1h")

		cfg := Load()

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, 2525, cfg.SMTPPort)
		assert.True(t, cfg.SMTPSkipTLSVerify)
		assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "not-a-port")
		t.Setenv("AI_TIMEOUT", "soon")

		cfg := Load()

		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, 30*time.Second, cfg.AITimeout)
	})
}
