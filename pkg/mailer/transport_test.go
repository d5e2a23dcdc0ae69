package mailer

import (
	"context"
	"encoding/base64"
	"testing"

	"fundraise-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func newMessage() *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", "founder@startup.io")
	m.SetHeader("To", "jane@fund.com")
	m.SetHeader("Subject", "Our deck")
	m.SetBody("text/plain", "Hello Jane")
	return m
}

func TestEncodeRaw(t *testing.T) {
	raw, err := encodeRaw(newMessage())
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "To: jane@fund.com")
	assert.Contains(t, string(decoded), "Subject: Our deck")
	assert.Contains(t, string(decoded), "Hello Jane")
}

func TestConsoleTransport(t *testing.T) {
	tr := NewConsoleTransport(zap.NewNop())
	assert.NoError(t, tr.Send(context.Background(), newMessage()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tr.Send(ctx, newMessage()), context.Canceled)
}

func TestNewTransport(t *testing.T) {
	ctx := context.Background()

	tr, err := NewTransport(ctx, &config.Config{MailTransport: "smtp", SMTPHost: "localhost", SMTPPort: 25}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPTransport{}, tr)

	tr, err = NewTransport(ctx, &config.Config{MailTransport: "console"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &ConsoleTransport{}, tr)

	_, err = NewTransport(ctx, &config.Config{MailTransport: "gmail"}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewTransport(ctx, &config.Config{MailTransport: "pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
