package mailer

import (
	"bytes"
	"context"
	"fmt"

	"fundraise-backend/pkg/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Transport delivers a fully composed message synchronously.
type Transport interface {
	Send(ctx context.Context, msg *gomail.Message) error
}

// NewTransport builds the transport selected by MAIL_TRANSPORT.
func NewTransport(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Transport, error) {
	switch cfg.MailTransport {
	case "smtp", "":
		return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSkipTLSVerify), nil
	case "gmail":
		return NewGmailTransport(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GmailRefreshToken)
	case "console":
		return NewConsoleTransport(logger), nil
	default:
		return nil, fmt.Errorf("unsupported MAIL_TRANSPORT %q", cfg.MailTransport)
	}
}

// ConsoleTransport logs messages instead of delivering them. Meant for
// local development.
type ConsoleTransport struct {
	logger *zap.Logger
}

func NewConsoleTransport(logger *zap.Logger) *ConsoleTransport {
	return &ConsoleTransport{logger: logger.Named("console-mail")}
}

func (t *ConsoleTransport) Send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return fmt.Errorf("unable to render message: %w", err)
	}
	t.logger.Info("outgoing email",
		zap.Strings("to", msg.GetHeader("To")),
		zap.Strings("subject", msg.GetHeader("Subject")),
		zap.Int("bytes", buf.Len()),
	)
	t.logger.Debug(buf.String())
	return nil
}
