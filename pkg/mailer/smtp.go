package mailer

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPTransport dials the configured relay for every message.
type SMTPTransport struct {
	dialer *gomail.Dialer
}

func NewSMTPTransport(host string, port int, user, password string, skipTLSVerify bool) *SMTPTransport {
	d := gomail.NewDialer(host, port, user, password)
	d.TLSConfig = &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: skipTLSVerify,
	}
	return &SMTPTransport{dialer: d}
}

func (t *SMTPTransport) Send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("could not send email: %w", err)
	}
	return nil
}
