package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"gopkg.in/gomail.v2"
)

// GmailTransport sends through the Gmail API as the account that granted
// the refresh token.
type GmailTransport struct {
	srv *gmail.Service
}

func NewGmailTransport(ctx context.Context, clientID, clientSecret, refreshToken string) (*GmailTransport, error) {
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, errors.New("gmail transport requires GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GMAIL_REFRESH_TOKEN")
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	// An empty access token forces a refresh on first use.
	tokenSource := config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	srv, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &GmailTransport{srv: srv}, nil
}

func (t *GmailTransport) Send(ctx context.Context, msg *gomail.Message) error {
	raw, err := encodeRaw(msg)
	if err != nil {
		return err
	}
	if _, err := t.srv.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to send message: %w", err)
	}
	return nil
}

// encodeRaw renders msg as the base64url RFC 2822 payload the API expects.
func encodeRaw(msg *gomail.Message) (string, error) {
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("unable to render message: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}
