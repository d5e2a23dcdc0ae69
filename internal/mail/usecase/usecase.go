package usecase

import (
	"context"
	"io"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
)

const SuccessNote = "Email sent successfully"

// AttachmentResult is the outcome of attaching one file.
type AttachmentResult struct {
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

func (r AttachmentResult) Attached() bool {
	return r.Error == ""
}

// Outcome reports a send attempt. Detail is SuccessNote on success and the
// transport error text otherwise.
type Outcome struct {
	Success     bool               `json:"success"`
	Detail      string             `json:"message"`
	Attachments []AttachmentResult `json:"attachments,omitempty"`
}

// FileOpener reads stored artifact files
type FileOpener interface {
	Open(rel string) (io.ReadCloser, error)
}

// MailUsecase composes, sends and audits outgoing email
type MailUsecase interface {
	// SendDraft sends draft to investor with every artifact file attached and
	// writes exactly one communication log row, whatever the outcome.
	SendDraft(ctx context.Context, investor *domain.Investor, draft *domain.EmailDraft, actor *authdomain.User) Outcome

	// SendDraftByID resolves the draft and investor before SendDraft
	SendDraftByID(ctx context.Context, draftID, investorID string, actor *authdomain.User) (Outcome, error)

	// SendCustom sends an ad-hoc message. Nothing is logged.
	SendCustom(ctx context.Context, to, subject, body string, attachmentPaths []string, actor *authdomain.User) Outcome

	// SendCustomWithArtifacts resolves artifact files before SendCustom
	SendCustomWithArtifacts(ctx context.Context, to, subject, body string, artifactIDs []string, actor *authdomain.User) (Outcome, error)
}
