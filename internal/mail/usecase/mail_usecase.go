package usecase

import (
	"context"
	"io"
	"path/filepath"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/repository"
	crmusecase "fundraise-backend/internal/crm/usecase"
	"fundraise-backend/pkg/mailer"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type mailUsecase struct {
	transport         mailer.Transport
	files             FileOpener
	investorRepo      repository.InvestorRepository
	draftRepo         repository.DraftRepository
	artifactRepo      repository.ArtifactRepository
	communicationRepo repository.CommunicationRepository
	from              string
	logger            *zap.Logger
}

func NewMailUsecase(
	transport mailer.Transport,
	files FileOpener,
	investorRepo repository.InvestorRepository,
	draftRepo repository.DraftRepository,
	artifactRepo repository.ArtifactRepository,
	communicationRepo repository.CommunicationRepository,
	from string,
	logger *zap.Logger,
) MailUsecase {
	return &mailUsecase{
		transport:         transport,
		files:             files,
		investorRepo:      investorRepo,
		draftRepo:         draftRepo,
		artifactRepo:      artifactRepo,
		communicationRepo: communicationRepo,
		from:              from,
		logger:            logger.Named("mailer"),
	}
}

func (u *mailUsecase) SendDraft(ctx context.Context, investor *domain.Investor, draft *domain.EmailDraft, actor *authdomain.User) (outcome Outcome) {
	draftID := draft.ID
	entry := &domain.CommunicationLog{
		InvestorID: investor.ID,
		DraftID:    &draftID,
		SentByID:   actorID(actor),
		Status:     domain.CommunicationFailed,
	}
	defer func() {
		if outcome.Success {
			entry.Status = domain.CommunicationSuccess
			entry.Notes = SuccessNote
		} else {
			entry.Notes = "Failed to send: " + outcome.Detail
		}
		if err := u.communicationRepo.Create(entry); err != nil {
			u.logger.Error("failed to record communication",
				zap.String("investor_id", investor.ID),
				zap.String("draft_id", draftID),
				zap.Error(err),
			)
		}
	}()

	paths := make([]string, 0, len(draft.Artifacts))
	for _, a := range draft.Artifacts {
		if a.HasFile() {
			paths = append(paths, a.FilePath)
		}
	}
	return u.send(ctx, investor.Email, draft.Subject, draft.Body, paths)
}

func (u *mailUsecase) SendDraftByID(ctx context.Context, draftID, investorID string, actor *authdomain.User) (Outcome, error) {
	draft, err := u.draftRepo.FindByID(draftID)
	if err != nil {
		return Outcome{}, err
	}
	if draft == nil {
		return Outcome{}, crmusecase.ErrDraftNotFound
	}
	investor, err := u.investorRepo.FindByID(investorID)
	if err != nil {
		return Outcome{}, err
	}
	if investor == nil {
		return Outcome{}, crmusecase.ErrInvestorNotFound
	}
	return u.SendDraft(ctx, investor, draft, actor), nil
}

func (u *mailUsecase) SendCustom(ctx context.Context, to, subject, body string, attachmentPaths []string, actor *authdomain.User) Outcome {
	u.logger.Debug("custom send", zap.String("to", to), zap.String("by", crmusecase.ActorName(actor)))
	return u.send(ctx, to, subject, body, attachmentPaths)
}

func (u *mailUsecase) SendCustomWithArtifacts(ctx context.Context, to, subject, body string, artifactIDs []string, actor *authdomain.User) (Outcome, error) {
	artifacts, err := u.artifactRepo.FindByIDs(artifactIDs)
	if err != nil {
		return Outcome{}, err
	}
	if len(artifacts) != countUnique(artifactIDs) {
		return Outcome{}, crmusecase.ErrArtifactNotFound
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if a.HasFile() {
			paths = append(paths, a.FilePath)
		}
	}
	return u.SendCustom(ctx, to, subject, body, paths, actor), nil
}

func (u *mailUsecase) send(ctx context.Context, to, subject, body string, paths []string) Outcome {
	msg, attachments := u.compose(to, subject, body, paths)

	if err := u.transport.Send(ctx, msg); err != nil {
		u.logger.Warn("email send failed", zap.String("to", to), zap.Error(err))
		return Outcome{Detail: err.Error(), Attachments: attachments}
	}

	u.logger.Info("email sent", zap.String("to", to), zap.Int("attachments", len(attachments)))
	return Outcome{Success: true, Detail: SuccessNote, Attachments: attachments}
}

// compose builds the message. Each file is read in full before it is
// attached; files that cannot be opened or read are skipped and reported.
func (u *mailUsecase) compose(to, subject, body string, paths []string) (*gomail.Message, []AttachmentResult) {
	m := gomail.NewMessage()
	m.SetHeader("From", u.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	contentType := "text/plain"
	if domain.IsHTML(body) {
		contentType = "text/html"
	}
	m.SetBody(contentType, body)

	results := make([]AttachmentResult, 0, len(paths))
	for _, path := range paths {
		data, err := u.readAttachment(path)
		if err != nil {
			u.logger.Warn("failed to attach file", zap.String("path", path), zap.Error(err))
			results = append(results, AttachmentResult{Path: path, Error: err.Error()})
			continue
		}

		m.Attach(filepath.Base(path), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
		results = append(results, AttachmentResult{Path: path})
	}
	return m, results
}

func (u *mailUsecase) readAttachment(path string) ([]byte, error) {
	rc, err := u.files.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func actorID(actor *authdomain.User) *string {
	if actor == nil || actor.ID == "" {
		return nil
	}
	id := actor.ID
	return &id
}

func countUnique(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
