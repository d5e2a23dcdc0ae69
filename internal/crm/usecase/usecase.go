package usecase

import (
	"errors"
	"mime/multipart"
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
)

var (
	ErrInvestorNotFound      = errors.New("investor not found")
	ErrInvestorEmailTaken    = errors.New("an investor with this email already exists")
	ErrArtifactNotFound      = errors.New("artifact not found")
	ErrInvalidArtifactType   = errors.New("artifact type must be image, video or presentation")
	ErrDraftNotFound         = errors.New("draft not found")
	ErrDraftNameTaken        = errors.New("a draft with this name already exists")
	ErrCommunicationNotFound = errors.New("communication not found")
	ErrResponseNotFound      = errors.New("response not found")
	ErrInvalidResponseStatus = errors.New("response status must be success, failure or pending")
	ErrNegativeAmount        = errors.New("amount must not be negative")
)

// SystemUser is recorded as the updater when no user is acting.
const SystemUser = "system"

// InvestorUsecase manages investor contacts
type InvestorUsecase interface {
	List(query string) ([]*domain.Investor, error)
	Get(id string) (*dto.InvestorDetail, error)
	Create(req *dto.InvestorRequest, actor *authdomain.User) (*domain.Investor, error)
	Update(id string, req *dto.InvestorRequest, actor *authdomain.User) (*domain.Investor, error)
	Delete(id string) error
}

// FileStore persists uploaded artifact files
type FileStore interface {
	Save(dir string, file *multipart.FileHeader) (string, error)
	Delete(rel string) error
}

// ArtifactUsecase manages marketing artifacts and their files
type ArtifactUsecase interface {
	List(query string, artifactType domain.ArtifactType) ([]*domain.Artifact, error)
	Get(id string) (*domain.Artifact, error)

	// Create stores the uploaded file (if any) and the artifact row
	Create(req *dto.ArtifactRequest, file *multipart.FileHeader, actor *authdomain.User) (*domain.Artifact, error)

	// Update replaces the stored file when a new one is given
	Update(id string, req *dto.ArtifactRequest, file *multipart.FileHeader) (*domain.Artifact, error)

	// Delete removes the artifact and its stored file
	Delete(id string) error
}

// DraftUsecase manages reusable email drafts
type DraftUsecase interface {
	List() ([]*domain.EmailDraft, error)
	Get(id string) (*domain.EmailDraft, error)
	Create(req *dto.DraftRequest, actor *authdomain.User) (*domain.EmailDraft, error)
	Update(id string, req *dto.DraftRequest) (*domain.EmailDraft, error)
	Delete(id string) error
}

// ResponseUsecase records investor replies to communications
type ResponseUsecase interface {
	List(status domain.ResponseStatus) ([]*domain.ResponseFunding, error)
	Create(req *dto.ResponseRequest, actor *authdomain.User) (*domain.ResponseFunding, error)
	Update(id string, req *dto.ResponseRequest) (*domain.ResponseFunding, error)
	Delete(id string) error
}

// DashboardUsecase builds read-only overviews
type DashboardUsecase interface {
	Dashboard() (*dto.Dashboard, error)
	Communications(limit int) ([]*domain.CommunicationLog, error)

	// Suggest ranks investor, artifact and draft names against query
	Suggest(query string, limit int) ([]dto.Suggestion, error)
}

// ActorName is the username recorded for changes made by actor.
func ActorName(actor *authdomain.User) string {
	if actor == nil || actor.Username == "" {
		return SystemUser
	}
	return actor.Username
}

func actorID(actor *authdomain.User) *string {
	if actor == nil || actor.ID == "" {
		return nil
	}
	id := actor.ID
	return &id
}

type clock func() time.Time
