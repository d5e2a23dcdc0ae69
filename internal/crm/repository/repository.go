package repository

import (
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/shopspring/decimal"
)

// Repositories return (nil, nil) when a single record is not found.

// InvestorRepository defines data access for investors
type InvestorRepository interface {
	Create(investor *domain.Investor) error
	FindByID(id string) (*domain.Investor, error)
	FindByEmail(email string) (*domain.Investor, error)

	// GetOrCreateByEmail returns the investor with the given email, creating it
	// from defaults when absent. created reports which path was taken.
	GetOrCreateByEmail(email string, defaults domain.Investor) (investor *domain.Investor, created bool, err error)

	// List returns investors newest first. A non-empty query filters on a
	// case-insensitive substring of name, email or labels.
	List(query string) ([]*domain.Investor, error)
	Update(investor *domain.Investor) error

	// Delete removes the investor together with its communication logs and responses
	Delete(id string) error
	Count() (int64, error)
}

// ArtifactRepository defines data access for artifacts
type ArtifactRepository interface {
	Create(artifact *domain.Artifact) error
	FindByID(id string) (*domain.Artifact, error)
	FindByIDs(ids []string) ([]*domain.Artifact, error)

	// List returns artifacts newest first, filtered by a case-insensitive
	// substring of name, labels or description and optionally by type.
	List(query string, artifactType domain.ArtifactType) ([]*domain.Artifact, error)
	Update(artifact *domain.Artifact) error
	Delete(id string) error
	Count() (int64, error)
}

// DraftRepository defines data access for email drafts
type DraftRepository interface {
	Create(draft *domain.EmailDraft) error
	FindByID(id string) (*domain.EmailDraft, error)

	// FindByName matches the name case-insensitively and exactly
	FindByName(name string) (*domain.EmailDraft, error)
	Names() ([]string, error)
	List() ([]*domain.EmailDraft, error)

	// Update saves scalar fields and replaces the artifact set
	Update(draft *domain.EmailDraft) error

	// Delete removes the draft. Logs that used it keep their row with no draft.
	Delete(id string) error
	Count() (int64, error)
}

// CommunicationRepository defines data access for the append-only send log
type CommunicationRepository interface {
	Create(log *domain.CommunicationLog) error
	FindByID(id string) (*domain.CommunicationLog, error)

	// List returns logs newest first with investor, draft and sender loaded.
	// limit <= 0 means no limit.
	List(limit int) ([]*domain.CommunicationLog, error)
	ListByInvestor(investorID string) ([]*domain.CommunicationLog, error)
	Count() (int64, error)
	CountByStatus(status domain.CommunicationStatus) (int64, error)

	// CountSentBetween counts logs with the given status sent in [from, to).
	// A nil bound is open.
	CountSentBetween(status domain.CommunicationStatus, from, to *time.Time) (int64, error)
}

// ResponseStat aggregates responses for one status
type ResponseStat struct {
	Status domain.ResponseStatus
	Count  int64
	Amount decimal.Decimal
}

// ResponseRepository defines data access for investor responses
type ResponseRepository interface {
	Create(response *domain.ResponseFunding) error
	FindByID(id string) (*domain.ResponseFunding, error)

	// List returns responses by newest response date; status filters when non-empty.
	List(status domain.ResponseStatus, limit int) ([]*domain.ResponseFunding, error)
	ListByInvestor(investorID string) ([]*domain.ResponseFunding, error)
	Update(response *domain.ResponseFunding) error
	Delete(id string) error
	StatsByStatus() ([]ResponseStat, error)
}
