package dto

import (
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/shopspring/decimal"
)

type InvestorRequest struct {
	Name    string          `json:"name" binding:"required,max=255"`
	Email   string          `json:"email" binding:"required,email"`
	Labels  string          `json:"labels" binding:"max=500"`
	Address string          `json:"address"`
	Details string          `json:"details"`
	Amount  decimal.Decimal `json:"amount"`
}

// InvestorDetail is an investor with its communication history.
type InvestorDetail struct {
	Investor       *domain.Investor           `json:"investor"`
	Labels         []string                   `json:"labels"`
	Communications []*domain.CommunicationLog `json:"communications"`
	Responses      []*domain.ResponseFunding  `json:"responses"`
}

// ArtifactRequest is bound from multipart form fields.
type ArtifactRequest struct {
	Type        domain.ArtifactType `form:"type" binding:"required"`
	Name        string              `form:"name" binding:"required,max=255"`
	Labels      string              `form:"labels" binding:"max=500"`
	Description string              `form:"description"`
}

type DraftRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Subject     string   `json:"subject" binding:"required,max=255"`
	Body        string   `json:"body" binding:"required"`
	ArtifactIDs []string `json:"artifact_ids"`
}

type SendDraftRequest struct {
	InvestorID string `json:"investor_id" binding:"required"`
}

type SendEmailRequest struct {
	To          string   `json:"to" binding:"required,email"`
	Subject     string   `json:"subject" binding:"required"`
	Body        string   `json:"body" binding:"required"`
	ArtifactIDs []string `json:"artifact_ids"`
}

type ResponseRequest struct {
	CommunicationID string                `json:"communication_id" binding:"required"`
	Status          domain.ResponseStatus `json:"status"`
	AmountOffered   decimal.Decimal       `json:"amount_offered"`
	Notes           string                `json:"notes"`
	ResponseDate    *time.Time            `json:"response_date"`
}

// EmailAging buckets successful sends by age.
type EmailAging struct {
	LessThan7Days  int64 `json:"less_than_7_days"`
	From7To15Days  int64 `json:"from_7_to_15_days"`
	From15To30Days int64 `json:"from_15_to_30_days"`
	MoreThan30Days int64 `json:"more_than_30_days"`
}

type ResponseStat struct {
	Status domain.ResponseStatus `json:"status"`
	Count  int64                 `json:"count"`
	Amount decimal.Decimal       `json:"amount"`
}

type Dashboard struct {
	TotalInvestors       int64                      `json:"total_investors"`
	TotalArtifacts       int64                      `json:"total_artifacts"`
	TotalDrafts          int64                      `json:"total_drafts"`
	EmailsSent           int64                      `json:"emails_sent"`
	EmailAging           EmailAging                 `json:"email_aging"`
	ResponseStats        []ResponseStat             `json:"response_stats"`
	RecentCommunications []*domain.CommunicationLog `json:"recent_communications"`
	RecentResponses      []*domain.ResponseFunding  `json:"recent_responses"`
}

type Suggestion struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
