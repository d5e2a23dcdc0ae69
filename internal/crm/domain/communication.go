package domain

import (
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
)

// CommunicationStatus is the outcome of a send attempt
type CommunicationStatus string

const (
	CommunicationSuccess CommunicationStatus = "success"
	CommunicationFailed  CommunicationStatus = "failed"
)

// CommunicationLog is the audit row written once per draft send attempt.
// Rows are append-only.
type CommunicationLog struct {
	ID         string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	InvestorID string              `json:"investor_id" gorm:"type:varchar(36);index;not null"`
	Investor   *Investor           `json:"investor,omitempty" gorm:"foreignKey:InvestorID;constraint:OnDelete:CASCADE"`
	DraftID    *string             `json:"draft_id,omitempty" gorm:"type:varchar(36);index"`
	Draft      *EmailDraft         `json:"draft,omitempty" gorm:"foreignKey:DraftID;constraint:OnDelete:SET NULL"`
	SentAt     time.Time           `json:"sent_at" gorm:"index"`
	Status     CommunicationStatus `json:"status" gorm:"size:10;not null;default:success"`
	SentByID   *string             `json:"sent_by_id,omitempty" gorm:"type:varchar(36);index"`
	SentBy     *authdomain.User    `json:"sent_by,omitempty" gorm:"foreignKey:SentByID;constraint:OnDelete:SET NULL"`
	Notes      string              `json:"notes"`
}
