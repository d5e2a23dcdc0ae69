package domain

import (
	"strings"
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
)

// EmailDraft is a reusable email template. Name is unique and is what the
// chatbot send command refers to.
type EmailDraft struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string           `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Subject     string           `json:"subject" gorm:"size:255;not null"`
	Body        string           `json:"body" gorm:"not null"`
	Artifacts   []Artifact       `json:"artifacts" gorm:"many2many:email_draft_artifacts;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CreatedByID *string          `json:"created_by_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedBy   *authdomain.User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

// IsHTML reports whether body should go out as text/html. Any body holding
// both a '<' and a '>' counts.
func IsHTML(body string) bool {
	return strings.Contains(body, "<") && strings.Contains(body, ">")
}
