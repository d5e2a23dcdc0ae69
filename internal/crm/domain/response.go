package domain

import (
	"time"

	authdomain "fundraise-backend/internal/auth/domain"

	"github.com/shopspring/decimal"
)

// ResponseStatus is the investor's answer to a communication
type ResponseStatus string

const (
	ResponseSuccess ResponseStatus = "success"
	ResponseFailure ResponseStatus = "failure"
	ResponsePending ResponseStatus = "pending"
)

var ResponseStatuses = []ResponseStatus{ResponseSuccess, ResponseFailure, ResponsePending}

func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseSuccess, ResponseFailure, ResponsePending:
		return true
	}
	return false
}

// ResponseFunding records an investor's reply to a specific communication.
// ResponseDate is supplied by whoever records it and is distinct from CreatedAt.
type ResponseFunding struct {
	ID              string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CommunicationID string            `json:"communication_id" gorm:"type:varchar(36);index;not null"`
	Communication   *CommunicationLog `json:"communication,omitempty" gorm:"foreignKey:CommunicationID;constraint:OnDelete:CASCADE"`
	InvestorID      string            `json:"investor_id" gorm:"type:varchar(36);index;not null"`
	Investor        *Investor         `json:"investor,omitempty" gorm:"foreignKey:InvestorID;constraint:OnDelete:CASCADE"`
	Status          ResponseStatus    `json:"status" gorm:"size:10;not null;default:pending"`
	AmountOffered   decimal.Decimal   `json:"amount_offered" gorm:"type:numeric(15,2)"`
	Notes           string            `json:"notes"`
	ResponseDate    time.Time         `json:"response_date" gorm:"index"`
	CreatedAt       time.Time         `json:"created_at"`
	CreatedByID     *string           `json:"created_by_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedBy       *authdomain.User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}
