package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Investor is a (potential) investor contact. Email is the identity key.
type Investor struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Email     string          `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Labels    string          `json:"labels" gorm:"size:500"` // comma separated, e.g. "VC, Tech, Series-A"
	Address   string          `json:"address"`
	Details   string          `json:"details"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(15,2)"`
	UpdatedBy string          `json:"updated_by" gorm:"size:150"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LabelList returns the labels split on commas with whitespace trimmed.
func (i *Investor) LabelList() []string {
	return ParseLabels(i.Labels)
}

// ParseLabels splits a comma-separated label string. An empty string yields
// an empty list.
func ParseLabels(labels string) []string {
	if labels == "" {
		return []string{}
	}
	parts := strings.Split(labels, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
