package domain

import (
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
)

// ArtifactType is the kind of marketing material stored
type ArtifactType string

const (
	ArtifactTypeImage        ArtifactType = "image"
	ArtifactTypeVideo        ArtifactType = "video"
	ArtifactTypePresentation ArtifactType = "presentation"
)

// ArtifactTypes lists the accepted types in display order
var ArtifactTypes = []ArtifactType{ArtifactTypeImage, ArtifactTypeVideo, ArtifactTypePresentation}

func (t ArtifactType) Valid() bool {
	switch t {
	case ArtifactTypeImage, ArtifactTypeVideo, ArtifactTypePresentation:
		return true
	}
	return false
}

// Artifact is an image, video or deck that can be attached to drafts.
// The creator may be deleted without removing the artifact.
type Artifact struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Type        ArtifactType     `json:"type" gorm:"size:20;not null"`
	Labels      string           `json:"labels" gorm:"size:500"`
	FilePath    string           `json:"file_path" gorm:"size:500"` // relative to MEDIA_ROOT
	Name        string           `json:"name" gorm:"size:255;not null"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	CreatedByID *string          `json:"created_by_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedBy   *authdomain.User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

func (a *Artifact) LabelList() []string {
	return ParseLabels(a.Labels)
}

// HasFile reports whether the artifact has a backing file.
func (a *Artifact) HasFile() bool {
	return a.FilePath != ""
}
