package repository

import (
	"errors"
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// artifactRepository implements ArtifactRepository using GORM
type artifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) Create(artifact *domain.Artifact) error {
	if artifact.ID == "" {
		artifact.ID = uuid.New().String()
	}
	artifact.CreatedAt = time.Now()
	return r.db.Omit("CreatedBy").Create(artifact).Error
}

func (r *artifactRepository) FindByID(id string) (*domain.Artifact, error) {
	var artifact domain.Artifact
	err := r.db.Where("id = ?", id).First(&artifact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) FindByIDs(ids []string) ([]*domain.Artifact, error) {
	var artifacts []*domain.Artifact
	if len(ids) == 0 {
		return artifacts, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&artifacts).Error
	return artifacts, err
}

func (r *artifactRepository) List(query string, artifactType domain.ArtifactType) ([]*domain.Artifact, error) {
	var artifacts []*domain.Artifact
	db := r.db.Model(&domain.Artifact{})
	if query != "" {
		db = whereContains(db, query, "name", "labels", "description")
	}
	if artifactType != "" {
		db = db.Where("type = ?", artifactType)
	}
	err := db.Order("created_at DESC").Find(&artifacts).Error
	return artifacts, err
}

func (r *artifactRepository) Update(artifact *domain.Artifact) error {
	return r.db.Omit("CreatedBy").Save(artifact).Error
}

func (r *artifactRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM email_draft_artifacts WHERE artifact_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Artifact{}, "id = ?", id).Error
	})
}

func (r *artifactRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Artifact{}).Count(&count).Error
	return count, err
}
