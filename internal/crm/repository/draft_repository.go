package repository

import (
	"errors"
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// draftRepository implements DraftRepository using GORM
type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(draft *domain.EmailDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt
	// Artifacts already exist; only the join rows are written.
	return r.db.Omit("CreatedBy", "Artifacts.*").Create(draft).Error
}

func (r *draftRepository) FindByID(id string) (*domain.EmailDraft, error) {
	return r.findOne("id = ?", id)
}

func (r *draftRepository) FindByName(name string) (*domain.EmailDraft, error) {
	return r.findOne("LOWER(name) = LOWER(?)", name)
}

func (r *draftRepository) findOne(query string, arg interface{}) (*domain.EmailDraft, error) {
	var draft domain.EmailDraft
	err := r.db.Preload("Artifacts").Where(query, arg).First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) Names() ([]string, error) {
	var names []string
	err := r.db.Model(&domain.EmailDraft{}).Order("created_at DESC").Pluck("name", &names).Error
	return names, err
}

func (r *draftRepository) List() ([]*domain.EmailDraft, error) {
	var drafts []*domain.EmailDraft
	err := r.db.Preload("Artifacts").Order("created_at DESC").Find(&drafts).Error
	return drafts, err
}

func (r *draftRepository) Update(draft *domain.EmailDraft) error {
	draft.UpdatedAt = time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CreatedBy", "Artifacts").Save(draft).Error; err != nil {
			return err
		}
		assoc := tx.Model(draft).Association("Artifacts")
		if len(draft.Artifacts) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(draft.Artifacts)
	})
}

func (r *draftRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.CommunicationLog{}).Where("draft_id = ?", id).Update("draft_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM email_draft_artifacts WHERE email_draft_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.EmailDraft{}, "id = ?", id).Error
	})
}

func (r *draftRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.EmailDraft{}).Count(&count).Error
	return count, err
}
