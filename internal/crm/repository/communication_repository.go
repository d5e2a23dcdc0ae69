package repository

import (
	"errors"
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// communicationRepository implements CommunicationRepository using GORM.
// There is deliberately no Update: log rows are immutable.
type communicationRepository struct {
	db *gorm.DB
}

func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(log *domain.CommunicationLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.SentAt.IsZero() {
		log.SentAt = time.Now()
	}
	return r.db.Omit("Investor", "Draft", "SentBy").Create(log).Error
}

func (r *communicationRepository) FindByID(id string) (*domain.CommunicationLog, error) {
	var log domain.CommunicationLog
	err := r.withRelations().Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *communicationRepository) List(limit int) ([]*domain.CommunicationLog, error) {
	var logs []*domain.CommunicationLog
	db := r.withRelations().Order("sent_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&logs).Error
	return logs, err
}

func (r *communicationRepository) ListByInvestor(investorID string) ([]*domain.CommunicationLog, error) {
	var logs []*domain.CommunicationLog
	err := r.db.Preload("Draft").Preload("SentBy").
		Where("investor_id = ?", investorID).
		Order("sent_at DESC").Find(&logs).Error
	return logs, err
}

func (r *communicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.CommunicationLog{}).Count(&count).Error
	return count, err
}

func (r *communicationRepository) CountByStatus(status domain.CommunicationStatus) (int64, error) {
	return r.CountSentBetween(status, nil, nil)
}

func (r *communicationRepository) CountSentBetween(status domain.CommunicationStatus, from, to *time.Time) (int64, error) {
	var count int64
	db := r.db.Model(&domain.CommunicationLog{}).Where("status = ?", status)
	if from != nil {
		db = db.Where("sent_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("sent_at < ?", *to)
	}
	err := db.Count(&count).Error
	return count, err
}

func (r *communicationRepository) withRelations() *gorm.DB {
	return r.db.Preload("Investor").Preload("Draft").Preload("SentBy")
}
