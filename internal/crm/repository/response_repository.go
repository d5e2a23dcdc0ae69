package repository

import (
	"errors"
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// responseRepository implements ResponseRepository using GORM
type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *domain.ResponseFunding) error {
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	if response.Status == "" {
		response.Status = domain.ResponsePending
	}
	response.CreatedAt = time.Now()
	return r.db.Omit("Communication", "Investor", "CreatedBy").Create(response).Error
}

func (r *responseRepository) FindByID(id string) (*domain.ResponseFunding, error) {
	var response domain.ResponseFunding
	err := r.db.Preload("Investor").Preload("Communication").Where("id = ?", id).First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) List(status domain.ResponseStatus, limit int) ([]*domain.ResponseFunding, error) {
	var responses []*domain.ResponseFunding
	db := r.db.Preload("Investor").Preload("Communication").Order("response_date DESC")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&responses).Error
	return responses, err
}

func (r *responseRepository) ListByInvestor(investorID string) ([]*domain.ResponseFunding, error) {
	var responses []*domain.ResponseFunding
	err := r.db.Where("investor_id = ?", investorID).Order("response_date DESC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) Update(response *domain.ResponseFunding) error {
	return r.db.Omit("Communication", "Investor", "CreatedBy").Save(response).Error
}

func (r *responseRepository) Delete(id string) error {
	return r.db.Delete(&domain.ResponseFunding{}, "id = ?", id).Error
}

func (r *responseRepository) StatsByStatus() ([]ResponseStat, error) {
	var rows []struct {
		Status domain.ResponseStatus
		Count  int64
		Total  decimal.NullDecimal
	}
	err := r.db.Model(&domain.ResponseFunding{}).
		Select("status, COUNT(*) AS count, SUM(amount_offered) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.ResponseStatus]ResponseStat, len(rows))
	for _, row := range rows {
		amount := decimal.Zero
		if row.Total.Valid {
			amount = row.Total.Decimal
		}
		byStatus[row.Status] = ResponseStat{Status: row.Status, Count: row.Count, Amount: amount}
	}

	// every status is reported, zeroed when it has no rows
	stats := make([]ResponseStat, 0, len(domain.ResponseStatuses))
	for _, status := range domain.ResponseStatuses {
		stat, ok := byStatus[status]
		if !ok {
			stat = ResponseStat{Status: status, Amount: decimal.Zero}
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
