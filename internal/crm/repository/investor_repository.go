package repository

import (
	"errors"
	"time"

	"fundraise-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// investorRepository implements InvestorRepository using GORM
type investorRepository struct {
	db *gorm.DB
}

// NewInvestorRepository creates a new GORM-based InvestorRepository
func NewInvestorRepository(db *gorm.DB) InvestorRepository {
	return &investorRepository{db: db}
}

func (r *investorRepository) Create(investor *domain.Investor) error {
	if investor.ID == "" {
		investor.ID = uuid.New().String()
	}
	investor.CreatedAt = time.Now()
	investor.UpdatedAt = investor.CreatedAt
	return r.db.Create(investor).Error
}

func (r *investorRepository) FindByID(id string) (*domain.Investor, error) {
	return r.findOne("id = ?", id)
}

func (r *investorRepository) FindByEmail(email string) (*domain.Investor, error) {
	return r.findOne("email = ?", email)
}

func (r *investorRepository) findOne(query string, arg interface{}) (*domain.Investor, error) {
	var investor domain.Investor
	err := r.db.Where(query, arg).First(&investor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investor, nil
}

func (r *investorRepository) GetOrCreateByEmail(email string, defaults domain.Investor) (*domain.Investor, bool, error) {
	existing, err := r.FindByEmail(email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	investor := defaults
	investor.ID = ""
	investor.Email = email
	if err := r.Create(&investor); err != nil {
		// A concurrent insert of the same email wins the unique index; use its row.
		existing, findErr := r.FindByEmail(email)
		if findErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return &investor, true, nil
}

func (r *investorRepository) List(query string) ([]*domain.Investor, error) {
	var investors []*domain.Investor
	db := r.db.Model(&domain.Investor{})
	if query != "" {
		db = whereContains(db, query, "name", "email", "labels")
	}
	err := db.Order("created_at DESC").Find(&investors).Error
	return investors, err
}

func (r *investorRepository) Update(investor *domain.Investor) error {
	investor.UpdatedAt = time.Now()
	return r.db.Save(investor).Error
}

func (r *investorRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investor_id = ?", id).Delete(&domain.ResponseFunding{}).Error; err != nil {
			return err
		}
		logIDs := tx.Model(&domain.CommunicationLog{}).Select("id").Where("investor_id = ?", id)
		if err := tx.Where("communication_id IN (?)", logIDs).Delete(&domain.ResponseFunding{}).Error; err != nil {
			return err
		}
		if err := tx.Where("investor_id = ?", id).Delete(&domain.CommunicationLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Investor{}, "id = ?", id).Error
	})
}

func (r *investorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Investor{}).Count(&count).Error
	return count, err
}
