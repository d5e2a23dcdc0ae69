package usecase

import (
	"fmt"
	"strings"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/repository"
)

type investorUsecase struct {
	investorRepo      repository.InvestorRepository
	communicationRepo repository.CommunicationRepository
	responseRepo      repository.ResponseRepository
}

func NewInvestorUsecase(
	investorRepo repository.InvestorRepository,
	communicationRepo repository.CommunicationRepository,
	responseRepo repository.ResponseRepository,
) InvestorUsecase {
	return &investorUsecase{
		investorRepo:      investorRepo,
		communicationRepo: communicationRepo,
		responseRepo:      responseRepo,
	}
}

func (u *investorUsecase) List(query string) ([]*domain.Investor, error) {
	return u.investorRepo.List(strings.TrimSpace(query))
}

func (u *investorUsecase) Get(id string) (*dto.InvestorDetail, error) {
	investor, err := u.find(id)
	if err != nil {
		return nil, err
	}

	communications, err := u.communicationRepo.ListByInvestor(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load communications: %w", err)
	}
	responses, err := u.responseRepo.ListByInvestor(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	return &dto.InvestorDetail{
		Investor:       investor,
		Labels:         investor.LabelList(),
		Communications: communications,
		Responses:      responses,
	}, nil
}

func (u *investorUsecase) Create(req *dto.InvestorRequest, actor *authdomain.User) (*domain.Investor, error) {
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	email := strings.TrimSpace(req.Email)
	existing, err := u.investorRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvestorEmailTaken
	}

	investor := &domain.Investor{Email: email}
	applyInvestorRequest(investor, req, actor)
	if err := u.investorRepo.Create(investor); err != nil {
		return nil, fmt.Errorf("failed to create investor: %w", err)
	}
	return investor, nil
}

func (u *investorUsecase) Update(id string, req *dto.InvestorRequest, actor *authdomain.User) (*domain.Investor, error) {
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	investor, err := u.find(id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if email != investor.Email {
		other, err := u.investorRepo.FindByEmail(email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrInvestorEmailTaken
		}
		investor.Email = email
	}

	applyInvestorRequest(investor, req, actor)
	if err := u.investorRepo.Update(investor); err != nil {
		return nil, fmt.Errorf("failed to update investor: %w", err)
	}
	return investor, nil
}

func (u *investorUsecase) Delete(id string) error {
	if _, err := u.find(id); err != nil {
		return err
	}
	return u.investorRepo.Delete(id)
}

func (u *investorUsecase) find(id string) (*domain.Investor, error) {
	investor, err := u.investorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}

func applyInvestorRequest(investor *domain.Investor, req *dto.InvestorRequest, actor *authdomain.User) {
	investor.Name = strings.TrimSpace(req.Name)
	investor.Labels = req.Labels
	investor.Address = req.Address
	investor.Details = req.Details
	investor.Amount = req.Amount
	investor.UpdatedBy = ActorName(actor)
}
