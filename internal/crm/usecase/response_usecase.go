package usecase

import (
	"fmt"
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/repository"
)

type responseUsecase struct {
	responseRepo      repository.ResponseRepository
	communicationRepo repository.CommunicationRepository
	now               clock
}

func NewResponseUsecase(responseRepo repository.ResponseRepository, communicationRepo repository.CommunicationRepository) ResponseUsecase {
	return &responseUsecase{
		responseRepo:      responseRepo,
		communicationRepo: communicationRepo,
		now:               time.Now,
	}
}

func (u *responseUsecase) List(status domain.ResponseStatus) ([]*domain.ResponseFunding, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidResponseStatus
	}
	return u.responseRepo.List(status, 0)
}

func (u *responseUsecase) Create(req *dto.ResponseRequest, actor *authdomain.User) (*domain.ResponseFunding, error) {
	if err := validateResponseRequest(req); err != nil {
		return nil, err
	}
	communication, err := u.communicationRepo.FindByID(req.CommunicationID)
	if err != nil {
		return nil, err
	}
	if communication == nil {
		return nil, ErrCommunicationNotFound
	}

	response := &domain.ResponseFunding{
		CommunicationID: communication.ID,
		InvestorID:      communication.InvestorID,
		CreatedByID:     actorID(actor),
	}
	u.apply(response, req)
	if err := u.responseRepo.Create(response); err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}
	return response, nil
}

func (u *responseUsecase) Update(id string, req *dto.ResponseRequest) (*domain.ResponseFunding, error) {
	if err := validateResponseRequest(req); err != nil {
		return nil, err
	}
	response, err := u.responseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrResponseNotFound
	}

	// The linked communication is fixed once recorded.
	u.apply(response, req)
	if err := u.responseRepo.Update(response); err != nil {
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	return response, nil
}

func (u *responseUsecase) Delete(id string) error {
	response, err := u.responseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if response == nil {
		return ErrResponseNotFound
	}
	return u.responseRepo.Delete(id)
}

func (u *responseUsecase) apply(response *domain.ResponseFunding, req *dto.ResponseRequest) {
	response.Status = req.Status
	if response.Status == "" {
		response.Status = domain.ResponsePending
	}
	response.AmountOffered = req.AmountOffered
	response.Notes = req.Notes
	if req.ResponseDate != nil {
		response.ResponseDate = *req.ResponseDate
	} else if response.ResponseDate.IsZero() {
		response.ResponseDate = u.now()
	}
}

func validateResponseRequest(req *dto.ResponseRequest) error {
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidResponseStatus
	}
	if req.AmountOffered.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
