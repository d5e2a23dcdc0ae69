package usecase

import (
	"fmt"
	"strings"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/repository"
)

type draftUsecase struct {
	draftRepo    repository.DraftRepository
	artifactRepo repository.ArtifactRepository
}

func NewDraftUsecase(draftRepo repository.DraftRepository, artifactRepo repository.ArtifactRepository) DraftUsecase {
	return &draftUsecase{draftRepo: draftRepo, artifactRepo: artifactRepo}
}

func (u *draftUsecase) List() ([]*domain.EmailDraft, error) {
	return u.draftRepo.List()
}

func (u *draftUsecase) Get(id string) (*domain.EmailDraft, error) {
	draft, err := u.draftRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (u *draftUsecase) Create(req *dto.DraftRequest, actor *authdomain.User) (*domain.EmailDraft, error) {
	name := strings.TrimSpace(req.Name)
	if err := u.checkNameFree(name, ""); err != nil {
		return nil, err
	}
	artifacts, err := u.resolveArtifacts(req.ArtifactIDs)
	if err != nil {
		return nil, err
	}

	draft := &domain.EmailDraft{
		Name:        name,
		Subject:     req.Subject,
		Body:        req.Body,
		Artifacts:   artifacts,
		CreatedByID: actorID(actor),
	}
	if err := u.draftRepo.Create(draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (u *draftUsecase) Update(id string, req *dto.DraftRequest) (*domain.EmailDraft, error) {
	draft, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := u.checkNameFree(name, id); err != nil {
		return nil, err
	}
	artifacts, err := u.resolveArtifacts(req.ArtifactIDs)
	if err != nil {
		return nil, err
	}

	draft.Name = name
	draft.Subject = req.Subject
	draft.Body = req.Body
	draft.Artifacts = artifacts
	if err := u.draftRepo.Update(draft); err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return draft, nil
}

func (u *draftUsecase) Delete(id string) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	return u.draftRepo.Delete(id)
}

// checkNameFree fails when another draft already uses name, compared
// case-insensitively since that is how the chatbot resolves drafts.
func (u *draftUsecase) checkNameFree(name, selfID string) error {
	existing, err := u.draftRepo.FindByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrDraftNameTaken
	}
	return nil
}

func (u *draftUsecase) resolveArtifacts(ids []string) ([]domain.Artifact, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	found, err := u.artifactRepo.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, ErrArtifactNotFound
	}

	artifacts := make([]domain.Artifact, 0, len(found))
	for _, a := range found {
		artifacts = append(artifacts, *a)
	}
	return artifacts, nil
}
