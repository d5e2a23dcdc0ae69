package usecase

import (
	"fmt"
	"mime/multipart"
	"strings"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/repository"

	"go.uber.org/zap"
)

const artifactDir = "artifacts"

type artifactUsecase struct {
	artifactRepo repository.ArtifactRepository
	files        FileStore
	logger       *zap.Logger
}

func NewArtifactUsecase(artifactRepo repository.ArtifactRepository, files FileStore, logger *zap.Logger) ArtifactUsecase {
	return &artifactUsecase{
		artifactRepo: artifactRepo,
		files:        files,
		logger:       logger.Named("artifacts"),
	}
}

func (u *artifactUsecase) List(query string, artifactType domain.ArtifactType) ([]*domain.Artifact, error) {
	if artifactType != "" && !artifactType.Valid() {
		return nil, ErrInvalidArtifactType
	}
	return u.artifactRepo.List(strings.TrimSpace(query), artifactType)
}

func (u *artifactUsecase) Get(id string) (*domain.Artifact, error) {
	artifact, err := u.artifactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}
	return artifact, nil
}

func (u *artifactUsecase) Create(req *dto.ArtifactRequest, file *multipart.FileHeader, actor *authdomain.User) (*domain.Artifact, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidArtifactType
	}

	artifact := &domain.Artifact{CreatedByID: actorID(actor)}
	applyArtifactRequest(artifact, req)

	if file != nil {
		path, err := u.files.Save(artifactDir, file)
		if err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		artifact.FilePath = path
	}

	if err := u.artifactRepo.Create(artifact); err != nil {
		u.removeFile(artifact.FilePath)
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}
	return artifact, nil
}

func (u *artifactUsecase) Update(id string, req *dto.ArtifactRequest, file *multipart.FileHeader) (*domain.Artifact, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidArtifactType
	}
	artifact, err := u.Get(id)
	if err != nil {
		return nil, err
	}

	applyArtifactRequest(artifact, req)

	oldPath := ""
	if file != nil {
		path, err := u.files.Save(artifactDir, file)
		if err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		oldPath = artifact.FilePath
		artifact.FilePath = path
	}

	if err := u.artifactRepo.Update(artifact); err != nil {
		if file != nil {
			u.removeFile(artifact.FilePath)
		}
		return nil, fmt.Errorf("failed to update artifact: %w", err)
	}
	u.removeFile(oldPath)
	return artifact, nil
}

func (u *artifactUsecase) Delete(id string) error {
	artifact, err := u.Get(id)
	if err != nil {
		return err
	}
	if err := u.artifactRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	u.removeFile(artifact.FilePath)
	return nil
}

// removeFile deletes a stored file; failures only leave an orphan behind.
func (u *artifactUsecase) removeFile(path string) {
	if path == "" {
		return
	}
	if err := u.files.Delete(path); err != nil {
		u.logger.Warn("failed to remove artifact file", zap.String("path", path), zap.Error(err))
	}
}

func applyArtifactRequest(artifact *domain.Artifact, req *dto.ArtifactRequest) {
	artifact.Type = req.Type
	artifact.Name = strings.TrimSpace(req.Name)
	artifact.Labels = req.Labels
	artifact.Description = req.Description
}
