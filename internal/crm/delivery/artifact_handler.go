package delivery

import (
	"errors"
	"mime/multipart"
	"net/http"

	authdelivery "fundraise-backend/internal/auth/delivery"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type ArtifactHandler struct {
	artifactUsecase usecase.ArtifactUsecase
	maxUploadBytes  int64
}

func NewArtifactHandler(artifactUsecase usecase.ArtifactUsecase, maxUploadBytes int64) *ArtifactHandler {
	return &ArtifactHandler{artifactUsecase: artifactUsecase, maxUploadBytes: maxUploadBytes}
}

// ListArtifacts
// GET /api/artifacts?q=deck&type=presentation
func (h *ArtifactHandler) ListArtifacts(c *gin.Context) {
	artifacts, err := h.artifactUsecase.List(c.Query("q"), domain.ArtifactType(c.Query("type")))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artifacts": artifacts,
		"total":     len(artifacts),
	})
}

// GET /api/artifacts/:id
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	artifact, err := h.artifactUsecase.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artifact)
}

// CreateArtifact accepts multipart/form-data with an optional "file" part
// POST /api/artifacts
func (h *ArtifactHandler) CreateArtifact(c *gin.Context) {
	req, file, ok := h.bindUpload(c)
	if !ok {
		return
	}

	artifact, err := h.artifactUsecase.Create(req, file, authdelivery.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, artifact)
}

// UpdateArtifact replaces the stored file only when a new one is uploaded
// PUT /api/artifacts/:id
func (h *ArtifactHandler) UpdateArtifact(c *gin.Context) {
	req, file, ok := h.bindUpload(c)
	if !ok {
		return
	}

	artifact, err := h.artifactUsecase.Update(c.Param("id"), req, file)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artifact)
}

// DELETE /api/artifacts/:id
func (h *ArtifactHandler) DeleteArtifact(c *gin.Context) {
	if err := h.artifactUsecase.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artifact deleted successfully"})
}

func (h *ArtifactHandler) bindUpload(c *gin.Context) (*dto.ArtifactRequest, *multipart.FileHeader, bool) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.ArtifactRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
			return nil, nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	file, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return &req, nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return &req, file, true
}
