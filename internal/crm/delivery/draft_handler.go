package delivery

import (
	"net/http"

	authdelivery "fundraise-backend/internal/auth/delivery"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftUsecase usecase.DraftUsecase
}

func NewDraftHandler(draftUsecase usecase.DraftUsecase) *DraftHandler {
	return &DraftHandler{draftUsecase: draftUsecase}
}

// GET /api/drafts
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.draftUsecase.List()
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
		"total":  len(drafts),
	})
}

// GET /api/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.draftUsecase.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// POST /api/drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftUsecase.Create(&req, authdelivery.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// PUT /api/drafts/:id
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftUsecase.Update(c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft keeps the communication history; logs lose their draft link
// DELETE /api/drafts/:id
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	if err := h.draftUsecase.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted successfully"})
}
