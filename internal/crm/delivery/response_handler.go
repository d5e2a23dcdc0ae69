package delivery

import (
	"net/http"

	authdelivery "fundraise-backend/internal/auth/delivery"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responseUsecase usecase.ResponseUsecase
}

func NewResponseHandler(responseUsecase usecase.ResponseUsecase) *ResponseHandler {
	return &ResponseHandler{responseUsecase: responseUsecase}
}

// ListResponses
// GET /api/responses?status=pending
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	responses, err := h.responseUsecase.List(domain.ResponseStatus(c.Query("status")))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": responses,
		"total":     len(responses),
	})
}

// CreateResponse records a reply to a communication
// POST /api/responses
func (h *ResponseHandler) CreateResponse(c *gin.Context) {
	var req dto.ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.responseUsecase.Create(&req, authdelivery.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// PUT /api/responses/:id
func (h *ResponseHandler) UpdateResponse(c *gin.Context) {
	var req dto.ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.responseUsecase.Update(c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DELETE /api/responses/:id
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	if err := h.responseUsecase.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response deleted successfully"})
}
