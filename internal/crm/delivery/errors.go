package delivery

import (
	"errors"
	"net/http"

	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

// ErrorStatus maps usecase errors to HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvestorNotFound),
		errors.Is(err, usecase.ErrArtifactNotFound),
		errors.Is(err, usecase.ErrDraftNotFound),
		errors.Is(err, usecase.ErrCommunicationNotFound),
		errors.Is(err, usecase.ErrResponseNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvestorEmailTaken),
		errors.Is(err, usecase.ErrDraftNameTaken):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidArtifactType),
		errors.Is(err, usecase.ErrInvalidResponseStatus),
		errors.Is(err, usecase.ErrNegativeAmount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RespondError writes err with the status ErrorStatus picks.
func RespondError(c *gin.Context, err error) {
	c.JSON(ErrorStatus(err), gin.H{"error": err.Error()})
}
