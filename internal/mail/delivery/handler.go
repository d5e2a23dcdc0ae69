package delivery

import (
	"net/http"

	authdelivery "fundraise-backend/internal/auth/delivery"
	crmdelivery "fundraise-backend/internal/crm/delivery"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/mail/usecase"

	"github.com/gin-gonic/gin"
)

type MailHandler struct {
	mailUsecase usecase.MailUsecase
}

func NewMailHandler(mailUsecase usecase.MailUsecase) *MailHandler {
	return &MailHandler{mailUsecase: mailUsecase}
}

// SendDraft sends a stored draft to an investor and logs the attempt.
// A transport failure is still a 200; the body carries success=false.
// POST /api/drafts/:id/send
func (h *MailHandler) SendDraft(c *gin.Context) {
	var req dto.SendDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.mailUsecase.SendDraftByID(c.Request.Context(), c.Param("id"), req.InvestorID, authdelivery.CurrentUser(c))
	if err != nil {
		crmdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// SendEmail sends an ad-hoc message with optional artifact attachments
// POST /api/emails/send
func (h *MailHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.mailUsecase.SendCustomWithArtifacts(c.Request.Context(), req.To, req.Subject, req.Body, req.ArtifactIDs, authdelivery.CurrentUser(c))
	if err != nil {
		crmdelivery.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
