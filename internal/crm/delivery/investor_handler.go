package delivery

import (
	"net/http"

	authdelivery "fundraise-backend/internal/auth/delivery"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type InvestorHandler struct {
	investorUsecase usecase.InvestorUsecase
}

func NewInvestorHandler(investorUsecase usecase.InvestorUsecase) *InvestorHandler {
	return &InvestorHandler{investorUsecase: investorUsecase}
}

// ListInvestors searches name, email and labels
// GET /api/investors?q=vc
func (h *InvestorHandler) ListInvestors(c *gin.Context) {
	investors, err := h.investorUsecase.List(c.Query("q"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors": investors,
		"total":     len(investors),
	})
}

// GetInvestor returns the investor with its communications and responses
// GET /api/investors/:id
func (h *InvestorHandler) GetInvestor(c *gin.Context) {
	detail, err := h.investorUsecase.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// POST /api/investors
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
	var req dto.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investor, err := h.investorUsecase.Create(&req, authdelivery.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investor)
}

// PUT /api/investors/:id
func (h *InvestorHandler) UpdateInvestor(c *gin.Context) {
	var req dto.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investor, err := h.investorUsecase.Update(c.Param("id"), &req, authdelivery.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, investor)
}

// DeleteInvestor also removes the investor's communications and responses
// DELETE /api/investors/:id
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	if err := h.investorUsecase.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investor deleted successfully"})
}
