package delivery

import (
	"net/http"
	"strconv"

	"fundraise-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardUsecase.Dashboard()
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ListCommunications returns send attempts, newest first
// GET /api/communications?limit=50
func (h *DashboardHandler) ListCommunications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	logs, err := h.dashboardUsecase.Communications(limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"communications": logs,
		"total":          len(logs),
	})
}

// GetSearchSuggestions ranks investor, artifact and draft names
// GET /api/search/suggestions?q=acm&limit=5
func (h *DashboardHandler) GetSearchSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	suggestions, err := h.dashboardUsecase.Suggest(c.Query("q"), limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
