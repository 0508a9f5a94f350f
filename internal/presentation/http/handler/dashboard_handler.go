package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles fetching the dashboard snapshot for the authenticated user
// @Summary Get Dashboard
// @Description Pipeline counts, stagnant leads and pending notifications
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	data, err := h.dashboardService.GetDashboard(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", data)
}
