package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard", h.overview)
}

// overview godoc
// @Summary Admin dashboard
// @Description Counts, last seven days, status breakdown, recent orders and top products of the organization.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.DashboardOverview
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) overview(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	overview, err := h.dashboardService.Overview(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}
