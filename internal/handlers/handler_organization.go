package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := &organizationHandler{organizationService: organizationService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Get organization settings
// @Description Returns the stored settings, or defaults when none were saved yet.
// @Tags settings
// @Produce  json
// @Success 200 {object} domain.OrganizationSettings
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *organizationHandler) getSettings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	settings, err := h.organizationService.GetSettings(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update organization settings
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} domain.OrganizationSettings
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *organizationHandler) updateSettings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.organizationService.UpdateSettings(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
