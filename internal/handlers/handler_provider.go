package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type providerHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func registerProviderRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := &providerHandler{catalogService: catalogService}

	providers := rg.Group("/providers")
	{
		providers.GET("", h.listProviders)
		providers.POST("", h.createProvider)
		providers.GET("/:id", h.getProvider)
		providers.PUT("/:id", h.updateProvider)
		providers.PATCH("/:id/active", h.setActive)
		providers.DELETE("/:id", h.deleteProvider)
	}
}

// createProvider godoc
// @Summary Create a provider
// @Tags providers
// @Accept  json
// @Produce  json
// @Param   provider body dto.CreateProviderRequest true "Provider details"
// @Success 201 {object} dto.ProviderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers [post]
func (h *providerHandler) createProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, err := h.catalogService.CreateProvider(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create provider")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProviderResponse(provider))
}

// getProvider godoc
// @Summary Get a provider
// @Tags providers
// @Produce  json
// @Param   id path string true "Provider ID"
// @Success 200 {object} dto.ProviderResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers/{id} [get]
func (h *providerHandler) getProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	provider, err := h.catalogService.GetProvider(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve provider")
		return
	}
	c.JSON(http.StatusOK, dto.ToProviderResponse(provider))
}

// listProviders godoc
// @Summary List providers
// @Tags providers
// @Produce  json
// @Param   active query bool false "Only active (true) or inactive (false) providers"
// @Success 200 {array} dto.ProviderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers [get]
func (h *providerHandler) listProviders(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'active' query parameter"})
			return
		}
		active = &v
	}
	providers, err := h.catalogService.ListProviders(c.Request.Context(), actor, active)
	if err != nil {
		respondError(c, err, "Failed to list providers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProviderResponse(providers))
}

// updateProvider godoc
// @Summary Update a provider
// @Tags providers
// @Accept  json
// @Produce  json
// @Param   id path string true "Provider ID"
// @Param   provider body dto.UpdateProviderRequest true "Fields to update"
// @Success 200 {object} dto.ProviderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers/{id} [put]
func (h *providerHandler) updateProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, err := h.catalogService.UpdateProvider(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update provider")
		return
	}
	c.JSON(http.StatusOK, dto.ToProviderResponse(provider))
}

// setActive godoc
// @Summary Activate or deactivate a provider
// @Tags providers
// @Accept  json
// @Produce  json
// @Param   id path string true "Provider ID"
// @Param   body body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} dto.ProviderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers/{id}/active [patch]
func (h *providerHandler) setActive(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, err := h.catalogService.SetProviderActive(c.Request.Context(), actor, c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, err, "Failed to update provider")
		return
	}
	c.JSON(http.StatusOK, dto.ToProviderResponse(provider))
}

// deleteProvider godoc
// @Summary Delete a provider
// @Description Products that default to the provider lose their default provider.
// @Tags providers
// @Param   id path string true "Provider ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /providers/{id} [delete]
func (h *providerHandler) deleteProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProvider(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete provider")
		return
	}
	c.Status(http.StatusNoContent)
}
