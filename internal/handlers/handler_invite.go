package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/SscSPs/restaurant_supply_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type inviteHandler struct {
	inviteService portssvc.InviteSvcFacade
}

func newInviteHandler(is portssvc.InviteSvcFacade) *inviteHandler {
	return &inviteHandler{inviteService: is}
}

func registerInviteRoutes(rg *gin.RouterGroup, inviteService portssvc.InviteSvcFacade) {
	h := newInviteHandler(inviteService)

	codes := rg.Group("/invite-codes")
	{
		codes.GET("", h.listInviteCodes)
		codes.POST("", h.createInviteCode)
		codes.POST("/:code/release", h.releaseInviteCode)
	}
}

// createInviteCode godoc
// @Summary Create an invite code
// @Description Creates a single-use invite code for the caller's organization. An empty code is generated.
// @Tags invite-codes
// @Accept  json
// @Produce  json
// @Param   code body dto.CreateInviteCodeRequest true "Invite code"
// @Success 201 {object} dto.InviteCodeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invite-codes [post]
func (h *inviteHandler) createInviteCode(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateInviteCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	code, err := h.inviteService.CreateInviteCode(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create invite code")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invite code created", slog.String("code", code.Code))
	c.JSON(http.StatusCreated, dto.ToInviteCodeResponse(code))
}

// listInviteCodes godoc
// @Summary List invite codes
// @Tags invite-codes
// @Produce  json
// @Success 200 {array} dto.InviteCodeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invite-codes [get]
func (h *inviteHandler) listInviteCodes(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	codes, err := h.inviteService.ListInviteCodes(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list invite codes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInviteCodeResponse(codes))
}

// releaseInviteCode godoc
// @Summary Reopen an invite code
// @Description Marks a used invite code of the caller's organization as unused again.
// @Tags invite-codes
// @Produce  json
// @Param   code path string true "Invite code"
// @Success 200 {object} dto.InviteCodeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invite-codes/{code}/release [post]
func (h *inviteHandler) releaseInviteCode(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	code, err := h.inviteService.ReleaseInviteCode(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to release invite code")
		return
	}
	c.JSON(http.StatusOK, dto.ToInviteCodeResponse(code))
}
