package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
)

// draftUserHandler handles HTTP requests for prospective members.
type draftUserHandler struct {
	draftService portssvc.DraftUserSvcFacade
}

func newDraftUserHandler(draftService portssvc.DraftUserSvcFacade) *draftUserHandler {
	return &draftUserHandler{draftService: draftService}
}

// registerPublicDraftUserRoutes registers the unauthenticated self-service
// registration endpoint. The caller supplies the rate limiting middleware.
func registerPublicDraftUserRoutes(r *gin.Engine, draftService portssvc.DraftUserSvcFacade, rateLimit gin.HandlerFunc) {
	h := newDraftUserHandler(draftService)
	r.POST("/api/v1/draft-users/register", rateLimit, h.registerDraftUser)
}

// registerDraftUserRoutes registers routes for the member office.
func registerDraftUserRoutes(rg *gin.RouterGroup, draftService portssvc.DraftUserSvcFacade) {
	h := newDraftUserHandler(draftService)

	drafts := rg.Group("/draft-users")
	{
		drafts.POST("", h.createDraftUser)
		drafts.GET("", h.listDraftUsers)
		drafts.GET("/:id", h.getDraftUser)
		drafts.PATCH("/:id", h.updateDraftUser)
		drafts.DELETE("/:id", h.deleteDraftUser)
		drafts.POST("/:id/signed-membership-agreement", h.markSignedMembershipAgreement)
		drafts.POST("/:id/attended-welcome-session", h.markAttendedWelcomeSession)
		drafts.POST("/:id/register-payment", h.registerPayment)
		drafts.POST("/:id/convert", h.convertToShareOwner)
	}
}

func draftIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft user ID"})
		return 0, false
	}
	return id, true
}

// registerDraftUser godoc
// @Summary Register as a prospective member
// @Description Public self-service membership application, rate limited by client IP
// @Tags draft-users
// @Accept json
// @Produce json
// @Param draft body dto.RegisterDraftUserRequest true "Application details"
// @Success 201 {object} dto.DraftUserResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /draft-users/register [post]
func (h *draftUserHandler) registerDraftUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterDraftUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for draft registration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft, err := h.draftService.RegisterDraftUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to register")
		return
	}

	logger.Info("Draft user registered", slog.Int64("draft_id", draft.ID))
	c.JSON(http.StatusCreated, dto.ToDraftUserResponse(draft))
}

// createDraftUser godoc
// @Summary Create a draft user
// @Description Creates a prospective member from the member office
// @Tags draft-users
// @Accept json
// @Produce json
// @Param draft body dto.CreateDraftUserRequest true "Draft user details"
// @Success 201 {object} dto.DraftUserResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /draft-users [post]
func (h *draftUserHandler) createDraftUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateDraftUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft, err := h.draftService.CreateDraftUser(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create draft user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDraftUserResponse(draft))
}

// listDraftUsers godoc
// @Summary List draft users
// @Tags draft-users
// @Produce json
// @Success 200 {array} dto.DraftUserResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /draft-users [get]
func (h *draftUserHandler) listDraftUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	drafts, err := h.draftService.ListDraftUsers(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list draft users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDraftUsersResponse(drafts))
}

// getDraftUser godoc
// @Summary Get a draft user by ID
// @Tags draft-users
// @Produce json
// @Param id path int true "Draft user ID"
// @Success 200 {object} dto.DraftUserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id} [get]
func (h *draftUserHandler) getDraftUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := draftIDParam(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraftUser(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to get draft user")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftUserResponse(draft))
}

// updateDraftUser godoc
// @Summary Update a draft user
// @Description Edits a draft; unchanged submissions write no audit entry
// @Tags draft-users
// @Accept json
// @Produce json
// @Param id path int true "Draft user ID"
// @Param draft body dto.UpdateDraftUserRequest true "Fields to update"
// @Success 200 {object} dto.DraftUserResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id} [patch]
func (h *draftUserHandler) updateDraftUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := draftIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateDraftUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft, err := h.draftService.UpdateDraftUser(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update draft user")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftUserResponse(draft))
}

// deleteDraftUser godoc
// @Summary Delete a draft user
// @Tags draft-users
// @Param id path int true "Draft user ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id} [delete]
func (h *draftUserHandler) deleteDraftUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := draftIDParam(c)
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraftUser(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "Failed to delete draft user")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *draftUserHandler) markFlag(c *gin.Context, mark func(actor domain.Actor, id int64) (*domain.DraftUser, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := draftIDParam(c)
	if !ok {
		return
	}

	draft, err := mark(actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to update draft user")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftUserResponse(draft))
}

// markSignedMembershipAgreement godoc
// @Summary Record the signed membership agreement
// @Tags draft-users
// @Produce json
// @Param id path int true "Draft user ID"
// @Success 200 {object} dto.DraftUserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id}/signed-membership-agreement [post]
func (h *draftUserHandler) markSignedMembershipAgreement(c *gin.Context) {
	h.markFlag(c, func(actor domain.Actor, id int64) (*domain.DraftUser, error) {
		return h.draftService.MarkSignedMembershipAgreement(c.Request.Context(), actor, id)
	})
}

// markAttendedWelcomeSession godoc
// @Summary Record welcome session attendance
// @Tags draft-users
// @Produce json
// @Param id path int true "Draft user ID"
// @Success 200 {object} dto.DraftUserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id}/attended-welcome-session [post]
func (h *draftUserHandler) markAttendedWelcomeSession(c *gin.Context) {
	h.markFlag(c, func(actor domain.Actor, id int64) (*domain.DraftUser, error) {
		return h.draftService.MarkAttendedWelcomeSession(c.Request.Context(), actor, id)
	})
}

// registerPayment godoc
// @Summary Record the membership fee payment
// @Tags draft-users
// @Produce json
// @Param id path int true "Draft user ID"
// @Success 200 {object} dto.DraftUserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id}/register-payment [post]
func (h *draftUserHandler) registerPayment(c *gin.Context) {
	h.markFlag(c, func(actor domain.Actor, id int64) (*domain.DraftUser, error) {
		return h.draftService.RegisterPayment(c.Request.Context(), actor, id)
	})
}

// convertToShareOwner godoc
// @Summary Convert a draft user into a member
// @Description Creates the member with its initial shares and removes the draft in one transaction
// @Tags draft-users
// @Produce json
// @Param id path int true "Draft user ID"
// @Success 201 {object} dto.ShareOwnerResponse
// @Failure 400 {object} map[string]string "Draft has not completed the required steps"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /draft-users/{id}/convert [post]
func (h *draftUserHandler) convertToShareOwner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := draftIDParam(c)
	if !ok {
		return
	}

	owner, err := h.draftService.ConvertToShareOwner(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to convert draft user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft user converted",
		slog.Int64("draft_id", id), slog.Int64("member_id", owner.ID))
	c.JSON(http.StatusCreated, dto.ToShareOwnerResponse(owner, time.Now()))
}
