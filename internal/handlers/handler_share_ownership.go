package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
)

// shareOwnershipHandler handles HTTP requests for individual share records.
type shareOwnershipHandler struct {
	ownershipService portssvc.ShareOwnershipSvcFacade
}

func newShareOwnershipHandler(ownershipService portssvc.ShareOwnershipSvcFacade) *shareOwnershipHandler {
	return &shareOwnershipHandler{ownershipService: ownershipService}
}

func registerShareOwnershipRoutes(rg *gin.RouterGroup, ownershipService portssvc.ShareOwnershipSvcFacade) {
	h := newShareOwnershipHandler(ownershipService)

	rg.POST("/members/:id/share-ownerships", h.createShareOwnerships)

	ownerships := rg.Group("/share-ownerships")
	{
		ownerships.PUT("/:id", h.updateShareOwnership)
		ownerships.DELETE("/:id", h.deleteShareOwnership)
	}
}

func ownershipIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ownership ID"})
		return 0, false
	}
	return id, true
}

// createShareOwnerships godoc
// @Summary Create shares for a member
// @Description Creates the requested number of share records in one transaction and notifies the member
// @Tags share-ownerships
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param shares body dto.CreateShareOwnershipsRequest true "Share details"
// @Success 201 {array} dto.ShareOwnershipResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/share-ownerships [post]
func (h *shareOwnershipHandler) createShareOwnerships(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ownerID, ok := ownerIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateShareOwnershipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerships, err := h.ownershipService.CreateShareOwnerships(c.Request.Context(), actor, ownerID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create shares")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shares created",
		slog.Int64("member_id", ownerID), slog.Int("num_shares", len(ownerships)))

	responses := make([]dto.ShareOwnershipResponse, len(ownerships))
	for i := range ownerships {
		responses[i] = dto.ToShareOwnershipResponse(&ownerships[i])
	}
	c.JSON(http.StatusCreated, responses)
}

// updateShareOwnership godoc
// @Summary Update a share record
// @Description Edits dates or the paid amount; unchanged submissions write no audit entry
// @Tags share-ownerships
// @Accept json
// @Produce json
// @Param id path int true "Share ownership ID"
// @Param share body dto.UpdateShareOwnershipRequest true "Fields to update"
// @Success 200 {object} dto.ShareOwnershipResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /share-ownerships/{id} [put]
func (h *shareOwnershipHandler) updateShareOwnership(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownershipIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateShareOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownership, err := h.ownershipService.UpdateShareOwnership(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update share")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareOwnershipResponse(ownership))
}

// deleteShareOwnership godoc
// @Summary Delete a share record
// @Description Destructive correction for erroneous entries, restricted to administrators
// @Tags share-ownerships
// @Param id path int true "Share ownership ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /share-ownerships/{id} [delete]
func (h *shareOwnershipHandler) deleteShareOwnership(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownershipIDParam(c)
	if !ok {
		return
	}

	if err := h.ownershipService.DeleteShareOwnership(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "Failed to delete share")
		return
	}
	c.Status(http.StatusNoContent)
}
