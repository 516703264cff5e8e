package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// documentHandler serves the rendered membership PDFs.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	rg.GET("/documents/membership-agreement", h.emptyMembershipAgreement)

	docs := rg.Group("/members/:id/documents")
	{
		docs.GET("/membership-agreement", h.membershipAgreement)
		docs.GET("/membership-confirmation", h.membershipConfirmation)
		docs.GET("/extra-shares-confirmation", h.extraSharesConfirmation)
	}
}

func serveDocument(c *gin.Context, doc *dto.DocumentResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// emptyMembershipAgreement godoc
// @Summary Download the blank membership agreement
// @Tags documents
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /documents/membership-agreement [get]
func (h *documentHandler) emptyMembershipAgreement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	doc, err := h.documentService.EmptyMembershipAgreement(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to render document")
		return
	}
	serveDocument(c, doc)
}

// membershipAgreement godoc
// @Summary Download a member's membership agreement
// @Description The agreement form pre-filled with the member's data
// @Tags documents
// @Produce application/pdf
// @Param id path int true "Member ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/documents/membership-agreement [get]
func (h *documentHandler) membershipAgreement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	doc, err := h.documentService.MembershipAgreement(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to render document")
		return
	}
	serveDocument(c, doc)
}

// membershipConfirmation godoc
// @Summary Download a membership confirmation
// @Description num_shares defaults to the member's currently active shares, date to today
// @Tags documents
// @Produce application/pdf
// @Param id path int true "Member ID"
// @Param num_shares query int false "Number of shares to print"
// @Param date query string false "Printed date (dd.mm.yyyy)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/documents/membership-confirmation [get]
func (h *documentHandler) membershipConfirmation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	var params dto.DocumentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameters: " + err.Error()})
		return
	}

	doc, err := h.documentService.MembershipConfirmation(c.Request.Context(), actor, id, params)
	if err != nil {
		respondServiceError(c, err, "Failed to render document")
		return
	}
	serveDocument(c, doc)
}

// extraSharesConfirmation godoc
// @Summary Download an extra-shares confirmation
// @Description Confirms additionally acquired shares; num_shares and date are required
// @Tags documents
// @Produce application/pdf
// @Param id path int true "Member ID"
// @Param num_shares query int true "Number of additional shares"
// @Param date query string true "Acquisition date (dd.mm.yyyy)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Missing or invalid parameters"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/documents/extra-shares-confirmation [get]
func (h *documentHandler) extraSharesConfirmation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	var params dto.DocumentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameters: " + err.Error()})
		return
	}

	doc, err := h.documentService.ExtraSharesConfirmation(c.Request.Context(), actor, id, params)
	if err != nil {
		respondServiceError(c, err, "Failed to render document")
		return
	}
	serveDocument(c, doc)
}
