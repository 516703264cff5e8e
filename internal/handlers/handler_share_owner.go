package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
)

// shareOwnerHandler handles HTTP requests for the member roster.
type shareOwnerHandler struct {
	ownerService portssvc.ShareOwnerSvcFacade
}

func newShareOwnerHandler(ownerService portssvc.ShareOwnerSvcFacade) *shareOwnerHandler {
	return &shareOwnerHandler{ownerService: ownerService}
}

func registerShareOwnerRoutes(rg *gin.RouterGroup, ownerService portssvc.ShareOwnerSvcFacade) {
	h := newShareOwnerHandler(ownerService)

	members := rg.Group("/members")
	{
		members.GET("", h.listRoster)
		members.GET("/export/mailchimp", h.exportMailchimp)
		members.GET("/matching-program", h.listMatchingProgram)
		members.GET("/welcome-desk", h.welcomeDeskSearch)
		members.GET("/welcome-desk/:id", h.welcomeDeskDetail)
		members.GET("/:id", h.getShareOwner)
		members.PATCH("/:id", h.updateShareOwner)
		members.GET("/:id/log-entries", h.listLogEntries)
		members.POST("/:id/attended-welcome-session", h.markAttendedWelcomeSession)
		members.POST("/:id/account", h.grantAccount)
		members.POST("/:id/send-membership-confirmation", h.sendMembershipConfirmation)
	}
}

func ownerIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return 0, false
	}
	return id, true
}

// listRoster godoc
// @Summary List the member roster
// @Description Filterable roster of all members; pass format=csv for a spreadsheet export
// @Tags members
// @Produce json
// @Param status query string false "Member status" Enums(active, investing, sold)
// @Param search query string false "Name, email or member ID"
// @Param attended_welcome_session query bool false "Filter by welcome session attendance"
// @Param ratenzahlung query bool false "Filter by installment payment"
// @Param is_company query bool false "Filter companies"
// @Param paid_membership_fee query bool false "Filter by paid entry fee"
// @Param has_account query bool false "Filter by linked login account"
// @Param has_unpaid_shares query bool false "Filter by shares not fully paid"
// @Param is_fully_paid query bool false "Filter fully paid members"
// @Param has_capability query string false "Shift capability the member has"
// @Param not_has_capability query string false "Shift capability the member lacks"
// @Param registered_to_slot_with_capability query string false "Capability of a registered slot"
// @Param shift_attendance_mode query string false "Shift attendance mode"
// @Param abcd_week query string false "ABCD week group"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.RosterResponse
// @Failure 400 {object} map[string]string "Invalid filter parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members [get]
func (h *shareOwnerHandler) listRoster(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.RosterFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters: " + err.Error()})
		return
	}

	roster, err := h.ownerService.ListRoster(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list members")
		return
	}

	if c.Query("format") == "csv" {
		h.writeRosterCSV(c, roster)
		return
	}
	c.JSON(http.StatusOK, roster)
}

func (h *shareOwnerHandler) writeRosterCSV(c *gin.Context, roster *dto.RosterResponse) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="members.csv"`)

	w := csv.NewWriter(c.Writer)
	record := []string{"id", "display_name", "email", "phone_number", "street", "postcode", "city", "status", "num_shares", "join_date", "attended_welcome_session", "paid_membership_fee"}
	if err := w.Write(record); err != nil {
		return
	}
	for _, m := range roster.Members {
		joinDate := ""
		if m.JoinDate != nil {
			joinDate = *m.JoinDate
		}
		record = []string{
			strconv.FormatInt(m.ID, 10),
			m.DisplayName,
			m.Email,
			m.PhoneNumber,
			m.Street,
			m.Postcode,
			m.City,
			m.Status,
			strconv.Itoa(m.NumShares),
			joinDate,
			strconv.FormatBool(m.AttendedWelcomeSession),
			strconv.FormatBool(m.PaidMembershipFee),
		}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write roster CSV", slog.String("error", err.Error()))
	}
}

// exportMailchimp godoc
// @Summary Export the mailing list
// @Description CSV of active, non-investing members with a known email address
// @Tags members
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/export/mailchimp [get]
func (h *shareOwnerHandler) exportMailchimp(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	contacts, err := h.ownerService.ExportMailchimp(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to export mailing list")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="mailchimp.csv"`)

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"Email Address", "First Name", "Last Name", "Address", "Tags"}); err != nil {
		return
	}
	for _, contact := range contacts {
		record := []string{contact.Email, contact.FirstName, contact.LastName, contact.Address, contact.Tag}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write mailchimp CSV", slog.String("error", err.Error()))
	}
}

// listMatchingProgram godoc
// @Summary List matching program participants
// @Description Members willing to gift a share, ordered by sign-up date
// @Tags members
// @Produce json
// @Success 200 {array} dto.ShareOwnerResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/matching-program [get]
func (h *shareOwnerHandler) listMatchingProgram(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	owners, err := h.ownerService.ListMatchingProgram(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list matching program")
		return
	}

	now := time.Now()
	responses := make([]dto.ShareOwnerResponse, len(owners))
	for i := range owners {
		responses[i] = dto.ToShareOwnerResponse(&owners[i], now)
	}
	c.JSON(http.StatusOK, responses)
}

// welcomeDeskSearch godoc
// @Summary Search members at the welcome desk
// @Tags welcome-desk
// @Produce json
// @Param search query string true "Name or member ID"
// @Success 200 {array} dto.ShareOwnerResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/welcome-desk [get]
func (h *shareOwnerHandler) welcomeDeskSearch(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	owners, err := h.ownerService.WelcomeDeskSearch(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Failed to search members")
		return
	}

	now := time.Now()
	responses := make([]dto.ShareOwnerResponse, len(owners))
	for i := range owners {
		responses[i] = dto.ToShareOwnerResponse(&owners[i], now)
	}
	c.JSON(http.StatusOK, responses)
}

// welcomeDeskDetail godoc
// @Summary Welcome desk member detail
// @Description Shopping eligibility of one member with the reasons it is denied
// @Tags welcome-desk
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.WelcomeDeskMemberResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/welcome-desk/{id} [get]
func (h *shareOwnerHandler) welcomeDeskDetail(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	detail, err := h.ownerService.WelcomeDeskDetail(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to get member detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// getShareOwner godoc
// @Summary Get a member by ID
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.ShareOwnerResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *shareOwnerHandler) getShareOwner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	owner, err := h.ownerService.GetShareOwner(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to get member")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareOwnerResponse(owner, time.Now()))
}

// updateShareOwner godoc
// @Summary Update a member
// @Description Edits member data; identity fields of members with a linked account are managed through the account and rejected here
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param member body dto.UpdateShareOwnerRequest true "Fields to update"
// @Success 200 {object} dto.ShareOwnerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id} [patch]
func (h *shareOwnerHandler) updateShareOwner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateShareOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	owner, err := h.ownerService.UpdateShareOwner(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareOwnerResponse(owner, time.Now()))
}

// listLogEntries godoc
// @Summary List a member's audit trail
// @Description All audit entries attached to the member or its account, newest first
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {array} dto.LogEntryResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/log-entries [get]
func (h *shareOwnerHandler) listLogEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	entries, err := h.ownerService.ListLogEntries(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to list log entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLogEntriesResponse(entries))
}

// markAttendedWelcomeSession godoc
// @Summary Record welcome session attendance
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.ShareOwnerResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/attended-welcome-session [post]
func (h *shareOwnerHandler) markAttendedWelcomeSession(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	owner, err := h.ownerService.MarkAttendedWelcomeSession(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareOwnerResponse(owner, time.Now()))
}

// grantAccount godoc
// @Summary Create a login account for a member
// @Description Links a new account to the member; the account becomes the source of the member's identity data
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param account body dto.GrantAccountRequest true "Account details"
// @Success 201 {object} dto.TapirUserResponse
// @Failure 400 {object} map[string]string "Companies cannot have accounts"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Member already has an account"
// @Security BearerAuth
// @Router /members/{id}/account [post]
func (h *shareOwnerHandler) grantAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	var req dto.GrantAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.ownerService.GrantAccount(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created for member",
		slog.Int64("member_id", id), slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToTapirUserResponse(user))
}

// sendMembershipConfirmation godoc
// @Summary Send the membership confirmation email
// @Description Sends the confirmation mail matching the member's status (active or investing)
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Member has no email address"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /members/{id}/send-membership-confirmation [post]
func (h *shareOwnerHandler) sendMembershipConfirmation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := ownerIDParam(c)
	if !ok {
		return
	}

	if err := h.ownerService.SendMembershipConfirmationEmail(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "Failed to send confirmation email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Confirmation email sent for member %d", id)})
}
