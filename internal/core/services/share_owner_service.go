package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/utils"
)

var (
	ErrCompanyCannotHaveAccount = errors.New("company members cannot be granted a login account")
	ErrAlreadyHasAccount        = errors.New("member already has a login account")
	ErrIdentityManagedByAccount = errors.New("identity fields are managed through the linked account")
	ErrInvalidDate              = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNoEmailAddress           = errors.New("member has no email address")
)

// shareOwnerService implements member administration on top of the share
// owner repository and the read-only shift data view.
type shareOwnerService struct {
	BaseService
	ownerRepo    portsrepo.ShareOwnerRepositoryFacade
	shiftRepo    portsrepo.ShiftDataReader
	logEntryRepo portsrepo.LogEntryReader
	email        portssvc.EmailSender
	sharePrice   decimal.Decimal
}

// NewShareOwnerService creates a new ShareOwnerService.
func NewShareOwnerService(ownerRepo portsrepo.ShareOwnerRepositoryFacade, shiftRepo portsrepo.ShiftDataReader, logEntryRepo portsrepo.LogEntryReader, email portssvc.EmailSender, sharePrice decimal.Decimal) portssvc.ShareOwnerSvcFacade {
	return &shareOwnerService{
		ownerRepo:    ownerRepo,
		shiftRepo:    shiftRepo,
		logEntryRepo: logEntryRepo,
		email:        email,
		sharePrice:   sharePrice,
	}
}

var _ portssvc.ShareOwnerSvcFacade = (*shareOwnerService)(nil)

// parseDay parses a YYYY-MM-DD reference date.
func parseDay(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return day, nil
}

// referenceDate resolves the as_of parameter, defaulting to today.
func referenceDate(asOf string) (time.Time, error) {
	if asOf == "" {
		return domain.ToDate(time.Now()), nil
	}
	return parseDay(asOf)
}

func (s *shareOwnerService) GetShareOwner(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}
	return s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
}

// buildRosterFilter translates the query parameters into predicates. Shift
// related parameters are resolved to account-ID sets up front so the
// predicates stay pure.
func (s *shareOwnerService) buildRosterFilter(ctx context.Context, params dto.RosterFilterParams, at time.Time) (*domain.RosterFilter, error) {
	filter := &domain.RosterFilter{}

	if params.Status != "" {
		filter.Add(domain.ByStatus(domain.MemberStatus(params.Status), at))
	}
	if params.Search != "" {
		filter.Add(domain.BySearchTerm(params.Search))
	}
	if params.AttendedWelcomeSession != nil {
		filter.Add(domain.ByAttendedWelcomeSession(*params.AttendedWelcomeSession))
	}
	if params.Ratenzahlung != nil {
		filter.Add(domain.ByRatenzahlung(*params.Ratenzahlung))
	}
	if params.IsCompany != nil {
		filter.Add(domain.ByIsCompany(*params.IsCompany))
	}
	if params.PaidMembershipFee != nil {
		filter.Add(domain.ByPaidMembershipFee(*params.PaidMembershipFee))
	}
	if params.HasAccount != nil {
		filter.Add(domain.ByHasAccount(*params.HasAccount))
	}
	if params.HasUnpaidShares != nil {
		filter.Add(domain.ByHasUnpaidShares(s.sharePrice, *params.HasUnpaidShares))
	}
	if params.IsFullyPaid != nil {
		filter.Add(domain.ByFullyPaid(s.sharePrice, *params.IsFullyPaid))
	}

	if params.HasCapability != "" {
		ids, err := s.shiftRepo.FindUserIDsWithCapability(ctx, params.HasCapability)
		if err != nil {
			return nil, err
		}
		filter.Add(domain.ByAccountMembership(ids, true))
	}
	if params.NotHasCapability != "" {
		ids, err := s.shiftRepo.FindUserIDsWithCapability(ctx, params.NotHasCapability)
		if err != nil {
			return nil, err
		}
		filter.Add(domain.ByAccountMembership(ids, false))
	}
	if params.RegisteredToSlotWithCapability != "" {
		ids, err := s.shiftRepo.FindUserIDsRegisteredToSlotWithCapability(ctx, params.RegisteredToSlotWithCapability)
		if err != nil {
			return nil, err
		}
		filter.Add(domain.ByAccountMembership(ids, true))
	}
	if params.ShiftAttendanceMode != "" {
		ids, err := s.shiftRepo.FindUserIDsWithAttendanceMode(ctx, domain.ShiftAttendanceMode(params.ShiftAttendanceMode))
		if err != nil {
			return nil, err
		}
		filter.Add(domain.ByAccountMembership(ids, true))
	}
	if params.ABCDWeek != "" {
		ids, err := s.shiftRepo.FindUserIDsInABCDWeek(ctx, params.ABCDWeek)
		if err != nil {
			return nil, err
		}
		filter.Add(domain.ByAccountMembership(ids, true))
	}

	return filter, nil
}

func (s *shareOwnerService) ListRoster(ctx context.Context, actor domain.Actor, params dto.RosterFilterParams) (*dto.RosterResponse, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	at, err := referenceDate(params.AsOf)
	if err != nil {
		return nil, err
	}

	filter, err := s.buildRosterFilter(ctx, params, at)
	if err != nil {
		return nil, err
	}

	owners, err := s.ownerRepo.FindShareOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	matched := filter.Apply(owners)
	members := make([]dto.ShareOwnerResponse, len(matched))
	for i := range matched {
		members[i] = dto.ToShareOwnerResponse(&matched[i], at)
	}

	return &dto.RosterResponse{
		FilteredCount: len(matched),
		TotalCount:    len(owners),
		Members:       members,
	}, nil
}

func (s *shareOwnerService) ExportMailchimp(ctx context.Context, actor domain.Actor) ([]dto.MailchimpContact, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owners, err := s.ownerRepo.FindShareOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for export: %w", err)
	}

	now := time.Now()
	contacts := []dto.MailchimpContact{}
	for i := range owners {
		owner := &owners[i]
		if domain.MemberStatusAt(*owner, now) != domain.MemberStatusActive {
			continue
		}
		info := owner.Info()
		if info.Email == "" {
			continue
		}
		// Mailchimp expects the language tag in literal quotes.
		tag := ""
		switch info.PreferredLanguage {
		case "de":
			tag = `"Deutsch"`
		case "en":
			tag = `"English"`
		}
		contacts = append(contacts, dto.MailchimpContact{
			Email:     info.Email,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Address:   info.Street,
			Tag:       tag,
		})
	}
	return contacts, nil
}

func (s *shareOwnerService) ListMatchingProgram(ctx context.Context, actor domain.Actor) ([]domain.ShareOwner, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owners, err := s.ownerRepo.FindShareOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matching program members: %w", err)
	}

	willing := []domain.ShareOwner{}
	for _, o := range owners {
		if o.WillingToGiftAShare != nil {
			willing = append(willing, o)
		}
	}
	sort.SliceStable(willing, func(i, j int) bool {
		return willing[i].WillingToGiftAShare.Before(*willing[j].WillingToGiftAShare)
	})
	return willing, nil
}

func (s *shareOwnerService) WelcomeDeskSearch(ctx context.Context, actor domain.Actor, term string) ([]domain.ShareOwner, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermWelcomeDeskView); err != nil {
		return nil, err
	}

	// A blank term returns nothing: the desk always searches for one
	// specific member, never browses the roster.
	if strings.TrimSpace(term) == "" {
		return []domain.ShareOwner{}, nil
	}

	owners, err := s.ownerRepo.FindShareOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}

	filter := &domain.RosterFilter{}
	filter.Add(domain.BySearchTerm(term))
	return filter.Apply(owners), nil
}

func (s *shareOwnerService) WelcomeDeskDetail(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.WelcomeDeskMemberResponse, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermWelcomeDeskView); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.WelcomeDeskMemberResponse{
		ID:             owner.ID,
		DisplayName:    owner.Info().DisplayName(),
		CanShop:        owner.CanShop(time.Now()),
		MissingAccount: !owner.HasAccount(),
	}

	if owner.HasAccount() {
		shiftData, err := s.shiftRepo.FindShiftUserData(ctx, *owner.UserID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			// No shift record yet, nothing to flag.
		case err != nil:
			return nil, err
		default:
			resp.ShiftBalanceNotOK = !shiftData.BalanceOK
			resp.MustRegisterToShift = shiftData.MustRegisterToAShift()
		}
	}
	return resp, nil
}

func (s *shareOwnerService) ListLogEntries(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.LogEntry, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	// The lookup also validates the member exists.
	if _, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.logEntryRepo.FindLogEntriesByShareOwner(ctx, ownerID)
}

// applyOwnerUpdate copies the set request fields onto the owner.
func applyOwnerUpdate(owner *domain.ShareOwner, req dto.UpdateShareOwnerRequest) error {
	touchesIdentity := req.FirstName != nil || req.LastName != nil || req.Email != nil ||
		req.PhoneNumber != nil || req.Street != nil || req.Postcode != nil ||
		req.City != nil || req.Country != nil || req.PreferredLanguage != nil
	if touchesIdentity && owner.HasAccount() {
		return fmt.Errorf("%w (member %d)", ErrIdentityManagedByAccount, owner.ID)
	}

	if req.FirstName != nil {
		owner.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		owner.LastName = *req.LastName
	}
	if req.CompanyName != nil {
		owner.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		owner.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		owner.PhoneNumber = *req.PhoneNumber
	}
	if req.Street != nil {
		owner.Street = *req.Street
	}
	if req.Postcode != nil {
		owner.Postcode = *req.Postcode
	}
	if req.City != nil {
		owner.City = *req.City
	}
	if req.Country != nil {
		owner.Country = *req.Country
	}
	if req.PreferredLanguage != nil {
		owner.PreferredLanguage = *req.PreferredLanguage
	}
	if req.IsInvesting != nil {
		owner.IsInvesting = *req.IsInvesting
	}
	if req.Ratenzahlung != nil {
		owner.Ratenzahlung = *req.Ratenzahlung
	}
	if req.PaidMembershipFee != nil {
		owner.PaidMembershipFee = *req.PaidMembershipFee
	}
	if req.WillingToGiftAShare != nil {
		if *req.WillingToGiftAShare == "" {
			owner.WillingToGiftAShare = nil
		} else {
			day, err := parseDay(*req.WillingToGiftAShare)
			if err != nil {
				return err
			}
			owner.WillingToGiftAShare = &day
		}
	}
	return nil
}

func (s *shareOwnerService) UpdateShareOwner(ctx context.Context, actor domain.Actor, ownerID int64, req dto.UpdateShareOwnerRequest) (*domain.ShareOwner, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	before, err := domain.FreezeForLog(owner)
	if err != nil {
		return nil, err
	}

	updated := *owner
	if err := applyOwnerUpdate(&updated, req); err != nil {
		return nil, err
	}

	after, err := domain.FreezeForLog(&updated)
	if err != nil {
		return nil, err
	}
	if domain.SnapshotsEqual(before, after) {
		// Nothing changed, no write and no audit entry.
		return owner, nil
	}

	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryUpdateShareOwner,
		ActorID:      actor.UserID,
		CreatedAt:    now,
		ShareOwnerID: &updated.ID,
		Before:       before,
		After:        after,
	}
	if err := s.ownerRepo.UpdateShareOwner(ctx, updated, &logEntry); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *shareOwnerService) MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error) {
	// Both the member office and desk volunteers record attendance.
	if err := s.RequireAnyPermission(ctx, actor, domain.PermCoopManage, domain.PermWelcomeDeskView); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.AttendedWelcomeSession {
		return owner, nil
	}

	before, err := domain.FreezeForLog(owner)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *owner
	updated.AttendedWelcomeSession = true
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	after, err := domain.FreezeForLog(&updated)
	if err != nil {
		return nil, err
	}

	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryUpdateShareOwner,
		ActorID:      actor.UserID,
		CreatedAt:    now,
		ShareOwnerID: &updated.ID,
		Before:       before,
		After:        after,
	}
	if err := s.ownerRepo.UpdateShareOwner(ctx, updated, &logEntry); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *shareOwnerService) GrantAccount(ctx context.Context, actor domain.Actor, ownerID int64, req dto.GrantAccountRequest) (*domain.TapirUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermAccountsManage); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.IsCompany {
		return nil, fmt.Errorf("%w: member %d", ErrCompanyCannotHaveAccount, ownerID)
	}
	if owner.HasAccount() {
		return nil, fmt.Errorf("%w: member %d: %w", ErrAlreadyHasAccount, ownerID, apperrors.ErrConflict)
	}

	info := owner.Info()
	firstName := info.FirstName
	if req.FirstName != "" {
		firstName = req.FirstName
	}
	lastName := info.LastName
	if req.LastName != "" {
		lastName = req.LastName
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash initial password: %w", err)
	}

	now := time.Now()
	user := domain.TapirUser{
		UserID:            uuid.NewString(),
		Username:          req.Username,
		PasswordHash:      &passwordHash,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             info.Email,
		PhoneNumber:       info.PhoneNumber,
		Street:            info.Street,
		Postcode:          info.Postcode,
		City:              info.City,
		Country:           info.Country,
		PreferredLanguage: info.PreferredLanguage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	after, err := domain.FreezeForLog(&user)
	if err != nil {
		return nil, err
	}
	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryCreateTapirUser,
		ActorID:      actor.UserID,
		CreatedAt:    now,
		ShareOwnerID: &owner.ID,
		UserID:       &user.UserID,
		After:        after,
	}

	ownerCopy := *owner
	ownerCopy.LastUpdatedAt = now
	ownerCopy.LastUpdatedBy = actor.UserID
	if err := s.ownerRepo.LinkTapirUser(ctx, ownerCopy, user, logEntry); err != nil {
		return nil, err
	}

	s.notifyAsync(ctx, "account created notification", func(ctx context.Context) error {
		return s.email.SendAccountCreated(ctx, user, actor.UserID)
	})
	return &user, nil
}

func (s *shareOwnerService) SendMembershipConfirmationEmail(ctx context.Context, actor domain.Actor, ownerID int64) error {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return err
	}
	info := owner.Info()
	if info.Email == "" {
		return fmt.Errorf("%w: member %d", ErrNoEmailAddress, ownerID)
	}
	return s.email.SendMembershipConfirmation(ctx, info, owner.IsInvesting, actor.UserID)
}

// notifyAsync runs a notification after the mutation committed. Delivery
// failures are logged, never surfaced: the mutation already happened.
func (s *shareOwnerService) notifyAsync(ctx context.Context, what string, send func(context.Context) error) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := send(bg); err != nil {
			s.LogError(bg, err, "Failed to send "+what, slog.String("notification", what))
		}
	}()
}
