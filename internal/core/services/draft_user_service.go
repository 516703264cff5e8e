package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

var ErrDraftNotReady = errors.New("draft user has not completed the required steps for conversion")

// draftUserService manages prospective members up to their conversion.
type draftUserService struct {
	BaseService
	draftRepo portsrepo.DraftUserRepositoryFacade
	email     portssvc.EmailSender
}

// NewDraftUserService creates a new DraftUserService.
func NewDraftUserService(draftRepo portsrepo.DraftUserRepositoryFacade, email portssvc.EmailSender) portssvc.DraftUserSvcFacade {
	return &draftUserService{
		draftRepo: draftRepo,
		email:     email,
	}
}

var _ portssvc.DraftUserSvcFacade = (*draftUserService)(nil)

func (s *draftUserService) CreateDraftUser(ctx context.Context, actor domain.Actor, req dto.CreateDraftUserRequest) (*domain.DraftUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	now := time.Now()
	draft := domain.DraftUser{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Street:            req.Street,
		Postcode:          req.Postcode,
		City:              req.City,
		Country:           req.Country,
		PreferredLanguage: req.PreferredLanguage,
		NumShares:         req.NumShares,
		IsInvesting:       req.IsInvesting,
		Ratenzahlung:      req.Ratenzahlung,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	return s.draftRepo.SaveDraftUser(ctx, draft)
}

func (s *draftUserService) RegisterDraftUser(ctx context.Context, req dto.RegisterDraftUserRequest) (*domain.DraftUser, error) {
	now := time.Now()
	draft := domain.DraftUser{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Street:            req.Street,
		Postcode:          req.Postcode,
		City:              req.City,
		Country:           req.Country,
		PreferredLanguage: req.PreferredLanguage,
		NumShares:         req.NumShares,
		IsInvesting:       req.IsInvesting,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	saved, err := s.draftRepo.SaveDraftUser(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(ctx, "registration acknowledgement", func(ctx context.Context) error {
		return s.email.SendDraftUserRegistered(ctx, *saved)
	})
	return saved, nil
}

func (s *draftUserService) ListDraftUsers(ctx context.Context, actor domain.Actor) ([]domain.DraftUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}
	return s.draftRepo.FindDraftUsers(ctx)
}

func (s *draftUserService) GetDraftUser(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}
	return s.draftRepo.FindDraftUserByID(ctx, draftID)
}

func (s *draftUserService) UpdateDraftUser(ctx context.Context, actor domain.Actor, draftID int64, req dto.UpdateDraftUserRequest) (*domain.DraftUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	draft, err := s.draftRepo.FindDraftUserByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	before, err := domain.FreezeForLog(draft)
	if err != nil {
		return nil, err
	}

	updated := *draft
	if req.FirstName != nil {
		updated.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updated.LastName = *req.LastName
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		updated.PhoneNumber = *req.PhoneNumber
	}
	if req.Street != nil {
		updated.Street = *req.Street
	}
	if req.Postcode != nil {
		updated.Postcode = *req.Postcode
	}
	if req.City != nil {
		updated.City = *req.City
	}
	if req.Country != nil {
		updated.Country = *req.Country
	}
	if req.PreferredLanguage != nil {
		updated.PreferredLanguage = *req.PreferredLanguage
	}
	if req.NumShares != nil {
		updated.NumShares = *req.NumShares
	}
	if req.IsInvesting != nil {
		updated.IsInvesting = *req.IsInvesting
	}
	if req.Ratenzahlung != nil {
		updated.Ratenzahlung = *req.Ratenzahlung
	}

	after, err := domain.FreezeForLog(&updated)
	if err != nil {
		return nil, err
	}
	if domain.SnapshotsEqual(before, after) {
		return draft, nil
	}

	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	logEntry := domain.LogEntry{
		EntryType:   domain.LogEntryUpdateDraftUser,
		ActorID:     actor.UserID,
		CreatedAt:   now,
		DraftUserID: &updated.ID,
		Before:      before,
		After:       after,
	}
	if err := s.draftRepo.UpdateDraftUser(ctx, updated, &logEntry); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *draftUserService) DeleteDraftUser(ctx context.Context, actor domain.Actor, draftID int64) error {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return err
	}
	return s.draftRepo.DeleteDraftUser(ctx, draftID)
}

// setDraftFlag applies one workflow flag, audit-logged only when it actually
// flips.
func (s *draftUserService) setDraftFlag(ctx context.Context, actor domain.Actor, draftID int64, get func(*domain.DraftUser) bool, set func(*domain.DraftUser)) (*domain.DraftUser, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	draft, err := s.draftRepo.FindDraftUserByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if get(draft) {
		return draft, nil
	}

	before, err := domain.FreezeForLog(draft)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *draft
	set(&updated)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	after, err := domain.FreezeForLog(&updated)
	if err != nil {
		return nil, err
	}

	logEntry := domain.LogEntry{
		EntryType:   domain.LogEntryUpdateDraftUser,
		ActorID:     actor.UserID,
		CreatedAt:   now,
		DraftUserID: &updated.ID,
		Before:      before,
		After:       after,
	}
	if err := s.draftRepo.UpdateDraftUser(ctx, updated, &logEntry); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *draftUserService) MarkSignedMembershipAgreement(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	return s.setDraftFlag(ctx, actor, draftID,
		func(d *domain.DraftUser) bool { return d.SignedMembershipAgreement },
		func(d *domain.DraftUser) { d.SignedMembershipAgreement = true })
}

func (s *draftUserService) MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	return s.setDraftFlag(ctx, actor, draftID,
		func(d *domain.DraftUser) bool { return d.AttendedWelcomeSession },
		func(d *domain.DraftUser) { d.AttendedWelcomeSession = true })
}

func (s *draftUserService) RegisterPayment(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	return s.setDraftFlag(ctx, actor, draftID,
		func(d *domain.DraftUser) bool { return d.PaidMembershipFee },
		func(d *domain.DraftUser) { d.PaidMembershipFee = true })
}

func (s *draftUserService) ConvertToShareOwner(ctx context.Context, actor domain.Actor, draftID int64) (*domain.ShareOwner, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	draft, err := s.draftRepo.FindDraftUserByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.CanBeConverted() {
		return nil, fmt.Errorf("%w: draft %d", ErrDraftNotReady, draftID)
	}

	now := time.Now()
	owner := domain.ShareOwner{
		FirstName:              draft.FirstName,
		LastName:               draft.LastName,
		Email:                  draft.Email,
		PhoneNumber:            draft.PhoneNumber,
		Street:                 draft.Street,
		Postcode:               draft.Postcode,
		City:                   draft.City,
		Country:                draft.Country,
		PreferredLanguage:      draft.PreferredLanguage,
		IsInvesting:            draft.IsInvesting,
		AttendedWelcomeSession: draft.AttendedWelcomeSession,
		Ratenzahlung:           draft.Ratenzahlung,
		PaidMembershipFee:      draft.PaidMembershipFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	startDate := domain.ToDate(now)
	ownerships := make([]domain.ShareOwnership, draft.NumShares)
	for i := range ownerships {
		ownerships[i] = domain.ShareOwnership{
			AmountPaid: decimal.Zero,
			StartDate:  startDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
	}

	before, err := domain.FreezeForLog(draft)
	if err != nil {
		return nil, err
	}
	after, err := domain.FreezeForLog(&owner)
	if err != nil {
		return nil, err
	}
	// The repository fills in ShareOwnerID once the new owner row exists;
	// the draft reference survives the draft row's deletion.
	logEntry := domain.LogEntry{
		EntryType:   domain.LogEntryConvertDraftUser,
		ActorID:     actor.UserID,
		CreatedAt:   now,
		DraftUserID: &draftID,
		Before:      before,
		After:       after,
	}

	created, err := s.draftRepo.ConvertDraftUser(ctx, draftID, owner, ownerships, logEntry)
	if err != nil {
		return nil, err
	}

	if created.Info().Email != "" {
		investing := created.IsInvesting
		info := created.Info()
		s.notifyAsync(ctx, "membership confirmation", func(ctx context.Context) error {
			return s.email.SendMembershipConfirmation(ctx, info, investing, actor.UserID)
		})
	}
	return created, nil
}

// notifyAsync runs a notification after the mutation committed. Delivery
// failures are logged, never surfaced.
func (s *draftUserService) notifyAsync(ctx context.Context, what string, send func(context.Context) error) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := send(bg); err != nil {
			s.LogError(bg, err, "Failed to send "+what)
		}
	}()
}
