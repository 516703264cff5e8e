package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// shareOwnershipService manages the lifecycle of individual share records.
type shareOwnershipService struct {
	BaseService
	ownershipRepo portsrepo.ShareOwnershipRepositoryFacade
	ownerRepo     portsrepo.ShareOwnerReader
	email         portssvc.EmailSender
}

// NewShareOwnershipService creates a new ShareOwnershipService.
func NewShareOwnershipService(ownershipRepo portsrepo.ShareOwnershipRepositoryFacade, ownerRepo portsrepo.ShareOwnerReader, email portssvc.EmailSender) portssvc.ShareOwnershipSvcFacade {
	return &shareOwnershipService{
		ownershipRepo: ownershipRepo,
		ownerRepo:     ownerRepo,
		email:         email,
	}
}

var _ portssvc.ShareOwnershipSvcFacade = (*shareOwnershipService)(nil)

func (s *shareOwnershipService) CreateShareOwnerships(ctx context.Context, actor domain.Actor, ownerID int64, req dto.CreateShareOwnershipsRequest) ([]domain.ShareOwnership, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	startDate, err := parseDay(req.StartDate)
	if err != nil {
		return nil, err
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		day, err := parseDay(*req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &day
	}

	amountPaid := decimal.Zero
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}

	now := time.Now()
	ownerships := make([]domain.ShareOwnership, req.NumShares)
	for i := range ownerships {
		ownerships[i] = domain.ShareOwnership{
			OwnerID:    ownerID,
			AmountPaid: amountPaid,
			StartDate:  startDate,
			EndDate:    endDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := ownerships[i].Validate(); err != nil {
			return nil, err
		}
	}

	recap := domain.ExtraSharesAccountingRecap{
		MemberID:       ownerID,
		NumberOfShares: req.NumShares,
		Date:           domain.ToDate(now),
	}

	after, err := domain.FreezeForLog(req)
	if err != nil {
		return nil, err
	}
	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryCreateShareOwnerships,
		ActorID:      actor.UserID,
		CreatedAt:    now,
		ShareOwnerID: &ownerID,
		After:        after,
	}

	created, err := s.ownershipRepo.CreateShareOwnerships(ctx, ownerships, recap, logEntry)
	if err != nil {
		return nil, err
	}

	info := owner.Info()
	if info.Email != "" {
		numShares := req.NumShares
		s.notifyAsync(ctx, "extra shares confirmation", func(ctx context.Context) error {
			return s.email.SendExtraSharesConfirmation(ctx, info, numShares, actor.UserID)
		})
	}
	return created, nil
}

func (s *shareOwnershipService) UpdateShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64, req dto.UpdateShareOwnershipRequest) (*domain.ShareOwnership, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	ownership, err := s.ownershipRepo.FindShareOwnershipByID(ctx, ownershipID)
	if err != nil {
		return nil, err
	}

	before, err := domain.FreezeForLog(ownership)
	if err != nil {
		return nil, err
	}

	updated := *ownership
	if req.StartDate != nil {
		day, err := parseDay(*req.StartDate)
		if err != nil {
			return nil, err
		}
		updated.StartDate = day
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			// The share becomes open-ended again.
			updated.EndDate = nil
		} else {
			day, err := parseDay(*req.EndDate)
			if err != nil {
				return nil, err
			}
			updated.EndDate = &day
		}
	}
	if req.AmountPaid != nil {
		updated.AmountPaid = *req.AmountPaid
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	after, err := domain.FreezeForLog(&updated)
	if err != nil {
		return nil, err
	}
	if domain.SnapshotsEqual(before, after) {
		return ownership, nil
	}

	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryUpdateShareOwnership,
		ActorID:      actor.UserID,
		CreatedAt:    now,
		ShareOwnerID: &updated.OwnerID,
		Before:       before,
		After:        after,
	}
	if err := s.ownershipRepo.UpdateShareOwnership(ctx, updated, &logEntry); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *shareOwnershipService) DeleteShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64) error {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopAdmin); err != nil {
		return err
	}

	ownership, err := s.ownershipRepo.FindShareOwnershipByID(ctx, ownershipID)
	if err != nil {
		return err
	}

	before, err := domain.FreezeForLog(ownership)
	if err != nil {
		return err
	}
	logEntry := domain.LogEntry{
		EntryType:    domain.LogEntryDeleteShareOwnership,
		ActorID:      actor.UserID,
		CreatedAt:    time.Now(),
		ShareOwnerID: &ownership.OwnerID,
		Before:       before,
	}
	return s.ownershipRepo.DeleteShareOwnership(ctx, ownershipID, logEntry)
}

// notifyAsync runs a notification after the mutation committed. Delivery
// failures are logged, never surfaced.
func (s *shareOwnershipService) notifyAsync(ctx context.Context, what string, send func(context.Context) error) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := send(bg); err != nil {
			s.LogError(bg, err, "Failed to send "+what)
		}
	}()
}
