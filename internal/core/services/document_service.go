package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/pdfs"
)

// documentService renders the membership documents for one member or blank.
type documentService struct {
	BaseService
	ownerRepo  portsrepo.ShareOwnerReader
	coop       pdfs.CoopInfo
	sharePrice decimal.Decimal
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(ownerRepo portsrepo.ShareOwnerReader, coop pdfs.CoopInfo, sharePrice decimal.Decimal) portssvc.DocumentSvcFacade {
	return &documentService{
		ownerRepo:  ownerRepo,
		coop:       coop,
		sharePrice: sharePrice,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// parsePrintedDate parses the dd.mm.yyyy form the documents use.
func parsePrintedDate(s string) (time.Time, error) {
	day, err := time.Parse("02.01.2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected dd.mm.yyyy", apperrors.ErrValidation, s)
	}
	return day, nil
}

func memberData(owner *domain.ShareOwner) pdfs.MemberData {
	info := owner.Info()
	return pdfs.MemberData{
		MemberNumber: owner.ID,
		DisplayName:  info.DisplayName(),
		Street:       info.Street,
		Postcode:     info.Postcode,
		City:         info.City,
	}
}

func (s *documentService) EmptyMembershipAgreement(ctx context.Context, actor domain.Actor) (*dto.DocumentResult, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	content, err := pdfs.EmptyMembershipAgreement(s.coop, s.sharePrice)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResult{
		Filename: "Beitrittserklärung.pdf",
		Content:  content,
	}, nil
}

func (s *documentService) MembershipAgreement(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.DocumentResult, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	numShares := owner.NumActiveShares(time.Now())
	content, err := pdfs.MembershipAgreement(s.coop, memberData(owner), numShares, s.sharePrice)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResult{
		Filename: fmt.Sprintf("Beitrittserklärung %s.pdf", owner.Info().DisplayName()),
		Content:  content,
	}, nil
}

func (s *documentService) MembershipConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Both parameters have sensible defaults here: the current share count
	// and today.
	date := domain.ToDate(time.Now())
	if params.Date != "" {
		date, err = parsePrintedDate(params.Date)
		if err != nil {
			return nil, err
		}
	}
	numShares := owner.NumActiveShares(date)
	if params.NumShares != nil {
		numShares = *params.NumShares
	}

	content, err := pdfs.MembershipConfirmation(s.coop, memberData(owner), numShares, date)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResult{
		Filename: fmt.Sprintf("Mitgliedschaftsbestätigung %s.pdf", owner.Info().DisplayName()),
		Content:  content,
	}, nil
}

func (s *documentService) ExtraSharesConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error) {
	if err := s.RequirePermission(ctx, actor, domain.PermCoopManage); err != nil {
		return nil, err
	}

	// Unlike the membership confirmation there is no meaningful default for
	// either parameter: the document describes one specific purchase.
	if params.NumShares == nil {
		return nil, fmt.Errorf("%w: num_shares is required", apperrors.ErrValidation)
	}
	if params.Date == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	date, err := parsePrintedDate(params.Date)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindShareOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	content, err := pdfs.ExtraSharesConfirmation(s.coop, memberData(owner), *params.NumShares, date)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResult{
		Filename: fmt.Sprintf("Bestätigung weitere Anteile %s.pdf", owner.Info().DisplayName()),
		Content:  content,
	}, nil
}
