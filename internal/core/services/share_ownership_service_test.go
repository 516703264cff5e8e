package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/core/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

type ShareOwnershipServiceTestSuite struct {
	suite.Suite
	mockOwnershipRepo *MockShareOwnershipRepository
	mockOwnerRepo     *MockShareOwnerRepository
	mockEmail         *MockEmailSender
	service           portssvc.ShareOwnershipSvcFacade
}

func (suite *ShareOwnershipServiceTestSuite) SetupTest() {
	suite.mockOwnershipRepo = new(MockShareOwnershipRepository)
	suite.mockOwnerRepo = new(MockShareOwnerRepository)
	suite.mockEmail = new(MockEmailSender)
	suite.service = services.NewShareOwnershipService(suite.mockOwnershipRepo, suite.mockOwnerRepo, suite.mockEmail)
}

func (suite *ShareOwnershipServiceTestSuite) TestCreateShareOwnerships_Success() {
	ctx := context.Background()
	owner := &domain.ShareOwner{ID: 4, FirstName: "Erika", LastName: "Mustermann", Email: "erika@example.com"}

	suite.mockOwnerRepo.On("FindShareOwnerByID", ctx, int64(4)).Return(owner, nil).Once()
	suite.mockOwnershipRepo.On("CreateShareOwnerships", ctx,
		mock.MatchedBy(func(ownerships []domain.ShareOwnership) bool {
			if len(ownerships) != 3 {
				return false
			}
			for _, o := range ownerships {
				if o.OwnerID != 4 || !o.AmountPaid.Equal(decimal.Zero) {
					return false
				}
			}
			return true
		}),
		mock.MatchedBy(func(recap domain.ExtraSharesAccountingRecap) bool {
			return recap.MemberID == 4 && recap.NumberOfShares == 3
		}),
		mock.MatchedBy(func(e domain.LogEntry) bool {
			return e.EntryType == domain.LogEntryCreateShareOwnerships &&
				e.ShareOwnerID != nil && *e.ShareOwnerID == 4
		}),
	).Return([]domain.ShareOwnership{{ID: 10, OwnerID: 4}, {ID: 11, OwnerID: 4}, {ID: 12, OwnerID: 4}}, nil).Once()
	suite.mockEmail.On("SendExtraSharesConfirmation", mock.Anything, mock.AnythingOfType("domain.MemberInfo"), 3, "staff-1").Return(nil).Maybe()

	created, err := suite.service.CreateShareOwnerships(ctx, managerActor(), 4, dto.CreateShareOwnershipsRequest{
		NumShares: 3,
		StartDate: "2026-01-01",
	})

	suite.Require().NoError(err)
	suite.Len(created, 3)
	suite.mockOwnershipRepo.AssertExpectations(suite.T())
}

func (suite *ShareOwnershipServiceTestSuite) TestCreateShareOwnerships_InvalidStartDate() {
	ctx := context.Background()
	owner := &domain.ShareOwner{ID: 4}

	suite.mockOwnerRepo.On("FindShareOwnerByID", ctx, int64(4)).Return(owner, nil).Once()

	_, err := suite.service.CreateShareOwnerships(ctx, managerActor(), 4, dto.CreateShareOwnershipsRequest{
		NumShares: 1,
		StartDate: "01.01.2026",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidDate)
	suite.mockOwnershipRepo.AssertNotCalled(suite.T(), "CreateShareOwnerships", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnershipServiceTestSuite) TestCreateShareOwnerships_EndBeforeStartRejected() {
	ctx := context.Background()
	owner := &domain.ShareOwner{ID: 4}

	suite.mockOwnerRepo.On("FindShareOwnerByID", ctx, int64(4)).Return(owner, nil).Once()

	_, err := suite.service.CreateShareOwnerships(ctx, managerActor(), 4, dto.CreateShareOwnershipsRequest{
		NumShares: 1,
		StartDate: "2026-05-01",
		EndDate:   strPtr("2026-04-01"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOwnershipRepo.AssertNotCalled(suite.T(), "CreateShareOwnerships", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnershipServiceTestSuite) TestUpdateShareOwnership_NoChangeWritesNothing() {
	ctx := context.Background()
	ownership := &domain.ShareOwnership{
		ID:         10,
		OwnerID:    4,
		AmountPaid: decimal.NewFromInt(100),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockOwnershipRepo.On("FindShareOwnershipByID", ctx, int64(10)).Return(ownership, nil).Once()

	updated, err := suite.service.UpdateShareOwnership(ctx, managerActor(), 10, dto.UpdateShareOwnershipRequest{
		StartDate: strPtr("2026-01-01"),
	})

	suite.Require().NoError(err)
	suite.Equal(ownership, updated)
	suite.mockOwnershipRepo.AssertNotCalled(suite.T(), "UpdateShareOwnership", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnershipServiceTestSuite) TestUpdateShareOwnership_ClearsEndDate() {
	ctx := context.Background()
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	ownership := &domain.ShareOwnership{
		ID:         10,
		OwnerID:    4,
		AmountPaid: decimal.NewFromInt(100),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    &end,
	}

	suite.mockOwnershipRepo.On("FindShareOwnershipByID", ctx, int64(10)).Return(ownership, nil).Once()
	suite.mockOwnershipRepo.On("UpdateShareOwnership", ctx, mock.MatchedBy(func(o domain.ShareOwnership) bool {
		return o.EndDate == nil
	}), mock.AnythingOfType("*domain.LogEntry")).Return(nil).Once()

	updated, err := suite.service.UpdateShareOwnership(ctx, managerActor(), 10, dto.UpdateShareOwnershipRequest{
		EndDate: strPtr(""),
	})

	suite.Require().NoError(err)
	suite.Nil(updated.EndDate)
	suite.mockOwnershipRepo.AssertExpectations(suite.T())
}

func (suite *ShareOwnershipServiceTestSuite) TestDeleteShareOwnership_RequiresAdmin() {
	ctx := context.Background()

	err := suite.service.DeleteShareOwnership(ctx, managerActor(), 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOwnershipRepo.AssertNotCalled(suite.T(), "DeleteShareOwnership", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnershipServiceTestSuite) TestDeleteShareOwnership_LogsPreDeleteSnapshot() {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin-1", Permissions: []domain.Permission{domain.PermCoopAdmin}}
	ownership := &domain.ShareOwnership{
		ID:         10,
		OwnerID:    4,
		AmountPaid: decimal.NewFromInt(100),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockOwnershipRepo.On("FindShareOwnershipByID", ctx, int64(10)).Return(ownership, nil).Once()
	suite.mockOwnershipRepo.On("DeleteShareOwnership", ctx, int64(10), mock.MatchedBy(func(e domain.LogEntry) bool {
		return e.EntryType == domain.LogEntryDeleteShareOwnership &&
			e.ActorID == "admin-1" &&
			e.Before != nil &&
			e.After == nil &&
			e.ShareOwnerID != nil && *e.ShareOwnerID == 4
	})).Return(nil).Once()

	err := suite.service.DeleteShareOwnership(ctx, admin, 10)

	suite.Require().NoError(err)
	suite.mockOwnershipRepo.AssertExpectations(suite.T())
}

func TestShareOwnershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShareOwnershipServiceTestSuite))
}
