package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/core/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/pdfs"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockOwnerRepo *MockShareOwnerRepository
	service       portssvc.DocumentSvcFacade
	ctx           context.Context
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockOwnerRepo = new(MockShareOwnerRepository)
	coop := pdfs.CoopInfo{
		Name:   "SuperCoop Berlin eG",
		Street: "Oudenarder Str. 16",
		City:   "13347 Berlin",
	}
	suite.service = services.NewDocumentService(suite.mockOwnerRepo, coop, decimal.NewFromInt(100))
	suite.ctx = context.Background()
}

func (suite *DocumentServiceTestSuite) testOwner() *domain.ShareOwner {
	owner := &domain.ShareOwner{
		ID:        4,
		FirstName: "Erika",
		LastName:  "Mustermann",
		Street:    "Musterweg 12",
		Postcode:  "13347",
		City:      "Berlin",
	}
	owner.ShareOwnerships = activeShares(owner.ID, 2)
	return owner
}

func (suite *DocumentServiceTestSuite) TestEmptyMembershipAgreement_RequiresManagePermission() {
	result, err := suite.service.EmptyMembershipAgreement(suite.ctx, domain.Actor{UserID: "member-1"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

func (suite *DocumentServiceTestSuite) TestMembershipAgreement_RendersPDFForMember() {
	owner := suite.testOwner()
	suite.mockOwnerRepo.On("FindShareOwnerByID", suite.ctx, int64(4)).Return(owner, nil).Once()

	result, err := suite.service.MembershipAgreement(suite.ctx, managerActor(), 4)

	suite.Require().NoError(err)
	suite.Equal("Beitrittserklärung Erika Mustermann.pdf", result.Filename)
	suite.NotEmpty(result.Content)
	suite.Equal("%PDF", string(result.Content[:4]))
	suite.mockOwnerRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestMembershipConfirmation_DefaultsShareCountAndDate() {
	owner := suite.testOwner()
	suite.mockOwnerRepo.On("FindShareOwnerByID", suite.ctx, int64(4)).Return(owner, nil).Once()

	result, err := suite.service.MembershipConfirmation(suite.ctx, managerActor(), 4, dto.DocumentParams{})

	suite.Require().NoError(err)
	suite.Equal("Mitgliedschaftsbestätigung Erika Mustermann.pdf", result.Filename)
	suite.NotEmpty(result.Content)
}

func (suite *DocumentServiceTestSuite) TestMembershipConfirmation_RejectsMalformedDate() {
	owner := suite.testOwner()
	suite.mockOwnerRepo.On("FindShareOwnerByID", suite.ctx, int64(4)).Return(owner, nil).Once()

	result, err := suite.service.MembershipConfirmation(suite.ctx, managerActor(), 4, dto.DocumentParams{Date: "2026-01-15"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *DocumentServiceTestSuite) TestExtraSharesConfirmation_ParametersAreMandatory() {
	numShares := 3

	_, err := suite.service.ExtraSharesConfirmation(suite.ctx, managerActor(), 4, dto.DocumentParams{Date: "15.01.2026"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ExtraSharesConfirmation(suite.ctx, managerActor(), 4, dto.DocumentParams{NumShares: &numShares})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockOwnerRepo.AssertNotCalled(suite.T(), "FindShareOwnerByID", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestExtraSharesConfirmation_Renders() {
	owner := suite.testOwner()
	numShares := 3
	suite.mockOwnerRepo.On("FindShareOwnerByID", suite.ctx, int64(4)).Return(owner, nil).Once()

	result, err := suite.service.ExtraSharesConfirmation(suite.ctx, managerActor(), 4, dto.DocumentParams{
		NumShares: &numShares,
		Date:      "15.01.2026",
	})

	suite.Require().NoError(err)
	suite.Equal("Bestätigung weitere Anteile Erika Mustermann.pdf", result.Filename)
	suite.Equal("%PDF", string(result.Content[:4]))
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
