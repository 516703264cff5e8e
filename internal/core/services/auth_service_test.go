package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/core/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
	"github.com/hoelscher-berlin/tapir/internal/utils"
	"github.com/hoelscher-berlin/tapir/pkg/config"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockTapirUserRepository
	cfg          *config.Config
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockTapirUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "tapir-backend",
	}
	suite.service = services.NewAuthService(suite.mockUserRepo, suite.cfg)
}

func (suite *AuthServiceTestSuite) testUser(password string) *domain.TapirUser {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.TapirUser{
		UserID:       "user-1",
		Username:     "office",
		PasswordHash: &hash,
		Permissions:  []domain.Permission{domain.PermCoopManage, domain.PermWelcomeDeskView},
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.testUser("correct horse battery staple")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "office").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "office", Password: "correct horse battery staple"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("user-1", resp.UserID)
	suite.Equal([]string{"coop.manage", "welcomedesk.view"}, resp.Permissions)

	// The token must round-trip into claims carrying the permission set.
	claims := &middleware.TapirClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (any, error) {
		return []byte(suite.cfg.JWTSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(parsed.Valid)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("office", claims.Username)
	suite.Equal([]string{"coop.manage", "welcomedesk.view"}, claims.Permissions)

	actor := claims.Actor()
	suite.True(actor.HasPermission(domain.PermCoopManage))
	suite.False(actor.HasPermission(domain.PermCoopAdmin))
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := suite.testUser("right password")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "office").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "office", Password: "wrong password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUserSameAnswer() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "anything"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_NoPasswordSet() {
	ctx := context.Background()
	user := &domain.TapirUser{UserID: "user-2", Username: "member"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "member").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "member", Password: "anything"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(resp)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
