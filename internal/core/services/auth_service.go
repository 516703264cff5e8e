package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
	"github.com/hoelscher-berlin/tapir/internal/utils"
	"github.com/hoelscher-berlin/tapir/pkg/config"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// authService authenticates staff accounts and issues JWTs carrying the
// account's permission set.
type authService struct {
	BaseService
	userRepo portsrepo.TapirUserReader
	cfg      *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.TapirUserReader, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same answer as a wrong password, usernames are not probeable.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTExpiryDuration)

	perms := make([]string, len(user.Permissions))
	for i, p := range user.Permissions {
		perms[i] = string(p)
	}

	claims := middleware.TapirClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Username:    user.Username,
		Permissions: perms,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		UserID:      user.UserID,
		Username:    user.Username,
		Permissions: perms,
	}, nil
}
