package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// AuthSvcFacade authenticates staff accounts and issues tokens.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns a signed JWT carrying the
	// account's permission set.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
