package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// TapirUserReader defines read operations for login accounts.
type TapirUserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.TapirUser, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.TapirUser, error)
}

// TapirUserWriter defines write operations for login accounts.
type TapirUserWriter interface {
	SaveUser(ctx context.Context, user domain.TapirUser) error
}

// TapirUserRepositoryFacade combines the account repository interfaces.
type TapirUserRepositoryFacade interface {
	TapirUserReader
	TapirUserWriter
}
