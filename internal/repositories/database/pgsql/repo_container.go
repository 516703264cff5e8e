package pgsql

import (
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	shareOwnerRepo := newPgxShareOwnerRepository(dbPool)
	shareOwnershipRepo := newPgxShareOwnershipRepository(dbPool)
	draftUserRepo := newPgxDraftUserRepository(dbPool)
	tapirUserRepo := newPgxTapirUserRepository(dbPool)
	logEntryRepo := newPgxLogEntryRepository(dbPool)
	shiftDataRepo := newPgxShiftDataRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ShareOwnerRepo:     shareOwnerRepo,
		ShareOwnershipRepo: shareOwnershipRepo,
		DraftUserRepo:      draftUserRepo,
		TapirUserRepo:      tapirUserRepo,
		LogEntryRepo:       logEntryRepo,
		ShiftDataRepo:      shiftDataRepo,
	}
}
