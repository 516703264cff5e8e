package services

import (
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/pdfs"
	"github.com/hoelscher-berlin/tapir/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, email portssvc.EmailSender) *portssvc.ServiceContainer {
	coop := pdfs.CoopInfo{
		Name:   cfg.CoopName,
		Street: cfg.CoopStreet,
		City:   cfg.CoopCity,
	}

	container := &portssvc.ServiceContainer{}
	container.ShareOwner = NewShareOwnerService(repos.ShareOwnerRepo, repos.ShiftDataRepo, repos.LogEntryRepo, email, cfg.CoopSharePrice)
	container.ShareOwnership = NewShareOwnershipService(repos.ShareOwnershipRepo, repos.ShareOwnerRepo, email)
	container.DraftUser = NewDraftUserService(repos.DraftUserRepo, email)
	container.Document = NewDocumentService(repos.ShareOwnerRepo, coop, cfg.CoopSharePrice)
	container.Auth = NewAuthService(repos.TapirUserRepo, cfg)
	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.ShareOwnerSvcFacade     = (*shareOwnerService)(nil)
	_ portssvc.ShareOwnershipSvcFacade = (*shareOwnershipService)(nil)
	_ portssvc.DraftUserSvcFacade      = (*draftUserService)(nil)
	_ portssvc.DocumentSvcFacade       = (*documentService)(nil)
	_ portssvc.AuthSvcFacade           = (*authService)(nil)
)
