package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// ShareOwnerReaderSvc defines the read side of member administration.
type ShareOwnerReaderSvc interface {
	// GetShareOwner retrieves a member with shares and account populated.
	GetShareOwner(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error)

	// ListRoster returns the filtered member roster.
	ListRoster(ctx context.Context, actor domain.Actor, params dto.RosterFilterParams) (*dto.RosterResponse, error)

	// ExportMailchimp returns the mailing-list rows: currently active,
	// non-investing members with a known email address.
	ExportMailchimp(ctx context.Context, actor domain.Actor) ([]dto.MailchimpContact, error)

	// ListMatchingProgram returns the members willing to gift a share,
	// ordered by the date they signed up for the program.
	ListMatchingProgram(ctx context.Context, actor domain.Actor) ([]domain.ShareOwner, error)

	// WelcomeDeskSearch is the name-or-ID search of the welcome desk.
	WelcomeDeskSearch(ctx context.Context, actor domain.Actor, term string) ([]domain.ShareOwner, error)

	// WelcomeDeskDetail returns the shopping eligibility of one member.
	WelcomeDeskDetail(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.WelcomeDeskMemberResponse, error)

	// ListLogEntries returns the member's audit trail, newest first.
	ListLogEntries(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.LogEntry, error)
}

// ShareOwnerWriterSvc defines the mutation side of member administration.
type ShareOwnerWriterSvc interface {
	// UpdateShareOwner edits a member; the change is audit-logged only when
	// the snapshots differ.
	UpdateShareOwner(ctx context.Context, actor domain.Actor, ownerID int64, req dto.UpdateShareOwnerRequest) (*domain.ShareOwner, error)

	// MarkAttendedWelcomeSession records welcome session attendance.
	MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error)

	// GrantAccount creates a login account for the member. Rejected when the
	// member already has one or is a company.
	GrantAccount(ctx context.Context, actor domain.Actor, ownerID int64, req dto.GrantAccountRequest) (*domain.TapirUser, error)

	// SendMembershipConfirmationEmail sends the confirmation mail on demand,
	// picking the investing or active template.
	SendMembershipConfirmationEmail(ctx context.Context, actor domain.Actor, ownerID int64) error
}

// ShareOwnerSvcFacade combines the member administration interfaces.
type ShareOwnerSvcFacade interface {
	ShareOwnerReaderSvc
	ShareOwnerWriterSvc
}
