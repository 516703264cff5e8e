package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// EmailSender delivers member-facing mails. Implementations attach the
// relevant PDF document and are expected to be safe for concurrent use.
type EmailSender interface {
	// SendMembershipConfirmation mails the membership confirmation document
	// to the member. The investing flag picks the matching wording.
	SendMembershipConfirmation(ctx context.Context, recipient domain.MemberInfo, investing bool, actorID string) error

	// SendExtraSharesConfirmation mails the confirmation for additionally
	// acquired shares.
	SendExtraSharesConfirmation(ctx context.Context, recipient domain.MemberInfo, numShares int, actorID string) error

	// SendAccountCreated informs the member that a login account was created
	// for them.
	SendAccountCreated(ctx context.Context, user domain.TapirUser, actorID string) error

	// SendDraftUserRegistered acknowledges a self-service membership
	// application.
	SendDraftUserRegistered(ctx context.Context, draft domain.DraftUser) error
}
