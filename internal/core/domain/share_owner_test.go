package domain_test

import (
	"testing"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareOwner_Info_OwnerIsSourceBeforeAccount(t *testing.T) {
	owner := domain.ShareOwner{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Street:    "Main St 1",
	}

	info := owner.Info()
	assert.Equal(t, domain.IdentityFromOwner, info.Source)
	assert.Equal(t, "Alice Smith", info.DisplayName())
	assert.Equal(t, "alice@example.com", info.Email)
}

func TestShareOwner_Info_AccountIsSourceAfterLink(t *testing.T) {
	userID := "user-1"
	owner := domain.ShareOwner{
		UserID: &userID,
		User: &domain.TapirUser{
			UserID:    userID,
			FirstName: "Alice",
			LastName:  "Miller", // changed name after marriage, account wins
			Email:     "alice.miller@example.com",
		},
	}

	info := owner.Info()
	assert.Equal(t, domain.IdentityFromAccount, info.Source)
	assert.Equal(t, "Alice Miller", info.DisplayName())
	assert.Equal(t, "alice.miller@example.com", info.Email)
}

func TestShareOwner_Info_CompanyUsesCompanyName(t *testing.T) {
	owner := domain.ShareOwner{IsCompany: true, CompanyName: "SuperCoop eG"}
	assert.Equal(t, "SuperCoop eG", owner.Info().DisplayName())
}

func TestShareOwner_BlankInfoFields(t *testing.T) {
	owner := domain.ShareOwner{
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		PhoneNumber: "030123456",
		Street:      "Main St 1",
		Postcode:    "10115",
		City:        "Berlin",
		Country:     "DE",
	}

	owner.BlankInfoFields()

	assert.Empty(t, owner.FirstName)
	assert.Empty(t, owner.LastName)
	assert.Empty(t, owner.Email)
	assert.Empty(t, owner.PhoneNumber)
	assert.Empty(t, owner.Street)
	assert.Empty(t, owner.Postcode)
	assert.Empty(t, owner.City)
	assert.Empty(t, owner.Country)
}

func TestFreezeForLog_DiffGating(t *testing.T) {
	ownership := domain.ShareOwnership{ID: 1, StartDate: date(2024, 1, 1)}

	before, err := domain.FreezeForLog(ownership)
	require.NoError(t, err)
	unchanged, err := domain.FreezeForLog(ownership)
	require.NoError(t, err)
	assert.True(t, domain.SnapshotsEqual(before, unchanged))

	ownership.EndDate = datePtr(2024, 6, 30)
	after, err := domain.FreezeForLog(ownership)
	require.NoError(t, err)
	assert.False(t, domain.SnapshotsEqual(before, after))
}

func TestDraftUser_CanBeConverted(t *testing.T) {
	draft := domain.DraftUser{NumShares: 1, SignedMembershipAgreement: true, PaidMembershipFee: true}
	assert.True(t, draft.CanBeConverted())

	draft.SignedMembershipAgreement = false
	assert.False(t, draft.CanBeConverted())
}

func TestActor_HasPermission(t *testing.T) {
	office := domain.Actor{Permissions: []domain.Permission{domain.PermCoopManage}}
	assert.True(t, office.HasPermission(domain.PermCoopManage))
	assert.False(t, office.HasPermission(domain.PermCoopAdmin))

	admin := domain.Actor{Permissions: []domain.Permission{domain.PermCoopAdmin}}
	assert.True(t, admin.HasPermission(domain.PermCoopAdmin))
	// coop.admin implies coop.manage
	assert.True(t, admin.HasPermission(domain.PermCoopManage))
	assert.False(t, admin.HasPermission(domain.PermWelcomeDeskView))
}
