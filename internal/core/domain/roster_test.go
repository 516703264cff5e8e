package domain_test

import (
	"testing"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func testRoster() []domain.ShareOwner {
	return []domain.ShareOwner{
		{
			ID:        42,
			FirstName: "Alice",
			LastName:  "Smith",
			ShareOwnerships: []domain.ShareOwnership{
				{AmountPaid: decimal.NewFromInt(100), StartDate: date(2020, 1, 1)},
			},
			AttendedWelcomeSession: true,
			UserID:                 strPtr("user-42"),
		},
		{
			ID:          43,
			IsCompany:   true,
			CompanyName: "Smith & Sons GmbH",
			ShareOwnerships: []domain.ShareOwnership{
				{AmountPaid: decimal.NewFromInt(40), StartDate: date(2021, 1, 1)},
			},
		},
		{
			ID:          44,
			FirstName:   "Bob",
			LastName:    "Jones",
			IsInvesting: true,
			ShareOwnerships: []domain.ShareOwnership{
				{AmountPaid: decimal.NewFromInt(100), StartDate: date(2019, 1, 1), EndDate: datePtr(2022, 1, 1)},
			},
			Ratenzahlung: true,
		},
	}
}

func TestRosterFilter_EmptyFilterMatchesAll(t *testing.T) {
	filter := &domain.RosterFilter{}
	owners := testRoster()
	assert.Len(t, filter.Apply(owners), len(owners))
}

func TestBySearchTerm_NumericIsExactIDMatch(t *testing.T) {
	filter := (&domain.RosterFilter{}).Add(domain.BySearchTerm("42"))
	result := filter.Apply(testRoster())

	// "42" must not match company 43 or its name, only member number 42.
	if assert.Len(t, result, 1) {
		assert.Equal(t, int64(42), result[0].ID)
	}
}

func TestBySearchTerm_SignedNumbersAreNameSearches(t *testing.T) {
	// Only digits select the ID branch; "+42" and "-42" are name searches
	// and match no one in the roster.
	for _, term := range []string{"+42", "-42"} {
		result := (&domain.RosterFilter{}).Add(domain.BySearchTerm(term)).Apply(testRoster())
		assert.Empty(t, result, "term %q", term)
	}
}

func TestBySearchTerm_NameIsCaseInsensitiveSubstring(t *testing.T) {
	filter := (&domain.RosterFilter{}).Add(domain.BySearchTerm("smith"))
	result := filter.Apply(testRoster())

	// Matches both Alice Smith and the company whose name contains Smith.
	assert.Len(t, result, 2)
	assert.Equal(t, int64(42), result[0].ID)
	assert.Equal(t, int64(43), result[1].ID)
}

func TestBySearchTerm_UsesLinkedAccountName(t *testing.T) {
	owner := domain.ShareOwner{
		ID:     7,
		UserID: strPtr("user-7"),
		User:   &domain.TapirUser{UserID: "user-7", FirstName: "Carol", LastName: "Miller"},
	}
	assert.True(t, domain.BySearchTerm("miller")(owner))
	assert.False(t, domain.BySearchTerm("smith")(owner))
}

func TestByStatus(t *testing.T) {
	at := date(2023, 6, 1)
	owners := testRoster()

	active := (&domain.RosterFilter{}).Add(domain.ByStatus(domain.MemberStatusActive, at)).Apply(owners)
	assert.Len(t, active, 2)

	sold := (&domain.RosterFilter{}).Add(domain.ByStatus(domain.MemberStatusSold, at)).Apply(owners)
	if assert.Len(t, sold, 1) {
		assert.Equal(t, int64(44), sold[0].ID)
	}
}

func TestPaymentPredicates(t *testing.T) {
	price := decimal.NewFromInt(100)
	owners := testRoster()

	unpaid := (&domain.RosterFilter{}).Add(domain.ByHasUnpaidShares(price, true)).Apply(owners)
	if assert.Len(t, unpaid, 1) {
		assert.Equal(t, int64(43), unpaid[0].ID)
	}

	fullyPaid := (&domain.RosterFilter{}).Add(domain.ByFullyPaid(price, true)).Apply(owners)
	assert.Len(t, fullyPaid, 2)
}

func TestByAccountMembership(t *testing.T) {
	owners := testRoster()
	cashiers := map[string]bool{"user-42": true}

	has := (&domain.RosterFilter{}).Add(domain.ByAccountMembership(cashiers, true)).Apply(owners)
	if assert.Len(t, has, 1) {
		assert.Equal(t, int64(42), has[0].ID)
	}

	// Owners without any account count as not holding the capability.
	hasNot := (&domain.RosterFilter{}).Add(domain.ByAccountMembership(cashiers, false)).Apply(owners)
	assert.Len(t, hasNot, 2)
}

func TestRosterFilter_Conjunction(t *testing.T) {
	at := date(2023, 6, 1)
	filter := (&domain.RosterFilter{}).
		Add(domain.ByStatus(domain.MemberStatusActive, at)).
		Add(domain.ByHasAccount(true)).
		Add(domain.ByAttendedWelcomeSession(true))

	result := filter.Apply(testRoster())
	if assert.Len(t, result, 1) {
		assert.Equal(t, int64(42), result[0].ID)
	}
}

func TestRosterFilter_DoesNotMutateInput(t *testing.T) {
	owners := testRoster()
	before := make([]domain.ShareOwner, len(owners))
	copy(before, owners)

	_ = (&domain.RosterFilter{}).
		Add(domain.ByIsCompany(true)).
		Add(domain.ByRatenzahlung(false)).
		Add(domain.ByPaidMembershipFee(false)).
		Apply(owners)

	for i := range owners {
		assert.Equal(t, before[i].ID, owners[i].ID)
		assert.Equal(t, before[i].IsCompany, owners[i].IsCompany)
	}
}
