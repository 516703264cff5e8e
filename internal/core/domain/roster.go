package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RosterPredicate narrows the candidate set of share owners. Predicates are
// pure: they never mutate the owners they inspect.
type RosterPredicate func(ShareOwner) bool

// RosterFilter is an explicit ordered list of predicates combined by
// conjunction. An absent filter value simply contributes no predicate, so
// an empty filter matches everything.
type RosterFilter struct {
	predicates []RosterPredicate
}

// Add appends a predicate to the filter.
func (f *RosterFilter) Add(p RosterPredicate) *RosterFilter {
	f.predicates = append(f.predicates, p)
	return f
}

// Matches reports whether the owner passes every predicate.
func (f *RosterFilter) Matches(owner ShareOwner) bool {
	for _, p := range f.predicates {
		if !p(owner) {
			return false
		}
	}
	return true
}

// Apply returns the owners matching every predicate, preserving order.
func (f *RosterFilter) Apply(owners []ShareOwner) []ShareOwner {
	result := make([]ShareOwner, 0, len(owners))
	for _, o := range owners {
		if f.Matches(o) {
			result = append(result, o)
		}
	}
	return result
}

// ByStatus matches owners whose derived status as of the reference date
// equals the given status.
func ByStatus(status MemberStatus, at time.Time) RosterPredicate {
	return func(o ShareOwner) bool {
		return MemberStatusAt(o, at) == status
	}
}

// BySearchTerm matches by member number or name. A term of digits only is an
// exact ID match; anything else, including signed numbers, is a
// case-insensitive substring match on the resolved display name.
func BySearchTerm(term string) RosterPredicate {
	if isAllDigits(term) {
		if id, err := strconv.ParseInt(term, 10, 64); err == nil {
			return func(o ShareOwner) bool { return o.ID == id }
		}
	}
	needle := strings.ToLower(term)
	return func(o ShareOwner) bool {
		return strings.Contains(strings.ToLower(o.Info().DisplayName()), needle)
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ByAttendedWelcomeSession matches on the welcome session flag.
func ByAttendedWelcomeSession(attended bool) RosterPredicate {
	return func(o ShareOwner) bool { return o.AttendedWelcomeSession == attended }
}

// ByRatenzahlung matches on the installment payment flag.
func ByRatenzahlung(ratenzahlung bool) RosterPredicate {
	return func(o ShareOwner) bool { return o.Ratenzahlung == ratenzahlung }
}

// ByIsCompany matches on the company flag.
func ByIsCompany(isCompany bool) RosterPredicate {
	return func(o ShareOwner) bool { return o.IsCompany == isCompany }
}

// ByPaidMembershipFee matches on the membership fee flag.
func ByPaidMembershipFee(paid bool) RosterPredicate {
	return func(o ShareOwner) bool { return o.PaidMembershipFee == paid }
}

// ByHasAccount matches owners with (or without) a linked login account.
func ByHasAccount(hasAccount bool) RosterPredicate {
	return func(o ShareOwner) bool { return o.HasAccount() == hasAccount }
}

// ByHasUnpaidShares matches owners holding (or not holding) at least one
// share paid below the share price.
func ByHasUnpaidShares(sharePrice decimal.Decimal, hasUnpaid bool) RosterPredicate {
	return func(o ShareOwner) bool {
		unpaid := false
		for _, s := range o.ShareOwnerships {
			if s.AmountPaid.LessThan(sharePrice) {
				unpaid = true
				break
			}
		}
		return unpaid == hasUnpaid
	}
}

// ByFullyPaid matches owners whose every share is paid at least the share
// price (or the complement).
func ByFullyPaid(sharePrice decimal.Decimal, fullyPaid bool) RosterPredicate {
	return func(o ShareOwner) bool {
		paid := true
		for _, s := range o.ShareOwnerships {
			if s.AmountPaid.LessThan(sharePrice) {
				paid = false
				break
			}
		}
		return paid == fullyPaid
	}
}

// ByAccountMembership matches owners whose linked account ID is in (or not
// in) the given set. The shift subsystem supplies the set, e.g. all accounts
// holding a capability or registered to an ABCD week; keeping the lookup
// outside the predicate keeps the predicate pure.
func ByAccountMembership(accountIDs map[string]bool, include bool) RosterPredicate {
	return func(o ShareOwner) bool {
		in := o.UserID != nil && accountIDs[*o.UserID]
		return in == include
	}
}
