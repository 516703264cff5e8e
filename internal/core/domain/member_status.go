package domain

import "time"

// MemberStatus is derived from the owner's share ownership ranges and the
// investing flag. It is never stored.
type MemberStatus string

const (
	// MemberStatusActive is a working member holding at least one active share.
	MemberStatusActive MemberStatus = "active"
	// MemberStatusInvesting holds at least one active share but has no
	// working-member obligations.
	MemberStatusInvesting MemberStatus = "investing"
	// MemberStatusSold has share ownership records but none active as of the
	// reference date.
	MemberStatusSold MemberStatus = "sold"
)

// MemberStatuses lists all derivable statuses, for filter choices.
var MemberStatuses = []MemberStatus{MemberStatusActive, MemberStatusInvesting, MemberStatusSold}

// MemberStatusAt derives the member status of an owner as of the reference
// date. It is a pure function of the owner snapshot and the date: the
// ownership ranges and the investing flag fully determine the result.
// Prospective members are DraftUsers, a separate entity, not a status here.
func MemberStatusAt(owner ShareOwner, at time.Time) MemberStatus {
	active := false
	for _, s := range owner.ShareOwnerships {
		if s.IsActiveAt(at) {
			active = true
			break
		}
	}
	if !active {
		return MemberStatusSold
	}
	if owner.IsInvesting {
		return MemberStatusInvesting
	}
	return MemberStatusActive
}
