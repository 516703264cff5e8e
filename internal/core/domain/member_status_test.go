package domain_test

import (
	"testing"
	"time"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestShareOwnership_IsActiveAt(t *testing.T) {
	tests := []struct {
		name      string
		ownership domain.ShareOwnership
		at        time.Time
		want      bool
	}{
		{
			name:      "open-ended share active on its start date",
			ownership: domain.ShareOwnership{StartDate: date(2024, 1, 1)},
			at:        date(2024, 1, 1),
			want:      true,
		},
		{
			name:      "open-ended share not active the day before its start date",
			ownership: domain.ShareOwnership{StartDate: date(2024, 1, 1)},
			at:        date(2023, 12, 31),
			want:      false,
		},
		{
			name:      "ended share still active on its end date",
			ownership: domain.ShareOwnership{StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 6, 30)},
			at:        date(2024, 6, 30),
			want:      true,
		},
		{
			name:      "ended share inactive the day after its end date",
			ownership: domain.ShareOwnership{StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 6, 30)},
			at:        date(2024, 7, 1),
			want:      false,
		},
		{
			name:      "time of day on the reference date is irrelevant",
			ownership: domain.ShareOwnership{StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 6, 30)},
			at:        time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ownership.IsActiveAt(tt.at))
		})
	}
}

func TestShareOwnership_Validate(t *testing.T) {
	valid := domain.ShareOwnership{StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 1)}
	assert.NoError(t, valid.Validate())

	openEnded := domain.ShareOwnership{StartDate: date(2024, 1, 1)}
	assert.NoError(t, openEnded.Validate())

	inverted := domain.ShareOwnership{StartDate: date(2024, 2, 1), EndDate: datePtr(2024, 1, 31)}
	assert.Error(t, inverted.Validate())
}

func TestMemberStatusAt(t *testing.T) {
	tests := []struct {
		name  string
		owner domain.ShareOwner
		at    time.Time
		want  domain.MemberStatus
	}{
		{
			name: "active member with one open-ended share",
			owner: domain.ShareOwner{
				ShareOwnerships: []domain.ShareOwnership{{StartDate: date(2023, 1, 1)}},
			},
			at:   date(2023, 6, 1),
			want: domain.MemberStatusActive,
		},
		{
			name: "investing member with an active share",
			owner: domain.ShareOwner{
				IsInvesting:     true,
				ShareOwnerships: []domain.ShareOwnership{{StartDate: date(2023, 1, 1)}},
			},
			at:   date(2023, 6, 1),
			want: domain.MemberStatusInvesting,
		},
		{
			name: "sold after all shares ended",
			owner: domain.ShareOwner{
				ShareOwnerships: []domain.ShareOwnership{
					{StartDate: date(2023, 1, 1), EndDate: datePtr(2023, 5, 1)},
				},
			},
			at:   date(2023, 6, 1),
			want: domain.MemberStatusSold,
		},
		{
			name: "active before the share ends, even with an end date set",
			owner: domain.ShareOwner{
				ShareOwnerships: []domain.ShareOwnership{
					{StartDate: date(2023, 1, 1), EndDate: datePtr(2023, 5, 1)},
				},
			},
			at:   date(2023, 4, 30),
			want: domain.MemberStatusActive,
		},
		{
			name: "one active share among several sold ones is enough",
			owner: domain.ShareOwner{
				ShareOwnerships: []domain.ShareOwnership{
					{StartDate: date(2020, 1, 1), EndDate: datePtr(2021, 1, 1)},
					{StartDate: date(2022, 1, 1)},
				},
			},
			at:   date(2023, 6, 1),
			want: domain.MemberStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MemberStatusAt(tt.owner, tt.at))
		})
	}
}

func TestMemberStatusAt_IsPure(t *testing.T) {
	owner := domain.ShareOwner{
		ShareOwnerships: []domain.ShareOwnership{
			{StartDate: date(2023, 1, 1), EndDate: datePtr(2023, 5, 1)},
			{StartDate: date(2022, 6, 1)},
		},
	}
	at := date(2023, 6, 1)

	first := domain.MemberStatusAt(owner, at)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, domain.MemberStatusAt(owner, at))
	}
}

func TestShareOwner_NumActiveSharesAndJoinDate(t *testing.T) {
	owner := domain.ShareOwner{
		ShareOwnerships: []domain.ShareOwnership{
			{StartDate: date(2021, 3, 1)},
			{StartDate: date(2020, 1, 15)},
			{StartDate: date(2019, 1, 1), EndDate: datePtr(2019, 12, 31)},
		},
	}
	at := date(2023, 6, 1)

	assert.Equal(t, 2, owner.NumActiveShares(at))

	oldest := owner.OldestActiveOwnership(at)
	if assert.NotNil(t, oldest) {
		assert.Equal(t, date(2020, 1, 15), oldest.StartDate)
	}
}

func TestShareOwner_CanShop(t *testing.T) {
	at := date(2023, 6, 1)

	working := domain.ShareOwner{ShareOwnerships: []domain.ShareOwnership{{StartDate: date(2023, 1, 1)}}}
	assert.True(t, working.CanShop(at))

	investing := working
	investing.IsInvesting = true
	assert.False(t, investing.CanShop(at))

	sold := domain.ShareOwner{ShareOwnerships: []domain.ShareOwnership{
		{StartDate: date(2022, 1, 1), EndDate: datePtr(2022, 12, 31)},
	}}
	assert.False(t, sold.CanShop(at))
}
