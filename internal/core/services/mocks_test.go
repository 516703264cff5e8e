package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// --- Mock ShareOwnerRepository (based on ShareOwnerService usage) ---
type MockShareOwnerRepository struct {
	mock.Mock
}

func (m *MockShareOwnerRepository) FindShareOwnerByID(ctx context.Context, ownerID int64) (*domain.ShareOwner, error) {
	args := m.Called(ctx, ownerID)
	var owner *domain.ShareOwner
	if args.Get(0) != nil {
		owner = args.Get(0).(*domain.ShareOwner)
	}
	return owner, args.Error(1)
}

func (m *MockShareOwnerRepository) FindShareOwners(ctx context.Context) ([]domain.ShareOwner, error) {
	args := m.Called(ctx)
	var owners []domain.ShareOwner
	if args.Get(0) != nil {
		owners = args.Get(0).([]domain.ShareOwner)
	}
	return owners, args.Error(1)
}

func (m *MockShareOwnerRepository) CountShareOwners(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockShareOwnerRepository) SaveShareOwner(ctx context.Context, owner domain.ShareOwner) (*domain.ShareOwner, error) {
	args := m.Called(ctx, owner)
	var saved *domain.ShareOwner
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.ShareOwner)
	}
	return saved, args.Error(1)
}

func (m *MockShareOwnerRepository) UpdateShareOwner(ctx context.Context, owner domain.ShareOwner, logEntry *domain.LogEntry) error {
	args := m.Called(ctx, owner, logEntry)
	return args.Error(0)
}

func (m *MockShareOwnerRepository) LinkTapirUser(ctx context.Context, owner domain.ShareOwner, user domain.TapirUser, logEntry domain.LogEntry) error {
	args := m.Called(ctx, owner, user, logEntry)
	return args.Error(0)
}

// --- Mock ShareOwnershipRepository ---
type MockShareOwnershipRepository struct {
	mock.Mock
}

func (m *MockShareOwnershipRepository) FindShareOwnershipByID(ctx context.Context, ownershipID int64) (*domain.ShareOwnership, error) {
	args := m.Called(ctx, ownershipID)
	var ownership *domain.ShareOwnership
	if args.Get(0) != nil {
		ownership = args.Get(0).(*domain.ShareOwnership)
	}
	return ownership, args.Error(1)
}

func (m *MockShareOwnershipRepository) CreateShareOwnerships(ctx context.Context, ownerships []domain.ShareOwnership, recap domain.ExtraSharesAccountingRecap, logEntry domain.LogEntry) ([]domain.ShareOwnership, error) {
	args := m.Called(ctx, ownerships, recap, logEntry)
	var created []domain.ShareOwnership
	if args.Get(0) != nil {
		created = args.Get(0).([]domain.ShareOwnership)
	}
	return created, args.Error(1)
}

func (m *MockShareOwnershipRepository) UpdateShareOwnership(ctx context.Context, ownership domain.ShareOwnership, logEntry *domain.LogEntry) error {
	args := m.Called(ctx, ownership, logEntry)
	return args.Error(0)
}

func (m *MockShareOwnershipRepository) DeleteShareOwnership(ctx context.Context, ownershipID int64, logEntry domain.LogEntry) error {
	args := m.Called(ctx, ownershipID, logEntry)
	return args.Error(0)
}

// --- Mock DraftUserRepository ---
type MockDraftUserRepository struct {
	mock.Mock
}

func (m *MockDraftUserRepository) FindDraftUserByID(ctx context.Context, draftID int64) (*domain.DraftUser, error) {
	args := m.Called(ctx, draftID)
	var draft *domain.DraftUser
	if args.Get(0) != nil {
		draft = args.Get(0).(*domain.DraftUser)
	}
	return draft, args.Error(1)
}

func (m *MockDraftUserRepository) FindDraftUsers(ctx context.Context) ([]domain.DraftUser, error) {
	args := m.Called(ctx)
	var drafts []domain.DraftUser
	if args.Get(0) != nil {
		drafts = args.Get(0).([]domain.DraftUser)
	}
	return drafts, args.Error(1)
}

func (m *MockDraftUserRepository) SaveDraftUser(ctx context.Context, draft domain.DraftUser) (*domain.DraftUser, error) {
	args := m.Called(ctx, draft)
	var saved *domain.DraftUser
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.DraftUser)
	}
	return saved, args.Error(1)
}

func (m *MockDraftUserRepository) UpdateDraftUser(ctx context.Context, draft domain.DraftUser, logEntry *domain.LogEntry) error {
	args := m.Called(ctx, draft, logEntry)
	return args.Error(0)
}

func (m *MockDraftUserRepository) DeleteDraftUser(ctx context.Context, draftID int64) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *MockDraftUserRepository) ConvertDraftUser(ctx context.Context, draftID int64, owner domain.ShareOwner, ownerships []domain.ShareOwnership, logEntry domain.LogEntry) (*domain.ShareOwner, error) {
	args := m.Called(ctx, draftID, owner, ownerships, logEntry)
	var created *domain.ShareOwner
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.ShareOwner)
	}
	return created, args.Error(1)
}

// --- Mock TapirUserRepository ---
type MockTapirUserRepository struct {
	mock.Mock
}

func (m *MockTapirUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.TapirUser, error) {
	args := m.Called(ctx, userID)
	var user *domain.TapirUser
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.TapirUser)
	}
	return user, args.Error(1)
}

func (m *MockTapirUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.TapirUser, error) {
	args := m.Called(ctx, username)
	var user *domain.TapirUser
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.TapirUser)
	}
	return user, args.Error(1)
}

func (m *MockTapirUserRepository) SaveUser(ctx context.Context, user domain.TapirUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock LogEntryReader ---
type MockLogEntryReader struct {
	mock.Mock
}

func (m *MockLogEntryReader) FindLogEntriesByShareOwner(ctx context.Context, ownerID int64) ([]domain.LogEntry, error) {
	args := m.Called(ctx, ownerID)
	var entries []domain.LogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LogEntry)
	}
	return entries, args.Error(1)
}

// --- Mock ShiftDataReader ---
type MockShiftDataReader struct {
	mock.Mock
}

func (m *MockShiftDataReader) FindUserIDsWithCapability(ctx context.Context, capability string) (map[string]bool, error) {
	args := m.Called(ctx, capability)
	var ids map[string]bool
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]bool)
	}
	return ids, args.Error(1)
}

func (m *MockShiftDataReader) FindUserIDsRegisteredToSlotWithCapability(ctx context.Context, capability string) (map[string]bool, error) {
	args := m.Called(ctx, capability)
	var ids map[string]bool
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]bool)
	}
	return ids, args.Error(1)
}

func (m *MockShiftDataReader) FindUserIDsWithAttendanceMode(ctx context.Context, mode domain.ShiftAttendanceMode) (map[string]bool, error) {
	args := m.Called(ctx, mode)
	var ids map[string]bool
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]bool)
	}
	return ids, args.Error(1)
}

func (m *MockShiftDataReader) FindUserIDsInABCDWeek(ctx context.Context, week string) (map[string]bool, error) {
	args := m.Called(ctx, week)
	var ids map[string]bool
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]bool)
	}
	return ids, args.Error(1)
}

func (m *MockShiftDataReader) FindShiftUserData(ctx context.Context, userID string) (*domain.ShiftUserData, error) {
	args := m.Called(ctx, userID)
	var data *domain.ShiftUserData
	if args.Get(0) != nil {
		data = args.Get(0).(*domain.ShiftUserData)
	}
	return data, args.Error(1)
}

// --- Mock EmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendMembershipConfirmation(ctx context.Context, recipient domain.MemberInfo, investing bool, actorID string) error {
	args := m.Called(ctx, recipient, investing, actorID)
	return args.Error(0)
}

func (m *MockEmailSender) SendExtraSharesConfirmation(ctx context.Context, recipient domain.MemberInfo, numShares int, actorID string) error {
	args := m.Called(ctx, recipient, numShares, actorID)
	return args.Error(0)
}

func (m *MockEmailSender) SendAccountCreated(ctx context.Context, user domain.TapirUser, actorID string) error {
	args := m.Called(ctx, user, actorID)
	return args.Error(0)
}

func (m *MockEmailSender) SendDraftUserRegistered(ctx context.Context, draft domain.DraftUser) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
