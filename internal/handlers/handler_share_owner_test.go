package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
	"github.com/hoelscher-berlin/tapir/internal/dto"
	"github.com/hoelscher-berlin/tapir/internal/handlers"
	"github.com/hoelscher-berlin/tapir/internal/middleware"
	"github.com/hoelscher-berlin/tapir/pkg/config"
)

// --- Mock ShareOwnerService ---
type MockShareOwnerService struct {
	mock.Mock
}

func (m *MockShareOwnerService) GetShareOwner(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error) {
	args := m.Called(ctx, actor, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareOwner), args.Error(1)
}

func (m *MockShareOwnerService) ListRoster(ctx context.Context, actor domain.Actor, params dto.RosterFilterParams) (*dto.RosterResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RosterResponse), args.Error(1)
}

func (m *MockShareOwnerService) ExportMailchimp(ctx context.Context, actor domain.Actor) ([]dto.MailchimpContact, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MailchimpContact), args.Error(1)
}

func (m *MockShareOwnerService) ListMatchingProgram(ctx context.Context, actor domain.Actor) ([]domain.ShareOwner, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareOwner), args.Error(1)
}

func (m *MockShareOwnerService) WelcomeDeskSearch(ctx context.Context, actor domain.Actor, term string) ([]domain.ShareOwner, error) {
	args := m.Called(ctx, actor, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareOwner), args.Error(1)
}

func (m *MockShareOwnerService) WelcomeDeskDetail(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.WelcomeDeskMemberResponse, error) {
	args := m.Called(ctx, actor, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WelcomeDeskMemberResponse), args.Error(1)
}

func (m *MockShareOwnerService) ListLogEntries(ctx context.Context, actor domain.Actor, ownerID int64) ([]domain.LogEntry, error) {
	args := m.Called(ctx, actor, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogEntry), args.Error(1)
}

func (m *MockShareOwnerService) UpdateShareOwner(ctx context.Context, actor domain.Actor, ownerID int64, req dto.UpdateShareOwnerRequest) (*domain.ShareOwner, error) {
	args := m.Called(ctx, actor, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareOwner), args.Error(1)
}

func (m *MockShareOwnerService) MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, ownerID int64) (*domain.ShareOwner, error) {
	args := m.Called(ctx, actor, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareOwner), args.Error(1)
}

func (m *MockShareOwnerService) GrantAccount(ctx context.Context, actor domain.Actor, ownerID int64, req dto.GrantAccountRequest) (*domain.TapirUser, error) {
	args := m.Called(ctx, actor, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TapirUser), args.Error(1)
}

func (m *MockShareOwnerService) SendMembershipConfirmationEmail(ctx context.Context, actor domain.Actor, ownerID int64) error {
	args := m.Called(ctx, actor, ownerID)
	return args.Error(0)
}

var _ portssvc.ShareOwnerSvcFacade = (*MockShareOwnerService)(nil)

// --- Mock ShareOwnershipService ---
type MockShareOwnershipService struct {
	mock.Mock
}

func (m *MockShareOwnershipService) CreateShareOwnerships(ctx context.Context, actor domain.Actor, ownerID int64, req dto.CreateShareOwnershipsRequest) ([]domain.ShareOwnership, error) {
	args := m.Called(ctx, actor, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareOwnership), args.Error(1)
}

func (m *MockShareOwnershipService) UpdateShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64, req dto.UpdateShareOwnershipRequest) (*domain.ShareOwnership, error) {
	args := m.Called(ctx, actor, ownershipID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareOwnership), args.Error(1)
}

func (m *MockShareOwnershipService) DeleteShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64) error {
	args := m.Called(ctx, actor, ownershipID)
	return args.Error(0)
}

var _ portssvc.ShareOwnershipSvcFacade = (*MockShareOwnershipService)(nil)

// --- Mock DraftUserService ---
type MockDraftUserService struct {
	mock.Mock
}

func (m *MockDraftUserService) CreateDraftUser(ctx context.Context, actor domain.Actor, req dto.CreateDraftUserRequest) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) RegisterDraftUser(ctx context.Context, req dto.RegisterDraftUserRequest) (*domain.DraftUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) ListDraftUsers(ctx context.Context, actor domain.Actor) ([]domain.DraftUser, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) GetDraftUser(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) UpdateDraftUser(ctx context.Context, actor domain.Actor, draftID int64, req dto.UpdateDraftUserRequest) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, draftID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) DeleteDraftUser(ctx context.Context, actor domain.Actor, draftID int64) error {
	args := m.Called(ctx, actor, draftID)
	return args.Error(0)
}

func (m *MockDraftUserService) MarkSignedMembershipAgreement(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) RegisterPayment(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error) {
	args := m.Called(ctx, actor, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftUser), args.Error(1)
}

func (m *MockDraftUserService) ConvertToShareOwner(ctx context.Context, actor domain.Actor, draftID int64) (*domain.ShareOwner, error) {
	args := m.Called(ctx, actor, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareOwner), args.Error(1)
}

var _ portssvc.DraftUserSvcFacade = (*MockDraftUserService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) EmptyMembershipAgreement(ctx context.Context, actor domain.Actor) (*dto.DocumentResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) MembershipAgreement(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.DocumentResult, error) {
	args := m.Called(ctx, actor, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) MembershipConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error) {
	args := m.Called(ctx, actor, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) ExtraSharesConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error) {
	args := m.Called(ctx, actor, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResult), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type ShareOwnerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockOwnerSvc *MockShareOwnerService
	mockShareSvc *MockShareOwnershipService
	mockDraftSvc *MockDraftUserService
	mockDocSvc   *MockDocumentService
	mockAuthSvc  *MockAuthService
	jwtSecret    string
}

func (suite *ShareOwnerHandlerTestSuite) generateTestToken(userID string, perms []string) string {
	claims := middleware.TapirClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tapir-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Username:    "office",
		Permissions: perms,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ShareOwnerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOwnerSvc = new(MockShareOwnerService)
	suite.mockShareSvc = new(MockShareOwnershipService)
	suite.mockDraftSvc = new(MockDraftUserService)
	suite.mockDocSvc = new(MockDocumentService)
	suite.mockAuthSvc = new(MockAuthService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		RegisterRateLimit: "10-M",
		IsProduction:      true, // no swagger routes in the tests
	}
	services := &portssvc.ServiceContainer{
		ShareOwner:     suite.mockOwnerSvc,
		ShareOwnership: suite.mockShareSvc,
		DraftUser:      suite.mockDraftSvc,
		Document:       suite.mockDocSvc,
		Auth:           suite.mockAuthSvc,
	}
	err := handlers.RegisterRoutes(suite.router, cfg, services)
	suite.Require().NoError(err)
}

func (suite *ShareOwnerHandlerTestSuite) TestGetShareOwner_Success() {
	owner := &domain.ShareOwner{ID: 4, FirstName: "Erika", LastName: "Mustermann"}

	suite.mockOwnerSvc.On("GetShareOwner", mock.Anything, mock.MatchedBy(func(a domain.Actor) bool {
		return a.UserID == "staff-1" && a.HasPermission(domain.PermCoopManage)
	}), int64(4)).Return(owner, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/4", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1", []string{"coop.manage"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ShareOwnerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(4), body.ID)
	suite.Equal("Erika Mustermann", body.DisplayName)
	suite.mockOwnerSvc.AssertExpectations(suite.T())
}

func (suite *ShareOwnerHandlerTestSuite) TestGetShareOwner_MissingTokenUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/4", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOwnerSvc.AssertNotCalled(suite.T(), "GetShareOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnerHandlerTestSuite) TestGetShareOwner_NotFound() {
	suite.mockOwnerSvc.On("GetShareOwner", mock.Anything, mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/99", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1", []string{"coop.manage"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ShareOwnerHandlerTestSuite) TestListRoster_CSVFormat() {
	joinDate := "2025-03-01"
	roster := &dto.RosterResponse{
		FilteredCount: 1,
		TotalCount:    3,
		Members: []dto.ShareOwnerResponse{
			{ID: 4, DisplayName: "Erika Mustermann", Email: "erika@example.com", Status: "active", NumShares: 2, JoinDate: &joinDate},
		},
	}

	suite.mockOwnerSvc.On("ListRoster", mock.Anything, mock.Anything, mock.MatchedBy(func(p dto.RosterFilterParams) bool {
		return p.Status == "active"
	})).Return(roster, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members?status=active&format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1", []string{"coop.manage"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "members.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	suite.Require().Len(lines, 2)
	suite.Contains(lines[0], "display_name")
	suite.Contains(lines[1], "Erika Mustermann")
	suite.Contains(lines[1], "2025-03-01")
}

func (suite *ShareOwnerHandlerTestSuite) TestUpdateShareOwner_MalformedDateRejectedAtBinding() {
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/members/4", strings.NewReader(`{"willingToGiftAShare":"not-a-date"}`))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1", []string{"coop.manage"}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOwnerSvc.AssertNotCalled(suite.T(), "UpdateShareOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShareOwnerHandlerTestSuite) TestRegisterDraftUser_PublicRoute() {
	saved := &domain.DraftUser{ID: 8, FirstName: "Erika", LastName: "Mustermann", Email: "erika@example.com", NumShares: 1}

	suite.mockDraftSvc.On("RegisterDraftUser", mock.Anything, mock.MatchedBy(func(r dto.RegisterDraftUserRequest) bool {
		return r.Email == "erika@example.com" && r.NumShares == 1
	})).Return(saved, nil).Once()

	payload := `{"firstName":"Erika","lastName":"Mustermann","email":"erika@example.com","numShares":1}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/draft-users/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.DraftUserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(8), body.ID)
	suite.False(body.CanBeConverted)
	suite.mockDraftSvc.AssertExpectations(suite.T())
}

func (suite *ShareOwnerHandlerTestSuite) TestDeleteShareOwnership_NoContent() {
	suite.mockShareSvc.On("DeleteShareOwnership", mock.Anything, mock.Anything, int64(10)).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/share-ownerships/10", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("admin-1", []string{"coop.admin"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockShareSvc.AssertExpectations(suite.T())
}

func (suite *ShareOwnerHandlerTestSuite) TestMembershipAgreement_ServedAsAttachment() {
	doc := &dto.DocumentResult{Filename: "Beitrittserklärung Erika Mustermann.pdf", Content: []byte("%PDF-1.4 fake")}

	suite.mockDocSvc.On("MembershipAgreement", mock.Anything, mock.Anything, int64(4)).Return(doc, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/4/documents/membership-agreement", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1", []string{"coop.manage"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.Equal([]byte("%PDF-1.4 fake"), w.Body.Bytes())
}

func TestShareOwnerHandler(t *testing.T) {
	suite.Run(t, new(ShareOwnerHandlerTestSuite))
}
