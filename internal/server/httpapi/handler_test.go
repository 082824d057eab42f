package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/logging"
	"github.com/skillgraph/skillgraph/internal/models"
	"github.com/skillgraph/skillgraph/internal/server/auth"
)

var testSecret = []byte("test-secret")

// fakeService scripts the account service behind the handlers.
type fakeService struct {
	identity *models.Identity
	token    string
	record   *models.UserRecord
	err      error

	gotAnalysis *models.SkillAnalysis
	gotPlan     []models.StudyPlanItem
	gotPrep     []models.InterviewQuestion
	gotChat     *models.ChatMessage
}

func (f *fakeService) SignUp(ctx context.Context, name, email, password string) (*models.Identity, string, error) {
	return f.identity, f.token, f.err
}

func (f *fakeService) LogIn(ctx context.Context, email, password string) (*models.Identity, string, error) {
	return f.identity, f.token, f.err
}

func (f *fakeService) GoogleAuth(ctx context.Context, googleID, email, name string) (*models.Identity, string, error) {
	return f.identity, f.token, f.err
}

func (f *fakeService) UpdateAnalysis(ctx context.Context, userID string, analysis *models.SkillAnalysis) error {
	f.gotAnalysis = analysis
	return f.err
}

func (f *fakeService) UpdateStudyPlan(ctx context.Context, userID string, items []models.StudyPlanItem) error {
	f.gotPlan = items
	return f.err
}

func (f *fakeService) UpdateInterviewPrep(ctx context.Context, userID string, questions []models.InterviewQuestion) error {
	f.gotPrep = questions
	return f.err
}

func (f *fakeService) AppendChatMessage(ctx context.Context, userID string, msg models.ChatMessage) error {
	f.gotChat = &msg
	return f.err
}

func (f *fakeService) ReadAll(ctx context.Context, userID string) (*models.UserRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func newTestRouter(t *testing.T, svc *fakeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(svc, logging.Nop{}), testSecret)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, testSecret, time.Minute)
	require.NoError(t, err)
	return token
}

func TestSignUp(t *testing.T) {
	svc := &fakeService{
		identity: &models.Identity{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		token:    "tok-1",
	}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "tok-1", resp.Token)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := &fakeService{err: common.ErrDuplicateIdentity}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw"})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestSignUp_MissingFields(t *testing.T) {
	router := newTestRouter(t, &fakeService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"email": "alice@example.com"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogIn_InvalidCredential(t *testing.T) {
	svc := &fakeService{err: common.ErrInvalidCredential}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "alice@example.com", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestGoogleAuth(t *testing.T) {
	svc := &fakeService{
		identity: &models.Identity{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		token:    "tok-1",
	}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPost, "/api/auth/google", "",
		map[string]string{"googleId": "g-1", "email": "alice@example.com", "name": "Alice"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
}

func TestUserRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(t, &fakeService{})

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/data", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserRoutes_SubjectMustMatch(t *testing.T) {
	router := newTestRouter(t, &fakeService{})

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/data", tokenFor(t, "someone-else"), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateAnalysis(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(t, svc)

	analysis := &models.SkillAnalysis{PredictedRole: "Backend Developer", MatchPercentage: 80}
	w := doJSON(t, router, http.MethodPut, "/api/users/u1/analysis", tokenFor(t, "u1"),
		map[string]any{"analysis": analysis})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	require.NotNil(t, svc.gotAnalysis)
	assert.Equal(t, "Backend Developer", svc.gotAnalysis.PredictedRole)
}

func TestUpdateStudyPlan(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPut, "/api/users/u1/study-plan", tokenFor(t, "u1"),
		map[string]any{"studyPlan": []models.StudyPlanItem{{Skill: "Go"}}})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.gotPlan, 1)
}

func TestAppendChat(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/chat", tokenFor(t, "u1"),
		models.ChatMessage{Role: models.RoleUser, Text: "hello"})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotChat)
	assert.Equal(t, "hello", svc.gotChat.Text)
}

func TestAppendChat_UnknownRole(t *testing.T) {
	router := newTestRouter(t, &fakeService{})

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/chat", tokenFor(t, "u1"),
		models.ChatMessage{Role: "narrator", Text: "meanwhile"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadAll_StripsPassword(t *testing.T) {
	svc := &fakeService{record: &models.UserRecord{
		ID:       "u1",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pw",
	}}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/data", tokenFor(t, "u1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"password"`)

	var rec models.UserRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "u1", rec.ID)
}

func TestReadAll_AbsentUserIsEmptyObject(t *testing.T) {
	svc := &fakeService{err: common.ErrNotFound}
	router := newTestRouter(t, svc)

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/data", tokenFor(t, "u1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())
}
