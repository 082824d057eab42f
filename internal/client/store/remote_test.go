package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/models"
)

func TestRemoteStore_CreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/signup", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice", req["name"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "name": "Alice", "email": "alice@example.com", "token": "tok-1",
		})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	id, err := s.CreateAccount(context.Background(), "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "tok-1", s.Token(), "signup must install the minted token")
}

func TestRemoteStore_CreateAccount_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	_, err := s.CreateAccount(context.Background(), "Alice", "alice@example.com", "pw1")
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
	assert.NotErrorIs(t, err, common.ErrStoreFault, "a conflict is terminal, not a fault")
}

func TestRemoteStore_Authenticate_InvalidCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	_, err := s.Authenticate(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestRemoteStore_ServerErrorIsFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	_, err := s.Authenticate(context.Background(), "alice@example.com", "pw1")
	require.ErrorIs(t, err, common.ErrStoreFault)
}

func TestRemoteStore_UnreachableIsFault(t *testing.T) {
	s := NewRemoteStore("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := s.Authenticate(context.Background(), "alice@example.com", "pw1")
	require.ErrorIs(t, err, common.ErrStoreFault)
}

func TestRemoteStore_WriteSlice_Routes(t *testing.T) {
	type seen struct {
		method, path string
		body         map[string]json.RawMessage
	}
	var got seen

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method, got.path = r.Method, r.URL.Path
		got.body = map[string]json.RawMessage{}
		json.NewDecoder(r.Body).Decode(&got.body)

		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	s.SetToken("tok-1")
	ctx := context.Background()

	require.NoError(t, s.WriteSlice(ctx, "u1", models.SliceAnalysis, &models.SkillAnalysis{PredictedRole: "Backend Developer"}))
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/users/u1/analysis", got.path)
	assert.Contains(t, got.body, "analysis")

	require.NoError(t, s.WriteSlice(ctx, "u1", models.SliceStudyPlan, []models.StudyPlanItem{{Skill: "Go"}}))
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/users/u1/study-plan", got.path)
	assert.Contains(t, got.body, "studyPlan")

	require.NoError(t, s.WriteSlice(ctx, "u1", models.SliceInterviewPrep, []models.InterviewQuestion{{Question: "Q?"}}))
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/users/u1/interview-prep", got.path)
	assert.Contains(t, got.body, "interviewPrep")

	require.NoError(t, s.WriteSlice(ctx, "u1", models.SliceChat, models.ChatMessage{Role: models.RoleUser, Text: "hi"}))
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/users/u1/chat", got.path)
}

func TestRemoteStore_WriteSlice_RejectedWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	err := s.WriteSlice(context.Background(), "u1", models.SliceAnalysis, &models.SkillAnalysis{})
	require.ErrorIs(t, err, common.ErrStoreFault)
}

func TestRemoteStore_ReadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/u1/data", r.URL.Path)
		json.NewEncoder(w).Encode(models.UserRecord{
			ID:    "u1",
			Name:  "Alice",
			Email: "alice@example.com",
			ChatHistory: []models.ChatMessage{
				{Role: models.RoleUser, Text: "hello"},
			},
		})
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	rec, err := s.ReadAll(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "u1", rec.ID)
	require.Len(t, rec.ChatHistory, 1)
}

func TestRemoteStore_ReadAll_AbsentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, time.Second)
	rec, err := s.ReadAll(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec, "an empty object maps to explicit absence")
}
