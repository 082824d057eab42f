package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/models"
)

// RemoteStore is the RecordStore backed by the SkillGraph backend API.
// Requests and responses are JSON over HTTP. Any transport failure or
// unexpected status is reported as common.ErrStoreFault so the sync engine
// can fall back to the local store; the terminal account errors
// (duplicate identity, invalid credential) are decoded from the response
// status and surfaced as-is.
type RemoteStore struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	token string
}

// NewRemoteStore returns a RemoteStore for the API at baseURL
// (e.g. "http://127.0.0.1:5000").
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token attached to authorized requests.
// An empty string clears it.
func (s *RemoteStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the currently held bearer token.
func (s *RemoteStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// authResponse is the account projection plus the session token minted by
// the backend on signup/login.
type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// do sends one JSON request and decodes a 2xx response body into out (when
// out is non-nil). Non-2xx responses are returned as *statusError; transport
// failures come back wrapped around common.ErrStoreFault.
func (s *RemoteStore) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreFault, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreFault, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &statusError{status: resp.StatusCode, message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrStoreFault, err)
	}
	return nil
}

// statusError carries a non-2xx backend response until the calling operation
// maps it to a terminal error or a store fault.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("server responded %d: %s", e.status, e.message)
	}
	return fmt.Sprintf("server responded %d", e.status)
}

// asFault converts a statusError into a store fault; other errors pass
// through unchanged.
func asFault(err error) error {
	if se, ok := err.(*statusError); ok {
		return fmt.Errorf("%w: %v", common.ErrStoreFault, se)
	}
	return err
}

// fault maps a statusError with the given status to the terminal error and
// everything else to a store fault.
func fault(err error, terminalStatus int, terminal error) error {
	if se, ok := err.(*statusError); ok && se.status == terminalStatus {
		return terminal
	}
	return asFault(err)
}

// CreateAccount registers a new account. A conflicting email is terminal.
func (s *RemoteStore) CreateAccount(ctx context.Context, name, email, password string) (*models.Identity, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return nil, fault(err, http.StatusConflict, common.ErrDuplicateIdentity)
	}
	s.SetToken(resp.Token)
	return &models.Identity{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}

// Authenticate exchanges email/password for the account identity. A
// credential mismatch is terminal.
func (s *RemoteStore) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, fault(err, http.StatusUnauthorized, common.ErrInvalidCredential)
	}
	s.SetToken(resp.Token)
	return &models.Identity{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}

// AuthenticateFederated resolves or creates the account for an external
// identity. It only fails on store-level faults.
func (s *RemoteStore) AuthenticateFederated(ctx context.Context, externalID, email, name string) (*models.Identity, error) {
	body := map[string]string{"googleId": externalID, "email": email, "name": name}
	var resp authResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/google", body, &resp); err != nil {
		return nil, asFault(err)
	}
	s.SetToken(resp.Token)
	return &models.Identity{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}

// WriteSlice replaces the named slice, or appends one chat message. The
// backend stamps chat messages at the moment of persistence.
func (s *RemoteStore) WriteSlice(ctx context.Context, userID string, slice models.Slice, value any) error {
	var (
		method string
		path   string
		body   any
	)

	switch slice {
	case models.SliceAnalysis:
		v, ok := value.(*models.SkillAnalysis)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		method, path = http.MethodPut, "/api/users/"+userID+"/analysis"
		body = map[string]any{"analysis": v}
	case models.SliceStudyPlan:
		v, ok := value.([]models.StudyPlanItem)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		method, path = http.MethodPut, "/api/users/"+userID+"/study-plan"
		body = map[string]any{"studyPlan": v}
	case models.SliceInterviewPrep:
		v, ok := value.([]models.InterviewQuestion)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		method, path = http.MethodPut, "/api/users/"+userID+"/interview-prep"
		body = map[string]any{"interviewPrep": v}
	case models.SliceChat:
		v, ok := value.(models.ChatMessage)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		method, path = http.MethodPost, "/api/users/"+userID+"/chat"
		body = v
	default:
		return fmt.Errorf("unknown slice %q", slice)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := s.do(ctx, method, path, body, &resp); err != nil {
		return asFault(err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: backend rejected %s write", common.ErrStoreFault, slice)
	}
	return nil
}

// ReadAll fetches the full record. The backend answers an empty object for
// an unknown user, which maps to explicit absence.
func (s *RemoteStore) ReadAll(ctx context.Context, userID string) (*models.UserRecord, error) {
	var rec models.UserRecord
	if err := s.do(ctx, http.MethodGet, "/api/users/"+userID+"/data", nil, &rec); err != nil {
		return nil, asFault(err)
	}
	if rec.ID == "" {
		return nil, nil
	}
	return &rec, nil
}
