package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/models"
)

// DefaultLocalPath is the fixed namespace of the on-device fallback store.
const DefaultLocalPath = "skillgraph_offline_db.json"

// localBlob is the persisted layout: a single durable blob rewritten
// wholesale on every mutation.
type localBlob struct {
	Users []models.UserRecord `json:"users"`
}

// LocalStore is the on-device RecordStore. It keeps all records in one JSON
// file and performs read-modify-write on each mutation. It enforces no
// authorization. Safe for same-process concurrent callers; field-level
// last-write-wins.
type LocalStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalStore returns a LocalStore persisting to path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

func (s *LocalStore) load() (*localBlob, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &localBlob{Users: []models.UserRecord{}}, nil
		}
		return nil, fmt.Errorf("%w: reading local store: %v", common.ErrStoreFault, err)
	}
	var blob localBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("%w: decoding local store: %v", common.ErrStoreFault, err)
	}
	return &blob, nil
}

func (s *LocalStore) save(blob *localBlob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("%w: encoding local store: %v", common.ErrStoreFault, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: writing local store: %v", common.ErrStoreFault, err)
	}
	return nil
}

// CreateAccount adds a new password-credentialed record. Fails with
// common.ErrDuplicateIdentity when the email is taken.
func (s *LocalStore) CreateAccount(ctx context.Context, name, email, password string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range blob.Users {
		if blob.Users[i].Email == email {
			return nil, common.ErrDuplicateIdentity
		}
	}

	user := models.UserRecord{
		ID:        "local_" + uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	blob.Users = append(blob.Users, user)

	if err := s.save(blob); err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// Authenticate matches email and password exactly. Password comparison is
// exact-string; hashing is a known weakness of the stored layout, preserved
// deliberately.
func (s *LocalStore) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range blob.Users {
		u := &blob.Users[i]
		if u.Email == email && u.Password == password {
			return u.Identity(), nil
		}
	}
	return nil, common.ErrInvalidCredential
}

// AuthenticateFederated resolves by external id, then by email (attaching
// the external id), and creates a federated-only record as a last resort.
// Calling it twice with the same external id yields the same record.
func (s *LocalStore) AuthenticateFederated(ctx context.Context, externalID, email, name string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range blob.Users {
		u := &blob.Users[i]
		if u.GoogleID == externalID && externalID != "" {
			return u.Identity(), nil
		}
	}
	for i := range blob.Users {
		u := &blob.Users[i]
		if u.Email == email {
			u.GoogleID = externalID
			if err := s.save(blob); err != nil {
				return nil, err
			}
			return u.Identity(), nil
		}
	}

	user := models.UserRecord{
		ID:        "local_g_" + uuid.NewString(),
		Name:      name,
		Email:     email,
		GoogleID:  externalID,
		CreatedAt: time.Now().UTC(),
	}
	blob.Users = append(blob.Users, user)
	if err := s.save(blob); err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// WriteSlice replaces the named slice of the user's record, or appends one
// chat message stamped at the moment of persistence. Writing a slice for an
// unknown user is a no-op, mirroring the backend semantics.
func (s *LocalStore) WriteSlice(ctx context.Context, userID string, slice models.Slice, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.load()
	if err != nil {
		return err
	}

	var user *models.UserRecord
	for i := range blob.Users {
		if blob.Users[i].ID == userID {
			user = &blob.Users[i]
			break
		}
	}
	if user == nil {
		return nil
	}

	if err := applySlice(user, slice, value); err != nil {
		return err
	}
	return s.save(blob)
}

// applySlice mutates one named slice of the record in place.
func applySlice(user *models.UserRecord, slice models.Slice, value any) error {
	switch slice {
	case models.SliceAnalysis:
		v, ok := value.(*models.SkillAnalysis)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		user.Analysis = v
	case models.SliceStudyPlan:
		v, ok := value.([]models.StudyPlanItem)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		user.StudyPlan = v
	case models.SliceInterviewPrep:
		v, ok := value.([]models.InterviewQuestion)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		user.InterviewPrep = v
	case models.SliceChat:
		v, ok := value.(models.ChatMessage)
		if !ok {
			return fmt.Errorf("slice %s: unexpected value type %T", slice, value)
		}
		v.Timestamp = time.Now().UTC()
		user.ChatHistory = append(user.ChatHistory, v)
	default:
		return fmt.Errorf("unknown slice %q", slice)
	}
	return nil
}

// ReadAll returns the full record, or (nil, nil) when absent.
func (s *LocalStore) ReadAll(ctx context.Context, userID string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range blob.Users {
		if blob.Users[i].ID == userID {
			rec := blob.Users[i]
			return &rec, nil
		}
	}
	return nil, nil
}
