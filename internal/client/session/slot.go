package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/skillgraph/skillgraph/internal/models"
)

// DefaultSlotPath is where the last-authenticated identity survives
// restarts.
const DefaultSlotPath = "skillgraph_session.json"

// Slot is the restart-surviving identity slot: a single durable key holding
// the last-authenticated identity, used to resume a session without
// re-authenticating.
type Slot struct {
	path string
}

// NewSlot returns a Slot persisting to path.
func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

type slotData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// Save persists the identity and the backend session token.
func (s *Slot) Save(id *models.Identity, token string) error {
	data, err := json.Marshal(slotData{ID: id.ID, Name: id.Name, Email: id.Email, Token: token})
	if err != nil {
		return fmt.Errorf("encoding session slot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session slot: %w", err)
	}
	return nil
}

// Load returns the saved identity and token, or (nil, "", nil) when the slot
// is empty or unreadable. A corrupt slot is treated as empty.
func (s *Slot) Load() (*models.Identity, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("reading session slot: %w", err)
	}
	var sd slotData
	if err := json.Unmarshal(data, &sd); err != nil || sd.ID == "" {
		return nil, "", nil
	}
	return &models.Identity{ID: sd.ID, Name: sd.Name, Email: sd.Email}, sd.Token, nil
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (s *Slot) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing session slot: %w", err)
	}
	return nil
}
