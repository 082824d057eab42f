// Package session owns the active identity and its lifecycle: acquire,
// persist across restarts, hydrate working state, destroy. Working state for
// the derived slices lives here and is the source of truth for the current
// session; the stores are a durability target, not a read-path dependency
// after hydration.
package session

import (
	"context"
	"sync"

	"github.com/skillgraph/skillgraph/internal/client/syncx"
	"github.com/skillgraph/skillgraph/internal/logging"
	"github.com/skillgraph/skillgraph/internal/models"
)

// State of the session lifecycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// TokenCarrier restores and clears the backend session token held by the
// remote store. *store.RemoteStore satisfies it.
type TokenCarrier interface {
	Token() string
	SetToken(token string)
}

// Manager drives authentication through the sync engine and keeps the
// hydrated working state. All methods are safe for same-process concurrent
// use.
type Manager struct {
	engine *syncx.Engine
	slot   *Slot
	tokens TokenCarrier
	logger logging.Logger

	mu            sync.Mutex
	state         State
	identity      *models.Identity
	analysis      *models.SkillAnalysis
	studyPlan     []models.StudyPlanItem
	interviewPrep []models.InterviewQuestion
	chatHistory   []models.ChatMessage
}

// NewManager builds a Manager over the engine, the identity slot and the
// remote store's token carrier.
func NewManager(engine *syncx.Engine, slot *Slot, tokens TokenCarrier, logger logging.Logger) *Manager {
	return &Manager{
		engine: engine,
		slot:   slot,
		tokens: tokens,
		logger: logger.With("module", "session"),
		state:  StateAnonymous,
	}
}

// SignUp creates an account and enters the authenticated state. A failed
// attempt returns to anonymous with the error surfaced, never silently
// retried.
func (m *Manager) SignUp(ctx context.Context, name, email, password string) error {
	m.setState(StateAuthenticating)

	id, err := m.engine.CreateAccount(ctx, name, email, password)
	if err != nil {
		m.setState(StateAnonymous)
		return err
	}
	return m.finishAuth(ctx, id)
}

// LogIn authenticates with email and password.
func (m *Manager) LogIn(ctx context.Context, email, password string) error {
	m.setState(StateAuthenticating)

	id, err := m.engine.Authenticate(ctx, email, password)
	if err != nil {
		m.setState(StateAnonymous)
		return err
	}
	return m.finishAuth(ctx, id)
}

// LogInFederated authenticates with an external identity.
func (m *Manager) LogInFederated(ctx context.Context, externalID, email, name string) error {
	m.setState(StateAuthenticating)

	id, err := m.engine.AuthenticateFederated(ctx, externalID, email, name)
	if err != nil {
		m.setState(StateAnonymous)
		return err
	}
	return m.finishAuth(ctx, id)
}

// Resume restores the identity from the restart-surviving slot without
// re-authenticating. It reports whether a session was resumed.
func (m *Manager) Resume(ctx context.Context) (bool, error) {
	id, token, err := m.slot.Load()
	if err != nil {
		return false, err
	}
	if id == nil {
		return false, nil
	}

	m.tokens.SetToken(token)

	m.mu.Lock()
	m.identity = id
	m.mu.Unlock()

	m.hydrate(ctx, id.ID)
	m.setState(StateAuthenticated)
	return true, nil
}

// finishAuth persists the identity slot, hydrates working state and enters
// the authenticated state.
func (m *Manager) finishAuth(ctx context.Context, id *models.Identity) error {
	m.mu.Lock()
	m.identity = id
	m.mu.Unlock()

	if err := m.slot.Save(id, m.tokens.Token()); err != nil {
		m.logger.Warn(ctx, "saving session slot failed", "error", err)
	}

	m.hydrate(ctx, id.ID)
	m.setState(StateAuthenticated)
	return nil
}

// hydrate issues one full read through the engine and copies the slices into
// working memory. Hydration is best-effort: absence or a fault leaves the
// slices empty rather than erroring.
func (m *Manager) hydrate(ctx context.Context, userID string) {
	rec, err := m.engine.ReadAll(ctx, userID)
	if err != nil {
		m.logger.Warn(ctx, "hydration failed, starting with empty slices", "error", err)
		return
	}
	if rec == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysis = rec.Analysis
	m.studyPlan = rec.StudyPlan
	m.interviewPrep = rec.InterviewPrep
	m.chatHistory = rec.ChatHistory
}

// LogOut clears the identity slot and resets working memory. No store
// mutation occurs; results of in-flight writes are discarded with the reset
// state.
func (m *Manager) LogOut(ctx context.Context) error {
	if err := m.slot.Clear(); err != nil {
		return err
	}
	m.tokens.SetToken("")

	m.mu.Lock()
	m.identity = nil
	m.analysis = nil
	m.studyPlan = nil
	m.interviewPrep = nil
	m.chatHistory = nil
	m.state = StateAnonymous
	m.mu.Unlock()
	return nil
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the authenticated identity, or nil when anonymous.
func (m *Manager) Identity() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Analysis returns the working-state skill analysis.
func (m *Manager) Analysis() *models.SkillAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analysis
}

// StudyPlan returns the working-state study plan.
func (m *Manager) StudyPlan() []models.StudyPlanItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.studyPlan
}

// InterviewPrep returns the working-state interview-prep set.
func (m *Manager) InterviewPrep() []models.InterviewQuestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interviewPrep
}

// ChatHistory returns the working-state transcript.
func (m *Manager) ChatHistory() []models.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatHistory
}

// SetAnalysis applies an optimistic working-state update.
func (m *Manager) SetAnalysis(a *models.SkillAnalysis) {
	m.mu.Lock()
	m.analysis = a
	m.mu.Unlock()
}

// SetStudyPlan applies an optimistic working-state update.
func (m *Manager) SetStudyPlan(items []models.StudyPlanItem) {
	m.mu.Lock()
	m.studyPlan = items
	m.mu.Unlock()
}

// SetInterviewPrep applies an optimistic working-state update.
func (m *Manager) SetInterviewPrep(questions []models.InterviewQuestion) {
	m.mu.Lock()
	m.interviewPrep = questions
	m.mu.Unlock()
}

// AppendChatMessage applies an optimistic working-state append.
func (m *Manager) AppendChatMessage(msg models.ChatMessage) {
	m.mu.Lock()
	m.chatHistory = append(m.chatHistory, msg)
	m.mu.Unlock()
}
