// Package models defines the user record persisted by the record stores and
// the derived artifacts attached to it: skill analysis, study plan,
// interview-prep questions and chat history. JSON tags follow the backend
// wire contract.
package models

import "time"

// Identity is the minimal account projection returned by authentication
// operations and kept in the restart-surviving session slot.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRecord is the unit of persistence. ID is assigned once at account
// creation and never recomputed. Email is unique within a store. Password
// and GoogleID are the two credential kinds; both may be attached, and a
// record created via password can later be linked to a Google identity.
type UserRecord struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Password      string              `json:"password,omitempty"`
	GoogleID      string              `json:"googleId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	Analysis      *SkillAnalysis      `json:"analysis,omitempty"`
	StudyPlan     []StudyPlanItem     `json:"studyPlan,omitempty"`
	InterviewPrep []InterviewQuestion `json:"interviewPrep,omitempty"`
	ChatHistory   []ChatMessage       `json:"chatHistory,omitempty"`
}

// Identity returns the account projection of the record.
func (u *UserRecord) Identity() *Identity {
	return &Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// SkillAnalysis is the single most-recent skill-analysis artifact.
// It is replaced wholesale on update; no history is kept.
type SkillAnalysis struct {
	DetectedSkills   []string `json:"detectedSkills"`
	PredictedRole    string   `json:"predictedRole"`
	MatchPercentage  int      `json:"matchPercentage"`
	MatchingSkills   []string `json:"matchingSkills"`
	MissingSkills    []string `json:"missingSkills"`
	IrrelevantSkills []string `json:"irrelevantSkills"`
}

// Resource is a single study reference inside a plan item.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Study-plan difficulty levels.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// StudyPlanItem is one entry of the ordered study plan. The plan is replaced
// wholesale on update.
type StudyPlanItem struct {
	Skill         string     `json:"skill"`
	EstimatedTime string     `json:"estimatedTime"`
	Difficulty    string     `json:"difficulty"`
	Resources     []Resource `json:"resources"`
	Description   string     `json:"description"`
}

// Interview-question categories.
const (
	CategoryTechnical    = "Technical"
	CategoryHR           = "HR"
	CategoryAptitude     = "Aptitude"
	CategoryCoding       = "Coding"
	CategorySystemDesign = "System Design"
)

// InterviewQuestion is one entry of the interview-prep set. Questions are
// deduplicated by question text; new batches merge with prior batches
// instead of replacing them.
type InterviewQuestion struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Tips     string `json:"tips"`
}

// Chat roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the append-only conversation transcript.
// Timestamp is set by the store at the moment of persistence.
type ChatMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
