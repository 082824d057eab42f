package users

import (
	"context"

	"github.com/skillgraph/skillgraph/internal/models"
)

// Repository describes durable storage of user records on the backend side.
// Lookup methods return common.ErrNotFound for absent records; Create
// returns common.ErrDuplicateIdentity on an email conflict.
type Repository interface {
	// Create inserts a record. The caller assigns the id.
	Create(ctx context.Context, rec *models.UserRecord) (*models.UserRecord, error)

	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.UserRecord, error)

	// AttachGoogleID links an external identity to an existing record.
	AttachGoogleID(ctx context.Context, userID, googleID string) error

	// Wholesale slice replacements. Updating an unknown user is a no-op.
	UpdateAnalysis(ctx context.Context, userID string, analysis *models.SkillAnalysis) error
	UpdateStudyPlan(ctx context.Context, userID string, items []models.StudyPlanItem) error
	UpdateInterviewPrep(ctx context.Context, userID string, questions []models.InterviewQuestion) error

	// AppendChatMessage appends one transcript turn, stamped by the
	// database at insert time.
	AppendChatMessage(ctx context.Context, userID string, msg models.ChatMessage) error

	// GetByID returns the full record including the transcript in append
	// order.
	GetByID(ctx context.Context, userID string) (*models.UserRecord, error)
}
