// Package store defines the record-store contract and its two
// implementations: a remote JSON/HTTP store backed by the SkillGraph API and
// a local file-backed store used when the backend is unreachable.
package store

import (
	"context"

	"github.com/skillgraph/skillgraph/internal/models"
)

// RecordStore is durable keyed storage of user records. The remote and local
// implementations honor identical semantics; the sync engine picks between
// them per operation.
//
// Contract:
//   - CreateAccount fails with common.ErrDuplicateIdentity when the email is
//     already present in the store.
//   - Authenticate fails with common.ErrInvalidCredential when no record
//     matches the email/password pair.
//   - AuthenticateFederated looks up by external id first, then attaches the
//     external id to the record matching the email, and only then creates a
//     new record. Attaching the same external id twice resolves to the same
//     record. It fails only on store-level faults.
//   - WriteSlice wholesale-replaces the analysis, study-plan or
//     interview-prep slice, or appends one chat message. Merge logic for the
//     interview-prep slice is the caller's responsibility.
//   - ReadAll returns (nil, nil) when the record is absent; absence is not
//     an error.
//
// Any transient failure is reported as (or wrapped around)
// common.ErrStoreFault.
type RecordStore interface {
	CreateAccount(ctx context.Context, name, email, password string) (*models.Identity, error)
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	AuthenticateFederated(ctx context.Context, externalID, email, name string) (*models.Identity, error)

	// WriteSlice accepts *models.SkillAnalysis, []models.StudyPlanItem,
	// []models.InterviewQuestion or models.ChatMessage, matching the slice
	// name.
	WriteSlice(ctx context.Context, userID string, slice models.Slice, value any) error

	ReadAll(ctx context.Context, userID string) (*models.UserRecord, error)
}
