package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/dbx"
	"github.com/skillgraph/skillgraph/internal/models"
)

// PostgresRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx). Artifact slices live as JSONB columns on the users row; the
// transcript is an append-only table ordered by sequence.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// uniqueViolation reports whether err is a unique-constraint violation.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.UserRecord) (*models.UserRecord, error) {
	query := `
		INSERT INTO users (id, name, email, password, google_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.Name, rec.Email, rec.Password, rec.GoogleID).Scan(&rec.CreatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.UserRecord, error) {
	return r.getOne(ctx, `WHERE google_id = $1`, googleID)
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.UserRecord, error) {
	query := `
		SELECT id, name, email, COALESCE(password, ''), COALESCE(google_id, ''), created_at
		FROM users ` + where

	rec := &models.UserRecord{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.GoogleID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) AttachGoogleID(ctx context.Context, userID, googleID string) error {
	query := `UPDATE users SET google_id = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, googleID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateAnalysis(ctx context.Context, userID string, analysis *models.SkillAnalysis) error {
	return r.updateJSONB(ctx, `analysis`, userID, analysis)
}

func (r *PostgresRepository) UpdateStudyPlan(ctx context.Context, userID string, items []models.StudyPlanItem) error {
	return r.updateJSONB(ctx, `study_plan`, userID, items)
}

func (r *PostgresRepository) UpdateInterviewPrep(ctx context.Context, userID string, questions []models.InterviewQuestion) error {
	return r.updateJSONB(ctx, `interview_prep`, userID, questions)
}

// updateJSONB wholesale-replaces one JSONB artifact column. The column name
// is fixed by the callers above, never caller input.
func (r *PostgresRepository) updateJSONB(ctx context.Context, column, userID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", column, err)
	}
	query := fmt.Sprintf(`UPDATE users SET %s = $2 WHERE id = $1`, column)
	if _, err := r.db.ExecContext(ctx, query, userID, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AppendChatMessage(ctx context.Context, userID string, msg models.ChatMessage) error {
	query := `INSERT INTO chat_messages (user_id, role, text) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, userID, msg.Role, msg.Text); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*models.UserRecord, error) {
	query := `
		SELECT id, name, email, COALESCE(password, ''), COALESCE(google_id, ''), created_at,
		       analysis, study_plan, interview_prep
		FROM users
		WHERE id = $1
	`

	rec := &models.UserRecord{}
	var analysis, studyPlan, interviewPrep []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.GoogleID, &rec.CreatedAt,
		&analysis, &studyPlan, &interviewPrep)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(analysis) > 0 {
		if err := json.Unmarshal(analysis, &rec.Analysis); err != nil {
			return nil, fmt.Errorf("decoding analysis: %w", err)
		}
	}
	if len(studyPlan) > 0 {
		if err := json.Unmarshal(studyPlan, &rec.StudyPlan); err != nil {
			return nil, fmt.Errorf("decoding study plan: %w", err)
		}
	}
	if len(interviewPrep) > 0 {
		if err := json.Unmarshal(interviewPrep, &rec.InterviewPrep); err != nil {
			return nil, fmt.Errorf("decoding interview prep: %w", err)
		}
	}

	history, err := r.chatHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.ChatHistory = history
	return rec, nil
}

// chatHistory lists the transcript in append order.
func (r *PostgresRepository) chatHistory(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	query := `SELECT role, text, created_at FROM chat_messages WHERE user_id = $1 ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Text, &msg.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
