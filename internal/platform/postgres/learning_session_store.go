package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// PostgresLearningSessionStore implements the store.LearningSessionStore
// interface using PostgreSQL. A session's vocabulary rows always travel with
// it; Update rewrites counters and upserts answered vocabulary in place.
type PostgresLearningSessionStore struct {
	db store.DBTX
}

// NewPostgresLearningSessionStore creates a new PostgresLearningSessionStore.
func NewPostgresLearningSessionStore(db store.DBTX) *PostgresLearningSessionStore {
	return &PostgresLearningSessionStore{db: db}
}

// Ensure PostgresLearningSessionStore implements store.LearningSessionStore
var _ store.LearningSessionStore = (*PostgresLearningSessionStore)(nil)

// WithTx returns a LearningSessionStore bound to the given transaction.
func (s *PostgresLearningSessionStore) WithTx(tx *sql.Tx) store.LearningSessionStore {
	return &PostgresLearningSessionStore{db: tx}
}

// Create saves a learning session and its vocabulary rows.
func (s *PostgresLearningSessionStore) Create(
	ctx context.Context,
	session *domain.LearningSession,
) error {
	log := logger.FromContext(ctx)

	sessionQuery := `
		INSERT INTO learning_sessions
			(id, user_id, target_words, actual_words, correct_count, wrong_count,
			 skip_count, status, expires_at, last_activity_at, completed_at,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := s.db.ExecContext(ctx, sessionQuery,
		session.ID,
		session.UserID,
		session.TargetWords,
		session.ActualWords,
		session.CorrectCount,
		session.WrongCount,
		session.SkipCount,
		session.Status,
		session.ExpiresAt,
		session.LastActivityAt,
		session.CompletedAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create learning session", "session_id", session.ID, "error", err)
		return MapError(err)
	}

	vocabQuery := `
		INSERT INTO session_vocabulary
			(id, session_id, word_id, position, answer, time_spent_sec, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range session.Vocabulary {
		v := &session.Vocabulary[i]
		_, err := s.db.ExecContext(ctx, vocabQuery,
			v.ID,
			v.SessionID,
			v.WordID,
			v.Position,
			nullableAnswer(v.Answer),
			v.TimeSpentSec,
			v.AnsweredAt,
		)
		if err != nil {
			log.Error("failed to create session vocabulary",
				"session_id", session.ID,
				"word_id", v.WordID,
				"error", err)
			return MapError(err)
		}
	}

	return nil
}

// GetByID retrieves a learning session with its vocabulary in position order.
func (s *PostgresLearningSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.LearningSession, error) {
	query := `
		SELECT id, user_id, target_words, actual_words, correct_count, wrong_count,
			skip_count, status, expires_at, last_activity_at, completed_at,
			created_at, updated_at
		FROM learning_sessions
		WHERE id = $1
	`

	row := s.db.QueryRowContext(ctx, query, id)
	session, err := scanLearningSession(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrLearningSessionNotFound)
	}

	if err := s.loadVocabulary(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Update overwrites a session's counters, status, expiry, and vocabulary
// answers.
func (s *PostgresLearningSessionStore) Update(
	ctx context.Context,
	session *domain.LearningSession,
) error {
	log := logger.FromContext(ctx)

	sessionQuery := `
		UPDATE learning_sessions
		SET actual_words = $1, correct_count = $2, wrong_count = $3,
			skip_count = $4, status = $5, expires_at = $6, last_activity_at = $7,
			completed_at = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := s.db.ExecContext(ctx, sessionQuery,
		session.ActualWords,
		session.CorrectCount,
		session.WrongCount,
		session.SkipCount,
		session.Status,
		session.ExpiresAt,
		session.LastActivityAt,
		session.CompletedAt,
		session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		log.Error("failed to update learning session", "session_id", session.ID, "error", err)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLearningSessionNotFound); err != nil {
		return err
	}

	vocabQuery := `
		UPDATE session_vocabulary
		SET answer = $1, time_spent_sec = $2, answered_at = $3
		WHERE id = $4
	`

	for i := range session.Vocabulary {
		v := &session.Vocabulary[i]
		if v.Answer == "" {
			continue
		}
		_, err := s.db.ExecContext(ctx, vocabQuery,
			nullableAnswer(v.Answer),
			v.TimeSpentSec,
			v.AnsweredAt,
			v.ID,
		)
		if err != nil {
			log.Error("failed to update session vocabulary",
				"session_id", session.ID,
				"word_id", v.WordID,
				"error", err)
			return MapError(err)
		}
	}

	return nil
}

// ListActiveByUser returns the user's sessions stored as ACTIVE or PAUSED,
// most recent first, vocabulary included.
func (s *PostgresLearningSessionStore) ListActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.LearningSession, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, user_id, target_words, actual_words, correct_count, wrong_count,
			skip_count, status, expires_at, last_activity_at, completed_at,
			created_at, updated_at
		FROM learning_sessions
		WHERE user_id = $1 AND status IN ('ACTIVE', 'PAUSED')
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list learning sessions", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.LearningSession
	for rows.Next() {
		session, err := scanLearningSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learning session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learning session rows: %w", err)
	}

	for _, session := range sessions {
		if err := s.loadVocabulary(ctx, session); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// loadVocabulary attaches a session's vocabulary rows in position order.
func (s *PostgresLearningSessionStore) loadVocabulary(
	ctx context.Context,
	session *domain.LearningSession,
) error {
	query := `
		SELECT id, session_id, word_id, position, answer, time_spent_sec, answered_at
		FROM session_vocabulary
		WHERE session_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, session.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var v domain.SessionVocabulary
		var answer sql.NullString
		var answeredAt sql.NullTime

		err := rows.Scan(
			&v.ID,
			&v.SessionID,
			&v.WordID,
			&v.Position,
			&answer,
			&v.TimeSpentSec,
			&answeredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan session vocabulary row: %w", err)
		}

		if answer.Valid {
			v.Answer = domain.AnswerType(answer.String)
		}
		if answeredAt.Valid {
			t := answeredAt.Time
			v.AnsweredAt = &t
		}

		session.Vocabulary = append(session.Vocabulary, v)
	}

	return rows.Err()
}

func scanLearningSession(row rowScanner) (*domain.LearningSession, error) {
	var s domain.LearningSession
	var completedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.TargetWords,
		&s.ActualWords,
		&s.CorrectCount,
		&s.WrongCount,
		&s.SkipCount,
		&s.Status,
		&s.ExpiresAt,
		&s.LastActivityAt,
		&completedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}

	return &s, nil
}

// nullableAnswer maps the empty answer to NULL.
func nullableAnswer(a domain.AnswerType) sql.NullString {
	if a == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(a), Valid: true}
}
