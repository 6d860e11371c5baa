package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface using
// PostgreSQL. The review core treats words as read-only reference data, so
// this store only reads.
type PostgresWordStore struct {
	db store.DBTX
}

// NewPostgresWordStore creates a new PostgresWordStore.
func NewPostgresWordStore(db store.DBTX) *PostgresWordStore {
	return &PostgresWordStore{db: db}
}

// Ensure PostgresWordStore implements store.WordStore
var _ store.WordStore = (*PostgresWordStore)(nil)

// GetByID retrieves a word and its glosses by ID.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	words, err := s.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return words[0], nil
}

// GetByIDs retrieves the words for the given IDs, glosses included,
// preserving the input order. Returns store.ErrWordNotFound if any ID is
// unknown.
func (s *PostgresWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, text, phonetic, part_of_speech, level
		FROM words
		WHERE id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to query words", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[uuid.UUID]*domain.Word, len(ids))
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Text, &w.Phonetic, &w.PartOfSpeech, &w.Level); err != nil {
			return nil, fmt.Errorf("failed to scan word row: %w", err)
		}
		byID[w.ID] = &w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating word rows: %w", err)
	}

	if err := s.loadGlosses(ctx, byID); err != nil {
		return nil, err
	}

	words := make([]*domain.Word, 0, len(ids))
	for _, id := range ids {
		w, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", store.ErrWordNotFound, id)
		}
		words = append(words, w)
	}

	return words, nil
}

// loadGlosses attaches glosses, ordered by position, to every word in byID.
func (s *PostgresWordStore) loadGlosses(ctx context.Context, byID map[uuid.UUID]*domain.Word) error {
	if len(byID) == 0 {
		return nil
	}

	wordIDs := make([]uuid.UUID, 0, len(byID))
	for id := range byID {
		wordIDs = append(wordIDs, id)
	}

	query := `
		SELECT id, word_id, meaning, definition, position
		FROM glosses
		WHERE word_id = ANY($1)
		ORDER BY word_id, position
	`

	rows, err := s.db.QueryContext(ctx, query, wordIDs)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var g domain.Gloss
		if err := rows.Scan(&g.ID, &g.WordID, &g.Meaning, &g.Definition, &g.Position); err != nil {
			return fmt.Errorf("failed to scan gloss row: %w", err)
		}
		if w, ok := byID[g.WordID]; ok {
			w.Glosses = append(w.Glosses, g)
		}
	}

	return rows.Err()
}

// SampleGlosses returns up to count random glosses excluding every gloss of
// the given word. Used to sample distractors for generated questions.
func (s *PostgresWordStore) SampleGlosses(
	ctx context.Context,
	excludeWordID uuid.UUID,
	count int,
) ([]domain.Gloss, error) {
	log := logger.FromContext(ctx)

	if count <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, word_id, meaning, definition, position
		FROM glosses
		WHERE word_id <> $1
		ORDER BY random()
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, excludeWordID, count)
	if err != nil {
		log.Error("failed to sample glosses", "exclude_word_id", excludeWordID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var glosses []domain.Gloss
	for rows.Next() {
		var g domain.Gloss
		if err := rows.Scan(&g.ID, &g.WordID, &g.Meaning, &g.Definition, &g.Position); err != nil {
			return nil, fmt.Errorf("failed to scan gloss row: %w", err)
		}
		glosses = append(glosses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gloss rows: %w", err)
	}

	return glosses, nil
}
