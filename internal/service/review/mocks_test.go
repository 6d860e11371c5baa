package review_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/store"
)

// MockWordStore is a mock implementation of the store.WordStore interface
type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Word), args.Error(1)
}

func (m *MockWordStore) SampleGlosses(
	ctx context.Context,
	excludeWordID uuid.UUID,
	count int,
) ([]domain.Gloss, error) {
	args := m.Called(ctx, excludeWordID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Gloss), args.Error(1)
}

// MockProgressStore is a mock implementation of the store.ProgressStore interface
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.Progress, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressStore) Update(ctx context.Context, progress *domain.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Progress), args.Error(1)
}

// WithTx returns the mock itself so transactional code paths exercise the
// same expectations.
func (m *MockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return m
}

// MockReviewSessionStore is a mock implementation of the store.ReviewSessionStore interface
type MockReviewSessionStore struct {
	mock.Mock
}

func (m *MockReviewSessionStore) Create(ctx context.Context, session *domain.ReviewSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReviewSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ReviewSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSession), args.Error(1)
}

func (m *MockReviewSessionStore) WithTx(tx *sql.Tx) store.ReviewSessionStore {
	return m
}

// MockAttemptStore is a mock implementation of the store.AttemptStore interface
type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Create(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

func (m *MockAttemptStore) Update(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptStore) CreateResult(ctx context.Context, result *domain.QuestionResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockAttemptStore) ListResults(
	ctx context.Context,
	attemptID uuid.UUID,
) ([]*domain.QuestionResult, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionResult), args.Error(1)
}

func (m *MockAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return m
}

// MockDistractorGenerator is a mock implementation of generation.DistractorGenerator
type MockDistractorGenerator struct {
	mock.Mock
}

func (m *MockDistractorGenerator) GenerateDistractors(
	ctx context.Context,
	word *domain.Word,
	count int,
) ([]string, error) {
	args := m.Called(ctx, word, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
