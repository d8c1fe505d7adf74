package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMistakeRepo struct {
	createErr error

	mu      sync.Mutex
	entries []model.MistakeLogEntry
}

func (r *stubMistakeRepo) Create(entry *model.MistakeLogEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubMistakeRepo) FindByStudent(uuid.UUID) ([]model.MistakeLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, nil
}

func TestRecordAttemptCorrect(t *testing.T) {
	attemptRepo := &stubAttemptRepo{}
	mistakeRepo := &stubMistakeRepo{}
	svc := NewAttemptService(attemptRepo, mistakeRepo)

	studentID := uuid.New()
	attempt, err := svc.RecordAttempt(studentID, 42, 1, true, "Math", "Algebra")
	require.NoError(t, err)

	assert.Equal(t, studentID, attempt.StudentID)
	assert.True(t, attempt.IsCorrect)
	require.Equal(t, 1, attemptRepo.createdCount())
	assert.Empty(t, mistakeRepo.entries)
}

func TestRecordAttemptIncorrectLogsMistake(t *testing.T) {
	attemptRepo := &stubAttemptRepo{}
	mistakeRepo := &stubMistakeRepo{}
	svc := NewAttemptService(attemptRepo, mistakeRepo)

	_, err := svc.RecordAttempt(uuid.New(), 42, 3, false, "Math", "Fractions")
	require.NoError(t, err)

	require.Len(t, mistakeRepo.entries, 1)
	entry := mistakeRepo.entries[0]
	assert.Equal(t, "Fractions", entry.Topic)
	assert.Equal(t, model.MistakeTypeConceptual, entry.MistakeType)
}

func TestRecordAttemptSurvivesMistakeLogFailure(t *testing.T) {
	attemptRepo := &stubAttemptRepo{}
	mistakeRepo := &stubMistakeRepo{createErr: errors.New("mistake table unavailable")}
	svc := NewAttemptService(attemptRepo, mistakeRepo)

	attempt, err := svc.RecordAttempt(uuid.New(), 42, 3, false, "Math", "Fractions")
	require.NoError(t, err)
	assert.NotNil(t, attempt)
	assert.Equal(t, 1, attemptRepo.createdCount())
}

func TestRecordAttemptFailsWhenInsertFails(t *testing.T) {
	attemptRepo := &stubAttemptRepo{createErr: errors.New("connection refused")}
	svc := NewAttemptService(attemptRepo, &stubMistakeRepo{})

	_, err := svc.RecordAttempt(uuid.New(), 42, 0, true, "Math", "Algebra")
	assert.Error(t, err)
}

func TestEveryAttemptCounts(t *testing.T) {
	attemptRepo := &stubAttemptRepo{}
	svc := NewAttemptService(attemptRepo, &stubMistakeRepo{})
	studentID := uuid.New()

	// Re-attempting the same question inserts a fresh row each time.
	_, err := svc.RecordAttempt(studentID, 42, 0, true, "Math", "Algebra")
	require.NoError(t, err)
	_, err = svc.RecordAttempt(studentID, 42, 2, false, "Math", "Algebra")
	require.NoError(t, err)

	assert.Equal(t, 2, attemptRepo.createdCount())
}
