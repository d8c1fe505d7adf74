package service

import (
	"fmt"

	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AttemptService persists question attempts. Attempts are insert-only and
// every attempt counts: re-attempting a question creates a new row.
type AttemptService interface {
	// RecordAttempt inserts one attempt. Correctness is computed by the
	// caller (the session machine) and trusted as-is. If the attempt is
	// incorrect, a mistake-log entry is written best-effort; its failure
	// is logged and swallowed, never surfaced.
	RecordAttempt(studentID uuid.UUID, questionID uint, selectedOption int, isCorrect bool, subject, topic string) (*model.Attempt, error)
	GetMistakes(studentID uuid.UUID) ([]model.MistakeLogEntry, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	mistakeRepo repository.MistakeLogRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository, mistakeRepo repository.MistakeLogRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, mistakeRepo: mistakeRepo}
}

func (s *attemptService) RecordAttempt(studentID uuid.UUID, questionID uint, selectedOption int, isCorrect bool, subject, topic string) (*model.Attempt, error) {
	attempt := model.Attempt{
		StudentID:      studentID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		Topic:          topic,
		Subject:        subject,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("student_id", studentID.String()).Uint("question_id", questionID).Msg("RecordAttempt: attempt insert failed")
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	if !isCorrect {
		entry := model.MistakeLogEntry{
			AttemptID:   attempt.ID,
			Topic:       topic,
			Subtopic:    topic,
			MistakeType: model.MistakeTypeConceptual,
		}
		if err := s.mistakeRepo.Create(&entry); err != nil {
			// Secondary write: the attempt stands regardless.
			log.Warn().Err(err).Uint("attempt_id", attempt.ID).Msg("RecordAttempt: mistake log insert failed")
		}
	}

	return &attempt, nil
}

func (s *attemptService) GetMistakes(studentID uuid.UUID) ([]model.MistakeLogEntry, error) {
	entries, err := s.mistakeRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("fetching mistake log: %w", err)
	}
	return entries, nil
}
