package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/repository"
	"github.com/aptivo/backend/internal/session"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound = errors.New("practice session not found")
	ErrNotSessionOwner = errors.New("practice session belongs to another student")
)

// PracticeService owns the live practice sessions. Each session is held in
// memory under a uuid handle; only individual attempts survive it. Recording
// an attempt is fire-and-forget: the session's score and streak are
// optimistic and never roll back on a persistence failure.
type PracticeService interface {
	StartSession(studentID uuid.UUID, topicID uint) (*dto.SessionStateDTO, error)
	GetSession(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error)
	Select(studentID, sessionID uuid.UUID, optionIndex int) (*dto.SessionStateDTO, error)
	Submit(studentID, sessionID uuid.UUID) (*dto.SubmitFeedbackDTO, error)
	Advance(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error)
	Restart(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error)
	Summary(studentID, sessionID uuid.UUID) (*dto.SessionSummaryDTO, error)
	// Abandon drops the session without persistence; navigating away from a
	// run discards its state.
	Abandon(studentID, sessionID uuid.UUID) error
}

// sessionEntry pairs a live session with the mutex serializing its
// transitions. The map mutex only guards lookup; overlapping requests for
// the same session are serialized here.
type sessionEntry struct {
	mu   sync.Mutex
	sess *session.Session
}

type practiceService struct {
	questionRepo   repository.QuestionRepository
	curriculumRepo repository.CurriculumRepository
	attemptService AttemptService
	streakService  StreakService

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

func NewPracticeService(
	questionRepo repository.QuestionRepository,
	curriculumRepo repository.CurriculumRepository,
	attemptService AttemptService,
	streakService StreakService,
) PracticeService {
	return &practiceService{
		questionRepo:   questionRepo,
		curriculumRepo: curriculumRepo,
		attemptService: attemptService,
		streakService:  streakService,
		sessions:       make(map[uuid.UUID]*sessionEntry),
	}
}

func (s *practiceService) StartSession(studentID uuid.UUID, topicID uint) (*dto.SessionStateDTO, error) {
	topic, err := s.curriculumRepo.FindTopicByID(topicID)
	if err != nil {
		return nil, fmt.Errorf("topic %d not found: %w", topicID, err)
	}

	questions, err := s.questionRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for topic %d: %w", topicID, err)
	}

	sess := session.New(studentID, topic.Name, questions)
	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{sess: sess}
	s.mu.Unlock()

	log.Info().Str("student_id", studentID.String()).Str("topic", topic.Name).Int("questions", len(questions)).Msg("Practice session started")
	return stateDTO(sess), nil
}

func (s *practiceService) GetSession(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return stateDTO(entry.sess), nil
}

func (s *practiceService) Select(studentID, sessionID uuid.UUID, optionIndex int) (*dto.SessionStateDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.sess.Select(optionIndex); err != nil {
		return nil, err
	}
	return stateDTO(entry.sess), nil
}

func (s *practiceService) Submit(studentID, sessionID uuid.UUID) (*dto.SubmitFeedbackDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	sess := entry.sess

	result, err := sess.Submit()
	if err != nil {
		return nil, err
	}

	// Persistence is detached from the session's bookkeeping: a failed
	// insert is logged and the in-session score stands.
	go func(r session.SubmitResult) {
		if _, err := s.attemptService.RecordAttempt(
			studentID, r.Question.ID, r.SelectedOption, r.IsCorrect,
			r.Question.Subject, r.Question.TopicName,
		); err != nil {
			log.Warn().Err(err).Str("student_id", studentID.String()).Msg("Practice submit: attempt persistence failed")
			return
		}
		if err := s.streakService.AdvanceOnQualify(studentID); err != nil {
			log.Warn().Err(err).Str("student_id", studentID.String()).Msg("Practice submit: streak advance failed")
		}
	}(*result)

	return &dto.SubmitFeedbackDTO{
		IsCorrect:          result.IsCorrect,
		CorrectAnswerIndex: result.Question.CorrectAnswerIndex,
		Explanation:        result.Question.Explanation,
		Score:              sess.Score,
		CurrentStreak:      sess.CurrentStreak,
		BestStreak:         sess.BestStreak,
	}, nil
}

func (s *practiceService) Advance(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.sess.Advance(); err != nil {
		return nil, err
	}
	return stateDTO(entry.sess), nil
}

func (s *practiceService) Restart(studentID, sessionID uuid.UUID) (*dto.SessionStateDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.sess.Restart(); err != nil {
		return nil, err
	}
	return stateDTO(entry.sess), nil
}

func (s *practiceService) Summary(studentID, sessionID uuid.UUID) (*dto.SessionSummaryDTO, error) {
	entry, err := s.lookup(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	sess := entry.sess
	if sess.Phase() != session.PhaseFinished {
		return nil, session.ErrNotFinished
	}
	return &dto.SessionSummaryDTO{
		Score:          sess.Score,
		TotalQuestions: len(sess.Questions),
		Accuracy:       sess.Accuracy(),
		BestStreak:     sess.BestStreak,
		ElapsedSeconds: sess.ElapsedSeconds(),
		ElapsedDisplay: sess.FormatElapsed(),
	}, nil
}

func (s *practiceService) Abandon(studentID, sessionID uuid.UUID) error {
	if _, err := s.lookup(studentID, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *practiceService) lookup(studentID, sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	// StudentID is fixed at creation, so the ownership check needs no lock.
	if entry.sess.StudentID != studentID {
		return nil, ErrNotSessionOwner
	}
	return entry, nil
}

func stateDTO(sess *session.Session) *dto.SessionStateDTO {
	state := &dto.SessionStateDTO{
		SessionID:      sess.ID,
		Phase:          string(sess.Phase()),
		Topic:          sess.Topic,
		CurrentIndex:   sess.CurrentIndex,
		TotalQuestions: len(sess.Questions),
		SelectedOption: sess.SelectedOption,
		IsSubmitted:    sess.IsSubmitted,
		Score:          sess.Score,
		CurrentStreak:  sess.CurrentStreak,
		BestStreak:     sess.BestStreak,
		ElapsedSeconds: sess.ElapsedSeconds(),
	}
	if q := sess.Current(); q != nil {
		var qDTO dto.QuestionStudentDTO
		if err := copier.Copy(&qDTO, q); err != nil {
			log.Error().Err(err).Uint("question_id", q.ID).Msg("Copying question to student DTO")
		}
		state.Question = &qDTO
	}
	return state
}

