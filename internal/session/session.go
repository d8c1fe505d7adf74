package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
)

// Phase is the observable state of a practice session.
type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseSubmitted Phase = "submitted"
	PhaseFinished  Phase = "finished"
	// PhaseNoContent is terminal and distinct from Finished: the topic had
	// no questions, so the session never entered Answering.
	PhaseNoContent Phase = "no_content"
)

var (
	ErrAlreadySubmitted = errors.New("current question already submitted")
	ErrNoSelection      = errors.New("no option selected")
	ErrNotSubmitted     = errors.New("current question not yet submitted")
	ErrFinished         = errors.New("session is finished")
	ErrNotFinished      = errors.New("session is not finished")
	ErrNoContent        = errors.New("session has no questions")
	ErrInvalidOption    = errors.New("option index out of range")
)

// SubmitResult carries the outcome of one submission so the caller can show
// feedback and persist the attempt.
type SubmitResult struct {
	Question       model.Question
	SelectedOption int
	IsCorrect      bool
}

// Session drives one student's run through an ordered question set:
// select -> submit -> feedback -> advance, one question at a time. The
// question order is fixed at creation and survives restarts.
type Session struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Topic     string

	Questions      []model.Question
	CurrentIndex   int
	SelectedOption *int
	IsSubmitted    bool

	Score         int
	CurrentStreak int
	BestStreak    int

	StartedAt  time.Time
	FinishedAt *time.Time

	now func() time.Time
}

// New creates a session over a fixed question sequence. The elapsed-time
// clock starts immediately; a session over an empty set is terminal from
// the start.
func New(studentID uuid.UUID, topic string, questions []model.Question) *Session {
	return newWithClock(studentID, topic, questions, time.Now)
}

func newWithClock(studentID uuid.UUID, topic string, questions []model.Question, now func() time.Time) *Session {
	s := &Session{
		ID:        uuid.New(),
		StudentID: studentID,
		Topic:     topic,
		Questions: questions,
		StartedAt: now(),
		now:       now,
	}
	return s
}

func (s *Session) Phase() Phase {
	switch {
	case len(s.Questions) == 0:
		return PhaseNoContent
	case s.CurrentIndex >= len(s.Questions):
		return PhaseFinished
	case s.IsSubmitted:
		return PhaseSubmitted
	default:
		return PhaseAnswering
	}
}

// Current returns the question at the cursor, or nil once the session has
// left the per-question states.
func (s *Session) Current() *model.Question {
	if s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// Select records the option under consideration. It is only legal before
// submission; once submitted the selection is frozen until Advance.
func (s *Session) Select(optionIndex int) error {
	switch s.Phase() {
	case PhaseNoContent:
		return ErrNoContent
	case PhaseFinished:
		return ErrFinished
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	if optionIndex < 0 || optionIndex >= len(s.Current().Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}
	s.SelectedOption = &optionIndex
	return nil
}

// Submit grades the current selection and updates score and streak counters.
// Persistence of the attempt is the caller's concern; local bookkeeping here
// never depends on it.
func (s *Session) Submit() (*SubmitResult, error) {
	switch s.Phase() {
	case PhaseNoContent:
		return nil, ErrNoContent
	case PhaseFinished:
		return nil, ErrFinished
	case PhaseSubmitted:
		return nil, ErrAlreadySubmitted
	}
	if s.SelectedOption == nil {
		return nil, ErrNoSelection
	}

	q := *s.Current()
	selected := *s.SelectedOption
	correct := selected == q.CorrectAnswerIndex

	s.IsSubmitted = true
	if correct {
		s.Score++
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	return &SubmitResult{Question: q, SelectedOption: selected, IsCorrect: correct}, nil
}

// Advance moves to the next question, or to Finished after the last one.
func (s *Session) Advance() error {
	switch s.Phase() {
	case PhaseNoContent:
		return ErrNoContent
	case PhaseFinished:
		return ErrFinished
	case PhaseAnswering:
		return ErrNotSubmitted
	}
	s.SelectedOption = nil
	s.IsSubmitted = false
	s.CurrentIndex++
	if s.CurrentIndex == len(s.Questions) {
		finished := s.now()
		s.FinishedAt = &finished
	}
	return nil
}

// Restart begins a fresh run over the same question sequence. No re-fetch,
// no re-shuffle: the same questions repeat in the same order.
func (s *Session) Restart() error {
	if s.Phase() != PhaseFinished {
		return ErrNotFinished
	}
	s.CurrentIndex = 0
	s.SelectedOption = nil
	s.IsSubmitted = false
	s.Score = 0
	s.CurrentStreak = 0
	s.BestStreak = 0
	s.FinishedAt = nil
	s.StartedAt = s.now()
	return nil
}

// ElapsedSeconds runs from session start until the session reaches Finished,
// at which point it freezes. Feedback time counts; the clock does not pause
// between submit and advance.
func (s *Session) ElapsedSeconds() int {
	if len(s.Questions) == 0 {
		return 0
	}
	end := s.now()
	if s.FinishedAt != nil {
		end = *s.FinishedAt
	}
	return int(end.Sub(s.StartedAt).Seconds())
}

// FormatElapsed renders the elapsed time as minutes:seconds with the seconds
// zero-padded to two digits.
func (s *Session) FormatElapsed() string {
	total := s.ElapsedSeconds()
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Accuracy is the terminal-summary percentage, rounded to the nearest
// integer; zero for an empty session.
func (s *Session) Accuracy() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return int(float64(s.Score)/float64(len(s.Questions))*100 + 0.5)
}
