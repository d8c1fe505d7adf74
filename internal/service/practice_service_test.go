package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuestionRepo struct {
	questions []model.Question
}

func (r *stubQuestionRepo) Create(*model.Question) error          { return nil }
func (r *stubQuestionRepo) FindByID(uint) (*model.Question, error) { return nil, nil }
func (r *stubQuestionRepo) Update(*model.Question) error          { return nil }
func (r *stubQuestionRepo) Delete(uint) error                     { return nil }

func (r *stubQuestionRepo) FindByTopicID(uint) ([]model.Question, error) {
	return r.questions, nil
}

func (r *stubQuestionRepo) FindByTopicName(uint, string) ([]model.Question, error) {
	return r.questions, nil
}

type stubCurriculumRepo struct {
	topic *model.Topic
}

func (r *stubCurriculumRepo) CreateSubject(*model.Subject) error { return nil }
func (r *stubCurriculumRepo) CreateTopic(*model.Topic) error     { return nil }
func (r *stubCurriculumRepo) FindSubjectByID(uint) (*model.Subject, error) {
	return nil, nil
}
func (r *stubCurriculumRepo) FindSubjectsByInstitution(uint) ([]model.Subject, error) {
	return nil, nil
}
func (r *stubCurriculumRepo) FindTopicByID(uint) (*model.Topic, error) {
	return r.topic, nil
}
func (r *stubCurriculumRepo) DeleteSubject(uint) error { return nil }
func (r *stubCurriculumRepo) DeleteTopic(uint) error   { return nil }

func newPracticeForTest(questions []model.Question) PracticeService {
	return NewPracticeService(
		&stubQuestionRepo{questions: questions},
		&stubCurriculumRepo{topic: &model.Topic{Name: "Algebra"}},
		NewAttemptService(&stubAttemptRepo{}, &stubMistakeRepo{}),
		newStreakForTest(&stubStreakRepo{}, &stubAttemptRepo{}, time.Now()),
	)
}

func practiceQuestions() []model.Question {
	return []model.Question{
		{ID: 1, TopicName: "Algebra", Subject: "Math", Prompt: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0, Explanation: "first"},
		{ID: 2, TopicName: "Algebra", Subject: "Math", Prompt: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1},
		{ID: 3, TopicName: "Algebra", Subject: "Math", Prompt: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2},
	}
}

func TestPracticeSessionRun(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(session.PhaseAnswering), state.Phase)
	assert.Equal(t, "Algebra", state.Topic)
	assert.Equal(t, 3, state.TotalQuestions)
	require.NotNil(t, state.Question)
	assert.Equal(t, "Q1", state.Question.Prompt)

	sessionID := state.SessionID

	// Q1 correct, Q2 incorrect, Q3 correct.
	answers := []int{0, 3, 2}
	for i, answer := range answers {
		_, err := svc.Select(studentID, sessionID, answer)
		require.NoError(t, err)

		feedback, err := svc.Submit(studentID, sessionID)
		require.NoError(t, err)
		assert.Equal(t, i != 1, feedback.IsCorrect)

		_, err = svc.Advance(studentID, sessionID)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(studentID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Score)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.Equal(t, 67, summary.Accuracy)
	assert.Equal(t, 1, summary.BestStreak)
}

func TestPracticeSessionStripsAnswerKey(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)

	// The feedback carries the answer key; the live question view never does.
	require.NotNil(t, state.Question)
	assert.Equal(t, []string{"a", "b", "c", "d"}, state.Question.Options)

	_, err = svc.Select(studentID, state.SessionID, 3)
	require.NoError(t, err)
	feedback, err := svc.Submit(studentID, state.SessionID)
	require.NoError(t, err)
	assert.False(t, feedback.IsCorrect)
	assert.Equal(t, 0, feedback.CorrectAnswerIndex)
	assert.Equal(t, "first", feedback.Explanation)
}

func TestPracticeSessionOwnership(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	owner := uuid.New()

	state, err := svc.StartSession(owner, 1)
	require.NoError(t, err)

	_, err = svc.GetSession(uuid.New(), state.SessionID)
	assert.ErrorIs(t, err, ErrNotSessionOwner)

	_, err = svc.GetSession(owner, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPracticeSessionEmptyTopic(t *testing.T) {
	svc := newPracticeForTest(nil)
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(session.PhaseNoContent), state.Phase)
	assert.Nil(t, state.Question)

	_, err = svc.Select(studentID, state.SessionID, 0)
	assert.ErrorIs(t, err, session.ErrNoContent)
}

func TestPracticeSessionRestart(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)
	sessionID := state.SessionID

	_, err = svc.Restart(studentID, sessionID)
	assert.ErrorIs(t, err, session.ErrNotFinished)

	for range practiceQuestions() {
		_, err = svc.Select(studentID, sessionID, 0)
		require.NoError(t, err)
		_, err = svc.Submit(studentID, sessionID)
		require.NoError(t, err)
		_, err = svc.Advance(studentID, sessionID)
		require.NoError(t, err)
	}

	restarted, err := svc.Restart(studentID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, string(session.PhaseAnswering), restarted.Phase)
	assert.Equal(t, 0, restarted.Score)
	assert.Equal(t, 0, restarted.CurrentIndex)
	require.NotNil(t, restarted.Question)
	assert.Equal(t, "Q1", restarted.Question.Prompt)
}

func TestPracticeSessionConcurrentSubmits(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)
	_, err = svc.Select(studentID, state.SessionID, 0)
	require.NoError(t, err)

	// A double-clicked submit races two requests for the same session.
	// Exactly one may grade; the rest must see the already-submitted state.
	var wg sync.WaitGroup
	var graded int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(studentID, state.SessionID)
			if err == nil {
				atomic.AddInt32(&graded, 1)
			} else {
				assert.ErrorIs(t, err, session.ErrAlreadySubmitted)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), graded)
	got, err := svc.GetSession(studentID, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Score)
	assert.True(t, got.IsSubmitted)
}

func TestPracticeSessionAbandon(t *testing.T) {
	svc := newPracticeForTest(practiceQuestions())
	studentID := uuid.New()

	state, err := svc.StartSession(studentID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(studentID, state.SessionID))

	_, err = svc.GetSession(studentID, state.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
