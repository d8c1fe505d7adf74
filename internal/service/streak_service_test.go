package service

import (
	"sync"
	"testing"
	"time"

	"github.com/aptivo/backend/config"
	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStreakRepo struct {
	mu    sync.Mutex
	state *model.StreakState

	tzSynced chan string
}

func (r *stubStreakRepo) GetOrCreate(userID uuid.UUID, defaultThreshold int) (*model.StreakState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		r.state = &model.StreakState{UserID: userID, Threshold: defaultThreshold, Timezone: "UTC"}
	}
	snapshot := *r.state
	return &snapshot, nil
}

func (r *stubStreakRepo) Update(state *model.StreakState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := *state
	r.state = &snapshot
	return nil
}

func (r *stubStreakRepo) UpdateTimezone(userID uuid.UUID, timezone string) error {
	r.mu.Lock()
	r.state.Timezone = timezone
	r.mu.Unlock()
	if r.tzSynced != nil {
		r.tzSynced <- timezone
	}
	return nil
}

func newStreakForTest(streakRepo *stubStreakRepo, attemptRepo *stubAttemptRepo, now time.Time) *streakService {
	cfg := &config.Config{Streak: config.Streak{DefaultThreshold: 5}}
	svc := NewStreakService(streakRepo, attemptRepo, cfg).(*streakService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetStreakBelowThreshold(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := newStreakForTest(&stubStreakRepo{}, &stubAttemptRepo{todayCount: 3}, now)

	got, err := svc.GetStreak(uuid.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 5, got.Threshold)
	assert.Equal(t, 3, got.TodayAttemptCount)
	assert.False(t, got.IsStreakDay)
	assert.Equal(t, 2, got.RemainingToQualify)
}

func TestGetStreakAboveThreshold(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := newStreakForTest(&stubStreakRepo{}, &stubAttemptRepo{todayCount: 7}, now)

	got, err := svc.GetStreak(uuid.New(), "")
	require.NoError(t, err)

	assert.True(t, got.IsStreakDay)
	assert.Equal(t, 0, got.RemainingToQualify)
}

func TestGetStreakClampsDisplayedLongest(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{state: &model.StreakState{
		CurrentStreak: 6, LongestStreak: 4, Threshold: 5, Timezone: "UTC",
	}}
	svc := newStreakForTest(repo, &stubAttemptRepo{}, now)

	got, err := svc.GetStreak(uuid.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 6, got.CurrentStreak)
	assert.Equal(t, 6, got.LongestStreak)
}

func TestGetStreakSyncsDetectedTimezone(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{tzSynced: make(chan string, 1)}
	svc := newStreakForTest(repo, &stubAttemptRepo{}, now)

	_, err := svc.GetStreak(uuid.New(), "Asia/Tokyo")
	require.NoError(t, err)

	select {
	case tz := <-repo.tzSynced:
		assert.Equal(t, "Asia/Tokyo", tz)
	case <-time.After(time.Second):
		t.Fatal("timezone sync never ran")
	}
}

func TestAdvanceOnQualifyBelowThresholdIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{}
	svc := newStreakForTest(repo, &stubAttemptRepo{todayCount: 4}, now)
	userID := uuid.New()

	require.NoError(t, svc.AdvanceOnQualify(userID))
	assert.Equal(t, 0, repo.state.CurrentStreak)
	assert.Nil(t, repo.state.LastActiveDate)
}

func TestAdvanceOnQualifyStartsStreak(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{}
	svc := newStreakForTest(repo, &stubAttemptRepo{todayCount: 5}, now)
	userID := uuid.New()

	require.NoError(t, svc.AdvanceOnQualify(userID))
	assert.Equal(t, 1, repo.state.CurrentStreak)
	assert.Equal(t, 1, repo.state.LongestStreak)
	require.NotNil(t, repo.state.LastActiveDate)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), *repo.state.LastActiveDate)
}

func TestAdvanceOnQualifyIdempotentWithinDay(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{}
	svc := newStreakForTest(repo, &stubAttemptRepo{todayCount: 9}, now)
	userID := uuid.New()

	require.NoError(t, svc.AdvanceOnQualify(userID))
	require.NoError(t, svc.AdvanceOnQualify(userID))
	assert.Equal(t, 1, repo.state.CurrentStreak)
}

func TestAdvanceOnQualifyExtendsFromYesterday(t *testing.T) {
	yesterday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{state: &model.StreakState{
		CurrentStreak: 3, LongestStreak: 3, Threshold: 5,
		LastActiveDate: &yesterday, Timezone: "UTC",
	}}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := newStreakForTest(repo, &stubAttemptRepo{todayCount: 5}, now)

	require.NoError(t, svc.AdvanceOnQualify(uuid.New()))
	assert.Equal(t, 4, repo.state.CurrentStreak)
	assert.Equal(t, 4, repo.state.LongestStreak)
}

func TestAdvanceOnQualifyResetsAfterGap(t *testing.T) {
	lastWeek := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)
	repo := &stubStreakRepo{state: &model.StreakState{
		CurrentStreak: 9, LongestStreak: 9, Threshold: 5,
		LastActiveDate: &lastWeek, Timezone: "UTC",
	}}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := newStreakForTest(repo, &stubAttemptRepo{todayCount: 5}, now)

	require.NoError(t, svc.AdvanceOnQualify(uuid.New()))
	assert.Equal(t, 1, repo.state.CurrentStreak)
	assert.Equal(t, 9, repo.state.LongestStreak)
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	start, end := dayBounds(time.Date(2026, 3, 4, 23, 59, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, loc), end)
}
