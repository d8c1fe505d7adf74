package service

import (
	"sync"
	"testing"
	"time"

	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttemptRepo backs the service tests with a fixed attempt list. The
// write side is mutex-guarded: practice submits persist from a background
// goroutine.
type stubAttemptRepo struct {
	attempts   []model.Attempt
	createErr  error
	todayCount int64

	mu      sync.Mutex
	created []model.Attempt
}

func (r *stubAttemptRepo) Create(a *model.Attempt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uint(len(r.created) + 1)
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now()
	}
	r.created = append(r.created, *a)
	return nil
}

func (r *stubAttemptRepo) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func (r *stubAttemptRepo) FindByStudent(uuid.UUID) ([]model.Attempt, error) {
	return r.attempts, nil
}

func (r *stubAttemptRepo) FindIncorrectByStudent(uuid.UUID) ([]model.Attempt, error) {
	out := make([]model.Attempt, 0)
	for _, a := range r.attempts {
		if !a.IsCorrect {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAttemptRepo) CountByStudentBetween(uuid.UUID, time.Time, time.Time) (int64, error) {
	return r.todayCount, nil
}

func (r *stubAttemptRepo) FindByInstitution(uint) ([]model.Attempt, error) {
	return r.attempts, nil
}

func (r *stubAttemptRepo) FindSince(since time.Time) ([]model.Attempt, error) {
	out := make([]model.Attempt, 0)
	for _, a := range r.attempts {
		if !a.SubmittedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAttemptRepo) FindAll() ([]model.Attempt, error) {
	return r.attempts, nil
}

type stubUserRepo struct {
	students []model.User
}

func (r *stubUserRepo) Create(*model.User) error                     { return nil }
func (r *stubUserRepo) FindByID(uuid.UUID) (*model.User, error)      { return nil, nil }
func (r *stubUserRepo) FindByEmail(string) (*model.User, error)      { return nil, nil }
func (r *stubUserRepo) UpdateTimezone(uuid.UUID, string) error       { return nil }
func (r *stubUserRepo) FindByInstitution(uint, string) ([]model.User, error) {
	return r.students, nil
}

func newAnalyticsForTest(attempts []model.Attempt, now time.Time) *analyticsService {
	svc := NewAnalyticsService(&stubAttemptRepo{attempts: attempts}, &stubUserRepo{}).(*analyticsService)
	svc.now = func() time.Time { return now }
	return svc
}

func attemptAt(topic string, correct bool, at time.Time) model.Attempt {
	return model.Attempt{Topic: topic, IsCorrect: correct, SubmittedAt: at}
}

func TestRoundPct(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"no attempts", 0, 0, 0},
		{"all correct", 5, 5, 100},
		{"two thirds rounds up", 2, 3, 67},
		{"one third rounds down", 1, 3, 33},
		{"half", 1, 2, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundPct(tt.correct, tt.total))
		})
	}
}

func TestStudentAnalyticsEmptyAccount(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := newAnalyticsForTest(nil, now)

	got, err := svc.GetStudentAnalytics(uuid.New(), "UTC")
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalAttempts)
	assert.Equal(t, 0, got.Accuracy)
	assert.NotNil(t, got.Topics)
	assert.Empty(t, got.Topics)
	assert.NotNil(t, got.RecentAttempts)
	assert.Empty(t, got.RecentAttempts)

	require.Len(t, got.TrendData, 7)
	for _, p := range got.TrendData {
		assert.Zero(t, p.Total)
		assert.Zero(t, p.Accuracy)
	}
}

func TestStudentAnalyticsDailyTrend(t *testing.T) {
	// Wednesday noon UTC; the window is Thu (previous week) through Wed.
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		attemptAt("Algebra", true, now.Add(-2*time.Hour)),                // today
		attemptAt("Algebra", false, now.Add(-3*time.Hour)),               // today
		attemptAt("Algebra", true, now.AddDate(0, 0, -1)),                // yesterday
		attemptAt("Algebra", true, now.AddDate(0, 0, -7).Add(time.Hour)), // outside window
	}
	svc := newAnalyticsForTest(attempts, now)

	got, err := svc.GetStudentAnalytics(uuid.New(), "UTC")
	require.NoError(t, err)

	require.Len(t, got.TrendData, 7)
	labels := make([]string, 0, 7)
	for _, p := range got.TrendData {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, labels)

	// Oldest first: yesterday is index 5, today index 6.
	assert.Equal(t, 1, got.TrendData[5].Total)
	assert.Equal(t, 100, got.TrendData[5].Accuracy)
	assert.Equal(t, 2, got.TrendData[6].Total)
	assert.Equal(t, 50, got.TrendData[6].Accuracy)

	// The attempt outside the window only feeds the totals.
	assert.Equal(t, 4, got.TotalAttempts)
	assert.Equal(t, 3, got.CorrectAttempts)
	assert.Equal(t, 75, got.Accuracy)
}

func TestStudentAnalyticsTopicRollup(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		attemptAt("Algebra", true, now),
		attemptAt("Algebra", false, now),
		attemptAt("", true, now), // untagged falls under the fallback label
	}
	svc := newAnalyticsForTest(attempts, now)

	got, err := svc.GetStudentAnalytics(uuid.New(), "UTC")
	require.NoError(t, err)

	require.Len(t, got.Topics, 2)
	assert.Equal(t, "Algebra", got.Topics[0].Topic)
	assert.Equal(t, 50, got.Topics[0].Accuracy)
	assert.Equal(t, "General", got.Topics[1].Topic)
	assert.Equal(t, 100, got.Topics[1].Accuracy)
}

func TestRecentAttemptsCapped(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	attempts := make([]model.Attempt, 0, 15)
	for i := 0; i < 15; i++ {
		attempts = append(attempts, attemptAt("Algebra", true, now.Add(-time.Duration(i)*time.Minute)))
	}
	svc := newAnalyticsForTest(attempts, now)

	got, err := svc.GetStudentAnalytics(uuid.New(), "UTC")
	require.NoError(t, err)
	assert.Len(t, got.RecentAttempts, 10)
}

func TestInstitutionStrugglingTopics(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	attempts := []model.Attempt{
		// Fractions 25%, Geometry 50%, Algebra 100%.
		attemptAt("Fractions", true, now),
		attemptAt("Fractions", false, now),
		attemptAt("Fractions", false, now),
		attemptAt("Fractions", false, now),
		attemptAt("Geometry", true, now),
		attemptAt("Geometry", false, now),
		attemptAt("Algebra", true, now),
	}
	svc := newAnalyticsForTest(attempts, now)
	svc.userRepo = &stubUserRepo{students: make([]model.User, 3)}

	got, err := svc.GetInstitutionAnalytics(1, "UTC")
	require.NoError(t, err)

	assert.Equal(t, 3, got.StudentCount)
	require.Len(t, got.StrugglingTopics, 2)
	assert.Equal(t, "Fractions", got.StrugglingTopics[0].Topic)
	assert.Equal(t, 25, got.StrugglingTopics[0].Accuracy)
	assert.Equal(t, "Geometry", got.StrugglingTopics[1].Topic)
	require.Len(t, got.EngagementTrend, 7)
	assert.Equal(t, 7, got.EngagementTrend[6].Total)
}

func TestStrugglingTopicsCapAtFive(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	topics := []string{"A", "B", "C", "D", "E", "F", "G"}
	attempts := make([]model.Attempt, 0, len(topics))
	for _, topic := range topics {
		attempts = append(attempts, attemptAt(topic, false, now))
	}
	svc := newAnalyticsForTest(attempts, now)

	got, err := svc.GetInstitutionAnalytics(1, "UTC")
	require.NoError(t, err)
	assert.Len(t, got.StrugglingTopics, 5)
}

func TestGlobalAnalyticsHourlyTrend(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC)
	attempts := []model.Attempt{
		attemptAt("Algebra", true, now.Add(-10*time.Minute)),  // current hour
		attemptAt("Algebra", false, now.Add(-90*time.Minute)), // previous hour
	}
	svc := newAnalyticsForTest(attempts, now)

	got, err := svc.GetGlobalAnalytics()
	require.NoError(t, err)

	require.Len(t, got.HourlyTrend, 24)
	assert.Equal(t, "13:00", got.HourlyTrend[0].Label)
	assert.Equal(t, "12:00", got.HourlyTrend[23].Label)
	assert.Equal(t, 1, got.HourlyTrend[23].Total)
	assert.Equal(t, 1, got.HourlyTrend[22].Total)
	assert.Equal(t, 0, got.HourlyTrend[22].Accuracy)
	assert.Equal(t, 2, got.TotalAttempts)
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, loadLocation(""))
	assert.Equal(t, time.UTC, loadLocation("Not/AZone"))
}
