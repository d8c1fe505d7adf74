package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	fallbackTopicLabel    = "General"
	recentAttemptLimit    = 10
	strugglingTopicCutoff = 60
	strugglingTopicLimit  = 5
)

// AnalyticsService shapes attempt history into dashboard aggregates. Every
// variant degrades to zeros and empty (non-nil) collections when there is
// no history; none of them error on an empty account.
type AnalyticsService interface {
	GetStudentAnalytics(studentID uuid.UUID, timezone string) (*dto.StudentAnalyticsDTO, error)
	GetInstitutionAnalytics(institutionID uint, timezone string) (*dto.InstitutionAnalyticsDTO, error)
	GetGlobalAnalytics() (*dto.GlobalAnalyticsDTO, error)
}

type analyticsService struct {
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewAnalyticsService(attemptRepo repository.AttemptRepository, userRepo repository.UserRepository) AnalyticsService {
	return &analyticsService{attemptRepo: attemptRepo, userRepo: userRepo, now: time.Now}
}

func (s *analyticsService) GetStudentAnalytics(studentID uuid.UUID, timezone string) (*dto.StudentAnalyticsDTO, error) {
	attempts, err := s.attemptRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts for student %s: %w", studentID, err)
	}

	loc := loadLocation(timezone)
	total, correct := countCorrect(attempts)

	result := &dto.StudentAnalyticsDTO{
		TotalAttempts:   total,
		CorrectAttempts: correct,
		Accuracy:        roundPct(correct, total),
		TrendData:       buildDailyTrend(attempts, s.now().In(loc), loc),
		Topics:          buildTopicStats(attempts),
		RecentAttempts:  buildRecentAttempts(attempts),
	}
	return result, nil
}

func (s *analyticsService) GetInstitutionAnalytics(institutionID uint, timezone string) (*dto.InstitutionAnalyticsDTO, error) {
	attempts, err := s.attemptRepo.FindByInstitution(institutionID)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts for institution %d: %w", institutionID, err)
	}

	students, err := s.userRepo.FindByInstitution(institutionID, model.RoleStudent)
	if err != nil {
		// Student count is decoration on this dashboard; render without it.
		log.Warn().Err(err).Uint("institution_id", institutionID).Msg("GetInstitutionAnalytics: student count unavailable")
	}

	loc := loadLocation(timezone)
	total, correct := countCorrect(attempts)

	result := &dto.InstitutionAnalyticsDTO{
		TotalAttempts:    total,
		CorrectAttempts:  correct,
		Accuracy:         roundPct(correct, total),
		StudentCount:     len(students),
		StrugglingTopics: buildStrugglingTopics(attempts),
		EngagementTrend:  buildDailyTrend(attempts, s.now().In(loc), loc),
	}
	return result, nil
}

func (s *analyticsService) GetGlobalAnalytics() (*dto.GlobalAnalyticsDTO, error) {
	now := s.now()
	attempts, err := s.attemptRepo.FindSince(now.Add(-24 * time.Hour))
	if err != nil {
		return nil, fmt.Errorf("fetching recent attempts: %w", err)
	}

	all, err := s.attemptRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching attempt totals: %w", err)
	}
	total, correct := countCorrect(all)

	result := &dto.GlobalAnalyticsDTO{
		TotalAttempts:   total,
		CorrectAttempts: correct,
		Accuracy:        roundPct(correct, total),
		HourlyTrend:     buildHourlyTrend(attempts, now),
	}
	return result, nil
}

// roundPct is the one accuracy formula used everywhere: round(100*c/t),
// defined as 0 when there are no attempts.
func roundPct(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func loadLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn().Str("timezone", timezone).Msg("Unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

func countCorrect(attempts []model.Attempt) (total, correct int) {
	total = len(attempts)
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}
	return total, correct
}

// buildDailyTrend produces exactly 7 buckets for today and the 6 preceding
// calendar days, oldest first, zero-filled where empty. An attempt falls in
// a bucket when its submission date matches in the given locale. Student
// dashboards read Accuracy from each point, institution dashboards read
// Total as the engagement count.
func buildDailyTrend(attempts []model.Attempt, now time.Time, loc *time.Location) []dto.TrendPointDTO {
	trend := make([]dto.TrendPointDTO, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayTotal, dayCorrect := 0, 0
		for _, a := range attempts {
			at := a.SubmittedAt.In(loc)
			if at.Year() == day.Year() && at.YearDay() == day.YearDay() {
				dayTotal++
				if a.IsCorrect {
					dayCorrect++
				}
			}
		}
		point := dto.TrendPointDTO{
			Label:    day.Weekday().String()[:3],
			Total:    dayTotal,
			Correct:  dayCorrect,
			Accuracy: roundPct(dayCorrect, dayTotal),
		}
		trend = append(trend, point)
	}
	return trend
}

// buildHourlyTrend buckets the trailing 24 hours by hour-of-day, oldest
// first.
func buildHourlyTrend(attempts []model.Attempt, now time.Time) []dto.TrendPointDTO {
	trend := make([]dto.TrendPointDTO, 0, 24)
	start := now.Truncate(time.Hour).Add(-23 * time.Hour)
	for i := 0; i < 24; i++ {
		bucketStart := start.Add(time.Duration(i) * time.Hour)
		bucketEnd := bucketStart.Add(time.Hour)
		hourTotal, hourCorrect := 0, 0
		for _, a := range attempts {
			if !a.SubmittedAt.Before(bucketStart) && a.SubmittedAt.Before(bucketEnd) {
				hourTotal++
				if a.IsCorrect {
					hourCorrect++
				}
			}
		}
		trend = append(trend, dto.TrendPointDTO{
			Label:    fmt.Sprintf("%02d:00", bucketStart.Hour()),
			Total:    hourTotal,
			Correct:  hourCorrect,
			Accuracy: roundPct(hourCorrect, hourTotal),
		})
	}
	return trend
}

func buildTopicStats(attempts []model.Attempt) []dto.TopicStatDTO {
	type rollup struct {
		total   int
		correct int
	}
	byTopic := make(map[string]*rollup)
	order := make([]string, 0)
	for _, a := range attempts {
		topic := a.Topic
		if topic == "" {
			topic = fallbackTopicLabel
		}
		r, ok := byTopic[topic]
		if !ok {
			r = &rollup{}
			byTopic[topic] = r
			order = append(order, topic)
		}
		r.total++
		if a.IsCorrect {
			r.correct++
		}
	}

	stats := make([]dto.TopicStatDTO, 0, len(order))
	for _, topic := range order {
		r := byTopic[topic]
		stats = append(stats, dto.TopicStatDTO{
			Topic:    topic,
			Total:    r.total,
			Accuracy: roundPct(r.correct, r.total),
		})
	}
	return stats
}

// buildStrugglingTopics lists topics under the accuracy cutoff, worst
// first, capped.
func buildStrugglingTopics(attempts []model.Attempt) []dto.TopicStatDTO {
	stats := buildTopicStats(attempts)
	struggling := make([]dto.TopicStatDTO, 0, len(stats))
	for _, st := range stats {
		if st.Accuracy < strugglingTopicCutoff {
			struggling = append(struggling, st)
		}
	}
	sort.SliceStable(struggling, func(i, j int) bool {
		return struggling[i].Accuracy < struggling[j].Accuracy
	})
	if len(struggling) > strugglingTopicLimit {
		struggling = struggling[:strugglingTopicLimit]
	}
	return struggling
}

func buildRecentAttempts(attempts []model.Attempt) []dto.RecentAttemptDTO {
	// Repo already orders newest first.
	recent := make([]dto.RecentAttemptDTO, 0, recentAttemptLimit)
	for _, a := range attempts {
		if len(recent) == recentAttemptLimit {
			break
		}
		topic := a.Topic
		if topic == "" {
			topic = fallbackTopicLabel
		}
		recent = append(recent, dto.RecentAttemptDTO{
			IsCorrect: a.IsCorrect,
			Topic:     topic,
			Timestamp: a.SubmittedAt,
		})
	}
	return recent
}
