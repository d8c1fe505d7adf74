package service

import (
	"fmt"
	"time"

	"github.com/aptivo/backend/config"
	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StreakService derives the dashboard streak view from stored counters and
// today's attempt count, and advances the counters on qualifying days.
type StreakService interface {
	// GetStreak returns the streak view for a user. When detectedTimezone
	// differs from the stored one, a fire-and-forget sync is started so
	// later day-boundary math uses the right locale; its failure never
	// blocks or fails the read.
	GetStreak(userID uuid.UUID, detectedTimezone string) (*dto.StreakDTO, error)
	// AdvanceOnQualify checks whether today's attempt count has reached the
	// user's threshold and, on the first qualifying attempt of the day,
	// advances the consecutive-day counters.
	AdvanceOnQualify(userID uuid.UUID) error
}

type streakService struct {
	streakRepo  repository.StreakRepository
	attemptRepo repository.AttemptRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewStreakService(streakRepo repository.StreakRepository, attemptRepo repository.AttemptRepository, cfg *config.Config) StreakService {
	return &streakService{streakRepo: streakRepo, attemptRepo: attemptRepo, cfg: cfg, now: time.Now}
}

func (s *streakService) GetStreak(userID uuid.UUID, detectedTimezone string) (*dto.StreakDTO, error) {
	state, err := s.streakRepo.GetOrCreate(userID, s.cfg.Streak.DefaultThreshold)
	if err != nil {
		return nil, fmt.Errorf("loading streak state: %w", err)
	}

	if detectedTimezone != "" && detectedTimezone != state.Timezone {
		go func() {
			if err := s.streakRepo.UpdateTimezone(userID, detectedTimezone); err != nil {
				log.Warn().Err(err).Str("user_id", userID.String()).Msg("Timezone sync failed")
			}
		}()
	}

	loc := loadLocation(state.Timezone)
	dayStart, dayEnd := dayBounds(s.now().In(loc))
	count, err := s.attemptRepo.CountByStudentBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("counting today's attempts: %w", err)
	}

	attemptCount := int(count)
	remaining := state.Threshold - attemptCount
	if remaining < 0 {
		remaining = 0
	}

	// Fetched counters can diverge transiently; the displayed longest is
	// clamped so it never renders below the current streak.
	longest := state.LongestStreak
	if state.CurrentStreak > longest {
		longest = state.CurrentStreak
	}

	return &dto.StreakDTO{
		CurrentStreak:      state.CurrentStreak,
		LongestStreak:      longest,
		Threshold:          state.Threshold,
		TodayAttemptCount:  attemptCount,
		IsStreakDay:        attemptCount >= state.Threshold,
		RemainingToQualify: remaining,
	}, nil
}

func (s *streakService) AdvanceOnQualify(userID uuid.UUID) error {
	state, err := s.streakRepo.GetOrCreate(userID, s.cfg.Streak.DefaultThreshold)
	if err != nil {
		return fmt.Errorf("loading streak state: %w", err)
	}

	loc := loadLocation(state.Timezone)
	today := s.now().In(loc)
	dayStart, dayEnd := dayBounds(today)

	count, err := s.attemptRepo.CountByStudentBetween(userID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("counting today's attempts: %w", err)
	}
	if int(count) < state.Threshold {
		return nil
	}

	todayDate := dayStart
	if state.LastActiveDate != nil {
		last := state.LastActiveDate.In(loc)
		lastStart, _ := dayBounds(last)
		switch {
		case lastStart.Equal(todayDate):
			// Already counted today.
			return nil
		case todayDate.AddDate(0, 0, -1).Equal(lastStart):
			state.CurrentStreak++
		default:
			state.CurrentStreak = 1
		}
	} else {
		state.CurrentStreak = 1
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	state.LastActiveDate = &todayDate

	if err := s.streakRepo.Update(state); err != nil {
		return fmt.Errorf("saving streak state: %w", err)
	}
	log.Info().Str("user_id", userID.String()).Int("current", state.CurrentStreak).Int("longest", state.LongestStreak).Msg("Streak advanced")
	return nil
}

// dayBounds returns the half-open [midnight, next midnight) window around t
// in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
