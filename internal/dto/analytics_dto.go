package dto

import "time"

// TrendPointDTO is one bucket of a time-series trend. Accuracy is used for
// student trends, Total doubles as the engagement count for institution and
// global trends.
type TrendPointDTO struct {
	Label    string `json:"label"` // weekday short-name or hour
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
	Accuracy int    `json:"accuracy"`
}

type TopicStatDTO struct {
	Topic    string `json:"topic"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"`
}

type RecentAttemptDTO struct {
	IsCorrect bool      `json:"is_correct"`
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

type StudentAnalyticsDTO struct {
	TotalAttempts   int                `json:"total_attempts"`
	CorrectAttempts int                `json:"correct_attempts"`
	Accuracy        int                `json:"accuracy"`
	TrendData       []TrendPointDTO    `json:"trend_data"` // 7 days, oldest first
	Topics          []TopicStatDTO     `json:"topics"`
	RecentAttempts  []RecentAttemptDTO `json:"recent_attempts"`
}

type InstitutionAnalyticsDTO struct {
	TotalAttempts    int             `json:"total_attempts"`
	CorrectAttempts  int             `json:"correct_attempts"`
	Accuracy         int             `json:"accuracy"`
	StudentCount     int             `json:"student_count"`
	StrugglingTopics []TopicStatDTO  `json:"struggling_topics"` // <60% accuracy, ascending, max 5
	EngagementTrend  []TrendPointDTO `json:"engagement_trend"`  // 7 days of attempt counts
}

type GlobalAnalyticsDTO struct {
	TotalAttempts   int             `json:"total_attempts"`
	CorrectAttempts int             `json:"correct_attempts"`
	Accuracy        int             `json:"accuracy"`
	HourlyTrend     []TrendPointDTO `json:"hourly_trend"` // trailing 24 hours
}

type StreakDTO struct {
	CurrentStreak      int  `json:"current_streak"`
	LongestStreak      int  `json:"longest_streak"`
	Threshold          int  `json:"threshold"`
	TodayAttemptCount  int  `json:"today_attempt_count"`
	IsStreakDay        bool `json:"is_streak_day"`
	RemainingToQualify int  `json:"remaining_to_qualify"`
}
