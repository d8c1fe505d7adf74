package model

import (
	"time"

	"github.com/google/uuid"
)

// StreakState holds per-user running streak counters. LongestStreak is a
// high-water mark: after any update it must be >= CurrentStreak.
type StreakState struct {
	UserID         uuid.UUID  `gorm:"type:uuid;primarykey" json:"user_id"`
	CurrentStreak  int        `json:"current_streak" gorm:"not null;default:0"`
	LongestStreak  int        `json:"longest_streak" gorm:"not null;default:0"`
	Threshold      int        `json:"threshold" gorm:"not null;default:5"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	Timezone       string     `json:"timezone" gorm:"default:'UTC'"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
