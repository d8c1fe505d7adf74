package model

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one student's answer to one question. Rows are insert-only:
// IsCorrect is fixed at creation time and never recomputed, even if the
// parent question is edited afterwards.
type Attempt struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	StudentID      uuid.UUID `json:"student_id" gorm:"type:uuid;not null;index"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption int       `json:"selected_option" gorm:"not null"` // 0-based
	IsCorrect      bool      `json:"is_correct" gorm:"not null;index"`
	Topic          string    `json:"topic" gorm:"index"`
	Subject        string    `json:"subject"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"autoCreateTime;index"`
}
