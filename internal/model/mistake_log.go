package model

import "time"

const MistakeTypeConceptual = "conceptual"

// MistakeLogEntry is a denormalized record of an incorrect attempt kept for
// fast mistake-review queries. It is written best-effort: a failed insert
// never rolls back the attempt it references.
type MistakeLogEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AttemptID   uint      `json:"attempt_id" gorm:"not null;index"`
	Topic       string    `json:"topic"`
	Subtopic    string    `json:"subtopic"`
	MistakeType string    `json:"mistake_type" gorm:"default:'conceptual'"`
	CreatedAt   time.Time `json:"created_at"`
}
