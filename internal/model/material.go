package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyMaterial is a markdown document attached to a topic, shown in
// Understand mode.
type StudyMaterial struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TopicID   uint           `json:"topic_id" gorm:"not null;index"`
	Topic     Topic          `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text;not null"` // markdown
	AuthorID  uuid.UUID      `json:"author_id" gorm:"type:uuid"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
