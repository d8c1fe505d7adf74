package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	TopicID            uint           `json:"topic_id" gorm:"not null;index"`
	Topic              Topic          `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	Prompt             string         `json:"prompt" gorm:"type:text;not null"`
	Options            []string       `json:"options" gorm:"serializer:json;not null"`
	CorrectAnswerIndex int            `json:"correct_answer_index" gorm:"not null"` // 0-based
	Explanation        string         `json:"explanation,omitempty" gorm:"type:text"`
	Subject            string         `json:"subject" gorm:"index"` // denormalized for analytics rollups
	TopicName          string         `json:"topic_name" gorm:"index"`
	OrderInTopic       int            `json:"order_in_topic" gorm:"not null;default:0"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
