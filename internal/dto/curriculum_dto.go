package dto

import "time"

type TopicCreateDTO struct {
	Name     string `json:"name" binding:"required"`
	OrderNum int    `json:"order_num"`
}

type SubjectCreateDTO struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description,omitempty"`
	Topics      []TopicCreateDTO `json:"topics" binding:"omitempty,dive"`
}

type TopicDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	OrderNum int    `json:"order_num"`
}

type SubjectDTO struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Topics      []TopicDTO `json:"topics"`
	CreatedAt   time.Time  `json:"created_at"`
}

type MaterialCreateDTO struct {
	TopicID uint   `json:"topic_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"` // markdown
}

type MaterialUpdateDTO struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type MaterialDTO struct {
	ID        uint      `json:"id"`
	TopicID   uint      `json:"topic_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
