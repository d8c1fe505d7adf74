package dto

import "time"

type QuestionCreateDTO struct {
	TopicID            uint     `json:"topic_id" binding:"required"`
	Prompt             string   `json:"prompt" binding:"required"`
	Options            []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswerIndex int      `json:"correct_answer_index" binding:"min=0"`
	Explanation        string   `json:"explanation,omitempty"`
	OrderInTopic       int      `json:"order_in_topic"`
}

// QuestionAdminDTO is the privileged view including correctness metadata.
type QuestionAdminDTO struct {
	ID                 uint      `json:"id"`
	TopicID            uint      `json:"topic_id"`
	Prompt             string    `json:"prompt"`
	Options            []string  `json:"options"`
	CorrectAnswerIndex int       `json:"correct_answer_index"`
	Explanation        string    `json:"explanation,omitempty"`
	Subject            string    `json:"subject"`
	TopicName          string    `json:"topic_name"`
	OrderInTopic       int       `json:"order_in_topic"`
	CreatedAt          time.Time `json:"created_at"`
}

// QuestionStudentDTO is the student-facing view. CorrectAnswerIndex and
// Explanation are deliberately absent: a student read must never expose
// them before submission.
type QuestionStudentDTO struct {
	ID        uint     `json:"id"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Subject   string   `json:"subject"`
	TopicName string   `json:"topic_name"`
}
