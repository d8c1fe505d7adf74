package dto

import "github.com/google/uuid"

type SessionStartDTO struct {
	TopicID uint `json:"topic_id" binding:"required"`
}

type SelectOptionDTO struct {
	OptionIndex int `json:"option_index" binding:"min=0"`
}

// SessionStateDTO is the session snapshot returned after every transition.
type SessionStateDTO struct {
	SessionID      uuid.UUID           `json:"session_id"`
	Phase          string              `json:"phase"`
	Topic          string              `json:"topic"`
	CurrentIndex   int                 `json:"current_index"`
	TotalQuestions int                 `json:"total_questions"`
	Question       *QuestionStudentDTO `json:"question,omitempty"`
	SelectedOption *int                `json:"selected_option,omitempty"`
	IsSubmitted    bool                `json:"is_submitted"`
	Score          int                 `json:"score"`
	CurrentStreak  int                 `json:"current_streak"`
	BestStreak     int                 `json:"best_streak"`
	ElapsedSeconds int                 `json:"elapsed_seconds"`
}

// SubmitFeedbackDTO reveals correctness metadata for the just-submitted
// question only.
type SubmitFeedbackDTO struct {
	IsCorrect          bool   `json:"is_correct"`
	CorrectAnswerIndex int    `json:"correct_answer_index"`
	Explanation        string `json:"explanation,omitempty"`
	Score              int    `json:"score"`
	CurrentStreak      int    `json:"current_streak"`
	BestStreak         int    `json:"best_streak"`
}

type SessionSummaryDTO struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	Accuracy       int    `json:"accuracy"`
	BestStreak     int    `json:"best_streak"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	ElapsedDisplay string `json:"elapsed_display"` // minutes:seconds
}

type ModeSwitchDTO struct {
	Path string `json:"path" binding:"required"`
	Mode string `json:"mode" binding:"required,oneof=NEUTRAL UNDERSTAND APPLY"`
}

type ModeDecisionDTO struct {
	Mode   string `json:"mode"`
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
}
