package dto

import "time"

type BroadcastCreateDTO struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	// Global broadcasts (super admin only) leave InstitutionID unset.
	InstitutionID *uint `json:"institution_id"`
}

type BroadcastDTO struct {
	ID            uint      `json:"id"`
	InstitutionID *uint     `json:"institution_id,omitempty"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

type InstitutionCreateDTO struct {
	Name string `json:"name" binding:"required"`
}

type InstitutionDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type InstitutionReviewDTO struct {
	Approve bool `json:"approve"`
}
