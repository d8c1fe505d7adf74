package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	InstitutionPending  = "pending"
	InstitutionApproved = "approved"
	InstitutionRejected = "rejected"
)

type Institution struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	Status    string         `json:"status" gorm:"default:'pending';index"` // pending, approved, rejected
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
