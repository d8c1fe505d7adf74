package model

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	InstitutionID uint           `json:"institution_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description,omitempty"`
	Topics        []Topic        `json:"topics,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type Topic struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SubjectID uint           `json:"subject_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	OrderNum  int            `json:"order_num" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
