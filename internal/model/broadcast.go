package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Broadcast is an announcement from an admin. InstitutionID is nil for
// platform-wide broadcasts from a super admin.
type Broadcast struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	InstitutionID *uint          `json:"institution_id,omitempty" gorm:"index"`
	AuthorID      uuid.UUID      `json:"author_id" gorm:"type:uuid;not null"`
	Title         string         `json:"title" gorm:"not null"`
	Body          string         `json:"body" gorm:"type:text;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
