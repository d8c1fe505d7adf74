package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin       = "super_admin"
	RoleInstitutionAdmin = "institution_admin"
	RoleStudent          = "student"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	Email         string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash  string         `json:"-" gorm:"not null"`
	Name          string         `json:"name" gorm:"not null"`
	Role          string         `json:"role" gorm:"not null;index"` // super_admin, institution_admin, student
	InstitutionID *uint          `json:"institution_id,omitempty" gorm:"index"`
	Institution   *Institution   `json:"institution,omitempty" gorm:"foreignKey:InstitutionID"`
	Timezone      string         `json:"timezone" gorm:"default:'UTC'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
