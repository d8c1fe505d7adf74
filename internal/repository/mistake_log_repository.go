package repository

import (
	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MistakeLogRepository interface {
	Create(entry *model.MistakeLogEntry) error
	FindByStudent(studentID uuid.UUID) ([]model.MistakeLogEntry, error)
}

type mistakeLogRepository struct {
	db *gorm.DB
}

func NewMistakeLogRepository(db *gorm.DB) MistakeLogRepository {
	return &mistakeLogRepository{db: db}
}

func (r *mistakeLogRepository) Create(entry *model.MistakeLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *mistakeLogRepository) FindByStudent(studentID uuid.UUID) ([]model.MistakeLogEntry, error) {
	var entries []model.MistakeLogEntry
	err := r.db.
		Joins("JOIN attempts ON attempts.id = mistake_log_entries.attempt_id").
		Where("attempts.student_id = ?", studentID).
		Order("mistake_log_entries.created_at DESC").
		Find(&entries).Error
	return entries, err
}
