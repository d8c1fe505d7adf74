package repository

import (
	"time"

	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByStudent(studentID uuid.UUID) ([]model.Attempt, error)
	FindIncorrectByStudent(studentID uuid.UUID) ([]model.Attempt, error)
	CountByStudentBetween(studentID uuid.UUID, from, to time.Time) (int64, error)
	FindByInstitution(institutionID uint) ([]model.Attempt, error)
	FindSince(since time.Time) ([]model.Attempt, error)
	FindAll() ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByStudent(studentID uuid.UUID) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("student_id = ?", studentID).Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindIncorrectByStudent(studentID uuid.UUID) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("student_id = ? AND is_correct = ?", studentID, false).
		Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) CountByStudentBetween(studentID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("student_id = ? AND submitted_at >= ? AND submitted_at < ?", studentID, from, to).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) FindByInstitution(institutionID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Joins("JOIN users ON users.id = attempts.student_id").
		Where("users.institution_id = ?", institutionID).
		Order("attempts.submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindSince(since time.Time) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("submitted_at >= ?", since).Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAll() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}
