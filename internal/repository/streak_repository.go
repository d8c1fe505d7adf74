package repository

import (
	"errors"

	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreakRepository interface {
	GetOrCreate(userID uuid.UUID, defaultThreshold int) (*model.StreakState, error)
	Update(state *model.StreakState) error
	UpdateTimezone(userID uuid.UUID, timezone string) error
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetOrCreate(userID uuid.UUID, defaultThreshold int) (*model.StreakState, error) {
	var state model.StreakState
	err := r.db.First(&state, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = model.StreakState{UserID: userID, Threshold: defaultThreshold}
		if err := r.db.Create(&state).Error; err != nil {
			return nil, err
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *streakRepository) Update(state *model.StreakState) error {
	return r.db.Save(state).Error
}

func (r *streakRepository) UpdateTimezone(userID uuid.UUID, timezone string) error {
	return r.db.Model(&model.StreakState{}).Where("user_id = ?", userID).Update("timezone", timezone).Error
}
