package repository

import (
	"github.com/aptivo/backend/internal/model"
	"gorm.io/gorm"
)

type BroadcastRepository interface {
	Create(broadcast *model.Broadcast) error
	FindVisibleTo(institutionID *uint) ([]model.Broadcast, error)
	FindAll() ([]model.Broadcast, error)
	Delete(id uint) error
}

type broadcastRepository struct {
	db *gorm.DB
}

func NewBroadcastRepository(db *gorm.DB) BroadcastRepository {
	return &broadcastRepository{db: db}
}

func (r *broadcastRepository) Create(broadcast *model.Broadcast) error {
	return r.db.Create(broadcast).Error
}

// FindVisibleTo returns global broadcasts plus the ones scoped to the given
// institution, newest first.
func (r *broadcastRepository) FindVisibleTo(institutionID *uint) ([]model.Broadcast, error) {
	var broadcasts []model.Broadcast
	query := r.db.Where("institution_id IS NULL")
	if institutionID != nil {
		query = r.db.Where("institution_id IS NULL OR institution_id = ?", *institutionID)
	}
	err := query.Order("created_at DESC").Find(&broadcasts).Error
	return broadcasts, err
}

func (r *broadcastRepository) FindAll() ([]model.Broadcast, error) {
	var broadcasts []model.Broadcast
	err := r.db.Order("created_at DESC").Find(&broadcasts).Error
	return broadcasts, err
}

func (r *broadcastRepository) Delete(id uint) error {
	return r.db.Delete(&model.Broadcast{}, id).Error
}
