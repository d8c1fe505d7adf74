package repository

import (
	"github.com/aptivo/backend/internal/model"
	"gorm.io/gorm"
)

type InstitutionRepository interface {
	Create(institution *model.Institution) error
	FindByID(id uint) (*model.Institution, error)
	FindAll() ([]model.Institution, error)
	FindByStatus(status string) ([]model.Institution, error)
	UpdateStatus(id uint, status string) error
}

type institutionRepository struct {
	db *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) InstitutionRepository {
	return &institutionRepository{db: db}
}

func (r *institutionRepository) Create(institution *model.Institution) error {
	return r.db.Create(institution).Error
}

func (r *institutionRepository) FindByID(id uint) (*model.Institution, error) {
	var institution model.Institution
	if err := r.db.First(&institution, id).Error; err != nil {
		return nil, err
	}
	return &institution, nil
}

func (r *institutionRepository) FindAll() ([]model.Institution, error) {
	var institutions []model.Institution
	err := r.db.Order("created_at DESC").Find(&institutions).Error
	return institutions, err
}

func (r *institutionRepository) FindByStatus(status string) ([]model.Institution, error) {
	var institutions []model.Institution
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&institutions).Error
	return institutions, err
}

func (r *institutionRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Institution{}).Where("id = ?", id).Update("status", status).Error
}
