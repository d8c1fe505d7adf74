package repository

import (
	"github.com/aptivo/backend/internal/model"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.StudyMaterial) error
	FindByID(id uint) (*model.StudyMaterial, error)
	FindByTopicID(topicID uint) ([]model.StudyMaterial, error)
	Update(material *model.StudyMaterial) error
	Delete(id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(material *model.StudyMaterial) error {
	return r.db.Create(material).Error
}

func (r *materialRepository) FindByID(id uint) (*model.StudyMaterial, error) {
	var material model.StudyMaterial
	if err := r.db.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByTopicID(topicID uint) ([]model.StudyMaterial, error) {
	var materials []model.StudyMaterial
	err := r.db.Where("topic_id = ?", topicID).Order("created_at ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Update(material *model.StudyMaterial) error {
	return r.db.Save(material).Error
}

func (r *materialRepository) Delete(id uint) error {
	return r.db.Delete(&model.StudyMaterial{}, id).Error
}
