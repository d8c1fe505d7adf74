package repository

import (
	"github.com/aptivo/backend/internal/model"
	"gorm.io/gorm"
)

type CurriculumRepository interface {
	CreateSubject(subject *model.Subject) error
	CreateTopic(topic *model.Topic) error
	FindSubjectByID(id uint) (*model.Subject, error)
	FindSubjectsByInstitution(institutionID uint) ([]model.Subject, error)
	FindTopicByID(id uint) (*model.Topic, error)
	DeleteSubject(id uint) error
	DeleteTopic(id uint) error
}

type curriculumRepository struct {
	db *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) CreateSubject(subject *model.Subject) error {
	// GORM creates nested topics when subject.Topics is populated.
	return r.db.Create(subject).Error
}

func (r *curriculumRepository) CreateTopic(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *curriculumRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.order_num ASC")
	}).First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *curriculumRepository) FindSubjectsByInstitution(institutionID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.Where("institution_id = ?", institutionID).
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topics.order_num ASC")
		}).
		Order("subjects.created_at ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *curriculumRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *curriculumRepository) DeleteSubject(id uint) error {
	return r.db.Delete(&model.Subject{}, id).Error
}

func (r *curriculumRepository) DeleteTopic(id uint) error {
	return r.db.Delete(&model.Topic{}, id).Error
}
