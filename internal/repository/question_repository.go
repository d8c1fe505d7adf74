package repository

import (
	"github.com/aptivo/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByTopicID(topicID uint) ([]model.Question, error)
	FindByTopicName(institutionID uint, topicName string) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByTopicID(topicID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("topic_id = ?", topicID).Order("order_in_topic ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByTopicName(institutionID uint, topicName string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Joins("JOIN topics ON topics.id = questions.topic_id").
		Joins("JOIN subjects ON subjects.id = topics.subject_id").
		Where("subjects.institution_id = ? AND questions.topic_name = ?", institutionID, topicName).
		Order("questions.order_in_topic ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
