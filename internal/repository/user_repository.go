package repository

import (
	"github.com/aptivo/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByInstitution(institutionID uint, role string) ([]model.User, error)
	UpdateTimezone(id uuid.UUID, timezone string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Institution").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByInstitution(institutionID uint, role string) ([]model.User, error) {
	var users []model.User
	query := r.db.Where("institution_id = ?", institutionID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateTimezone(id uuid.UUID, timezone string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("timezone", timezone).Error
}
