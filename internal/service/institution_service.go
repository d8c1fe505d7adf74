package service

import (
	"fmt"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// InstitutionService covers registration and the super-admin approval
// workflow: institutions start pending and become approved or rejected.
type InstitutionService interface {
	Register(req dto.InstitutionCreateDTO) (*dto.InstitutionDTO, error)
	ListAll() ([]dto.InstitutionDTO, error)
	ListPending() ([]dto.InstitutionDTO, error)
	Review(id uint, approve bool) (*dto.InstitutionDTO, error)
}

type institutionService struct {
	institutionRepo repository.InstitutionRepository
}

func NewInstitutionService(institutionRepo repository.InstitutionRepository) InstitutionService {
	return &institutionService{institutionRepo: institutionRepo}
}

func (s *institutionService) Register(req dto.InstitutionCreateDTO) (*dto.InstitutionDTO, error) {
	institution := model.Institution{Name: req.Name, Status: model.InstitutionPending}
	if err := s.institutionRepo.Create(&institution); err != nil {
		return nil, fmt.Errorf("registering institution: %w", err)
	}
	return institutionDTO(&institution), nil
}

func (s *institutionService) ListAll() ([]dto.InstitutionDTO, error) {
	institutions, err := s.institutionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching institutions: %w", err)
	}
	return institutionDTOs(institutions), nil
}

func (s *institutionService) ListPending() ([]dto.InstitutionDTO, error) {
	institutions, err := s.institutionRepo.FindByStatus(model.InstitutionPending)
	if err != nil {
		return nil, fmt.Errorf("fetching pending institutions: %w", err)
	}
	return institutionDTOs(institutions), nil
}

func (s *institutionService) Review(id uint, approve bool) (*dto.InstitutionDTO, error) {
	status := model.InstitutionRejected
	if approve {
		status = model.InstitutionApproved
	}
	if err := s.institutionRepo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("reviewing institution %d: %w", id, err)
	}
	institution, err := s.institutionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("institution %d not found: %w", id, err)
	}
	log.Info().Uint("institution_id", id).Str("status", status).Msg("Institution reviewed")
	return institutionDTO(institution), nil
}

func institutionDTO(institution *model.Institution) *dto.InstitutionDTO {
	var out dto.InstitutionDTO
	if err := copier.Copy(&out, institution); err != nil {
		log.Error().Err(err).Uint("institution_id", institution.ID).Msg("Copying institution to DTO")
	}
	return &out
}

func institutionDTOs(institutions []model.Institution) []dto.InstitutionDTO {
	result := make([]dto.InstitutionDTO, 0, len(institutions))
	for i := range institutions {
		result = append(result, *institutionDTO(&institutions[i]))
	}
	return result
}
