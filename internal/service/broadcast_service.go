package service

import (
	"fmt"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type BroadcastService interface {
	Create(authorID uuid.UUID, req dto.BroadcastCreateDTO) (*dto.BroadcastDTO, error)
	ListVisibleTo(institutionID *uint) ([]dto.BroadcastDTO, error)
	Delete(id uint) error
}

type broadcastService struct {
	broadcastRepo repository.BroadcastRepository
}

func NewBroadcastService(broadcastRepo repository.BroadcastRepository) BroadcastService {
	return &broadcastService{broadcastRepo: broadcastRepo}
}

func (s *broadcastService) Create(authorID uuid.UUID, req dto.BroadcastCreateDTO) (*dto.BroadcastDTO, error) {
	broadcast := model.Broadcast{
		InstitutionID: req.InstitutionID,
		AuthorID:      authorID,
		Title:         req.Title,
		Body:          req.Body,
	}
	if err := s.broadcastRepo.Create(&broadcast); err != nil {
		return nil, fmt.Errorf("creating broadcast: %w", err)
	}
	log.Info().Uint("broadcast_id", broadcast.ID).Str("author_id", authorID.String()).Msg("Broadcast created")

	var out dto.BroadcastDTO
	if err := copier.Copy(&out, &broadcast); err != nil {
		return nil, fmt.Errorf("preparing broadcast response: %w", err)
	}
	return &out, nil
}

func (s *broadcastService) ListVisibleTo(institutionID *uint) ([]dto.BroadcastDTO, error) {
	broadcasts, err := s.broadcastRepo.FindVisibleTo(institutionID)
	if err != nil {
		return nil, fmt.Errorf("fetching broadcasts: %w", err)
	}
	result := make([]dto.BroadcastDTO, 0, len(broadcasts))
	for i := range broadcasts {
		var out dto.BroadcastDTO
		if err := copier.Copy(&out, &broadcasts[i]); err != nil {
			log.Error().Err(err).Uint("broadcast_id", broadcasts[i].ID).Msg("Copying broadcast to DTO")
			continue
		}
		result = append(result, out)
	}
	return result, nil
}

func (s *broadcastService) Delete(id uint) error {
	return s.broadcastRepo.Delete(id)
}
