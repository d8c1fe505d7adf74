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

// CurriculumService manages the subject -> topic hierarchy, the question
// bank, and the markdown study materials. Student-facing question reads go
// through the student DTO, which never carries correctness metadata.
type CurriculumService interface {
	CreateSubject(institutionID uint, req dto.SubjectCreateDTO) (*dto.SubjectDTO, error)
	GetCurriculum(institutionID uint) ([]dto.SubjectDTO, error)
	DeleteSubject(id uint) error

	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	DeleteQuestion(id uint) error
	GetTopicQuestionsAdmin(topicID uint) ([]dto.QuestionAdminDTO, error)
	GetTopicQuestionsStudent(topicID uint) ([]dto.QuestionStudentDTO, error)

	CreateMaterial(authorID uuid.UUID, req dto.MaterialCreateDTO) (*dto.MaterialDTO, error)
	UpdateMaterial(id uint, req dto.MaterialUpdateDTO) (*dto.MaterialDTO, error)
	DeleteMaterial(id uint) error
	GetMaterial(id uint) (*dto.MaterialDTO, error)
	GetTopicMaterials(topicID uint) ([]dto.MaterialDTO, error)
}

type curriculumService struct {
	curriculumRepo repository.CurriculumRepository
	questionRepo   repository.QuestionRepository
	materialRepo   repository.MaterialRepository
}

func NewCurriculumService(
	curriculumRepo repository.CurriculumRepository,
	questionRepo repository.QuestionRepository,
	materialRepo repository.MaterialRepository,
) CurriculumService {
	return &curriculumService{
		curriculumRepo: curriculumRepo,
		questionRepo:   questionRepo,
		materialRepo:   materialRepo,
	}
}

func (s *curriculumService) CreateSubject(institutionID uint, req dto.SubjectCreateDTO) (*dto.SubjectDTO, error) {
	subject := model.Subject{
		InstitutionID: institutionID,
		Name:          req.Name,
		Description:   req.Description,
	}
	for _, t := range req.Topics {
		subject.Topics = append(subject.Topics, model.Topic{Name: t.Name, OrderNum: t.OrderNum})
	}
	if err := s.curriculumRepo.CreateSubject(&subject); err != nil {
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return subjectDTO(&subject), nil
}

func (s *curriculumService) GetCurriculum(institutionID uint) ([]dto.SubjectDTO, error) {
	subjects, err := s.curriculumRepo.FindSubjectsByInstitution(institutionID)
	if err != nil {
		return nil, fmt.Errorf("fetching curriculum for institution %d: %w", institutionID, err)
	}
	result := make([]dto.SubjectDTO, 0, len(subjects))
	for i := range subjects {
		result = append(result, *subjectDTO(&subjects[i]))
	}
	return result, nil
}

func (s *curriculumService) DeleteSubject(id uint) error {
	return s.curriculumRepo.DeleteSubject(id)
}

func (s *curriculumService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	if req.CorrectAnswerIndex >= len(req.Options) {
		return nil, fmt.Errorf("correct_answer_index %d out of range for %d options", req.CorrectAnswerIndex, len(req.Options))
	}
	topic, err := s.curriculumRepo.FindTopicByID(req.TopicID)
	if err != nil {
		return nil, fmt.Errorf("topic %d not found: %w", req.TopicID, err)
	}
	subject, err := s.curriculumRepo.FindSubjectByID(topic.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("subject %d not found: %w", topic.SubjectID, err)
	}

	question := model.Question{
		TopicID:            req.TopicID,
		Prompt:             req.Prompt,
		Options:            req.Options,
		CorrectAnswerIndex: req.CorrectAnswerIndex,
		Explanation:        req.Explanation,
		Subject:            subject.Name,
		TopicName:          topic.Name,
		OrderInTopic:       req.OrderInTopic,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return questionAdminDTO(&question), nil
}

func (s *curriculumService) UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	if req.CorrectAnswerIndex >= len(req.Options) {
		return nil, fmt.Errorf("correct_answer_index %d out of range for %d options", req.CorrectAnswerIndex, len(req.Options))
	}
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question %d not found: %w", id, err)
	}

	// Existing attempts keep the correctness they were graded with; an
	// edit here never recomputes them.
	question.Prompt = req.Prompt
	question.Options = req.Options
	question.CorrectAnswerIndex = req.CorrectAnswerIndex
	question.Explanation = req.Explanation
	question.OrderInTopic = req.OrderInTopic

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}
	return questionAdminDTO(question), nil
}

func (s *curriculumService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

func (s *curriculumService) GetTopicQuestionsAdmin(topicID uint) ([]dto.QuestionAdminDTO, error) {
	questions, err := s.questionRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for topic %d: %w", topicID, err)
	}
	result := make([]dto.QuestionAdminDTO, 0, len(questions))
	for i := range questions {
		result = append(result, *questionAdminDTO(&questions[i]))
	}
	return result, nil
}

func (s *curriculumService) GetTopicQuestionsStudent(topicID uint) ([]dto.QuestionStudentDTO, error) {
	questions, err := s.questionRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for topic %d: %w", topicID, err)
	}
	result := make([]dto.QuestionStudentDTO, 0, len(questions))
	for i := range questions {
		var qDTO dto.QuestionStudentDTO
		if err := copier.Copy(&qDTO, &questions[i]); err != nil {
			log.Error().Err(err).Uint("question_id", questions[i].ID).Msg("Copying question to student DTO")
			continue
		}
		result = append(result, qDTO)
	}
	return result, nil
}

func (s *curriculumService) CreateMaterial(authorID uuid.UUID, req dto.MaterialCreateDTO) (*dto.MaterialDTO, error) {
	if _, err := s.curriculumRepo.FindTopicByID(req.TopicID); err != nil {
		return nil, fmt.Errorf("topic %d not found: %w", req.TopicID, err)
	}
	material := model.StudyMaterial{
		TopicID:  req.TopicID,
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	if err := s.materialRepo.Create(&material); err != nil {
		return nil, fmt.Errorf("creating material: %w", err)
	}
	return materialDTO(&material), nil
}

func (s *curriculumService) UpdateMaterial(id uint, req dto.MaterialUpdateDTO) (*dto.MaterialDTO, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("material %d not found: %w", id, err)
	}
	material.Title = req.Title
	material.Content = req.Content
	if err := s.materialRepo.Update(material); err != nil {
		return nil, fmt.Errorf("updating material %d: %w", id, err)
	}
	return materialDTO(material), nil
}

func (s *curriculumService) DeleteMaterial(id uint) error {
	return s.materialRepo.Delete(id)
}

func (s *curriculumService) GetMaterial(id uint) (*dto.MaterialDTO, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("material %d not found: %w", id, err)
	}
	return materialDTO(material), nil
}

func (s *curriculumService) GetTopicMaterials(topicID uint) ([]dto.MaterialDTO, error) {
	materials, err := s.materialRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, fmt.Errorf("fetching materials for topic %d: %w", topicID, err)
	}
	result := make([]dto.MaterialDTO, 0, len(materials))
	for i := range materials {
		result = append(result, *materialDTO(&materials[i]))
	}
	return result, nil
}

func subjectDTO(subject *model.Subject) *dto.SubjectDTO {
	out := &dto.SubjectDTO{
		ID:          subject.ID,
		Name:        subject.Name,
		Description: subject.Description,
		Topics:      make([]dto.TopicDTO, 0, len(subject.Topics)),
		CreatedAt:   subject.CreatedAt,
	}
	for _, t := range subject.Topics {
		out.Topics = append(out.Topics, dto.TopicDTO{ID: t.ID, Name: t.Name, OrderNum: t.OrderNum})
	}
	return out
}

func questionAdminDTO(question *model.Question) *dto.QuestionAdminDTO {
	var out dto.QuestionAdminDTO
	if err := copier.Copy(&out, question); err != nil {
		log.Error().Err(err).Uint("question_id", question.ID).Msg("Copying question to admin DTO")
	}
	return &out
}

func materialDTO(material *model.StudyMaterial) *dto.MaterialDTO {
	var out dto.MaterialDTO
	if err := copier.Copy(&out, material); err != nil {
		log.Error().Err(err).Uint("material_id", material.ID).Msg("Copying material to DTO")
	}
	return &out
}
