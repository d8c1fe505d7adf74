package admin

import (
	"net/http"
	"strconv"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/middleware"
	"github.com/aptivo/backend/internal/model"
	"github.com/aptivo/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AdminController serves the institution-admin surface: curriculum and
// question-bank management, study materials, broadcasts and the
// institution dashboard.
type AdminController struct {
	curriculumService service.CurriculumService
	analyticsService  service.AnalyticsService
	broadcastService  service.BroadcastService
}

func NewAdminController(
	curriculumService service.CurriculumService,
	analyticsService service.AnalyticsService,
	broadcastService service.BroadcastService,
) *AdminController {
	return &AdminController{
		curriculumService: curriculumService,
		analyticsService:  analyticsService,
		broadcastService:  broadcastService,
	}
}

// CreateSubject godoc
// @Summary Create a subject (optionally with nested topics)
// @Tags Admin - Curriculum
// @Accept json
// @Produce json
// @Param subject body dto.SubjectCreateDTO true "Subject with optional topics"
// @Success 201 {object} dto.SubjectDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/subjects [post]
func (c *AdminController) CreateSubject(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	if user.InstitutionID == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Account is not linked to an institution"})
		return
	}
	var req dto.SubjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	subject, err := c.curriculumService.CreateSubject(*user.InstitutionID, req)
	if err != nil {
		log.Error().Err(err).Msg("CreateSubject: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create subject"})
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// GetCurriculum godoc
// @Summary Get the admin's institution curriculum
// @Tags Admin - Curriculum
// @Produce json
// @Success 200 {array} dto.SubjectDTO
// @Router /admin/curriculum [get]
func (c *AdminController) GetCurriculum(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	if user.InstitutionID == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Account is not linked to an institution"})
		return
	}
	curriculum, err := c.curriculumService.GetCurriculum(*user.InstitutionID)
	if err != nil {
		log.Error().Err(err).Msg("Admin GetCurriculum: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load curriculum"})
		return
	}
	ctx.JSON(http.StatusOK, curriculum)
}

// CreateQuestion godoc
// @Summary Add an MCQ to the question bank
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question with options and 0-based correct index"
// @Success 201 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.curriculumService.CreateQuestion(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary Update an MCQ
// @Description Editing a question never recomputes the correctness of attempts already recorded against it.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateDTO true "New question content"
// @Success 200 {object} dto.QuestionAdminDTO
// @Router /admin/questions/{question_id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID"})
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.curriculumService.UpdateQuestion(uint(questionID), req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete an MCQ
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/questions/{question_id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID"})
		return
	}
	if err := c.curriculumService.DeleteQuestion(uint(questionID)); err != nil {
		log.Error().Err(err).Msg("DeleteQuestion: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete question"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}

// GetTopicQuestions godoc
// @Summary List a topic's questions with correctness metadata
// @Tags Admin - Questions
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Success 200 {array} dto.QuestionAdminDTO
// @Router /admin/topics/{topic_id}/questions [get]
func (c *AdminController) GetTopicQuestions(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("topic_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid topic ID"})
		return
	}
	questions, err := c.curriculumService.GetTopicQuestionsAdmin(uint(topicID))
	if err != nil {
		log.Error().Err(err).Msg("GetTopicQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// CreateMaterial godoc
// @Summary Create a markdown study material for a topic
// @Tags Admin - Materials
// @Accept json
// @Produce json
// @Param material body dto.MaterialCreateDTO true "Material"
// @Success 201 {object} dto.MaterialDTO
// @Router /admin/materials [post]
func (c *AdminController) CreateMaterial(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	var req dto.MaterialCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	material, err := c.curriculumService.CreateMaterial(user.ID, req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateMaterial: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, material)
}

// UpdateMaterial godoc
// @Summary Update a study material
// @Tags Admin - Materials
// @Accept json
// @Produce json
// @Param material_id path int true "Material ID"
// @Param material body dto.MaterialUpdateDTO true "New content"
// @Success 200 {object} dto.MaterialDTO
// @Router /admin/materials/{material_id} [put]
func (c *AdminController) UpdateMaterial(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Param("material_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid material ID"})
		return
	}
	var req dto.MaterialUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	material, err := c.curriculumService.UpdateMaterial(uint(materialID), req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, material)
}

// DeleteMaterial godoc
// @Summary Delete a study material
// @Tags Admin - Materials
// @Produce json
// @Param material_id path int true "Material ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/materials/{material_id} [delete]
func (c *AdminController) DeleteMaterial(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Param("material_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid material ID"})
		return
	}
	if err := c.curriculumService.DeleteMaterial(uint(materialID)); err != nil {
		log.Error().Err(err).Msg("DeleteMaterial: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete material"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Material deleted"})
}

// GetAnalytics godoc
// @Summary Get the institution dashboard analytics
// @Description Totals, struggling topics (<60% accuracy) and a 7-day engagement trend of attempt counts.
// @Tags Admin - Dashboard
// @Produce json
// @Success 200 {object} dto.InstitutionAnalyticsDTO
// @Router /admin/analytics [get]
func (c *AdminController) GetAnalytics(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	if user.InstitutionID == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Account is not linked to an institution"})
		return
	}
	analytics, err := c.analyticsService.GetInstitutionAnalytics(*user.InstitutionID, user.Timezone)
	if err != nil {
		log.Error().Err(err).Msg("Admin GetAnalytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load analytics"})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// CreateBroadcast godoc
// @Summary Publish a broadcast to the institution's students
// @Tags Admin - Broadcasts
// @Accept json
// @Produce json
// @Param broadcast body dto.BroadcastCreateDTO true "Broadcast"
// @Success 201 {object} dto.BroadcastDTO
// @Router /admin/broadcasts [post]
func (c *AdminController) CreateBroadcast(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	var req dto.BroadcastCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	// Institution admins broadcast only to their own institution; super
	// admins may leave the scope empty for a global announcement.
	if user.Role == model.RoleInstitutionAdmin {
		req.InstitutionID = user.InstitutionID
	}
	broadcast, err := c.broadcastService.Create(user.ID, req)
	if err != nil {
		log.Error().Err(err).Msg("CreateBroadcast: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create broadcast"})
		return
	}
	ctx.JSON(http.StatusCreated, broadcast)
}
