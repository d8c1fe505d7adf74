package student

import (
	"net/http"
	"strconv"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/middleware"
	"github.com/aptivo/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DashboardController struct {
	analyticsService  service.AnalyticsService
	streakService     service.StreakService
	attemptService    service.AttemptService
	curriculumService service.CurriculumService
	broadcastService  service.BroadcastService
}

func NewDashboardController(
	analyticsService service.AnalyticsService,
	streakService service.StreakService,
	attemptService service.AttemptService,
	curriculumService service.CurriculumService,
	broadcastService service.BroadcastService,
) *DashboardController {
	return &DashboardController{
		analyticsService:  analyticsService,
		streakService:     streakService,
		attemptService:    attemptService,
		curriculumService: curriculumService,
		broadcastService:  broadcastService,
	}
}

// GetAnalytics godoc
// @Summary Get the student's practice analytics
// @Description Accuracy, per-topic mastery, a 7-day trend and the latest activity. Zero history renders zeros, not errors.
// @Tags Student - Dashboard
// @Produce json
// @Success 200 {object} dto.StudentAnalyticsDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/analytics [get]
func (c *DashboardController) GetAnalytics(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	analytics, err := c.analyticsService.GetStudentAnalytics(user.ID, user.Timezone)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("GetAnalytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load analytics"})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// GetStreak godoc
// @Summary Get the student's streak state and today's progress
// @Description The optional tz query reports the runtime-detected timezone; a mismatch with the stored one triggers a background sync.
// @Tags Student - Dashboard
// @Produce json
// @Param tz query string false "Runtime-detected IANA timezone"
// @Success 200 {object} dto.StreakDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/streak [get]
func (c *DashboardController) GetStreak(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	streak, err := c.streakService.GetStreak(user.ID, ctx.Query("tz"))
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("GetStreak: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load streak"})
		return
	}
	ctx.JSON(http.StatusOK, streak)
}

// GetMistakes godoc
// @Summary List the student's mistake-review entries
// @Tags Student - Dashboard
// @Produce json
// @Success 200 {array} model.MistakeLogEntry
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/mistakes [get]
func (c *DashboardController) GetMistakes(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	entries, err := c.attemptService.GetMistakes(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("GetMistakes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load mistakes"})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetCurriculum godoc
// @Summary Get the institution's subject/topic hierarchy
// @Tags Student - Curriculum
// @Produce json
// @Success 200 {array} dto.SubjectDTO
// @Failure 400 {object} dto.ErrorResponse "Student has no institution"
// @Router /student/curriculum [get]
func (c *DashboardController) GetCurriculum(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	if user.InstitutionID == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Account is not linked to an institution"})
		return
	}
	curriculum, err := c.curriculumService.GetCurriculum(*user.InstitutionID)
	if err != nil {
		log.Error().Err(err).Msg("GetCurriculum: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load curriculum"})
		return
	}
	ctx.JSON(http.StatusOK, curriculum)
}

// GetTopicMaterials godoc
// @Summary List a topic's study materials (markdown)
// @Tags Student - Curriculum
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Success 200 {array} dto.MaterialDTO
// @Router /student/topics/{topic_id}/materials [get]
func (c *DashboardController) GetTopicMaterials(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("topic_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid topic ID"})
		return
	}
	materials, err := c.curriculumService.GetTopicMaterials(uint(topicID))
	if err != nil {
		log.Error().Err(err).Msg("GetTopicMaterials: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load materials"})
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// GetMaterial godoc
// @Summary Get one study material
// @Tags Student - Curriculum
// @Produce json
// @Param material_id path int true "Material ID"
// @Success 200 {object} dto.MaterialDTO
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Router /student/materials/{material_id} [get]
func (c *DashboardController) GetMaterial(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Param("material_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid material ID"})
		return
	}
	material, err := c.curriculumService.GetMaterial(uint(materialID))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, material)
}

// GetBroadcasts godoc
// @Summary List broadcasts visible to the student
// @Tags Student - Dashboard
// @Produce json
// @Success 200 {array} dto.BroadcastDTO
// @Router /student/broadcasts [get]
func (c *DashboardController) GetBroadcasts(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	broadcasts, err := c.broadcastService.ListVisibleTo(user.InstitutionID)
	if err != nil {
		log.Error().Err(err).Msg("GetBroadcasts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load broadcasts"})
		return
	}
	ctx.JSON(http.StatusOK, broadcasts)
}
