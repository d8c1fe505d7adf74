package student

import (
	"errors"
	"net/http"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/middleware"
	"github.com/aptivo/backend/internal/navigation"
	"github.com/aptivo/backend/internal/service"
	"github.com/aptivo/backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PracticeController struct {
	practiceService service.PracticeService
}

func NewPracticeController(practiceService service.PracticeService) *PracticeController {
	return &PracticeController{practiceService: practiceService}
}

// StartSession godoc
// @Summary Start a practice session over a topic's ordered questions
// @Tags Student - Practice
// @Accept json
// @Produce json
// @Param request body dto.SessionStartDTO true "Topic to practice"
// @Success 201 {object} dto.SessionStateDTO "Phase is no_content when the topic has no questions"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /student/practice/sessions [post]
func (c *PracticeController) StartSession(ctx *gin.Context) {
	var req dto.SessionStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, _ := middleware.CurrentUser(ctx)
	state, err := c.practiceService.StartSession(user.ID, req.TopicID)
	if err != nil {
		log.Warn().Err(err).Uint("topic_id", req.TopicID).Msg("StartSession: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

// GetSession godoc
// @Summary Get the current snapshot of a practice session
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /student/practice/sessions/{session_id} [get]
func (c *PracticeController) GetSession(ctx *gin.Context) {
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.GetSession(studentID, sessionID)
	})
}

// Select godoc
// @Summary Select an option for the current question
// @Tags Student - Practice
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body dto.SelectOptionDTO true "0-based option index"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 409 {object} dto.ErrorResponse "Selection frozen after submit"
// @Router /student/practice/sessions/{session_id}/select [post]
func (c *PracticeController) Select(ctx *gin.Context) {
	var req dto.SelectOptionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.Select(studentID, sessionID, req.OptionIndex)
	})
}

// Submit godoc
// @Summary Submit the selected option and receive feedback
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SubmitFeedbackDTO
// @Failure 409 {object} dto.ErrorResponse "No selection or already submitted"
// @Router /student/practice/sessions/{session_id}/submit [post]
func (c *PracticeController) Submit(ctx *gin.Context) {
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.Submit(studentID, sessionID)
	})
}

// Advance godoc
// @Summary Advance to the next question (or finish)
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 409 {object} dto.ErrorResponse "Current question not submitted"
// @Router /student/practice/sessions/{session_id}/advance [post]
func (c *PracticeController) Advance(ctx *gin.Context) {
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.Advance(studentID, sessionID)
	})
}

// Restart godoc
// @Summary Restart a finished session over the same question order
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 409 {object} dto.ErrorResponse "Session not finished"
// @Router /student/practice/sessions/{session_id}/restart [post]
func (c *PracticeController) Restart(ctx *gin.Context) {
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.Restart(studentID, sessionID)
	})
}

// Summary godoc
// @Summary Get the terminal summary of a finished session
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 409 {object} dto.ErrorResponse "Session not finished"
// @Router /student/practice/sessions/{session_id}/summary [get]
func (c *PracticeController) Summary(ctx *gin.Context) {
	c.withSession(ctx, func(studentID, sessionID uuid.UUID) (interface{}, error) {
		return c.practiceService.Summary(studentID, sessionID)
	})
}

// Abandon godoc
// @Summary Discard a session without finishing it
// @Tags Student - Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.MessageResponse
// @Router /student/practice/sessions/{session_id} [delete]
func (c *PracticeController) Abandon(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID"})
		return
	}
	if err := c.practiceService.Abandon(user.ID, sessionID); err != nil {
		ctx.JSON(sessionErrorStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Session discarded"})
}

// SwitchMode godoc
// @Summary Decide how a mode switch should be realized for a given path
// @Description Pure route computation: same mode is a no-op, learn-shaped paths navigate, anything else is local state.
// @Tags Student - Practice
// @Accept json
// @Produce json
// @Param request body dto.ModeSwitchDTO true "Current path and requested mode"
// @Success 200 {object} dto.ModeDecisionDTO
// @Router /student/mode/switch [post]
func (c *PracticeController) SwitchMode(ctx *gin.Context) {
	var req dto.ModeSwitchDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	decision := navigation.Switch(req.Path, navigation.Mode(req.Mode))
	ctx.JSON(http.StatusOK, dto.ModeDecisionDTO{
		Mode:   req.Mode,
		Action: string(decision.Action),
		Target: decision.Target,
	})
}

func (c *PracticeController) withSession(ctx *gin.Context, fn func(studentID, sessionID uuid.UUID) (interface{}, error)) {
	user, _ := middleware.CurrentUser(ctx)
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID"})
		return
	}

	result, err := fn(user.ID, sessionID)
	if err != nil {
		ctx.JSON(sessionErrorStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		return http.StatusForbidden
	case errors.Is(err, session.ErrInvalidOption):
		return http.StatusBadRequest
	default:
		// Illegal transitions (submit without selection, advance before
		// submit, restart before finish) are state conflicts.
		return http.StatusConflict
	}
}
