package admin

import (
	"net/http"
	"strconv"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SuperAdminController serves the platform-level surface: institution
// approvals and global analytics.
type SuperAdminController struct {
	institutionService service.InstitutionService
	analyticsService   service.AnalyticsService
}

func NewSuperAdminController(institutionService service.InstitutionService, analyticsService service.AnalyticsService) *SuperAdminController {
	return &SuperAdminController{institutionService: institutionService, analyticsService: analyticsService}
}

// RegisterInstitution godoc
// @Summary Register an institution (starts pending approval)
// @Tags Super Admin - Institutions
// @Accept json
// @Produce json
// @Param institution body dto.InstitutionCreateDTO true "Institution"
// @Success 201 {object} dto.InstitutionDTO
// @Router /superadmin/institutions [post]
func (c *SuperAdminController) RegisterInstitution(ctx *gin.Context) {
	var req dto.InstitutionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	institution, err := c.institutionService.Register(req)
	if err != nil {
		log.Error().Err(err).Msg("RegisterInstitution: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register institution"})
		return
	}
	ctx.JSON(http.StatusCreated, institution)
}

// ListInstitutions godoc
// @Summary List all institutions
// @Tags Super Admin - Institutions
// @Produce json
// @Param status query string false "Filter: pending"
// @Success 200 {array} dto.InstitutionDTO
// @Router /superadmin/institutions [get]
func (c *SuperAdminController) ListInstitutions(ctx *gin.Context) {
	var (
		institutions []dto.InstitutionDTO
		err          error
	)
	if ctx.Query("status") == "pending" {
		institutions, err = c.institutionService.ListPending()
	} else {
		institutions, err = c.institutionService.ListAll()
	}
	if err != nil {
		log.Error().Err(err).Msg("ListInstitutions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load institutions"})
		return
	}
	ctx.JSON(http.StatusOK, institutions)
}

// ReviewInstitution godoc
// @Summary Approve or reject a pending institution
// @Tags Super Admin - Institutions
// @Accept json
// @Produce json
// @Param institution_id path int true "Institution ID"
// @Param review body dto.InstitutionReviewDTO true "Approval decision"
// @Success 200 {object} dto.InstitutionDTO
// @Router /superadmin/institutions/{institution_id}/review [post]
func (c *SuperAdminController) ReviewInstitution(ctx *gin.Context) {
	institutionID, err := strconv.ParseUint(ctx.Param("institution_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid institution ID"})
		return
	}
	var req dto.InstitutionReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	institution, err := c.institutionService.Review(uint(institutionID), req.Approve)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, institution)
}

// GetGlobalAnalytics godoc
// @Summary Get platform-wide analytics with a trailing-24h hourly trend
// @Tags Super Admin - Dashboard
// @Produce json
// @Success 200 {object} dto.GlobalAnalyticsDTO
// @Router /superadmin/analytics [get]
func (c *SuperAdminController) GetGlobalAnalytics(ctx *gin.Context) {
	analytics, err := c.analyticsService.GetGlobalAnalytics()
	if err != nil {
		log.Error().Err(err).Msg("GetGlobalAnalytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load analytics"})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}
