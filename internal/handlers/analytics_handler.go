package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/language-gems/analytics-service/internal/services"
	"github.com/language-gems/analytics-service/internal/utils"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	validator        *utils.Validator
}

func NewAnalyticsHandler(
	analyticsService services.AnalyticsService,
	validator *utils.Validator,
	logger utils.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		validator:        validator,
	}
}

// GetOverview returns completion and success statistics for one
// assignment
// @Summary Assignment overview
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.AssignmentOverview
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /assignments/{id}/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Getting assignment overview", "assignment_id", id)

	overview, err := h.analyticsService.GetOverview(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetCategoryBreakdown returns per-category performance buckets
// @Summary Category performance breakdown
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.CategoryBreakdown
// @Success 204 "No breakdown data"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/analytics/categories [get]
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	breakdown, err := h.analyticsService.GetCategoryBreakdown(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if breakdown == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// GetWordDifficulty returns the confidence-tiered word ranking
// @Summary Word difficulty ranking
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {array} models.WordDifficulty
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/analytics/words [get]
func (h *AnalyticsHandler) GetWordDifficulty(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	ranking, err := h.analyticsService.GetWordDifficultyRanking(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// GetStudentRoster returns per-student progress with intervention flags
// @Summary Student roster with intervention flags
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {array} models.StudentProgress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /assignments/{id}/analytics/roster [get]
func (h *AnalyticsHandler) GetStudentRoster(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	roster, err := h.analyticsService.GetStudentRoster(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// GetWordStruggles returns per-student history with one vocabulary item
// @Summary Per-student struggles with one word
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Param vocabulary_id path string true "Vocabulary ID"
// @Success 200 {array} models.StudentWordStruggle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/analytics/words/{vocabulary_id}/students [get]
func (h *AnalyticsHandler) GetWordStruggles(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	vocabularyID := ParseStringIDParam(c, "vocabulary_id")
	if vocabularyID == "" {
		return
	}

	struggles, err := h.analyticsService.GetWordStruggles(c.Request.Context(), id, vocabularyID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, struggles)
}

// GetReport returns all four analytics views computed from one shared
// fetch
// @Summary Combined assignment report
// @Tags analytics
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.AssignmentReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /assignments/{id}/analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Generating assignment report", "assignment_id", id)

	report, err := h.analyticsService.GetAssignmentReport(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
