package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/language-gems/analytics-service/internal/services"
	"github.com/language-gems/analytics-service/internal/utils"
)

type HandlerManager struct {
	analyticsHandler *AnalyticsHandler
}

func NewHandlerManager(
	analyticsService services.AnalyticsService,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		analyticsHandler: NewAnalyticsHandler(analyticsService, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "analytics-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		analytics := v1.Group("/assignments/:id/analytics")
		{
			analytics.GET("/overview", hm.analyticsHandler.GetOverview)
			analytics.GET("/categories", hm.analyticsHandler.GetCategoryBreakdown)
			analytics.GET("/words", hm.analyticsHandler.GetWordDifficulty)
			analytics.GET("/words/:vocabulary_id/students", hm.analyticsHandler.GetWordStruggles)
			analytics.GET("/roster", hm.analyticsHandler.GetStudentRoster)
			analytics.GET("/report", hm.analyticsHandler.GetReport)
		}
	}
}
