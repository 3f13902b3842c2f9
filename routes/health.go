package routes

import (
	"net/http"
	"time"

	"opioid-chatbot/models"
	"opioid-chatbot/services"

	"github.com/gin-gonic/gin"
)

func SetupHealthRoutes(router *gin.Engine, doc *services.Document) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:        "healthy",
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			DocumentPages: doc.Pages(),
		})
	})
}
