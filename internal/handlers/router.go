package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler *QuizHandler
}

func NewHandlerManager(
	quizService services.QuizService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler: NewQuizHandler(quizService, exportService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	quizzes := router.Group("/quizzes")
	{
		quizzes.GET("", hm.quizHandler.ListQuizzes)
		quizzes.GET("/export", hm.quizHandler.ExportQuizzes)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.POST("", hm.quizHandler.CreateQuiz)
		quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
	}
}

// CORSMiddleware allows the quiz builder frontend to call the API from
// its own origin.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
