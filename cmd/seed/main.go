// Command seed populates the database with a couple of sample quizzes.
package main

import (
	"context"
	"os"

	"github.com/quizforge/quiz-service/internal/config"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories/postgres"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
	"github.com/quizforge/quiz-service/internal/validator"
	"github.com/quizforge/quiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	logger := utils.NewDevelopmentLogger()
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Quiz{}, &models.Question{}); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	quizRepo := postgres.NewQuizPostgreSQL(db)
	quizService := services.NewQuizService(quizRepo, validator.New(), nil, nil, slogger)

	ctx := context.Background()
	for _, req := range sampleQuizzes() {
		quiz, err := quizService.Create(ctx, req)
		if err != nil {
			logger.Error("Failed to seed quiz", "title", req.Title, "error", err)
			os.Exit(1)
		}
		logger.Info("Created quiz", "quiz_id", quiz.ID, "title", quiz.Title, "question_count", len(quiz.Questions))
	}

	logger.Info("Database seeded successfully")
}

func sampleQuizzes() []*services.CreateQuizRequest {
	return []*services.CreateQuizRequest{
		{
			Title: "JavaScript basics",
			Questions: []services.CreateQuestionRequest{
				{
					Text:           "JavaScript is compiled language",
					Type:           models.QuestionBoolean,
					Options:        []string{"True", "False"},
					CorrectAnswers: []string{"False"},
				},
				{
					Text:           "What is the output of typeof null?",
					Type:           models.QuestionInput,
					CorrectAnswers: []string{"object"},
				},
				{
					Text:           "Which of the following are JavaScript data types?",
					Type:           models.QuestionCheckbox,
					Options:        []string{"String", "Number", "Boolean", "Array", "Object"},
					CorrectAnswers: []string{"String", "Number", "Boolean", "Object"},
				},
			},
		},
		{
			Title: "React Fundamentals",
			Questions: []services.CreateQuestionRequest{
				{
					Text:           "React components must return a single element",
					Type:           models.QuestionBoolean,
					Options:        []string{"True", "False"},
					CorrectAnswers: []string{"False"},
				},
				{
					Text:           "What hook is used for managing state in functional components?",
					Type:           models.QuestionInput,
					CorrectAnswers: []string{"useState"},
				},
				{
					Text:           "Which are valid React hooks?",
					Type:           models.QuestionCheckbox,
					Options:        []string{"useState", "useEffect", "useContext", "useRouter", "useCallback"},
					CorrectAnswers: []string{"useState", "useEffect", "useContext", "useCallback"},
				},
			},
		},
	}
}
