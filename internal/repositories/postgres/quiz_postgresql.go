package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

// List retrieves quiz summaries ordered by creation time descending.
// Question counts come from a join aggregate so they can never drift from
// the questions table.
func (r *QuizPostgreSQL) List(ctx context.Context) ([]repositories.QuizSummary, error) {
	var summaries []repositories.QuizSummary
	err := r.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.created_at, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Group("quizzes.id").
		Order("quizzes.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if summaries == nil {
		summaries = []repositories.QuizSummary{}
	}
	return summaries, nil
}

// GetByID retrieves a quiz with its questions ordered ascending by position.
func (r *QuizPostgreSQL) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

// Create persists the quiz and all its questions in one transaction.
// Question order is assigned from slice position; any caller-supplied
// order values are overwritten.
func (r *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
			quiz.Questions[i].Order = i
		}

		if len(quiz.Questions) > 0 {
			if err := tx.Create(&quiz.Questions).Error; err != nil {
				return fmt.Errorf("failed to create quiz questions: %w", err)
			}
		}

		return nil
	})
}

// Delete removes the quiz and cascades removal of its questions. Returns
// gorm.ErrRecordNotFound when the quiz does not exist so the caller can
// distinguish a missing id from a successful delete.
func (r *QuizPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete quiz questions: %w", err)
		}

		result := tx.Delete(&models.Quiz{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete quiz: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
