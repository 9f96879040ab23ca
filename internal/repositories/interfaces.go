package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/models"
)

// QuizSummary is the projection returned by List. QuestionCount is a
// derived aggregate computed from the questions table, not stored.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// QuizRepository provides durable storage operations for quizzes. Each
// operation is atomic with respect to a single quiz: Create persists the
// quiz and all its questions as one unit, Delete removes the quiz and
// cascades to its questions.
type QuizRepository interface {
	// List returns quiz summaries ordered by creation time, most recent first.
	List(ctx context.Context) ([]QuizSummary, error)

	// GetByID returns the full quiz with questions ordered ascending by
	// position. Returns a not-found error if the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Quiz, error)

	// Create persists the quiz and its questions all-or-nothing, assigning
	// fresh identifiers and zero-based question order from slice position.
	Create(ctx context.Context, quiz *models.Quiz) error

	// Delete removes the quiz and all its questions. Returns a not-found
	// error if the id is unknown; it never silently succeeds.
	Delete(ctx context.Context, id string) error
}

// IsNotFoundError reports whether err is the storage-level missing-record
// condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
