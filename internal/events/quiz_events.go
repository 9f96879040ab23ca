package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quiz-service/internal/models"
)

type QuizEventType string

const (
	QuizCreated QuizEventType = "quiz.created"
	QuizDeleted QuizEventType = "quiz.deleted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// QuizEvent is the message published on quiz lifecycle changes.
type QuizEvent struct {
	ID            string        `json:"id"`
	Type          QuizEventType `json:"type"`
	QuizID        string        `json:"quiz_id"`
	Title         string        `json:"title,omitempty"`
	QuestionCount int           `json:"question_count,omitempty"`
	Source        string        `json:"source"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
}

// NewQuizCreatedEvent builds a quiz.created event from a persisted quiz.
func NewQuizCreatedEvent(quiz *models.Quiz) *QuizEvent {
	return &QuizEvent{
		ID:            uuid.NewString(),
		Type:          QuizCreated,
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		Source:        eventSource,
		Version:       eventVersion,
		Timestamp:     time.Now().UTC(),
	}
}

// NewQuizDeletedEvent builds a quiz.deleted event.
func NewQuizDeletedEvent(quizID string) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      QuizDeleted,
		QuizID:    quizID,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
	}
}
