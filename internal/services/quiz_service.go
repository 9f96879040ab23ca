package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizforge/quiz-service/internal/cache"
	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/validator"
)

const (
	quizListCacheKey = "quizzes:list"
	quizCacheKeyFmt  = "quiz:%s"

	quizListCacheTTL = 30 * time.Second
	quizCacheTTL     = 5 * time.Minute
)

// ===== REQUEST TYPES =====

// CreateQuestionRequest is one question of a create-quiz payload.
type CreateQuestionRequest struct {
	Text           string              `json:"text" validate:"required,min=1"`
	Type           models.QuestionType `json:"type" validate:"required,question_type"`
	Options        []string            `json:"options"`
	CorrectAnswers []string            `json:"correctAnswers"`

	// Order is accepted on the wire but ignored: the position of the
	// question in the submitted array is authoritative.
	Order *int `json:"order,omitempty"`
}

// CreateQuizRequest is the payload for creating a quiz with its questions.
type CreateQuizRequest struct {
	Title     string                  `json:"title" validate:"required,min=1,max=200"`
	Questions []CreateQuestionRequest `json:"questions" validate:"min=1,dive"`
}

// ===== SERVICE INTERFACE =====

// QuizService orchestrates validation, persistence and event publishing
// for the four quiz operations.
type QuizService interface {
	List(ctx context.Context) ([]repositories.QuizSummary, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
}

type quizService struct {
	repo      repositories.QuizRepository
	validator *validator.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewQuizService creates the quiz service. Cache may be nil to run
// without caching; publisher may be nil to run without events.
func NewQuizService(
	repo repositories.QuizRepository,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) QuizService {
	return &quizService{
		repo:      repo,
		validator: v,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

// ===== OPERATIONS =====

func (s *quizService) List(ctx context.Context) ([]repositories.QuizSummary, error) {
	var cached []repositories.QuizSummary
	if s.cacheGet(ctx, quizListCacheKey, &cached) {
		return cached, nil
	}

	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	s.cacheSet(ctx, quizListCacheKey, summaries, quizListCacheTTL)
	return summaries, nil
}

func (s *quizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	key := fmt.Sprintf(quizCacheKeyFmt, id)

	var cached models.Quiz
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	s.cacheSet(ctx, key, quiz, quizCacheTTL)
	return quiz, nil
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	quiz := &models.Quiz{
		Title:     req.Title,
		Questions: make([]models.Question, len(req.Questions)),
	}
	for i, q := range req.Questions {
		quiz.Questions[i] = models.Question{
			Text:           q.Text,
			Type:           q.Type,
			Options:        normalizeList(q.Options),
			CorrectAnswers: normalizeList(q.CorrectAnswers),
			Order:          i,
		}
	}

	if err := s.repo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "title", quiz.Title, "question_count", len(quiz.Questions))

	s.cacheInvalidate(ctx, quizListCacheKey)
	s.publish(ctx, events.NewQuizCreatedEvent(quiz))

	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.logger.Info("Quiz deleted", "quiz_id", id)

	s.cacheInvalidate(ctx, quizListCacheKey, fmt.Sprintf(quizCacheKeyFmt, id))
	s.publish(ctx, events.NewQuizDeletedEvent(id))

	return nil
}

// ===== HELPERS =====

// normalizeList applies the wire default: an absent array means empty,
// never null.
func normalizeList(values []string) models.StringList {
	if values == nil {
		return models.StringList{}
	}
	return models.StringList(values)
}

// cacheGet returns true on a hit. Cache faults degrade to a miss.
func (s *quizService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Cache read failed", "key", key, "error", err)
	}
	return false
}

func (s *quizService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (s *quizService) cacheInvalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Cache invalidation failed", "keys", keys, "error", err)
	}
}

// publish sends a lifecycle event. Publishing is best-effort: a broker
// fault must not fail the request that already committed.
func (s *quizService) publish(ctx context.Context, event *events.QuizEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event", "event_type", event.Type, "quiz_id", event.QuizID, "error", err)
	}
}
