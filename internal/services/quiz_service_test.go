package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/validator"
)

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) List(ctx context.Context) ([]repositories.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo repositories.QuizRepository, publisher events.EventPublisher) QuizService {
	return NewQuizService(repo, validator.New(), nil, publisher, testLogger())
}

func TestCreateAssignsOrderFromArrayPosition(t *testing.T) {
	repo := new(MockQuizRepository)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestService(repo, publisher)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).
		Run(func(args mock.Arguments) {
			quiz := args.Get(1).(*models.Quiz)
			quiz.ID = "quiz-1"
			quiz.CreatedAt = time.Now()
			for i := range quiz.Questions {
				quiz.Questions[i].ID = fmt.Sprintf("question-%d", i)
				quiz.Questions[i].QuizID = quiz.ID
			}
		}).
		Return(nil)

	suppliedOrder := 7
	quiz, err := svc.Create(context.Background(), &CreateQuizRequest{
		Title: "JavaScript basics",
		Questions: []CreateQuestionRequest{
			{
				Text:           "JavaScript is compiled language",
				Type:           models.QuestionBoolean,
				Options:        []string{"True", "False"},
				CorrectAnswers: []string{"False"},
				// Author-supplied order is ignored; array position wins.
				Order: &suppliedOrder,
			},
			{
				Text:           "What is the output of typeof null?",
				Type:           models.QuestionInput,
				CorrectAnswers: []string{"object"},
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 0, quiz.Questions[0].Order)
	assert.Equal(t, 1, quiz.Questions[1].Order)
	assert.Equal(t, models.StringList{"True", "False"}, quiz.Questions[0].Options)

	// Absent arrays default to the empty sequence, never nil.
	assert.NotNil(t, quiz.Questions[1].Options)
	assert.Empty(t, quiz.Questions[1].Options)

	repo.AssertExpectations(t)
}

func TestCreatePublishesQuizCreatedEvent(t *testing.T) {
	repo := new(MockQuizRepository)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestService(repo, publisher)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Quiz).ID = "quiz-1"
		}).
		Return(nil)

	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Title: "React Fundamentals",
		Questions: []CreateQuestionRequest{
			{Text: "React components must return a single element", Type: models.QuestionBoolean},
		},
	})

	require.NoError(t, err)
	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.QuizCreated, published[0].Type)
	assert.Equal(t, "quiz-1", published[0].QuizID)
	assert.Equal(t, 1, published[0].QuestionCount)
}

func TestCreateValidationFailureEnumeratesViolations(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Title:     "",
		Questions: []CreateQuestionRequest{},
	})

	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)

	fields := []string{verrs[0].Field, verrs[1].Field}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "questions")

	// Nothing may reach persistence on a validation failure.
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRejectsUnknownQuestionType(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Title: "T",
		Questions: []CreateQuestionRequest{
			{Text: "Q1", Type: "ESSAY"},
		},
	})

	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "questions[0].type", verrs[0].Field)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	repo.On("GetByID", mock.Anything, "nonexistent").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), "nonexistent")

	require.ErrorIs(t, err, ErrQuizNotFound)
	assert.True(t, IsNotFound(err))
}

func TestGetByIDReturnsOrderedQuestions(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	stored := &models.Quiz{
		ID:    "quiz-1",
		Title: "JavaScript basics",
		Questions: []models.Question{
			{ID: "q-0", Text: "Q1", Type: models.QuestionBoolean, Options: models.StringList{"True", "False"}, CorrectAnswers: models.StringList{"False"}, Order: 0},
			{ID: "q-1", Text: "Q2", Type: models.QuestionInput, Options: models.StringList{}, CorrectAnswers: models.StringList{"object"}, Order: 1},
		},
	}
	repo.On("GetByID", mock.Anything, "quiz-1").Return(stored, nil)

	quiz, err := svc.GetByID(context.Background(), "quiz-1")

	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 0, quiz.Questions[0].Order)
	assert.Equal(t, 1, quiz.Questions[1].Order)
}

func TestDeleteNotFound(t *testing.T) {
	repo := new(MockQuizRepository)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestService(repo, publisher)

	repo.On("Delete", mock.Anything, "already-deleted").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "already-deleted")

	require.ErrorIs(t, err, ErrQuizNotFound)
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestDeletePublishesQuizDeletedEvent(t *testing.T) {
	repo := new(MockQuizRepository)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestService(repo, publisher)

	repo.On("Delete", mock.Anything, "quiz-1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "quiz-1"))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.QuizDeleted, published[0].Type)
	assert.Equal(t, "quiz-1", published[0].QuizID)
}

func TestListPassesThroughSummaries(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	now := time.Now()
	repo.On("List", mock.Anything).Return([]repositories.QuizSummary{
		{ID: "quiz-2", Title: "React Fundamentals", QuestionCount: 3, CreatedAt: now},
		{ID: "quiz-1", Title: "JavaScript basics", QuestionCount: 3, CreatedAt: now.Add(-time.Hour)},
	}, nil)

	summaries, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "quiz-2", summaries[0].ID)
	assert.Equal(t, 3, summaries[0].QuestionCount)
}

func TestListPropagatesStorageError(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := newTestService(repo, events.NewMockEventPublisher(testLogger()))

	repo.On("List", mock.Anything).Return(nil, fmt.Errorf("connection refused"))

	_, err := svc.List(context.Background())

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}
