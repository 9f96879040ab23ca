package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionBoolean  QuestionType = "BOOLEAN"
	QuestionInput    QuestionType = "INPUT"
	QuestionCheckbox QuestionType = "CHECKBOX"
)

// QuestionTypes lists every recognized question type.
var QuestionTypes = []QuestionType{
	QuestionBoolean,
	QuestionInput,
	QuestionCheckbox,
}

// Quiz owns its questions exclusively: they are created with it in one
// transaction and removed with it on delete.
type Quiz struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	CreatedAt time.Time `json:"createdAt"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question is a single typed question within a quiz. Order is the
// zero-based index within the parent quiz; it always mirrors the order
// questions were submitted in, unique per quiz.
type Question struct {
	ID             string       `json:"id" gorm:"primaryKey;size:36"`
	QuizID         string       `json:"quizId" gorm:"not null;size:36;index"`
	Text           string       `json:"text" gorm:"not null;type:text" validate:"required,min=1"`
	Type           QuestionType `json:"type" gorm:"not null;size:16" validate:"required,question_type"`
	Options        StringList   `json:"options" gorm:"not null;type:text"`
	CorrectAnswers StringList   `json:"correctAnswers" gorm:"not null;type:text"`
	Order          int          `json:"order" gorm:"column:order;not null"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (Question) TableName() string {
	return "questions"
}
