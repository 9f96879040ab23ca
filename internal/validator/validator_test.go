package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-service/internal/models"
)

type questionPayload struct {
	Text string              `json:"text" validate:"required,min=1"`
	Type models.QuestionType `json:"type" validate:"required,question_type"`
}

type quizPayload struct {
	Title     string            `json:"title" validate:"required,min=1"`
	Questions []questionPayload `json:"questions" validate:"min=1,dive"`
}

func TestValidateStructPassesWellFormedPayload(t *testing.T) {
	v := New()

	errs := v.ValidateStruct(quizPayload{
		Title: "JavaScript basics",
		Questions: []questionPayload{
			{Text: "JavaScript is compiled language", Type: models.QuestionBoolean},
			{Text: "What is the output of typeof null?", Type: models.QuestionInput},
		},
	})

	assert.Empty(t, errs)
}

func TestValidateStructEnumeratesAllViolations(t *testing.T) {
	v := New()

	errs := v.ValidateStruct(quizPayload{
		Title: "",
		Questions: []questionPayload{
			{Text: "", Type: models.QuestionCheckbox},
			{Text: "valid text", Type: "ESSAY"},
		},
	})

	require.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "questions[0].text")
	assert.Contains(t, fields, "questions[1].type")
}

func TestValidateStructRejectsEmptyQuestionList(t *testing.T) {
	v := New()

	errs := v.ValidateStruct(quizPayload{
		Title:     "T",
		Questions: []questionPayload{},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "questions", errs[0].Field)
	assert.Equal(t, "min", errs[0].Rule)
}

func TestValidateStructRejectsUnknownQuestionType(t *testing.T) {
	v := New()

	errs := v.ValidateStruct(quizPayload{
		Title: "T",
		Questions: []questionPayload{
			{Text: "Q1", Type: "MULTISELECT"},
		},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "questions[0].type", errs[0].Field)
	assert.Equal(t, "question_type", errs[0].Rule)
	assert.Equal(t, "must be a valid question type (BOOLEAN, INPUT, CHECKBOX)", errs[0].Message)
}
