package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quizforge/quiz-service/internal/repositories"
)

const (
	quizSheetName     = "Quizzes"
	questionSheetName = "Questions"
)

// ExportService renders the full quiz catalog as an XLSX workbook with
// one sheet of quiz summaries and one sheet of questions.
type ExportService interface {
	ExportQuizzes(ctx context.Context) ([]byte, error)
}

type exportService struct {
	repo   repositories.QuizRepository
	logger *slog.Logger
}

func NewExportService(repo repositories.QuizRepository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportQuizzes(ctx context.Context) ([]byte, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quizSheetName); err != nil {
		return nil, fmt.Errorf("failed to prepare quiz sheet: %w", err)
	}
	if _, err := f.NewSheet(questionSheetName); err != nil {
		return nil, fmt.Errorf("failed to prepare question sheet: %w", err)
	}

	quizHeaders := []interface{}{"ID", "Title", "Question Count", "Created At"}
	if err := writeRow(f, quizSheetName, 1, quizHeaders); err != nil {
		return nil, err
	}
	questionHeaders := []interface{}{"Quiz ID", "Quiz Title", "Order", "Text", "Type", "Options", "Correct Answers"}
	if err := writeRow(f, questionSheetName, 1, questionHeaders); err != nil {
		return nil, err
	}

	questionRow := 2
	for i, summary := range summaries {
		row := []interface{}{summary.ID, summary.Title, summary.QuestionCount, summary.CreatedAt.Format("2006-01-02 15:04:05")}
		if err := writeRow(f, quizSheetName, i+2, row); err != nil {
			return nil, err
		}

		quiz, err := s.repo.GetByID(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load quiz %s for export: %w", summary.ID, err)
		}

		for _, q := range quiz.Questions {
			row := []interface{}{
				quiz.ID,
				quiz.Title,
				q.Order,
				q.Text,
				string(q.Type),
				strings.Join(q.Options, "; "),
				strings.Join(q.CorrectAnswers, "; "),
			}
			if err := writeRow(f, questionSheetName, questionRow, row); err != nil {
				return nil, err
			}
			questionRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render export workbook: %w", err)
	}

	s.logger.Info("Exported quizzes", "quiz_count", len(summaries), "question_rows", questionRow-2)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write export row: %w", err)
	}
	return nil
}
