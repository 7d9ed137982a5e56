// Package importer seeds the question pool from a spreadsheet. It
// accepts xlsx and csv files with the columns part, question text,
// sample answer and category, validates every row through the domain
// constructors and writes the batch in a single transaction.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
	"github.com/xuri/excelize/v2"
)

// Config defines the import configuration
type Config struct {
	FilePath  string // Path to the xlsx or csv file
	SheetName string // Sheet to import from (xlsx only)
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultConfig returns the default import configuration: first sheet,
// header row skipped.
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:  filePath,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer reads question rows and persists them through the question
// store inside one transaction: either the whole file imports or none
// of it does.
type Importer struct {
	db        *sql.DB
	questions store.QuestionStore
	logger    *slog.Logger
}

// New creates an Importer.
func New(db *sql.DB, questions store.QuestionStore, log *slog.Logger) *Importer {
	if questions == nil {
		panic("questions store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		db:        db,
		questions: questions,
		logger:    log.With(slog.String("component", "question_importer")),
	}
}

// Import reads the file and persists every valid row. Rows that fail
// validation are reported in the result and skipped; storage errors
// abort the whole import.
func (imp *Importer) Import(ctx context.Context, cfg Config) (*Result, error) {
	rows, err := readRows(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}

	questions := make([]*domain.Question, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalProcessed++

		question, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return result, nil
	}

	err = store.RunInTransaction(ctx, imp.db, func(ctx context.Context, tx *sql.Tx) error {
		txQuestions := imp.questions.WithTx(tx)
		for _, question := range questions {
			if err := txQuestions.Create(ctx, question); err != nil {
				return fmt.Errorf("failed to insert question %q: %w", question.Text, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Created = len(questions)
	imp.logger.Info("question import finished",
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// readRows loads the raw cell rows from an xlsx or csv file.
func readRows(cfg Config) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	if ext == ".csv" {
		return readCSV(cfg.FilePath)
	}
	return readExcel(cfg)
}

func readExcel(cfg Config) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", cfg.SheetName, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow turns one spreadsheet row into a validated question.
// Expected columns: part, question text, sample answer, category; the
// last two are optional.
func parseRow(row []string) (*domain.Question, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("expected at least 2 columns, got %d", len(row))
	}

	part, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("part is not a number: %q", row[0])
	}

	text := strings.TrimSpace(row[1])

	var sampleAnswer, category *string
	if len(row) > 2 {
		if value := strings.TrimSpace(row[2]); value != "" {
			sampleAnswer = &value
		}
	}
	if len(row) > 3 {
		if value := strings.TrimSpace(row[3]); value != "" {
			category = &value
		}
	}

	return domain.NewQuestion(part, text, sampleAnswer, category)
}
