package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lcavallin/gradelens/internal/contentid"
	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Export file naming convention of the upstream teaching platform.
const (
	questionFilePrefix = "export_domande"
	answerFilePrefix   = "export_risposte"
)

// embedBatchSize bounds the number of texts sent to the embedding model in
// one call.
const embedBatchSize = 64

// SyncService bulk-loads question/answer CSV exports into the corpus without
// creating duplicates. Re-running it over the same sources is a no-op: ids
// are content-addressed, present ids are skipped up front, and a
// store-detected duplicate on insert is tolerated as "already imported".
//
// Synchronization is a single-operator batch job. It must not run
// concurrently with itself or with live submissions; the read-ids-then-insert
// check is not atomic across writers.
type SyncService interface {
	SyncDirectory(ctx context.Context, dir string) ([]dto.SyncReport, error)
	SyncQuestionsFile(ctx context.Context, path string) (*dto.SyncReport, error)
	SyncAnswersFile(ctx context.Context, path string) (*dto.SyncReport, error)
}

type syncService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	embedder     EmbeddingService
}

func NewSyncService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, embedder EmbeddingService) SyncService {
	return &syncService{questionRepo: questionRepo, answerRepo: answerRepo, embedder: embedder}
}

// SyncDirectory imports every export CSV found in dir, questions before
// answers so that answer rows always reference an existing question.
func (s *syncService) SyncDirectory(ctx context.Context, dir string) ([]dto.SyncReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	var questionFiles, answerFiles []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		switch {
		case strings.HasPrefix(name, questionFilePrefix):
			questionFiles = append(questionFiles, filepath.Join(dir, name))
		case strings.HasPrefix(name, answerFilePrefix):
			answerFiles = append(answerFiles, filepath.Join(dir, name))
		}
	}

	var reports []dto.SyncReport
	for _, path := range questionFiles {
		report, err := s.SyncQuestionsFile(ctx, path)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *report)
	}
	for _, path := range answerFiles {
		report, err := s.SyncAnswersFile(ctx, path)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *syncService) SyncQuestionsFile(ctx context.Context, path string) (*dto.SyncReport, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	existing, err := s.questionRepo.ExistingIDs()
	if err != nil {
		return nil, fmt.Errorf("reading existing question ids: %w", err)
	}

	report := dto.SyncReport{File: filepath.Base(path)}
	var pending []model.Question
	var pendingTexts []string

	for i, row := range rows {
		question, err := questionFromRow(row)
		if err != nil {
			log.Warn().Err(err).Str("file", report.File).Int("row", i+1).Msg("Malformed question row skipped")
			report.Malformed++
			continue
		}
		if _, ok := existing[question.ID]; ok {
			report.Skipped++
			continue
		}
		existing[question.ID] = struct{}{}
		pending = append(pending, *question)
		pendingTexts = append(pendingTexts, question.Text)
	}

	vectors, err := s.embedAll(ctx, pendingTexts)
	if err != nil {
		return nil, err
	}

	for i := range pending {
		pending[i].Embedding = vectors[i]
		if err := s.questionRepo.Create(&pending[i]); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				report.Skipped++
				continue
			}
			return nil, fmt.Errorf("inserting question %s: %w", pending[i].ID, err)
		}
		report.Inserted++
	}

	log.Info().Str("file", report.File).Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).Int("malformed", report.Malformed).
		Msg("Question file synchronized")
	return &report, nil
}

func (s *syncService) SyncAnswersFile(ctx context.Context, path string) (*dto.SyncReport, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	existing, err := s.answerRepo.ExistingIDs()
	if err != nil {
		return nil, fmt.Errorf("reading existing answer ids: %w", err)
	}

	report := dto.SyncReport{File: filepath.Base(path)}
	var pending []model.Answer
	var pendingTexts []string

	for i, row := range rows {
		answer, err := answerFromRow(row)
		if err != nil {
			log.Warn().Err(err).Str("file", report.File).Int("row", i+1).Msg("Malformed answer row skipped")
			report.Malformed++
			continue
		}
		if _, ok := existing[answer.ID]; ok {
			report.Skipped++
			continue
		}
		existing[answer.ID] = struct{}{}
		pending = append(pending, *answer)
		pendingTexts = append(pendingTexts, answer.Text)
	}

	vectors, err := s.embedAll(ctx, pendingTexts)
	if err != nil {
		return nil, err
	}

	for i := range pending {
		pending[i].Embedding = vectors[i]
		if err := s.answerRepo.Create(&pending[i]); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				report.Skipped++
				continue
			}
			return nil, fmt.Errorf("inserting answer %s: %w", pending[i].ID, err)
		}
		report.Inserted++
	}

	log.Info().Str("file", report.File).Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).Int("malformed", report.Malformed).
		Msg("Answer file synchronized")
	return &report, nil
}

func (s *syncService) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding import batch: %w", err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// csvRow is one record keyed by header name. A missing optional column
// (id_autore in teacher reference files) is simply absent from the map.
type csvRow map[string]string

func readCSV(path string) ([]csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]csvRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(csvRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r csvRow) required(col string) (string, error) {
	v, ok := r[col]
	if !ok || v == "" {
		return "", fmt.Errorf("missing required column %q", col)
	}
	return v, nil
}

func questionFromRow(row csvRow) (*model.Question, error) {
	rawID, err := row.required("id")
	if err != nil {
		return nil, err
	}
	text, err := row.required("text")
	if err != nil {
		return nil, err
	}
	teacherID, err := row.required("id_docente")
	if err != nil {
		return nil, err
	}

	archived := false
	if v, ok := row["archived"]; ok && v != "" {
		archived, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing archived %q: %w", v, err)
		}
	}

	createdAt, err := parseTimestamp(row["data_creazione"])
	if err != nil {
		return nil, err
	}

	source := row["source"]
	if source == "" {
		source = model.SourceInternalTraining
	}

	return &model.Question{
		ID:        contentid.ImportID(rawID),
		Text:      text,
		TeacherID: teacherID,
		Category:  row["label"],
		Source:    source,
		Archived:  archived,
		CreatedAt: createdAt,
	}, nil
}

func answerFromRow(row csvRow) (*model.Answer, error) {
	rawID, err := row.required("id")
	if err != nil {
		return nil, err
	}
	rawQuestionID, err := row.required("id_domanda")
	if err != nil {
		return nil, err
	}
	text, err := row.required("text")
	if err != nil {
		return nil, err
	}
	teacherID, err := row.required("id_docente")
	if err != nil {
		return nil, err
	}

	// Teacher reference exports carry no id_autore column: the teacher is the
	// author and the reference grade defaults to the maximum.
	authorID, hasAuthor := row["id_autore"]
	if !hasAuthor || authorID == "" {
		authorID = teacherID
	}

	teacherGrade := 5.0
	if v, ok := row["label"]; ok && v != "" {
		teacherGrade, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing label %q: %w", v, err)
		}
	} else if hasAuthor {
		return nil, fmt.Errorf("missing required column %q", "label")
	}

	predictedGrade := model.UngradedSentinel
	if v, ok := row["voto_predetto"]; ok && v != "" {
		predictedGrade, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing voto_predetto %q: %w", v, err)
		}
	}

	createdAt, err := parseTimestamp(row["data_creazione"])
	if err != nil {
		return nil, err
	}

	source := row["source"]
	if source == "" {
		source = model.SourceInternalTraining
	}

	return &model.Answer{
		ID:             contentid.ImportID(rawID),
		QuestionID:     contentid.ImportID(rawQuestionID),
		QuestionText:   row["title"],
		TeacherID:      teacherID,
		AuthorID:       authorID,
		Text:           text,
		TeacherGrade:   teacherGrade,
		PredictedGrade: predictedGrade,
		Comment:        row["commento"],
		Source:         source,
		CreatedAt:      createdAt,
	}, nil
}

// parseTimestamp accepts the ISO 8601 variants the exports produce. An empty
// value falls back to the import time.
func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing data_creazione %q", v)
}
