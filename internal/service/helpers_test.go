package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database migrated with the full schema.
// The database name is derived from the test name so parallel tests never
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Question{}, &model.Answer{}))
	return db
}

func newTestRepos(t *testing.T) (repository.QuestionRepository, repository.AnswerRepository) {
	t.Helper()
	db := newTestDB(t)
	return repository.NewQuestionRepository(db), repository.NewAnswerRepository(db)
}

// stubEmbedder returns a fixed vector per text, or defaultVec for texts it has
// never seen. Tests choose the geometry, so distances are exact and the
// scoring path is fully deterministic.
type stubEmbedder struct {
	vectors    map[string][]float32
	defaultVec []float32
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{
		vectors:    make(map[string][]float32),
		defaultVec: []float32{1, 0, 0},
	}
}

func (s *stubEmbedder) add(text string, vec []float32) *stubEmbedder {
	s.vectors[text] = vec
	return s
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := s.vectors[text]; ok {
			out[i] = vec
			continue
		}
		out[i] = s.defaultVec
	}
	return out, nil
}

// failingEmbedder simulates an unavailable embedding backend.
type failingEmbedder struct{}

func (failingEmbedder) EmbedTexts(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding backend unavailable")
}
