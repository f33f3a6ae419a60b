package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/lcavallin/gradelens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func gradedAnswer(id, questionID string, grade float64, embedding []float32) *model.Answer {
	return &model.Answer{
		ID:             id,
		QuestionID:     questionID,
		TeacherID:      "t1",
		AuthorID:       "author-" + id,
		Text:           "text " + id,
		TeacherGrade:   grade,
		PredictedGrade: model.UngradedSentinel,
		Source:         model.SourceInternalTraining,
		Embedding:      embedding,
	}
}

func TestAnswerCreate_DuplicateIDRejected(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(gradedAnswer("a1", "q1", 4, nil)))

	err := repo.Create(gradedAnswer("a1", "q1", 4, nil))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNearestGraded_OrdersAscendingAndTruncates(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(gradedAnswer("far", "q1", 1, []float32{0, 1, 0})))
	require.NoError(t, repo.Create(gradedAnswer("near", "q1", 4, []float32{1, 0, 0})))
	require.NoError(t, repo.Create(gradedAnswer("mid", "q1", 3, []float32{0.70710678, 0.70710678, 0})))

	neighbors, err := repo.NearestGraded("q1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, neighbors, 2)
	assert.Equal(t, "author-near", neighbors[0].AuthorID)
	assert.Equal(t, 4.0, neighbors[0].Grade)
	assert.InDelta(t, 0.0, neighbors[0].Distance, 1e-6)
	assert.Equal(t, "author-mid", neighbors[1].AuthorID)
	assert.InDelta(t, 0.2928932, neighbors[1].Distance, 1e-6)
}

func TestNearestGraded_FiltersQuestionAndGradeAndEmbedding(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(gradedAnswer("graded", "q1", 4, []float32{1, 0, 0})))
	require.NoError(t, repo.Create(gradedAnswer("other-question", "q2", 5, []float32{1, 0, 0})))
	require.NoError(t, repo.Create(gradedAnswer("no-embedding", "q1", 5, nil)))

	ungraded := gradedAnswer("ungraded", "q1", model.UngradedSentinel, []float32{1, 0, 0})
	require.NoError(t, repo.Create(ungraded))

	neighbors, err := repo.NearestGraded("q1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)

	require.Len(t, neighbors, 1)
	assert.Equal(t, "author-graded", neighbors[0].AuthorID)
}

func TestNearestGraded_EmptyCorpus(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	neighbors, err := repo.NearestGraded("q1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestNearestGraded_ZeroGradeIsEvidence(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(gradedAnswer("failed", "q1", 0, []float32{1, 0, 0})))

	neighbors, err := repo.NearestGraded("q1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, 0.0, neighbors[0].Grade)
}

func TestFindPendingByTeacher_OldestFirst(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	older := gradedAnswer("older", "q1", model.UngradedSentinel, nil)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := gradedAnswer("newer", "q1", model.UngradedSentinel, nil)
	newer.CreatedAt = time.Now()
	graded := gradedAnswer("done", "q1", 4, nil)

	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(graded))

	pending, err := repo.FindPendingByTeacher("t1")
	require.NoError(t, err)

	require.Len(t, pending, 2)
	assert.Equal(t, "older", pending[0].ID)
	assert.Equal(t, "newer", pending[1].ID)
}

func TestExistingIDs(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(gradedAnswer("a1", "q1", 4, nil)))
	require.NoError(t, repo.Create(gradedAnswer("a2", "q1", 3, nil)))

	ids, err := repo.ExistingIDs()
	require.NoError(t, err)

	assert.Contains(t, ids, "a1")
	assert.Contains(t, ids, "a2")
	assert.NotContains(t, ids, "a3")
}

func TestEmbeddingRoundTrip(t *testing.T) {
	repo := NewAnswerRepository(newTestDB(t))

	vec := []float32{0.25, -0.5, 0.125}
	require.NoError(t, repo.Create(gradedAnswer("a1", "q1", 4, vec)))

	stored, err := repo.FindByID("a1")
	require.NoError(t, err)
	assert.Equal(t, vec, stored.Embedding)
}
