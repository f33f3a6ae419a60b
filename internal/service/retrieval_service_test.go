package service

import (
	"context"
	"testing"

	"github.com/lcavallin/gradelens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors_RoundedAscendingDistances(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	embedder := newStubEmbedder()
	cfg := gradingConfig()
	retrieval := NewRetrievalService(answerRepo, embedder, cfg)

	require.NoError(t, answerRepo.Create(&model.Answer{
		ID: "near", QuestionID: "q1", TeacherID: "t1", AuthorID: "s1",
		Text: "near", TeacherGrade: 4, PredictedGrade: model.UngradedSentinel,
		Source: model.SourceInternalTraining, Embedding: []float32{1, 0, 0},
	}))
	require.NoError(t, answerRepo.Create(&model.Answer{
		ID: "mid", QuestionID: "q1", TeacherID: "t1", AuthorID: "s2",
		Text: "mid", TeacherGrade: 3, PredictedGrade: model.UngradedSentinel,
		Source: model.SourceInternalTraining, Embedding: []float32{0.70710678, 0.70710678, 0},
	}))

	embedder.add("candidate", []float32{1, 0, 0})

	neighbors, embedding, err := retrieval.Neighbors(context.Background(), "q1", "candidate")
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 0, 0}, embedding)
	require.Len(t, neighbors, 2)
	assert.Equal(t, 0.0, neighbors[0].Distance, "distances come back rounded to three decimals")
	assert.Equal(t, 0.293, neighbors[1].Distance)
	assert.True(t, neighbors[0].Distance <= neighbors[1].Distance)
}

func TestNeighbors_RespectsConfiguredK(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	embedder := newStubEmbedder()
	cfg := gradingConfig()
	cfg.Grading.Neighbors = 1
	retrieval := NewRetrievalService(answerRepo, embedder, cfg)

	for _, a := range []struct {
		id  string
		vec []float32
	}{
		{"a1", []float32{1, 0, 0}},
		{"a2", []float32{0, 1, 0}},
	} {
		require.NoError(t, answerRepo.Create(&model.Answer{
			ID: a.id, QuestionID: "q1", TeacherID: "t1", AuthorID: a.id,
			Text: a.id, TeacherGrade: 3, PredictedGrade: model.UngradedSentinel,
			Source: model.SourceInternalTraining, Embedding: a.vec,
		}))
	}

	neighbors, _, err := retrieval.Neighbors(context.Background(), "q1", "candidate")
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, "a1", neighbors[0].AuthorID)
}

func TestNeighbors_EmptyCorpusIsNotAnError(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	retrieval := NewRetrievalService(answerRepo, newStubEmbedder(), gradingConfig())

	neighbors, embedding, err := retrieval.Neighbors(context.Background(), "q1", "candidate")
	require.NoError(t, err)
	assert.Empty(t, neighbors)
	assert.NotEmpty(t, embedding)
}

func TestNeighbors_EmbedderFailure(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	retrieval := NewRetrievalService(answerRepo, failingEmbedder{}, gradingConfig())

	_, _, err := retrieval.Neighbors(context.Background(), "q1", "candidate")
	assert.Error(t, err)
}
