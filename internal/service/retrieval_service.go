package service

import (
	"context"
	"fmt"
	"math"

	"github.com/lcavallin/gradelens/config"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/rs/zerolog/log"
)

// RetrievalService finds the teacher-graded answers most similar to a
// candidate text for one question.
type RetrievalService interface {
	// Neighbors embeds the candidate text and returns up to the configured
	// number of graded neighbors, closest first, along with the candidate's
	// embedding so callers can persist it without a second model call. An
	// empty neighbor slice (not an error) means the question has no graded
	// reference answers and no prediction can be made.
	Neighbors(ctx context.Context, questionID, candidateText string) ([]model.Neighbor, []float32, error)
}

type retrievalService struct {
	answerRepo repository.AnswerRepository
	embedder   EmbeddingService
	k          int
}

func NewRetrievalService(answerRepo repository.AnswerRepository, embedder EmbeddingService, cfg *config.Config) RetrievalService {
	return &retrievalService{answerRepo: answerRepo, embedder: embedder, k: cfg.Grading.Neighbors}
}

func (s *retrievalService) Neighbors(ctx context.Context, questionID, candidateText string) ([]model.Neighbor, []float32, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{candidateText})
	if err != nil {
		return nil, nil, fmt.Errorf("embedding candidate answer: %w", err)
	}
	if len(vectors) != 1 {
		return nil, nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}

	neighbors, err := s.answerRepo.NearestGraded(questionID, vectors[0], s.k)
	if err != nil {
		return nil, nil, fmt.Errorf("querying graded neighbors: %w", err)
	}

	for i := range neighbors {
		neighbors[i].Distance = roundTo(math.Abs(neighbors[i].Distance), 3)
	}

	log.Info().Str("questionID", questionID).Int("neighbors", len(neighbors)).Msg("Similarity retrieval completed")
	return neighbors, vectors[0], nil
}
