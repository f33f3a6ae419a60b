package service

import (
	"context"
	"fmt"
	"math"

	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/rs/zerolog/log"
)

// passTolerance is the maximum |predicted - expected| for a sample to count
// as correctly predicted.
const passTolerance = 0.5

// EvaluationService measures prediction accuracy over labeled samples. The
// pipeline runs exactly as for a live submission but nothing is persisted.
type EvaluationService interface {
	Evaluate(ctx context.Context, req dto.EvaluationRequest) (*dto.EvaluationResponse, error)
}

type evaluationService struct {
	retrieval RetrievalService
	consensus ConsensusService
}

func NewEvaluationService(retrieval RetrievalService, consensus ConsensusService) EvaluationService {
	return &evaluationService{retrieval: retrieval, consensus: consensus}
}

func (s *evaluationService) Evaluate(ctx context.Context, req dto.EvaluationRequest) (*dto.EvaluationResponse, error) {
	resp := dto.EvaluationResponse{Results: make([]dto.EvaluationResult, 0, len(req.Samples))}

	for _, sample := range req.Samples {
		result := dto.EvaluationResult{QuestionID: sample.QuestionID, Expected: sample.Grade}

		neighbors, _, err := s.retrieval.Neighbors(ctx, sample.QuestionID, sample.Text)
		if err != nil {
			return nil, fmt.Errorf("evaluating sample for question %s: %w", sample.QuestionID, err)
		}

		if len(neighbors) == 0 {
			result.NoPrediction = true
			resp.Results = append(resp.Results, result)
			resp.Total++
			continue
		}

		distances := make([]float64, len(neighbors))
		grades := make([]float64, len(neighbors))
		for i, n := range neighbors {
			distances[i] = n.Distance
			grades[i] = n.Grade
		}

		consensus, err := s.consensus.WeightedConsensus(distances, grades)
		if err != nil {
			return nil, err
		}
		predicted, err := s.consensus.AdjustForConfidence(distances, roundTo(consensus, 1))
		if err != nil {
			return nil, err
		}

		result.Predicted = predicted
		result.Passed = math.Abs(predicted-sample.Grade) <= passTolerance
		if result.Passed {
			resp.Passed++
		}
		resp.Total++
		resp.Results = append(resp.Results, result)
	}

	if resp.Total > 0 {
		resp.Accuracy = float64(resp.Passed) / float64(resp.Total)
	}

	log.Info().Int("total", resp.Total).Int("passed", resp.Passed).
		Float64("accuracy", resp.Accuracy).Msg("Accuracy evaluation completed")
	return &resp, nil
}
