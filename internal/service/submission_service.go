package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lcavallin/gradelens/internal/contentid"
	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService runs the full prediction pipeline for one submitted
// answer: retrieve graded neighbors, blend their grades, dampen for
// confidence, persist the resulting record.
type SubmissionService interface {
	// SubmitAnswer predicts a grade for the answer and, unless persist is
	// false, stores it. The constructed record is returned even in preview
	// mode so callers can show the predicted grade without committing.
	SubmitAnswer(ctx context.Context, req dto.SubmitAnswerRequest, persist bool) (*dto.SubmissionResponse, error)

	// AnswerNeighbors returns the graded-neighbor breakdown for an already
	// stored answer.
	AnswerNeighbors(ctx context.Context, answerID string) ([]dto.NeighborResponse, error)
}

type submissionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	retrieval    RetrievalService
	consensus    ConsensusService
}

func NewSubmissionService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	retrieval RetrievalService,
	consensus ConsensusService,
) SubmissionService {
	return &submissionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		retrieval:    retrieval,
		consensus:    consensus,
	}
}

func (s *submissionService) SubmitAnswer(ctx context.Context, req dto.SubmitAnswerRequest, persist bool) (*dto.SubmissionResponse, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %s: %w", req.QuestionID, err)
	}

	neighbors, embedding, err := s.retrieval.Neighbors(ctx, question.ID, req.Text)
	if err != nil {
		return nil, err
	}

	predicted := model.UngradedSentinel
	hasPrediction := len(neighbors) > 0

	if hasPrediction {
		distances := make([]float64, len(neighbors))
		grades := make([]float64, len(neighbors))
		for i, n := range neighbors {
			distances[i] = n.Distance
			grades[i] = n.Grade
		}

		consensus, err := s.consensus.WeightedConsensus(distances, grades)
		if err != nil {
			return nil, fmt.Errorf("weighted consensus: %w", err)
		}
		consensus = roundTo(consensus, 1)

		predicted, err = s.consensus.AdjustForConfidence(distances, consensus)
		if err != nil {
			return nil, fmt.Errorf("confidence adjustment: %w", err)
		}

		log.Info().
			Str("questionID", question.ID).
			Str("authorID", req.AuthorID).
			Float64("consensus", consensus).
			Float64("predicted", predicted).
			Float64("closestDistance", distances[0]).
			Msg("Grade predicted")
	} else {
		log.Info().
			Str("questionID", question.ID).
			Str("authorID", req.AuthorID).
			Msg("No graded reference answers, submission recorded for manual grading")
	}

	answer := model.Answer{
		ID:             contentid.AnswerID(question.ID, req.AuthorID),
		QuestionID:     question.ID,
		QuestionText:   question.Text,
		TeacherID:      question.TeacherID,
		AuthorID:       req.AuthorID,
		Text:           req.Text,
		TeacherGrade:   model.UngradedSentinel,
		PredictedGrade: predicted,
		Comment:        "",
		Source:         model.SourceApplication,
		CreatedAt:      time.Now(),
	}

	if persist {
		answer.Embedding = embedding

		if err := s.answerRepo.Create(&answer); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Warn().Str("answerID", answer.ID).Msg("Duplicate answer submission rejected")
				return nil, ErrDuplicateAnswer
			}
			return nil, fmt.Errorf("persisting answer: %w", err)
		}
	}

	resp := dto.SubmissionResponse{Predicted: hasPrediction, Persisted: persist}
	if err := copier.Copy(&resp.Answer, &answer); err != nil {
		return nil, fmt.Errorf("preparing response: %w", err)
	}
	return &resp, nil
}

func (s *submissionService) AnswerNeighbors(ctx context.Context, answerID string) ([]dto.NeighborResponse, error) {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		return nil, fmt.Errorf("loading answer %s: %w", answerID, err)
	}

	neighbors, _, err := s.retrieval.Neighbors(ctx, answer.QuestionID, answer.Text)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.NeighborResponse, len(neighbors))
	for i, n := range neighbors {
		resp[i] = dto.NeighborResponse{
			Distance: n.Distance,
			Grade:    n.Grade,
			AuthorID: n.AuthorID,
			Document: n.Document,
		}
	}
	return resp, nil
}
