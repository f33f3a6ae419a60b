package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReviewService is the teacher side of the grading loop: the pending queue
// seeded by predicted grades, and the one-time assignment of the real grade.
type ReviewService interface {
	PendingAnswers(teacherID string) ([]dto.AnswerResponse, error)
	EvaluatedAnswers(teacherID string) ([]dto.AnswerResponse, error)
	GradeAnswer(answerID string, req dto.GradeAnswerRequest) (*dto.AnswerResponse, error)
	StudentAnswers(authorID string, teacherIDs []string) ([]dto.AnswerResponse, error)
}

type reviewService struct {
	answerRepo repository.AnswerRepository
}

func NewReviewService(answerRepo repository.AnswerRepository) ReviewService {
	return &reviewService{answerRepo: answerRepo}
}

func (s *reviewService) PendingAnswers(teacherID string) ([]dto.AnswerResponse, error) {
	answers, err := s.answerRepo.FindPendingByTeacher(teacherID)
	if err != nil {
		return nil, fmt.Errorf("loading pending answers: %w", err)
	}
	var resp []dto.AnswerResponse
	copier.Copy(&resp, &answers)
	return resp, nil
}

func (s *reviewService) EvaluatedAnswers(teacherID string) ([]dto.AnswerResponse, error) {
	answers, err := s.answerRepo.FindGradedByTeacher(teacherID)
	if err != nil {
		return nil, fmt.Errorf("loading evaluated answers: %w", err)
	}
	var resp []dto.AnswerResponse
	copier.Copy(&resp, &answers)
	return resp, nil
}

// GradeAnswer transitions an answer to graded. The transition happens exactly
// once: grading an already graded answer is rejected.
func (s *reviewService) GradeAnswer(answerID string, req dto.GradeAnswerRequest) (*dto.AnswerResponse, error) {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("answer not found with ID %s", answerID)
		}
		return nil, err
	}
	if answer.TeacherID != req.TeacherID {
		return nil, fmt.Errorf("answer %s does not belong to teacher %s", answerID, req.TeacherID)
	}
	if answer.Graded() {
		return nil, ErrAlreadyGraded
	}

	answer.TeacherGrade = *req.Grade
	answer.Comment = req.Comment

	if err := s.answerRepo.Update(answer); err != nil {
		log.Error().Err(err).Str("answerID", answerID).Msg("Failed to persist teacher grade")
		return nil, fmt.Errorf("persisting grade: %w", err)
	}

	log.Info().Str("answerID", answerID).Float64("grade", *req.Grade).Msg("Answer graded by teacher")

	var resp dto.AnswerResponse
	copier.Copy(&resp, answer)
	return &resp, nil
}

func (s *reviewService) StudentAnswers(authorID string, teacherIDs []string) ([]dto.AnswerResponse, error) {
	answers, err := s.answerRepo.FindByAuthor(authorID, teacherIDs)
	if err != nil {
		return nil, fmt.Errorf("loading student answers: %w", err)
	}
	var resp []dto.AnswerResponse
	copier.Copy(&resp, &answers)
	return resp, nil
}
