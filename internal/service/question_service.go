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

type QuestionService interface {
	// CreateQuestion stores a new question together with its teacher
	// reference answer (grade 5, no prediction).
	CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)

	// SetArchived flips the archived flag; archived questions disappear from
	// the unanswered views but stay valid scoring targets.
	SetArchived(id string, archived bool) error

	// UnansweredQuestions lists the non-archived questions of the given
	// teachers that the student has not answered yet.
	UnansweredQuestions(authorID string, teacherIDs []string) ([]dto.QuestionResponse, error)

	// AnsweredQuestions lists the questions of the given teachers the
	// student has already answered.
	AnsweredQuestions(authorID string, teacherIDs []string) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	embedder     EmbeddingService
}

func NewQuestionService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, embedder EmbeddingService) QuestionService {
	return &questionService{questionRepo: questionRepo, answerRepo: answerRepo, embedder: embedder}
}

func (s *questionService) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	now := time.Now()

	vectors, err := s.embedder.EmbedTexts(ctx, []string{req.Text, req.ReferenceAnswer})
	if err != nil {
		return nil, fmt.Errorf("embedding question and reference answer: %w", err)
	}
	if len(vectors) != 2 {
		return nil, fmt.Errorf("expected 2 embeddings, got %d", len(vectors))
	}

	question := model.Question{
		ID:        contentid.QuestionID(req.TeacherID, now),
		Text:      req.Text,
		TeacherID: req.TeacherID,
		Category:  req.Category,
		Source:    model.SourceApplication,
		Archived:  false,
		Embedding: vectors[0],
		CreatedAt: now,
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Str("teacherID", req.TeacherID).Msg("Failed to create question")
		return nil, fmt.Errorf("persisting question: %w", err)
	}

	// The reference answer anchors the similarity corpus for the new
	// question: graded 5 by construction, never predicted.
	reference := model.Answer{
		ID:             contentid.ReferenceAnswerID(req.TeacherID, now),
		QuestionID:     question.ID,
		QuestionText:   question.Text,
		TeacherID:      req.TeacherID,
		AuthorID:       req.TeacherID,
		Text:           req.ReferenceAnswer,
		TeacherGrade:   5,
		PredictedGrade: model.UngradedSentinel,
		Source:         model.SourceApplication,
		Embedding:      vectors[1],
		CreatedAt:      now,
	}

	if err := s.answerRepo.Create(&reference); err != nil {
		log.Error().Err(err).Str("questionID", question.ID).Msg("Failed to create reference answer")
		return nil, fmt.Errorf("persisting reference answer: %w", err)
	}

	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) SetArchived(id string, archived bool) error {
	if err := s.questionRepo.SetArchived(id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *questionService) UnansweredQuestions(authorID string, teacherIDs []string) ([]dto.QuestionResponse, error) {
	answered, err := s.answeredIDs(authorID, teacherIDs)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindAssigned(teacherIDs, false)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		if _, ok := answered[questions[i].ID]; ok {
			continue
		}
		var q dto.QuestionResponse
		copier.Copy(&q, &questions[i])
		resp = append(resp, q)
	}
	return resp, nil
}

func (s *questionService) AnsweredQuestions(authorID string, teacherIDs []string) ([]dto.QuestionResponse, error) {
	answered, err := s.answeredIDs(authorID, teacherIDs)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindAssigned(teacherIDs, false)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.QuestionResponse, 0, len(answered))
	for i := range questions {
		if _, ok := answered[questions[i].ID]; !ok {
			continue
		}
		var q dto.QuestionResponse
		copier.Copy(&q, &questions[i])
		resp = append(resp, q)
	}
	return resp, nil
}

func (s *questionService) answeredIDs(authorID string, teacherIDs []string) (map[string]struct{}, error) {
	answers, err := s.answerRepo.FindByAuthor(authorID, teacherIDs)
	if err != nil {
		return nil, fmt.Errorf("loading answers of %s: %w", authorID, err)
	}
	ids := make(map[string]struct{}, len(answers))
	for i := range answers {
		ids[answers[i].QuestionID] = struct{}{}
	}
	return ids, nil
}
