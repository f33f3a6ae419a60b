package teacher

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/service"
	"github.com/rs/zerolog/log"
)

type TeacherController struct {
	questions  service.QuestionService
	review     service.ReviewService
	evaluation service.EvaluationService
}

func NewTeacherController(questions service.QuestionService, review service.ReviewService, evaluation service.EvaluationService) *TeacherController {
	return &TeacherController{questions: questions, review: review, evaluation: evaluation}
}

// CreateQuestion godoc
// @Summary Create a question with its reference answer
// @Description Stores the question and a reference answer graded 5, which seeds the similarity corpus for future predictions.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question and reference answer"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/questions [post]
func (c *TeacherController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questions.CreateQuestion(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("teacherID", req.TeacherID).Msg("CreateQuestion: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// SetArchived godoc
// @Summary Archive or unarchive a question
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Question id"
// @Param flag body dto.ArchiveQuestionRequest true "Archived flag"
// @Success 204 "Flag updated"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/questions/{id}/archived [patch]
func (c *TeacherController) SetArchived(ctx *gin.Context) {
	var req dto.ArchiveQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.questions.SetArchived(ctx.Param("id"), *req.Archived); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Question not found"})
			return
		}
		log.Error().Err(err).Str("questionID", ctx.Param("id")).Msg("SetArchived: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update question"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// PendingAnswers godoc
// @Summary List answers awaiting teacher review
// @Description The review queue: answers carrying a machine-predicted grade but no teacher grade yet.
// @Tags Teacher
// @Produce json
// @Param teacher_id query string true "Teacher id"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/answers/pending [get]
func (c *TeacherController) PendingAnswers(ctx *gin.Context) {
	teacherID := ctx.Query("teacher_id")
	if teacherID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "teacher_id is required"})
		return
	}
	answers, err := c.review.PendingAnswers(teacherID)
	if err != nil {
		log.Error().Err(err).Str("teacherID", teacherID).Msg("PendingAnswers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load pending answers"})
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// EvaluatedAnswers godoc
// @Summary List answers the teacher has already graded
// @Tags Teacher
// @Produce json
// @Param teacher_id query string true "Teacher id"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/answers/evaluated [get]
func (c *TeacherController) EvaluatedAnswers(ctx *gin.Context) {
	teacherID := ctx.Query("teacher_id")
	if teacherID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "teacher_id is required"})
		return
	}
	answers, err := c.review.EvaluatedAnswers(teacherID)
	if err != nil {
		log.Error().Err(err).Str("teacherID", teacherID).Msg("EvaluatedAnswers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load evaluated answers"})
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// GradeAnswer godoc
// @Summary Assign the teacher grade to a pending answer
// @Description Confirms or overrides the predicted grade. The transition to graded happens exactly once.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Answer id"
// @Param grade body dto.GradeAnswerRequest true "Grade and optional comment"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Answer already graded"
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/answers/{id}/grade [put]
func (c *TeacherController) GradeAnswer(ctx *gin.Context) {
	var req dto.GradeAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GradeAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	answer, err := c.review.GradeAnswer(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyGraded) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Answer has already been graded"})
			return
		}
		log.Error().Err(err).Str("answerID", ctx.Param("id")).Msg("GradeAnswer: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to grade answer", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// Evaluate godoc
// @Summary Measure prediction accuracy over labeled samples
// @Description Runs the prediction pipeline over each labeled sample without persisting anything; a sample passes when |predicted - expected| <= 0.5.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param samples body dto.EvaluationRequest true "Labeled samples"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/evaluations [post]
func (c *TeacherController) Evaluate(ctx *gin.Context) {
	var req dto.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.evaluation.Evaluate(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Evaluate: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Evaluation failed", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
