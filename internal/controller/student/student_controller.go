package student

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/service"
	"github.com/lcavallin/gradelens/internal/worker"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	pool        *worker.Pool
	questions   service.QuestionService
	review      service.ReviewService
	submissions service.SubmissionService
}

func NewStudentController(pool *worker.Pool, questions service.QuestionService, review service.ReviewService, submissions service.SubmissionService) *StudentController {
	return &StudentController{pool: pool, questions: questions, review: review, submissions: submissions}
}

// SubmitAnswer godoc
// @Summary Submit a free-text answer for automatic grade prediction
// @Description Runs the answer through similarity retrieval and weighted consensus on a background worker. With dry_run=true the predicted record is returned without being persisted.
// @Tags Student
// @Accept json
// @Produce json
// @Param dry_run query bool false "Preview only, do not persist"
// @Param answer body dto.SubmitAnswerRequest true "Answer payload"
// @Success 201 {object} dto.SubmissionResponse "Answer recorded with predicted grade"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Author already answered this question"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/answers [post]
func (c *StudentController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	persist := ctx.Query("dry_run") != "true"

	select {
	case result := <-c.pool.Submit(ctx.Request.Context(), req, persist):
		if result.Err != nil {
			c.respondSubmissionError(ctx, result.Err)
			return
		}
		status := http.StatusCreated
		if !persist {
			status = http.StatusOK
		}
		ctx.JSON(status, result.Response)
	case <-ctx.Request.Context().Done():
		ctx.JSON(http.StatusRequestTimeout, dto.ErrorResponse{Message: "Request cancelled before grading completed"})
	}
}

func (c *StudentController) respondSubmissionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Question not found"})
	case errors.Is(err, service.ErrDuplicateAnswer):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "An answer for this question already exists", Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Msg("SubmitAnswer: pipeline error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process submission", Details: []string{err.Error()}})
	}
}

// UnansweredQuestions godoc
// @Summary List questions the student has not answered yet
// @Tags Student
// @Produce json
// @Param author_id query string true "Student id"
// @Param teacher_ids query string true "Comma-separated teacher ids"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/questions/unanswered [get]
func (c *StudentController) UnansweredQuestions(ctx *gin.Context) {
	authorID, teacherIDs, ok := studentScope(ctx)
	if !ok {
		return
	}
	questions, err := c.questions.UnansweredQuestions(authorID, teacherIDs)
	if err != nil {
		log.Error().Err(err).Str("authorID", authorID).Msg("UnansweredQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// AnsweredQuestions godoc
// @Summary List questions the student has already answered
// @Tags Student
// @Produce json
// @Param author_id query string true "Student id"
// @Param teacher_ids query string true "Comma-separated teacher ids"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/questions/answered [get]
func (c *StudentController) AnsweredQuestions(ctx *gin.Context) {
	authorID, teacherIDs, ok := studentScope(ctx)
	if !ok {
		return
	}
	questions, err := c.questions.AnsweredQuestions(authorID, teacherIDs)
	if err != nil {
		log.Error().Err(err).Str("authorID", authorID).Msg("AnsweredQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// MyAnswers godoc
// @Summary List the student's own answers with predicted and teacher grades
// @Tags Student
// @Produce json
// @Param author_id query string true "Student id"
// @Param teacher_ids query string false "Comma-separated teacher ids"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/answers [get]
func (c *StudentController) MyAnswers(ctx *gin.Context) {
	authorID := ctx.Query("author_id")
	if authorID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "author_id is required"})
		return
	}
	answers, err := c.review.StudentAnswers(authorID, splitIDs(ctx.Query("teacher_ids")))
	if err != nil {
		log.Error().Err(err).Str("authorID", authorID).Msg("MyAnswers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load answers"})
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// AnswerNeighbors godoc
// @Summary Show the graded neighbors behind one answer's prediction
// @Tags Student
// @Produce json
// @Param id path string true "Answer id"
// @Success 200 {array} dto.NeighborResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/answers/{id}/neighbors [get]
func (c *StudentController) AnswerNeighbors(ctx *gin.Context) {
	neighbors, err := c.submissions.AnswerNeighbors(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("answerID", ctx.Param("id")).Msg("AnswerNeighbors: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load neighbors", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, neighbors)
}

func studentScope(ctx *gin.Context) (string, []string, bool) {
	authorID := ctx.Query("author_id")
	teacherIDs := splitIDs(ctx.Query("teacher_ids"))
	if authorID == "" || len(teacherIDs) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "author_id and teacher_ids are required"})
		return "", nil, false
	}
	return authorID, teacherIDs, true
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
