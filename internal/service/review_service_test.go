package service

import (
	"testing"

	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingAnswer(t *testing.T, repo repository.AnswerRepository, id, teacherID string) {
	t.Helper()
	require.NoError(t, repo.Create(&model.Answer{
		ID:             id,
		QuestionID:     "q1",
		TeacherID:      teacherID,
		AuthorID:       "student-" + id,
		Text:           "answer " + id,
		TeacherGrade:   model.UngradedSentinel,
		PredictedGrade: 3.5,
		Source:         model.SourceApplication,
	}))
}

func floatPtr(v float64) *float64 { return &v }

func TestGradeAnswer_TransitionsOnce(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	review := NewReviewService(answerRepo)
	seedPendingAnswer(t, answerRepo, "a1", "teacher-1")

	resp, err := review.GradeAnswer("a1", dto.GradeAnswerRequest{
		TeacherID: "teacher-1",
		Grade:     floatPtr(4),
		Comment:   "solid",
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, resp.TeacherGrade)
	assert.Equal(t, "solid", resp.Comment)
	assert.Equal(t, 3.5, resp.PredictedGrade, "the prediction stays on the record")

	// The grade is assigned exactly once; a second attempt is rejected.
	_, err = review.GradeAnswer("a1", dto.GradeAnswerRequest{TeacherID: "teacher-1", Grade: floatPtr(2)})
	assert.ErrorIs(t, err, ErrAlreadyGraded)

	stored, err := answerRepo.FindByID("a1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.TeacherGrade)
}

func TestGradeAnswer_WrongTeacherRejected(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	review := NewReviewService(answerRepo)
	seedPendingAnswer(t, answerRepo, "a1", "teacher-1")

	_, err := review.GradeAnswer("a1", dto.GradeAnswerRequest{TeacherID: "teacher-2", Grade: floatPtr(4)})
	assert.Error(t, err)

	stored, err := answerRepo.FindByID("a1")
	require.NoError(t, err)
	assert.False(t, stored.Graded())
}

func TestGradeAnswer_ZeroIsAValidGrade(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	review := NewReviewService(answerRepo)
	seedPendingAnswer(t, answerRepo, "a1", "teacher-1")

	resp, err := review.GradeAnswer("a1", dto.GradeAnswerRequest{TeacherID: "teacher-1", Grade: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.TeacherGrade)

	stored, err := answerRepo.FindByID("a1")
	require.NoError(t, err)
	assert.True(t, stored.Graded(), "a zero grade still counts as graded")
}

func TestPendingAndEvaluatedQueues(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	review := NewReviewService(answerRepo)

	seedPendingAnswer(t, answerRepo, "a1", "teacher-1")
	seedPendingAnswer(t, answerRepo, "a2", "teacher-1")
	seedPendingAnswer(t, answerRepo, "a3", "teacher-2")

	_, err := review.GradeAnswer("a2", dto.GradeAnswerRequest{TeacherID: "teacher-1", Grade: floatPtr(3)})
	require.NoError(t, err)

	pending, err := review.PendingAnswers("teacher-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a1", pending[0].ID)

	evaluated, err := review.EvaluatedAnswers("teacher-1")
	require.NoError(t, err)
	require.Len(t, evaluated, 1)
	assert.Equal(t, "a2", evaluated[0].ID)
}

func TestStudentAnswers_ScopedToTeachers(t *testing.T) {
	_, answerRepo := newTestRepos(t)
	review := NewReviewService(answerRepo)

	require.NoError(t, answerRepo.Create(&model.Answer{
		ID: "a1", QuestionID: "q1", TeacherID: "t1", AuthorID: "student-1",
		Text: "mine", TeacherGrade: model.UngradedSentinel, PredictedGrade: 3,
		Source: model.SourceApplication,
	}))
	require.NoError(t, answerRepo.Create(&model.Answer{
		ID: "a2", QuestionID: "q2", TeacherID: "t2", AuthorID: "student-1",
		Text: "mine too", TeacherGrade: model.UngradedSentinel, PredictedGrade: 2,
		Source: model.SourceApplication,
	}))
	require.NoError(t, answerRepo.Create(&model.Answer{
		ID: "a3", QuestionID: "q1", TeacherID: "t1", AuthorID: "student-2",
		Text: "not mine", TeacherGrade: model.UngradedSentinel, PredictedGrade: 1,
		Source: model.SourceApplication,
	}))

	mine, err := review.StudentAnswers("student-1", []string{"t1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a1", mine[0].ID)

	all, err := review.StudentAnswers("student-1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
