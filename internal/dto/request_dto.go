package dto

// SubmitAnswerRequest is a student handing in a free-text answer.
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	AuthorID   string `json:"author_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// CreateQuestionRequest creates a question together with its teacher
// reference answer.
type CreateQuestionRequest struct {
	TeacherID       string `json:"teacher_id" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Text            string `json:"text" binding:"required"`
	ReferenceAnswer string `json:"reference_answer" binding:"required"`
}

// GradeAnswerRequest assigns the teacher grade to a pending answer.
type GradeAnswerRequest struct {
	TeacherID string   `json:"teacher_id" binding:"required"`
	Grade     *float64 `json:"grade" binding:"required,gte=0,lte=5"`
	Comment   string   `json:"comment"`
}

// ArchiveQuestionRequest toggles the archived flag, the only mutation a
// question ever sees.
type ArchiveQuestionRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

// EvaluationSample is one labeled answer used for accuracy measurement.
type EvaluationSample struct {
	QuestionID string  `json:"question_id" binding:"required"`
	Text       string  `json:"text" binding:"required"`
	Grade      float64 `json:"grade" binding:"gte=0,lte=5"`
}

// EvaluationRequest runs the prediction pipeline over labeled samples
// without persisting anything.
type EvaluationRequest struct {
	Samples []EvaluationSample `json:"samples" binding:"required,min=1,dive"`
}
