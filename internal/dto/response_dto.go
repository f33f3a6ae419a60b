package dto

import "time"

type QuestionResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	TeacherID string    `json:"teacher_id"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

type AnswerResponse struct {
	ID             string    `json:"id"`
	QuestionID     string    `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	TeacherID      string    `json:"teacher_id"`
	AuthorID       string    `json:"author_id"`
	Text           string    `json:"text"`
	TeacherGrade   float64   `json:"teacher_grade"`
	PredictedGrade float64   `json:"predicted_grade"`
	Comment        string    `json:"comment"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubmissionResponse is the outcome of the prediction pipeline for one
// submitted answer. Predicted is false when the question had no graded
// reference answers; the answer is then recorded for manual grading only and
// PredictedGrade stays at the -1 sentinel.
type SubmissionResponse struct {
	Answer    AnswerResponse `json:"answer"`
	Predicted bool           `json:"predicted"`
	Persisted bool           `json:"persisted"`
}

type NeighborResponse struct {
	Distance float64 `json:"distance"`
	Grade    float64 `json:"grade"`
	AuthorID string  `json:"author_id"`
	Document string  `json:"document"`
}

// StudentQuestionsResponse partitions a student's assigned questions.
type StudentQuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

type EvaluationResult struct {
	QuestionID   string  `json:"question_id"`
	Expected     float64 `json:"expected"`
	Predicted    float64 `json:"predicted"`
	Passed       bool    `json:"passed"`
	NoPrediction bool    `json:"no_prediction"`
}

type EvaluationResponse struct {
	Total    int                `json:"total"`
	Passed   int                `json:"passed"`
	Accuracy float64            `json:"accuracy"`
	Results  []EvaluationResult `json:"results"`
}

// SyncReport summarizes one source file pass of the corpus synchronizer.
type SyncReport struct {
	File      string `json:"file"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	Malformed int    `json:"malformed"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
