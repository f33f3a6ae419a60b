package model

import "time"

// UngradedSentinel is stored in TeacherGrade while no teacher has graded the
// answer, and in PredictedGrade while no prediction has been computed.
const UngradedSentinel float64 = -1

type Answer struct {
	ID             string    `gorm:"primarykey;size:64" json:"id"`
	QuestionID     string    `gorm:"not null;index" json:"question_id"`
	QuestionText   string    `gorm:"type:text" json:"question_text"`
	TeacherID      string    `gorm:"not null;index" json:"teacher_id"`
	AuthorID       string    `gorm:"not null;index" json:"author_id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	TeacherGrade   float64   `gorm:"not null;default:-1" json:"teacher_grade"`
	PredictedGrade float64   `gorm:"not null;default:-1" json:"predicted_grade"`
	Comment        string    `json:"comment"`
	Source         string    `gorm:"not null" json:"source"`
	Embedding      []float32 `gorm:"serializer:json" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Graded reports whether a teacher has assigned a grade to the answer.
func (a *Answer) Graded() bool {
	return a.TeacherGrade > UngradedSentinel
}

// Neighbor is one teacher-graded answer retrieved as similar to a candidate
// text, with its cosine distance. Slices of Neighbor are always ordered by
// ascending distance; the scoring short-circuits depend on index 0 being the
// closest match.
type Neighbor struct {
	Distance float64 `json:"distance"`
	Grade    float64 `json:"grade"`
	AuthorID string  `json:"author_id"`
	Document string  `json:"document"`
}
