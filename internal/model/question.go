package model

import "time"

// Question source values.
const (
	SourceInternalTraining = "internal_training"
	SourceApplication      = "application"
)

type Question struct {
	ID        string    `gorm:"primarykey;size:64" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	TeacherID string    `gorm:"not null;index" json:"teacher_id"`
	Category  string    `json:"category"`
	Source    string    `gorm:"not null" json:"source"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	Embedding []float32 `gorm:"serializer:json" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
