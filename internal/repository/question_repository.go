package repository

import (
	"github.com/lcavallin/gradelens/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id string) (*model.Question, error)
	FindAssigned(teacherIDs []string, includeArchived bool) ([]model.Question, error)
	ExistingIDs() (map[string]struct{}, error)
	SetArchived(id string, archived bool) error
	Count() (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindAssigned returns the questions authored by any of the given teachers.
// Archived questions are excluded unless includeArchived is set; they remain
// valid retrieval targets for scoring, only the assignment views hide them.
func (r *questionRepository) FindAssigned(teacherIDs []string, includeArchived bool) ([]model.Question, error) {
	var questions []model.Question
	q := r.db.Where("teacher_id IN ?", teacherIDs)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) ExistingIDs() (map[string]struct{}, error) {
	var ids []string
	if err := r.db.Model(&model.Question{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *questionRepository) SetArchived(id string, archived bool) error {
	res := r.db.Model(&model.Question{}).Where("id = ?", id).Update("archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}
