package repository

import (
	"sort"

	"github.com/lcavallin/gradelens/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	FindByID(id string) (*model.Answer, error)
	Update(answer *model.Answer) error
	FindByAuthor(authorID string, teacherIDs []string) ([]model.Answer, error)
	FindPendingByTeacher(teacherID string) ([]model.Answer, error)
	FindGradedByTeacher(teacherID string) ([]model.Answer, error)
	ExistingIDs() (map[string]struct{}, error)
	NearestGraded(questionID string, embedding []float32, k int) ([]model.Neighbor, error)
	Count() (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) FindByID(id string) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.First(&answer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByAuthor(authorID string, teacherIDs []string) ([]model.Answer, error) {
	var answers []model.Answer
	q := r.db.Where("author_id = ?", authorID)
	if len(teacherIDs) > 0 {
		q = q.Where("teacher_id IN ?", teacherIDs)
	}
	if err := q.Order("created_at desc").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindPendingByTeacher(teacherID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("teacher_id = ? AND teacher_grade = ?", teacherID, model.UngradedSentinel).
		Order("created_at asc").Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindGradedByTeacher(teacherID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("teacher_id = ? AND teacher_grade > ?", teacherID, model.UngradedSentinel).
		Order("created_at desc").Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) ExistingIDs() (map[string]struct{}, error) {
	var ids []string
	if err := r.db.Model(&model.Answer{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// NearestGraded returns up to k teacher-graded answers to the question,
// ordered by ascending cosine distance from the given embedding. Ungraded
// answers never qualify as reference points. The ascending order is a hard
// precondition of the consensus scorer, so the sort happens here rather than
// being trusted to the storage layer.
func (r *answerRepository) NearestGraded(questionID string, embedding []float32, k int) ([]model.Neighbor, error) {
	var candidates []model.Answer
	err := r.db.Where("question_id = ? AND teacher_grade > ?", questionID, model.UngradedSentinel).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	neighbors := make([]model.Neighbor, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if len(c.Embedding) == 0 {
			continue
		}
		neighbors = append(neighbors, model.Neighbor{
			Distance: cosineDistance(embedding, c.Embedding),
			Grade:    c.TeacherGrade,
			AuthorID: c.AuthorID,
			Document: c.Text,
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

func (r *answerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).Count(&count).Error
	return count, err
}
