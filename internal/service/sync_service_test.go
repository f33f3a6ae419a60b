package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lcavallin/gradelens/internal/contentid"
	"github.com/lcavallin/gradelens/internal/model"
	"github.com/lcavallin/gradelens/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	sync         SyncService
	dir          string
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	questionRepo, answerRepo := newTestRepos(t)
	return &syncFixture{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		sync:         NewSyncService(questionRepo, answerRepo, newStubEmbedder()),
		dir:          t.TempDir(),
	}
}

func (f *syncFixture) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const questionsCSV = `id,title,text,label,id_docente,data_creazione,archived
id_0,Concurrency,What is a goroutine?,concurrency,teacher-1,2024-03-01T10:00:00,false
id_1,Memory,Explain the garbage collector,runtime,teacher-1,2024-03-01T10:05:00,true
`

const answersCSV = `id,id_domanda,title,text,label,id_docente,id_autore,data_creazione
id_0,id_0,Concurrency,A goroutine is a lightweight thread,5,teacher-1,student-1,2024-03-02T09:00:00
id_1,id_0,Concurrency,Something about threads,2.5,teacher-1,student-2,2024-03-02T09:10:00
`

func TestSyncDirectory_ImportsQuestionsAndAnswers(t *testing.T) {
	f := newSyncFixture(t)
	f.writeFile(t, "export_domande_2024.csv", questionsCSV)
	f.writeFile(t, "export_risposte_2024.csv", answersCSV)
	f.writeFile(t, "notes.txt", "ignored")

	reports, err := f.sync.SyncDirectory(context.Background(), f.dir)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "export_domande_2024.csv", reports[0].File)
	assert.Equal(t, 2, reports[0].Inserted)
	assert.Equal(t, "export_risposte_2024.csv", reports[1].File)
	assert.Equal(t, 2, reports[1].Inserted)

	// Export keys are positional, so they are rewritten into stable hashes
	// shared by the question and its answers.
	question, err := f.questionRepo.FindByID(contentid.DeriveID("id_0"))
	require.NoError(t, err)
	assert.Equal(t, "What is a goroutine?", question.Text)
	assert.Equal(t, "concurrency", question.Category)
	assert.Equal(t, model.SourceInternalTraining, question.Source)
	assert.NotEmpty(t, question.Embedding)

	answer, err := f.answerRepo.FindByID(contentid.DeriveID("id_1"))
	require.NoError(t, err)
	assert.Equal(t, question.ID, answer.QuestionID)
	assert.Equal(t, 2.5, answer.TeacherGrade)
	assert.Equal(t, "student-2", answer.AuthorID)
	assert.NotEmpty(t, answer.Embedding)
}

func TestSyncDirectory_RerunIsNoOp(t *testing.T) {
	f := newSyncFixture(t)
	f.writeFile(t, "export_domande_2024.csv", questionsCSV)
	f.writeFile(t, "export_risposte_2024.csv", answersCSV)

	_, err := f.sync.SyncDirectory(context.Background(), f.dir)
	require.NoError(t, err)

	reports, err := f.sync.SyncDirectory(context.Background(), f.dir)
	require.NoError(t, err)
	for _, report := range reports {
		assert.Zero(t, report.Inserted, report.File)
		assert.Equal(t, 2, report.Skipped, report.File)
	}

	count, err := f.answerRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSyncAnswersFile_MalformedRowsSkipped(t *testing.T) {
	f := newSyncFixture(t)
	path := f.writeFile(t, "export_risposte_bad.csv", `id,id_domanda,title,text,label,id_docente,id_autore,data_creazione
id_0,id_0,Concurrency,Good answer,5,teacher-1,student-1,2024-03-02T09:00:00
id_1,id_0,Concurrency,Missing grade,,teacher-1,student-2,2024-03-02T09:10:00
id_2,id_0,Concurrency,Bad grade,not-a-number,teacher-1,student-3,2024-03-02T09:20:00
id_3,,Concurrency,No question reference,4,teacher-1,student-4,2024-03-02T09:30:00
id_4,id_0,Concurrency,Bad timestamp,4,teacher-1,student-5,yesterday
`)

	report, err := f.sync.SyncAnswersFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 4, report.Malformed)
	assert.Zero(t, report.Skipped)

	count, err := f.answerRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSyncAnswersFile_TeacherReferenceExport(t *testing.T) {
	f := newSyncFixture(t)
	// Reference exports carry no id_autore column: the teacher is the author
	// and the grade defaults to the maximum.
	path := f.writeFile(t, "export_risposte_docenti.csv", `id,id_domanda,title,text,id_docente,data_creazione
id_0,id_0,Concurrency,The canonical answer,teacher-1,2024-03-01T10:00:00
`)

	report, err := f.sync.SyncAnswersFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	answer, err := f.answerRepo.FindByID(contentid.DeriveID("id_0"))
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", answer.AuthorID)
	assert.Equal(t, 5.0, answer.TeacherGrade)
	assert.Equal(t, model.UngradedSentinel, answer.PredictedGrade)
}

func TestSyncQuestionsFile_DuplicateRowsWithinFile(t *testing.T) {
	f := newSyncFixture(t)
	path := f.writeFile(t, "export_domande_dup.csv", `id,title,text,label,id_docente,data_creazione
id_0,Concurrency,What is a goroutine?,concurrency,teacher-1,2024-03-01T10:00:00
id_0,Concurrency,What is a goroutine?,concurrency,teacher-1,2024-03-01T10:00:00
`)

	report, err := f.sync.SyncQuestionsFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
}

func TestSyncQuestionsFile_ArchivedFlagImported(t *testing.T) {
	f := newSyncFixture(t)
	path := f.writeFile(t, "export_domande_arch.csv", questionsCSV)

	_, err := f.sync.SyncQuestionsFile(context.Background(), path)
	require.NoError(t, err)

	archived, err := f.questionRepo.FindByID(contentid.DeriveID("id_1"))
	require.NoError(t, err)
	assert.True(t, archived.Archived)
}
