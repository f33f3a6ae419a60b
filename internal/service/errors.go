package service

import "errors"

var (
	// ErrEmptyEvidence is returned when the scorer or adjuster is invoked
	// with zero neighbors. The retriever filters this case out, so hitting
	// it is a programming error, not a data condition.
	ErrEmptyEvidence = errors.New("neighbor evidence must not be empty")

	// ErrInvalidConfidenceBounds is returned when reductionStart is negative
	// or greater than reductionEnd.
	ErrInvalidConfidenceBounds = errors.New("invalid confidence reduction bounds")

	// ErrDuplicateAnswer is returned when persisting an answer whose id
	// already exists, i.e. the same author resubmitting to the same question.
	ErrDuplicateAnswer = errors.New("an answer by this author already exists for this question")

	// ErrQuestionNotFound is returned when a submission references an
	// unknown question.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAlreadyGraded is returned when a teacher grades an answer that has
	// already received a grade; the graded transition happens exactly once.
	ErrAlreadyGraded = errors.New("answer has already been graded")
)
