package services

import "errors"

var (
	ErrSessionNotFound          = errors.New("interview session not found")
	ErrSessionCompleted         = errors.New("interview session already completed")
	ErrInvalidQuestionNumber    = errors.New("invalid question number")
	ErrQuestionAlreadyAnswered  = errors.New("question already answered")
	ErrQuestionGenerationFailed = errors.New("failed to generate interview questions")
	ErrTranscriptionFailed      = errors.New("failed to transcribe audio")
)
