package utils

import "errors"

var (
	ErrPlaceNotFound       = errors.New("place not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrDatabaseError       = errors.New("database error")
	ErrEmbeddingFailed     = errors.New("embedding generation failed")
	ErrCompletionFailed    = errors.New("completion generation failed")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrDocumentNotFound    = errors.New("document not found in content source")
)
