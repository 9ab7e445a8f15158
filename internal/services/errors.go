package services

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("failed to extract document text")
	ErrLLMRequestFailed  = errors.New("llm request failed")
	ErrNoValidJSON       = errors.New("llm response did not contain valid JSON")
	ErrInvalidRequest    = errors.New("invalid request")
)
