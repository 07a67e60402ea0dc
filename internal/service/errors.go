package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResumeNotFound struct {
	error
}

func NewErrResumeNotFound(id uuid.UUID) *ErrResumeNotFound {
	return &ErrResumeNotFound{fmt.Errorf("resume %s not found", id)}
}

type ErrExecutionNotFound struct {
	error
}

func NewErrExecutionNotFound(id uuid.UUID) *ErrExecutionNotFound {
	return &ErrExecutionNotFound{fmt.Errorf("execution %s not found", id)}
}

// ErrInvalidResume covers malformed uploads: missing user, empty content,
// undecodable file payloads.
type ErrInvalidResume struct {
	error
}

func NewErrInvalidResume(msg string) *ErrInvalidResume {
	return &ErrInvalidResume{fmt.Errorf("invalid resume: %s", msg)}
}

func NewErrInvalidResumeWrap(err error) *ErrInvalidResume {
	return &ErrInvalidResume{fmt.Errorf("invalid resume: %w", err)}
}
