package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrTodoStatusNotFound = errors.New("todo status not found")

	// ErrPersistence wraps every storage failure that is not a missing row.
	ErrPersistence = errors.New("persistence failure")
)

// InvalidStatusError is returned when a todo references a slug that is not
// part of the todo status vocabulary.
type InvalidStatusError struct {
	Slug string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid todo status %q", e.Slug)
}

type DuplicateSlugError struct {
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("todo status slug %q already exists", e.Slug)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrTodoNotFound) || errors.Is(err, ErrTodoStatusNotFound)
}
