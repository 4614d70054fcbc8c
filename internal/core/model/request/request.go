package request

import (
	"time"

	"todoapi/internal/core/domain"
)

// DateFieldError names the request field whose date could not be parsed.
type DateFieldError struct {
	Field string
	Err   error
}

func (e *DateFieldError) Error() string {
	return "The " + e.Field + " does not match the format d/m/Y."
}

func (e *DateFieldError) Unwrap() error {
	return e.Err
}

func parseDate(field, value string) (time.Time, error) {
	date, err := domain.ParseDate(value)
	if err != nil {
		return date, &DateFieldError{Field: field, Err: err}
	}

	return date, nil
}

// Fields are pointers so an absent key can be told apart from an empty one.
// On create an empty or blank string counts as missing (not_blank).

type TodoCreateRequest struct {
	Title  *string `json:"title" validate:"required,not_blank,min=1"`
	Body   *string `json:"body" validate:"required,not_blank,min=1"`
	Status *string `json:"status" validate:"required,not_blank,min=1"`
	Start  *string `json:"start" validate:"required,not_blank,date_format"`
	End    *string `json:"end" validate:"required,not_blank,date_format"`
}

func (r TodoCreateRequest) ToDomain() (domain.Todo, error) {
	start, err := parseDate("start", *r.Start)
	if err != nil {
		return domain.Todo{}, err
	}

	end, err := parseDate("end", *r.End)
	if err != nil {
		return domain.Todo{}, err
	}

	return domain.Todo{
		Title:  *r.Title,
		Body:   *r.Body,
		Status: *r.Status,
		Start:  start,
		End:    end,
	}, nil
}

type TodoUpdateRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Body   *string `json:"body" validate:"omitempty,min=1"`
	Status *string `json:"status" validate:"omitempty,min=1"`
	Start  *string `json:"start" validate:"omitempty,date_format"`
	End    *string `json:"end" validate:"omitempty,date_format"`
}

func (r TodoUpdateRequest) ToPatch() (domain.TodoPatch, error) {
	patch := domain.TodoPatch{
		Title:  r.Title,
		Body:   r.Body,
		Status: r.Status,
	}

	if r.Start != nil {
		start, err := parseDate("start", *r.Start)
		if err != nil {
			return domain.TodoPatch{}, err
		}

		patch.Start = &start
	}

	if r.End != nil {
		end, err := parseDate("end", *r.End)
		if err != nil {
			return domain.TodoPatch{}, err
		}

		patch.End = &end
	}

	return patch, nil
}

type TodoStatusCreateRequest struct {
	Slug *string `json:"slug" validate:"required,not_blank,min=1"`
}

type TodoStatusUpdateRequest struct {
	Slug *string `json:"slug" validate:"omitempty,min=1"`
}

func (r TodoStatusUpdateRequest) ToPatch() domain.TodoStatusPatch {
	return domain.TodoStatusPatch{Slug: r.Slug}
}
