package domain

import (
	"time"
)

// DateLayout is the wire format of todo start and end dates (d/m/Y).
const DateLayout = "02/01/2006"

type Todo struct {
	ID        int64
	Title     string
	Body      string
	Status    string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoPatch carries the fields of a partial update. Nil means untouched.
type TodoPatch struct {
	Title  *string
	Body   *string
	Status *string
	Start  *time.Time
	End    *time.Time
}

// Apply copies every supplied field of the patch onto the todo and reports
// which columns changed.
func (t *Todo) Apply(patch TodoPatch) []string {
	changed := make([]string, 0, 5)

	if patch.Title != nil && *patch.Title != t.Title {
		t.Title = *patch.Title
		changed = append(changed, "title")
	}

	if patch.Body != nil && *patch.Body != t.Body {
		t.Body = *patch.Body
		changed = append(changed, "body")
	}

	if patch.Status != nil && *patch.Status != t.Status {
		t.Status = *patch.Status
		changed = append(changed, "status")
	}

	if patch.Start != nil && !patch.Start.Equal(t.Start) {
		t.Start = *patch.Start
		changed = append(changed, "start")
	}

	if patch.End != nil && !patch.End.Equal(t.End) {
		t.End = *patch.End
		changed = append(changed, "end")
	}

	return changed
}

func (t *Todo) StartString() string {
	return FormatDate(t.Start)
}

func (t *Todo) EndString() string {
	return FormatDate(t.End)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func FormatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(DateLayout)
}
