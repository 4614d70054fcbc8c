package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
)

func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(merge(map[string]any{
		"Title":  "Write the report",
		"Body":   "Quarterly numbers",
		"Status": "pending",
		"Start":  time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		"End":    time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
	}, customData))
}

func NewTodoStatus[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(merge(map[string]any{
		"Slug": "pending",
	}, customData))
}

func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	for _, data := range overrides {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return defaults
}
