package domain

import "time"

type TodoStatus struct {
	ID        int64
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TodoStatusPatch struct {
	Slug *string
}
