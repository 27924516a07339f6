package models

import "time"

type TaskStatus int

const (
	StatusTodo TaskStatus = iota
	StatusInProgress
	StatusDone
)

func (s TaskStatus) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
)

func (p TaskPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

type Task struct {
	ID             int64
	Title          string
	Description    string
	Deadline       time.Time
	Status         TaskStatus
	Priority       TaskPriority
	ProjectID      int64
	AssignedUserID *int64
	CompletionNote *string
}
