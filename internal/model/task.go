package model

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusPending    TaskStatus = "pending"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusInProgress, TaskStatusPending:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	default:
		return false
	}
}

// Task belongs to exactly one meeting. AssignedTo is a display name and is
// not checked against the attendee list.
type Task struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title" validate:"notblank"`
	AssignedTo string       `json:"assigned_to"`
	DueDate    string       `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status     TaskStatus   `json:"status" validate:"oneof=completed in-progress pending"`
	Priority   TaskPriority `json:"priority" validate:"oneof=high medium low"`
}

type TaskCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Total      int `json:"total"`
}

// AddTask appends task with a fresh id. Status defaults to pending and
// priority to medium.
func (m *Meeting) AddTask(task Task) (Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return Task{}, &ValidationError{Fields: []FieldError{{Field: "title", Message: "is required"}}}
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}
	if !task.Status.IsValid() {
		return Task{}, &ValidationError{Fields: []FieldError{{Field: "status", Message: fmt.Sprintf("must be one of %s, %s, %s", TaskStatusCompleted, TaskStatusInProgress, TaskStatusPending)}}}
	}
	if !task.Priority.IsValid() {
		return Task{}, &ValidationError{Fields: []FieldError{{Field: "priority", Message: fmt.Sprintf("must be one of %s, %s, %s", TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow)}}}
	}

	task.ID = m.Sequences.Tasks.Next()
	m.Tasks = append(m.Tasks, task)
	return task, nil
}

func (m *Meeting) SetTaskStatus(id int64, status TaskStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid task status: %s", status)
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			m.Tasks[i].Status = status
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *Meeting) RemoveTask(id int64) bool {
	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (m Meeting) TaskCounts() TaskCounts {
	counts := TaskCounts{Total: len(m.Tasks)}
	for _, task := range m.Tasks {
		switch task.Status {
		case TaskStatusCompleted:
			counts.Completed++
		case TaskStatusInProgress:
			counts.InProgress++
		default:
			counts.Pending++
		}
	}
	return counts
}
