// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	// StatusOpen marks a task as not started.
	StatusOpen TaskStatus = "Open"
	// StatusInProgress marks a task as being worked on.
	StatusInProgress TaskStatus = "In progress"
	// StatusDone marks a task as completed.
	StatusDone TaskStatus = "Done"
)

// Valid reports whether the status belongs to the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is allowed.
// Done can be reopened to either other state, but never repeated.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case StatusOpen:
		return next == StatusInProgress || next == StatusDone
	case StatusInProgress:
		return next == StatusOpen || next == StatusDone
	case StatusDone:
		return next == StatusOpen || next == StatusInProgress
	}
	return false
}

// Task is a domain model of a team task.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Deadline    time.Time
	Status      TaskStatus
	TeamID      uuid.UUID
	CreatorID   uuid.UUID
	AssigneeID  *uuid.UUID
	CreatedAt   time.Time
}

// TaskStats aggregates task counters for a team or assignee.
type TaskStats struct {
	StatusCounts   map[TaskStatus]int64 `json:"status_counts"`
	TotalTasks     int64                `json:"total_tasks"`
	OverdueCount   int64                `json:"overdue_count"`
	CompletionRate float64              `json:"completion_rate"`
}
