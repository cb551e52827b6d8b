package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserFilter limits user listings.
type UserFilter struct {
	TeamID *uuid.UUID
	Limit  int
	Offset int
}

// TeamFilter limits team listings.
type TeamFilter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

// TaskFilter limits task listings.
type TaskFilter struct {
	TeamID     *uuid.UUID
	AssigneeID *uuid.UUID
	CreatorID  *uuid.UUID
	Status     *TaskStatus
	Limit      int
	Offset     int
}

// MeetingFilter limits meeting listings.
type MeetingFilter struct {
	TeamID        *uuid.UUID
	CreatorID     *uuid.UUID
	ParticipantID *uuid.UUID
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// EvaluationFilter limits evaluation listings.
type EvaluationFilter struct {
	TeamID          *uuid.UUID
	EvaluatedUserID *uuid.UUID
	EvaluatorID     *uuid.UUID
	Limit           int
	Offset          int
}
