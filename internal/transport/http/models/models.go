// Package models defines the HTTP transport DTOs.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorCode is the machine-readable error discriminator.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	CodeEmailExists      ErrorCode = "EMAIL_EXISTS"
	CodeTeamExists       ErrorCode = "TEAM_EXISTS"
	CodeEvaluationExists ErrorCode = "EVALUATION_EXISTS"
	CodeInviteInvalid    ErrorCode = "INVITE_INVALID"
	CodeInternal         ErrorCode = "INTERNAL"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code and message.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// User is the transport shape of a user.
type User struct {
	ID       uuid.UUID  `json:"id"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	Role     string     `json:"role"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
	IsActive bool       `json:"is_active"`
}

// Team is the transport shape of a team.
type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Members     []User    `json:"members,omitempty"`
}

// Task is the transport shape of a task.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Deadline    time.Time  `json:"deadline"`
	Status      string     `json:"status"`
	TeamID      uuid.UUID  `json:"team_id"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Meeting is the transport shape of a meeting.
type Meeting struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	StartsAt       time.Time   `json:"starts_at"`
	TeamID         uuid.UUID   `json:"team_id"`
	CreatorID      uuid.UUID   `json:"creator_id"`
	ParticipantIDs []uuid.UUID `json:"participant_ids,omitempty"`
}

// Evaluation is the transport shape of a task grade.
type Evaluation struct {
	ID              uuid.UUID `json:"id"`
	TaskID          uuid.UUID `json:"task_id"`
	EvaluatorID     uuid.UUID `json:"evaluator_id"`
	EvaluatedUserID uuid.UUID `json:"evaluated_user_id"`
	Score           string    `json:"score"`
	Comment         string    `json:"comment,omitempty"`
}

// Invite is the transport shape of a team invite code.
type Invite struct {
	Code      string    `json:"code"`
	TeamID    uuid.UUID `json:"team_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUserRequest registers a new user.
type CreateUserRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// UpdateUserRequest edits profile fields; empty fields are kept.
type UpdateUserRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// AssignRoleRequest changes a user's role.
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// SetActiveRequest toggles a user's activity flag.
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// CreateTeamRequest creates a team.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateTeamRequest edits team fields; empty fields are kept.
type UpdateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MemberRequest names a user for membership operations.
type MemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// TransferOwnershipRequest hands the team to another member.
type TransferOwnershipRequest struct {
	NewOwnerID uuid.UUID `json:"new_owner_id"`
}

// RedeemInviteRequest joins a team by code.
type RedeemInviteRequest struct {
	Code string `json:"code"`
}

// CreateTaskRequest creates a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	TeamID      uuid.UUID  `json:"team_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

// UpdateTaskRequest edits task fields; zero fields are kept.
type UpdateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
}

// AssignTaskRequest sets or clears the assignee.
type AssignTaskRequest struct {
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

// ChangeStatusRequest moves a task along its lifecycle.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// CreateMeetingRequest schedules a meeting.
type CreateMeetingRequest struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	StartsAt       time.Time   `json:"starts_at"`
	TeamID         uuid.UUID   `json:"team_id"`
	ParticipantIDs []uuid.UUID `json:"participant_ids"`
}

// UpdateMeetingRequest edits meeting fields; zero fields are kept.
type UpdateMeetingRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
}

// CreateEvaluationRequest grades a completed task.
type CreateEvaluationRequest struct {
	TaskID  uuid.UUID `json:"task_id"`
	Score   string    `json:"score"`
	Comment string    `json:"comment"`
}

// UpdateEvaluationRequest edits a grade; empty fields are kept.
type UpdateEvaluationRequest struct {
	Score   string `json:"score"`
	Comment string `json:"comment"`
}
