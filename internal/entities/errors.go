// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMeetingNotFound signals missing meeting.
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrEvaluationNotFound signals missing evaluation.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrInviteInvalid signals an unknown, deactivated or expired invite code.
	ErrInviteInvalid = errors.New("invite code invalid or expired")

	// ErrPermissionDenied signals that a permission predicate returned false.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation signals a violated domain invariant.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrEmailExists signals email uniqueness conflict.
	ErrEmailExists = errors.New("email exists")
	// ErrTeamExists signals team name conflict.
	ErrTeamExists = errors.New("team exists")
	// ErrEvaluationExists signals that the task already has an evaluation.
	ErrEvaluationExists = errors.New("evaluation exists")
)
