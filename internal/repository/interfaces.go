// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// TxInterface scopes a unit of work: fn runs inside one transaction,
// rolled back entirely when fn returns an error.
type TxInterface interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserInterface exposes user persistence operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error)
	SearchUsers(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.User, error)
	GetTeamMembers(ctx context.Context, teamID uuid.UUID) ([]entities.User, error)
	GetUsersWithoutTeam(ctx context.Context, limit, offset int) ([]entities.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TeamInterface exposes team persistence operations.
type TeamInterface interface {
	CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	GetTeamByName(ctx context.Context, name string) (*entities.Team, error)
	GetTeamWithMembers(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	UpdateTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error)
	SearchTeams(ctx context.Context, query string, limit int) ([]entities.Team, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// TaskInterface exposes task persistence operations.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error)
	SearchTasks(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.Task, error)
	GetOverdueTasks(ctx context.Context, teamID *uuid.UUID, now time.Time, limit int) ([]entities.Task, error)
	CountTasksByStatus(ctx context.Context, teamID, assigneeID *uuid.UUID) (map[entities.TaskStatus]int64, error)
}

// MeetingInterface exposes meeting persistence operations.
type MeetingInterface interface {
	CreateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error)
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	GetMeetingWithParticipants(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error)
	DeleteMeeting(ctx context.Context, id uuid.UUID) error
	AddParticipant(ctx context.Context, meetingID, userID uuid.UUID) error
	RemoveParticipant(ctx context.Context, meetingID, userID uuid.UUID) error
	IsParticipant(ctx context.Context, meetingID, userID uuid.UUID) (bool, error)
	ListMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error)
	GetMeetingsByDate(ctx context.Context, day time.Time, teamID, participantID *uuid.UUID) ([]entities.Meeting, error)
	GetUpcomingMeetings(ctx context.Context, now time.Time, teamID, participantID *uuid.UUID, limit int) ([]entities.Meeting, error)
	CheckTimeConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]entities.Meeting, error)
	CountMeetingsByPeriod(ctx context.Context, since time.Time, teamID, participantID *uuid.UUID) (int64, error)
}

// EvaluationInterface exposes evaluation persistence operations.
type EvaluationInterface interface {
	CreateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error)
	GetEvaluation(ctx context.Context, id uuid.UUID) (*entities.Evaluation, error)
	GetEvaluationByTask(ctx context.Context, taskID uuid.UUID) (*entities.Evaluation, error)
	UpdateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id uuid.UUID) error
	ListEvaluations(ctx context.Context, filter entities.EvaluationFilter) ([]entities.Evaluation, error)
	GetUserScoreDistribution(ctx context.Context, userID uuid.UUID) (map[entities.Score]int64, error)
	CountEvaluationsByPeriod(ctx context.Context, since time.Time, teamID, evaluatedUserID *uuid.UUID) (int64, error)
}
