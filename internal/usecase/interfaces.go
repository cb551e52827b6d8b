package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// UserUsecaseInterface abstracts user-related operations for delivery layer.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	User(ctx context.Context, actorID, userID uuid.UUID) (*entities.User, error)
	UserByEmail(ctx context.Context, actorID uuid.UUID, email string) (*entities.User, error)
	UpdateUser(ctx context.Context, actorID uuid.UUID, user entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
	AssignRole(ctx context.Context, actorID, userID uuid.UUID, role entities.Role) (*entities.User, error)
	SetActiveUser(ctx context.Context, actorID, userID uuid.UUID, isActive bool) (*entities.User, error)
	ListUsers(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit, offset int) ([]entities.User, error)
	SearchUsers(ctx context.Context, actorID uuid.UUID, query string, teamID *uuid.UUID, limit int) ([]entities.User, error)
	UsersWithoutTeam(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]entities.User, error)
}

// TeamUsecaseInterface abstracts team-related operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, actorID uuid.UUID, team entities.Team) (*entities.Team, error)
	Team(ctx context.Context, actorID, teamID uuid.UUID) (*entities.Team, error)
	TeamByName(ctx context.Context, actorID uuid.UUID, name string) (*entities.Team, error)
	UpdateTeam(ctx context.Context, actorID uuid.UUID, team entities.Team) (*entities.Team, error)
	DeleteTeam(ctx context.Context, actorID, teamID uuid.UUID) error
	ListTeams(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]entities.Team, error)
	SearchTeams(ctx context.Context, actorID uuid.UUID, query string, limit int) ([]entities.Team, error)
	TeamMembers(ctx context.Context, actorID, teamID uuid.UUID) ([]entities.User, error)
}

// MembershipUsecaseInterface abstracts team membership workflows.
type MembershipUsecaseInterface interface {
	AddMember(ctx context.Context, actorID, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, actorID, teamID, userID uuid.UUID) error
	LeaveTeam(ctx context.Context, actorID, teamID uuid.UUID) error
	TransferOwnership(ctx context.Context, actorID, teamID, newOwnerID uuid.UUID) (*entities.Team, error)
	IssueInvite(ctx context.Context, actorID, teamID uuid.UUID) (*entities.Invite, error)
	RedeemInvite(ctx context.Context, actorID uuid.UUID, code string) (*entities.Team, error)
	RevokeInvite(ctx context.Context, actorID uuid.UUID, code string) error
}

// TaskUsecaseInterface abstracts task-related operations.
type TaskUsecaseInterface interface {
	CreateTask(ctx context.Context, actorID uuid.UUID, task entities.Task) (*entities.Task, error)
	Task(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, actorID uuid.UUID, task entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error
	AssignTask(ctx context.Context, actorID, taskID uuid.UUID, assigneeID *uuid.UUID) (*entities.Task, error)
	ChangeTaskStatus(ctx context.Context, actorID, taskID uuid.UUID, status entities.TaskStatus) (*entities.Task, error)
	ListTasks(ctx context.Context, actorID uuid.UUID, teamID, assigneeID *uuid.UUID, status *entities.TaskStatus, limit, offset int) ([]entities.Task, error)
	SearchTasks(ctx context.Context, actorID uuid.UUID, query string, teamID *uuid.UUID, limit int) ([]entities.Task, error)
	OverdueTasks(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit int) ([]entities.Task, error)
	TaskStats(ctx context.Context, actorID uuid.UUID, teamID, assigneeID *uuid.UUID) (entities.TaskStats, error)
}

// MeetingUsecaseInterface abstracts meeting-related operations.
type MeetingUsecaseInterface interface {
	CreateMeeting(ctx context.Context, actorID uuid.UUID, meeting entities.Meeting) (*entities.Meeting, error)
	Meeting(ctx context.Context, actorID, meetingID uuid.UUID) (*entities.Meeting, error)
	UpdateMeeting(ctx context.Context, actorID uuid.UUID, meeting entities.Meeting) (*entities.Meeting, error)
	DeleteMeeting(ctx context.Context, actorID, meetingID uuid.UUID) error
	AddMeetingParticipant(ctx context.Context, actorID, meetingID, userID uuid.UUID) error
	RemoveMeetingParticipant(ctx context.Context, actorID, meetingID, userID uuid.UUID) error
	ListMeetings(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit, offset int) ([]entities.Meeting, error)
	MeetingsByDate(ctx context.Context, actorID uuid.UUID, day time.Time, teamID *uuid.UUID) ([]entities.Meeting, error)
	UpcomingMeetings(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit int) ([]entities.Meeting, error)
	MeetingStats(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID) (entities.MeetingStats, error)
}

// EvaluationUsecaseInterface abstracts task evaluation operations.
type EvaluationUsecaseInterface interface {
	CreateEvaluation(ctx context.Context, actorID uuid.UUID, eval entities.Evaluation) (*entities.Evaluation, error)
	Evaluation(ctx context.Context, actorID, evalID uuid.UUID) (*entities.Evaluation, error)
	TaskEvaluation(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Evaluation, error)
	UpdateEvaluation(ctx context.Context, actorID uuid.UUID, eval entities.Evaluation) (*entities.Evaluation, error)
	DeleteEvaluation(ctx context.Context, actorID, evalID uuid.UUID) error
	ListEvaluations(ctx context.Context, actorID uuid.UUID, teamID, evaluatedUserID *uuid.UUID, limit, offset int) ([]entities.Evaluation, error)
	UserScores(ctx context.Context, actorID, userID uuid.UUID) (entities.EvaluationStats, error)
}
