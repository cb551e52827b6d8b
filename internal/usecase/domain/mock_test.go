package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/invites"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
	"github.com/AleksGin/business-manager-ci/internal/repository"
	"github.com/AleksGin/business-manager-ci/pkg/clock"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *repoMock) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) SearchUsers(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.User, error) {
	args := m.Called(ctx, query, teamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) GetTeamMembers(ctx context.Context, teamID uuid.UUID) ([]entities.User, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) GetUsersWithoutTeam(ctx context.Context, limit, offset int) ([]entities.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) GetTeamByName(ctx context.Context, name string) (*entities.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) GetTeamWithMembers(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) UpdateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Team), args.Error(1)
}

func (m *repoMock) SearchTeams(ctx context.Context, query string, limit int) ([]entities.Team, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Team), args.Error(1)
}

func (m *repoMock) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Task), args.Error(1)
}

func (m *repoMock) SearchTasks(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.Task, error) {
	args := m.Called(ctx, query, teamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Task), args.Error(1)
}

func (m *repoMock) GetOverdueTasks(ctx context.Context, teamID *uuid.UUID, now time.Time, limit int) ([]entities.Task, error) {
	args := m.Called(ctx, teamID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Task), args.Error(1)
}

func (m *repoMock) CountTasksByStatus(ctx context.Context, teamID, assigneeID *uuid.UUID) (map[entities.TaskStatus]int64, error) {
	args := m.Called(ctx, teamID, assigneeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.TaskStatus]int64), args.Error(1)
}

func (m *repoMock) CreateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error) {
	args := m.Called(ctx, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *repoMock) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *repoMock) GetMeetingWithParticipants(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *repoMock) UpdateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error) {
	args := m.Called(ctx, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *repoMock) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) AddParticipant(ctx context.Context, meetingID, userID uuid.UUID) error {
	return m.Called(ctx, meetingID, userID).Error(0)
}

func (m *repoMock) RemoveParticipant(ctx context.Context, meetingID, userID uuid.UUID) error {
	return m.Called(ctx, meetingID, userID).Error(0)
}

func (m *repoMock) IsParticipant(ctx context.Context, meetingID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, meetingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) ListMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Meeting), args.Error(1)
}

func (m *repoMock) GetMeetingsByDate(ctx context.Context, day time.Time, teamID, participantID *uuid.UUID) ([]entities.Meeting, error) {
	args := m.Called(ctx, day, teamID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Meeting), args.Error(1)
}

func (m *repoMock) GetUpcomingMeetings(ctx context.Context, now time.Time, teamID, participantID *uuid.UUID, limit int) ([]entities.Meeting, error) {
	args := m.Called(ctx, now, teamID, participantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Meeting), args.Error(1)
}

func (m *repoMock) CheckTimeConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]entities.Meeting, error) {
	args := m.Called(ctx, userID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Meeting), args.Error(1)
}

func (m *repoMock) CountMeetingsByPeriod(ctx context.Context, since time.Time, teamID, participantID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, since, teamID, participantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) CreateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error) {
	args := m.Called(ctx, eval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Evaluation), args.Error(1)
}

func (m *repoMock) GetEvaluation(ctx context.Context, id uuid.UUID) (*entities.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Evaluation), args.Error(1)
}

func (m *repoMock) GetEvaluationByTask(ctx context.Context, taskID uuid.UUID) (*entities.Evaluation, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Evaluation), args.Error(1)
}

func (m *repoMock) UpdateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error) {
	args := m.Called(ctx, eval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Evaluation), args.Error(1)
}

func (m *repoMock) DeleteEvaluation(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) ListEvaluations(ctx context.Context, filter entities.EvaluationFilter) ([]entities.Evaluation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Evaluation), args.Error(1)
}

func (m *repoMock) GetUserScoreDistribution(ctx context.Context, userID uuid.UUID) (map[entities.Score]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.Score]int64), args.Error(1)
}

func (m *repoMock) CountEvaluationsByPeriod(ctx context.Context, since time.Time, teamID, evaluatedUserID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, since, teamID, evaluatedUserID)
	return args.Get(0).(int64), args.Error(1)
}

type inviteStoreMock struct{ mock.Mock }

var _ invites.Store = (*inviteStoreMock)(nil)

func (m *inviteStoreMock) Save(ctx context.Context, invite entities.Invite) error {
	return m.Called(ctx, invite).Error(0)
}

func (m *inviteStoreMock) Get(ctx context.Context, code string) (*entities.Invite, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invite), args.Error(1)
}

func (m *inviteStoreMock) Invalidate(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestUsecase(t *testing.T) (*Usecase, *repoMock, *inviteStoreMock) {
	t.Helper()

	repo := &repoMock{}
	store := &inviteStoreMock{}
	uc := New(
		zap.NewNop().Sugar(),
		context.Background(),
		repo,
		permissions.NewValidator(),
		store,
		clock.Fixed{T: testNow},
		5*time.Second,
		24*time.Hour,
	)
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})
	return uc, repo, store
}
