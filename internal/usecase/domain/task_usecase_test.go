package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

func TestCreateTaskPastDeadline(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.CreateTask(context.Background(), uuid.New(), entities.Task{
		Title:    "late",
		Deadline: testNow.Add(-time.Hour),
		TeamID:   uuid.New(),
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestCreateTaskAssigneeOutsideTeam(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	outsider := employeeUser(nil)

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTeam", mock.Anything, teamID).Return(&entities.Team{ID: teamID, OwnerID: uuid.New()}, nil)
	repo.On("GetUser", mock.Anything, outsider.ID).Return(outsider, nil)

	_, err := uc.CreateTask(context.Background(), creator.ID, entities.Task{
		Title:      "onboarding",
		Deadline:   testNow.Add(48 * time.Hour),
		TeamID:     teamID,
		AssigneeID: &outsider.ID,
	})
	require.ErrorIs(t, err, entities.ErrInvalidOperation)
}

func TestCreateTaskForcesOpenStatus(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTeam", mock.Anything, teamID).Return(&entities.Team{ID: teamID, OwnerID: uuid.New()}, nil)
	repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task entities.Task) bool {
		return task.Status == entities.StatusOpen &&
			task.CreatorID == creator.ID &&
			task.CreatedAt.Equal(testNow) &&
			task.ID != uuid.Nil
	})).Return(&entities.Task{ID: uuid.New(), Status: entities.StatusOpen}, nil)

	created, err := uc.CreateTask(context.Background(), creator.ID, entities.Task{
		Title:    "release checklist",
		Deadline: testNow.Add(48 * time.Hour),
		TeamID:   teamID,
		Status:   entities.StatusDone, // ignored
	})
	require.NoError(t, err)
	require.Equal(t, entities.StatusOpen, created.Status)
}

func TestChangeTaskStatusDoneToDone(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	task := &entities.Task{ID: uuid.New(), TeamID: teamID, CreatorID: creator.ID, Status: entities.StatusDone}

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTask", mock.Anything, task.ID).Return(task, nil)

	_, err := uc.ChangeTaskStatus(context.Background(), creator.ID, task.ID, entities.StatusDone)
	require.ErrorIs(t, err, entities.ErrInvalidOperation)
}

func TestChangeTaskStatusReopenDone(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	task := &entities.Task{ID: uuid.New(), TeamID: teamID, CreatorID: creator.ID, Status: entities.StatusDone}

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTask", mock.Anything, task.ID).Return(task, nil)
	repo.On("UpdateTask", mock.Anything, mock.MatchedBy(func(tk entities.Task) bool {
		return tk.Status == entities.StatusOpen
	})).Return(&entities.Task{ID: task.ID, Status: entities.StatusOpen}, nil)

	updated, err := uc.ChangeTaskStatus(context.Background(), creator.ID, task.ID, entities.StatusOpen)
	require.NoError(t, err)
	require.Equal(t, entities.StatusOpen, updated.Status)
}

func TestChangeTaskStatusByBystanderDenied(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	bystander := employeeUser(&teamID)
	task := &entities.Task{ID: uuid.New(), TeamID: teamID, CreatorID: uuid.New(), Status: entities.StatusOpen}

	repo.On("GetUser", mock.Anything, bystander.ID).Return(bystander, nil)
	repo.On("GetTask", mock.Anything, task.ID).Return(task, nil)

	_, err := uc.ChangeTaskStatus(context.Background(), bystander.ID, task.ID, entities.StatusInProgress)
	require.ErrorIs(t, err, entities.ErrPermissionDenied)
}

func TestAssignTaskClearsAssignee(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	assignee := uuid.New()
	task := &entities.Task{ID: uuid.New(), TeamID: teamID, CreatorID: creator.ID, AssigneeID: &assignee}

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTask", mock.Anything, task.ID).Return(task, nil)
	repo.On("UpdateTask", mock.Anything, mock.MatchedBy(func(tk entities.Task) bool {
		return tk.AssigneeID == nil
	})).Return(&entities.Task{ID: task.ID}, nil)

	updated, err := uc.AssignTask(context.Background(), creator.ID, task.ID, nil)
	require.NoError(t, err)
	require.Nil(t, updated.AssigneeID)
}

func TestListTasksEmployeeScopePinned(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	emp := employeeUser(&teamID)

	repo.On("GetUser", mock.Anything, emp.ID).Return(emp, nil)
	repo.On("ListTasks", mock.Anything, mock.MatchedBy(func(f entities.TaskFilter) bool {
		return f.TeamID != nil && *f.TeamID == teamID
	})).Return([]entities.Task{}, nil)

	_, err := uc.ListTasks(context.Background(), emp.ID, nil, nil, nil, 20, 0)
	require.NoError(t, err)

	foreign := uuid.New()
	_, err = uc.ListTasks(context.Background(), emp.ID, &foreign, nil, nil, 20, 0)
	require.ErrorIs(t, err, entities.ErrPermissionDenied)
}

func TestListTasksTeamlessEmployeeEmpty(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	emp := employeeUser(nil)

	repo.On("GetUser", mock.Anything, emp.ID).Return(emp, nil)

	tasks, err := uc.ListTasks(context.Background(), emp.ID, nil, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskStats(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	manager := managerUser(&teamID)
	assignee := uuid.New()
	other := uuid.New()

	repo.On("GetUser", mock.Anything, manager.ID).Return(manager, nil)
	repo.On("CountTasksByStatus", mock.Anything, &teamID, &assignee).Return(map[entities.TaskStatus]int64{
		entities.StatusOpen:       2,
		entities.StatusInProgress: 1,
		entities.StatusDone:       3,
	}, nil)
	repo.On("GetOverdueTasks", mock.Anything, &teamID, testNow, 0).Return([]entities.Task{
		{ID: uuid.New(), AssigneeID: &assignee},
		{ID: uuid.New(), AssigneeID: &other},
		{ID: uuid.New()},
	}, nil)

	stats, err := uc.TaskStats(context.Background(), manager.ID, &teamID, &assignee)
	require.NoError(t, err)
	require.Equal(t, int64(6), stats.TotalTasks)
	require.InEpsilon(t, 0.5, stats.CompletionRate, 1e-9)
	require.Equal(t, int64(1), stats.OverdueCount)
}
