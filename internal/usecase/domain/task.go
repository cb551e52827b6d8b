// Package domain contains application Usecases orchestrating domain logic by task.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
)

// CreateTask creates a task inside a team. New tasks always start Open.
func (u *Usecase) CreateTask(ctx context.Context, actorID uuid.UUID, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	now := u.clock.Now()
	if !task.Deadline.After(now) {
		return nil, fmt.Errorf("%w: deadline must be in the future", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeam(ctx, task.TeamID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanCreateTask(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot create tasks in this team", entities.ErrPermissionDenied)
	}

	if task.AssigneeID != nil {
		assignee, err := u.repo.GetUser(ctx, *task.AssigneeID)
		if err != nil {
			return nil, err
		}
		if !assignee.InTeam(task.TeamID) {
			return nil, fmt.Errorf("%w: assignee must be a team member", entities.ErrInvalidOperation)
		}
	}

	task.ID = u.newID()
	task.Status = entities.StatusOpen
	task.CreatorID = actorID
	task.CreatedAt = now

	created, err := u.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	u.log.Infow("task created", "task_id", created.ID, "team_id", task.TeamID, "actor_id", actorID)
	return created, nil
}

// Task returns the task if the actor may view it.
func (u *Usecase) Task(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewTask(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot view this task", entities.ErrPermissionDenied)
	}
	return task, nil
}

// UpdateTask edits title, description and deadline. Status and assignee
// change through their dedicated operations.
func (u *Usecase) UpdateTask(ctx context.Context, actorID uuid.UUID, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current, err := u.repo.GetTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanUpdateTask(*actor, *current) {
		return nil, fmt.Errorf("%w: cannot update this task", entities.ErrPermissionDenied)
	}

	if task.Title != "" {
		current.Title = task.Title
	}
	if task.Description != "" {
		current.Description = task.Description
	}
	if !task.Deadline.IsZero() {
		if !task.Deadline.After(u.clock.Now()) {
			return nil, fmt.Errorf("%w: deadline must be in the future", entities.ErrInvalidArgument)
		}
		current.Deadline = task.Deadline
	}

	return u.repo.UpdateTask(ctx, *current)
}

// DeleteTask removes a task and its evaluation, if any.
func (u *Usecase) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !u.perms.CanDeleteTask(*actor, *task) {
		return fmt.Errorf("%w: cannot delete this task", entities.ErrPermissionDenied)
	}

	if err := u.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	u.log.Infow("task deleted", "task_id", taskID, "actor_id", actorID)
	return nil
}

// AssignTask sets or clears the task assignee.
func (u *Usecase) AssignTask(ctx context.Context, actorID, taskID uuid.UUID, assigneeID *uuid.UUID) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if assigneeID == nil {
		if !u.perms.CanAssignTask(*actor, *task, entities.User{}) {
			return nil, fmt.Errorf("%w: cannot assign this task", entities.ErrPermissionDenied)
		}
		task.AssigneeID = nil
		return u.repo.UpdateTask(ctx, *task)
	}

	assignee, err := u.repo.GetUser(ctx, *assigneeID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanAssignTask(*actor, *task, *assignee) {
		return nil, fmt.Errorf("%w: cannot assign this task", entities.ErrPermissionDenied)
	}
	if !assignee.InTeam(task.TeamID) {
		return nil, fmt.Errorf("%w: assignee must be a team member", entities.ErrInvalidOperation)
	}

	task.AssigneeID = assigneeID
	updated, err := u.repo.UpdateTask(ctx, *task)
	if err != nil {
		return nil, err
	}
	u.log.Infow("task assigned", "task_id", taskID, "assignee_id", assigneeID, "actor_id", actorID)
	return updated, nil
}

// ChangeTaskStatus moves a task along its lifecycle.
func (u *Usecase) ChangeTaskStatus(ctx context.Context, actorID, taskID uuid.UUID, status entities.TaskStatus) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, status)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanChangeTaskStatus(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot change this task's status", entities.ErrPermissionDenied)
	}
	if !task.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move task from %s to %s", entities.ErrInvalidOperation, task.Status, status)
	}

	task.Status = status
	updated, err := u.repo.UpdateTask(ctx, *task)
	if err != nil {
		return nil, err
	}
	u.log.Infow("task status changed", "task_id", taskID, "status", status, "actor_id", actorID)
	return updated, nil
}

// ListTasks lists tasks within the actor's scope.
func (u *Usecase) ListTasks(ctx context.Context, actorID uuid.UUID, teamID, assigneeID *uuid.UUID, status *entities.TaskStatus, limit, offset int) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, *status)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return nil, err
	}
	if scope.Empty {
		return []entities.Task{}, nil
	}
	return u.repo.ListTasks(ctx, entities.TaskFilter{
		TeamID:     scope.TeamID,
		AssigneeID: assigneeID,
		Status:     status,
		Limit:      normalizeLimit(limit),
		Offset:     offset,
	})
}

// SearchTasks searches tasks by title within the actor's scope.
func (u *Usecase) SearchTasks(ctx context.Context, actorID uuid.UUID, query string, teamID *uuid.UUID, limit int) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return nil, err
	}
	if scope.Empty {
		return []entities.Task{}, nil
	}
	return u.repo.SearchTasks(ctx, query, scope.TeamID, normalizeLimit(limit))
}

// OverdueTasks lists unfinished tasks past their deadline.
func (u *Usecase) OverdueTasks(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit int) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return nil, err
	}
	if scope.Empty {
		return []entities.Task{}, nil
	}
	return u.repo.GetOverdueTasks(ctx, scope.TeamID, u.clock.Now(), normalizeLimit(limit))
}

// TaskStats aggregates task counters for a team or assignee.
func (u *Usecase) TaskStats(ctx context.Context, actorID uuid.UUID, teamID, assigneeID *uuid.UUID) (entities.TaskStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return entities.TaskStats{}, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return entities.TaskStats{}, err
	}
	if scope.Empty {
		return entities.TaskStats{StatusCounts: map[entities.TaskStatus]int64{}}, nil
	}

	counts, err := u.repo.CountTasksByStatus(ctx, scope.TeamID, assigneeID)
	if err != nil {
		return entities.TaskStats{}, err
	}

	stats := entities.TaskStats{StatusCounts: counts}
	for _, n := range counts {
		stats.TotalTasks += n
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(counts[entities.StatusDone]) / float64(stats.TotalTasks)
	}

	overdue, err := u.repo.GetOverdueTasks(ctx, scope.TeamID, u.clock.Now(), 0)
	if err != nil {
		return entities.TaskStats{}, err
	}
	for _, t := range overdue {
		if assigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *assigneeID) {
			continue
		}
		stats.OverdueCount++
	}
	return stats, nil
}
