package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

const (
	taskColumns = "id, title, description, deadline, status, team_id, creator_id, assignee_id, created_at"

	insertTaskQuery = `
INSERT INTO tasks(id, title, description, deadline, status, team_id, creator_id, assignee_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + taskColumns

	selectTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1`

	updateTaskQuery = `
UPDATE tasks
SET title=$2, description=$3, deadline=$4, status=$5, assignee_id=$6
WHERE id=$1
RETURNING ` + taskColumns

	deleteTaskQuery = `DELETE FROM tasks WHERE id=$1`

	listTasksQuery = `
SELECT ` + taskColumns + ` FROM tasks
WHERE ($1::uuid IS NULL OR team_id=$1)
  AND ($2::uuid IS NULL OR assignee_id=$2)
  AND ($3::uuid IS NULL OR creator_id=$3)
  AND ($4::text IS NULL OR status=$4)
ORDER BY created_at DESC
LIMIT $5 OFFSET $6`

	searchTasksQuery = `
SELECT ` + taskColumns + ` FROM tasks
WHERE (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
  AND ($2::uuid IS NULL OR team_id=$2)
ORDER BY created_at DESC
LIMIT $3`

	overdueTasksQuery = `
SELECT ` + taskColumns + ` FROM tasks
WHERE deadline < $2 AND status <> 'Done'
  AND ($1::uuid IS NULL OR team_id=$1)
ORDER BY deadline
LIMIT CASE WHEN $3 > 0 THEN $3 ELSE NULL END`

	countTasksByStatusQuery = `
SELECT status, COUNT(*) FROM tasks
WHERE ($1::uuid IS NULL OR team_id=$1)
  AND ($2::uuid IS NULL OR assignee_id=$2)
GROUP BY status`
)

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Deadline, &t.Status,
		&t.TeamID, &t.CreatorID, &t.AssigneeID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask inserts a task.
func (p *Postgres) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	created, err := scanTask(p.q(ctx).QueryRow(ctx, insertTaskQuery,
		task.ID, task.Title, task.Description, task.Deadline, task.Status,
		task.TeamID, task.CreatorID, task.AssigneeID, task.CreatedAt))
	if err != nil {
		p.log.Errorw("failed to create task", "error", err, "team_id", task.TeamID)
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

// GetTask fetches a task by id.
func (p *Postgres) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	t, err := scanTask(p.q(ctx).QueryRow(ctx, selectTaskQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask persists the mutable task fields.
func (p *Postgres) UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	updated, err := scanTask(p.q(ctx).QueryRow(ctx, updateTaskQuery,
		task.ID, task.Title, task.Description, task.Deadline, task.Status, task.AssigneeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		p.log.Errorw("failed to update task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task and, via cascade, its evaluation.
func (p *Postgres) DeleteTask(ctx context.Context, id uuid.UUID) error {
	tag, err := p.q(ctx).Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

func (p *Postgres) scanTasks(rows pgx.Rows, op string) ([]entities.Task, error) {
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		var t entities.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Deadline, &t.Status,
			&t.TeamID, &t.CreatorID, &t.AssigneeID, &t.CreatedAt); err != nil {
			p.log.Errorw("failed to scan tasks", "error", err, "op", op)
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return tasks, nil
}

// ListTasks lists tasks matching the filter.
func (p *Postgres) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error) {
	rows, err := p.q(ctx).Query(ctx, listTasksQuery,
		filter.TeamID, filter.AssigneeID, filter.CreatorID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return p.scanTasks(rows, "tasks")
}

// SearchTasks matches tasks by title or description.
func (p *Postgres) SearchTasks(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.Task, error) {
	rows, err := p.q(ctx).Query(ctx, searchTasksQuery, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return p.scanTasks(rows, "task search")
}

// GetOverdueTasks lists unfinished tasks with a deadline before now.
// A non-positive limit means no limit.
func (p *Postgres) GetOverdueTasks(ctx context.Context, teamID *uuid.UUID, now time.Time, limit int) ([]entities.Task, error) {
	rows, err := p.q(ctx).Query(ctx, overdueTasksQuery, teamID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get overdue tasks: %w", err)
	}
	return p.scanTasks(rows, "overdue tasks")
}

// CountTasksByStatus groups task counts by status.
func (p *Postgres) CountTasksByStatus(ctx context.Context, teamID, assigneeID *uuid.UUID) (map[entities.TaskStatus]int64, error) {
	rows, err := p.q(ctx).Query(ctx, countTasksByStatusQuery, teamID, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("count tasks by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.TaskStatus]int64)
	for rows.Next() {
		var status entities.TaskStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan task counts: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task counts: %w", err)
	}
	return counts, nil
}
