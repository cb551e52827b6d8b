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
	evalColumns = "id, task_id, evaluator_id, evaluated_user_id, score, comment"

	insertEvalQuery = `
INSERT INTO evaluations(id, task_id, evaluator_id, evaluated_user_id, score, comment)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + evalColumns

	selectEvalQuery       = `SELECT ` + evalColumns + ` FROM evaluations WHERE id=$1`
	selectEvalByTaskQuery = `SELECT ` + evalColumns + ` FROM evaluations WHERE task_id=$1`

	updateEvalQuery = `
UPDATE evaluations
SET score=$2, comment=$3
WHERE id=$1
RETURNING ` + evalColumns

	deleteEvalQuery = `DELETE FROM evaluations WHERE id=$1`

	listEvalsQuery = `
SELECT e.id, e.task_id, e.evaluator_id, e.evaluated_user_id, e.score, e.comment
FROM evaluations e
JOIN tasks t ON t.id = e.task_id
WHERE ($1::uuid IS NULL OR t.team_id=$1)
  AND ($2::uuid IS NULL OR e.evaluated_user_id=$2)
  AND ($3::uuid IS NULL OR e.evaluator_id=$3)
ORDER BY t.created_at DESC
LIMIT $4 OFFSET $5`

	scoreDistributionQuery = `
SELECT score, COUNT(*) FROM evaluations
WHERE evaluated_user_id=$1
GROUP BY score`

	countEvalsByPeriodQuery = `
SELECT COUNT(*)
FROM evaluations e
JOIN tasks t ON t.id = e.task_id
WHERE t.created_at >= $1
  AND ($2::uuid IS NULL OR t.team_id=$2)
  AND ($3::uuid IS NULL OR e.evaluated_user_id=$3)`
)

func scanEvaluation(row pgx.Row) (*entities.Evaluation, error) {
	var e entities.Evaluation
	err := row.Scan(&e.ID, &e.TaskID, &e.EvaluatorID, &e.EvaluatedUserID, &e.Score, &e.Comment)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEvaluation inserts a task grade. The task_id unique constraint
// backs the one-evaluation-per-task invariant.
func (p *Postgres) CreateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error) {
	created, err := scanEvaluation(p.q(ctx).QueryRow(ctx, insertEvalQuery,
		eval.ID, eval.TaskID, eval.EvaluatorID, eval.EvaluatedUserID, eval.Score, eval.Comment))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrEvaluationExists
		}
		p.log.Errorw("failed to create evaluation", "error", err, "task_id", eval.TaskID)
		return nil, fmt.Errorf("insert evaluation: %w", err)
	}
	return created, nil
}

// GetEvaluation fetches an evaluation by id.
func (p *Postgres) GetEvaluation(ctx context.Context, id uuid.UUID) (*entities.Evaluation, error) {
	e, err := scanEvaluation(p.q(ctx).QueryRow(ctx, selectEvalQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("get evaluation: %w", err)
	}
	return e, nil
}

// GetEvaluationByTask fetches the evaluation of a task.
func (p *Postgres) GetEvaluationByTask(ctx context.Context, taskID uuid.UUID) (*entities.Evaluation, error) {
	e, err := scanEvaluation(p.q(ctx).QueryRow(ctx, selectEvalByTaskQuery, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("get evaluation by task: %w", err)
	}
	return e, nil
}

// UpdateEvaluation persists the grade and comment.
func (p *Postgres) UpdateEvaluation(ctx context.Context, eval entities.Evaluation) (*entities.Evaluation, error) {
	updated, err := scanEvaluation(p.q(ctx).QueryRow(ctx, updateEvalQuery,
		eval.ID, eval.Score, eval.Comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrEvaluationNotFound
		}
		p.log.Errorw("failed to update evaluation", "error", err, "evaluation_id", eval.ID)
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	return updated, nil
}

// DeleteEvaluation removes an evaluation by id.
func (p *Postgres) DeleteEvaluation(ctx context.Context, id uuid.UUID) error {
	tag, err := p.q(ctx).Exec(ctx, deleteEvalQuery, id)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrEvaluationNotFound
	}
	return nil
}

// ListEvaluations lists evaluations matching the filter.
func (p *Postgres) ListEvaluations(ctx context.Context, filter entities.EvaluationFilter) ([]entities.Evaluation, error) {
	rows, err := p.q(ctx).Query(ctx, listEvalsQuery,
		filter.TeamID, filter.EvaluatedUserID, filter.EvaluatorID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	evals := make([]entities.Evaluation, 0)
	for rows.Next() {
		var e entities.Evaluation
		if err := rows.Scan(&e.ID, &e.TaskID, &e.EvaluatorID, &e.EvaluatedUserID, &e.Score, &e.Comment); err != nil {
			return nil, fmt.Errorf("scan evaluations: %w", err)
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evals, nil
}

// GetUserScoreDistribution groups the user's grades by score.
func (p *Postgres) GetUserScoreDistribution(ctx context.Context, userID uuid.UUID) (map[entities.Score]int64, error) {
	rows, err := p.q(ctx).Query(ctx, scoreDistributionQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("score distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[entities.Score]int64)
	for rows.Next() {
		var score entities.Score
		var n int64
		if err := rows.Scan(&score, &n); err != nil {
			return nil, fmt.Errorf("scan score distribution: %w", err)
		}
		dist[score] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score distribution: %w", err)
	}
	return dist, nil
}

// CountEvaluationsByPeriod counts grades on tasks created since the
// given time.
func (p *Postgres) CountEvaluationsByPeriod(ctx context.Context, since time.Time, teamID, evaluatedUserID *uuid.UUID) (int64, error) {
	var n int64
	err := p.q(ctx).QueryRow(ctx, countEvalsByPeriodQuery, since, teamID, evaluatedUserID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	return n, nil
}
