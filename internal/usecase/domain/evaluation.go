// Package domain contains application Usecases orchestrating domain logic by evaluation.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
)

// CreateEvaluation grades a completed task. One evaluation per task;
// the evaluated user is always the task assignee.
func (u *Usecase) CreateEvaluation(ctx context.Context, actorID uuid.UUID, eval entities.Evaluation) (*entities.Evaluation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !eval.Score.Valid() {
		return nil, fmt.Errorf("%w: unknown score %q", entities.ErrInvalidArgument, eval.Score)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, eval.TaskID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanCreateEvaluation(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot evaluate this task", entities.ErrPermissionDenied)
	}
	if task.Status != entities.StatusDone {
		return nil, fmt.Errorf("%w: only completed tasks can be evaluated", entities.ErrInvalidOperation)
	}
	if task.AssigneeID == nil {
		return nil, fmt.Errorf("%w: task has no assignee to evaluate", entities.ErrInvalidOperation)
	}

	if _, err := u.repo.GetEvaluationByTask(ctx, eval.TaskID); err == nil {
		return nil, fmt.Errorf("%w: task already evaluated", entities.ErrEvaluationExists)
	} else if !errors.Is(err, entities.ErrEvaluationNotFound) {
		return nil, err
	}

	eval.ID = u.newID()
	eval.EvaluatorID = actorID
	eval.EvaluatedUserID = *task.AssigneeID

	created, err := u.repo.CreateEvaluation(ctx, eval)
	if err != nil {
		return nil, err
	}
	u.log.Infow("evaluation created", "evaluation_id", created.ID, "task_id", eval.TaskID, "actor_id", actorID)
	return created, nil
}

// Evaluation returns the evaluation by id.
func (u *Usecase) Evaluation(ctx context.Context, actorID, evalID uuid.UUID) (*entities.Evaluation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	eval, err := u.repo.GetEvaluation(ctx, evalID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, eval.TaskID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewEvaluation(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot view this evaluation", entities.ErrPermissionDenied)
	}
	return eval, nil
}

// TaskEvaluation returns the task's evaluation.
func (u *Usecase) TaskEvaluation(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Evaluation, error) {
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
	if !u.perms.CanViewEvaluation(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot view this evaluation", entities.ErrPermissionDenied)
	}
	return u.repo.GetEvaluationByTask(ctx, taskID)
}

// UpdateEvaluation changes the grade or comment.
func (u *Usecase) UpdateEvaluation(ctx context.Context, actorID uuid.UUID, eval entities.Evaluation) (*entities.Evaluation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current, err := u.repo.GetEvaluation(ctx, eval.ID)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.GetTask(ctx, current.TaskID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanUpdateEvaluation(*actor, *task) {
		return nil, fmt.Errorf("%w: cannot update this evaluation", entities.ErrPermissionDenied)
	}

	if eval.Score != "" {
		if !eval.Score.Valid() {
			return nil, fmt.Errorf("%w: unknown score %q", entities.ErrInvalidArgument, eval.Score)
		}
		current.Score = eval.Score
	}
	if eval.Comment != "" {
		current.Comment = eval.Comment
	}

	return u.repo.UpdateEvaluation(ctx, *current)
}

// DeleteEvaluation removes the grade from a task.
func (u *Usecase) DeleteEvaluation(ctx context.Context, actorID, evalID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	eval, err := u.repo.GetEvaluation(ctx, evalID)
	if err != nil {
		return err
	}
	task, err := u.repo.GetTask(ctx, eval.TaskID)
	if err != nil {
		return err
	}
	if !u.perms.CanUpdateEvaluation(*actor, *task) {
		return fmt.Errorf("%w: cannot delete this evaluation", entities.ErrPermissionDenied)
	}

	if err := u.repo.DeleteEvaluation(ctx, evalID); err != nil {
		return err
	}
	u.log.Infow("evaluation deleted", "evaluation_id", evalID, "actor_id", actorID)
	return nil
}

// ListEvaluations lists evaluations within the actor's scope.
func (u *Usecase) ListEvaluations(ctx context.Context, actorID uuid.UUID, teamID, evaluatedUserID *uuid.UUID, limit, offset int) ([]entities.Evaluation, error) {
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
		return []entities.Evaluation{}, nil
	}
	return u.repo.ListEvaluations(ctx, entities.EvaluationFilter{
		TeamID:          scope.TeamID,
		EvaluatedUserID: evaluatedUserID,
		Limit:           normalizeLimit(limit),
		Offset:          offset,
	})
}

// UserScores aggregates a user's grades.
func (u *Usecase) UserScores(ctx context.Context, actorID, userID uuid.UUID) (entities.EvaluationStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return entities.EvaluationStats{}, err
	}
	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return entities.EvaluationStats{}, err
	}
	if !u.perms.CanViewUser(*actor, *target) {
		return entities.EvaluationStats{}, fmt.Errorf("%w: cannot view this user's scores", entities.ErrPermissionDenied)
	}

	dist, err := u.repo.GetUserScoreDistribution(ctx, userID)
	if err != nil {
		return entities.EvaluationStats{}, err
	}

	stats := entities.EvaluationStats{Distribution: dist}
	var points int64
	for score, n := range dist {
		stats.Total += n
		points += n * int64(score.Points())
	}
	if stats.Total > 0 {
		stats.AverageScore = float64(points) / float64(stats.Total)
	}

	recent, err := u.repo.CountEvaluationsByPeriod(ctx, u.clock.Now().AddDate(0, 0, -30), nil, &userID)
	if err != nil {
		return entities.EvaluationStats{}, err
	}
	stats.Last30Days = recent
	return stats, nil
}
