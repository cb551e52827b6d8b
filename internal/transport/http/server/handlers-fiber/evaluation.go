package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/mapper"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// CreateEvaluation grades a completed task.
func (h *Handler) CreateEvaluation(c *fiber.Ctx) error {
	var body models.CreateEvaluationRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	eval, err := h.uc.CreateEvaluation(c.Context(), middleware.ActorID(c), entities.Evaluation{
		TaskID:  body.TaskID,
		Score:   entities.Score(body.Score),
		Comment: body.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Evaluation models.Evaluation `json:"evaluation"`
	}{Evaluation: mapper.ToAPIEvaluation(*eval)})
}

// GetEvaluation returns an evaluation.
func (h *Handler) GetEvaluation(c *fiber.Ctx) error {
	evalID, err := parseID(c, "evaluationID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	eval, err := h.uc.Evaluation(c.Context(), middleware.ActorID(c), evalID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIEvaluation(*eval))
}

// UpdateEvaluation changes the grade or comment.
func (h *Handler) UpdateEvaluation(c *fiber.Ctx) error {
	evalID, err := parseID(c, "evaluationID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.UpdateEvaluationRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	eval, err := h.uc.UpdateEvaluation(c.Context(), middleware.ActorID(c), entities.Evaluation{
		ID:      evalID,
		Score:   entities.Score(body.Score),
		Comment: body.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIEvaluation(*eval))
}

// DeleteEvaluation removes a grade.
func (h *Handler) DeleteEvaluation(c *fiber.Ctx) error {
	evalID, err := parseID(c, "evaluationID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.DeleteEvaluation(c.Context(), middleware.ActorID(c), evalID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListEvaluations lists evaluations within the actor's scope.
func (h *Handler) ListEvaluations(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	evaluatedID, err := parseOptionalID(c, "evaluated_user_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	evals, err := h.uc.ListEvaluations(c.Context(), middleware.ActorID(c), teamID, evaluatedID,
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Evaluations []models.Evaluation `json:"evaluations"`
	}{Evaluations: mapper.ToAPIEvaluationList(evals)})
}
