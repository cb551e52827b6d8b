package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/mapper"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// CreateTask creates a task inside a team.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var body models.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.CreateTask(c.Context(), middleware.ActorID(c), entities.Task{
		Title:       body.Title,
		Description: body.Description,
		Deadline:    body.Deadline,
		TeamID:      body.TeamID,
		AssigneeID:  body.AssigneeID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Task models.Task `json:"task"`
	}{Task: mapper.ToAPITask(*task)})
}

// GetTask returns a task.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	task, err := h.uc.Task(c.Context(), middleware.ActorID(c), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// UpdateTask edits title, description and deadline.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.UpdateTask(c.Context(), middleware.ActorID(c), entities.Task{
		ID:          taskID,
		Title:       body.Title,
		Description: body.Description,
		Deadline:    body.Deadline,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.DeleteTask(c.Context(), middleware.ActorID(c), taskID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignTask sets or clears the task assignee.
func (h *Handler) AssignTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.AssignTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.AssignTask(c.Context(), middleware.ActorID(c), taskID, body.AssigneeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// ChangeTaskStatus moves a task along its lifecycle.
func (h *Handler) ChangeTaskStatus(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.ChangeStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.ChangeTaskStatus(c.Context(), middleware.ActorID(c), taskID, entities.TaskStatus(body.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// ListTasks lists tasks within the actor's scope.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	assigneeID, err := parseOptionalID(c, "assignee_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var status *entities.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.TaskStatus(raw)
		status = &s
	}

	tasks, err := h.uc.ListTasks(c.Context(), middleware.ActorID(c), teamID, assigneeID, status,
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Tasks []models.Task `json:"tasks"`
	}{Tasks: mapper.ToAPITaskList(tasks)})
}

// SearchTasks matches tasks by title or description.
func (h *Handler) SearchTasks(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	tasks, err := h.uc.SearchTasks(c.Context(), middleware.ActorID(c), c.Query("q"), teamID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Tasks []models.Task `json:"tasks"`
	}{Tasks: mapper.ToAPITaskList(tasks)})
}

// OverdueTasks lists unfinished tasks past their deadline.
func (h *Handler) OverdueTasks(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	tasks, err := h.uc.OverdueTasks(c.Context(), middleware.ActorID(c), teamID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Tasks []models.Task `json:"tasks"`
	}{Tasks: mapper.ToAPITaskList(tasks)})
}

// TaskStats aggregates task counters.
func (h *Handler) TaskStats(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	assigneeID, err := parseOptionalID(c, "assignee_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	stats, err := h.uc.TaskStats(c.Context(), middleware.ActorID(c), teamID, assigneeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}

// TaskEvaluation returns the task's grade.
func (h *Handler) TaskEvaluation(c *fiber.Ctx) error {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	eval, err := h.uc.TaskEvaluation(c.Context(), middleware.ActorID(c), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIEvaluation(*eval))
}
