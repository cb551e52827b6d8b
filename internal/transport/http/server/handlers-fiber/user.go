package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/mapper"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// CreateUser registers a new user.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body models.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.CreateUser(c.Context(), entities.User{
		Email:   body.Email,
		Name:    body.Name,
		Surname: body.Surname,
	})
	if err != nil {
		h.log.Errorw("failed to create user", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		User models.User `json:"user"`
	}{User: mapper.ToAPIUser(*usr)})
}

// GetUser returns a user's record.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	usr, err := h.uc.User(c.Context(), middleware.ActorID(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(*usr))
}

// GetUserByEmail resolves a user by their registered email.
func (h *Handler) GetUserByEmail(c *fiber.Ctx) error {
	usr, err := h.uc.UserByEmail(c.Context(), middleware.ActorID(c), c.Query("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(*usr))
}

// UpdateUser edits profile fields.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.UpdateUser(c.Context(), middleware.ActorID(c), entities.User{
		ID:      userID,
		Email:   body.Email,
		Name:    body.Name,
		Surname: body.Surname,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(*usr))
}

// DeleteUser removes a user.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.DeleteUser(c.Context(), middleware.ActorID(c), userID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignRole changes a user's role.
func (h *Handler) AssignRole(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.AssignRoleRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.AssignRole(c.Context(), middleware.ActorID(c), userID, entities.Role(body.Role))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(*usr))
}

// SetActiveUser toggles user activity flag.
func (h *Handler) SetActiveUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.SetActiveRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.SetActiveUser(c.Context(), middleware.ActorID(c), userID, body.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIUser(*usr))
}

// ListUsers lists users within the actor's scope.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.uc.ListUsers(c.Context(), middleware.ActorID(c), teamID,
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Users []models.User `json:"users"`
	}{Users: mapper.ToAPIUserList(users)})
}

// SearchUsers matches users by name or email.
func (h *Handler) SearchUsers(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.uc.SearchUsers(c.Context(), middleware.ActorID(c), c.Query("q"), teamID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Users []models.User `json:"users"`
	}{Users: mapper.ToAPIUserList(users)})
}

// UsersWithoutTeam lists users not assigned to any team.
func (h *Handler) UsersWithoutTeam(c *fiber.Ctx) error {
	users, err := h.uc.UsersWithoutTeam(c.Context(), middleware.ActorID(c),
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Users []models.User `json:"users"`
	}{Users: mapper.ToAPIUserList(users)})
}

// UserScores aggregates a user's evaluation grades.
func (h *Handler) UserScores(c *fiber.Ctx) error {
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	stats, err := h.uc.UserScores(c.Context(), middleware.ActorID(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}
