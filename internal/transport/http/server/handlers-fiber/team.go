package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/mapper"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// CreateTeam creates a team owned by the actor.
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	var body models.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, err := h.uc.CreateTeam(c.Context(), middleware.ActorID(c), entities.Team{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		h.log.Errorw("failed to create team", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Team models.Team `json:"team"`
	}{Team: mapper.ToAPITeam(*team)})
}

// GetTeam returns a team with its members.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	team, err := h.uc.Team(c.Context(), middleware.ActorID(c), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// GetTeamByName resolves a team by its unique name.
func (h *Handler) GetTeamByName(c *fiber.Ctx) error {
	team, err := h.uc.TeamByName(c.Context(), middleware.ActorID(c), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// UpdateTeam renames or re-describes a team.
func (h *Handler) UpdateTeam(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.UpdateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, err := h.uc.UpdateTeam(c.Context(), middleware.ActorID(c), entities.Team{
		ID:          teamID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// DeleteTeam removes a team.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.DeleteTeam(c.Context(), middleware.ActorID(c), teamID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListTeams lists teams visible to the actor.
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.uc.ListTeams(c.Context(), middleware.ActorID(c),
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Teams []models.Team `json:"teams"`
	}{Teams: mapper.ToAPITeamList(teams)})
}

// SearchTeams matches teams by name.
func (h *Handler) SearchTeams(c *fiber.Ctx) error {
	teams, err := h.uc.SearchTeams(c.Context(), middleware.ActorID(c), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Teams []models.Team `json:"teams"`
	}{Teams: mapper.ToAPITeamList(teams)})
}

// TeamMembers lists the team's members.
func (h *Handler) TeamMembers(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	members, err := h.uc.TeamMembers(c.Context(), middleware.ActorID(c), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Members []models.User `json:"members"`
	}{Members: mapper.ToAPIUserList(members)})
}

// AddMember puts a user into the team.
func (h *Handler) AddMember(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.MemberRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.AddMember(c.Context(), middleware.ActorID(c), teamID, body.UserID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveMember takes a user out of the team.
func (h *Handler) RemoveMember(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.RemoveMember(c.Context(), middleware.ActorID(c), teamID, userID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// LeaveTeam lets the actor exit their team.
func (h *Handler) LeaveTeam(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.LeaveTeam(c.Context(), middleware.ActorID(c), teamID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// TransferOwnership hands the team to another member.
func (h *Handler) TransferOwnership(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.TransferOwnershipRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, err := h.uc.TransferOwnership(c.Context(), middleware.ActorID(c), teamID, body.NewOwnerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// IssueInvite generates a join code for the team.
func (h *Handler) IssueInvite(c *fiber.Ctx) error {
	teamID, err := parseID(c, "teamID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	invite, err := h.uc.IssueInvite(c.Context(), middleware.ActorID(c), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Invite models.Invite `json:"invite"`
	}{Invite: mapper.ToAPIInvite(*invite)})
}

// RedeemInvite joins the actor to a team by code.
func (h *Handler) RedeemInvite(c *fiber.Ctx) error {
	var body models.RedeemInviteRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.Code == "" {
		return badRequest(c, "code is required")
	}

	team, err := h.uc.RedeemInvite(c.Context(), middleware.ActorID(c), body.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Team models.Team `json:"team"`
	}{Team: mapper.ToAPITeam(*team)})
}

// RevokeInvite deactivates a code before its expiry.
func (h *Handler) RevokeInvite(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return badRequest(c, "code is required")
	}
	if err := h.uc.RevokeInvite(c.Context(), middleware.ActorID(c), code); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
