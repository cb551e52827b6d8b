package handlers_fiber

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/mapper"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// CreateMeeting schedules a meeting.
func (h *Handler) CreateMeeting(c *fiber.Ctx) error {
	var body models.CreateMeetingRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	meeting, err := h.uc.CreateMeeting(c.Context(), middleware.ActorID(c), entities.Meeting{
		Title:          body.Title,
		Description:    body.Description,
		StartsAt:       body.StartsAt,
		TeamID:         body.TeamID,
		ParticipantIDs: body.ParticipantIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Meeting models.Meeting `json:"meeting"`
	}{Meeting: mapper.ToAPIMeeting(*meeting)})
}

// GetMeeting returns a meeting with its participants.
func (h *Handler) GetMeeting(c *fiber.Ctx) error {
	meetingID, err := parseID(c, "meetingID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	meeting, err := h.uc.Meeting(c.Context(), middleware.ActorID(c), meetingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIMeeting(*meeting))
}

// UpdateMeeting edits meeting fields.
func (h *Handler) UpdateMeeting(c *fiber.Ctx) error {
	meetingID, err := parseID(c, "meetingID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.UpdateMeetingRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	meeting, err := h.uc.UpdateMeeting(c.Context(), middleware.ActorID(c), entities.Meeting{
		ID:          meetingID,
		Title:       body.Title,
		Description: body.Description,
		StartsAt:    body.StartsAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIMeeting(*meeting))
}

// DeleteMeeting cancels a meeting.
func (h *Handler) DeleteMeeting(c *fiber.Ctx) error {
	meetingID, err := parseID(c, "meetingID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.DeleteMeeting(c.Context(), middleware.ActorID(c), meetingID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddMeetingParticipant invites a user to the meeting.
func (h *Handler) AddMeetingParticipant(c *fiber.Ctx) error {
	meetingID, err := parseID(c, "meetingID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body models.MemberRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.AddMeetingParticipant(c.Context(), middleware.ActorID(c), meetingID, body.UserID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveMeetingParticipant uninvites a user from the meeting.
func (h *Handler) RemoveMeetingParticipant(c *fiber.Ctx) error {
	meetingID, err := parseID(c, "meetingID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	userID, err := parseID(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.RemoveMeetingParticipant(c.Context(), middleware.ActorID(c), meetingID, userID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListMeetings lists meetings within the actor's scope.
func (h *Handler) ListMeetings(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	meetings, err := h.uc.ListMeetings(c.Context(), middleware.ActorID(c), teamID,
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Meetings []models.Meeting `json:"meetings"`
	}{Meetings: mapper.ToAPIMeetingList(meetings)})
}

// MeetingsByDate returns the meetings of a calendar day.
func (h *Handler) MeetingsByDate(c *fiber.Ctx) error {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	meetings, err := h.uc.MeetingsByDate(c.Context(), middleware.ActorID(c), day, teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Meetings []models.Meeting `json:"meetings"`
	}{Meetings: mapper.ToAPIMeetingList(meetings)})
}

// UpcomingMeetings lists the actor's future meetings.
func (h *Handler) UpcomingMeetings(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	meetings, err := h.uc.UpcomingMeetings(c.Context(), middleware.ActorID(c), teamID, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Meetings []models.Meeting `json:"meetings"`
	}{Meetings: mapper.ToAPIMeetingList(meetings)})
}

// MeetingStats aggregates meeting counters.
func (h *Handler) MeetingStats(c *fiber.Ctx) error {
	teamID, err := parseOptionalID(c, "team_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	stats, err := h.uc.MeetingStats(c.Context(), middleware.ActorID(c), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}
