package handlers_fiber

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
)

// RegisterRoutes mounts the REST API. Every route requires the actor
// header; registration is the only anonymous endpoint.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/users", h.CreateUser)

	api := app.Group("/", middleware.Actor())

	api.Get("/users", h.ListUsers)
	api.Get("/users/search", h.SearchUsers)
	api.Get("/users/without-team", h.UsersWithoutTeam)
	api.Get("/users/by-email", h.GetUserByEmail)
	api.Get("/users/:userID", h.GetUser)
	api.Patch("/users/:userID", h.UpdateUser)
	api.Delete("/users/:userID", h.DeleteUser)
	api.Put("/users/:userID/role", h.AssignRole)
	api.Put("/users/:userID/active", h.SetActiveUser)
	api.Get("/users/:userID/scores", h.UserScores)

	api.Post("/teams", h.CreateTeam)
	api.Get("/teams", h.ListTeams)
	api.Get("/teams/search", h.SearchTeams)
	api.Get("/teams/by-name", h.GetTeamByName)
	api.Get("/teams/:teamID", h.GetTeam)
	api.Patch("/teams/:teamID", h.UpdateTeam)
	api.Delete("/teams/:teamID", h.DeleteTeam)
	api.Get("/teams/:teamID/members", h.TeamMembers)
	api.Post("/teams/:teamID/members", h.AddMember)
	api.Delete("/teams/:teamID/members/:userID", h.RemoveMember)
	api.Post("/teams/:teamID/leave", h.LeaveTeam)
	api.Post("/teams/:teamID/transfer", h.TransferOwnership)
	api.Post("/teams/:teamID/invites", h.IssueInvite)
	api.Post("/teams/join", h.RedeemInvite)
	api.Delete("/invites/:code", h.RevokeInvite)

	api.Post("/tasks", h.CreateTask)
	api.Get("/tasks", h.ListTasks)
	api.Get("/tasks/search", h.SearchTasks)
	api.Get("/tasks/overdue", h.OverdueTasks)
	api.Get("/tasks/stats", h.TaskStats)
	api.Get("/tasks/:taskID", h.GetTask)
	api.Patch("/tasks/:taskID", h.UpdateTask)
	api.Delete("/tasks/:taskID", h.DeleteTask)
	api.Put("/tasks/:taskID/assignee", h.AssignTask)
	api.Put("/tasks/:taskID/status", h.ChangeTaskStatus)
	api.Get("/tasks/:taskID/evaluation", h.TaskEvaluation)

	api.Post("/meetings", h.CreateMeeting)
	api.Get("/meetings", h.ListMeetings)
	api.Get("/meetings/by-date", h.MeetingsByDate)
	api.Get("/meetings/upcoming", h.UpcomingMeetings)
	api.Get("/meetings/stats", h.MeetingStats)
	api.Get("/meetings/:meetingID", h.GetMeeting)
	api.Patch("/meetings/:meetingID", h.UpdateMeeting)
	api.Delete("/meetings/:meetingID", h.DeleteMeeting)
	api.Post("/meetings/:meetingID/participants", h.AddMeetingParticipant)
	api.Delete("/meetings/:meetingID/participants/:userID", h.RemoveMeetingParticipant)

	api.Post("/evaluations", h.CreateEvaluation)
	api.Get("/evaluations", h.ListEvaluations)
	api.Get("/evaluations/:evaluationID", h.GetEvaluation)
	api.Patch("/evaluations/:evaluationID", h.UpdateEvaluation)
	api.Delete("/evaluations/:evaluationID", h.DeleteEvaluation)
}
