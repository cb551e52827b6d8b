// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

// ToAPIUser maps entities.User to transport model.
func ToAPIUser(u entities.User) models.User {
	return models.User{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Surname:  u.Surname,
		Role:     string(u.Role),
		TeamID:   u.TeamID,
		IsActive: u.IsActive,
	}
}

// ToAPIUserList maps a slice of users.
func ToAPIUserList(list []entities.User) []models.User {
	res := make([]models.User, 0, len(list))
	for _, u := range list {
		res = append(res, ToAPIUser(u))
	}
	return res
}

// ToAPITeam maps entities.Team to transport model.
func ToAPITeam(t entities.Team) models.Team {
	return models.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		Members:     ToAPIUserList(t.Members),
	}
}

// ToAPITeamList maps a slice of teams.
func ToAPITeamList(list []entities.Team) []models.Team {
	res := make([]models.Team, 0, len(list))
	for _, t := range list {
		res = append(res, ToAPITeam(t))
	}
	return res
}

// ToAPITask maps entities.Task to transport model.
func ToAPITask(t entities.Task) models.Task {
	return models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      string(t.Status),
		TeamID:      t.TeamID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
	}
}

// ToAPITaskList maps a slice of tasks.
func ToAPITaskList(list []entities.Task) []models.Task {
	res := make([]models.Task, 0, len(list))
	for _, t := range list {
		res = append(res, ToAPITask(t))
	}
	return res
}

// ToAPIMeeting maps entities.Meeting to transport model.
func ToAPIMeeting(m entities.Meeting) models.Meeting {
	return models.Meeting{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		StartsAt:       m.StartsAt,
		TeamID:         m.TeamID,
		CreatorID:      m.CreatorID,
		ParticipantIDs: m.ParticipantIDs,
	}
}

// ToAPIMeetingList maps a slice of meetings.
func ToAPIMeetingList(list []entities.Meeting) []models.Meeting {
	res := make([]models.Meeting, 0, len(list))
	for _, m := range list {
		res = append(res, ToAPIMeeting(m))
	}
	return res
}

// ToAPIEvaluation maps entities.Evaluation to transport model.
func ToAPIEvaluation(e entities.Evaluation) models.Evaluation {
	return models.Evaluation{
		ID:              e.ID,
		TaskID:          e.TaskID,
		EvaluatorID:     e.EvaluatorID,
		EvaluatedUserID: e.EvaluatedUserID,
		Score:           string(e.Score),
		Comment:         e.Comment,
	}
}

// ToAPIEvaluationList maps a slice of evaluations.
func ToAPIEvaluationList(list []entities.Evaluation) []models.Evaluation {
	res := make([]models.Evaluation, 0, len(list))
	for _, e := range list {
		res = append(res, ToAPIEvaluation(e))
	}
	return res
}

// ToAPIInvite maps entities.Invite to transport model. The issuer and
// issue time stay server-side.
func ToAPIInvite(i entities.Invite) models.Invite {
	return models.Invite{
		Code:      i.Code,
		TeamID:    i.TeamID,
		ExpiresAt: i.ExpiresAt,
	}
}
