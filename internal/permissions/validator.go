// Package permissions holds the access-control decision logic: pure
// predicates over fully loaded entities, and the scope resolver that
// narrows list queries by actor role.
package permissions

import (
	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// Validator is the single authoritative rule set for every permission
// check. All methods are pure: no I/O, no state, absence of permission
// is an ordinary false.
type Validator struct{}

// NewValidator constructs the validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ---------- user permissions ----------

// CanViewUser reports whether actor may view target's record.
func (v *Validator) CanViewUser(actor, target entities.User) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if actor.ID == target.ID {
		return true
	}
	if actor.Role == entities.RoleManager {
		// Same team, or unassigned users (recruiting).
		if actor.SameTeam(target) {
			return true
		}
		if target.TeamID == nil {
			return true
		}
	}
	if actor.Role == entities.RoleEmployee {
		return actor.SameTeam(target)
	}
	return false
}

// CanAssignRole reports whether actor may set target's role to newRole.
// Admins may not demote themselves to Employee through this path.
func (v *Validator) CanAssignRole(actor, target entities.User, newRole entities.Role) bool {
	if !v.IsSystemAdmin(actor) {
		return false
	}
	if actor.ID == target.ID && newRole == entities.RoleEmployee {
		return false
	}
	return true
}

// CanDeleteUser reports whether actor may delete target. Self-deletion
// is never allowed.
func (v *Validator) CanDeleteUser(actor, target entities.User) bool {
	return v.IsSystemAdmin(actor) && actor.ID != target.ID
}

// CanUpdateUser reports whether actor may update target's record.
func (v *Validator) CanUpdateUser(actor, target entities.User) bool {
	return v.IsSystemAdmin(actor) || actor.ID == target.ID
}

// CanViewUsersWithoutTeam reports whether actor may list unassigned users.
func (v *Validator) CanViewUsersWithoutTeam(actor entities.User) bool {
	return actor.Role == entities.RoleAdmin || actor.Role == entities.RoleManager
}

// ---------- team permissions ----------

// CanCreateTeam reports whether actor may create teams.
func (v *Validator) CanCreateTeam(actor entities.User) bool {
	return actor.Role == entities.RoleAdmin || actor.Role == entities.RoleManager
}

// CanViewTeam reports whether actor may view the team.
func (v *Validator) CanViewTeam(actor entities.User, team entities.Team) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if team.OwnerID == actor.ID {
		return true
	}
	if actor.InTeam(team.ID) {
		return true
	}
	return actor.Role == entities.RoleManager
}

// CanUpdateTeam reports whether actor may update the team.
func (v *Validator) CanUpdateTeam(actor entities.User, team entities.Team) bool {
	return v.IsSystemAdmin(actor) || team.OwnerID == actor.ID
}

// CanDeleteTeam reports whether actor may delete the team.
func (v *Validator) CanDeleteTeam(actor entities.User, team entities.Team) bool {
	return v.IsSystemAdmin(actor) || team.OwnerID == actor.ID
}

// CanAddTeamMember reports whether actor may add members to the team.
func (v *Validator) CanAddTeamMember(actor entities.User, team entities.Team) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if team.OwnerID == actor.ID {
		return true
	}
	return v.IsTeamManager(actor, team)
}

// CanRemoveTeamMember reports whether actor may remove members from the team.
func (v *Validator) CanRemoveTeamMember(actor entities.User, team entities.Team) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if team.OwnerID == actor.ID {
		return true
	}
	return v.IsTeamManager(actor, team)
}

// CanViewTeamMembers reports whether actor may list the team's members.
func (v *Validator) CanViewTeamMembers(actor entities.User, team entities.Team) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if actor.InTeam(team.ID) {
		return true
	}
	return actor.Role == entities.RoleManager
}

// ---------- task permissions ----------

// CanCreateTask reports whether actor may create tasks in the team.
func (v *Validator) CanCreateTask(actor entities.User, team entities.Team) bool {
	return v.IsSystemAdmin(actor) || actor.InTeam(team.ID)
}

// CanViewTask reports whether actor may view the task.
func (v *Validator) CanViewTask(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == actor.ID {
		return true
	}
	return actor.InTeam(task.TeamID)
}

// CanUpdateTask reports whether actor may update the task.
func (v *Validator) CanUpdateTask(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// CanDeleteTask reports whether actor may delete the task.
func (v *Validator) CanDeleteTask(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// CanAssignTask reports whether actor may set the task's assignee.
func (v *Validator) CanAssignTask(actor entities.User, task entities.Task, assignee entities.User) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// CanChangeTaskStatus reports whether actor may change the task status.
// The current assignee is additionally allowed.
func (v *Validator) CanChangeTaskStatus(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == actor.ID {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// ---------- meeting permissions ----------

// CanCreateMeetings reports whether actor may create meetings in the team.
// Any manager may schedule meetings in any team; this asymmetry with
// CanCreateTask is intentional and covered by tests.
func (v *Validator) CanCreateMeetings(actor entities.User, team entities.Team) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if actor.InTeam(team.ID) {
		return true
	}
	return actor.Role == entities.RoleManager
}

// CanViewMeeting reports whether actor may view the meeting.
func (v *Validator) CanViewMeeting(actor entities.User, meeting entities.Meeting) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if meeting.CreatorID == actor.ID {
		return true
	}
	for _, p := range meeting.ParticipantIDs {
		if p == actor.ID {
			return true
		}
	}
	return actor.InTeam(meeting.TeamID)
}

// CanUpdateMeeting reports whether actor may update the meeting.
// Same-team managers are deliberately excluded.
func (v *Validator) CanUpdateMeeting(actor entities.User, meeting entities.Meeting) bool {
	return v.IsSystemAdmin(actor) || meeting.CreatorID == actor.ID
}

// CanDeleteMeeting reports whether actor may delete the meeting.
func (v *Validator) CanDeleteMeeting(actor entities.User, meeting entities.Meeting) bool {
	return v.IsSystemAdmin(actor) || meeting.CreatorID == actor.ID
}

// CanAddMeetingParticipant reports whether actor may add participants.
func (v *Validator) CanAddMeetingParticipant(actor entities.User, meeting entities.Meeting) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if meeting.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(meeting.TeamID)
}

// ---------- evaluation permissions ----------

// CanCreateEvaluation reports whether actor may grade the task.
func (v *Validator) CanCreateEvaluation(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// CanViewEvaluation reports whether actor may view the task's grade.
func (v *Validator) CanViewEvaluation(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	return actor.InTeam(task.TeamID)
}

// CanUpdateEvaluation reports whether actor may change the task's grade.
func (v *Validator) CanUpdateEvaluation(actor entities.User, task entities.Task) bool {
	if v.IsSystemAdmin(actor) {
		return true
	}
	if task.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entities.RoleManager && actor.InTeam(task.TeamID)
}

// ---------- structural checks ----------

// IsSystemAdmin reports whether actor holds the Administrator role.
func (v *Validator) IsSystemAdmin(actor entities.User) bool {
	return actor.Role == entities.RoleAdmin
}

// IsTeamAdmin reports whether actor owns the team.
func (v *Validator) IsTeamAdmin(actor entities.User, team entities.Team) bool {
	return team.OwnerID == actor.ID
}

// IsTeamManager reports whether actor is a manager inside the team.
func (v *Validator) IsTeamManager(actor entities.User, team entities.Team) bool {
	return actor.Role == entities.RoleManager && actor.InTeam(team.ID)
}

// IsTeamMember reports whether actor belongs to the team.
func (v *Validator) IsTeamMember(actor entities.User, team entities.Team) bool {
	return actor.InTeam(team.ID)
}
