package permissions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

var (
	teamA = uuid.New()
	teamB = uuid.New()
)

func user(role entities.Role, teamID *uuid.UUID) entities.User {
	return entities.User{ID: uuid.New(), Role: role, TeamID: teamID, IsActive: true}
}

func TestCanViewUser(t *testing.T) {
	admin := user(entities.RoleAdmin, nil)
	managerA := user(entities.RoleManager, &teamA)
	employeeA := user(entities.RoleEmployee, &teamA)
	employeeA2 := user(entities.RoleEmployee, &teamA)
	employeeB := user(entities.RoleEmployee, &teamB)
	unassigned := user(entities.RoleEmployee, nil)

	v := NewValidator()

	tests := []struct {
		name   string
		actor  entities.User
		target entities.User
		want   bool
	}{
		{"admin sees anyone", admin, employeeB, true},
		{"self access", employeeA, employeeA, true},
		{"employee sees teammate", employeeA, employeeA2, true},
		{"employee blocked cross team", employeeA, employeeB, false},
		{"employee blocked unassigned", employeeA, unassigned, false},
		{"manager sees teammate", managerA, employeeA, true},
		{"manager sees unassigned", managerA, unassigned, true},
		{"manager blocked cross team", managerA, employeeB, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, v.CanViewUser(tt.actor, tt.target))
		})
	}
}

func TestCanAssignRole(t *testing.T) {
	v := NewValidator()
	admin := user(entities.RoleAdmin, nil)
	manager := user(entities.RoleManager, &teamA)
	employee := user(entities.RoleEmployee, &teamA)

	require.True(t, v.CanAssignRole(admin, employee, entities.RoleManager))
	require.True(t, v.CanAssignRole(admin, manager, entities.RoleEmployee))
	require.False(t, v.CanAssignRole(manager, employee, entities.RoleManager))
	require.False(t, v.CanAssignRole(employee, employee, entities.RoleAdmin))

	// Promoting or keeping own admin role is fine, self-demotion is not.
	require.True(t, v.CanAssignRole(admin, admin, entities.RoleAdmin))
	require.True(t, v.CanAssignRole(admin, admin, entities.RoleManager))
	require.False(t, v.CanAssignRole(admin, admin, entities.RoleEmployee))
}

func TestCanDeleteUser(t *testing.T) {
	v := NewValidator()
	admin := user(entities.RoleAdmin, nil)
	other := user(entities.RoleEmployee, &teamA)

	require.True(t, v.CanDeleteUser(admin, other))
	require.False(t, v.CanDeleteUser(admin, admin))
	require.False(t, v.CanDeleteUser(other, other))
}

func TestTeamPermissions(t *testing.T) {
	v := NewValidator()
	admin := user(entities.RoleAdmin, nil)
	owner := user(entities.RoleManager, &teamA)
	managerA := user(entities.RoleManager, &teamA)
	managerB := user(entities.RoleManager, &teamB)
	employeeA := user(entities.RoleEmployee, &teamA)
	employeeB := user(entities.RoleEmployee, &teamB)

	team := entities.Team{ID: teamA, Name: "core", OwnerID: owner.ID}

	require.True(t, v.CanViewTeam(admin, team))
	require.True(t, v.CanViewTeam(owner, team))
	require.True(t, v.CanViewTeam(employeeA, team))
	require.True(t, v.CanViewTeam(managerB, team))
	require.False(t, v.CanViewTeam(employeeB, team))

	require.True(t, v.CanUpdateTeam(owner, team))
	require.False(t, v.CanUpdateTeam(managerA, team))
	require.True(t, v.CanDeleteTeam(admin, team))
	require.False(t, v.CanDeleteTeam(employeeA, team))

	require.True(t, v.CanAddTeamMember(managerA, team))
	require.False(t, v.CanAddTeamMember(managerB, team))
	require.False(t, v.CanAddTeamMember(employeeA, team))
	require.True(t, v.CanRemoveTeamMember(owner, team))

	require.True(t, v.CanViewTeamMembers(employeeA, team))
	require.True(t, v.CanViewTeamMembers(managerB, team))
	require.False(t, v.CanViewTeamMembers(employeeB, team))
}

func TestTaskPermissions(t *testing.T) {
	v := NewValidator()
	admin := user(entities.RoleAdmin, nil)
	creator := user(entities.RoleEmployee, &teamA)
	assignee := user(entities.RoleEmployee, &teamA)
	teammate := user(entities.RoleEmployee, &teamA)
	outsider := user(entities.RoleEmployee, &teamB)
	managerA := user(entities.RoleManager, &teamA)
	managerB := user(entities.RoleManager, &teamB)

	team := entities.Team{ID: teamA, OwnerID: managerA.ID}
	task := entities.Task{ID: uuid.New(), TeamID: teamA, CreatorID: creator.ID, AssigneeID: &assignee.ID}

	require.True(t, v.CanCreateTask(creator, team))
	require.False(t, v.CanCreateTask(outsider, team))
	// Managers from other teams cannot create tasks here.
	require.False(t, v.CanCreateTask(managerB, team))

	require.True(t, v.CanViewTask(teammate, task))
	require.True(t, v.CanViewTask(assignee, task))
	require.False(t, v.CanViewTask(outsider, task))

	require.True(t, v.CanUpdateTask(creator, task))
	require.True(t, v.CanUpdateTask(managerA, task))
	require.False(t, v.CanUpdateTask(teammate, task))
	require.False(t, v.CanUpdateTask(managerB, task))

	require.True(t, v.CanChangeTaskStatus(assignee, task))
	require.True(t, v.CanChangeTaskStatus(creator, task))
	require.False(t, v.CanChangeTaskStatus(teammate, task))
	require.True(t, v.CanChangeTaskStatus(admin, task))
}

func TestMeetingPermissions(t *testing.T) {
	v := NewValidator()
	creator := user(entities.RoleEmployee, &teamA)
	participant := user(entities.RoleEmployee, &teamB)
	teammate := user(entities.RoleEmployee, &teamA)
	outsider := user(entities.RoleEmployee, &teamB)
	managerA := user(entities.RoleManager, &teamA)
	managerB := user(entities.RoleManager, &teamB)

	team := entities.Team{ID: teamA, OwnerID: managerA.ID}
	meeting := entities.Meeting{
		ID:             uuid.New(),
		TeamID:         teamA,
		CreatorID:      creator.ID,
		ParticipantIDs: []uuid.UUID{creator.ID, participant.ID},
	}

	// Unlike tasks, any manager may schedule meetings in any team.
	require.True(t, v.CanCreateMeetings(managerB, team))
	require.True(t, v.CanCreateMeetings(teammate, team))
	require.False(t, v.CanCreateMeetings(outsider, team))

	require.True(t, v.CanViewMeeting(participant, meeting))
	require.True(t, v.CanViewMeeting(teammate, meeting))
	require.False(t, v.CanViewMeeting(outsider, meeting))

	// Only the creator or an admin may edit, same-team managers may not.
	require.True(t, v.CanUpdateMeeting(creator, meeting))
	require.False(t, v.CanUpdateMeeting(managerA, meeting))
	require.False(t, v.CanDeleteMeeting(participant, meeting))

	require.True(t, v.CanAddMeetingParticipant(managerA, meeting))
	require.False(t, v.CanAddMeetingParticipant(managerB, meeting))
}

func TestEvaluationPermissions(t *testing.T) {
	v := NewValidator()
	creator := user(entities.RoleEmployee, &teamA)
	assignee := user(entities.RoleEmployee, &teamA)
	teammate := user(entities.RoleEmployee, &teamA)
	outsider := user(entities.RoleEmployee, &teamB)
	managerA := user(entities.RoleManager, &teamA)
	managerB := user(entities.RoleManager, &teamB)

	task := entities.Task{ID: uuid.New(), TeamID: teamA, CreatorID: creator.ID, AssigneeID: &assignee.ID}

	require.True(t, v.CanCreateEvaluation(creator, task))
	require.True(t, v.CanCreateEvaluation(managerA, task))
	require.False(t, v.CanCreateEvaluation(assignee, task))
	require.False(t, v.CanCreateEvaluation(managerB, task))

	require.True(t, v.CanViewEvaluation(teammate, task))
	require.False(t, v.CanViewEvaluation(outsider, task))
}
