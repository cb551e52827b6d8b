// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// CreateTeam creates a team owned by the actor. The owner joins the
// team immediately.
func (u *Usecase) CreateTeam(ctx context.Context, actorID uuid.UUID, team entities.Team) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(team.Name) == "" {
		return nil, fmt.Errorf("%w: team name is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanCreateTeam(*actor) {
		return nil, fmt.Errorf("%w: employees cannot create teams", entities.ErrPermissionDenied)
	}

	exists, err := u.repo.ExistsByName(ctx, team.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrTeamExists, team.Name)
	}

	team.ID = u.newID()
	team.OwnerID = actorID

	var created *entities.Team
	err = u.repo.WithinTx(ctx, func(ctx context.Context) error {
		created, err = u.repo.CreateTeam(ctx, team)
		if err != nil {
			return err
		}
		actor.TeamID = &created.ID
		_, err = u.repo.UpdateUser(ctx, *actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infow("team created", "team_id", created.ID, "owner_id", actorID)
	return created, nil
}

// Team returns the team with its members.
func (u *Usecase) Team(ctx context.Context, actorID, teamID uuid.UUID) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeamWithMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewTeam(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot view this team", entities.ErrPermissionDenied)
	}
	return team, nil
}

// TeamByName looks a team up by its unique name.
func (u *Usecase) TeamByName(ctx context.Context, actorID uuid.UUID, name string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: team name is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeamByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewTeam(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot view this team", entities.ErrPermissionDenied)
	}
	return team, nil
}

// UpdateTeam renames or re-describes the team.
func (u *Usecase) UpdateTeam(ctx context.Context, actorID uuid.UUID, team entities.Team) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current, err := u.repo.GetTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanUpdateTeam(*actor, *current) {
		return nil, fmt.Errorf("%w: cannot update this team", entities.ErrPermissionDenied)
	}

	if team.Name != "" && team.Name != current.Name {
		exists, err := u.repo.ExistsByName(ctx, team.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", entities.ErrTeamExists, team.Name)
		}
		current.Name = team.Name
	}
	if team.Description != "" {
		current.Description = team.Description
	}

	return u.repo.UpdateTeam(ctx, *current)
}

// DeleteTeam removes the team and detaches all its members.
func (u *Usecase) DeleteTeam(ctx context.Context, actorID, teamID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if !u.perms.CanDeleteTeam(*actor, *team) {
		return fmt.Errorf("%w: cannot delete this team", entities.ErrPermissionDenied)
	}

	err = u.repo.WithinTx(ctx, func(ctx context.Context) error {
		members, err := u.repo.GetTeamMembers(ctx, teamID)
		if err != nil {
			return err
		}
		for _, m := range members {
			m.TeamID = nil
			if _, err := u.repo.UpdateUser(ctx, m); err != nil {
				return err
			}
		}
		return u.repo.DeleteTeam(ctx, teamID)
	})
	if err != nil {
		return err
	}

	u.log.Infow("team deleted", "team_id", teamID, "actor_id", actorID)
	return nil
}

// ListTeams lists teams. Employees see only their own team.
func (u *Usecase) ListTeams(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.Role == entities.RoleEmployee {
		if actor.TeamID == nil {
			return []entities.Team{}, nil
		}
		team, err := u.repo.GetTeam(ctx, *actor.TeamID)
		if err != nil {
			return nil, err
		}
		return []entities.Team{*team}, nil
	}

	return u.repo.ListTeams(ctx, entities.TeamFilter{
		Limit:  normalizeLimit(limit),
		Offset: offset,
	})
}

// SearchTeams searches teams by name. Employees are denied.
func (u *Usecase) SearchTeams(ctx context.Context, actorID uuid.UUID, query string, limit int) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == entities.RoleEmployee {
		return nil, fmt.Errorf("%w: employees cannot search teams", entities.ErrPermissionDenied)
	}
	return u.repo.SearchTeams(ctx, query, normalizeLimit(limit))
}

// TeamMembers lists the team's members.
func (u *Usecase) TeamMembers(ctx context.Context, actorID, teamID uuid.UUID) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewTeamMembers(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot view team members", entities.ErrPermissionDenied)
	}
	return u.repo.GetTeamMembers(ctx, teamID)
}
