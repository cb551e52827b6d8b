package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

const (
	teamColumns = "id, name, description, owner_id"

	insertTeamQuery = `
INSERT INTO teams(id, name, description, owner_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + teamColumns

	selectTeamQuery       = `SELECT ` + teamColumns + ` FROM teams WHERE id=$1`
	selectTeamByNameQuery = `SELECT ` + teamColumns + ` FROM teams WHERE name=$1`

	updateTeamQuery = `
UPDATE teams
SET name=$2, description=$3, owner_id=$4
WHERE id=$1
RETURNING ` + teamColumns

	deleteTeamQuery = `DELETE FROM teams WHERE id=$1`

	listTeamsQuery = `
SELECT ` + teamColumns + ` FROM teams
WHERE ($1::uuid IS NULL OR owner_id=$1)
ORDER BY name
LIMIT $2 OFFSET $3`

	searchTeamsQuery = `
SELECT ` + teamColumns + ` FROM teams
WHERE name ILIKE '%' || $1 || '%'
ORDER BY name
LIMIT $2`

	existsByNameQuery = `SELECT EXISTS(SELECT 1 FROM teams WHERE name=$1)`
)

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTeam inserts a team.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	created, err := scanTeam(p.q(ctx).QueryRow(ctx, insertTeamQuery,
		team.ID, team.Name, team.Description, team.OwnerID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrTeamExists
		}
		p.log.Errorw("failed to create team", "error", err, "name", team.Name)
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return created, nil
}

// GetTeam fetches a team by id, without members.
func (p *Postgres) GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	t, err := scanTeam(p.q(ctx).QueryRow(ctx, selectTeamQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

// GetTeamByName fetches a team by name.
func (p *Postgres) GetTeamByName(ctx context.Context, name string) (*entities.Team, error) {
	t, err := scanTeam(p.q(ctx).QueryRow(ctx, selectTeamByNameQuery, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team by name: %w", err)
	}
	return t, nil
}

// GetTeamWithMembers fetches a team together with its member list.
func (p *Postgres) GetTeamWithMembers(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	team, err := p.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := p.GetTeamMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

// UpdateTeam persists the team record.
func (p *Postgres) UpdateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	updated, err := scanTeam(p.q(ctx).QueryRow(ctx, updateTeamQuery,
		team.ID, team.Name, team.Description, team.OwnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		if isUniqueViolation(err) {
			return nil, entities.ErrTeamExists
		}
		p.log.Errorw("failed to update team", "error", err, "team_id", team.ID)
		return nil, fmt.Errorf("update team: %w", err)
	}
	return updated, nil
}

// DeleteTeam removes a team by id.
func (p *Postgres) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := p.q(ctx).Exec(ctx, deleteTeamQuery, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}
	return nil
}

func (p *Postgres) scanTeams(rows pgx.Rows, op string) ([]entities.Team, error) {
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID); err != nil {
			p.log.Errorw("failed to scan teams", "error", err, "op", op)
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return teams, nil
}

// ListTeams lists teams matching the filter.
func (p *Postgres) ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error) {
	rows, err := p.q(ctx).Query(ctx, listTeamsQuery, filter.OwnerID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return p.scanTeams(rows, "teams")
}

// SearchTeams matches teams by name.
func (p *Postgres) SearchTeams(ctx context.Context, query string, limit int) ([]entities.Team, error) {
	rows, err := p.q(ctx).Query(ctx, searchTeamsQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	return p.scanTeams(rows, "team search")
}

// ExistsByName reports whether the team name is taken.
func (p *Postgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := p.q(ctx).QueryRow(ctx, existsByNameQuery, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return exists, nil
}
