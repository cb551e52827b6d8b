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
	userColumns = "id, email, name, surname, role, team_id, is_active"

	insertUserQuery = `
INSERT INTO users(id, email, name, surname, role, team_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + userColumns

	selectUserQuery        = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	selectUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email=$1`

	updateUserQuery = `
UPDATE users
SET email=$2, name=$3, surname=$4, role=$5, team_id=$6, is_active=$7
WHERE id=$1
RETURNING ` + userColumns

	deleteUserQuery = `DELETE FROM users WHERE id=$1`

	listUsersQuery = `
SELECT ` + userColumns + ` FROM users
WHERE ($1::uuid IS NULL OR team_id=$1)
ORDER BY surname, name
LIMIT $2 OFFSET $3`

	searchUsersQuery = `
SELECT ` + userColumns + ` FROM users
WHERE (name ILIKE '%' || $1 || '%' OR surname ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
  AND ($2::uuid IS NULL OR team_id=$2)
ORDER BY surname, name
LIMIT $3`

	teamMembersQuery = `SELECT ` + userColumns + ` FROM users WHERE team_id=$1 ORDER BY surname, name`

	usersWithoutTeamQuery = `
SELECT ` + userColumns + ` FROM users
WHERE team_id IS NULL
ORDER BY surname, name
LIMIT $1 OFFSET $2`

	existsByEmailQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`
)

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Role, &u.TeamID, &u.IsActive)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	created, err := scanUser(p.q(ctx).QueryRow(ctx, insertUserQuery,
		user.ID, user.Email, user.Name, user.Surname, user.Role, user.TeamID, user.IsActive))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrEmailExists
		}
		p.log.Errorw("failed to create user", "error", err, "email", user.Email)
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, err := scanUser(p.q(ctx).QueryRow(ctx, selectUserQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := scanUser(p.q(ctx).QueryRow(ctx, selectUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateUser persists the full user record.
func (p *Postgres) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	updated, err := scanUser(p.q(ctx).QueryRow(ctx, updateUserQuery,
		user.ID, user.Email, user.Name, user.Surname, user.Role, user.TeamID, user.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, entities.ErrEmailExists
		}
		p.log.Errorw("failed to update user", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes a user by id.
func (p *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := p.q(ctx).Exec(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func (p *Postgres) scanUsers(rows pgx.Rows, op string) ([]entities.User, error) {
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Role, &u.TeamID, &u.IsActive); err != nil {
			p.log.Errorw("failed to scan users", "error", err, "op", op)
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return users, nil
}

// ListUsers lists users matching the filter.
func (p *Postgres) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	rows, err := p.q(ctx).Query(ctx, listUsersQuery, filter.TeamID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return p.scanUsers(rows, "users")
}

// SearchUsers matches users by name, surname or email.
func (p *Postgres) SearchUsers(ctx context.Context, query string, teamID *uuid.UUID, limit int) ([]entities.User, error) {
	rows, err := p.q(ctx).Query(ctx, searchUsersQuery, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return p.scanUsers(rows, "user search")
}

// GetTeamMembers lists the team's members.
func (p *Postgres) GetTeamMembers(ctx context.Context, teamID uuid.UUID) ([]entities.User, error) {
	rows, err := p.q(ctx).Query(ctx, teamMembersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	return p.scanUsers(rows, "team members")
}

// GetUsersWithoutTeam lists users not assigned to any team.
func (p *Postgres) GetUsersWithoutTeam(ctx context.Context, limit, offset int) ([]entities.User, error) {
	rows, err := p.q(ctx).Query(ctx, usersWithoutTeamQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get users without team: %w", err)
	}
	return p.scanUsers(rows, "unassigned users")
}

// ExistsByEmail reports whether the email is taken.
func (p *Postgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := p.q(ctx).QueryRow(ctx, existsByEmailQuery, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}
