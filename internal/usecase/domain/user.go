// Package domain contains application Usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
)

// CreateUser registers a new user with the Employee role.
func (u *Usecase) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", entities.ErrInvalidArgument)
	}
	if user.Name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}

	exists, err := u.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrEmailExists, user.Email)
	}

	user.ID = u.newID()
	user.Role = entities.RoleEmployee
	user.TeamID = nil
	user.IsActive = true

	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	u.log.Infow("user created", "user_id", created.ID)
	return created, nil
}

// User returns a user's record if the actor may view it.
func (u *Usecase) User(ctx context.Context, actorID, userID uuid.UUID) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewUser(*actor, *target) {
		return nil, fmt.Errorf("%w: cannot view this user", entities.ErrPermissionDenied)
	}
	return target, nil
}

// UserByEmail looks a user up by their registered email.
func (u *Usecase) UserByEmail(ctx context.Context, actorID uuid.UUID, email string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := u.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewUser(*actor, *target) {
		return nil, fmt.Errorf("%w: cannot view this user", entities.ErrPermissionDenied)
	}
	return target, nil
}

// UpdateUser updates a user's profile fields. Role and team membership
// are managed by their own operations and are never touched here.
func (u *Usecase) UpdateUser(ctx context.Context, actorID uuid.UUID, user entities.User) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current, err := u.repo.GetUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanUpdateUser(*actor, *current) {
		return nil, fmt.Errorf("%w: cannot update this user", entities.ErrPermissionDenied)
	}

	if user.Name != "" {
		current.Name = user.Name
	}
	if user.Surname != "" {
		current.Surname = user.Surname
	}
	if user.Email != "" {
		email := strings.ToLower(strings.TrimSpace(user.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: valid email is required", entities.ErrInvalidArgument)
		}
		if email != current.Email {
			exists, err := u.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: %s", entities.ErrEmailExists, email)
			}
			current.Email = email
		}
	}

	return u.repo.UpdateUser(ctx, *current)
}

// DeleteUser removes a user. Only admins may delete, never themselves.
func (u *Usecase) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !u.perms.CanDeleteUser(*actor, *target) {
		return fmt.Errorf("%w: cannot delete this user", entities.ErrPermissionDenied)
	}

	err = u.repo.WithinTx(ctx, func(ctx context.Context) error {
		if target.TeamID != nil {
			team, err := u.repo.GetTeam(ctx, *target.TeamID)
			if err != nil {
				return err
			}
			if team.OwnerID == target.ID {
				return fmt.Errorf("%w: transfer team ownership before deleting the owner", entities.ErrInvalidOperation)
			}
		}
		return u.repo.DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	u.log.Infow("user deleted", "user_id", userID, "actor_id", actorID)
	return nil
}

// AssignRole changes a user's role. Admin-only; admins cannot demote
// themselves to Employee.
func (u *Usecase) AssignRole(ctx context.Context, actorID, userID uuid.UUID, role entities.Role) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", entities.ErrInvalidArgument, role)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanAssignRole(*actor, *target, role) {
		return nil, fmt.Errorf("%w: cannot assign role %s", entities.ErrPermissionDenied, role)
	}

	target.Role = role
	updated, err := u.repo.UpdateUser(ctx, *target)
	if err != nil {
		return nil, err
	}
	u.log.Infow("role assigned", "user_id", userID, "role", role, "actor_id", actorID)
	return updated, nil
}

// SetActiveUser toggles a user's activity flag. Admin-only.
func (u *Usecase) SetActiveUser(ctx context.Context, actorID, userID uuid.UUID, isActive bool) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !u.perms.IsSystemAdmin(*actor) {
		return nil, fmt.Errorf("%w: only admins may change activity", entities.ErrPermissionDenied)
	}
	if actorID == userID && !isActive {
		return nil, fmt.Errorf("%w: admins cannot deactivate themselves", entities.ErrPermissionDenied)
	}

	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	target.IsActive = isActive
	return u.repo.UpdateUser(ctx, *target)
}

// ListUsers lists users visible to the actor, scoped by team.
func (u *Usecase) ListUsers(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit, offset int) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return nil, err
	}
	if scope.Empty {
		return []entities.User{}, nil
	}
	return u.repo.ListUsers(ctx, entities.UserFilter{
		TeamID: scope.TeamID,
		Limit:  normalizeLimit(limit),
		Offset: offset,
	})
}

// SearchUsers searches users by name or email within the actor's scope.
func (u *Usecase) SearchUsers(ctx context.Context, actorID uuid.UUID, query string, teamID *uuid.UUID, limit int) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return nil, err
	}
	if scope.Empty {
		return []entities.User{}, nil
	}
	return u.repo.SearchUsers(ctx, query, scope.TeamID, normalizeLimit(limit))
}

// UsersWithoutTeam lists users not assigned to any team. Managers use
// it for recruiting; employees are denied.
func (u *Usecase) UsersWithoutTeam(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewUsersWithoutTeam(*actor) {
		return nil, fmt.Errorf("%w: cannot list unassigned users", entities.ErrPermissionDenied)
	}
	return u.repo.GetUsersWithoutTeam(ctx, normalizeLimit(limit), offset)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
