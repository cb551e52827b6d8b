// Package domain contains application Usecases orchestrating team membership.
package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/invites"
)

// AddMember puts a user into the team. Users already in another team
// must leave it first.
func (u *Usecase) AddMember(ctx context.Context, actorID, teamID, userID uuid.UUID) error {
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
	if !u.perms.CanAddTeamMember(*actor, *team) {
		return fmt.Errorf("%w: cannot add members to this team", entities.ErrPermissionDenied)
	}

	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if target.TeamID != nil {
		if *target.TeamID == teamID {
			return fmt.Errorf("%w: user already in this team", entities.ErrInvalidOperation)
		}
		return fmt.Errorf("%w: user belongs to another team", entities.ErrInvalidOperation)
	}

	target.TeamID = &teamID
	if _, err := u.repo.UpdateUser(ctx, *target); err != nil {
		return err
	}
	u.log.Infow("member added", "team_id", teamID, "user_id", userID, "actor_id", actorID)
	return nil
}

// RemoveMember takes a user out of the team. The owner cannot be
// removed; ownership must be transferred first.
func (u *Usecase) RemoveMember(ctx context.Context, actorID, teamID, userID uuid.UUID) error {
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
	if !u.perms.CanRemoveTeamMember(*actor, *team) {
		return fmt.Errorf("%w: cannot remove members from this team", entities.ErrPermissionDenied)
	}
	if team.OwnerID == userID {
		return fmt.Errorf("%w: transfer ownership before removing the owner", entities.ErrInvalidOperation)
	}

	target, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !target.InTeam(teamID) {
		return fmt.Errorf("%w: user is not a member of this team", entities.ErrInvalidOperation)
	}

	target.TeamID = nil
	if _, err := u.repo.UpdateUser(ctx, *target); err != nil {
		return err
	}
	u.log.Infow("member removed", "team_id", teamID, "user_id", userID, "actor_id", actorID)
	return nil
}

// LeaveTeam lets the actor exit their team. Owners must transfer
// ownership before leaving.
func (u *Usecase) LeaveTeam(ctx context.Context, actorID, teamID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.InTeam(teamID) {
		return fmt.Errorf("%w: not a member of this team", entities.ErrInvalidOperation)
	}

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.OwnerID == actorID {
		return fmt.Errorf("%w: owner must transfer ownership before leaving", entities.ErrInvalidOperation)
	}

	actor.TeamID = nil
	if _, err := u.repo.UpdateUser(ctx, *actor); err != nil {
		return err
	}
	u.log.Infow("member left team", "team_id", teamID, "user_id", actorID)
	return nil
}

// TransferOwnership hands the team to another member.
func (u *Usecase) TransferOwnership(ctx context.Context, actorID, teamID, newOwnerID uuid.UUID) (*entities.Team, error) {
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
	if !u.perms.IsSystemAdmin(*actor) && !u.perms.IsTeamAdmin(*actor, *team) {
		return nil, fmt.Errorf("%w: only the owner or an admin may transfer ownership", entities.ErrPermissionDenied)
	}
	if team.OwnerID == newOwnerID {
		return nil, fmt.Errorf("%w: user already owns this team", entities.ErrInvalidOperation)
	}

	newOwner, err := u.repo.GetUser(ctx, newOwnerID)
	if err != nil {
		return nil, err
	}
	if !newOwner.InTeam(teamID) {
		return nil, fmt.Errorf("%w: new owner must be a team member", entities.ErrInvalidOperation)
	}

	team.OwnerID = newOwnerID
	updated, err := u.repo.UpdateTeam(ctx, *team)
	if err != nil {
		return nil, err
	}
	u.log.Infow("ownership transferred", "team_id", teamID, "new_owner_id", newOwnerID, "actor_id", actorID)
	return updated, nil
}

// IssueInvite generates a join code for the team.
func (u *Usecase) IssueInvite(ctx context.Context, actorID, teamID uuid.UUID) (*entities.Invite, error) {
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
	if !u.perms.CanAddTeamMember(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot issue invites for this team", entities.ErrPermissionDenied)
	}

	code, err := invites.NewCode()
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	invite := entities.Invite{
		Code:      code,
		TeamID:    teamID,
		IssuerID:  actorID,
		IssuedAt:  now,
		ExpiresAt: now.Add(u.inviteTTL),
		Active:    true,
	}
	if err := u.invites.Save(ctx, invite); err != nil {
		return nil, err
	}

	u.log.Infow("invite issued", "team_id", teamID, "actor_id", actorID, "expires_at", invite.ExpiresAt)
	return &invite, nil
}

// RedeemInvite joins the actor to the invite's team. Codes stay
// redeemable until expiry, so one code can admit several users.
func (u *Usecase) RedeemInvite(ctx context.Context, actorID uuid.UUID, code string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.TeamID != nil {
		return nil, fmt.Errorf("%w: leave the current team before joining another", entities.ErrInvalidOperation)
	}

	invite, err := u.invites.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if !invite.Redeemable(u.clock.Now()) {
		return nil, entities.ErrInviteInvalid
	}

	team, err := u.repo.GetTeam(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}

	actor.TeamID = &team.ID
	if _, err := u.repo.UpdateUser(ctx, *actor); err != nil {
		return nil, err
	}

	u.log.Infow("invite redeemed", "team_id", team.ID, "user_id", actorID)
	return team, nil
}

// RevokeInvite deactivates a code before its expiry.
func (u *Usecase) RevokeInvite(ctx context.Context, actorID uuid.UUID, code string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}

	invite, err := u.invites.Get(ctx, code)
	if err != nil {
		return err
	}
	team, err := u.repo.GetTeam(ctx, invite.TeamID)
	if err != nil {
		return err
	}
	if !u.perms.CanAddTeamMember(*actor, *team) && invite.IssuerID != actorID {
		return fmt.Errorf("%w: cannot revoke this invite", entities.ErrPermissionDenied)
	}

	if err := u.invites.Invalidate(ctx, code); err != nil {
		return err
	}
	u.log.Infow("invite revoked", "team_id", team.ID, "actor_id", actorID)
	return nil
}
