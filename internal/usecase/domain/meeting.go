// Package domain contains application Usecases orchestrating domain logic by meeting.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
)

// checkParticipantConflicts rejects the slot when any participant
// already has a meeting overlapping [start, start+MeetingDuration).
func (u *Usecase) checkParticipantConflicts(ctx context.Context, participantIDs []uuid.UUID, start time.Time, excludeID *uuid.UUID) error {
	end := start.Add(entities.MeetingDuration)
	for _, pid := range participantIDs {
		conflicts, err := u.repo.CheckTimeConflicts(ctx, pid, start, end, excludeID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: participant %s has a conflicting meeting", entities.ErrInvalidOperation, pid)
		}
	}
	return nil
}

// CreateMeeting schedules a meeting. The creator always participates.
func (u *Usecase) CreateMeeting(ctx context.Context, actorID uuid.UUID, meeting entities.Meeting) (*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(meeting.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if !meeting.StartsAt.After(u.clock.Now()) {
		return nil, fmt.Errorf("%w: meeting must start in the future", entities.ErrInvalidArgument)
	}

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeam(ctx, meeting.TeamID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanCreateMeetings(*actor, *team) {
		return nil, fmt.Errorf("%w: cannot create meetings in this team", entities.ErrPermissionDenied)
	}

	meeting.CreatorID = actorID
	participants := make([]uuid.UUID, 0, len(meeting.ParticipantIDs)+1)
	seen := map[uuid.UUID]struct{}{actorID: {}}
	participants = append(participants, actorID)
	for _, pid := range meeting.ParticipantIDs {
		if _, ok := seen[pid]; ok {
			continue
		}
		if _, err := u.repo.GetUser(ctx, pid); err != nil {
			return nil, err
		}
		seen[pid] = struct{}{}
		participants = append(participants, pid)
	}
	meeting.ParticipantIDs = participants

	if err := u.checkParticipantConflicts(ctx, participants, meeting.StartsAt, nil); err != nil {
		return nil, err
	}

	meeting.ID = u.newID()

	var created *entities.Meeting
	err = u.repo.WithinTx(ctx, func(ctx context.Context) error {
		created, err = u.repo.CreateMeeting(ctx, meeting)
		if err != nil {
			return err
		}
		for _, pid := range participants {
			if err := u.repo.AddParticipant(ctx, created.ID, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infow("meeting created", "meeting_id", created.ID, "team_id", meeting.TeamID, "actor_id", actorID)
	created.ParticipantIDs = participants
	return created, nil
}

// Meeting returns the meeting with its participants.
func (u *Usecase) Meeting(ctx context.Context, actorID, meetingID uuid.UUID) (*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	meeting, err := u.repo.GetMeetingWithParticipants(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanViewMeeting(*actor, *meeting) {
		return nil, fmt.Errorf("%w: cannot view this meeting", entities.ErrPermissionDenied)
	}
	return meeting, nil
}

// UpdateMeeting edits title, description or start time. Rescheduling
// re-checks every participant's calendar, excluding this meeting.
func (u *Usecase) UpdateMeeting(ctx context.Context, actorID uuid.UUID, meeting entities.Meeting) (*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current, err := u.repo.GetMeetingWithParticipants(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}
	if !u.perms.CanUpdateMeeting(*actor, *current) {
		return nil, fmt.Errorf("%w: cannot update this meeting", entities.ErrPermissionDenied)
	}

	if meeting.Title != "" {
		current.Title = meeting.Title
	}
	if meeting.Description != "" {
		current.Description = meeting.Description
	}
	if !meeting.StartsAt.IsZero() && !meeting.StartsAt.Equal(current.StartsAt) {
		if !meeting.StartsAt.After(u.clock.Now()) {
			return nil, fmt.Errorf("%w: meeting must start in the future", entities.ErrInvalidArgument)
		}
		if err := u.checkParticipantConflicts(ctx, current.ParticipantIDs, meeting.StartsAt, &current.ID); err != nil {
			return nil, err
		}
		current.StartsAt = meeting.StartsAt
	}

	return u.repo.UpdateMeeting(ctx, *current)
}

// DeleteMeeting cancels the meeting.
func (u *Usecase) DeleteMeeting(ctx context.Context, actorID, meetingID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	meeting, err := u.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if !u.perms.CanDeleteMeeting(*actor, *meeting) {
		return fmt.Errorf("%w: cannot delete this meeting", entities.ErrPermissionDenied)
	}

	if err := u.repo.DeleteMeeting(ctx, meetingID); err != nil {
		return err
	}
	u.log.Infow("meeting deleted", "meeting_id", meetingID, "actor_id", actorID)
	return nil
}

// AddMeetingParticipant invites a user, rejecting calendar conflicts.
func (u *Usecase) AddMeetingParticipant(ctx context.Context, actorID, meetingID, userID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	meeting, err := u.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if !u.perms.CanAddMeetingParticipant(*actor, *meeting) {
		return fmt.Errorf("%w: cannot manage this meeting's participants", entities.ErrPermissionDenied)
	}

	if _, err := u.repo.GetUser(ctx, userID); err != nil {
		return err
	}
	already, err := u.repo.IsParticipant(ctx, meetingID, userID)
	if err != nil {
		return err
	}
	if already {
		return fmt.Errorf("%w: user already participates", entities.ErrInvalidOperation)
	}

	if err := u.checkParticipantConflicts(ctx, []uuid.UUID{userID}, meeting.StartsAt, &meetingID); err != nil {
		return err
	}
	return u.repo.AddParticipant(ctx, meetingID, userID)
}

// RemoveMeetingParticipant uninvites a user. The creator always stays.
func (u *Usecase) RemoveMeetingParticipant(ctx context.Context, actorID, meetingID, userID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return err
	}
	meeting, err := u.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if !u.perms.CanAddMeetingParticipant(*actor, *meeting) && actorID != userID {
		return fmt.Errorf("%w: cannot manage this meeting's participants", entities.ErrPermissionDenied)
	}
	if meeting.CreatorID == userID {
		return fmt.Errorf("%w: the creator cannot be removed", entities.ErrInvalidOperation)
	}

	participates, err := u.repo.IsParticipant(ctx, meetingID, userID)
	if err != nil {
		return err
	}
	if !participates {
		return fmt.Errorf("%w: user does not participate", entities.ErrInvalidOperation)
	}
	return u.repo.RemoveParticipant(ctx, meetingID, userID)
}

// ListMeetings lists meetings within the actor's scope.
func (u *Usecase) ListMeetings(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit, offset int) ([]entities.Meeting, error) {
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
		return []entities.Meeting{}, nil
	}
	return u.repo.ListMeetings(ctx, entities.MeetingFilter{
		TeamID: scope.TeamID,
		Limit:  normalizeLimit(limit),
		Offset: offset,
	})
}

// MeetingsByDate returns the meetings of a calendar day.
func (u *Usecase) MeetingsByDate(ctx context.Context, actorID uuid.UUID, day time.Time, teamID *uuid.UUID) ([]entities.Meeting, error) {
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
		return []entities.Meeting{}, nil
	}
	return u.repo.GetMeetingsByDate(ctx, day, scope.TeamID, nil)
}

// UpcomingMeetings lists the actor's future meetings.
func (u *Usecase) UpcomingMeetings(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID, limit int) ([]entities.Meeting, error) {
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
		return []entities.Meeting{}, nil
	}
	return u.repo.GetUpcomingMeetings(ctx, u.clock.Now(), scope.TeamID, &actorID, normalizeLimit(limit))
}

// MeetingStats aggregates meeting counters for the actor's scope.
func (u *Usecase) MeetingStats(ctx context.Context, actorID uuid.UUID, teamID *uuid.UUID) (entities.MeetingStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	actor, err := u.actor(ctx, actorID)
	if err != nil {
		return entities.MeetingStats{}, err
	}
	scope, err := permissions.ResolveTeamScope(*actor, teamID)
	if err != nil {
		return entities.MeetingStats{}, err
	}
	if scope.Empty {
		return entities.MeetingStats{}, nil
	}

	now := u.clock.Now()
	last30, err := u.repo.CountMeetingsByPeriod(ctx, now.AddDate(0, 0, -30), scope.TeamID, nil)
	if err != nil {
		return entities.MeetingStats{}, err
	}
	upcoming, err := u.repo.GetUpcomingMeetings(ctx, now, scope.TeamID, nil, 0)
	if err != nil {
		return entities.MeetingStats{}, err
	}
	return entities.MeetingStats{
		Last30Days:    last30,
		UpcomingCount: int64(len(upcoming)),
	}, nil
}
