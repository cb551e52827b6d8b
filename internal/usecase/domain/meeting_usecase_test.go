package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

func TestCreateMeetingParticipantConflict(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	busy := employeeUser(&teamID)
	start := testNow.Add(2 * time.Hour)
	end := start.Add(entities.MeetingDuration)

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTeam", mock.Anything, teamID).Return(&entities.Team{ID: teamID, OwnerID: uuid.New()}, nil)
	repo.On("GetUser", mock.Anything, busy.ID).Return(busy, nil)
	repo.On("CheckTimeConflicts", mock.Anything, creator.ID, start, end, (*uuid.UUID)(nil)).
		Return([]entities.Meeting{}, nil)
	repo.On("CheckTimeConflicts", mock.Anything, busy.ID, start, end, (*uuid.UUID)(nil)).
		Return([]entities.Meeting{{ID: uuid.New()}}, nil)

	_, err := uc.CreateMeeting(context.Background(), creator.ID, entities.Meeting{
		Title:          "standup",
		StartsAt:       start,
		TeamID:         teamID,
		ParticipantIDs: []uuid.UUID{busy.ID},
	})
	require.ErrorIs(t, err, entities.ErrInvalidOperation)
}

func TestCreateMeetingCreatorJoinsOnce(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	guest := employeeUser(&teamID)
	start := testNow.Add(2 * time.Hour)
	end := start.Add(entities.MeetingDuration)

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetTeam", mock.Anything, teamID).Return(&entities.Team{ID: teamID, OwnerID: uuid.New()}, nil)
	repo.On("GetUser", mock.Anything, guest.ID).Return(guest, nil)
	repo.On("CheckTimeConflicts", mock.Anything, mock.Anything, start, end, (*uuid.UUID)(nil)).
		Return([]entities.Meeting{}, nil)
	repo.On("CreateMeeting", mock.Anything, mock.MatchedBy(func(m entities.Meeting) bool {
		return m.CreatorID == creator.ID && len(m.ParticipantIDs) == 2
	})).Return(&entities.Meeting{ID: uuid.New(), TeamID: teamID, CreatorID: creator.ID, StartsAt: start}, nil)
	repo.On("AddParticipant", mock.Anything, mock.Anything, creator.ID).Return(nil).Once()
	repo.On("AddParticipant", mock.Anything, mock.Anything, guest.ID).Return(nil).Once()

	// The creator appears in the request list too and must not be duplicated.
	created, err := uc.CreateMeeting(context.Background(), creator.ID, entities.Meeting{
		Title:          "planning",
		StartsAt:       start,
		TeamID:         teamID,
		ParticipantIDs: []uuid.UUID{creator.ID, guest.ID, guest.ID},
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{creator.ID, guest.ID}, created.ParticipantIDs)
}

func TestCreateMeetingStartInPast(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.CreateMeeting(context.Background(), uuid.New(), entities.Meeting{
		Title:    "retro",
		StartsAt: testNow.Add(-time.Minute),
		TeamID:   uuid.New(),
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUpdateMeetingRescheduleExcludesItself(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	current := &entities.Meeting{
		ID:             uuid.New(),
		Title:          "1:1",
		StartsAt:       testNow.Add(2 * time.Hour),
		TeamID:         teamID,
		CreatorID:      creator.ID,
		ParticipantIDs: []uuid.UUID{creator.ID},
	}
	newStart := testNow.Add(5 * time.Hour)

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetMeetingWithParticipants", mock.Anything, current.ID).Return(current, nil)
	repo.On("CheckTimeConflicts", mock.Anything, creator.ID, newStart, newStart.Add(entities.MeetingDuration),
		mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == current.ID })).
		Return([]entities.Meeting{}, nil)
	repo.On("UpdateMeeting", mock.Anything, mock.MatchedBy(func(m entities.Meeting) bool {
		return m.StartsAt.Equal(newStart)
	})).Return(&entities.Meeting{ID: current.ID, StartsAt: newStart}, nil)

	updated, err := uc.UpdateMeeting(context.Background(), creator.ID, entities.Meeting{ID: current.ID, StartsAt: newStart})
	require.NoError(t, err)
	require.True(t, updated.StartsAt.Equal(newStart))
}

func TestUpdateMeetingByManagerDenied(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	manager := managerUser(&teamID)
	meeting := &entities.Meeting{ID: uuid.New(), TeamID: teamID, CreatorID: uuid.New()}

	repo.On("GetUser", mock.Anything, manager.ID).Return(manager, nil)
	repo.On("GetMeetingWithParticipants", mock.Anything, meeting.ID).Return(meeting, nil)

	_, err := uc.UpdateMeeting(context.Background(), manager.ID, entities.Meeting{ID: meeting.ID, Title: "renamed"})
	require.ErrorIs(t, err, entities.ErrPermissionDenied)
}

func TestRemoveMeetingParticipantCreatorBlocked(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	admin := adminUser()
	creatorID := uuid.New()
	meeting := &entities.Meeting{ID: uuid.New(), TeamID: teamID, CreatorID: creatorID}

	repo.On("GetUser", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("GetMeeting", mock.Anything, meeting.ID).Return(meeting, nil)

	err := uc.RemoveMeetingParticipant(context.Background(), admin.ID, meeting.ID, creatorID)
	require.ErrorIs(t, err, entities.ErrInvalidOperation)
}

func TestRemoveMeetingParticipantSelf(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	participant := employeeUser(&teamID)
	meeting := &entities.Meeting{ID: uuid.New(), TeamID: teamID, CreatorID: uuid.New()}

	repo.On("GetUser", mock.Anything, participant.ID).Return(participant, nil)
	repo.On("GetMeeting", mock.Anything, meeting.ID).Return(meeting, nil)
	repo.On("IsParticipant", mock.Anything, meeting.ID, participant.ID).Return(true, nil)
	repo.On("RemoveParticipant", mock.Anything, meeting.ID, participant.ID).Return(nil)

	require.NoError(t, uc.RemoveMeetingParticipant(context.Background(), participant.ID, meeting.ID, participant.ID))
}

func TestAddMeetingParticipantConflict(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	creator := employeeUser(&teamID)
	invitee := employeeUser(&teamID)
	meeting := &entities.Meeting{ID: uuid.New(), TeamID: teamID, CreatorID: creator.ID, StartsAt: testNow.Add(3 * time.Hour)}

	repo.On("GetUser", mock.Anything, creator.ID).Return(creator, nil)
	repo.On("GetMeeting", mock.Anything, meeting.ID).Return(meeting, nil)
	repo.On("GetUser", mock.Anything, invitee.ID).Return(invitee, nil)
	repo.On("IsParticipant", mock.Anything, meeting.ID, invitee.ID).Return(false, nil)
	repo.On("CheckTimeConflicts", mock.Anything, invitee.ID, meeting.StartsAt, meeting.StartsAt.Add(entities.MeetingDuration),
		mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == meeting.ID })).
		Return([]entities.Meeting{{ID: uuid.New()}}, nil)

	err := uc.AddMeetingParticipant(context.Background(), creator.ID, meeting.ID, invitee.ID)
	require.ErrorIs(t, err, entities.ErrInvalidOperation)
}

func TestMeetingStats(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	teamID := uuid.New()
	manager := managerUser(&teamID)

	repo.On("GetUser", mock.Anything, manager.ID).Return(manager, nil)
	repo.On("CountMeetingsByPeriod", mock.Anything, testNow.AddDate(0, 0, -30), &teamID, (*uuid.UUID)(nil)).
		Return(int64(7), nil)
	repo.On("GetUpcomingMeetings", mock.Anything, testNow, &teamID, (*uuid.UUID)(nil), 0).
		Return([]entities.Meeting{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	stats, err := uc.MeetingStats(context.Background(), manager.ID, &teamID)
	require.NoError(t, err)
	require.Equal(t, int64(7), stats.Last30Days)
	require.Equal(t, int64(2), stats.UpcomingCount)
}
