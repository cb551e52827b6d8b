package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

const (
	meetingColumns = "id, title, description, starts_at, team_id, creator_id"

	insertMeetingQuery = `
INSERT INTO meetings(id, title, description, starts_at, team_id, creator_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + meetingColumns

	selectMeetingQuery = `SELECT ` + meetingColumns + ` FROM meetings WHERE id=$1`

	updateMeetingQuery = `
UPDATE meetings
SET title=$2, description=$3, starts_at=$4
WHERE id=$1
RETURNING ` + meetingColumns

	deleteMeetingQuery = `DELETE FROM meetings WHERE id=$1`

	insertParticipantQuery = `
INSERT INTO meeting_participants(meeting_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

	deleteParticipantQuery = `DELETE FROM meeting_participants WHERE meeting_id=$1 AND user_id=$2`

	isParticipantQuery = `SELECT EXISTS(SELECT 1 FROM meeting_participants WHERE meeting_id=$1 AND user_id=$2)`

	selectParticipantsQuery = `SELECT user_id FROM meeting_participants WHERE meeting_id=$1 ORDER BY user_id`

	listMeetingsQuery = `
SELECT ` + meetingColumns + ` FROM meetings
WHERE ($1::uuid IS NULL OR team_id=$1)
  AND ($2::uuid IS NULL OR creator_id=$2)
  AND ($3::uuid IS NULL OR EXISTS(SELECT 1 FROM meeting_participants mp WHERE mp.meeting_id=meetings.id AND mp.user_id=$3))
  AND ($4::timestamptz IS NULL OR starts_at >= $4)
  AND ($5::timestamptz IS NULL OR starts_at < $5)
ORDER BY starts_at
LIMIT $6 OFFSET $7`

	meetingsByDateQuery = `
SELECT ` + meetingColumns + ` FROM meetings
WHERE starts_at >= $1 AND starts_at < $1 + INTERVAL '1 day'
  AND ($2::uuid IS NULL OR team_id=$2)
  AND ($3::uuid IS NULL OR EXISTS(SELECT 1 FROM meeting_participants mp WHERE mp.meeting_id=meetings.id AND mp.user_id=$3))
ORDER BY starts_at`

	upcomingMeetingsQuery = `
SELECT ` + meetingColumns + ` FROM meetings
WHERE starts_at > $1
  AND ($2::uuid IS NULL OR team_id=$2)
  AND ($3::uuid IS NULL OR EXISTS(SELECT 1 FROM meeting_participants mp WHERE mp.meeting_id=meetings.id AND mp.user_id=$3))
ORDER BY starts_at
LIMIT CASE WHEN $4 > 0 THEN $4 ELSE NULL END`

	timeConflictsQuery = `
SELECT ` + meetingColumns + ` FROM meetings m
WHERE EXISTS(SELECT 1 FROM meeting_participants mp WHERE mp.meeting_id=m.id AND mp.user_id=$1)
  AND m.starts_at < $3
  AND m.starts_at + INTERVAL '1 hour' > $2
  AND ($4::uuid IS NULL OR m.id <> $4)
ORDER BY m.starts_at`

	countMeetingsByPeriodQuery = `
SELECT COUNT(*) FROM meetings
WHERE starts_at >= $1
  AND ($2::uuid IS NULL OR team_id=$2)
  AND ($3::uuid IS NULL OR EXISTS(SELECT 1 FROM meeting_participants mp WHERE mp.meeting_id=meetings.id AND mp.user_id=$3))`
)

func scanMeeting(row pgx.Row) (*entities.Meeting, error) {
	var m entities.Meeting
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.StartsAt, &m.TeamID, &m.CreatorID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMeeting inserts a meeting, without participants.
func (p *Postgres) CreateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error) {
	created, err := scanMeeting(p.q(ctx).QueryRow(ctx, insertMeetingQuery,
		meeting.ID, meeting.Title, meeting.Description, meeting.StartsAt, meeting.TeamID, meeting.CreatorID))
	if err != nil {
		p.log.Errorw("failed to create meeting", "error", err, "team_id", meeting.TeamID)
		return nil, fmt.Errorf("insert meeting: %w", err)
	}
	return created, nil
}

// GetMeeting fetches a meeting by id, without participants.
func (p *Postgres) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := scanMeeting(p.q(ctx).QueryRow(ctx, selectMeetingQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// GetMeetingWithParticipants fetches a meeting and its participant ids.
func (p *Postgres) GetMeetingWithParticipants(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := p.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := p.q(ctx).Query(ctx, selectParticipantsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var uid uuid.UUID
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan participants: %w", err)
		}
		ids = append(ids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	m.ParticipantIDs = ids
	return m, nil
}

// UpdateMeeting persists the mutable meeting fields.
func (p *Postgres) UpdateMeeting(ctx context.Context, meeting entities.Meeting) (*entities.Meeting, error) {
	updated, err := scanMeeting(p.q(ctx).QueryRow(ctx, updateMeetingQuery,
		meeting.ID, meeting.Title, meeting.Description, meeting.StartsAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrMeetingNotFound
		}
		p.log.Errorw("failed to update meeting", "error", err, "meeting_id", meeting.ID)
		return nil, fmt.Errorf("update meeting: %w", err)
	}
	updated.ParticipantIDs = meeting.ParticipantIDs
	return updated, nil
}

// DeleteMeeting removes a meeting and its participant links.
func (p *Postgres) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	tag, err := p.q(ctx).Exec(ctx, deleteMeetingQuery, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// AddParticipant links a user to the meeting.
func (p *Postgres) AddParticipant(ctx context.Context, meetingID, userID uuid.UUID) error {
	if _, err := p.q(ctx).Exec(ctx, insertParticipantQuery, meetingID, userID); err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

// RemoveParticipant unlinks a user from the meeting.
func (p *Postgres) RemoveParticipant(ctx context.Context, meetingID, userID uuid.UUID) error {
	if _, err := p.q(ctx).Exec(ctx, deleteParticipantQuery, meetingID, userID); err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

// IsParticipant reports whether the user participates in the meeting.
func (p *Postgres) IsParticipant(ctx context.Context, meetingID, userID uuid.UUID) (bool, error) {
	var ok bool
	if err := p.q(ctx).QueryRow(ctx, isParticipantQuery, meetingID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("is participant: %w", err)
	}
	return ok, nil
}

func (p *Postgres) scanMeetings(rows pgx.Rows, op string) ([]entities.Meeting, error) {
	defer rows.Close()

	meetings := make([]entities.Meeting, 0)
	for rows.Next() {
		var m entities.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.StartsAt, &m.TeamID, &m.CreatorID); err != nil {
			p.log.Errorw("failed to scan meetings", "error", err, "op", op)
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return meetings, nil
}

// ListMeetings lists meetings matching the filter.
func (p *Postgres) ListMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error) {
	rows, err := p.q(ctx).Query(ctx, listMeetingsQuery,
		filter.TeamID, filter.CreatorID, filter.ParticipantID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return p.scanMeetings(rows, "meetings")
}

// GetMeetingsByDate lists meetings starting within the given calendar day.
func (p *Postgres) GetMeetingsByDate(ctx context.Context, day time.Time, teamID, participantID *uuid.UUID) ([]entities.Meeting, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := p.q(ctx).Query(ctx, meetingsByDateQuery, dayStart, teamID, participantID)
	if err != nil {
		return nil, fmt.Errorf("get meetings by date: %w", err)
	}
	return p.scanMeetings(rows, "meetings by date")
}

// GetUpcomingMeetings lists meetings starting after now. A non-positive
// limit means no limit.
func (p *Postgres) GetUpcomingMeetings(ctx context.Context, now time.Time, teamID, participantID *uuid.UUID, limit int) ([]entities.Meeting, error) {
	rows, err := p.q(ctx).Query(ctx, upcomingMeetingsQuery, now, teamID, participantID, limit)
	if err != nil {
		return nil, fmt.Errorf("get upcoming meetings: %w", err)
	}
	return p.scanMeetings(rows, "upcoming meetings")
}

// CheckTimeConflicts returns the user's meetings overlapping [start, end).
func (p *Postgres) CheckTimeConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]entities.Meeting, error) {
	rows, err := p.q(ctx).Query(ctx, timeConflictsQuery, userID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("check time conflicts: %w", err)
	}
	return p.scanMeetings(rows, "time conflicts")
}

// CountMeetingsByPeriod counts meetings starting at or after since.
func (p *Postgres) CountMeetingsByPeriod(ctx context.Context, since time.Time, teamID, participantID *uuid.UUID) (int64, error) {
	var n int64
	if err := p.q(ctx).QueryRow(ctx, countMeetingsByPeriodQuery, since, teamID, participantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count meetings: %w", err)
	}
	return n, nil
}
