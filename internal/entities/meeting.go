// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingDuration is the assumed length of every meeting; the conflict
// window for a participant is [StartsAt, StartsAt+MeetingDuration).
const MeetingDuration = time.Hour

// Meeting is a domain model of a team meeting.
type Meeting struct {
	ID             uuid.UUID
	Title          string
	Description    string
	StartsAt       time.Time
	TeamID         uuid.UUID
	CreatorID      uuid.UUID
	ParticipantIDs []uuid.UUID
}

// MeetingStats aggregates meeting counters for a user or team.
type MeetingStats struct {
	Last30Days    int64 `json:"total_meetings_last_30_days"`
	UpcomingCount int64 `json:"upcoming_meetings_count"`
}
