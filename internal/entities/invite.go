// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Invite is a short-lived team-scoped join token. Codes stay redeemable
// until they expire or are explicitly deactivated.
type Invite struct {
	Code      string    `json:"code"`
	TeamID    uuid.UUID `json:"team_id"`
	IssuerID  uuid.UUID `json:"issuer_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}

// Redeemable reports whether the code may still be used at the given time.
func (i Invite) Redeemable(now time.Time) bool {
	return i.Active && now.Before(i.ExpiresAt)
}
