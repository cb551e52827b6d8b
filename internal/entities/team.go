// Package entities contains core business entities.
package entities

import "github.com/google/uuid"

// Team aggregates members under an owner. The owner is always a member;
// membership itself is derived from User.TeamID.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	Members     []User
}
