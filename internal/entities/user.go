// Package entities contains core business entities.
package entities

import "github.com/google/uuid"

// Role enumerates user privilege levels. The set is closed: any other
// value is rejected at the transport boundary.
type Role string

const (
	// RoleEmployee is the base role restricted to the own team.
	RoleEmployee Role = "Employee"
	// RoleManager may administrate resources within its team and recruit.
	RoleManager Role = "Manager"
	// RoleAdmin is the system administrator.
	RoleAdmin Role = "Administrator"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is a domain representation of a principal. TeamID is nil for
// users not assigned to any team.
type User struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Surname  string
	Role     Role
	TeamID   *uuid.UUID
	IsActive bool
}

// InTeam reports whether the user belongs to the given team.
func (u User) InTeam(teamID uuid.UUID) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}

// SameTeam reports whether both users belong to the same non-nil team.
func (u User) SameTeam(other User) bool {
	return u.TeamID != nil && other.TeamID != nil && *u.TeamID == *other.TeamID
}
