package permissions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// TeamScope is the effective team filter for a list query. It is
// computed before the query runs; list endpoints never filter post-hoc.
type TeamScope struct {
	// TeamID restricts the query to one team when non-nil.
	TeamID *uuid.UUID
	// Empty forces an empty result set (employee without a team).
	Empty bool
}

// ResolveTeamScope narrows a requested team filter by actor role.
//
// Employees are pinned to their own team: an explicit request for a
// different team is a permission error, never a silent override; with
// no team at all the scope yields nothing. Managers and admins pass
// the requested filter through unchanged.
func ResolveTeamScope(actor entities.User, requested *uuid.UUID) (TeamScope, error) {
	if actor.Role != entities.RoleEmployee {
		return TeamScope{TeamID: requested}, nil
	}

	if requested != nil {
		if actor.TeamID == nil || *requested != *actor.TeamID {
			return TeamScope{}, fmt.Errorf("%w: no access to another team's data", entities.ErrPermissionDenied)
		}
	}
	if actor.TeamID == nil {
		return TeamScope{Empty: true}, nil
	}
	teamID := *actor.TeamID
	return TeamScope{TeamID: &teamID}, nil
}
