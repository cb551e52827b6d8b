package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusTransitions(t *testing.T) {
	tests := []struct {
		from TaskStatus
		to   TaskStatus
		want bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusDone, true},
		{StatusOpen, StatusOpen, false},
		{StatusInProgress, StatusOpen, true},
		{StatusInProgress, StatusDone, true},
		{StatusInProgress, StatusInProgress, false},
		{StatusDone, StatusOpen, true},
		{StatusDone, StatusInProgress, true},
		{StatusDone, StatusDone, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTaskStatusValid(t *testing.T) {
	require.True(t, StatusOpen.Valid())
	require.True(t, StatusInProgress.Valid())
	require.True(t, StatusDone.Valid())
	require.False(t, TaskStatus("Archived").Valid())
}

func TestScorePoints(t *testing.T) {
	require.Equal(t, 1, ScoreUnacceptable.Points())
	require.Equal(t, 3, ScoreSatisfactory.Points())
	require.Equal(t, 5, ScoreGreat.Points())
	require.Equal(t, 0, Score("Perfect").Points())
	require.False(t, Score("Perfect").Valid())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleEmployee.Valid())
	require.True(t, RoleManager.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("Owner").Valid())
}
