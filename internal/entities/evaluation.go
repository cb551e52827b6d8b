// Package entities contains core business entities.
package entities

import "github.com/google/uuid"

// Score enumerates evaluation grades.
type Score string

const (
	ScoreUnacceptable Score = "Unacceptable"
	ScoreBad          Score = "Bad"
	ScoreSatisfactory Score = "Satisfactory"
	ScoreGood         Score = "Good"
	ScoreGreat        Score = "Great"
)

// Valid reports whether the score belongs to the closed set.
func (s Score) Valid() bool {
	switch s {
	case ScoreUnacceptable, ScoreBad, ScoreSatisfactory, ScoreGood, ScoreGreat:
		return true
	}
	return false
}

// Points maps a grade to its numeric weight for averages.
func (s Score) Points() int {
	switch s {
	case ScoreUnacceptable:
		return 1
	case ScoreBad:
		return 2
	case ScoreSatisfactory:
		return 3
	case ScoreGood:
		return 4
	case ScoreGreat:
		return 5
	}
	return 0
}

// Evaluation grades a completed task. Exactly one evaluation exists per
// task; EvaluatedUserID always equals the task assignee.
type Evaluation struct {
	ID              uuid.UUID
	TaskID          uuid.UUID
	EvaluatorID     uuid.UUID
	EvaluatedUserID uuid.UUID
	Score           Score
	Comment         string
}

// EvaluationStats aggregates grades for a user or team.
type EvaluationStats struct {
	Total        int64           `json:"total"`
	Last30Days   int64           `json:"last_30_days"`
	AverageScore float64         `json:"average_score"`
	Distribution map[Score]int64 `json:"distribution"`
}
