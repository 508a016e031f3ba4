package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a configured registration drive. MinMembers and MaxMembers bound
// the member slots on the registration form; the handlers clamp values so that
// MaxMembers >= MinMembers >= 1 always holds.
type Event struct {
	ID              uuid.UUID `json:"id"`
	EventName       string    `json:"event_name"`
	RequireTeamName bool      `json:"require_team_name"`
	MinMembers      int       `json:"min_members"`
	MaxMembers      int       `json:"max_members"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Rules returns just the fields the registration rule evaluator needs.
func (e *Event) Rules() EventRules {
	return EventRules{
		RequireTeamName: e.RequireTeamName,
		MinMembers:      e.MinMembers,
		MaxMembers:      e.MaxMembers,
	}
}

// EventRules is the subset of an event that governs a registration submission.
type EventRules struct {
	RequireTeamName bool
	MinMembers      int
	MaxMembers      int
}
