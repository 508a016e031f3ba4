package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Member is one member slot of a submitted team. RegNo is optional even for
// required slots.
type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	RegNo string `json:"reg_no"`
}

// Registration is one submitted team tied to an event. EventName is captured
// at submission time and never re-synced when the event is edited. TeamName is
// nil unless the event required one. Members is stored as a JSONB column.
type Registration struct {
	ID            uuid.UUID `json:"id"`
	EventID       uuid.UUID `json:"event_id"`
	EventName     string    `json:"event_name"`
	TeamName      *string   `json:"team_name"`
	TeamLeadName  string    `json:"team_lead_name"`
	TeamLeadEmail string    `json:"team_lead_email"`
	TeamLeadPhone string    `json:"team_lead_phone"`
	TeamLeadRegNo string    `json:"team_lead_reg_no"`
	Members       []Member  `json:"members"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LegacyTeam is a read-only historical document from the pre-events system,
// kept verbatim as raw JSON. There is no write path.
type LegacyTeam struct {
	ID        uuid.UUID       `json:"id"`
	Doc       json.RawMessage `json:"doc"`
	CreatedAt time.Time       `json:"created_at"`
}
