package registrations

import (
	"fmt"
	"strings"
	"time"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// MemberInput is the raw input for one member slot. The transport layer
// flattens the positional member_{i}_* form fields into an ordered slice
// before evaluation, so the evaluator never touches string-keyed lookups.
type MemberInput struct {
	Name  string
	Email string
	RegNo string
}

// Submission is one team's raw form submission.
type Submission struct {
	TeamName  string
	LeadName  string
	LeadEmail string
	LeadPhone string
	LeadRegNo string
	Members   []MemberInput // positions 1..max_members in order; short slices read as empty slots
}

// ValidationError is a rejection with a user-facing message. The workflow
// handler re-renders the form with it and the original input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Evaluate applies an event's rules to a submission and either shapes the
// document to persist or returns a *ValidationError.
//
// Positions 1..MinMembers must have non-empty name and email; evaluation
// halts at the first violation. A position is kept in the output when any of
// its fields is non-empty or it is within the required range. Lead name and
// email are always required. The team name is required, and stored, only when
// the event asks for one; otherwise it is absent from the document no matter
// what was submitted.
func Evaluate(event *models.Event, sub Submission, now time.Time) (*models.Registration, error) {
	rules := event.Rules()

	members := make([]models.Member, 0, rules.MaxMembers)
	for i := 1; i <= rules.MaxMembers; i++ {
		var in MemberInput
		if i <= len(sub.Members) {
			in = sub.Members[i-1]
		}
		name := strings.TrimSpace(in.Name)
		email := strings.TrimSpace(in.Email)
		regNo := strings.TrimSpace(in.RegNo)

		if i <= rules.MinMembers && (name == "" || email == "") {
			return nil, &ValidationError{Message: fmt.Sprintf("Member %d name and email are required.", i)}
		}
		if name != "" || email != "" || regNo != "" || i <= rules.MinMembers {
			members = append(members, models.Member{Name: name, Email: email, RegNo: regNo})
		}
	}

	leadName := strings.TrimSpace(sub.LeadName)
	leadEmail := strings.TrimSpace(sub.LeadEmail)
	if leadName == "" || leadEmail == "" {
		return nil, &ValidationError{Message: "Team lead name and email are required."}
	}

	var teamName *string
	if rules.RequireTeamName {
		name := strings.TrimSpace(sub.TeamName)
		if name == "" {
			return nil, &ValidationError{Message: "Team name is required for this event."}
		}
		teamName = &name
	}

	return &models.Registration{
		EventID:       event.ID,
		EventName:     event.EventName,
		TeamName:      teamName,
		TeamLeadName:  leadName,
		TeamLeadEmail: leadEmail,
		TeamLeadPhone: strings.TrimSpace(sub.LeadPhone),
		TeamLeadRegNo: strings.TrimSpace(sub.LeadRegNo),
		Members:       members,
		CreatedAt:     now,
	}, nil
}
