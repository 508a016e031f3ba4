// Package export serializes registrations into downloadable CSV or
// spreadsheet files and serves the registration count stats.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// SheetName is the single worksheet of the spreadsheet export.
const SheetName = "Teams"

// Store is the read-only registration access the exporters need.
type Store interface {
	List(ctx context.Context) ([]models.Registration, error)
	Count(ctx context.Context) (int, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// recordKeys is the column order of an exported registration: the
// serialization order of the record. The header row of any export is the key
// set of the first record.
var recordKeys = []string{
	"id",
	"event_id",
	"event_name",
	"team_name",
	"team_lead_name",
	"team_lead_email",
	"team_lead_phone",
	"team_lead_reg_no",
	"members",
	"created_at",
	"updated_at",
}

// Record flattens a registration into export key/value pairs, all strings.
// Members are embedded as their JSON text, timestamps as RFC 3339.
func Record(reg *models.Registration) map[string]string {
	teamName := ""
	if reg.TeamName != nil {
		teamName = *reg.TeamName
	}
	members := "[]"
	if b, err := json.Marshal(reg.Members); err == nil {
		members = string(b)
	}
	return map[string]string{
		"id":               reg.ID.String(),
		"event_id":         reg.EventID.String(),
		"event_name":       reg.EventName,
		"team_name":        teamName,
		"team_lead_name":   reg.TeamLeadName,
		"team_lead_email":  reg.TeamLeadEmail,
		"team_lead_phone":  reg.TeamLeadPhone,
		"team_lead_reg_no": reg.TeamLeadRegNo,
		"members":          members,
		"created_at":       reg.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":       reg.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteCSV renders registrations as CSV: header row from the keys of the
// first record, one row per registration. An empty input produces an empty
// file, not an error.
func WriteCSV(teams []models.Registration) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(teams) > 0 {
		if err := w.Write(recordKeys); err != nil {
			return nil, err
		}
		for i := range teams {
			rec := Record(&teams[i])
			row := make([]string, len(recordKeys))
			for j, k := range recordKeys {
				row[j] = rec[k]
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
