package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// Handler serves export downloads and the stats endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates an export handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// ExportExcel handles GET /export_excel: the spreadsheet export of all
// registrations.
func (h *Handler) ExportExcel(c *gin.Context) {
	h.export(c, "excel")
}

// ExportTeams handles GET /admin/teams/export?format=csv|excel. Unknown
// formats fall back to the spreadsheet.
func (h *Handler) ExportTeams(c *gin.Context) {
	h.export(c, strings.ToLower(c.DefaultQuery("format", "excel")))
}

func (h *Handler) export(c *gin.Context, format string) {
	teams, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list teams for export", zap.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	if format == "csv" {
		data, err := WriteCSV(teams)
		if err != nil {
			h.logger.Error("write csv", zap.Error(err))
			c.String(http.StatusInternalServerError, "export failed")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="teams.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
		return
	}

	data, err := writeWorkbook(teams)
	if err != nil {
		h.logger.Error("write workbook", zap.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="team_details.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// writeWorkbook renders registrations into a single-sheet xlsx workbook. An
// empty input produces an empty sheet.
func writeWorkbook(teams []models.Registration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	if len(teams) > 0 {
		header := make([]interface{}, len(recordKeys))
		for i, k := range recordKeys {
			header[i] = k
		}
		if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
			return nil, err
		}
		for i := range teams {
			rec := Record(&teams[i])
			row := make([]interface{}, len(recordKeys))
			for j, k := range recordKeys {
				row[j] = rec[k]
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats handles GET /stats and GET /admin/stats: total registrations and the
// count created on the current UTC calendar day, recomputed on every call via
// two independent queries.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Error("count teams", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}

	from, to := utcDayBounds(time.Now())
	today, err := h.store.CountCreatedBetween(ctx, from, to)
	if err != nil {
		h.logger.Error("count teams today", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "today": today})
}

// utcDayBounds returns [00:00, 24:00) of t's UTC calendar day.
func utcDayBounds(t time.Time) (from, to time.Time) {
	u := t.UTC()
	from = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}

// DownloadInfo handles POST /download_info: a plain-text summary of the
// submitted form, offered as a download.
func (h *Handler) DownloadInfo(c *gin.Context) {
	var b strings.Builder
	fmt.Fprintf(&b, "Team Name: %s\n", c.PostForm("team_name"))
	fmt.Fprintf(&b, "Team Lead: %s\n", c.PostForm("team_lead_name"))
	fmt.Fprintf(&b, "Team Lead Email: %s\n", c.PostForm("team_lead_email"))
	fmt.Fprintf(&b, "Team Lead Phone: %s\n", c.PostForm("team_lead_phone"))
	fmt.Fprintf(&b, "Team Lead Registration Number: %s\n", c.PostForm("team_lead_reg_no"))
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "Member %d: %s (%s) | Reg No: %s\n",
			i,
			c.PostForm(fmt.Sprintf("member_%d_name", i)),
			c.PostForm(fmt.Sprintf("member_%d_email", i)),
			c.PostForm(fmt.Sprintf("member_%d_reg_no", i)),
		)
	}
	c.Header("Content-Disposition", `attachment; filename="team_registration.txt"`)
	c.Data(http.StatusOK, "text/plain", []byte(b.String()))
}
