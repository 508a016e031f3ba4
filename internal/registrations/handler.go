package registrations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acm-vitap/registration-portal/internal/events"
	"github.com/acm-vitap/registration-portal/internal/models"
	"github.com/acm-vitap/registration-portal/pkg/flash"
)

// Store is the registration persistence interface the handler depends on.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	List(ctx context.Context) ([]models.Registration, error)
	Search(ctx context.Context, q string, skip, limit int) ([]models.Registration, int, error)
	Update(ctx context.Context, id uuid.UUID, upd TeamUpdate) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventStore resolves the event a registration belongs to.
type EventStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// Handler handles the public registration workflow and the admin team pages.
type Handler struct {
	store      Store
	eventStore EventStore
	logger     *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(store Store, eventStore EventStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, eventStore: eventStore, logger: logger}
}

// RegisterRoot handles GET|POST /team_register with no event: send the
// visitor to the chooser to pick one.
func (h *Handler) RegisterRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, "/choose_event")
}

// RegisterForm handles GET /team_register/:event_id. The event is looked up
// in any state: an inactive event still serves its form via direct link
// (current behavior, kept deliberately).
func (h *Handler) RegisterForm(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "team_register.html", gin.H{
		"Event": event,
		"Form":  url.Values{},
	})
}

// Register handles POST /team_register/:event_id: evaluate the submission
// against the event's rules, persist on success, and render the confirmation
// from the stored copy re-read by its server-assigned id.
func (h *Handler) Register(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}

	sub := submissionFromForm(c, event.MaxMembers)
	reg, err := Evaluate(event, sub, time.Now().UTC())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			h.renderForm(c, http.StatusBadRequest, event, verr.Message)
			return
		}
		h.renderForm(c, http.StatusInternalServerError, event, fmt.Sprintf("An error occurred: %v", err))
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Create(ctx, reg); err != nil {
		h.logger.Error("insert registration", zap.Error(err), zap.String("event_id", event.ID.String()))
		h.renderForm(c, http.StatusInternalServerError, event, fmt.Sprintf("An error occurred: %v", err))
		return
	}

	stored, err := h.store.GetByID(ctx, reg.ID)
	if err != nil {
		h.logger.Error("reload registration", zap.Error(err), zap.String("registration_id", reg.ID.String()))
		h.renderForm(c, http.StatusInternalServerError, event, fmt.Sprintf("An error occurred: %v", err))
		return
	}
	c.HTML(http.StatusOK, "download_info.html", gin.H{"Team": stored})
}

// ViewRegisteredTeams handles GET /view_registered_teams (legacy admin page).
func (h *Handler) ViewRegisteredTeams(c *gin.Context) {
	teams, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list teams", zap.Error(err))
	}
	c.HTML(http.StatusOK, "registered_details.html", gin.H{"Teams": teams})
}

// AdminTeams handles GET /admin/teams with search and pagination. Page and
// per-page are clamped, not rejected.
func (h *Handler) AdminTeams(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	// page and per_page stand or fall together: one unparsable value resets
	// both to the defaults before clamping.
	page, perPage := 1, 10
	p, pageErr := strconv.Atoi(c.DefaultQuery("page", "1"))
	pp, perPageErr := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if pageErr == nil && perPageErr == nil {
		page, perPage = p, pp
	}
	if page < 1 {
		page = 1
	}
	if perPage < 5 {
		perPage = 5
	}

	teams, total, err := h.store.Search(c.Request.Context(), q, (page-1)*perPage, perPage)
	if err != nil {
		h.logger.Error("search teams", zap.Error(err), zap.String("q", q))
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	c.HTML(http.StatusOK, "admin_teams.html", flash.Attach(c, gin.H{
		"Teams":    teams,
		"Q":        q,
		"Page":     page,
		"PerPage":  perPage,
		"Total":    total,
		"Pages":    pages,
		"PrevPage": page - 1,
		"NextPage": page + 1,
	}))
}

// AdminViewTeam handles GET /admin/team/:id (read-only render).
func (h *Handler) AdminViewTeam(c *gin.Context) {
	team, ok := h.teamFromParam(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "edit_team.html", flash.Attach(c, gin.H{"Team": team, "ViewOnly": true}))
}

// AdminEditTeamPage handles GET /admin/team/:id/edit.
func (h *Handler) AdminEditTeamPage(c *gin.Context) {
	team, ok := h.teamFromParam(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "edit_team.html", flash.Attach(c, gin.H{"Team": team, "ViewOnly": false}))
}

// AdminEditTeam handles POST /admin/team/:id/edit. Lead fields and team name
// are overwritten; the member list is rebuilt only when member fields were
// posted. Registration rules are not re-applied.
func (h *Handler) AdminEditTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flash.Set(c, "error", "Invalid team id.")
		c.Redirect(http.StatusFound, "/admin/teams")
		return
	}

	upd := TeamUpdate{
		LeadName:  strings.TrimSpace(c.PostForm("team_lead_name")),
		LeadEmail: strings.TrimSpace(c.PostForm("team_lead_email")),
		LeadPhone: strings.TrimSpace(c.PostForm("team_lead_phone")),
		LeadRegNo: strings.TrimSpace(c.PostForm("team_lead_reg_no")),
	}
	if name := strings.TrimSpace(c.PostForm("team_name")); name != "" {
		upd.TeamName = &name
	}
	if members := membersFromEditForm(c); len(members) > 0 {
		upd.Members = members
	}

	matched, err := h.store.Update(c.Request.Context(), id, upd)
	switch {
	case err != nil:
		h.logger.Error("update team", zap.Error(err), zap.String("team_id", id.String()))
		flash.Set(c, "error", "Error updating team: "+err.Error())
	case !matched:
		flash.Set(c, "error", "Team not found.")
	default:
		flash.Set(c, "success", "Team updated successfully.")
	}
	c.Redirect(http.StatusFound, "/admin/teams")
}

// AdminDeleteTeam handles POST /admin/team/:id/delete. Deleted and not-found
// both redirect; only the flash text differs.
func (h *Handler) AdminDeleteTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flash.Set(c, "error", "Invalid team id.")
		c.Redirect(http.StatusFound, "/admin/teams")
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	switch {
	case err != nil:
		h.logger.Error("delete team", zap.Error(err), zap.String("team_id", id.String()))
		flash.Set(c, "error", "Error deleting team: "+err.Error())
	case !deleted:
		flash.Set(c, "error", "Team not found or already deleted.")
	default:
		flash.Set(c, "success", "Team deleted successfully.")
	}
	c.Redirect(http.StatusFound, "/admin/teams")
}

// resolveEvent parses :event_id and loads the event, answering 404
// "Invalid event" for anything that does not resolve.
func (h *Handler) resolveEvent(c *gin.Context) (*models.Event, bool) {
	id, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		c.String(http.StatusNotFound, "Invalid event")
		return nil, false
	}
	event, err := h.eventStore.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, events.ErrNotFound) {
			h.logger.Error("load event", zap.Error(err), zap.String("event_id", id.String()))
		}
		c.String(http.StatusNotFound, "Invalid event")
		return nil, false
	}
	return event, true
}

// renderForm re-renders the registration form with an error and the original
// submitted values preserved.
func (h *Handler) renderForm(c *gin.Context, status int, event *models.Event, errMsg string) {
	c.HTML(status, "team_register.html", gin.H{
		"Event": event,
		"Error": errMsg,
		"Form":  c.Request.PostForm,
	})
}

// submissionFromForm flattens the positional form fields into a structured
// submission for the evaluator.
func submissionFromForm(c *gin.Context, maxMembers int) Submission {
	sub := Submission{
		TeamName:  c.PostForm("team_name"),
		LeadName:  c.PostForm("team_lead_name"),
		LeadEmail: c.PostForm("team_lead_email"),
		LeadPhone: c.PostForm("team_lead_phone"),
		LeadRegNo: c.PostForm("team_lead_reg_no"),
	}
	for i := 1; i <= maxMembers; i++ {
		sub.Members = append(sub.Members, MemberInput{
			Name:  c.PostForm(fmt.Sprintf("member_%d_name", i)),
			Email: c.PostForm(fmt.Sprintf("member_%d_email", i)),
			RegNo: c.PostForm(fmt.Sprintf("member_%d_reg_no", i)),
		})
	}
	return sub
}

// membersFromEditForm rebuilds the member list from consecutive positions
// while member_{i}_name keys are present, keeping rows with any non-empty
// field.
func membersFromEditForm(c *gin.Context) []models.Member {
	var members []models.Member
	for i := 1; ; i++ {
		key := fmt.Sprintf("member_%d_name", i)
		if _, present := c.GetPostForm(key); !present {
			break
		}
		name := strings.TrimSpace(c.PostForm(key))
		email := strings.TrimSpace(c.PostForm(fmt.Sprintf("member_%d_email", i)))
		regNo := strings.TrimSpace(c.PostForm(fmt.Sprintf("member_%d_reg_no", i)))
		if name != "" || email != "" || regNo != "" {
			members = append(members, models.Member{Name: name, Email: email, RegNo: regNo})
		}
	}
	return members
}

func (h *Handler) teamFromParam(c *gin.Context) (*models.Registration, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flash.Set(c, "error", "Invalid team id.")
		c.Redirect(http.StatusFound, "/admin/teams")
		return nil, false
	}
	team, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Error("load team", zap.Error(err), zap.String("team_id", id.String()))
		}
		flash.Set(c, "error", "Team not found.")
		c.Redirect(http.StatusFound, "/admin/teams")
		return nil, false
	}
	return team, true
}
