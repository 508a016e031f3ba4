package events

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acm-vitap/registration-portal/internal/models"
	"github.com/acm-vitap/registration-portal/pkg/flash"
)

// Store is the event persistence interface the handler depends on.
type Store interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	ListActive(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler handles the public event chooser and the admin event CRUD pages.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// ChooseEvent handles GET /choose_event. Lists active events; a store failure
// degrades to an empty list rather than an error page.
func (h *Handler) ChooseEvent(c *gin.Context) {
	list, err := h.store.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("list active events", zap.Error(err))
		list = nil
	}
	c.HTML(http.StatusOK, "choose_event.html", gin.H{"Events": list})
}

// AdminList handles GET /admin/events.
func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
	}
	c.HTML(http.StatusOK, "admin_events.html", flash.Attach(c, gin.H{"Events": list}))
}

// AdminCreate handles POST /admin/events. Member bounds are clamped, never
// rejected: min >= 1, max >= min.
func (h *Handler) AdminCreate(c *gin.Context) {
	minMembers, maxMembers := memberBounds(c)
	e := &models.Event{
		EventName:       strings.TrimSpace(c.PostForm("event_name")),
		RequireTeamName: c.PostForm("require_team_name") == "on",
		MinMembers:      minMembers,
		MaxMembers:      maxMembers,
		Active:          true,
	}

	switch err := h.store.Create(c.Request.Context(), e); {
	case errors.Is(err, ErrDuplicateName):
		flash.Set(c, "error", "Event name already exists.")
	case err != nil:
		h.logger.Error("create event", zap.Error(err))
		flash.Set(c, "error", "Error: "+err.Error())
	default:
		flash.Set(c, "success", "Event created.")
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// AdminEditPage handles GET /admin/event/:id/edit.
func (h *Handler) AdminEditPage(c *gin.Context) {
	e, ok := h.eventFromParam(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "admin_edit_event.html", flash.Attach(c, gin.H{"Event": e}))
}

// AdminEdit handles POST /admin/event/:id/edit. All fields are overwritten
// with the same clamping as create; existing registrations keep the event
// name captured at their submission time.
func (h *Handler) AdminEdit(c *gin.Context) {
	e, ok := h.eventFromParam(c)
	if !ok {
		return
	}

	minMembers, maxMembers := memberBounds(c)
	e.EventName = strings.TrimSpace(c.PostForm("event_name"))
	e.RequireTeamName = c.PostForm("require_team_name") == "on"
	e.MinMembers = minMembers
	e.MaxMembers = maxMembers
	e.Active = c.PostForm("active") == "on"

	switch err := h.store.Update(c.Request.Context(), e); {
	case errors.Is(err, ErrDuplicateName):
		flash.Set(c, "error", "Event name conflicts with existing event.")
	case errors.Is(err, ErrNotFound):
		flash.Set(c, "error", "Event not found.")
	case err != nil:
		h.logger.Error("update event", zap.Error(err), zap.String("event_id", e.ID.String()))
		flash.Set(c, "error", "Error: "+err.Error())
	default:
		flash.Set(c, "success", "Event updated.")
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// AdminDelete handles POST /admin/event/:id/delete. Not-found and deleted both
// redirect with success; only the flash text differs.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flash.Set(c, "error", "Invalid event id.")
		c.Redirect(http.StatusFound, "/admin/events")
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	switch {
	case err != nil:
		h.logger.Error("delete event", zap.Error(err), zap.String("event_id", id.String()))
		flash.Set(c, "error", "Error: "+err.Error())
	case !deleted:
		flash.Set(c, "error", "Event not found.")
	default:
		flash.Set(c, "success", "Event deleted.")
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// eventFromParam resolves :id or flashes and redirects back to the list.
func (h *Handler) eventFromParam(c *gin.Context) (*models.Event, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flash.Set(c, "error", "Invalid event id.")
		c.Redirect(http.StatusFound, "/admin/events")
		return nil, false
	}
	e, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Error("load event", zap.Error(err), zap.String("event_id", id.String()))
		}
		flash.Set(c, "error", "Event not found.")
		c.Redirect(http.StatusFound, "/admin/events")
		return nil, false
	}
	return e, true
}

// memberBounds reads min/max member counts from the form, clamping invalid or
// unparsable input instead of rejecting the request.
func memberBounds(c *gin.Context) (minMembers, maxMembers int) {
	minMembers = 1
	if n, err := strconv.Atoi(strings.TrimSpace(c.PostForm("min_members"))); err == nil && n > 1 {
		minMembers = n
	}
	maxMembers = minMembers
	if n, err := strconv.Atoi(strings.TrimSpace(c.PostForm("max_members"))); err == nil && n > minMembers {
		maxMembers = n
	}
	return minMembers, maxMembers
}
