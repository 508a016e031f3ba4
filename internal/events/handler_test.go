package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acm-vitap/registration-portal/internal/models"
	"github.com/acm-vitap/registration-portal/web"
)

type memStore struct {
	events map[uuid.UUID]models.Event
	order  []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{events: make(map[uuid.UUID]models.Event)}
}

func (s *memStore) Create(_ context.Context, e *models.Event) error {
	for _, existing := range s.events {
		if existing.EventName == e.EventName {
			return ErrDuplicateName
		}
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	s.events[e.ID] = *e
	s.order = append(s.order, e.ID)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *memStore) List(_ context.Context) ([]models.Event, error) {
	var list []models.Event
	for i := len(s.order) - 1; i >= 0; i-- {
		list = append(list, s.events[s.order[i]])
	}
	return list, nil
}

func (s *memStore) ListActive(ctx context.Context) ([]models.Event, error) {
	all, _ := s.List(ctx)
	var list []models.Event
	for _, e := range all {
		if e.Active {
			list = append(list, e)
		}
	}
	return list, nil
}

func (s *memStore) Update(_ context.Context, e *models.Event) error {
	if _, ok := s.events[e.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.events {
		if id != e.ID && existing.EventName == e.EventName {
			return ErrDuplicateName
		}
	}
	e.UpdatedAt = time.Now().UTC()
	s.events[e.ID] = *e
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func newTestRouter(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/choose_event", h.ChooseEvent)
	r.GET("/admin/events", h.AdminList)
	r.POST("/admin/events", h.AdminCreate)
	r.GET("/admin/event/:id/edit", h.AdminEditPage)
	r.POST("/admin/event/:id/edit", h.AdminEdit)
	r.POST("/admin/event/:id/delete", h.AdminDelete)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminCreate_MemberBoundsClamped(t *testing.T) {
	tests := []struct {
		name             string
		minIn, maxIn     string
		wantMin, wantMax int
	}{
		{"max below min clamps to min", "5", "2", 5, 5},
		{"zero min clamps to 1", "0", "3", 1, 3},
		{"garbage input falls back", "abc", "xyz", 1, 1},
		{"missing fields fall back", "", "", 1, 1},
		{"valid range kept", "2", "4", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			h := NewHandler(store, nil)
			r := newTestRouter(t, h)

			w := postForm(r, "/admin/events", url.Values{
				"event_name":  {"Hackathon"},
				"min_members": {tt.minIn},
				"max_members": {tt.maxIn},
			})

			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", w.Code)
			}
			if len(store.events) != 1 {
				t.Fatalf("store has %d events, want 1", len(store.events))
			}
			for _, e := range store.events {
				if e.MinMembers != tt.wantMin || e.MaxMembers != tt.wantMax {
					t.Errorf("bounds = %d/%d, want %d/%d", e.MinMembers, e.MaxMembers, tt.wantMin, tt.wantMax)
				}
				if !e.Active {
					t.Errorf("new event not active")
				}
			}
		})
	}
}

func TestAdminCreate_DuplicateNameFlashedNotFatal(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store, nil)
	r := newTestRouter(t, h)

	form := url.Values{"event_name": {"Hackathon"}, "min_members": {"1"}, "max_members": {"2"}}
	if w := postForm(r, "/admin/events", form); w.Code != http.StatusFound {
		t.Fatalf("first create status = %d", w.Code)
	}
	w := postForm(r, "/admin/events", form)
	if w.Code != http.StatusFound {
		t.Fatalf("duplicate create status = %d, want 302", w.Code)
	}
	if len(store.events) != 1 {
		t.Errorf("store has %d events, want 1", len(store.events))
	}
	cookies := w.Result().Cookies()
	var flashed string
	for _, c := range cookies {
		if c.Name == "acm_flash" {
			flashed, _ = url.QueryUnescape(c.Value)
		}
	}
	if !strings.Contains(flashed, "Event name already exists.") {
		t.Errorf("flash = %q, want duplicate-name warning", flashed)
	}
}

func TestAdminEdit_UpdatesAllFields(t *testing.T) {
	store := newMemStore()
	e := &models.Event{EventName: "Hackathon", MinMembers: 1, MaxMembers: 2, Active: true}
	_ = store.Create(context.Background(), e)

	h := NewHandler(store, nil)
	r := newTestRouter(t, h)

	w := postForm(r, "/admin/event/"+e.ID.String()+"/edit", url.Values{
		"event_name":        {"Hackathon 2.0"},
		"require_team_name": {"on"},
		"min_members":       {"2"},
		"max_members":       {"6"},
		// active checkbox unchecked
	})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	got := store.events[e.ID]
	if got.EventName != "Hackathon 2.0" || !got.RequireTeamName || got.MinMembers != 2 || got.MaxMembers != 6 || got.Active {
		t.Errorf("updated event = %+v", got)
	}
}

func TestAdminDelete_NotFoundStillRedirects(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store, nil)
	r := newTestRouter(t, h)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		w := postForm(r, "/admin/event/"+id+"/delete", url.Values{})
		if w.Code != http.StatusFound {
			t.Errorf("delete %s status = %d, want 302", id, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/admin/events" {
			t.Errorf("delete %s Location = %q", id, loc)
		}
	}
}

func TestChooseEvent_ListsOnlyActive(t *testing.T) {
	store := newMemStore()
	active := &models.Event{EventName: "Open Drive", MinMembers: 1, MaxMembers: 2, Active: true}
	inactive := &models.Event{EventName: "Closed Drive", MinMembers: 1, MaxMembers: 2, Active: false}
	_ = store.Create(context.Background(), active)
	_ = store.Create(context.Background(), inactive)

	h := NewHandler(store, nil)
	r := newTestRouter(t, h)

	req := httptest.NewRequest(http.MethodGet, "/choose_event", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Open Drive") {
		t.Errorf("active event missing from chooser")
	}
	if strings.Contains(body, "Closed Drive") {
		t.Errorf("inactive event shown in chooser")
	}
}
