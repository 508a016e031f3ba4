package legacy

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// Store is the read-only access the handler depends on.
type Store interface {
	List(ctx context.Context) ([]models.LegacyTeam, error)
}

// Handler serves the admin-only legacy listing.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a legacy handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// ListTeams handles GET /legacy_teams. A store failure degrades to an empty
// listing, logged.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list legacy teams", zap.Error(err))
		teams = nil
	}
	c.HTML(http.StatusOK, "legacy_teams.html", gin.H{"Teams": teams})
}
