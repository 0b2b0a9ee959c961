package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/delivra/api/internal/settings"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsManager reads and replaces the restaurant configuration.
// Satisfied by *settings.Manager.
type SettingsManager interface {
	Current() settings.Settings
	Update(ctx context.Context, s settings.Settings) (settings.Settings, error)
}

// SettingsHandler handles restaurant configuration endpoints.
type SettingsHandler struct {
	mgr    SettingsManager
	logger *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(mgr SettingsManager, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{mgr: mgr, logger: logger}
}

// RegisterAdminRoutes registers GET and PUT on /admin/settings. PUT is
// guarded by requireAdmin.
func (h *SettingsHandler) RegisterAdminRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/", h.Get)
	r.With(requireAdmin).Put("/", h.Update)
}

// Get handles GET /settings and GET /admin/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mgr.Current())
}

// Update handles PUT /admin/settings. The body replaces the whole row.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.Settings
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.mgr.Update(r.Context(), req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, h.logger, "update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
