package handler

import (
	"context"
	"net/http"

	"github.com/delivra/api/internal/enum"
	"go.uber.org/zap"
)

// DashboardStore defines the counters shown on the staff dashboard.
// Satisfied by *database.Queries.
type DashboardStore interface {
	CountOrdersByStatus(ctx context.Context, status string) (int64, error)
	CountDishes(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
}

// DashboardHandler serves GET /admin/dashboard.
type DashboardHandler struct {
	store  DashboardStore
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store DashboardStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, logger: logger}
}

type dashboardResponse struct {
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	PendingOrders  int64            `json:"pending_orders"`
	Dishes         int64            `json:"dishes"`
	Products       int64            `json:"products"`
}

// Get handles GET /admin/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	byStatus := make(map[string]int64, len(enum.OrderStatuses))
	for _, s := range enum.OrderStatuses {
		n, err := h.store.CountOrdersByStatus(r.Context(), s)
		if err != nil {
			internalError(w, h.logger, "count orders", err)
			return
		}
		byStatus[s] = n
	}

	dishes, err := h.store.CountDishes(r.Context())
	if err != nil {
		internalError(w, h.logger, "count dishes", err)
		return
	}
	products, err := h.store.CountProducts(r.Context())
	if err != nil {
		internalError(w, h.logger, "count products", err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		OrdersByStatus: byStatus,
		PendingOrders:  byStatus[enum.OrderStatusPending],
		Dishes:         dishes,
		Products:       products,
	})
}
