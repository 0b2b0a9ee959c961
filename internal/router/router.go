package router

import (
	"net/http"

	"github.com/delivra/api/internal/cart"
	"github.com/delivra/api/internal/config"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/handler"
	mw "github.com/delivra/api/internal/middleware"
	"github.com/delivra/api/internal/service"
	"github.com/delivra/api/internal/settings"
	"github.com/delivra/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config   *config.Config
	Queries  *database.Queries
	Orders   *service.OrderService
	Costs    *service.CostService
	QR       *service.QRGenerator
	Carts    *cart.RedisStore
	Settings *settings.Manager
	Hub      *ws.Hub
	Logger   *zap.Logger
}

// New creates a Chi router with all application routes wired up.
func New(d Deps) chi.Router {
	cfg := d.Config
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	settingsHandler := handler.NewSettingsHandler(d.Settings, d.Logger)
	r.Get("/settings", settingsHandler.Get)

	orderHandler := handler.NewOrderHandler(d.Orders, d.Queries, d.Carts, d.QR, d.Logger)
	costHandler := handler.NewCostHandler(d.Costs, d.Logger)

	// WebSocket routes (staff auth via query param)
	r.Get("/ws/orders/{code}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeOrder(d.Hub, d.Logger, w, r)
	})
	r.Get("/ws/staff", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeStaff(d.Hub, cfg.JWTSecret, d.Logger, w, r)
	})

	// Customer routes (anonymous cart session)
	r.Group(func(r chi.Router) {
		r.Use(mw.CartSession(cfg.SecureCookies))

		cartHandler := handler.NewCartHandler(d.Carts, d.Queries, d.Settings, d.Logger)
		r.Route("/cart", cartHandler.RegisterRoutes)
		r.Route("/orders", orderHandler.RegisterRoutes)
	})

	// Staff routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.RoleAdmin, enum.RoleStaff))

		dashboardHandler := handler.NewDashboardHandler(d.Queries, d.Logger)
		r.Get("/dashboard", dashboardHandler.Get)

		r.Route("/orders", orderHandler.RegisterAdminRoutes)
		r.Route("/costs", costHandler.RegisterRoutes)
		r.Get("/dishes/{id}/cost", costHandler.StoredDishCost)
		r.Route("/settings", func(r chi.Router) {
			settingsHandler.RegisterAdminRoutes(r, mw.RequireRole(enum.RoleAdmin))
		})
	})

	d.Logger.Info("router initialized")
	return r
}
