package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/delivra/api/internal/auth"
	"github.com/delivra/api/internal/cart"
	"github.com/delivra/api/internal/config"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/router"
	"github.com/delivra/api/internal/service"
	"github.com/delivra/api/internal/settings"
	"github.com/delivra/api/internal/ws"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

type noopSettingsStore struct{}

func (noopSettingsStore) EnsureSettings(ctx context.Context, arg database.EnsureSettingsParams) (database.Setting, error) {
	return database.Setting{}, nil
}

func (noopSettingsStore) UpdateSettings(ctx context.Context, arg database.UpdateSettingsParams) (database.Setting, error) {
	return database.Setting{}, nil
}

// newTestRouter wires the router without a database. Only routes that never
// reach the queries are exercised here.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		JWTSecret:      testSecret,
		AllowedOrigins: []string{"https://shop.example"},
	}
	queries := database.New(nil)
	mgr := settings.NewManager(noopSettingsStore{})

	return router.New(router.Deps{
		Config:   cfg,
		Queries:  queries,
		Orders:   service.NewOrderService(nil, nil, mgr, nil, zap.NewNop()),
		Costs:    service.NewCostService(queries),
		QR:       service.NewQRGenerator("https://shop.example"),
		Carts:    cart.NewRedisStore(rdb, time.Hour),
		Settings: mgr,
		Hub:      ws.NewHub(),
		Logger:   zap.NewNop(),
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, uuid.New(), role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body: got %s", rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type: got %q", rr.Header().Get("Content-Type"))
	}
}

func TestPublicSettings(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/settings", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), settings.Defaults().RestaurantName) {
		t.Errorf("body: got %s", rr.Body.String())
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/admin/dashboard", "/admin/orders", "/admin/settings"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: got %d, want %d", path, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestAdminRoutes_RejectUnknownRole(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "customer"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestAdminSettings_UpdateIsAdminOnly(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/admin/settings", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token(t, enum.RoleStaff))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("staff PUT: got %d, want %d", rr.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, enum.RoleStaff))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("staff GET: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/cart/items", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("allow origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow credentials: got %q", got)
	}
}
