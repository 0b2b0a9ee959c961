package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/delivra/api/internal/cart"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/middleware"
	"github.com/delivra/api/internal/pgnum"
	"github.com/delivra/api/internal/settings"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStore loads and saves session carts.
// Satisfied by *cart.RedisStore.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	LoadContact(ctx context.Context, sessionID string) (cart.Contact, error)
	SaveContact(ctx context.Context, sessionID string, contact cart.Contact) error
}

// CatalogStore defines the catalog reads the cart needs.
// Satisfied by *database.Queries.
type CatalogStore interface {
	GetActiveDish(ctx context.Context, id uuid.UUID) (database.Dish, error)
	ListActiveExtras(ctx context.Context) ([]database.Extra, error)
}

// SettingsReader exposes the cached restaurant configuration.
type SettingsReader interface {
	Current() settings.Settings
}

// CartHandler handles the customer's session cart.
type CartHandler struct {
	carts    CartStore
	catalog  CatalogStore
	settings SettingsReader
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts CartStore, catalog CatalogStore, settings SettingsReader, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, settings: settings, logger: logger}
}

// RegisterRoutes registers cart endpoints. Expects middleware.CartSession
// upstream: /cart
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Delete("/", h.Clear)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{index}", h.UpdateItem)
	r.Put("/items/{index}/customizations", h.Customize)
}

// --- Request / Response types ---

type addItemRequest struct {
	DishID         string         `json:"dish_id"`
	Quantity       *int           `json:"quantity"`
	Customizations map[string]any `json:"customizations"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type customizeRequest struct {
	Customizations map[string]any `json:"customizations"`
}

type extraResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price string    `json:"price"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	Count     int                `json:"count"`
	Total     string             `json:"total"`
	Extras    []extraResponse    `json:"extras,omitempty"`
	MaxExtras *int               `json:"max_extras,omitempty"`
	Contact   *cart.Contact      `json:"contact,omitempty"`
}

type cartLineResponse struct {
	DishID         uuid.UUID      `json:"dish_id"`
	Name           string         `json:"name"`
	Price          string         `json:"price"`
	Image          string         `json:"image"`
	Quantity       int            `json:"quantity"`
	Subtotal       string         `json:"subtotal"`
	Customizations map[string]any `json:"customizations"`
}

// --- Handlers ---

// Get handles GET /cart. The summary includes the extras on offer and the
// cached contact so checkout can be pre-filled.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionFromContext(r.Context())
	c, err := h.carts.Load(r.Context(), sid)
	if err != nil {
		internalError(w, h.logger, "load cart", err)
		return
	}

	extras, err := h.catalog.ListActiveExtras(r.Context())
	if err != nil {
		internalError(w, h.logger, "list extras", err)
		return
	}
	contact, err := h.carts.LoadContact(r.Context(), sid)
	if err != nil {
		internalError(w, h.logger, "load contact", err)
		return
	}

	resp := toCartResponse(c)
	resp.Extras = make([]extraResponse, len(extras))
	for i, e := range extras {
		resp.Extras[i] = extraResponse{ID: e.ID, Name: e.Name, Price: pgnum.MoneyString(e.Price)}
	}
	maxExtras := h.settings.Current().MaxExtras
	resp.MaxExtras = &maxExtras
	resp.Contact = &contact

	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dishID, err := uuid.Parse(req.DishID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dish_id")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	dish, err := h.catalog.GetActiveDish(r.Context(), dishID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "dish not found")
			return
		}
		internalError(w, h.logger, "get dish", err)
		return
	}

	h.mutate(w, r, http.StatusCreated, func(c *cart.Cart) error {
		return c.Add(cart.Dish{
			ID:    dish.ID,
			Name:  dish.Name,
			Price: pgnum.ToDecimal(dish.SalePrice),
			Image: dish.Image.String,
		}, quantity, req.Customizations)
	})
}

// UpdateItem handles PATCH /cart/items/{index}. Quantity 0 removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	h.mutate(w, r, http.StatusOK, func(c *cart.Cart) error {
		return c.UpdateQuantity(index, *req.Quantity)
	})
}

// Customize handles PUT /cart/items/{index}/customizations.
func (h *CartHandler) Customize(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	var req customizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mutate(w, r, http.StatusOK, func(c *cart.Cart) error {
		return c.Customize(index, req.Customizations)
	})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusOK, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// mutate loads the session cart, applies fn and saves the result.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, status int, fn func(c *cart.Cart) error) {
	sid := middleware.SessionFromContext(r.Context())
	c, err := h.carts.Load(r.Context(), sid)
	if err != nil {
		internalError(w, h.logger, "load cart", err)
		return
	}

	if err := fn(c); err != nil {
		switch {
		case errors.Is(err, cart.ErrIndexOutOfRange):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, h.logger, "update cart", err)
		}
		return
	}

	if err := h.carts.Save(r.Context(), sid, c); err != nil {
		internalError(w, h.logger, "save cart", err)
		return
	}
	writeJSON(w, status, toCartResponse(c))
}

func toCartResponse(c *cart.Cart) cartResponse {
	lines := make([]cartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = cartLineResponse{
			DishID:         l.DishID,
			Name:           l.Name,
			Price:          money(l.Price),
			Image:          l.Image,
			Quantity:       l.Quantity,
			Subtotal:       money(l.Subtotal()),
			Customizations: l.Customizations,
		}
	}
	return cartResponse{
		Lines: lines,
		Count: c.Count(),
		Total: money(c.Total()),
	}
}

// money formats a decimal amount for responses.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
