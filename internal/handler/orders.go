package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/delivra/api/internal/cart"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/middleware"
	"github.com/delivra/api/internal/pgnum"
	"github.com/delivra/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	SubmitOrder(ctx context.Context, c *cart.Cart, req service.SubmitOrderRequest) (*service.OrderResult, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, status string) (database.Order, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderByCode(ctx context.Context, code string) (database.Order, error)
	ListOrdersByStatus(ctx context.Context, arg database.ListOrdersByStatusParams) ([]database.Order, error)
	ListOrderLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderLine, error)
	ListOrderExtraLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtraLine, error)
}

// QRRenderer renders the tracking QR code of an order.
// Satisfied by *service.QRGenerator.
type QRRenderer interface {
	Generate(code string) ([]byte, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc    OrderServicer
	store  OrderStore
	carts  CartStore
	qr     QRRenderer
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, carts CartStore, qr QRRenderer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, carts: carts, qr: qr, logger: logger}
}

// RegisterRoutes registers customer order endpoints: /orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Submit)
	r.Get("/{code}", h.GetByCode)
	r.Get("/{code}/qr", h.QRCode)
}

// RegisterAdminRoutes registers staff order endpoints: /admin/orders
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type submitOrderRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Location string   `json:"location"`
	Extras   []string `json:"extras"`
}

type orderResponse struct {
	ID               uuid.UUID                `json:"id"`
	Code             string                   `json:"code"`
	CustomerName     string                   `json:"customer_name"`
	CustomerPhone    string                   `json:"customer_phone"`
	CustomerAddress  string                   `json:"customer_address"`
	CustomerLocation *string                  `json:"customer_location"`
	Status           string                   `json:"status"`
	Total            string                   `json:"total"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	Lines            []orderLineResponse      `json:"lines,omitempty"`
	Extras           []orderExtraLineResponse `json:"extras,omitempty"`
}

type orderLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	DishID         uuid.UUID       `json:"dish_id"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      string          `json:"unit_price"`
	Subtotal       string          `json:"subtotal"`
	Customizations json.RawMessage `json:"customizations"`
}

type orderExtraLineResponse struct {
	ID        uuid.UUID `json:"id"`
	ExtraID   uuid.UUID `json:"extra_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Status string          `json:"status"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// Submit handles POST /orders: turns the session cart into an order.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	extraIDs := make([]uuid.UUID, len(req.Extras))
	for i, s := range req.Extras {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid extra id at index "+strconv.Itoa(i))
			return
		}
		extraIDs[i] = id
	}

	sid := middleware.SessionFromContext(r.Context())
	c, err := h.carts.Load(r.Context(), sid)
	if err != nil {
		internalError(w, h.logger, "load cart", err)
		return
	}

	contact := cart.Contact{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Location: req.Location,
	}
	result, err := h.svc.SubmitOrder(r.Context(), c, service.SubmitOrderRequest{
		Customer: contact,
		ExtraIDs: extraIDs,
	})
	if err != nil {
		if status, ok := orderErrorStatus(err); ok {
			writeError(w, status, err.Error())
			return
		}
		internalError(w, h.logger, "submit order", err)
		return
	}

	// The order is committed; cart and contact bookkeeping failures are only logged.
	if err := h.carts.Save(r.Context(), sid, c); err != nil {
		h.logger.Error("clear cart after order", zap.String("code", result.Order.Code), zap.Error(err))
	}
	if err := h.carts.SaveContact(r.Context(), sid, contact); err != nil {
		h.logger.Warn("cache contact", zap.Error(err))
	}

	resp := toOrderResponse(result.Order)
	resp.Lines = toOrderLineResponses(result.Lines)
	resp.Extras = toOrderExtraLineResponses(result.Extras)
	writeJSON(w, http.StatusCreated, resp)
}

// GetByCode handles GET /orders/{code}.
func (h *OrderHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	order, err := h.store.GetOrderByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		internalError(w, h.logger, "get order by code", err)
		return
	}
	h.writeDetail(w, r, order)
}

// QRCode handles GET /orders/{code}/qr.
func (h *OrderHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if _, err := h.store.GetOrderByCode(r.Context(), code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		internalError(w, h.logger, "get order for qr", err)
		return
	}

	png, err := h.qr.Generate(code)
	if err != nil {
		internalError(w, h.logger, "generate qr", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck
}

// List handles GET /admin/orders?status=pending, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = enum.OrderStatusPending
	}
	if !enum.IsValidOrderStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 200 {
		limit = 200
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	orders, err := h.store.ListOrdersByStatus(r.Context(), database.ListOrdersByStatusParams{
		Status: status,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		internalError(w, h.logger, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		internalError(w, h.logger, "get order", err)
		return
	}
	h.writeDetail(w, r, order)
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.svc.SetOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		if status, ok := orderErrorStatus(err); ok {
			writeError(w, status, err.Error())
			return
		}
		internalError(w, h.logger, "update order status", err)
		return
	}

	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		h.logger.Info("order status changed",
			zap.String("code", updated.Code),
			zap.String("status", updated.Status),
			zap.String("by", claims.UserID.String()))
	}
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *OrderHandler) writeDetail(w http.ResponseWriter, r *http.Request, order database.Order) {
	lines, err := h.store.ListOrderLinesByOrder(r.Context(), order.ID)
	if err != nil {
		internalError(w, h.logger, "list order lines", err)
		return
	}
	extras, err := h.store.ListOrderExtraLinesByOrder(r.Context(), order.ID)
	if err != nil {
		internalError(w, h.logger, "list order extra lines", err)
		return
	}

	resp := toOrderResponse(order)
	resp.Lines = toOrderLineResponses(lines)
	resp.Extras = toOrderExtraLineResponses(extras)
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// orderErrorStatus maps service errors to HTTP status codes.
func orderErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, service.ErrMissingRequiredField),
		errors.Is(err, service.ErrTooManyExtras),
		errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, service.ErrEntityNotFound):
		// A dish or extra was withdrawn while in the cart.
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		Code:            o.Code,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Status:          o.Status,
		Total:           pgnum.MoneyString(o.Total),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.CustomerLocation.Valid {
		resp.CustomerLocation = &o.CustomerLocation.String
	}
	return resp
}

func toOrderLineResponses(lines []database.OrderLine) []orderLineResponse {
	resp := make([]orderLineResponse, len(lines))
	for i, l := range lines {
		custom := json.RawMessage(l.Customizations)
		if len(custom) == 0 {
			custom = json.RawMessage("{}")
		}
		price := pgnum.ToDecimal(l.UnitPrice)
		resp[i] = orderLineResponse{
			ID:             l.ID,
			DishID:         l.DishID,
			Quantity:       l.Quantity,
			UnitPrice:      money(price),
			Subtotal:       money(price.Mul(decimal.NewFromInt32(l.Quantity))),
			Customizations: custom,
		}
	}
	return resp
}

func toOrderExtraLineResponses(lines []database.OrderExtraLine) []orderExtraLineResponse {
	resp := make([]orderExtraLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = orderExtraLineResponse{
			ID:        l.ID,
			ExtraID:   l.ExtraID,
			Quantity:  l.Quantity,
			UnitPrice: pgnum.MoneyString(l.UnitPrice),
		}
	}
	return resp
}
