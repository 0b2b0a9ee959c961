package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/delivra/api/internal/cart"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/events"
	"github.com/delivra/api/internal/pgnum"
	"github.com/delivra/api/internal/settings"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxOrderCodeRetries = 3
	orderCodeLength     = 8

	// DefaultCustomerName is stored when the customer leaves the name blank.
	DefaultCustomerName = "Cliente"
)

// Errors returned by the order service.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrTooManyExtras        = errors.New("too many extras selected")
	ErrInvalidStatus        = errors.New("invalid order status")

	ErrEntityNotFound  = errors.New("entity not found")
	ErrDishNotFound    = fmt.Errorf("dish %w", ErrEntityNotFound)
	ErrExtraNotFound   = fmt.Errorf("extra %w", ErrEntityNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrEntityNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrEntityNotFound)
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to create and update orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetActiveDish(ctx context.Context, id uuid.UUID) (database.Dish, error)
	GetActiveExtra(ctx context.Context, id uuid.UUID) (database.Extra, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderLine(ctx context.Context, arg database.CreateOrderLineParams) (database.OrderLine, error)
	CreateOrderExtraLine(ctx context.Context, arg database.CreateOrderExtraLineParams) (database.OrderExtraLine, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// SettingsProvider exposes the current restaurant configuration.
type SettingsProvider interface {
	Current() settings.Settings
}

// SubmitOrderRequest is the customer input accompanying a cart at checkout.
// ExtraIDs may repeat an id; each occurrence becomes its own extra line.
type SubmitOrderRequest struct {
	Customer cart.Contact
	ExtraIDs []uuid.UUID
}

// OrderResult is a persisted order with its lines.
type OrderResult struct {
	Order  database.Order            `json:"order"`
	Lines  []database.OrderLine      `json:"lines"`
	Extras []database.OrderExtraLine `json:"extras"`
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
	settings SettingsProvider
	notifier events.Notifier
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService. notifier may be nil.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, settings SettingsProvider, notifier events.Notifier, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		pool:     pool,
		newStore: newStore,
		settings: settings,
		notifier: notifier,
		logger:   logger,
	}
}

type extraLine struct {
	extraID   uuid.UUID
	unitPrice decimal.Decimal
}

// SubmitOrder persists the cart as a pending order in one transaction and
// clears the cart on success. Nothing is written when any step fails.
// Retries up to maxOrderCodeRetries times when the generated code collides.
func (s *OrderService) SubmitOrder(ctx context.Context, c *cart.Cart, req SubmitOrderRequest) (*OrderResult, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	for i, line := range c.Lines {
		if line.Quantity < 1 || line.Quantity > cart.MaxQuantity {
			return nil, fmt.Errorf("line[%d]: quantity %d: %w", i, line.Quantity, cart.ErrInvalidQuantity)
		}
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		return nil, fmt.Errorf("phone: %w", ErrMissingRequiredField)
	}
	if strings.TrimSpace(req.Customer.Address) == "" {
		return nil, fmt.Errorf("address: %w", ErrMissingRequiredField)
	}
	if maxExtras := s.settings.Current().MaxExtras; len(req.ExtraIDs) > maxExtras {
		return nil, fmt.Errorf("%d selected, at most %d: %w", len(req.ExtraIDs), maxExtras, ErrTooManyExtras)
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderCodeRetries; attempt++ {
		result, err := s.submitTx(ctx, c, req, newOrderCode())
		if err == nil {
			c.Clear()
			s.notify(ctx, events.NewOrderEvent(enum.EventOrderCreated, result.Order))
			return result, nil
		}
		if isOrderCodeConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// newOrderCode returns the first 8 characters of a random UUID, upper-cased.
func newOrderCode() string {
	return strings.ToUpper(uuid.NewString()[:orderCodeLength])
}

// isOrderCodeConflict checks if the error is a unique constraint violation
// on the order code (pgconn error code 23505).
func isOrderCodeConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_code_key"
	}
	return false
}

func (s *OrderService) submitTx(ctx context.Context, c *cart.Cart, req SubmitOrderRequest, code string) (*OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Validate dishes still on sale ---
	for i, line := range c.Lines {
		if _, err := store.GetActiveDish(ctx, line.DishID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("line[%d]: %w", i, ErrDishNotFound)
			}
			return nil, fmt.Errorf("line[%d]: get dish: %w", i, err)
		}
	}

	// --- Price extras from the catalog ---
	total := c.Total()
	extras := make([]extraLine, 0, len(req.ExtraIDs))
	for i, id := range req.ExtraIDs {
		extra, err := store.GetActiveExtra(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("extra[%d]: %w", i, ErrExtraNotFound)
			}
			return nil, fmt.Errorf("extra[%d]: get extra: %w", i, err)
		}
		price, err := pgnum.Decimal(extra.Price)
		if err != nil {
			return nil, fmt.Errorf("extra[%d]: price: %w", i, err)
		}
		total = total.Add(price)
		extras = append(extras, extraLine{extraID: id, unitPrice: price})
	}

	// --- Insert order ---
	name := strings.TrimSpace(req.Customer.Name)
	if name == "" {
		name = DefaultCustomerName
	}
	location := pgtype.Text{}
	if loc := strings.TrimSpace(req.Customer.Location); loc != "" {
		location = pgtype.Text{String: loc, Valid: true}
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		Code:             code,
		CustomerName:     name,
		CustomerPhone:    strings.TrimSpace(req.Customer.Phone),
		CustomerAddress:  strings.TrimSpace(req.Customer.Address),
		CustomerLocation: location,
		Status:           enum.OrderStatusPending,
		Total:            pgnum.Money(total),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// --- Insert lines ---
	lines := make([]database.OrderLine, 0, len(c.Lines))
	for i, line := range c.Lines {
		custom, err := encodeCustomizations(line.Customizations)
		if err != nil {
			return nil, fmt.Errorf("line[%d]: %w", i, err)
		}
		ol, err := store.CreateOrderLine(ctx, database.CreateOrderLineParams{
			OrderID:        order.ID,
			DishID:         line.DishID,
			Position:       int32(i),
			Quantity:       int32(line.Quantity),
			UnitPrice:      pgnum.Money(line.Price),
			Customizations: custom,
		})
		if err != nil {
			return nil, fmt.Errorf("create order line: %w", err)
		}
		lines = append(lines, ol)
	}

	extraLines := make([]database.OrderExtraLine, 0, len(extras))
	for i, e := range extras {
		el, err := store.CreateOrderExtraLine(ctx, database.CreateOrderExtraLineParams{
			OrderID:   order.ID,
			ExtraID:   e.extraID,
			Position:  int32(i),
			Quantity:  1,
			UnitPrice: pgnum.Money(e.unitPrice),
		})
		if err != nil {
			return nil, fmt.Errorf("create order extra line: %w", err)
		}
		extraLines = append(extraLines, el)
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &OrderResult{
		Order:  order,
		Lines:  lines,
		Extras: extraLines,
	}, nil
}

func encodeCustomizations(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode customizations: %w", err)
	}
	return b, nil
}

// notify delivers e after commit. Delivery failures never undo the order.
func (s *OrderService) notify(ctx context.Context, e events.OrderEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, e); err != nil {
		s.logger.Warn("notify order event",
			zap.String("type", e.Type),
			zap.String("code", e.Code),
			zap.Error(err))
	}
}
