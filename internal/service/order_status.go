package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SetOrderStatus moves an order to status. Any recognized status may follow
// any other; unknown values fail with ErrInvalidStatus and change nothing.
func (s *OrderService) SetOrderStatus(ctx context.Context, id uuid.UUID, status string) (database.Order, error) {
	if !enum.IsValidOrderStatus(status) {
		return database.Order{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	order, err := s.newStore(tx).UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:     id,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}

	s.notify(ctx, events.NewOrderEvent(enum.EventOrderStatusChanged, order))
	return order, nil
}
