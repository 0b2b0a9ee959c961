package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/delivra/api/internal/costing"
	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/pgnum"
	"github.com/delivra/api/internal/units"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// CostStore defines the catalog reads needed to cost dishes.
// Satisfied by *database.Queries.
type CostStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	GetActiveDish(ctx context.Context, id uuid.UUID) (database.Dish, error)
	ListDishIngredients(ctx context.Context, dishID uuid.UUID) ([]database.ListDishIngredientsRow, error)
}

// IngredientRequest is one ad-hoc recipe line. Unit is optional and defaults
// to the product's base unit.
type IngredientRequest struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Unit      units.Unit
}

// DishCost is a computed cost, unrounded and rounded to cents.
type DishCost struct {
	Cost    decimal.Decimal
	Rounded decimal.Decimal
}

// CostService prices dishes from the product catalog.
type CostService struct {
	store CostStore
	calc  *costing.Calculator
}

// NewCostService creates a CostService over the default conversion table.
func NewCostService(store CostStore) *CostService {
	return &CostService{store: store, calc: costing.New(units.Default)}
}

// Convert converts quantity between units.
func (s *CostService) Convert(quantity decimal.Decimal, from, to units.Unit) (decimal.Decimal, error) {
	return units.Convert(quantity, from, to)
}

// PricePerUnit divides totalPrice by totalQuantity expressed in target.
// An empty target means the base unit of quantityUnit.
func (s *CostService) PricePerUnit(totalPrice, totalQuantity decimal.Decimal, quantityUnit, target units.Unit) (decimal.Decimal, error) {
	if target == "" {
		base, err := units.BaseUnit(quantityUnit)
		if err != nil {
			return decimal.Zero, err
		}
		target = base
	}
	return s.calc.PricePerUnit(totalPrice, totalQuantity, quantityUnit, target)
}

// CalculateDishCost prices an ad-hoc list of ingredient lines.
func (s *CostService) CalculateDishCost(ctx context.Context, lines []IngredientRequest) (DishCost, error) {
	ingredients := make([]costing.Ingredient, 0, len(lines))
	for i, l := range lines {
		p, err := s.store.GetProduct(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return DishCost{}, fmt.Errorf("ingredient[%d]: %w", i, ErrProductNotFound)
			}
			return DishCost{}, fmt.Errorf("ingredient[%d]: get product: %w", i, err)
		}
		product, err := productFromRow(p.Name, p.PurchasePrice, p.PurchaseQuantity, p.Unit)
		if err != nil {
			return DishCost{}, fmt.Errorf("ingredient[%d]: %w", i, err)
		}
		ingredients = append(ingredients, costing.Ingredient{
			Product:  product,
			Quantity: l.Quantity,
			Unit:     l.Unit,
		})
	}
	return s.cost(ingredients)
}

// StoredDishCost prices an active dish from its recipe rows. Recipe
// quantities are stored in the product's base unit.
func (s *CostService) StoredDishCost(ctx context.Context, dishID uuid.UUID) (DishCost, error) {
	if _, err := s.store.GetActiveDish(ctx, dishID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DishCost{}, ErrDishNotFound
		}
		return DishCost{}, fmt.Errorf("get dish: %w", err)
	}

	rows, err := s.store.ListDishIngredients(ctx, dishID)
	if err != nil {
		return DishCost{}, fmt.Errorf("list dish ingredients: %w", err)
	}

	ingredients := make([]costing.Ingredient, 0, len(rows))
	for i, r := range rows {
		product, err := productFromRow(r.Name, r.PurchasePrice, r.PurchaseQuantity, r.Unit)
		if err != nil {
			return DishCost{}, fmt.Errorf("ingredient[%d]: %w", i, err)
		}
		quantity, err := pgnum.Decimal(r.Quantity)
		if err != nil {
			return DishCost{}, fmt.Errorf("ingredient[%d]: quantity: %w", i, err)
		}
		ingredients = append(ingredients, costing.Ingredient{Product: product, Quantity: quantity})
	}
	return s.cost(ingredients)
}

func (s *CostService) cost(ingredients []costing.Ingredient) (DishCost, error) {
	total, err := s.calc.DishCost(ingredients)
	if err != nil {
		return DishCost{}, err
	}
	return DishCost{Cost: total, Rounded: costing.Round(total)}, nil
}

func productFromRow(name string, price, quantity pgtype.Numeric, unit string) (costing.Product, error) {
	p, err := pgnum.Decimal(price)
	if err != nil {
		return costing.Product{}, fmt.Errorf("product %s: purchase price: %w", name, err)
	}
	q, err := pgnum.Decimal(quantity)
	if err != nil {
		return costing.Product{}, fmt.Errorf("product %s: purchase quantity: %w", name, err)
	}
	return costing.Product{
		Name:             name,
		PurchasePrice:    p,
		PurchaseQuantity: q,
		Unit:             units.Unit(unit),
	}, nil
}
