// Package costing derives purchase costs of products and dishes.
package costing

import (
	"errors"
	"fmt"

	"github.com/delivra/api/internal/units"
	"github.com/shopspring/decimal"
)

// Errors returned by the calculator. Conversion errors from the units
// package are passed through unchanged.
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidQuantity = errors.New("ingredient quantity must be > 0")
)

// Product is the purchase information of a raw ingredient.
type Product struct {
	Name             string
	PurchasePrice    decimal.Decimal
	PurchaseQuantity decimal.Decimal
	Unit             units.Unit
}

// Ingredient is one line of a dish recipe. Quantity is expressed in Unit,
// or in the product's base unit when Unit is empty.
type Ingredient struct {
	Product  Product
	Quantity decimal.Decimal
	Unit     units.Unit
}

// Calculator prices products and dishes against a conversion table.
type Calculator struct {
	table *units.Table
}

// New creates a Calculator backed by table.
func New(table *units.Table) *Calculator {
	return &Calculator{table: table}
}

var std = New(units.Default)

// PricePerUnit returns totalPrice divided by totalQuantity expressed in target.
func (c *Calculator) PricePerUnit(totalPrice, totalQuantity decimal.Decimal, quantityUnit, target units.Unit) (decimal.Decimal, error) {
	converted, err := c.table.Convert(totalQuantity, quantityUnit, target)
	if err != nil {
		return decimal.Zero, err
	}
	if converted.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s %s is zero %s", ErrDivisionByZero, totalQuantity, quantityUnit, target)
	}
	return totalPrice.Div(converted), nil
}

// DishCost sums the cost of every ingredient at its product's price per base
// unit. The result keeps full precision; callers round for display. Any
// failing ingredient aborts the whole computation.
func (c *Calculator) DishCost(ingredients []Ingredient) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, ing := range ingredients {
		cost, err := c.ingredientCost(ing)
		if err != nil {
			return decimal.Zero, fmt.Errorf("ingredient[%d] %s: %w", i, ing.Product.Name, err)
		}
		total = total.Add(cost)
	}
	return total, nil
}

func (c *Calculator) ingredientCost(ing Ingredient) (decimal.Decimal, error) {
	if !ing.Quantity.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}
	p := ing.Product
	base, err := c.table.BaseUnit(p.Unit)
	if err != nil {
		return decimal.Zero, err
	}
	ppu, err := c.PricePerUnit(p.PurchasePrice, p.PurchaseQuantity, p.Unit, base)
	if err != nil {
		return decimal.Zero, err
	}

	qty := ing.Quantity
	if ing.Unit != "" && ing.Unit != base {
		qty, err = c.table.Convert(ing.Quantity, ing.Unit, base)
		if err != nil {
			return decimal.Zero, err
		}
	}
	return ppu.Mul(qty), nil
}

// PricePerUnit uses the default conversion table.
func PricePerUnit(totalPrice, totalQuantity decimal.Decimal, quantityUnit, target units.Unit) (decimal.Decimal, error) {
	return std.PricePerUnit(totalPrice, totalQuantity, quantityUnit, target)
}

// DishCost uses the default conversion table.
func DishCost(ingredients []Ingredient) (decimal.Decimal, error) {
	return std.DishCost(ingredients)
}

// Round rounds an amount to cents for display.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
