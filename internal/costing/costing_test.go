package costing

import (
	"testing"

	"github.com/delivra/api/internal/units"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var cheese = Product{
	Name:             "Cheese",
	PurchasePrice:    d("3500"),
	PurchaseQuantity: d("10"),
	Unit:             units.Pound,
}

func TestPricePerUnit_CheeseByTheGram(t *testing.T) {
	ppu, err := PricePerUnit(d("3500"), d("10"), units.Pound, units.Gram)
	require.NoError(t, err)
	assert.Equal(t, "0.7716", ppu.Round(4).String())
}

func TestPricePerUnit_DivisionByZero(t *testing.T) {
	for _, u := range []units.Unit{units.Kilogram, units.Pound, units.Liter, units.Piece} {
		_, err := PricePerUnit(d("100"), decimal.Zero, u, u)
		assert.ErrorIs(t, err, ErrDivisionByZero, "unit %s", u)
	}

	_, err := PricePerUnit(d("100"), decimal.Zero, units.Kilogram, units.Gram)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPricePerUnit_PropagatesConversionErrors(t *testing.T) {
	_, err := PricePerUnit(d("10"), d("1"), "stone", units.Gram)
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)

	_, err = PricePerUnit(d("10"), d("1"), units.Liter, units.Gram)
	assert.ErrorIs(t, err, units.ErrNoConversionPath)
}

func TestDishCost_Empty(t *testing.T) {
	cost, err := DishCost(nil)
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestDishCost_CheeseScenario(t *testing.T) {
	cost, err := DishCost([]Ingredient{{Product: cheese, Quantity: d("150")}})
	require.NoError(t, err)
	assert.Equal(t, "115.74", Round(cost).StringFixed(2))
}

func TestDishCost_MixedDimensions(t *testing.T) {
	milk := Product{Name: "Milk", PurchasePrice: d("4"), PurchaseQuantity: d("2"), Unit: units.Liter}
	eggs := Product{Name: "Eggs", PurchasePrice: d("3.60"), PurchaseQuantity: d("12"), Unit: units.Piece}

	cost, err := DishCost([]Ingredient{
		{Product: milk, Quantity: d("250")}, // ml
		{Product: eggs, Quantity: d("2")},
	})
	require.NoError(t, err)
	// 0.002/ml * 250 + 0.30 * 2
	assert.Equal(t, "1.10", Round(cost).StringFixed(2))
}

func TestDishCost_IngredientUnit(t *testing.T) {
	flour := Product{Name: "Flour", PurchasePrice: d("20"), PurchaseQuantity: d("10"), Unit: units.Kilogram}

	cost, err := DishCost([]Ingredient{{Product: flour, Quantity: d("0.5"), Unit: units.Kilogram}})
	require.NoError(t, err)
	assert.Equal(t, "1.00", Round(cost).StringFixed(2))
}

func TestDishCost_FailureAbortsWholeComputation(t *testing.T) {
	broken := Product{Name: "Mystery", PurchasePrice: d("5"), PurchaseQuantity: d("1"), Unit: "stone"}

	cost, err := DishCost([]Ingredient{
		{Product: cheese, Quantity: d("150")},
		{Product: broken, Quantity: d("1")},
	})
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
	assert.True(t, cost.IsZero())
}

func TestDishCost_ZeroPurchaseQuantity(t *testing.T) {
	empty := cheese
	empty.PurchaseQuantity = decimal.Zero

	_, err := DishCost([]Ingredient{{Product: empty, Quantity: d("1")}})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestDishCost_NonPositiveQuantity(t *testing.T) {
	_, err := DishCost([]Ingredient{{Product: cheese, Quantity: decimal.Zero}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestDishCost_KeepsPrecisionUntilRounding(t *testing.T) {
	// Three ingredients each worth 0.004 round to 0.00 individually but 0.01 together.
	salt := Product{Name: "Salt", PurchasePrice: d("4"), PurchaseQuantity: d("1"), Unit: units.Kilogram}
	cost, err := DishCost([]Ingredient{
		{Product: salt, Quantity: d("1")},
		{Product: salt, Quantity: d("1")},
		{Product: salt, Quantity: d("1")},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.01", Round(cost).StringFixed(2))
}
