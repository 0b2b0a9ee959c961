// Package cart models a customer's session cart.
//
// A Cart is a plain value owned by one session. It is loaded from a Store at
// the start of a request, mutated, and saved back; it never outlives the
// session except as the order it is turned into.
package cart

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by cart mutations.
var (
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 2147483647")
)

// MaxQuantity is the largest quantity a line may hold. Order lines store
// quantities as 32-bit integers.
const MaxQuantity = math.MaxInt32

// Dish is the catalog data snapshotted into a line when it is added.
type Dish struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Image string
}

// Line is one dish in the cart.
type Line struct {
	DishID         uuid.UUID       `json:"dish_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Quantity       int             `json:"quantity"`
	Customizations map[string]any  `json:"customizations"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines.
type Cart struct {
	Lines []Line `json:"lines"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// Add increments the line for dish by quantity, or appends a new line with a
// snapshot of the dish. Customizations only apply to a new line.
func (c *Cart) Add(dish Dish, quantity int, customizations map[string]any) error {
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].DishID == dish.ID {
			if c.Lines[i].Quantity > MaxQuantity-quantity {
				return ErrInvalidQuantity
			}
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	if customizations == nil {
		customizations = map[string]any{}
	}
	c.Lines = append(c.Lines, Line{
		DishID:         dish.ID,
		Name:           dish.Name,
		Price:          dish.Price,
		Image:          dish.Image,
		Quantity:       quantity,
		Customizations: customizations,
	})
	return nil
}

// UpdateQuantity sets the quantity of the line at index, removing the line
// when quantity <= 0.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if quantity <= 0 {
		c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
		return nil
	}
	c.Lines[index].Quantity = quantity
	return nil
}

// Customize replaces the customizations of the line at index.
func (c *Cart) Customize(index int, customizations map[string]any) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if customizations == nil {
		customizations = map[string]any{}
	}
	c.Lines[index].Customizations = customizations
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// Total is the sum of line subtotals. Extras are not part of the cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count returns the number of lines.
func (c *Cart) Count() int {
	return len(c.Lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return fmt.Errorf("%w: %d (lines: %d)", ErrIndexOutOfRange, index, len(c.Lines))
	}
	return nil
}

// Contact is the customer data cached to pre-fill the next checkout.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Location string `json:"location"`
}
