package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dish(name, price string) Dish {
	return Dish{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), Image: name + ".jpg"}
}

func TestAdd_SameDishTwiceIncrementsOneLine(t *testing.T) {
	c := New()
	burger := dish("Burger", "10")

	require.NoError(t, c.Add(burger, 1, nil))
	require.NoError(t, c.Add(burger, 1, nil))

	require.Equal(t, 1, c.Count())
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAdd_SnapshotsDish(t *testing.T) {
	c := New()
	burger := dish("Burger", "10")
	require.NoError(t, c.Add(burger, 3, map[string]any{"no_onion": true}))

	l := c.Lines[0]
	assert.Equal(t, burger.ID, l.DishID)
	assert.Equal(t, "Burger", l.Name)
	assert.Equal(t, "Burger.jpg", l.Image)
	assert.True(t, l.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, true, l.Customizations["no_onion"])

	// Later price changes in the catalog do not touch the line.
	burger.Price = decimal.NewFromInt(99)
	require.NoError(t, c.Add(burger, 1, map[string]any{"extra_cheese": true}))
	assert.True(t, c.Lines[0].Price.Equal(decimal.NewFromInt(10)))
	assert.NotContains(t, c.Lines[0].Customizations, "extra_cheese")
}

func TestAdd_InvalidQuantity(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Add(dish("Soup", "4"), 0, nil), ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestAdd_QuantityAboveLimit(t *testing.T) {
	c := New()
	soup := dish("Soup", "4")
	assert.ErrorIs(t, c.Add(soup, MaxQuantity+1, nil), ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Add(soup, MaxQuantity-1, nil))
	assert.ErrorIs(t, c.Add(soup, 2, nil), ErrInvalidQuantity)
	assert.Equal(t, MaxQuantity-1, c.Lines[0].Quantity)

	require.NoError(t, c.Add(soup, 1, nil))
	assert.Equal(t, MaxQuantity, c.Lines[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(dish("Burger", "10"), 1, nil))
	require.NoError(t, c.Add(dish("Fries", "3.50"), 1, nil))

	require.NoError(t, c.UpdateQuantity(1, 4))
	assert.Equal(t, 4, c.Lines[1].Quantity)

	require.NoError(t, c.UpdateQuantity(0, 0))
	require.Equal(t, 1, c.Count())
	assert.Equal(t, "Fries", c.Lines[0].Name)

	require.NoError(t, c.UpdateQuantity(0, -2))
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity_AboveLimit(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(dish("Burger", "1"), 3, nil))

	assert.ErrorIs(t, c.UpdateQuantity(0, MaxQuantity+2), ErrInvalidQuantity)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(3)))

	require.NoError(t, c.UpdateQuantity(0, MaxQuantity))
	assert.Equal(t, MaxQuantity, c.Lines[0].Quantity)
}

func TestUpdateQuantity_OutOfRange(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(dish("Burger", "10"), 1, nil))

	for _, idx := range []int{-1, 1, 7} {
		err := c.UpdateQuantity(idx, 2)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestCustomize(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(dish("Pizza", "12"), 1, nil))

	require.NoError(t, c.Customize(0, map[string]any{"crust": "thin"}))
	assert.Equal(t, "thin", c.Lines[0].Customizations["crust"])

	assert.ErrorIs(t, c.Customize(3, nil), ErrIndexOutOfRange)
}

func TestTotalAndClear(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	require.NoError(t, c.Add(dish("Burger", "10"), 2, nil))
	require.NoError(t, c.Add(dish("Fries", "3.50"), 1, nil))
	assert.Equal(t, "23.50", c.Total().StringFixed(2))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}
