// Package units converts ingredient quantities between measurement units.
//
// The conversion graph is a small set of weighted, directed edges. Lookups
// try the direct edge first and then a single intermediate unit; there is no
// deeper search, so a pair that needs two hops is reported as unreachable.
package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errors returned by conversions.
var (
	ErrUnsupportedUnit  = errors.New("unsupported unit")
	ErrNoConversionPath = errors.New("no conversion path")
)

// Unit is a measurement unit symbol as stored on products ("kg", "ml", ...).
type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Pound      Unit = "lb"
	Ounce      Unit = "oz"
	Liter      Unit = "lt"
	Milliliter Unit = "ml"
	Gallon     Unit = "gal"
	Piece      Unit = "un"
)

// Dimension groups units that measure the same kind of quantity.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

type edge struct {
	to     Unit
	factor decimal.Decimal
}

// Table holds registered units and the factors between them.
// Edges keep registration order so the intermediate search is deterministic.
type Table struct {
	dims  map[Unit]Dimension
	base  map[Dimension]Unit
	edges map[Unit][]edge
}

// NewTable returns an empty conversion table.
func NewTable() *Table {
	return &Table{
		dims:  make(map[Unit]Dimension),
		base:  make(map[Dimension]Unit),
		edges: make(map[Unit][]edge),
	}
}

// AddUnit registers u under dim. The first unit added for a dimension
// becomes its base unit unless SetBase says otherwise.
func (t *Table) AddUnit(u Unit, dim Dimension) {
	t.dims[u] = dim
	if _, ok := t.base[dim]; !ok {
		t.base[dim] = u
	}
}

// SetBase marks u as the base unit of its dimension.
func (t *Table) SetBase(u Unit) error {
	dim, ok := t.dims[u]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedUnit, u)
	}
	t.base[dim] = u
	return nil
}

// AddFactor registers a one-way factor: 1 from = factor to.
// The reverse direction is not implied.
func (t *Table) AddFactor(from, to Unit, factor decimal.Decimal) error {
	if _, ok := t.dims[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedUnit, from)
	}
	if _, ok := t.dims[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedUnit, to)
	}
	for i, e := range t.edges[from] {
		if e.to == to {
			t.edges[from][i].factor = factor
			return nil
		}
	}
	t.edges[from] = append(t.edges[from], edge{to: to, factor: factor})
	return nil
}

// Supports reports whether u is registered.
func (t *Table) Supports(u Unit) bool {
	_, ok := t.dims[u]
	return ok
}

// DimensionOf returns the dimension u belongs to.
func (t *Table) DimensionOf(u Unit) (Dimension, error) {
	dim, ok := t.dims[u]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, u)
	}
	return dim, nil
}

// BaseUnit returns the smallest common unit of u's dimension (g for mass,
// ml for volume, un for count in the default table).
func (t *Table) BaseUnit(u Unit) (Unit, error) {
	dim, err := t.DimensionOf(u)
	if err != nil {
		return "", err
	}
	return t.base[dim], nil
}

// Convert converts quantity from one unit to another.
func (t *Table) Convert(quantity decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !t.Supports(from) {
		return decimal.Zero, fmt.Errorf("%w: source unit %q", ErrUnsupportedUnit, from)
	}
	if !t.Supports(to) {
		return decimal.Zero, fmt.Errorf("%w: target unit %q", ErrUnsupportedUnit, to)
	}
	if from == to {
		return quantity, nil
	}

	if f, ok := t.factor(from, to); ok {
		return quantity.Mul(f), nil
	}

	// One intermediate hop, first match in registration order.
	for _, e := range t.edges[from] {
		if f, ok := t.factor(e.to, to); ok {
			return quantity.Mul(e.factor).Mul(f), nil
		}
	}

	return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrNoConversionPath, from, to)
}

func (t *Table) factor(from, to Unit) (decimal.Decimal, bool) {
	for _, e := range t.edges[from] {
		if e.to == to {
			return e.factor, true
		}
	}
	return decimal.Zero, false
}

// Parse normalizes a unit symbol and checks it against the default table.
func Parse(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !Default.Supports(u) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
	return u, nil
}

// Convert converts using the default table.
func Convert(quantity decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	return Default.Convert(quantity, from, to)
}

// BaseUnit returns the base unit of u in the default table.
func BaseUnit(u Unit) (Unit, error) {
	return Default.BaseUnit(u)
}
