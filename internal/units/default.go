package units

import "github.com/shopspring/decimal"

// Default is the static table used by the cost calculator.
var Default = newDefaultTable()

var defaultFactors = []struct {
	from, to Unit
	factor   string
}{
	{Kilogram, Gram, "1000"},
	{Kilogram, Pound, "2.20462"},
	{Kilogram, Ounce, "35.274"},
	{Gram, Kilogram, "0.001"},
	{Gram, Pound, "0.00220462"},
	{Gram, Ounce, "0.035274"},
	{Pound, Kilogram, "0.453592"},
	{Pound, Gram, "453.592"},
	{Pound, Ounce, "16"},
	{Ounce, Kilogram, "0.0283495"},
	{Ounce, Gram, "28.3495"},
	{Ounce, Pound, "0.0625"},
	{Liter, Milliliter, "1000"},
	{Liter, Gallon, "0.264172"},
	{Milliliter, Liter, "0.001"},
	{Milliliter, Gallon, "0.000264172"},
	{Gallon, Liter, "3.78541"},
	{Gallon, Milliliter, "3785.41"},
	{Piece, Piece, "1"},
}

func newDefaultTable() *Table {
	t := NewTable()
	for _, u := range []Unit{Gram, Kilogram, Pound, Ounce} {
		t.AddUnit(u, Mass)
	}
	for _, u := range []Unit{Milliliter, Liter, Gallon} {
		t.AddUnit(u, Volume)
	}
	t.AddUnit(Piece, Count)

	for _, f := range defaultFactors {
		if err := t.AddFactor(f.from, f.to, decimal.RequireFromString(f.factor)); err != nil {
			panic(err)
		}
	}
	return t
}
