// Package pgnum converts between Postgres numerics and decimals.
package pgnum

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	ErrNull      = errors.New("numeric is NULL")
	ErrNotFinite = errors.New("numeric is not a finite number")
)

// Decimal returns the exact value of n. NULL, NaN and infinities are errors.
func Decimal(n pgtype.Numeric) (decimal.Decimal, error) {
	switch {
	case !n.Valid:
		return decimal.Zero, ErrNull
	case n.NaN || n.InfinityModifier != pgtype.Finite:
		return decimal.Zero, ErrNotFinite
	case n.Int == nil:
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// ToDecimal is Decimal for display paths: anything Decimal rejects reads as
// zero. Use Decimal where the value feeds a calculation.
func ToDecimal(n pgtype.Numeric) decimal.Decimal {
	d, err := Decimal(n)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Money encodes d rounded to cents.
func Money(d decimal.Decimal) pgtype.Numeric {
	return encode(d.Round(2))
}

// Quantity encodes d at full precision.
func Quantity(d decimal.Decimal) pgtype.Numeric {
	return encode(d)
}

// encode builds the numeric from coefficient and exponent, so it cannot fail.
func encode(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// MoneyString formats n as a fixed two-decimal string.
func MoneyString(n pgtype.Numeric) string {
	return ToDecimal(n).StringFixed(2)
}
