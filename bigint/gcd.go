package bigint

import (
	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// GCD returns the non-negative greatest common divisor of x and y via
// Euclid's algorithm on the integer mod operation (spec.md §4.6).
func GCD(x, y Signed) Signed {
	a, b := x.Abs.Clone(), y.Abs.Clone()
	for !b.IsZero() {
		_, r := divModBits(a, b)
		a, b = b, r
	}
	return normalize(1, a)
}

// LCM returns |x*y| / GCD(x, y); LCM(0, 0) = 0 (spec.md §4.6).
func LCM(ctx *config.Context, x, y Signed) (Signed, error) {
	const op = "bigint.LCM"
	if x.IsZero() && y.IsZero() {
		return Zero, nil
	}
	g := GCD(x, y)
	if g.IsZero() {
		return Zero, nil
	}
	prod, err := mul(ctx, x.Abs, y.Abs)
	if err != nil {
		return Zero, kerr.New(kerr.Resource, op, err)
	}
	q, _ := divModBits(prod, g.Abs)
	return normalize(1, q), nil
}
