package bigfloat

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// Pow computes z^w = exp(w·log z) (spec.md §4.7). z == 0 is special
// cased: 0^0 is ZERO-TO-ZERO, 0^w with Re(w) > 0 is 0, anything else
// (0 raised to a non-positive-real-part exponent) is DOMAIN.
func Pow(ctx *config.Context, z, w Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Pow"
	if z.IsZero() {
		if w.IsZero() {
			return Complex{}, kerr.New(kerr.ZeroToZero, op, fmt.Errorf("0^0 is indeterminate"))
		}
		if w.Re.Sign() > 0 {
			return FromReal(ZeroPrec(targetPrec)), nil
		}
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("0 raised to a non-positive exponent"))
	}

	work := targetPrec + guardBits
	logZ, err := Log(ctx, z, work)
	if err != nil {
		return Complex{}, err
	}
	exponent, err := MulC(ctx, roundComplex(w, work), logZ)
	if err != nil {
		return Complex{}, err
	}
	return Exp(ctx, exponent, targetPrec)
}

// PowReal is Pow specialized to real z > 0 and real w, returning a
// real result.
func PowReal(ctx *config.Context, z, w Float, targetPrec int) (Float, error) {
	c, err := Pow(ctx, FromReal(z), FromReal(w), targetPrec)
	if err != nil {
		return Float{}, err
	}
	return c.Re, nil
}
