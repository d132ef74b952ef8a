package bigfloat

import (
	"fmt"
	"math/cmplx"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

const guardBits = 32

func roundComplex(c Complex, prec int) Complex {
	return Complex{Re: Round(c.Re, prec), Im: Round(c.Im, prec)}
}

// InverseRoot returns z^(-1/n) to targetPrec bits of precision
// (spec.md §4.7). Domain fails on z == 0 or n <= 0.
//
// The double-precision seed is computed via cmplx.Pow, whose internal
// polar (modulus/phase) decomposition already handles the three
// overflow-prone regimes spec.md describes by name (|Re| >> |Im|,
// |Im| >> |Re|, comparable) — math/cmplx's Abs/Phase use math.Hypot
// for exactly this reason, so there is no separate case analysis to
// hand-roll on top of it.
func InverseRoot(ctx *config.Context, z Complex, n int, targetPrec int) (Complex, error) {
	const op = "bigfloat.InverseRoot"
	if n <= 0 {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("root degree must be positive, got %d", n))
	}
	if z.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("inverse root of zero"))
	}

	seed := cmplx.Pow(z.ToComplex128(), complex(-1/float64(n), 0))
	r := FromComplex128(seed, 53)

	for _, prec := range precisionSchedule(53, targetPrec) {
		work := prec + guardBits
		zw := roundComplex(z, work)
		r = roundComplex(r, work)

		rn, err := PowIntC(ctx, r, n)
		if err != nil {
			return Complex{}, kerr.New(kerr.Resource, op, err)
		}
		zrn, err := MulC(ctx, zw, rn)
		if err != nil {
			return Complex{}, kerr.New(kerr.Resource, op, err)
		}
		one := FromReal(FromInt64(1, work))
		residual := SubC(one, zrn)
		step, err := MulC(ctx, r, residual)
		if err != nil {
			return Complex{}, kerr.New(kerr.Resource, op, err)
		}
		step = DivIntC(step, int64(n))
		r = AddC(r, step)
	}

	return roundComplex(r, targetPrec), nil
}

// InverseRootReal is InverseRoot specialized to a real operand and
// real result (spec.md §4.7's real-valued inverseRoot entry point).
// Callers on the negative real axis with even n get a DOMAIN error,
// matching Root's convention in bigint.
func InverseRootReal(ctx *config.Context, x Float, n int, targetPrec int) (Float, error) {
	const op = "bigfloat.InverseRootReal"
	if x.Sign() < 0 && n%2 == 0 {
		return Float{}, kerr.New(kerr.Domain, op, fmt.Errorf("even inverse root of a negative number"))
	}
	c, err := InverseRoot(ctx, FromReal(x), n, targetPrec)
	if err != nil {
		return Float{}, err
	}
	return c.Re, nil
}
