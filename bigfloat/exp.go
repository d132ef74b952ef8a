package bigfloat

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// overflowBound mirrors spec.md §4.7's "exp of operand exceeding
// long.MaxValue·ln B" guard, scaled down to a value still far beyond
// any realistic target precision's working range.
const overflowBound = 1e15

// Exp computes e^z (spec.md §4.7) via Newton iteration on
// w ↦ log(w) - z = 0: since d/dw log(w) = 1/w, the update collapses to
// w <- w*(1 + z - log(w)), needing one Log call per iteration. The
// double-precision seed comes from cmplx.Exp, the same role cmplx.Pow
// plays for InverseRoot's seed.
func Exp(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Exp"
	reApprox := z.Re.ToFloat64()
	if math.Abs(reApprox) > overflowBound {
		return Complex{}, kerr.New(kerr.Overflow, op, fmt.Errorf("exp argument %g out of range", reApprox))
	}
	if z.IsZero() {
		return FromReal(FromInt64(1, targetPrec)), nil
	}

	seed := cmplx.Exp(z.ToComplex128())
	w := FromComplex128(seed, 53)

	for _, prec := range precisionSchedule(53, targetPrec) {
		work := prec + guardBits
		zw := roundComplex(z, work)
		w = roundComplex(w, work)

		logW, err := Log(ctx, w, work)
		if err != nil {
			return Complex{}, kerr.New(kerr.Resource, op, err)
		}
		one := FromReal(FromInt64(1, work))
		factor := AddC(one, SubC(zw, logW))
		next, err := MulC(ctx, w, factor)
		if err != nil {
			return Complex{}, kerr.New(kerr.Resource, op, err)
		}
		w = next
	}

	return roundComplex(w, targetPrec), nil
}

// ExpReal is Exp specialized to a real argument and real result.
func ExpReal(ctx *config.Context, x Float, targetPrec int) (Float, error) {
	c, err := Exp(ctx, FromReal(x), targetPrec)
	if err != nil {
		return Float{}, err
	}
	return c.Re, nil
}
