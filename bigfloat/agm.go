package bigfloat

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// Sqrt returns sqrt(x) = x * x^(-1/2), for x > 0.
func Sqrt(ctx *config.Context, x Float, targetPrec int) (Float, error) {
	const op = "bigfloat.Sqrt"
	if x.IsZero() {
		return ZeroPrec(targetPrec), nil
	}
	if x.Sign() < 0 {
		return Float{}, kerr.New(kerr.Domain, op, fmt.Errorf("square root of a negative number"))
	}
	inv, err := InverseRootReal(ctx, x, 2, targetPrec+guardBits)
	if err != nil {
		return Float{}, err
	}
	prod, err := Mul(ctx, Round(x, targetPrec+guardBits), inv)
	if err != nil {
		return Float{}, err
	}
	return Round(prod, targetPrec), nil
}

// AGM computes the arithmetic-geometric mean of a and b (spec.md
// §4.7): iterate (a,b) <- ((a+b)/2, sqrt(a*b)), re-tightening
// precision each step, until the two agree to at least
// targetPrec/2 bits — the sequence converges quadratically so that
// threshold is reached in O(log targetPrec) steps.
func AGM(ctx *config.Context, a, b Float, targetPrec int) (Float, error) {
	const op = "bigfloat.AGM"
	if a.Sign() < 0 || b.Sign() < 0 {
		return Float{}, kerr.New(kerr.Domain, op, fmt.Errorf("AGM requires non-negative operands"))
	}
	work := targetPrec + guardBits
	a = Round(a, work)
	b = Round(b, work)
	half := targetPrec / 2

	maxIter := 8
	for bl := targetPrec; bl > 1; bl >>= 1 {
		maxIter++
	}

	for i := 0; i < maxIter; i++ {
		if EqualDigits(a, b) >= half {
			break
		}
		sum := Add(a, b)
		next := DivInt(Round(sum, work), 2)
		prod, err := Mul(ctx, a, b)
		if err != nil {
			return Float{}, err
		}
		root, err := Sqrt(ctx, Round(prod, work), work)
		if err != nil {
			return Float{}, err
		}
		a, b = next, root
	}
	return Round(a, targetPrec), nil
}
