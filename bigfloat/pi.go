package bigfloat

import (
	"github.com/apflow/bigntt/config"
)

// ShiftLeftFloat returns f * 2^bits (bits may be negative).
func ShiftLeftFloat(f Float, bits int) Float {
	f.Scale += bits
	return f
}

// Reciprocal returns 1/x via InverseRoot with degree 1 (Newton's
// method collapses to the ordinary reciprocal iteration in that case).
func Reciprocal(ctx *config.Context, x Float, targetPrec int) (Float, error) {
	c, err := InverseRoot(ctx, FromReal(Round(x, targetPrec+guardBits)), 1, targetPrec)
	if err != nil {
		return Float{}, err
	}
	return c.Re, nil
}

// divFloat returns a/b to targetPrec bits.
func divFloat(ctx *config.Context, a, b Float, targetPrec int) (Float, error) {
	inv, err := Reciprocal(ctx, b, targetPrec+guardBits)
	if err != nil {
		return Float{}, err
	}
	prod, err := Mul(ctx, Round(a, targetPrec+guardBits), inv)
	if err != nil {
		return Float{}, err
	}
	return Round(prod, targetPrec), nil
}

// Pi computes π to targetPrec bits via the Gauss-Salamin-Brent AGM
// algorithm: a0=1, b0=1/sqrt2, t0=1/4, p0=1; iterate
// a,b,t,p <- (a+b)/2, sqrt(ab), t-p(a-a')^2, 2p; π ≈ (a+b)^2/4t. p is
// always a power of two, so it is tracked as a left-shift count rather
// than as its own Float.
func Pi(ctx *config.Context, targetPrec int) (Float, error) {
	work := targetPrec + guardBits

	one := FromInt64(1, work)
	two := FromInt64(2, work)
	invSqrt2, err := InverseRootReal(ctx, two, 2, work)
	if err != nil {
		return Float{}, err
	}

	a := one
	b := invSqrt2
	t := DivInt(one, 4)
	pShift := 0

	iterations := 8
	for bl := targetPrec; bl > 1; bl >>= 1 {
		iterations++
	}

	for i := 0; i < iterations; i++ {
		if i > 0 && EqualDigits(a, b) >= targetPrec {
			break
		}
		aNext := DivInt(Add(a, b), 2)
		prod, err := Mul(ctx, a, b)
		if err != nil {
			return Float{}, err
		}
		bNext, err := Sqrt(ctx, prod, work)
		if err != nil {
			return Float{}, err
		}
		diff := Sub(a, aNext)
		diff2, err := Mul(ctx, diff, diff)
		if err != nil {
			return Float{}, err
		}
		t = Sub(t, ShiftLeftFloat(diff2, pShift))
		a, b = aNext, bNext
		pShift++
	}

	apb := Add(a, b)
	apb2, err := Mul(ctx, apb, apb)
	if err != nil {
		return Float{}, err
	}
	fourT := ShiftLeftFloat(t, 2)

	return divFloat(ctx, apb2, fourT, targetPrec)
}
