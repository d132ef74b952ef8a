package bigfloat

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// Ln2 computes log(2) to targetPrec bits. It bootstraps off the same
// AGM identity Log uses, specialized to x=2: the "corrected by N log
// B" term in spec.md §4.7 is itself N*log(2) when B=2 and the operand
// being logged is 2, so log(2)*(1+N) = π/(2·AGM(1,4/s)) and log(2)
// falls out without ever needing a separately-known ln2.
func Ln2(ctx *config.Context, targetPrec int) (Float, error) {
	work := targetPrec + guardBits
	n := targetPrec/2 + 8

	one := FromInt64(1, work)
	fourOverS := ShiftLeftFloat(one, 1-n) // 4 / 2^(n+1)

	agmVal, err := AGM(ctx, one, fourOverS, work)
	if err != nil {
		return Float{}, err
	}
	pi, err := Pi(ctx, work)
	if err != nil {
		return Float{}, err
	}
	a, err := divFloat(ctx, pi, ShiftLeftFloat(agmVal, 1), work)
	if err != nil {
		return Float{}, err
	}
	return divFloat(ctx, a, FromInt64(int64(1+n), work), targetPrec)
}

// Log computes the principal natural logarithm of z (spec.md §4.7),
// via the Gauss/Borwein AGM identity log(z) ≈ π/(2·AGM(1,4/s)) with
// s = z·2^N scaled large enough for AGM convergence, corrected by
// N·log(2). For z with Re(z) < 0, a ±πi bias (sign matching Im(z)'s
// sign) places the result on the correct side of the branch cut
// instead of the one the bare identity would pick.
//
// DOMAIN fails on z == 0 (log of zero).
func Log(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Log"
	if z.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("log of zero"))
	}

	work := targetPrec + guardBits

	m2, err := AbsSquared(ctx, roundComplex(z, 64))
	if err != nil {
		return Complex{}, err
	}
	approxLog2Abs := (m2.Scale + m2.bitLen()) / 2
	n := targetPrec/2 - approxLog2Abs + 16
	if n < 0 {
		n = 0
	}

	s := ShiftLeftC(z, n)
	sInv, err := ComplexReciprocal(ctx, s, work)
	if err != nil {
		return Complex{}, err
	}
	fourOverS := ShiftLeftC(sInv, 2)

	agmVal, err := AGMC(ctx, FromReal(FromInt64(1, work)), fourOverS, work)
	if err != nil {
		return Complex{}, err
	}
	pi, err := Pi(ctx, work)
	if err != nil {
		return Complex{}, err
	}
	a, err := DivC(ctx, FromReal(pi), ShiftLeftC(agmVal, 1), work)
	if err != nil {
		return Complex{}, err
	}

	ln2, err := Ln2(ctx, work)
	if err != nil {
		return Complex{}, err
	}
	correction, err := MulInt(ctx, ln2, int64(n))
	if err != nil {
		return Complex{}, err
	}
	result := SubC(a, FromReal(correction))

	if z.Re.Sign() < 0 {
		pi2, err := Pi(ctx, targetPrec)
		if err != nil {
			return Complex{}, err
		}
		if z.Im.Sign() >= 0 {
			result.Im = Add(result.Im, pi2)
		} else {
			result.Im = Sub(result.Im, pi2)
		}
	}

	return roundComplex(result, targetPrec), nil
}

// LogReal is Log specialized to a positive real operand.
func LogReal(ctx *config.Context, x Float, targetPrec int) (Float, error) {
	c, err := Log(ctx, FromReal(x), targetPrec)
	if err != nil {
		return Float{}, err
	}
	return c.Re, nil
}
