// Package bigfloat implements the L8 transcendental-function layer
// (spec.md §4.7): inverseRoot, AGM, log, exp, pow and the trig/
// hyperbolic reductions, for real and complex operands, via
// quadratically convergent Newton iteration with precision doubling.
//
// Float represents a real value as an exact bigint.Signed mantissa
// times 2^Scale, carrying a target bit precision that every arithmetic
// op rounds back down to. This keeps L8 downstream of L7 (bigint) per
// spec.md §2's control-flow statement that L8 calls L7 recursively —
// bigint itself never imports this package (see DESIGN.md's L7/L8
// dependency-direction decision).
package bigfloat

import (
	"math"

	"github.com/apflow/bigntt/bigint"
	"github.com/apflow/bigntt/config"
)

// Float is sign(Mantissa) * |Mantissa| * 2^Scale, rounded to at most
// Prec significant bits.
type Float struct {
	Mantissa bigint.Signed
	Scale    int
	Prec     int
}

// ZeroPrec returns the additive identity at the given precision.
func ZeroPrec(prec int) Float {
	return Float{Mantissa: bigint.Zero, Scale: 0, Prec: prec}
}

func (f Float) IsZero() bool { return f.Mantissa.IsZero() }

func (f Float) Sign() int { return f.Mantissa.Sign }

// bitLen returns the bit length of the mantissa magnitude.
func (f Float) bitLen() int { return f.Mantissa.Abs.BitLen() }

// FromInt64 builds an exact Float from a machine integer at the given
// working precision.
func FromInt64(v int64, prec int) Float {
	return Float{Mantissa: bigint.FromInt64(v), Scale: 0, Prec: prec}
}

// FromFloat64 builds a Float approximating v, used only to seed
// Newton iterations (spec.md §4.7's "double-precision initial guess").
func FromFloat64(v float64, prec int) Float {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ZeroPrec(prec)
	}
	mant, exp := math.Frexp(v) // v = mant * 2^exp, 0.5 <= |mant| < 1
	const mantBits = 53
	scaled := int64(mant * (1 << mantBits))
	return Round(Float{
		Mantissa: bigint.FromInt64(scaled),
		Scale:    exp - mantBits,
		Prec:     prec,
	}, prec)
}

// ToFloat64 returns a double-precision approximation of f, used only
// to seed Newton iterations or format debug output.
func (f Float) ToFloat64() float64 {
	if f.IsZero() {
		return 0
	}
	// Take only the top ~60 bits of the mantissa; that is already far
	// past float64's 53-bit significand.
	bl := f.bitLen()
	shift := bl - 60
	abs := f.Mantissa.Abs
	scale := f.Scale
	if shift > 0 {
		abs = bigint.ShiftRight(bigint.Signed{Sign: 1, Abs: abs}, shift).Abs
		scale += shift
	}
	v := 0.0
	for i := len(abs) - 1; i >= 0; i-- {
		v = v*4294967296.0 + float64(abs[i])
	}
	v *= math.Ldexp(1, scale)
	if f.Mantissa.Sign < 0 {
		v = -v
	}
	return v
}

// Round truncates f's mantissa to at most prec significant bits,
// rounding the dropped bits to nearest (ties away from zero), and
// folds the dropped bit count back into Scale.
func Round(f Float, prec int) Float {
	if f.IsZero() || prec <= 0 {
		f.Prec = prec
		return f
	}
	excess := f.bitLen() - prec
	if excess <= 0 {
		f.Prec = prec
		return f
	}
	roundBit := bigint.ShiftRight(bigint.Signed{Sign: 1, Abs: f.Mantissa.Abs}, excess-1)
	rounded := bigint.ShiftRight(f.Mantissa, excess)
	if len(roundBit.Abs) > 0 && roundBit.Abs[0]&1 == 1 {
		if rounded.Sign >= 0 {
			rounded = bigint.Add(rounded, bigint.One)
		} else {
			rounded = bigint.Sub(rounded, bigint.One)
		}
	}
	return Float{Mantissa: rounded, Scale: f.Scale + excess, Prec: prec}
}

// align returns a,b's mantissas shifted onto a common scale (the
// smaller of the two), without rounding.
func align(a, b Float) (ma, mb bigint.Signed, scale int) {
	switch {
	case a.Scale == b.Scale:
		return a.Mantissa, b.Mantissa, a.Scale
	case a.Scale > b.Scale:
		return bigint.ShiftLeft(a.Mantissa, a.Scale-b.Scale), b.Mantissa, b.Scale
	default:
		return a.Mantissa, bigint.ShiftLeft(b.Mantissa, b.Scale-a.Scale), a.Scale
	}
}

// Add returns a+b rounded to max(a.Prec, b.Prec).
func Add(a, b Float) Float {
	prec := a.Prec
	if b.Prec > prec {
		prec = b.Prec
	}
	ma, mb, scale := align(a, b)
	return Round(Float{Mantissa: bigint.Add(ma, mb), Scale: scale, Prec: prec}, prec)
}

// Sub returns a-b.
func Sub(a, b Float) Float { return Add(a, Neg(b)) }

// Neg returns -a.
func Neg(a Float) Float { return Float{Mantissa: bigint.Neg(a.Mantissa), Scale: a.Scale, Prec: a.Prec} }

// Mul returns a*b rounded to max(a.Prec, b.Prec).
func Mul(ctx *config.Context, a, b Float) (Float, error) {
	prec := a.Prec
	if b.Prec > prec {
		prec = b.Prec
	}
	if a.IsZero() || b.IsZero() {
		return ZeroPrec(prec), nil
	}
	m, err := bigint.Mul(ctx, a.Mantissa, b.Mantissa)
	if err != nil {
		return Float{}, err
	}
	return Round(Float{Mantissa: m, Scale: a.Scale + b.Scale, Prec: prec}, prec), nil
}

// DivInt returns a/n for a small non-zero machine divisor n, computed
// by scaling a's mantissa up by a guard band before integer-dividing
// so the quotient still carries a.Prec bits of precision.
func DivInt(a Float, n int64) Float {
	if a.IsZero() {
		return a
	}
	guard := a.Prec + 64
	scaled := bigint.ShiftLeft(a.Mantissa, guard)
	q, _, _ := bigint.Div(scaled, bigint.FromInt64(n))
	return Round(Float{Mantissa: q, Scale: a.Scale - guard, Prec: a.Prec}, a.Prec)
}

// MulInt returns f * n for a machine-sized integer n.
func MulInt(ctx *config.Context, f Float, n int64) (Float, error) {
	if f.IsZero() || n == 0 {
		return ZeroPrec(f.Prec), nil
	}
	m, err := bigint.Mul(ctx, f.Mantissa, bigint.FromInt64(n))
	if err != nil {
		return Float{}, err
	}
	return Round(Float{Mantissa: m, Scale: f.Scale, Prec: f.Prec}, f.Prec), nil
}

// Cmp orders a and b by value (-1, 0, +1).
func Cmp(a, b Float) int {
	d := Sub(a, b)
	if d.IsZero() {
		return 0
	}
	if d.Sign() < 0 {
		return -1
	}
	return 1
}

// WithPrec rounds a to a new target precision, widening (no rounding
// needed, the mantissa is already exact at the old width) or
// narrowing as requested.
func WithPrec(a Float, prec int) Float { return Round(a, prec) }

// EqualDigits returns how many leading bits a and b agree on, a proxy
// for "equalDigits" in spec.md §4.7's AGM convergence test. Returns
// a.Prec (or b.Prec, whichever is smaller) if a equals b exactly.
func EqualDigits(a, b Float) int {
	prec := a.Prec
	if b.Prec < prec {
		prec = b.Prec
	}
	d := Sub(Round(a, prec), Round(b, prec))
	if d.IsZero() {
		return prec
	}
	// agreement = bits by which the difference's exponent trails the
	// operands' exponent, capped at the target precision.
	ea := a.Scale + a.bitLen()
	ed := d.Scale + d.bitLen()
	agree := ea - ed
	if agree > prec {
		agree = prec
	}
	if agree < 0 {
		agree = 0
	}
	return agree
}
