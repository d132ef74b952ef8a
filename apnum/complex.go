package apnum

import (
	"fmt"

	"github.com/apflow/bigntt/bigfloat"
	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// Complex is a pair of Floats sharing a radix (spec.md §3).
type Complex struct {
	v bigfloat.Complex
}

// NewComplex approximates re+im*i at the given bit precision.
func NewComplex(re, im float64, prec int) Complex {
	return Complex{v: bigfloat.Complex{Re: bigfloat.FromFloat64(re, prec), Im: bigfloat.FromFloat64(im, prec)}}
}

func (a Complex) Re() Float { return Float{v: a.v.Re} }
func (a Complex) Im() Float { return Float{v: a.v.Im} }

func (a Complex) Add(b Complex) Complex { return Complex{v: bigfloat.AddC(a.v, b.v)} }
func (a Complex) Sub(b Complex) Complex { return Complex{v: bigfloat.SubC(a.v, b.v)} }

func (a Complex) Mul(ctx *config.Context, b Complex) (Complex, error) {
	v, err := bigfloat.MulC(ctx, a.v, b.v)
	if err != nil {
		return Complex{}, err
	}
	return Complex{v: v}, nil
}

func (a Complex) Div(ctx *config.Context, b Complex) (Complex, error) {
	const op = "apnum.Complex.Div"
	if b.v.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("division by zero"))
	}
	v, err := bigfloat.DivC(ctx, a.v, b.v, a.v.Re.Prec)
	if err != nil {
		return Complex{}, err
	}
	return Complex{v: v}, nil
}

// Scale returns a * 2^n, applied to both components.
func (a Complex) Scale(n int) Complex { return Complex{v: bigfloat.ShiftLeftC(a.v, n)} }

// Truncate drops both components to at most prec bits, toward zero.
func (a Complex) Truncate(prec int) Complex {
	return Complex{v: bigfloat.Complex{Re: a.Re().Truncate(prec).v, Im: a.Im().Truncate(prec).v}}
}

// Signum is 0 for the zero value and 1 otherwise: Complex has no total
// order, so this only distinguishes zero from non-zero.
func (a Complex) Signum() int {
	if a.v.IsZero() {
		return 0
	}
	return 1
}

// CompareComplex orders a and b by magnitude (|a|^2 vs |b|^2), the
// closest Complex analogue of a real compareTo.
func CompareComplex(ctx *config.Context, a, b Complex) (int, error) {
	m2a, err := bigfloat.AbsSquared(ctx, a.v)
	if err != nil {
		return 0, err
	}
	m2b, err := bigfloat.AbsSquared(ctx, b.v)
	if err != nil {
		return 0, err
	}
	return bigfloat.Cmp(m2a, m2b), nil
}

// EqualDigits returns the smaller of the two components' bit
// agreement.
func (a Complex) EqualDigits(b Complex) int {
	re := bigfloat.EqualDigits(a.v.Re, b.v.Re)
	im := bigfloat.EqualDigits(a.v.Im, b.v.Im)
	if im < re {
		return im
	}
	return re
}

func (a Complex) Precision() int { return a.v.Re.Prec }

// Radix is 2, matching Float.
func (a Complex) Radix() int { return 2 }

func (a Complex) String() string {
	im := a.Im()
	re := a.Re()
	if im.v.Sign() < 0 {
		return fmt.Sprintf("%s-%si", re.String(), negString(im))
	}
	return fmt.Sprintf("%s+%si", re.String(), im.String())
}

func negString(f Float) string {
	return Float{v: bigfloat.Neg(f.v)}.String()
}
