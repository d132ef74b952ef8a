package bigfloat

import (
	"github.com/apflow/bigntt/config"
)

// Complex is Re + Im*i, each component an independently-rounded Float.
type Complex struct {
	Re, Im Float
}

// FromReal lifts a real Float to a Complex with zero imaginary part.
func FromReal(re Float) Complex { return Complex{Re: re, Im: ZeroPrec(re.Prec)} }

func (c Complex) IsZero() bool { return c.Re.IsZero() && c.Im.IsZero() }

func (c Complex) IsReal() bool { return c.Im.IsZero() }

// ToComplex128 returns a double-precision approximation, used only to
// seed Newton iterations.
func (c Complex) ToComplex128() complex128 {
	return complex(c.Re.ToFloat64(), c.Im.ToFloat64())
}

// FromComplex128 builds a Complex approximating v at the given
// precision, used only to seed Newton iterations.
func FromComplex128(v complex128, prec int) Complex {
	return Complex{Re: FromFloat64(real(v), prec), Im: FromFloat64(imag(v), prec)}
}

func AddC(a, b Complex) Complex {
	return Complex{Re: Add(a.Re, b.Re), Im: Add(a.Im, b.Im)}
}

func SubC(a, b Complex) Complex {
	return Complex{Re: Sub(a.Re, b.Re), Im: Sub(a.Im, b.Im)}
}

func NegC(a Complex) Complex {
	return Complex{Re: Neg(a.Re), Im: Neg(a.Im)}
}

func Conj(a Complex) Complex {
	return Complex{Re: a.Re, Im: Neg(a.Im)}
}

// MulC returns a*b = (ac-bd) + (ad+bc)i.
func MulC(ctx *config.Context, a, b Complex) (Complex, error) {
	ac, err := Mul(ctx, a.Re, b.Re)
	if err != nil {
		return Complex{}, err
	}
	bd, err := Mul(ctx, a.Im, b.Im)
	if err != nil {
		return Complex{}, err
	}
	ad, err := Mul(ctx, a.Re, b.Im)
	if err != nil {
		return Complex{}, err
	}
	bc, err := Mul(ctx, a.Im, b.Re)
	if err != nil {
		return Complex{}, err
	}
	return Complex{Re: Sub(ac, bd), Im: Add(ad, bc)}, nil
}

// AbsSquared returns |a|^2 = Re(a)^2 + Im(a)^2.
func AbsSquared(ctx *config.Context, a Complex) (Float, error) {
	r2, err := Mul(ctx, a.Re, a.Re)
	if err != nil {
		return Float{}, err
	}
	i2, err := Mul(ctx, a.Im, a.Im)
	if err != nil {
		return Float{}, err
	}
	return Add(r2, i2), nil
}

// DivIntC divides both components by a small machine integer.
func DivIntC(a Complex, n int64) Complex {
	return Complex{Re: DivInt(a.Re, n), Im: DivInt(a.Im, n)}
}

// ShiftLeftC returns a * 2^bits.
func ShiftLeftC(a Complex, bits int) Complex {
	return Complex{Re: ShiftLeftFloat(a.Re, bits), Im: ShiftLeftFloat(a.Im, bits)}
}

// ComplexSqrt returns z^(1/2) = z * z^(-1/2), the same reciprocal-root
// identity Sqrt uses for reals, reusing the general complex
// InverseRoot directly.
func ComplexSqrt(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	if z.IsZero() {
		return FromReal(ZeroPrec(targetPrec)), nil
	}
	inv, err := InverseRoot(ctx, z, 2, targetPrec+guardBits)
	if err != nil {
		return Complex{}, err
	}
	return MulC(ctx, roundComplex(z, targetPrec+guardBits), inv)
}

// ComplexReciprocal returns 1/z = conj(z) / |z|^2.
func ComplexReciprocal(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	m2, err := AbsSquared(ctx, z)
	if err != nil {
		return Complex{}, err
	}
	invM2, err := Reciprocal(ctx, m2, targetPrec+guardBits)
	if err != nil {
		return Complex{}, err
	}
	conj := Conj(z)
	re, err := Mul(ctx, conj.Re, invM2)
	if err != nil {
		return Complex{}, err
	}
	im, err := Mul(ctx, conj.Im, invM2)
	if err != nil {
		return Complex{}, err
	}
	return Complex{Re: Round(re, targetPrec), Im: Round(im, targetPrec)}, nil
}

// DivC returns a/b.
func DivC(ctx *config.Context, a, b Complex, targetPrec int) (Complex, error) {
	inv, err := ComplexReciprocal(ctx, b, targetPrec+guardBits)
	if err != nil {
		return Complex{}, err
	}
	p, err := MulC(ctx, roundComplex(a, targetPrec+guardBits), inv)
	if err != nil {
		return Complex{}, err
	}
	return roundComplex(p, targetPrec), nil
}

// AGMC is the complex generalization of AGM (spec.md §4.7's identity
// is stated for real s, but the same iteration and convergence test
// apply verbatim with a complex square root); used by Log to handle
// operands off the positive real axis.
func AGMC(ctx *config.Context, a, b Complex, targetPrec int) (Complex, error) {
	half := targetPrec / 2
	maxIter := 8
	for bl := targetPrec; bl > 1; bl >>= 1 {
		maxIter++
	}
	for i := 0; i < maxIter; i++ {
		if EqualDigits(a.Re, b.Re) >= half && EqualDigits(a.Im, b.Im) >= half {
			break
		}
		next := DivIntC(AddC(a, b), 2)
		prod, err := MulC(ctx, a, b)
		if err != nil {
			return Complex{}, err
		}
		root, err := ComplexSqrt(ctx, prod, targetPrec+guardBits)
		if err != nil {
			return Complex{}, err
		}
		a, b = next, root
	}
	return a, nil
}

// PowIntC raises a to a small non-negative integer power by repeated
// multiplication (n is always a small root/power degree here, never
// an arbitrary-precision exponent).
func PowIntC(ctx *config.Context, a Complex, n int) (Complex, error) {
	result := FromReal(FromInt64(1, a.Re.Prec))
	base := a
	for n > 0 {
		if n&1 == 1 {
			p, err := MulC(ctx, result, base)
			if err != nil {
				return Complex{}, err
			}
			result = p
		}
		n >>= 1
		if n > 0 {
			sq, err := MulC(ctx, base, base)
			if err != nil {
				return Complex{}, err
			}
			base = sq
		}
	}
	return result, nil
}
