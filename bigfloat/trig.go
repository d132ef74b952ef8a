package bigfloat

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

// i is the imaginary unit as a Complex at the given precision.
func i(prec int) Complex {
	return Complex{Re: ZeroPrec(prec), Im: FromInt64(1, prec)}
}

func negI(prec int) Complex { return NegC(i(prec)) }

// Sin computes sin(z) = (e^{iz} - e^{-iz}) / 2i (spec.md §4.7).
func Sin(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	work := targetPrec + guardBits
	iz, err := MulC(ctx, i(work), roundComplex(z, work))
	if err != nil {
		return Complex{}, err
	}
	ePos, err := Exp(ctx, iz, work)
	if err != nil {
		return Complex{}, err
	}
	eNeg, err := Exp(ctx, NegC(iz), work)
	if err != nil {
		return Complex{}, err
	}
	num := SubC(ePos, eNeg)
	denom := ShiftLeftC(i(work), 1) // 2i
	result, err := DivC(ctx, num, denom, targetPrec)
	if err != nil {
		return Complex{}, err
	}
	return result, nil
}

// Cos computes cos(z) = (e^{iz} + e^{-iz}) / 2.
func Cos(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	work := targetPrec + guardBits
	iz, err := MulC(ctx, i(work), roundComplex(z, work))
	if err != nil {
		return Complex{}, err
	}
	ePos, err := Exp(ctx, iz, work)
	if err != nil {
		return Complex{}, err
	}
	eNeg, err := Exp(ctx, NegC(iz), work)
	if err != nil {
		return Complex{}, err
	}
	sum := AddC(ePos, eNeg)
	return roundComplex(DivIntC(sum, 2), targetPrec), nil
}

// Tan computes sin(z)/cos(z).
func Tan(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Tan"
	work := targetPrec + guardBits
	s, err := Sin(ctx, z, work)
	if err != nil {
		return Complex{}, err
	}
	c, err := Cos(ctx, z, work)
	if err != nil {
		return Complex{}, err
	}
	if c.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("tan has a pole at this argument"))
	}
	return DivC(ctx, s, c, targetPrec)
}

// Sinh computes (e^z - e^{-z}) / 2.
func Sinh(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	work := targetPrec + guardBits
	zw := roundComplex(z, work)
	ePos, err := Exp(ctx, zw, work)
	if err != nil {
		return Complex{}, err
	}
	eNeg, err := Exp(ctx, NegC(zw), work)
	if err != nil {
		return Complex{}, err
	}
	return roundComplex(DivIntC(SubC(ePos, eNeg), 2), targetPrec), nil
}

// Cosh computes (e^z + e^{-z}) / 2.
func Cosh(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	work := targetPrec + guardBits
	zw := roundComplex(z, work)
	ePos, err := Exp(ctx, zw, work)
	if err != nil {
		return Complex{}, err
	}
	eNeg, err := Exp(ctx, NegC(zw), work)
	if err != nil {
		return Complex{}, err
	}
	return roundComplex(DivIntC(AddC(ePos, eNeg), 2), targetPrec), nil
}

// Tanh computes sinh(z)/cosh(z).
func Tanh(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Tanh"
	work := targetPrec + guardBits
	s, err := Sinh(ctx, z, work)
	if err != nil {
		return Complex{}, err
	}
	c, err := Cosh(ctx, z, work)
	if err != nil {
		return Complex{}, err
	}
	if c.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("tanh has a pole at this argument"))
	}
	return DivC(ctx, s, c, targetPrec)
}

// Atan computes atan(z) = (1/2i)·log((1+iz)/(1-iz)) (spec.md §4.7).
// z = ±i is the DOMAIN failure spec.md calls out by name: z = -i makes
// the denominator vanish, and z = i makes the numerator vanish, so the
// logarithm of zero fails.
func Atan(ctx *config.Context, z Complex, targetPrec int) (Complex, error) {
	const op = "bigfloat.Atan"
	work := targetPrec + guardBits
	zw := roundComplex(z, work)
	iz, err := MulC(ctx, i(work), zw)
	if err != nil {
		return Complex{}, err
	}
	one := FromReal(FromInt64(1, work))
	numer := AddC(one, iz)
	denom := SubC(one, iz)
	if denom.IsZero() {
		return Complex{}, kerr.New(kerr.Domain, op, fmt.Errorf("atan has a pole at +-i"))
	}
	ratio, err := DivC(ctx, numer, denom, work)
	if err != nil {
		return Complex{}, err
	}
	logRatio, err := Log(ctx, ratio, work)
	if err != nil {
		return Complex{}, err
	}
	result, err := DivC(ctx, logRatio, ShiftLeftC(i(work), 1), targetPrec)
	if err != nil {
		return Complex{}, err
	}
	return result, nil
}
