package bigint

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/convolve"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// Pow computes x^n (spec.md §4.6): n<0 returns 0, n=0 with x=0 fails
// with ZERO-TO-ZERO, otherwise the exponent's trailing zero bits are
// stripped and the odd cofactor is raised via square-and-multiply,
// with the stripped doublings reapplied afterward as plain squarings
// (the Bernd Kellner optimization — each squaring is one
// convolve.AutoConvolute call instead of two general multiplies).
func Pow(ctx *config.Context, x Signed, n int64) (Signed, error) {
	const op = "bigint.Pow"

	if n < 0 {
		return Zero, nil
	}
	if n == 0 {
		if x.IsZero() {
			return Zero, kerr.New(kerr.ZeroToZero, op, fmt.Errorf("0^0 is indeterminate"))
		}
		return One, nil
	}
	if x.IsZero() {
		return Zero, nil
	}

	resultSign := 1
	if x.Sign < 0 && n%2 == 1 {
		resultSign = -1
	}

	k := 0
	m := n
	for m&1 == 0 {
		m >>= 1
		k++
	}

	abs, err := squareAndMultiply(ctx, x.Abs, m)
	if err != nil {
		return Zero, err
	}
	for i := 0; i < k; i++ {
		abs, err = square(ctx, abs)
		if err != nil {
			return Zero, err
		}
	}

	return normalize(resultSign, abs), nil
}

// squareAndMultiply raises base to the (necessarily odd, after Pow
// strips trailing zero bits) exponent e via the standard
// right-to-left binary method.
func squareAndMultiply(ctx *config.Context, base digits.Nat, e int64) (digits.Nat, error) {
	result := digits.Nat{1}
	b := base
	for e > 0 {
		if e&1 == 1 {
			p, err := mul(ctx, result, b)
			if err != nil {
				return nil, err
			}
			result = p
		}
		if e > 1 {
			sq, err := square(ctx, b)
			if err != nil {
				return nil, err
			}
			b = sq
		}
		e >>= 1
	}
	return result, nil
}

// mul multiplies a and b via the 3-NTT convolution engine.
func mul(ctx *config.Context, a, b digits.Nat) (digits.Nat, error) {
	if a.IsZero() || b.IsZero() {
		return nil, nil
	}
	resultSize := len(a) + len(b)
	p, err := convolve.Convolute(ctx, a, b, resultSize)
	if err != nil {
		return nil, kerr.New(kerr.Resource, "bigint.mul", err)
	}
	return p.Trim(), nil
}

// square is mul(a, a) specialized to convolve's AutoConvolute path.
func square(ctx *config.Context, a digits.Nat) (digits.Nat, error) {
	if a.IsZero() {
		return nil, nil
	}
	resultSize := 2 * len(a)
	p, err := convolve.AutoConvolute(ctx, a, resultSize)
	if err != nil {
		return nil, kerr.New(kerr.Resource, "bigint.square", err)
	}
	return p.Trim(), nil
}
