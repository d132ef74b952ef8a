package bigint

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// ModPow computes a^b mod m (spec.md §4.6). b<0 is rejected — a
// negative exponent would require factoring m to invert a, which this
// module does not attempt. Square-and-multiply reduces modulo m after
// every multiply; DESIGN.md records the decision to skip the
// precomputed-reciprocal ("Barrett") optimization spec.md describes,
// since bigint's Div is already a plain long division rather than a
// floating-seeded one with a redivide cost to amortize.
func ModPow(ctx *config.Context, a, b, m Signed) (Signed, error) {
	const op = "bigint.ModPow"
	if b.Sign < 0 {
		return Zero, kerr.New(kerr.Domain, op, fmt.Errorf("negative exponent cannot be factored against the modulus"))
	}
	if m.IsZero() {
		return Zero, kerr.New(kerr.Domain, op, fmt.Errorf("modulus must be non-zero"))
	}

	mAbs := m.Abs.Trim()
	_, aAbs := divModBits(a.Abs, mAbs)
	if a.Sign < 0 && !aAbs.IsZero() {
		aAbs = digits.Sub(mAbs, aAbs)
	}

	if b.IsZero() {
		one := digits.Nat{1}
		_, r := divModBits(one, mAbs)
		return normalize(1, r), nil
	}

	result := digits.Nat{1}
	base := aAbs
	e := b.Abs.Clone()
	for !e.IsZero() {
		if bitAt(e, 0) {
			p, err := modMultiply(ctx, result, base, mAbs)
			if err != nil {
				return Zero, err
			}
			result = p
		}
		sq, err := modMultiply(ctx, base, base, mAbs)
		if err != nil {
			return Zero, err
		}
		base = sq
		e = shiftRightOneBit(e)
	}

	return normalize(1, result), nil
}

// modMultiply computes (a*b) mod m via convolve's fast multiply
// followed by a reduction.
func modMultiply(ctx *config.Context, a, b, m digits.Nat) (digits.Nat, error) {
	p, err := mul(ctx, a, b)
	if err != nil {
		return nil, err
	}
	_, r := divModBits(p, m)
	return r, nil
}
