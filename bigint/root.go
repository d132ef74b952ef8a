package bigint

import (
	"fmt"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// Root returns q, r with q^n + r = x and sign(r) matching sign(x)
// (spec.md §4.6). x<0 with even n fails with DOMAIN. An integer
// Newton descent produces a seed at or above the true root, and a
// final ±1 correction pass (using the binomial shortcut for n in
// {2,3} — the "powXPlus1"/"powXMinus1" case DESIGN.md records as an
// Open Question resolution) lands exactly on floor(x^(1/n)).
func Root(ctx *config.Context, x Signed, n int) (q, r Signed, err error) {
	const op = "bigint.Root"
	if n == 0 && x.IsZero() {
		return Zero, Zero, kerr.New(kerr.ZeroToZero, op, fmt.Errorf("zeroth root of zero"))
	}
	if n <= 0 {
		return Zero, Zero, kerr.New(kerr.Domain, op, fmt.Errorf("root degree must be positive, got %d", n))
	}
	if x.IsZero() {
		return Zero, Zero, nil
	}
	if x.Sign < 0 && n%2 == 0 {
		return Zero, Zero, kerr.New(kerr.Domain, op, fmt.Errorf("even root of a negative number"))
	}

	qAbs, err := integerNthRoot(ctx, x.Abs, n)
	if err != nil {
		return Zero, Zero, err
	}
	qAbs, qPow, err := correctRoot(ctx, x.Abs, qAbs, n)
	if err != nil {
		return Zero, Zero, err
	}

	rAbs := digits.Sub(x.Abs, qPow)

	qSign := 1
	if x.Sign < 0 {
		qSign = -1
	}
	return normalize(qSign, qAbs), normalize(x.Sign, rAbs), nil
}

// integerNthRoot computes a Newton-descent seed for floor(x^(1/n)): it
// converges monotonically down to at most one unit above the true
// root, which correctRoot then finishes off.
func integerNthRoot(ctx *config.Context, x digits.Nat, n int) (digits.Nat, error) {
	if n == 1 {
		return x.Clone(), nil
	}

	bitLen := x.BitLen()
	guessBits := (bitLen+n-1)/n + 1
	q := oneShiftedLeft(guessBits)

	for {
		qPowNm1, err := Pow(ctx, Signed{Sign: 1, Abs: q}, int64(n-1))
		if err != nil {
			return nil, err
		}
		if qPowNm1.IsZero() {
			break
		}
		quotient, _ := divModBits(x, qPowNm1.Abs)
		numerator := digits.Add(digits.MulSchoolbook(q, digits.FromUint64(uint64(n-1))), quotient)
		next, _ := divModBits(numerator, digits.FromUint64(uint64(n)))
		if digits.Cmp(next, q) >= 0 {
			break
		}
		q = next
	}
	return q, nil
}

// correctRoot nudges q by ±1 until q^n <= x < (q+1)^n, returning the
// corrected q and its n-th power (so Root can compute the remainder
// without an extra Pow call).
func correctRoot(ctx *config.Context, x, q digits.Nat, n int) (digits.Nat, digits.Nat, error) {
	p, err := Pow(ctx, Signed{Sign: 1, Abs: q}, int64(n))
	if err != nil {
		return nil, nil, err
	}
	qPow := p.Abs

	for digits.Cmp(qPow, x) > 0 {
		lower, err := adjacentPower(ctx, q, qPow, n, -1)
		if err != nil {
			return nil, nil, err
		}
		q = digits.Sub(q, digits.Nat{1})
		qPow = lower
	}
	for {
		qPlus := digits.Add(q, digits.Nat{1})
		higher, err := adjacentPower(ctx, q, qPow, n, 1)
		if err != nil {
			return nil, nil, err
		}
		if digits.Cmp(higher, x) > 0 {
			break
		}
		q = qPlus
		qPow = higher
	}
	return q, qPow, nil
}

// adjacentPower returns (q+delta)^n given qPow = q^n, delta in {-1,1}.
// Uses the binomial expansion directly for n in {2,3} instead of a
// fresh Pow call; falls back to Pow for every other degree.
func adjacentPower(ctx *config.Context, q, qPow digits.Nat, n, delta int) (digits.Nat, error) {
	switch n {
	case 2:
		twoQ := digits.MulSchoolbook(q, digits.Nat{2})
		if delta > 0 {
			return digits.Add(digits.Add(qPow, twoQ), digits.Nat{1}), nil
		}
		return digits.Add(digits.Sub(qPow, twoQ), digits.Nat{1}), nil
	case 3:
		q2 := digits.MulSchoolbook(q, q)
		threeQ2 := digits.MulSchoolbook(q2, digits.Nat{3})
		threeQ := digits.MulSchoolbook(q, digits.Nat{3})
		if delta > 0 {
			t := digits.Add(qPow, threeQ2)
			t = digits.Add(t, threeQ)
			return digits.Add(t, digits.Nat{1}), nil
		}
		t := digits.Sub(qPow, threeQ2)
		t = digits.Add(t, threeQ)
		return digits.Sub(t, digits.Nat{1}), nil
	default:
		base := q
		if delta > 0 {
			base = digits.Add(q, digits.Nat{1})
		} else {
			base = digits.Sub(q, digits.Nat{1})
		}
		p, err := Pow(ctx, Signed{Sign: 1, Abs: base}, int64(n))
		if err != nil {
			return nil, err
		}
		return p.Abs, nil
	}
}
