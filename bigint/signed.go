// Package bigint implements the integer operations of spec.md §4.6
// (L7): pow, root-with-remainder, div, gcd, lcm, and modPow, all built
// on digits.Nat magnitudes and convolve's fast multiplication rather
// than a borrowed big-integer library (see DESIGN.md — the point of
// the lower layers is to *be* the multiplication primitive these
// operations call).
package bigint

import "github.com/apflow/bigntt/digits"

// Signed pairs a sign with an unsigned magnitude, the minimal
// representation these operations need: spec.md §3's digit-sequence
// number's sign/digits split, without Float's added scale/precision
// tracking (that lives in bigfloat/apnum).
type Signed struct {
	Sign int // -1, 0, or +1; always 0 when Abs represents zero.
	Abs  digits.Nat
}

// Zero is the canonical zero value.
var Zero = Signed{}

// One is the canonical positive unit.
var One = Signed{Sign: 1, Abs: digits.Nat{1}}

// IsZero reports whether s represents zero.
func (s Signed) IsZero() bool { return s.Sign == 0 || s.Abs.IsZero() }

// FromInt64 builds a Signed from a machine integer.
func FromInt64(v int64) Signed {
	if v == 0 {
		return Zero
	}
	sign := 1
	u := uint64(v)
	if v < 0 {
		sign = -1
		u = uint64(-v)
	}
	return Signed{Sign: sign, Abs: digits.FromUint64(u)}
}

// normalize clears Sign when Abs trims down to zero, the invariant
// every constructor below must restore before returning.
func normalize(sign int, abs digits.Nat) Signed {
	abs = abs.Trim()
	if len(abs) == 0 {
		return Zero
	}
	return Signed{Sign: sign, Abs: abs}
}

// New builds a Signed from an explicit sign and magnitude, exported
// for packages above bigint (bigfloat, apnum) that need to assemble a
// Signed from a magnitude they computed directly (e.g. a schoolbook
// product too small to be worth routing through convolve).
func New(sign int, abs digits.Nat) Signed { return normalize(sign, abs) }

// Cmp compares two Signed values as -1, 0, +1.
func Cmp(a, b Signed) int {
	if a.Sign != b.Sign {
		if a.Sign < b.Sign {
			return -1
		}
		return 1
	}
	c := digits.Cmp(a.Abs, b.Abs)
	if a.Sign < 0 {
		return -c
	}
	return c
}
