package bigint

import "github.com/apflow/bigntt/digits"

// bitAt reports bit i of n (0-indexed from the least significant bit).
func bitAt(n digits.Nat, i int) bool {
	word := i / 32
	if word >= len(n) {
		return false
	}
	return (n[word]>>uint(i%32))&1 == 1
}

// setBit returns n with bit i set, growing n if needed.
func setBit(n digits.Nat, i int) digits.Nat {
	word := i / 32
	if word >= len(n) {
		grown := make(digits.Nat, word+1)
		copy(grown, n)
		n = grown
	}
	n[word] |= 1 << uint(i%32)
	return n
}

// shiftLeftOneBit returns n<<1.
func shiftLeftOneBit(n digits.Nat) digits.Nat {
	if n.IsZero() {
		return nil
	}
	out := make(digits.Nat, len(n)+1)
	var carry uint32
	for i, w := range n {
		out[i] = (w << 1) | carry
		carry = w >> 31
	}
	out[len(n)] = carry
	return out.Trim()
}

// shiftRightOneBit returns n>>1.
func shiftRightOneBit(n digits.Nat) digits.Nat {
	out := make(digits.Nat, len(n))
	var carry uint32
	for i := len(n) - 1; i >= 0; i-- {
		out[i] = (n[i] >> 1) | (carry << 31)
		carry = n[i] & 1
	}
	return out.Trim()
}

// oneShiftedLeft returns 2^k as a Nat.
func oneShiftedLeft(k int) digits.Nat {
	return setBit(nil, k)
}

// divModBits performs long division of dividend by divisor using the
// textbook shift-and-subtract algorithm at the bit level (grounded on
// other_examples/b1e7c18b_bford-go__src-math-big-nat.go.go's div's
// estimate-multiply-correct shape, simplified to bit granularity so it
// needs nothing beyond digits.Add/Sub/Cmp — no floating-point seed, no
// upward dependency on bigfloat; see DESIGN.md). Panics on division by
// zero, matching digits.Sub's panic-on-precondition-violation style.
func divModBits(dividend, divisor digits.Nat) (q, r digits.Nat) {
	divisor = divisor.Trim()
	if divisor.IsZero() {
		panic("bigint: division by zero")
	}
	dividend = dividend.Trim()
	n := dividend.BitLen()
	for i := n - 1; i >= 0; i-- {
		r = shiftLeftOneBit(r)
		if bitAt(dividend, i) {
			r = setBit(r, 0)
		}
		if digits.Cmp(r, divisor) >= 0 {
			r = digits.Sub(r, divisor)
			q = setBit(q, i)
		}
	}
	return q.Trim(), r.Trim()
}
