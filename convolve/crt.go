package convolve

import (
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/modmath"
)

// crtRecombine implements Carry-CRT (spec.md §4.5, L6): for each
// position i, Garner's algorithm reconstructs the integer v_i in
// [0, p0*p1*p2) congruent to r0[i] (mod p0), r1[i] (mod p1), r2[i]
// (mod p2); v_i's low digit becomes the base-DigitBase output digit at
// position i, and the rest carries into position i+1. The final
// leftover carry, if any, becomes the leading output digits.
func crtRecombine(r0, r1, r2 []uint64, resultSize int) digits.Nat {
	triple := modmath.Triple()
	p0, p1, p2 := triple[0], triple[1], triple[2]

	invP0ModP1 := p1.ModInverse(p0.P % p1.P)
	p0ModP2 := p0.P % p2.P
	p0p1ModP2 := p2.ModMultiply(p0ModP2, p1.P%p2.P)
	invP0P1ModP2 := p2.ModInverse(p0p1ModP2)

	p0Nat := digits.FromUint64(p0.P)
	p0p1Nat := digits.MulSchoolbook(digits.FromUint64(p0.P), digits.FromUint64(p1.P))

	n := len(r0)
	out := make(digits.Nat, 0, n+4)
	var carry digits.Nat

	for i := 0; i < n; i++ {
		x0 := r0[i]
		x1 := p1.ModMultiply(p1.ModSubtract(r1[i], x0%p1.P), invP0ModP1)

		t2 := p2.ModSubtract(r2[i], x0%p2.P)
		t2 = p2.ModSubtract(t2, p2.ModMultiply(x1, p0ModP2))
		x2 := p2.ModMultiply(t2, invP0P1ModP2)

		v := digits.Add(digits.FromUint64(x0), digits.MulSchoolbook(digits.FromUint64(x1), p0Nat))
		v = digits.Add(v, digits.MulSchoolbook(digits.FromUint64(x2), p0p1Nat))
		v = digits.Add(v, carry)

		var lowDigit uint32
		if len(v) > 0 {
			lowDigit = v[0]
		}
		if len(v) > 1 {
			carry = v[1:].Clone()
		} else {
			carry = nil
		}
		out = append(out, lowDigit)
	}

	for !carry.IsZero() {
		out = append(out, carry[0])
		carry = carry[1:]
	}
	out = out.Trim()

	return fitTo(out, resultSize)
}

// fitTo pads out with high-order zero digits to reach resultSize, or
// (when a caller deliberately requests fewer digits than the exact
// product — a working-precision mantissa truncation, never an exact
// integer multiply) keeps its resultSize most-significant digits.
func fitTo(out digits.Nat, resultSize int) digits.Nat {
	if resultSize < 0 {
		return out
	}
	if len(out) == resultSize {
		return out
	}
	if len(out) > resultSize {
		return out[len(out)-resultSize:].Clone()
	}
	padded := make(digits.Nat, resultSize)
	copy(padded, out)
	return padded
}
