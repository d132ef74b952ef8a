package bigint

import (
	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// Add returns x+y. Magnitudes are combined by schoolbook add/sub
// (not convolve) since addition never benefits from an NTT pass.
func Add(x, y Signed) Signed {
	if x.Sign == 0 {
		return y
	}
	if y.Sign == 0 {
		return x
	}
	if x.Sign == y.Sign {
		return normalize(x.Sign, digits.Add(x.Abs, y.Abs))
	}
	// Opposite signs: subtract the smaller magnitude from the larger,
	// keeping the sign of whichever operand is larger in magnitude.
	switch digits.Cmp(x.Abs, y.Abs) {
	case 0:
		return Zero
	case 1:
		return normalize(x.Sign, digits.Sub(x.Abs, y.Abs))
	default:
		return normalize(y.Sign, digits.Sub(y.Abs, x.Abs))
	}
}

// Sub returns x-y.
func Sub(x, y Signed) Signed {
	return Add(x, Neg(y))
}

// Neg returns -x.
func Neg(x Signed) Signed {
	if x.Sign == 0 {
		return Zero
	}
	return Signed{Sign: -x.Sign, Abs: x.Abs}
}

// Mul returns x*y via the 3-NTT convolution engine (bigint.mul,
// exported for bigfloat's mantissa arithmetic).
func Mul(ctx *config.Context, x, y Signed) (Signed, error) {
	const op = "bigint.Mul"
	if x.IsZero() || y.IsZero() {
		return Zero, nil
	}
	abs, err := mul(ctx, x.Abs, y.Abs)
	if err != nil {
		return Zero, kerr.New(kerr.Resource, op, err)
	}
	return normalize(x.Sign*y.Sign, abs), nil
}

// ShiftLeft returns x * 2^bits (bits >= 0).
func ShiftLeft(x Signed, bits int) Signed {
	if x.IsZero() || bits == 0 {
		return x
	}
	abs := x.Abs.Clone()
	words := bits / 32
	rem := uint(bits % 32)
	if words > 0 {
		abs = digits.ShiftLeftWords(abs, words)
	}
	if rem > 0 {
		abs = shiftLeftBits(abs, rem)
	}
	return normalize(x.Sign, abs)
}

// ShiftRight returns x / 2^bits truncated toward zero: the magnitude is
// shifted right and the sign kept (bits >= 0).
func ShiftRight(x Signed, bits int) Signed {
	if x.IsZero() || bits == 0 {
		return x
	}
	abs := x.Abs
	words := bits / 32
	rem := uint(bits % 32)
	if words >= len(abs) {
		return Zero
	}
	if words > 0 {
		abs = abs[words:]
	}
	if rem > 0 {
		abs = shiftRightBitsNat(abs, rem)
	}
	return normalize(x.Sign, abs.Trim())
}

func shiftLeftBits(a digits.Nat, n uint) digits.Nat {
	out := make(digits.Nat, len(a)+1)
	var carry uint32
	for i, w := range a {
		out[i] = w<<n | carry
		carry = w >> (32 - n)
	}
	out[len(a)] = carry
	return out.Trim()
}

func shiftRightBitsNat(a digits.Nat, n uint) digits.Nat {
	out := make(digits.Nat, len(a))
	var carry uint32
	for i := len(a) - 1; i >= 0; i-- {
		out[i] = a[i]>>n | carry
		carry = a[i] << (32 - n)
	}
	return out
}
