// Package convolve implements the 3-NTT convolution engine and its
// Carry-CRT recombination (spec.md §4.4–§4.5, L5/L6): the hot path
// every large multiplication in this module ultimately calls. Three
// parallel NTT-domain convolutions over modmath.Triple()'s primes are
// pointwise-multiplied and inverse-transformed, then Garner's
// algorithm lifts the three residue streams back into a single
// base-DigitBase digit sequence with carry propagation.
package convolve

import (
	"fmt"
	"math"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/ntt"
	"github.com/apflow/bigntt/storage"
)

// DigitBase is the radix this package convolves at: one digits.Nat
// word, spec.md §3's typical "binary-backed" choice of B=2^32.
const DigitBase = 1 << 32

const wordSize = 8 // bytes per transform-domain residue (spec.md §5).

// Convolute computes the length-resultSize digit convolution of x and
// y (spec.md §4.4). Callers that know x and y are the same value
// should call AutoConvolute directly for the squaring specialization;
// Convolute itself does not attempt to detect aliasing between two
// independently-constructed digits.Nat values (see DESIGN.md).
func Convolute(ctx *config.Context, x, y digits.Nat, resultSize int) (digits.Nat, error) {
	return run(ctx, x, y, resultSize, false)
}

// AutoConvolute is the x=y specialization (spec.md §4.4): one forward
// transform and one in-place squaring per modulus, instead of two
// forward transforms and a pointwise multiply.
func AutoConvolute(ctx *config.Context, x digits.Nat, resultSize int) (digits.Nat, error) {
	return run(ctx, x, x, resultSize, true)
}

func run(ctx *config.Context, x, y digits.Nat, resultSize int, auto bool) (digits.Nat, error) {
	const op = "convolve.Convolute"

	n := len(x) + len(y)
	if n == 0 {
		return make(digits.Nat, resultSize), nil
	}

	strat := ntt.NewBuilder(ctx, n)
	transformLen := strat.TransformLength(n)

	if err := checkExactness(transformLen); err != nil {
		return nil, kerr.New(kerr.Resource, op, err)
	}

	locked := false
	if strat.Parallel() && int64(transformLen)*wordSize > ctx.SharedMemoryThreshold {
		ctx.SharedMemoryLock.Lock()
		locked = true
		defer func() {
			if locked {
				ctx.SharedMemoryLock.Unlock()
			}
		}()
	}

	builder := ctx.Builders.Builder(storage.Int32)
	triple := modmath.Triple()
	residues := [3][]uint64{}

	for m, field := range triple {
		xs := builder.CreateCachedDataStorage(transformLen)
		if !writeDigits(xs, x, field) {
			return nil, kerr.New(kerr.Resource, op, fmt.Errorf("convolve: modulus %d scratch storage is not cached", m))
		}
		if err := strat.Transform(xs, field); err != nil {
			return nil, kerr.New(kerr.Resource, op, err)
		}

		if auto {
			if err := squareInPlace(xs, field); err != nil {
				return nil, kerr.New(kerr.Resource, op, err)
			}
		} else {
			ys := builder.CreateCachedDataStorage(transformLen)
			if !writeDigits(ys, y, field) {
				return nil, kerr.New(kerr.Resource, op, fmt.Errorf("convolve: modulus %d scratch storage is not cached", m))
			}
			if err := strat.Transform(ys, field); err != nil {
				return nil, kerr.New(kerr.Resource, op, err)
			}
			if err := pointwiseMultiply(xs, ys, field); err != nil {
				return nil, kerr.New(kerr.Resource, op, err)
			}
		}

		if err := strat.InverseTransform(xs, field); err != nil {
			return nil, kerr.New(kerr.Resource, op, err)
		}

		r := make([]uint64, transformLen)
		for i := 0; i < transformLen; i++ {
			v, ok := storage.At(xs, i)
			if !ok {
				return nil, kerr.New(kerr.Resource, op, fmt.Errorf("convolve: modulus %d result storage is not cached", m))
			}
			r[i] = v
		}
		residues[m] = r
	}

	if locked {
		ctx.SharedMemoryLock.Unlock()
		locked = false
	}

	return crtRecombine(residues[0], residues[1], residues[2], resultSize), nil
}

// checkExactness verifies spec.md §4.5's invariant p0*p1*p2 >
// N*(B-1)^2 for the given transform length N, using a float64
// magnitude comparison (both sides comfortably exceed uint64 range for
// large N, and only the order of magnitude matters for this guard).
func checkExactness(transformLen int) error {
	triple := modmath.Triple()
	modulusProduct := float64(triple[0].P) * float64(triple[1].P) * float64(triple[2].P)
	bound := float64(transformLen) * math.Pow(DigitBase-1, 2)
	if bound >= modulusProduct {
		return fmt.Errorf("convolve: transform length %d exceeds the exact range of the NTT prime triple", transformLen)
	}
	return nil
}

// writeDigits copies nat's digits into s, reduced mod field.P, zero
// padded to s.Size(). Reports false if s is not a cached storage (the
// only kind Convolute ever allocates).
func writeDigits(s storage.DataStorage, nat digits.Nat, field modmath.Field) bool {
	n := s.Size()
	for i := 0; i < n; i++ {
		var v uint64
		if i < len(nat) {
			v = uint64(nat[i]) % field.P
		}
		if !storage.SetAt(s, i, v) {
			return false
		}
	}
	return true
}

// pointwiseMultiply multiplies xs by ys element-wise in place, the
// frequency-domain step between the two forward transforms and the
// inverse transform (spec.md §4.4 step 3).
func pointwiseMultiply(xs, ys storage.DataStorage, field modmath.Field) error {
	n := xs.Size()
	for i := 0; i < n; i++ {
		a, ok := storage.At(xs, i)
		if !ok {
			return fmt.Errorf("convolve: pointwise multiply requires cached storage")
		}
		b, ok := storage.At(ys, i)
		if !ok {
			return fmt.Errorf("convolve: pointwise multiply requires cached storage")
		}
		storage.SetAt(xs, i, field.ModMultiply(a, b))
	}
	return nil
}

// squareInPlace is pointwiseMultiply(xs, xs) specialized for
// AutoConvolute, avoiding a second read pass.
func squareInPlace(xs storage.DataStorage, field modmath.Field) error {
	n := xs.Size()
	for i := 0; i < n; i++ {
		a, ok := storage.At(xs, i)
		if !ok {
			return fmt.Errorf("convolve: square requires cached storage")
		}
		storage.SetAt(xs, i, field.ModMultiply(a, a))
	}
	return nil
}
