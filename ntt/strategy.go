// Package ntt implements the transform-domain half of the kernel
// (spec.md §4.2–§4.3, L2–L4): a family of forward/inverse
// Number-Theoretic Transform algorithms distinguished by access
// pattern, a factor-3 decorator that glues a length-3*2^k transform
// out of three power-of-two subtransforms, and a Builder that picks
// among them from transform length, cache size, and memory budget.
package ntt

import (
	"fmt"
	"math/bits"

	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

// Strategy is the common interface every transform algorithm
// implements (spec.md §4.2). A Strategy value is single-use and
// requires external synchronization — the state machine is flat
// (idle -> transforming -> idle) with no internal locking, matching
// spec.md §4.2's documented invariant.
type Strategy interface {
	// Transform computes the forward length-N NTT of s in place, over
	// field. N is s.Size().
	Transform(s storage.DataStorage, field modmath.Field) error
	// InverseTransform computes the inverse length-N NTT of s in
	// place, applying the 1/N normalization as the final step.
	InverseTransform(s storage.DataStorage, field modmath.Field) error
	// TransformLength returns the smallest supported length >= n.
	TransformLength(n int) int
	// MaxTransformLength bounds the lengths this strategy supports.
	MaxTransformLength() int
	// Parallel reports whether this strategy's execution shape is the
	// kind the convolution engine's shared-memory lock guards against
	// (spec.md §5): six-step and two-pass decompose a transform into
	// independent row/column sub-transforms that a parallel scheduler
	// could run concurrently over shared scratch memory, while the
	// single-pass table strategy never does.
	Parallel() bool
}

// round23up rounds n up to the nearest length of the form 2^k or
// 3*2^k (spec.md §3's "Transform length" definition).
func round23up(n int) int {
	if n <= 1 {
		return 1
	}
	pow2 := 1 << uint(bits.Len(uint(n-1)))
	// Try a 3*2^k candidate at or above n whose power-of-two part is
	// smaller than pow2, preferring it when it is.
	for k := pow2 >> 1; k >= 1; k >>= 1 {
		cand := 3 * k
		if cand >= n && cand < pow2 {
			return cand
		}
		if cand < n {
			break
		}
	}
	return pow2
}

// factorOutPowerOfTwo splits n into its power-of-two part p = n & -n
// and the remaining odd cofactor n/p, matching spec.md §4.3's
// "extracts the power-of-two part P = N & -N".
func factorOutPowerOfTwo(n int) (p, cofactor int) {
	if n == 0 {
		return 0, 0
	}
	p = n & -n
	return p, n / p
}

// hasFactorThree reports whether n's odd cofactor is (a power of) 3,
// i.e. whether n = 3*2^k for some k >= 0.
func hasFactorThree(n int) bool {
	_, cofactor := factorOutPowerOfTwo(n)
	return cofactor == 3
}

// errNotCached is returned by strategies that require O(1) random
// access when handed a disk-backed storage.
func errNotCached(op string) error {
	return fmt.Errorf("ntt: %s requires a cached storage", op)
}

// errBadLength is returned when a storage's size is not a length this
// strategy supports.
func errBadLength(op string, n int) error {
	return fmt.Errorf("ntt: %s: length %d is not a supported transform length", op, n)
}
