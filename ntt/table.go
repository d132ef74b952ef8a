package ntt

import (
	"math/bits"

	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

// tableStrategy is the in-cache FNT (spec.md §4.2): a standard
// decimation-in-time radix-2 Cooley-Tukey transform with a
// precomputed w-table, used when the transform plus w-table fits in
// half the L1 cache. Grounded on gpu.BatchNTT.ForwardSingle/
// InverseSingle's bit-reversal-then-butterfly shape.
type tableStrategy struct {
	maxLen int
}

// NewTableStrategy returns the in-cache table FNT strategy, supporting
// power-of-two lengths up to maxLen.
func NewTableStrategy(maxLen int) Strategy {
	return &tableStrategy{maxLen: maxLen}
}

func (t *tableStrategy) TransformLength(n int) int {
	p, _ := factorOutPowerOfTwo(round23up(n))
	if cand := round23up(n); cand == p {
		return cand
	}
	return p << 2
}

func (t *tableStrategy) MaxTransformLength() int { return t.maxLen }

func (t *tableStrategy) Parallel() bool { return false }

func (t *tableStrategy) Transform(s storage.DataStorage, field modmath.Field) error {
	return t.run(s, field, false)
}

func (t *tableStrategy) InverseTransform(s storage.DataStorage, field modmath.Field) error {
	return t.run(s, field, true)
}

func (t *tableStrategy) run(s storage.DataStorage, field modmath.Field, inverse bool) error {
	n := s.Size()
	if n&(n-1) != 0 {
		return errBadLength("tableStrategy", n)
	}
	if !s.IsCached() {
		return errNotCached("tableStrategy")
	}
	data, ok := readAll(s)
	if !ok {
		return errNotCached("tableStrategy")
	}

	var root uint64
	if inverse {
		root = field.GetInverseNthRoot(uint64(n))
	} else {
		root = field.GetForwardNthRoot(uint64(n))
	}
	transformSlice(data, field, root)

	if inverse {
		nInv := field.ModInverse(uint64(n))
		for i := range data {
			data[i] = field.ModMultiply(data[i], nInv)
		}
	}

	if !writeAll(s, data) {
		return errNotCached("tableStrategy")
	}
	return nil
}

// bitReversePermute permutes a in place so a[i] and a[reverse(i)] are
// swapped, the standard precondition for an iterative Cooley-Tukey
// butterfly pass.
func bitReversePermute(a []uint64) {
	n := uint(len(a))
	if n == 0 {
		return
	}
	logN := bits.TrailingZeros(n)
	for i := uint(0); i < n; i++ {
		j := bits.Reverse(i) >> (bits.UintSize - logN)
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}
