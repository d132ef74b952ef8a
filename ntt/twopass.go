package ntt

import (
	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

// twoPassStrategy is the disk-backed variant of the six-step FNT
// (spec.md §4.2), chosen when a transform's working set exceeds the
// configured memory budget. It is identical in structure to
// sixStepStrategy but only ever touches its storage through the
// sequential Iterator contract — pass one prefetches the whole
// transform into a block buffer, the six-step math runs against that
// buffer, and pass two writes the result back sequentially.
type twoPassStrategy struct {
	maxLen int
}

// NewTwoPassStrategy returns the two-pass disk-backed FNT strategy.
func NewTwoPassStrategy(maxLen int) Strategy {
	return &twoPassStrategy{maxLen: maxLen}
}

func (t *twoPassStrategy) TransformLength(n int) int {
	p, _ := factorOutPowerOfTwo(round23up(n))
	if cand := round23up(n); cand == p {
		return cand
	}
	return p << 2
}

func (t *twoPassStrategy) MaxTransformLength() int { return t.maxLen }

func (t *twoPassStrategy) Parallel() bool { return true }

func (t *twoPassStrategy) Transform(stor storage.DataStorage, field modmath.Field) error {
	return t.run(stor, field, false)
}

func (t *twoPassStrategy) InverseTransform(stor storage.DataStorage, field modmath.Field) error {
	return t.run(stor, field, true)
}

func (t *twoPassStrategy) run(stor storage.DataStorage, field modmath.Field, inverse bool) error {
	n := stor.Size()
	if n&(n-1) != 0 {
		return errBadLength("twoPassStrategy", n)
	}

	// Pass one: block-prefetch the whole transform sequentially.
	data, err := readSeq(stor)
	if err != nil {
		return err
	}

	// Always sequential: this storage is disk-backed, excluded from
	// spec.md §5's parallel predicate regardless of worker count.
	out := computeSixStep(data, field, inverse, 1)

	// Pass two: write the result back sequentially.
	return writeSeq(stor, out)
}
