package ntt

import (
	"math"
	"runtime"

	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

// sixStepStrategy is Bailey's cache-oblivious six-step FNT (spec.md
// §4.2): it views length N = rows*cols as a matrix and alternates
// transposes with row/column sub-transforms so each pass's working set
// stays cache resident even though N itself does not fit in cache.
// Chosen when N fits in main memory but not in L1 (spec.md §4.3).
//
// Its column and row sub-transforms (steps 2 and 5) are independent of
// each other, so they dispatch across workers goroutines when the
// storage backing them is cached (spec.md §5's parallel predicate) —
// mirroring gpu.BatchNTT.Forward/Inverse's WaitGroup fan-out, bounded
// instead of one-goroutine-per-item since cols/rows can exceed core
// count by orders of magnitude.
type sixStepStrategy struct {
	maxLen  int
	workers int
}

// NewSixStepStrategy returns the six-step out-of-cache FNT strategy,
// parallelized across up to runtime.GOMAXPROCS(0) workers.
func NewSixStepStrategy(maxLen int) Strategy {
	return NewSixStepStrategyWithWorkers(maxLen, runtime.GOMAXPROCS(0))
}

// NewSixStepStrategyWithWorkers returns the six-step strategy bounded
// to the given worker count (spec.md §6.2's numberOfProcessors).
func NewSixStepStrategyWithWorkers(maxLen, workers int) Strategy {
	if workers < 1 {
		workers = 1
	}
	return &sixStepStrategy{maxLen: maxLen, workers: workers}
}

func (s *sixStepStrategy) TransformLength(n int) int {
	p, _ := factorOutPowerOfTwo(round23up(n))
	if cand := round23up(n); cand == p {
		return cand
	}
	return p << 2
}

func (s *sixStepStrategy) MaxTransformLength() int { return s.maxLen }

func (s *sixStepStrategy) Parallel() bool { return true }

func (s *sixStepStrategy) Transform(stor storage.DataStorage, field modmath.Field) error {
	return s.run(stor, field, false)
}

func (s *sixStepStrategy) InverseTransform(stor storage.DataStorage, field modmath.Field) error {
	return s.run(stor, field, true)
}

func (s *sixStepStrategy) run(stor storage.DataStorage, field modmath.Field, inverse bool) error {
	n := stor.Size()
	if n&(n-1) != 0 {
		return errBadLength("sixStepStrategy", n)
	}
	if !stor.IsCached() {
		return errNotCached("sixStepStrategy")
	}
	data, ok := readAll(stor)
	if !ok {
		return errNotCached("sixStepStrategy")
	}

	out := computeSixStep(data, field, inverse, s.workers)

	if !writeAll(stor, out) {
		return errNotCached("sixStepStrategy")
	}
	return nil
}

// computeSixStep runs the six-step decomposition (spec.md §4.2: outer
// transpose, column FFTs, twiddle multiply, transpose, row FFTs, final
// transpose) over an in-memory buffer. Shared by sixStepStrategy
// (buffer backed by cached storage, workers from config) and
// twoPassStrategy (buffer backed by a sequential read of disk storage,
// always called with workers=1: spec.md §5's parallel predicate
// excludes disk-backed storage regardless of ctx.NumberOfProcessors).
func computeSixStep(data []uint64, field modmath.Field, inverse bool, workers int) []uint64 {
	n := len(data)
	rows, cols := splitDims(n)

	var root uint64
	if inverse {
		root = field.GetInverseNthRoot(uint64(n))
	} else {
		root = field.GetForwardNthRoot(uint64(n))
	}

	// Step 1: transpose rows x cols -> cols x rows.
	t1 := transpose(data, rows, cols)

	// Step 2: cols independent length-rows column FFTs.
	wRows := field.ModPow(root, int64(cols))
	parallelFor(sixStepWorkers(workers, cols), cols, func(j int) {
		transformSlice(t1[j*rows:(j+1)*rows], field, wRows)
	})

	// Step 3: twiddle multiply element (col j, row i) by root^(j*i).
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			idx := j*rows + i
			t1[idx] = field.ModMultiply(t1[idx], field.ModPow(root, int64(j*i)))
		}
	}

	// Step 4: transpose back to rows x cols.
	t2 := transpose(t1, cols, rows)

	// Step 5: rows independent length-cols row FFTs.
	wCols := field.ModPow(root, int64(rows))
	parallelFor(sixStepWorkers(workers, rows), rows, func(i int) {
		transformSlice(t2[i*cols:(i+1)*cols], field, wCols)
	})

	// Step 6: final transpose restores natural output order.
	out := transpose(t2, rows, cols)

	if inverse {
		nInv := field.ModInverse(uint64(n))
		for i := range out {
			out[i] = field.ModMultiply(out[i], nInv)
		}
	}
	return out
}

// sixStepWorkers enforces spec.md §5's parallel predicate at the index
// level: a pass only parallelizes when its column/row count fits in
// int32, so a requested worker count never causes a sub-transform
// indexed past that range to be split concurrently.
func sixStepWorkers(requested, n int) int {
	if n > math.MaxInt32 {
		return 1
	}
	return requested
}
