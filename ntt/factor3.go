package ntt

import (
	"runtime"

	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

// factor3Strategy is the factor-3 decorator (spec.md §4.2): it wraps
// any inner Strategy and splits a length-3*2^k problem into three
// length-2^k subtransforms via a 3-point Winograd (WFTA) butterfly at
// the outer level, so the inner strategy never has to know about the
// factor of three at all.
//
// The three per-column inner transforms are independent of each other,
// so forward/inverse dispatch them across up to workers goroutines
// when the outer storage is cached — the same WaitGroup fan-out
// gpu.BatchNTT.Forward/Inverse uses per polynomial, here per WFTA
// column (only ever 3 of them, so no chunking is needed).
type factor3Strategy struct {
	inner   Strategy
	workers int
}

// NewFactor3Strategy wraps inner with the generic factor-3 decorator,
// parallelized across up to runtime.GOMAXPROCS(0) workers.
func NewFactor3Strategy(inner Strategy) Strategy {
	return NewFactor3StrategyWithWorkers(inner, runtime.GOMAXPROCS(0))
}

// NewFactor3StrategyWithWorkers is NewFactor3Strategy bounded to the
// given worker count (spec.md §6.2's numberOfProcessors).
func NewFactor3StrategyWithWorkers(inner Strategy, workers int) Strategy {
	if workers < 1 {
		workers = 1
	}
	return &factor3Strategy{inner: inner, workers: workers}
}

// NewFactor3SixStepStrategy returns the fused decorator the Builder
// prefers when all three length-2^k subtransforms of a 3*2^k problem
// fit in memory (spec.md §4.3): composition with sixStepStrategy
// rather than a parallel class hierarchy (spec.md §9's design note).
func NewFactor3SixStepStrategy(maxLen int) Strategy {
	return NewFactor3Strategy(NewSixStepStrategy(maxLen))
}

// NewFactor3SixStepStrategyWithWorkers is NewFactor3SixStepStrategy
// bounded to the given worker count.
func NewFactor3SixStepStrategyWithWorkers(maxLen, workers int) Strategy {
	return NewFactor3StrategyWithWorkers(NewSixStepStrategyWithWorkers(maxLen, workers), workers)
}

func (f *factor3Strategy) TransformLength(n int) int {
	inner := f.inner.TransformLength((n + 2) / 3)
	return 3 * inner
}

func (f *factor3Strategy) MaxTransformLength() int { return 3 * f.inner.MaxTransformLength() }

func (f *factor3Strategy) Parallel() bool { return f.inner.Parallel() }

func (f *factor3Strategy) Transform(stor storage.DataStorage, field modmath.Field) error {
	return f.run(stor, field, false)
}

func (f *factor3Strategy) InverseTransform(stor storage.DataStorage, field modmath.Field) error {
	return f.run(stor, field, true)
}

func (f *factor3Strategy) run(stor storage.DataStorage, field modmath.Field, inverse bool) error {
	n := stor.Size()
	if !hasFactorThree(n) {
		return errBadLength("factor3Strategy", n)
	}
	m := n / 3

	var data []uint64
	var err error
	if stor.IsCached() {
		d, ok := readAll(stor)
		if !ok {
			return errNotCached("factor3Strategy")
		}
		data = d
	} else {
		data, err = readSeq(stor)
		if err != nil {
			return err
		}
	}

	// Per spec.md §5's parallel predicate: only cached storage (whose
	// WFTA columns are already fully in memory) dispatches across
	// workers; a disk-backed outer storage stays sequential.
	workers := 1
	if stor.IsCached() {
		workers = f.workers
	}

	var out []uint64
	if !inverse {
		out, err = f.forward(data, m, field, workers)
	} else {
		out, err = f.inverse(data, m, field, workers)
	}
	if err != nil {
		return err
	}

	if stor.IsCached() {
		if !writeAll(stor, out) {
			return errNotCached("factor3Strategy")
		}
		return nil
	}
	return writeSeq(stor, out)
}

// forward de-interleaves data (length 3m) by residue mod 3, runs the
// inner forward transform on each length-m column, premultiplies
// columns 1 and 2 by w^j / w^2j, and combines each triple of column
// values with the WFTA butterfly into the three output thirds.
func (f *factor3Strategy) forward(data []uint64, m int, field modmath.Field, workers int) ([]uint64, error) {
	n := 3 * m
	x := [3][]uint64{make([]uint64, m), make([]uint64, m), make([]uint64, m)}
	for i := 0; i < m; i++ {
		for r := 0; r < 3; r++ {
			x[r][i] = data[3*i+r]
		}
	}
	if err := parallelForErr(workers, 3, func(r int) error {
		return f.inner.Transform(storage.WrapCached(x[r]), field)
	}); err != nil {
		return nil, err
	}

	root := field.GetForwardNthRoot(uint64(n))
	w1, w2 := wftaConstants(field, true)
	out := make([]uint64, n)
	for j := 0; j < m; j++ {
		a0 := x[0][j]
		a1 := field.ModMultiply(x[1][j], field.ModPow(root, int64(j)))
		a2 := field.ModMultiply(x[2][j], field.ModPow(root, int64(2*j)))
		y0, y1, y2 := wfta3(a0, a1, a2, w1, w2, field)
		out[j] = y0
		out[j+m] = y1
		out[j+2*m] = y2
	}
	return out, nil
}

// inverse splits data (length 3m) into its three thirds, runs the
// inverse WFTA butterfly per column, postmultiplies by the inverse
// twiddles, runs the inner inverse transform on each column, then
// re-interleaves and applies the outer 1/3 normalization (composing
// with the inner strategy's own 1/m scaling gives the overall 1/n).
func (f *factor3Strategy) inverse(data []uint64, m int, field modmath.Field, workers int) ([]uint64, error) {
	n := 3 * m
	root := field.GetInverseNthRoot(uint64(n))
	w1, w2 := wftaConstants(field, false)

	x := [3][]uint64{make([]uint64, m), make([]uint64, m), make([]uint64, m)}
	for j := 0; j < m; j++ {
		a0, a1, a2 := wfta3(data[j], data[j+m], data[j+2*m], w1, w2, field)
		x[0][j] = a0
		x[1][j] = field.ModMultiply(a1, field.ModPow(root, int64(j)))
		x[2][j] = field.ModMultiply(a2, field.ModPow(root, int64(2*j)))
	}
	if err := parallelForErr(workers, 3, func(r int) error {
		return f.inner.InverseTransform(storage.WrapCached(x[r]), field)
	}); err != nil {
		return nil, err
	}

	out := make([]uint64, n)
	inv3 := field.ModInverse(3)
	for i := 0; i < m; i++ {
		for r := 0; r < 3; r++ {
			out[3*i+r] = field.ModMultiply(x[r][i], inv3)
		}
	}
	return out, nil
}

// wftaConstants computes w1 = -3/2 and w2 = w^(N/3) + 1/2 (spec.md
// §4.2's WFTA butterfly constants), where w^(N/3) is a primitive cube
// root of unity in field — the forward root for the forward
// direction, the inverse root for the inverse direction.
func wftaConstants(field modmath.Field, forward bool) (w1, w2 uint64) {
	var omega uint64
	if forward {
		omega = field.GetForwardNthRoot(3)
	} else {
		omega = field.GetInverseNthRoot(3)
	}
	inv2 := field.ModInverse(2)
	w1 = field.Negate(field.ModMultiply(3, inv2))
	w2 = field.ModAdd(omega, inv2)
	return
}

// wfta3 computes the length-3 Winograd FFT butterfly described in
// spec.md §4.2, given the precomputed constants w1, w2.
func wfta3(x0, x1, x2, w1, w2 uint64, field modmath.Field) (uint64, uint64, uint64) {
	t := field.ModAdd(x1, x2)
	x2b := field.ModSubtract(x1, x2)
	x0b := field.ModAdd(x0, t)
	t = field.ModMultiply(t, w1)
	x2c := field.ModMultiply(x2b, w2)
	t = field.ModAdd(t, x0b)
	x1f := field.ModAdd(t, x2c)
	x2f := field.ModSubtract(t, x2c)
	return x0b, x1f, x2f
}
