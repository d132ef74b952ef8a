package ntt

import "math"

// wordSize is the byte size of one transform digit (a uint64 residue).
const wordSize = 8

// BuildContext is the subset of config.Context the Builder consults.
// It is a narrow interface rather than a direct dependency on the
// config package so ntt stays usable without pulling in cpuid/yaml
// (spec.md §9's layering: L4 depends downward on L0-L3 only).
type BuildContext interface {
	CacheBudget() int
	MemoryBudget() int64
	// Parallelism bounds the worker count six-step/factor-3 dispatch
	// their independent row/column/WFTA-column sub-transforms across
	// (spec.md §5, §6.2's numberOfProcessors).
	Parallelism() int
}

// NewBuilder selects an inner Strategy for a requested minimum
// transform length L, per spec.md §4.3's table: Table when the
// power-of-two part fits in half the L1 cache, Six-step when it fits
// in the memory budget and within a 32-bit index space, Two-pass
// disk-backed otherwise. A factor-3 cofactor is handled by composing
// the chosen inner strategy with the WFTA decorator — fused with
// six-step when the whole length still fits in memory, generic
// otherwise.
func NewBuilder(ctx BuildContext, minLength int) Strategy {
	n := round23up(minLength)
	p, cofactor := factorOutPowerOfTwo(n)
	hasFactor3 := cofactor == 3

	workers := ctx.Parallelism()
	if workers < 1 {
		workers = 1
	}

	inner, innerIsSixStep := selectInner(ctx, p, workers)

	if !hasFactor3 {
		return inner
	}
	if innerIsSixStep && int64(n)*wordSize <= ctx.MemoryBudget() {
		return NewFactor3SixStepStrategyWithWorkers(n, workers)
	}
	return NewFactor3StrategyWithWorkers(inner, workers)
}

// selectInner implements spec.md §4.3's Table/Six-step/Two-pass
// selection over the power-of-two part p of the rounded length, and
// reports whether the chosen strategy is six-step (needed by NewBuilder
// to decide whether the fused factor-3 variant applies).
func selectInner(ctx BuildContext, p, workers int) (Strategy, bool) {
	if int64(p)*wordSize <= int64(ctx.CacheBudget())/2 {
		return NewTableStrategy(p), false
	}
	if int64(p)*wordSize <= ctx.MemoryBudget() && p <= math.MaxInt32 {
		return NewSixStepStrategyWithWorkers(p, workers), true
	}
	return NewTwoPassStrategy(p), false
}
