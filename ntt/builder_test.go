package ntt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBuildContext struct {
	cache   int
	memory  int64
	workers int
}

func (f fakeBuildContext) CacheBudget() int    { return f.cache }
func (f fakeBuildContext) MemoryBudget() int64 { return f.memory }
func (f fakeBuildContext) Parallelism() int {
	if f.workers <= 0 {
		return 1
	}
	return f.workers
}

func TestNewBuilderSelectsTableWhenInCache(t *testing.T) {
	ctx := fakeBuildContext{cache: 1 << 20, memory: 1 << 30}
	strat := NewBuilder(ctx, 64)
	_, ok := strat.(*tableStrategy)
	assert.True(t, ok, "expected tableStrategy, got %T", strat)
}

func TestNewBuilderSelectsSixStepAboveCache(t *testing.T) {
	ctx := fakeBuildContext{cache: 256, memory: 1 << 30}
	strat := NewBuilder(ctx, 1024)
	_, ok := strat.(*sixStepStrategy)
	assert.True(t, ok, "expected sixStepStrategy, got %T", strat)
}

func TestNewBuilderSelectsTwoPassAboveMemoryBudget(t *testing.T) {
	ctx := fakeBuildContext{cache: 256, memory: 512}
	strat := NewBuilder(ctx, 1<<20)
	_, ok := strat.(*twoPassStrategy)
	assert.True(t, ok, "expected twoPassStrategy, got %T", strat)
}

func TestNewBuilderWrapsFactor3WhenCofactorPresent(t *testing.T) {
	ctx := fakeBuildContext{cache: 1 << 20, memory: 1 << 30}
	strat := NewBuilder(ctx, 6)
	_, ok := strat.(*factor3Strategy)
	assert.True(t, ok, "expected factor3Strategy wrapping the inner choice, got %T", strat)
}

func TestNewBuilderUsesFusedFactor3SixStepWhenWholeLengthFitsMemory(t *testing.T) {
	ctx := fakeBuildContext{cache: 16, memory: 1 << 30}
	strat := NewBuilder(ctx, 12)
	f3, ok := strat.(*factor3Strategy)
	if assert.True(t, ok, "expected factor3Strategy, got %T", strat) {
		_, innerOK := f3.inner.(*sixStepStrategy)
		assert.True(t, innerOK, "expected fused six-step inner, got %T", f3.inner)
	}
}

func TestNewBuilderThreadsParallelismIntoSixStep(t *testing.T) {
	ctx := fakeBuildContext{cache: 256, memory: 1 << 30, workers: 6}
	strat := NewBuilder(ctx, 1024)
	six, ok := strat.(*sixStepStrategy)
	if assert.True(t, ok, "expected sixStepStrategy, got %T", strat) {
		assert.Equal(t, 6, six.workers)
	}
}

func TestNewBuilderDefaultsParallelismToOne(t *testing.T) {
	ctx := fakeBuildContext{cache: 256, memory: 1 << 30, workers: 0}
	strat := NewBuilder(ctx, 1024)
	six, ok := strat.(*sixStepStrategy)
	if assert.True(t, ok, "expected sixStepStrategy, got %T", strat) {
		assert.Equal(t, 1, six.workers)
	}
}

func TestRoundUpLengthsAreFactorOutConsistent(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 6, 7, 9, 13, 17, 25, 100} {
		rounded := round23up(n)
		p, cofactor := factorOutPowerOfTwo(rounded)
		assert.Equal(t, rounded, p*cofactor)
		assert.GreaterOrEqual(t, rounded, n)
	}
}
