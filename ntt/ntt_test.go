package ntt

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflow/bigntt/modmath"
	"github.com/apflow/bigntt/storage"
)

var testField = modmath.Field0

func fillRamp(n int) []uint64 {
	data := make([]uint64, n)
	for i := range data {
		data[i] = uint64(i + 1)
	}
	return data
}

func roundTrip(t *testing.T, strat Strategy, n int) {
	t.Helper()
	data := fillRamp(n)
	s := storage.NewCached(storage.Int32, n)
	require.True(t, writeAll(s, data))

	require.NoError(t, strat.Transform(s, testField))
	out, ok := readAll(s)
	require.True(t, ok)
	if n > 1 {
		assert.NotEqual(t, data, out, "forward transform should change the buffer for n>1")
	}

	require.NoError(t, strat.InverseTransform(s, testField))
	out, ok = readAll(s)
	require.True(t, ok)
	assert.Equal(t, data, out)
}

func TestTableStrategyRoundTrip(t *testing.T) {
	strat := NewTableStrategy(1 << 16)
	for _, n := range []int{1, 2, 4, 8, 64, 1024} {
		t.Run(fmtN(n), func(t *testing.T) { roundTrip(t, strat, n) })
	}
}

func TestTableStrategyRejectsNonPowerOfTwo(t *testing.T) {
	strat := NewTableStrategy(1 << 16)
	s := storage.NewCached(storage.Int32, 6)
	assert.Error(t, strat.Transform(s, testField))
}

func TestTableStrategyRejectsDiskStorage(t *testing.T) {
	strat := NewTableStrategy(1 << 16)
	dir := t.TempDir()
	s, err := storage.NewDisk(dir, "op", 0, 8)
	require.NoError(t, err)
	defer s.(interface{ Close() error }).Close()
	assert.Error(t, strat.Transform(s, testField))
}

func TestSixStepStrategyRoundTrip(t *testing.T) {
	strat := NewSixStepStrategy(1 << 16)
	for _, n := range []int{4, 16, 64, 256} {
		t.Run(fmtN(n), func(t *testing.T) { roundTrip(t, strat, n) })
	}
}

func TestSixStepAndTableAgree(t *testing.T) {
	const n = 64
	data := fillRamp(n)

	tableStor := storage.NewCached(storage.Int32, n)
	require.True(t, writeAll(tableStor, data))
	require.NoError(t, NewTableStrategy(n).Transform(tableStor, testField))
	tableOut, _ := readAll(tableStor)

	sixStor := storage.NewCached(storage.Int32, n)
	require.True(t, writeAll(sixStor, data))
	require.NoError(t, NewSixStepStrategy(n).Transform(sixStor, testField))
	sixOut, _ := readAll(sixStor)

	assert.Equal(t, tableOut, sixOut)
}

func TestTwoPassStrategyRoundTrip(t *testing.T) {
	strat := NewTwoPassStrategy(1 << 16)
	dir := t.TempDir()
	for _, n := range []int{4, 16, 64} {
		t.Run(fmtN(n), func(t *testing.T) {
			data := fillRamp(n)
			s, err := storage.NewDisk(dir, "twopass", n, n)
			require.NoError(t, err)
			defer s.(interface{ Close() error }).Close()
			require.NoError(t, writeSeq(s, data))

			require.NoError(t, strat.Transform(s, testField))
			require.NoError(t, strat.InverseTransform(s, testField))

			out, err := readSeq(s)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestFactor3StrategyRoundTrip(t *testing.T) {
	inner := NewTableStrategy(1 << 16)
	strat := NewFactor3Strategy(inner)
	for _, n := range []int{3, 6, 12, 24, 96} {
		t.Run(fmtN(n), func(t *testing.T) { roundTrip(t, strat, n) })
	}
}

func TestFactor3SixStepStrategyRoundTrip(t *testing.T) {
	strat := NewFactor3SixStepStrategy(1 << 16)
	for _, n := range []int{6, 12, 48} {
		t.Run(fmtN(n), func(t *testing.T) { roundTrip(t, strat, n) })
	}
}

func TestFactor3StrategyRejectsNonFactorThreeLength(t *testing.T) {
	strat := NewFactor3Strategy(NewTableStrategy(1 << 16))
	s := storage.NewCached(storage.Int32, 16)
	assert.Error(t, strat.Transform(s, testField))
}

func TestHasFactorThree(t *testing.T) {
	cases := map[int]bool{
		1: false, 2: false, 3: true, 4: false, 6: true,
		12: true, 16: false, 24: true, 96: true, 100: false,
	}
	for n, want := range cases {
		assert.Equalf(t, want, hasFactorThree(n), "n=%d", n)
	}
}

func TestRound23Up(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 6, 7: 8, 9: 12, 13: 16, 17: 24, 25: 32}
	for n, want := range cases {
		assert.Equalf(t, want, round23up(n), "n=%d", n)
	}
}

func fmtN(n int) string {
	return "n=" + strconv.Itoa(n)
}

func TestSixStepStrategyAgreesAcrossWorkerCounts(t *testing.T) {
	const n = 256
	data := fillRamp(n)

	for _, workers := range []int{1, 2, 4, 8} {
		t.Run("workers="+strconv.Itoa(workers), func(t *testing.T) {
			s := storage.NewCached(storage.Int32, n)
			require.True(t, writeAll(s, data))

			strat := NewSixStepStrategyWithWorkers(n, workers)
			require.NoError(t, strat.Transform(s, testField))
			require.NoError(t, strat.InverseTransform(s, testField))

			out, ok := readAll(s)
			require.True(t, ok)
			assert.Equal(t, data, out)
		})
	}
}

func TestFactor3StrategyAgreesAcrossWorkerCounts(t *testing.T) {
	const n = 96
	data := fillRamp(n)

	for _, workers := range []int{1, 2, 3} {
		t.Run("workers="+strconv.Itoa(workers), func(t *testing.T) {
			s := storage.NewCached(storage.Int32, n)
			require.True(t, writeAll(s, data))

			strat := NewFactor3StrategyWithWorkers(NewTableStrategy(1<<16), workers)
			require.NoError(t, strat.Transform(s, testField))
			require.NoError(t, strat.InverseTransform(s, testField))

			out, ok := readAll(s)
			require.True(t, ok)
			assert.Equal(t, data, out)
		})
	}
}

func TestTwoPassStrategyRoundTripsDiskBackedStorage(t *testing.T) {
	const n = 64
	data := fillRamp(n)
	dir := t.TempDir()

	s, err := storage.NewDisk(dir, "twopass-parallel", 0, n)
	require.NoError(t, err)
	defer s.(interface{ Close() error }).Close()
	require.NoError(t, writeSeq(s, data))

	strat := NewTwoPassStrategy(1 << 16)
	require.NoError(t, strat.Transform(s, testField))
	require.NoError(t, strat.InverseTransform(s, testField))

	out, err := readSeq(s)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}
