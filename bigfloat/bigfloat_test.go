package bigfloat

import (
	"math"
	"math/big"
	"testing"

	altbigfloat "github.com/ALTree/bigfloat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflow/bigntt/config"
)

const testPrec = 128

func TestFromFloat64RoundTrip(t *testing.T) {
	for _, v := range []float64{1, 2, 0.5, 3.14159265358979, 123456.789, -42, 1e10, 1e-10} {
		f := FromFloat64(v, testPrec)
		got := f.ToFloat64()
		assert.InEpsilonf(t, v, got, 1e-12, "round trip of %v", v)
	}
}

func TestFromFloat64Zero(t *testing.T) {
	f := FromFloat64(0, testPrec)
	assert.True(t, f.IsZero())
}

func TestAddSubMul(t *testing.T) {
	ctx := config.DefaultContext()
	a := FromFloat64(2.5, testPrec)
	b := FromFloat64(1.25, testPrec)

	assert.InEpsilon(t, 3.75, Add(a, b).ToFloat64(), 1e-12)
	assert.InEpsilon(t, 1.25, Sub(a, b).ToFloat64(), 1e-12)

	prod, err := Mul(ctx, a, b)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.125, prod.ToFloat64(), 1e-12)
}

func TestDivInt(t *testing.T) {
	a := FromFloat64(10, testPrec)
	got := DivInt(a, 4)
	assert.InEpsilon(t, 2.5, got.ToFloat64(), 1e-9)
}

func TestCmp(t *testing.T) {
	a := FromFloat64(1, testPrec)
	b := FromFloat64(2, testPrec)
	assert.Equal(t, -1, Cmp(a, b))
	assert.Equal(t, 1, Cmp(b, a))
	assert.Equal(t, 0, Cmp(a, a))
}

func TestPrecisionSchedule(t *testing.T) {
	sched := precisionSchedule(53, 200)
	require.NotEmpty(t, sched)
	assert.Equal(t, 200, sched[len(sched)-1])
	assert.Equal(t, 200, sched[len(sched)-2]) // precising iteration repeats target
	for i := 1; i < len(sched)-1; i++ {
		assert.LessOrEqual(t, sched[i-1], sched[i])
	}
}

func TestPrecisionScheduleSeedAboveTarget(t *testing.T) {
	sched := precisionSchedule(256, 64)
	assert.Equal(t, []int{64, 64}, sched)
}

func TestSqrt(t *testing.T) {
	ctx := config.DefaultContext()
	x := FromFloat64(2, testPrec)
	got, err := Sqrt(ctx, x, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt2, got.ToFloat64(), 1e-9)
}

func TestSqrtNegativeFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, err := Sqrt(ctx, FromFloat64(-4, testPrec), testPrec)
	require.Error(t, err)
}

func TestInverseRootReal(t *testing.T) {
	ctx := config.DefaultContext()
	x := FromFloat64(8, testPrec)
	got, err := InverseRootReal(ctx, x, 3, testPrec)
	require.NoError(t, err)
	// 8^(-1/3) = 0.5
	assert.InEpsilon(t, 0.5, got.ToFloat64(), 1e-9)
}

func TestAGMSymmetry(t *testing.T) {
	ctx := config.DefaultContext()
	a := FromFloat64(1, testPrec)
	b := FromFloat64(2, testPrec)
	ab, err := AGM(ctx, a, b, testPrec)
	require.NoError(t, err)
	ba, err := AGM(ctx, b, a, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, ab.ToFloat64(), ba.ToFloat64(), 1e-9)
}

func TestAGMKnownValue(t *testing.T) {
	ctx := config.DefaultContext()
	a := FromFloat64(1, testPrec)
	b := FromFloat64(2, testPrec)
	got, err := AGM(ctx, a, b, testPrec)
	require.NoError(t, err)
	// agm(1,2) ~= 1.4567910310469068...
	assert.InEpsilon(t, 1.4567910310469068, got.ToFloat64(), 1e-9)
}

func TestPiMatchesMathPi(t *testing.T) {
	ctx := config.DefaultContext()
	got, err := Pi(ctx, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi, got.ToFloat64(), 1e-9)
}

func TestLn2MatchesMathLn2(t *testing.T) {
	ctx := config.DefaultContext()
	got, err := Ln2(ctx, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Ln2, got.ToFloat64(), 1e-9)
}

func TestLogRealAgainstOracle(t *testing.T) {
	ctx := config.DefaultContext()
	for _, v := range []float64{0.5, 1, 2, 10, 1234.5} {
		got, err := LogReal(ctx, FromFloat64(v, testPrec), testPrec)
		require.NoError(t, err)
		want := oracleLog(v)
		if want == 0 {
			// Relative error is undefined at zero; compare absolutely.
			assert.InDeltaf(t, want, got.ToFloat64(), 1e-6, "log(%v)", v)
			continue
		}
		assert.InEpsilonf(t, want, got.ToFloat64(), 1e-6, "log(%v)", v)
	}
}

func TestLogOfZeroFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, err := LogReal(ctx, FromFloat64(0, testPrec), testPrec)
	require.Error(t, err)
}

func TestExpRealAgainstOracle(t *testing.T) {
	ctx := config.DefaultContext()
	for _, v := range []float64{0, 0.5, 1, -1, 3.5} {
		got, err := ExpReal(ctx, FromFloat64(v, testPrec), testPrec)
		require.NoError(t, err)
		want := oracleExp(v)
		assert.InEpsilonf(t, want, got.ToFloat64(), 1e-6, "exp(%v)", v)
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	ctx := config.DefaultContext()
	x := FromFloat64(2.71828, testPrec)
	logX, err := LogReal(ctx, x, testPrec)
	require.NoError(t, err)
	back, err := ExpReal(ctx, logX, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, x.ToFloat64(), back.ToFloat64(), 1e-6)
}

func TestPowRealAgainstOracle(t *testing.T) {
	ctx := config.DefaultContext()
	got, err := PowReal(ctx, FromFloat64(2, testPrec), FromFloat64(10, testPrec), testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, 1024.0, got.ToFloat64(), 1e-6)
}

func TestPowZeroToZeroFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, err := Pow(ctx, FromReal(ZeroPrec(testPrec)), FromReal(ZeroPrec(testPrec)), testPrec)
	require.Error(t, err)
}

func TestSinCosIdentity(t *testing.T) {
	ctx := config.DefaultContext()
	z := FromReal(FromFloat64(0.7, testPrec))
	s, err := Sin(ctx, z, testPrec)
	require.NoError(t, err)
	c, err := Cos(ctx, z, testPrec)
	require.NoError(t, err)

	s2, err := Mul(ctx, s.Re, s.Re)
	require.NoError(t, err)
	c2, err := Mul(ctx, c.Re, c.Re)
	require.NoError(t, err)
	sum := Add(s2, c2)
	assert.InEpsilon(t, 1.0, sum.ToFloat64(), 1e-6)

	assert.InEpsilon(t, math.Sin(0.7), s.Re.ToFloat64(), 1e-6)
	assert.InEpsilon(t, math.Cos(0.7), c.Re.ToFloat64(), 1e-6)
}

func TestTanhBounded(t *testing.T) {
	ctx := config.DefaultContext()
	z := FromReal(FromFloat64(1.5, testPrec))
	got, err := Tanh(ctx, z, testPrec)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Tanh(1.5), got.Re.ToFloat64(), 1e-6)
}

func TestAtanPoleFails(t *testing.T) {
	ctx := config.DefaultContext()
	pole := Complex{Re: ZeroPrec(testPrec), Im: FromInt64(1, testPrec)}
	_, err := Atan(ctx, pole, testPrec)
	require.Error(t, err)
}

func TestExpOverflowFails(t *testing.T) {
	ctx := config.DefaultContext()
	huge := FromFloat64(1e20, testPrec)
	_, err := ExpReal(ctx, huge, testPrec)
	require.Error(t, err)
}

// oracleLog/oracleExp delegate to ALTree/bigfloat at a generous
// working precision, used only as an independent cross-check in
// tests, never from production code.
func oracleLog(v float64) float64 {
	x := new(big.Float).SetPrec(200).SetFloat64(v)
	r := altbigfloat.Log(x)
	f, _ := r.Float64()
	return f
}

func oracleExp(v float64) float64 {
	x := new(big.Float).SetPrec(200).SetFloat64(v)
	r := altbigfloat.Exp(x)
	f, _ := r.Float64()
	return f
}
