package bigint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/kerr"
)

func TestPowBasic(t *testing.T) {
	ctx := config.DefaultContext()

	got, err := Pow(ctx, FromInt64(2), 10)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(1024), got)

	got, err = Pow(ctx, FromInt64(-2), 3)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(-8), got)

	got, err = Pow(ctx, FromInt64(-2), 4)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(16), got)

	got, err = Pow(ctx, FromInt64(5), 0)
	require.NoError(t, err)
	assert.Equal(t, One, got)

	got, err = Pow(ctx, FromInt64(5), -3)
	require.NoError(t, err)
	assert.Equal(t, Zero, got)
}

func TestPowZeroToZeroFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, err := Pow(ctx, Zero, 0)
	require.Error(t, err)
	assert.True(t, kerr.IsKind(err, kerr.ZeroToZero))
}

func TestPowTrailingZeroBitsOfExponent(t *testing.T) {
	ctx := config.DefaultContext()
	// 3^12 = 531441; 12 = 0b1100, two trailing zero bits.
	got, err := Pow(ctx, FromInt64(3), 12)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(531441), got)
}

func TestDivBasic(t *testing.T) {
	cases := []struct {
		x, y int64
		q, r int64
	}{
		{17, 5, 3, 2},
		{-17, 5, -3, -2},
		{17, -5, -3, 2},
		{-17, -5, 3, -2},
		{0, 7, 0, 0},
	}
	for _, tc := range cases {
		q, r, err := Div(FromInt64(tc.x), FromInt64(tc.y))
		require.NoError(t, err)
		assert.Equalf(t, FromInt64(tc.q), q, "q for %d/%d", tc.x, tc.y)
		assert.Equalf(t, FromInt64(tc.r), r, "r for %d/%d", tc.x, tc.y)

		// x == q*y + r
		prod := tc.q * tc.y
		assert.Equal(t, tc.x, prod+tc.r)
	}
}

func TestDivByZeroFails(t *testing.T) {
	_, _, err := Div(FromInt64(5), Zero)
	require.Error(t, err)
	assert.True(t, kerr.IsKind(err, kerr.Domain))
}

func TestGCDAndLCM(t *testing.T) {
	ctx := config.DefaultContext()

	assert.Equal(t, FromInt64(21), GCD(FromInt64(462), FromInt64(1071)))
	assert.Equal(t, FromInt64(6), GCD(FromInt64(54), FromInt64(24)))
	assert.Equal(t, Zero, GCD(Zero, Zero))

	lcm, err := LCM(ctx, FromInt64(4), FromInt64(6))
	require.NoError(t, err)
	assert.Equal(t, FromInt64(12), lcm)

	lcm, err = LCM(ctx, Zero, Zero)
	require.NoError(t, err)
	assert.Equal(t, Zero, lcm)
}

func TestRootPerfectSquare(t *testing.T) {
	ctx := config.DefaultContext()
	q, r, err := Root(ctx, FromInt64(100), 2)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(10), q)
	assert.Equal(t, Zero, r)
}

func TestRootWithRemainder(t *testing.T) {
	ctx := config.DefaultContext()
	q, r, err := Root(ctx, FromInt64(10), 3)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(2), q)
	assert.Equal(t, FromInt64(2), r) // 2^3 + 2 = 10
}

func TestRootNegativeOddDegree(t *testing.T) {
	ctx := config.DefaultContext()
	q, r, err := Root(ctx, FromInt64(-27), 3)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(-3), q)
	assert.Equal(t, Zero, r)
}

func TestRootEvenDegreeOfNegativeFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, _, err := Root(ctx, FromInt64(-4), 2)
	require.Error(t, err)
	assert.True(t, kerr.IsKind(err, kerr.Domain))
}

func TestRootLargeCube(t *testing.T) {
	ctx := config.DefaultContext()
	// 10000^3 = 10^12
	q, r, err := Root(ctx, FromInt64(1_000_000_000_000), 3)
	require.NoError(t, err)
	assert.Equal(t, FromInt64(10000), q)
	assert.Equal(t, Zero, r)
}

func TestModPow(t *testing.T) {
	ctx := config.DefaultContext()

	// Fermat witness: 7^560 mod 561 (561 is a Carmichael number).
	got, err := ModPow(ctx, FromInt64(7), FromInt64(560), FromInt64(561))
	require.NoError(t, err)
	assert.Equal(t, FromInt64(1), got)

	got, err = ModPow(ctx, FromInt64(4), FromInt64(13), FromInt64(497))
	require.NoError(t, err)
	assert.Equal(t, FromInt64(445), got)
}

func TestModPowNegativeExponentFails(t *testing.T) {
	ctx := config.DefaultContext()
	_, err := ModPow(ctx, FromInt64(2), FromInt64(-1), FromInt64(5))
	require.Error(t, err)
	assert.True(t, kerr.IsKind(err, kerr.Domain))
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, Cmp(FromInt64(-5), FromInt64(3)))
	assert.Equal(t, 1, Cmp(FromInt64(5), FromInt64(3)))
	assert.Equal(t, 0, Cmp(FromInt64(5), FromInt64(5)))
	assert.Equal(t, -1, Cmp(FromInt64(-5), FromInt64(-3)))
}
