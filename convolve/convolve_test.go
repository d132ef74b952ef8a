package convolve

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
)

func randomNat(t *testing.T, words int, seed int64) digits.Nat {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	n := make(digits.Nat, words)
	for i := range n {
		n[i] = r.Uint32()
	}
	return n.Trim()
}

func TestConvoluteMatchesSchoolbook(t *testing.T) {
	ctx := config.DefaultContext()
	require.NoError(t, ctx.Validate())

	cases := []struct {
		name       string
		wordsX     int
		wordsY     int
		resultSize int
	}{
		{"tiny", 1, 1, 2},
		{"small", 3, 2, 5},
		{"uneven", 5, 1, 6},
		{"medium", 17, 13, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := randomNat(t, tc.wordsX, 1)
			y := randomNat(t, tc.wordsY, 2)

			want := digits.MulSchoolbook(x, y)
			got, err := Convolute(ctx, x, y, tc.resultSize)
			require.NoError(t, err)

			gotTrim := got.Trim()
			wantTrim := want.Trim()
			if len(wantTrim) > tc.resultSize {
				wantTrim = wantTrim[len(wantTrim)-tc.resultSize:]
			}
			assert.Equal(t, 0, digits.Cmp(gotTrim, wantTrim))

			// Structural diff on the raw word slices: digits.Cmp only
			// reports ordering, this pinpoints which word(s) disagree.
			if diff := cmp.Diff([]uint32(wantTrim), []uint32(gotTrim)); diff != "" {
				t.Errorf("convolution result words differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAutoConvoluteMatchesSchoolbookSquare(t *testing.T) {
	ctx := config.DefaultContext()
	x := randomNat(t, 7, 3)

	want := digits.MulSchoolbook(x, x).Trim()
	got, err := AutoConvolute(ctx, x, len(want))
	require.NoError(t, err)

	assert.Equal(t, 0, digits.Cmp(got.Trim(), want))
}

func TestConvoluteZeroOperand(t *testing.T) {
	ctx := config.DefaultContext()
	x := randomNat(t, 4, 5)
	var zero digits.Nat

	got, err := Convolute(ctx, x, zero, 6)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCheckExactnessRejectsLengthBeyondExactRange(t *testing.T) {
	assert.Error(t, checkExactness(1<<30))
	assert.NoError(t, checkExactness(1024))
}

func TestFitToPadsAndTruncates(t *testing.T) {
	in := digits.Nat{1, 2, 3}

	padded := fitTo(in, 5)
	assert.Equal(t, digits.Nat{1, 2, 3, 0, 0}, padded)

	truncated := fitTo(in, 2)
	assert.Equal(t, digits.Nat{2, 3}, truncated)

	same := fitTo(in, 3)
	assert.Equal(t, digits.Nat{1, 2, 3}, same)
}
