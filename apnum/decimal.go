package apnum

import (
	"strings"

	"github.com/apflow/bigntt/bigint"
	"github.com/apflow/bigntt/digits"
)

func formatSignedDecimal(sign int, ds []byte) string {
	var b strings.Builder
	if sign < 0 {
		b.WriteByte('-')
	}
	for _, d := range ds {
		b.WriteByte('0' + d)
	}
	return b.String()
}

func equalDecimalDigits(a, b string) int {
	a = strings.TrimPrefix(a, "-")
	b = strings.TrimPrefix(b, "-")
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func pow10(n int) digits.Nat {
	p := digits.Nat{1}
	ten := digits.Nat{10}
	for i := 0; i < n; i++ {
		p = digits.MulSchoolbook(p, ten)
	}
	return p
}

// mulPow10 returns v * 10^n via repeated schoolbook multiply; this
// façade layer formats and scales numerals, it does not route through
// convolve (that is convolve's job for the products apnum.Mul makes).
func mulPow10(v bigint.Signed, n int) bigint.Signed {
	if n <= 0 || v.IsZero() {
		return v
	}
	return bigint.New(v.Sign, digits.MulSchoolbook(v.Abs, pow10(n)))
}

// divPow10 returns v truncated toward zero by 10^n: n repeated
// single-digit floor divisions, equal to floor(|v|/10^n) since
// floor(floor(x/10)/10...) = floor(x/10^n) for non-negative integers.
func divPow10(v bigint.Signed, n int) bigint.Signed {
	if n <= 0 || v.IsZero() {
		return v
	}
	abs := v.Abs
	for i := 0; i < n && !abs.IsZero(); i++ {
		abs, _ = digits.DivMod(abs, 10)
	}
	return bigint.New(v.Sign, abs)
}
