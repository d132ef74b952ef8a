package apnum

import (
	"fmt"
	"strings"

	"github.com/apflow/bigntt/bigfloat"
	"github.com/apflow/bigntt/bigint"
	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// mulThresholdWords is the mantissa size, in 32-bit words, above which
// Float.Mul routes through convolve instead of a direct schoolbook
// multiply — the same fftThreshold-style dispatch bigfft.Mul uses
// between its schoolbook and FFT paths (see DESIGN.md).
const mulThresholdWords = 24

// Float is a binary-backed arbitrary-precision real number: an
// apnum-level wrapper around bigfloat.Float that adds decimal string
// formatting.
type Float struct {
	v bigfloat.Float
}

// NewFloat approximates val at the given bit precision.
func NewFloat(val float64, prec int) Float {
	return Float{v: bigfloat.FromFloat64(val, prec)}
}

// Unwrap exposes the underlying bigfloat.Float, for callers that need
// to drop to the layer below this façade.
func (a Float) Unwrap() bigfloat.Float { return a.v }

func (a Float) Add(b Float) Float { return Float{v: bigfloat.Add(a.v, b.v)} }
func (a Float) Sub(b Float) Float { return Float{v: bigfloat.Sub(a.v, b.v)} }

// Mul multiplies a and b. Below mulThresholdWords it multiplies
// mantissas directly via digits.MulSchoolbook; above it, it delegates
// to bigfloat.Mul, which routes through bigint.Mul into convolve.
func (a Float) Mul(ctx *config.Context, b Float) (Float, error) {
	prec := a.v.Prec
	if b.v.Prec > prec {
		prec = b.v.Prec
	}
	if a.v.IsZero() || b.v.IsZero() {
		return Float{v: bigfloat.ZeroPrec(prec)}, nil
	}
	if len(a.v.Mantissa.Abs) <= mulThresholdWords && len(b.v.Mantissa.Abs) <= mulThresholdWords {
		abs := digits.MulSchoolbook(a.v.Mantissa.Abs, b.v.Mantissa.Abs)
		m := bigint.New(a.v.Mantissa.Sign*b.v.Mantissa.Sign, abs)
		return Float{v: bigfloat.Round(bigfloat.Float{Mantissa: m, Scale: a.v.Scale + b.v.Scale, Prec: prec}, prec)}, nil
	}
	v, err := bigfloat.Mul(ctx, a.v, b.v)
	if err != nil {
		return Float{}, err
	}
	return Float{v: v}, nil
}

// Div returns a/b at a's precision.
func (a Float) Div(ctx *config.Context, b Float) (Float, error) {
	const op = "apnum.Float.Div"
	if b.v.IsZero() {
		return Float{}, kerr.New(kerr.Domain, op, fmt.Errorf("division by zero"))
	}
	inv, err := bigfloat.Reciprocal(ctx, b.v, a.v.Prec)
	if err != nil {
		return Float{}, err
	}
	prod, err := bigfloat.Mul(ctx, a.v, inv)
	if err != nil {
		return Float{}, err
	}
	return Float{v: prod}, nil
}

// Mod returns a - b*trunc(a/b).
func (a Float) Mod(ctx *config.Context, b Float) (Float, error) {
	q, err := a.Div(ctx, b)
	if err != nil {
		return Float{}, err
	}
	qInt := q.truncateToInteger()
	prod, err := qInt.Mul(ctx, b)
	if err != nil {
		return Float{}, err
	}
	return a.Sub(prod), nil
}

func (a Float) truncateToInteger() Float {
	if a.v.Scale >= 0 {
		return a
	}
	k := -a.v.Scale
	m := bigint.ShiftRight(a.v.Mantissa, k)
	return Float{v: bigfloat.Float{Mantissa: m, Scale: 0, Prec: a.v.Prec}}
}

// Scale returns a * 2^n: spec.md §3 defines a digit-sequence number's
// scale as "the base-B exponent of the most significant digit", and
// Float's B is 2, so Scale is a cheap exponent bump, not a
// multiplication.
func (a Float) Scale(n int) Float {
	return Float{v: bigfloat.ShiftLeftFloat(a.v, n)}
}

// Truncate drops a's mantissa down to at most prec bits, toward zero
// (no round-to-nearest correction, unlike bigfloat.Round).
func (a Float) Truncate(prec int) Float {
	bl := a.v.Mantissa.Abs.BitLen()
	excess := bl - prec
	if excess <= 0 {
		return Float{v: bigfloat.Float{Mantissa: a.v.Mantissa, Scale: a.v.Scale, Prec: prec}}
	}
	m := bigint.ShiftRight(a.v.Mantissa, excess)
	return Float{v: bigfloat.Float{Mantissa: m, Scale: a.v.Scale + excess, Prec: prec}}
}

func (a Float) Signum() int { return a.v.Sign() }

// CompareFloat orders a relative to b (-1, 0, +1).
func CompareFloat(a, b Float) int { return bigfloat.Cmp(a.v, b.v) }

// EqualDigits returns how many leading bits a and b agree on.
func (a Float) EqualDigits(b Float) int { return bigfloat.EqualDigits(a.v, b.v) }

func (a Float) Precision() int { return a.v.Prec }

// Radix is 2: Float's internal scale is a binary exponent.
func (a Float) Radix() int { return 2 }

// String formats a as an exact finite decimal numeral: binary
// fractions always terminate in base 10 (2 divides 10), so no
// rounding is needed beyond what Prec already fixed.
func (a Float) String() string {
	m := a.v.Mantissa
	if m.IsZero() {
		return "0"
	}
	if a.v.Scale >= 0 {
		abs := bigint.ShiftLeft(bigint.Signed{Sign: 1, Abs: m.Abs}, a.v.Scale).Abs
		return formatSignedDecimal(m.Sign, abs.DecimalDigits())
	}
	k := -a.v.Scale
	abs := digits.MulSchoolbook(m.Abs, pow5(k))
	return formatFixedPoint(m.Sign, abs.DecimalDigits(), k)
}

// ParseFloat parses a decimal numeral (optional sign, optional
// fractional part) into a Float at the given bit precision. Decimal
// fractions generally are not exact in binary, so the conversion
// truncates at prec+guard bits rather than claiming exactness.
func ParseFloat(s string, prec int) (Float, error) {
	const op = "apnum.ParseFloat"
	const guard = 32

	sign, body, err := splitSign(s)
	if err != nil {
		return Float{}, kerr.New(kerr.Domain, op, err)
	}
	parts := strings.SplitN(body, ".", 2)
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	numAbs, err := parseDecimalDigits(intPart + fracPart)
	if err != nil {
		return Float{}, kerr.New(kerr.Domain, op, err)
	}

	numerator := bigint.New(sign, numAbs)
	scaled := bigint.ShiftLeft(numerator, prec+guard)
	denom := bigint.New(1, pow10(len(fracPart)))
	q, _, err := bigint.Div(scaled, denom)
	if err != nil {
		return Float{}, kerr.New(kerr.Domain, op, err)
	}
	return Float{v: bigfloat.Round(bigfloat.Float{Mantissa: q, Scale: -(prec + guard), Prec: prec}, prec)}, nil
}

func pow5(n int) digits.Nat {
	p := digits.Nat{1}
	five := digits.Nat{5}
	for i := 0; i < n; i++ {
		p = digits.MulSchoolbook(p, five)
	}
	return p
}

func formatFixedPoint(sign int, ds []byte, fracDigits int) string {
	if fracDigits <= 0 {
		return formatSignedDecimal(sign, ds)
	}
	for len(ds) <= fracDigits {
		ds = append([]byte{0}, ds...)
	}
	intPart := ds[:len(ds)-fracDigits]
	fracPart := ds[len(ds)-fracDigits:]
	for len(fracPart) > 0 && fracPart[len(fracPart)-1] == 0 {
		fracPart = fracPart[:len(fracPart)-1]
	}
	if len(fracPart) == 0 {
		return formatSignedDecimal(sign, intPart)
	}
	var b strings.Builder
	if sign < 0 {
		b.WriteByte('-')
	}
	for _, d := range intPart {
		b.WriteByte('0' + d)
	}
	b.WriteByte('.')
	for _, d := range fracPart {
		b.WriteByte('0' + d)
	}
	return b.String()
}
