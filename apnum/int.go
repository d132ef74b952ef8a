// Package apnum is the numeric façade spec.md §6.4 names but leaves
// unspecified: arbitrary-precision Int, Float and Complex types
// exposing add/sub/mul/div/mod/scale/truncate/signum/compareTo/
// equalDigits/precision/radix plus decimal string formatting, the
// surface a calculator front-end (out of scope here) would drive.
package apnum

import (
	"fmt"

	"github.com/apflow/bigntt/bigint"
	"github.com/apflow/bigntt/config"
	"github.com/apflow/bigntt/digits"
	"github.com/apflow/bigntt/kerr"
)

// Int is an arbitrary-precision signed integer.
type Int struct {
	v bigint.Signed
}

// NewInt wraps a machine integer.
func NewInt(v int64) Int { return Int{v: bigint.FromInt64(v)} }

// Unwrap exposes the underlying bigint.Signed, for callers that need to
// drop to the layer below this façade.
func (a Int) Unwrap() bigint.Signed { return a.v }

func (a Int) Add(b Int) Int { return Int{bigint.Add(a.v, b.v)} }
func (a Int) Sub(b Int) Int { return Int{bigint.Sub(a.v, b.v)} }

// Mul multiplies via bigint.Mul, which always routes through convolve
// (the NTT product pipeline already dispatches on length internally,
// so this layer does not duplicate that threshold).
func (a Int) Mul(ctx *config.Context, b Int) (Int, error) {
	v, err := bigint.Mul(ctx, a.v, b.v)
	if err != nil {
		return Int{}, err
	}
	return Int{v: v}, nil
}

// Div returns the quotient of a/b (spec.md §6.4's "divide").
func (a Int) Div(b Int) (Int, error) {
	q, _, err := bigint.Div(a.v, b.v)
	if err != nil {
		return Int{}, err
	}
	return Int{v: q}, nil
}

// Mod returns the remainder of a/b (spec.md §6.4's "mod").
func (a Int) Mod(b Int) (Int, error) {
	_, r, err := bigint.Div(a.v, b.v)
	if err != nil {
		return Int{}, err
	}
	return Int{v: r}, nil
}

// Scale returns a * 10^n (n may be negative, truncating toward zero).
func (a Int) Scale(n int) Int {
	if n >= 0 {
		return Int{v: mulPow10(a.v, n)}
	}
	return Int{v: divPow10(a.v, -n)}
}

// Truncate keeps at most digits decimal digits of a's magnitude,
// dropping low-order digits (spec.md §6.4's "truncate", applied here
// to bound display/precision rather than a fractional part since Int
// has none).
func (a Int) Truncate(digits int) Int {
	cur := a.Precision()
	if digits >= cur || digits < 0 {
		return a
	}
	return Int{v: divPow10(a.v, cur-digits)}
}

func (a Int) Signum() int { return a.v.Sign }

// CompareInt orders a relative to b (-1, 0, +1).
func CompareInt(a, b Int) int { return bigint.Cmp(a.v, b.v) }

// EqualDigits returns how many leading decimal digits a and b agree
// on (spec.md §6.4's "equalDigits").
func (a Int) EqualDigits(b Int) int {
	return equalDecimalDigits(a.String(), b.String())
}

// Precision returns the number of decimal digits in a's magnitude.
func (a Int) Precision() int {
	if a.v.IsZero() {
		return 1
	}
	return len(a.v.Abs.DecimalDigits())
}

// Radix is the presentation base this façade formats Int in.
func (a Int) Radix() int { return 10 }

func (a Int) String() string {
	return formatSignedDecimal(a.v.Sign, a.v.Abs.DecimalDigits())
}

// ParseInt parses a decimal string (optional leading '+' or '-') into an Int.
func ParseInt(s string) (Int, error) {
	const op = "apnum.ParseInt"
	sign, digitsPart, err := splitSign(s)
	if err != nil {
		return Int{}, kerr.New(kerr.Domain, op, err)
	}
	abs, err := parseDecimalDigits(digitsPart)
	if err != nil {
		return Int{}, kerr.New(kerr.Domain, op, err)
	}
	if abs.IsZero() {
		return Int{v: bigint.Zero}, nil
	}
	return Int{v: bigint.New(sign, abs)}, nil
}

func splitSign(s string) (int, string, error) {
	if s == "" {
		return 0, "", fmt.Errorf("empty numeral")
	}
	if s[0] == '-' {
		return -1, s[1:], nil
	}
	if s[0] == '+' {
		return 1, s[1:], nil
	}
	return 1, s, nil
}

func parseDecimalDigits(s string) (digits.Nat, error) {
	if s == "" {
		return nil, fmt.Errorf("empty numeral")
	}
	acc := digits.Nat(nil)
	ten := digits.Nat{10}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid decimal digit %q", r)
		}
		acc = digits.Add(digits.MulSchoolbook(acc, ten), digits.Nat{uint32(r - '0')})
	}
	return acc.Trim(), nil
}
