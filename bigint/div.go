package bigint

import (
	"fmt"

	"github.com/apflow/bigntt/kerr"
)

// Div returns q, r with x = q*y + r and sign(r) = sign(x) (spec.md
// §4.6). The quotient's sign follows the usual rule (sign(x)*sign(y)),
// derived from an unsigned long division of the magnitudes.
func Div(x, y Signed) (q, r Signed, err error) {
	const op = "bigint.Div"
	if y.IsZero() {
		return Zero, Zero, kerr.New(kerr.Domain, op, fmt.Errorf("division by zero"))
	}
	if x.IsZero() {
		return Zero, Zero, nil
	}

	qAbs, rAbs := divModBits(x.Abs, y.Abs)

	qSign := x.Sign * y.Sign
	rSign := x.Sign

	return normalize(qSign, qAbs), normalize(rSign, rAbs), nil
}
