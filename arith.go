package decexpr

import (
	"github.com/shopspring/decimal"
)

// trunc truncates d to the engine's scale. Digits beyond the scale are
// dropped, never rounded.
func (e *Engine) trunc(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(int32(e.scale))
}

// binary applies the operation of a binary node kind.
func (e *Engine) binary(op nodeKind, x, y decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case nodeAdd:
		return e.trunc(x.Add(y)), nil
	case nodeSub:
		return e.trunc(x.Sub(y)), nil
	case nodeMul:
		return e.trunc(x.Mul(y)), nil
	case nodeDiv:
		return e.quo(x, y)
	case nodeMod:
		return e.rem(x, y)
	case nodePow:
		return e.pow(x, y)
	default:
		panic("decexpr: binary on non-binary node kind " + op.String())
	}
}

// quo divides x by y, truncating the quotient to the engine's scale.
func (e *Engine) quo(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, &ZeroDivisionError{X: x, Op: "/"}
	}
	q, _ := x.QuoRem(y, int32(e.scale))
	return q, nil
}

// rem computes x - y*trunc(x/y). The result has the sign of x.
func (e *Engine) rem(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, &ZeroDivisionError{X: x, Op: "%"}
	}
	_, r := x.QuoRem(y, 0)
	return e.trunc(r), nil
}
