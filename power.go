package decexpr

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
	"go.uber.org/zap"
)

const (
	// maxIntExponent bounds the integer part of exponents.
	maxIntExponent = 1 << 16
	// floatPrec is the precision in bits of the fractional power step.
	floatPrec = 53
	// floatDigits is the number of significant digits kept from the
	// fractional power step.
	floatDigits = 14
	// maxResultDigits bounds the estimated size of exact integer powers.
	maxResultDigits = 1 << 20
)

var one = decimal.NewFromInt(1)

// Power raises base to exponent. Both must be signed decimal numbers, possibly
// in scientific notation. The integer part of the exponent is applied exactly;
// a fractional part goes through a bounded-precision floating-point step and
// is only accurate to about 14 significant digits. The result is truncated to
// the engine's scale and has trailing zeroes removed.
func (e *Engine) Power(base, exponent string) (string, error) {
	x, err := e.literal(base)
	if err != nil {
		return "", err
	}
	y, err := e.literal(exponent)
	if err != nil {
		return "", err
	}
	r, err := e.pow(x, y)
	if err != nil {
		e.log.Debug("power failed", zap.String("base", base), zap.String("exponent", exponent), zap.Error(err))
		return "", err
	}
	return e.format(r, true)
}

// literal parses a single signed decimal number.
func (e *Engine) literal(s string) (decimal.Decimal, error) {
	t := e.Normalize(s)
	if !numberRE.MatchString(t) {
		return decimal.Zero, &NumberError{Text: s}
	}
	return decimal.NewFromString(t)
}

// pow computes x^y. The integer part of y is applied by exact repeated
// multiplication; the fractional part is approximated.
func (e *Engine) pow(x, y decimal.Decimal) (decimal.Decimal, error) {
	if x.IsZero() {
		return decimal.Zero, nil
	}
	ip := y.Truncate(0)
	fp := y.Sub(ip)
	if ip.Abs().GreaterThan(decimal.NewFromInt(maxIntExponent)) {
		return decimal.Zero, &DomainError{X: y, Func: "^", Reason: "exponent too large"}
	}
	n := ip.IntPart()
	if powDigits(x, n) > maxResultDigits {
		return decimal.Zero, &DomainError{X: x, Func: "^", Reason: "result too large"}
	}
	r := e.intpow(x, n)
	if fp.IsZero() {
		return r, nil
	}
	if x.IsNegative() {
		return decimal.Zero, &DomainError{X: x, Func: "^", Reason: "negative base with fractional exponent"}
	}
	f, err := e.fracpow(x, fp)
	if err != nil {
		return decimal.Zero, err
	}
	return e.trunc(r.Mul(f)), nil
}

// powDigits estimates the number of digits in the exact coefficient of x^n
// from above. n must be bounded by maxIntExponent.
func powDigits(x decimal.Decimal, n int64) int64 {
	if n < 0 {
		n = -n
	}
	d := int64(x.NumDigits())
	if exp := x.Exponent(); exp > 0 {
		d += int64(exp)
	}
	return n * d
}

// intpow computes x^n by squaring. Negative n gives the reciprocal, truncated
// to the engine's scale. x must not be zero when n is negative.
func (e *Engine) intpow(x decimal.Decimal, n int64) decimal.Decimal {
	neg := n < 0
	if neg {
		n = -n
	}
	r := one
	for b := x; n > 0; n >>= 1 {
		if n&1 != 0 {
			r = r.Mul(b)
		}
		if n > 1 {
			b = b.Mul(b)
		}
	}
	if neg {
		q, _ := one.QuoRem(r, int32(e.scale))
		return q
	}
	return e.trunc(r)
}

// fracpow approximates x^f for positive x and |f| < 1. The floating-point
// result is rendered with floatDigits significant digits and read back through
// the scientific notation expansion of the normalizer.
func (e *Engine) fracpow(x, f decimal.Decimal) (decimal.Decimal, error) {
	bx, _, err := big.ParseFloat(x.String(), 10, floatPrec, big.ToNearestEven)
	if err != nil {
		return decimal.Zero, &DomainError{X: x, Func: "^", Reason: err.Error()}
	}
	bf, _, err := big.ParseFloat(f.String(), 10, floatPrec, big.ToNearestEven)
	if err != nil {
		return decimal.Zero, &DomainError{X: f, Func: "^", Reason: err.Error()}
	}
	z := new(big.Float).SetPrec(floatPrec)
	bigfloat.Pow(z, bx, bf)
	lit := e.expandSci(z.Text('G', floatDigits))
	if strings.ContainsRune(lit, 'E') {
		return decimal.Zero, &DomainError{X: x, Func: "^", Reason: "result too large"}
	}
	r, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, &DomainError{X: x, Func: "^", Reason: err.Error()}
	}
	return r, nil
}
