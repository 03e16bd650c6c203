package decexpr

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberRE matches the signed decimal numbers that the engine produces.
var numberRE = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// format renders a result with exactly the engine's scale of fractional
// digits, then tidies it up. If cut is true, trailing fractional zeroes are
// removed.
func (e *Engine) format(d decimal.Decimal, cut bool) (string, error) {
	s := e.trunc(d).StringFixed(int32(e.scale))
	if cut {
		s = TrimTrailingZeroes(s)
	}
	s = stripLeadingZeroes(s)
	s = unsignZero(s)
	if !numberRE.MatchString(s) {
		return "", &NumberError{Text: s}
	}
	return s, nil
}

// TrimTrailingZeroes removes trailing zeroes from the fractional part of a
// decimal number, and the decimal point too if no fractional digits remain.
// Numbers without a decimal point are returned unchanged, so "10" stays "10"
// while "10.0" becomes "10". TrimTrailingZeroes is idempotent.
func TrimTrailingZeroes(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// stripLeadingZeroes removes superfluous zeroes from the integer part of a
// number: "010" becomes "10", "-00.5" becomes "-0.5", and ".5" becomes "0.5".
func stripLeadingZeroes(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" || s[0] == '.' {
		s = "0" + s
	}
	return sign + s
}

// unsignZero turns negative zero, in any scale, into positive zero.
func unsignZero(s string) string {
	if !strings.HasPrefix(s, "-") {
		return s
	}
	if strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
