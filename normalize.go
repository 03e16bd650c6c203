package decexpr

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// sciRE matches unsigned literals in scientific notation, like 1.2E-3.
	sciRE = regexp.MustCompile(`\d+(?:\.\d+)?E[-+]?\d+`)
	// implicitRE matches an open bracket directly after a digit or a close
	// bracket.
	implicitRE = regexp.MustCompile(`([0-9)])\(`)
)

// maxShift is the largest exponent magnitude that scientific notation may
// expand to. Larger positive exponents are left in place and fail to lex;
// larger negative ones become zero at any practical scale.
const maxShift = 1 << 16

// Normalize returns src with all whitespace removed, scientific notation
// expanded to plain decimals at the engine's scale, and implicit
// multiplications before open brackets made explicit:
//
//	"2 (1 + 1.5E1)" -> "2*(1+15)"
//
// Normalize never fails. Anything left malformed is reported when the result
// is evaluated.
func (e *Engine) Normalize(src string) string {
	s := stripSpace(src)
	s = sciRE.ReplaceAllStringFunc(s, e.expandSci)
	return implicitRE.ReplaceAllString(s, "${1}*(")
}

// stripSpace removes every whitespace rune.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// expandSci expands a single literal in scientific notation. A literal that
// can't be expanded is returned unchanged.
func (e *Engine) expandSci(lit string) string {
	k := strings.IndexByte(lit, 'E')
	if k < 0 {
		return lit
	}
	mant, exp := lit[:k], lit[k+1:]
	if exp == "0" {
		return mant
	}
	n, err := strconv.ParseInt(exp, 10, 64)
	if err != nil || n > maxShift {
		return lit
	}
	if n < -maxShift {
		return "0"
	}
	d, err := decimal.NewFromString(mant)
	if err != nil {
		return lit
	}
	return e.trunc(d.Shift(int32(n))).String()
}

// validate checks the structure of a normalized expression before parsing.
// Brackets must balance in number; the parser reports everything else.
func validate(s string) error {
	var opens []int
	var strays []int
	col := 0
	for _, r := range s {
		col++
		switch r {
		case '(':
			opens = append(opens, col)
		case ')':
			if len(opens) == 0 {
				strays = append(strays, col)
				continue
			}
			opens = opens[:len(opens)-1]
		}
	}
	switch {
	case len(opens) > len(strays):
		return &BracketError{Col: opens[0], Left: "(", Right: ""}
	case len(opens) < len(strays):
		return &BracketError{Col: strays[0], Left: "", Right: ")"}
	}
	return nil
}
