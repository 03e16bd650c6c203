package decexpr

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// cmpRE matches comparison operators. Any run of one to three equals signs is
// equality.
var cmpRE = regexp.MustCompile(`>=|<=|<|>|={1,3}`)

// IsTrue evaluates a chain of comparisons such as "1 < 2 <= 1+1". Each
// operand is evaluated as by Evaluate, then each adjacent pair is compared.
// The chain is true iff every pair satisfies its operator. Pairs are compared
// independently, so "1 < 2 > 0" is true even though 1 is not greater than 0.
//
// Every operand is evaluated before any comparison, so an error in any
// operand is always reported.
func (e *Engine) IsTrue(src string) (bool, error) {
	s := e.Normalize(src)
	ops, vals, err := e.chain(s)
	if err != nil {
		e.log.Debug("comparison failed", zap.String("expr", src), zap.String("normalized", s), zap.Error(err))
		return false, err
	}
	for i, op := range ops {
		if !holds(op, vals[i], vals[i+1]) {
			e.log.Debug("compared", zap.String("expr", src), zap.Int("pair", i), zap.String("op", op), zap.Bool("result", false))
			return false, nil
		}
	}
	e.log.Debug("compared", zap.String("expr", src), zap.Int("pairs", len(ops)), zap.Bool("result", true))
	return true, nil
}

// chain splits a normalized comparison into its operators and evaluates its
// operands.
func (e *Engine) chain(s string) ([]string, []decimal.Decimal, error) {
	locs := cmpRE.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil, nil, &ComparisonError{Col: utf8.RuneCountInString(s) + 1}
	}
	ops := make([]string, len(locs))
	operands := make([]string, 0, len(locs)+1)
	prev := 0
	for i, loc := range locs {
		ops[i] = s[loc[0]:loc[1]]
		if loc[0] == prev {
			// Missing operand before this operator.
			return nil, nil, &EmptyExpressionError{Col: utf8.RuneCountInString(s[:loc[0]]) + 1, End: ops[i]}
		}
		operands = append(operands, s[prev:loc[0]])
		prev = loc[1]
	}
	if prev == len(s) {
		return nil, nil, &EmptyExpressionError{Col: utf8.RuneCountInString(s) + 1, End: ""}
	}
	operands = append(operands, s[prev:])
	vals := make([]decimal.Decimal, len(operands))
	for i, x := range operands {
		v, err := e.value(x)
		if err != nil {
			return nil, nil, err
		}
		vals[i] = v
	}
	return ops, vals, nil
}

// holds reports whether x op y.
func holds(op string, x, y decimal.Decimal) bool {
	c := x.Cmp(y)
	switch op {
	case ">=":
		return c >= 0
	case "<=":
		return c <= 0
	case ">":
		return c == 1
	case "<":
		return c == -1
	case "=", "==", "===":
		return c == 0
	default:
		panic("decexpr: unknown comparison operator " + op)
	}
}
