package decexpr

import (
	"github.com/shopspring/decimal"
)

// function is a builtin function over decimals.
type function struct {
	// min and max bound the number of arguments. max < 0 means no upper
	// bound.
	min, max int
	call     func(args []decimal.Decimal) decimal.Decimal
}

// CanCall returns whether the function can be called with n arguments.
func (f *function) CanCall(n int) bool {
	return n >= f.min && (f.max < 0 || n <= f.max)
}

var globalfuncs = map[string]*function{
	"abs": {min: 1, max: 1, call: func(args []decimal.Decimal) decimal.Decimal {
		return args[0].Abs()
	}},
	"min": {min: 2, max: -1, call: func(args []decimal.Decimal) decimal.Decimal {
		return decimal.Min(args[0], args[1:]...)
	}},
	"max": {min: 2, max: -1, call: func(args []decimal.Decimal) decimal.Decimal {
		return decimal.Max(args[0], args[1:]...)
	}},
}
