package decexpr

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zephyrtronium/decexpr/internal/config"
)

// DefaultScale is the number of fractional digits kept by engines created
// without a Scale option.
const DefaultScale = 15

// MaxScale is the largest scale an engine may use. It is also the largest
// value NewEngineFromEnv accepts from the environment.
const MaxScale = config.MaxScale

// Engine evaluates decimal expressions at a fixed scale. An Engine is
// immutable and safe for concurrent use.
type Engine struct {
	scale uint
	log   *zap.Logger
}

// Option is an option used when creating an engine.
type Option interface {
	engineOption()
}

type (
	scaleopt  uint
	loggeropt struct {
		l *zap.Logger
	}
)

func (scaleopt) engineOption()  {}
func (loggeropt) engineOption() {}

// Scale sets the number of fractional digits that results keep. Digits beyond
// the scale are truncated. Panics if n is larger than MaxScale.
func Scale(n uint) Option {
	if n > MaxScale {
		panic("decexpr: scale " + strconv.FormatUint(uint64(n), 10) + " too large")
	}
	return scaleopt(n)
}

// Logger sets the logger to which the engine reports evaluations at debug
// level. A nil logger disables logging.
func Logger(l *zap.Logger) Option {
	return loggeropt{l}
}

// NewEngine creates a new engine. If no scale is given, the default is
// DefaultScale.
func NewEngine(opts ...Option) *Engine {
	e := Engine{scale: DefaultScale, log: zap.NewNop()}
	return e.With(opts...)
}

// With creates a copy of an engine and applies options to it.
func (e *Engine) With(opts ...Option) *Engine {
	n := *e
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case scaleopt:
			n.scale = uint(opt)
		case loggeropt:
			n.log = opt.l
			if n.log == nil {
				n.log = zap.NewNop()
			}
		default:
			panic("decexpr: unknown option type")
		}
	}
	return &n
}

// Scale returns the number of fractional digits to which values are computed.
func (e *Engine) Scale() uint {
	return e.scale
}

// Evaluate evaluates an arithmetic expression and returns the result with
// trailing fractional zeroes removed.
func (e *Engine) Evaluate(src string) (string, error) {
	return e.evaluate(src, true)
}

// EvaluateFixed evaluates an arithmetic expression and returns the result
// with exactly Scale() fractional digits.
func (e *Engine) EvaluateFixed(src string) (string, error) {
	return e.evaluate(src, false)
}

func (e *Engine) evaluate(src string, cut bool) (string, error) {
	d, err := e.Value(src)
	if err != nil {
		return "", err
	}
	s, err := e.format(d, cut)
	if err != nil {
		e.log.Debug("unformattable result", zap.String("expr", src), zap.Error(err))
		return "", err
	}
	e.log.Debug("evaluated", zap.String("expr", src), zap.String("result", s), zap.Uint("scale", e.scale))
	return s, nil
}

// Value evaluates an arithmetic expression to a decimal truncated to the
// engine's scale.
func (e *Engine) Value(src string) (decimal.Decimal, error) {
	s := e.Normalize(src)
	d, err := e.value(s)
	if err != nil {
		e.log.Debug("evaluation failed", zap.String("expr", src), zap.String("normalized", s), zap.Error(err))
		return decimal.Zero, err
	}
	return d, nil
}

// value evaluates a normalized expression.
func (e *Engine) value(s string) (decimal.Decimal, error) {
	if err := validate(s); err != nil {
		return decimal.Zero, err
	}
	n, err := parse(strings.NewReader(s))
	if err != nil {
		return decimal.Zero, err
	}
	f := frame{e: e, stack: make([]decimal.Decimal, 0, 8)}
	if err := n.eval(&f); err != nil {
		return decimal.Zero, err
	}
	if len(f.stack) != 1 {
		panic("decexpr: inconsistent stack: " + strconv.Itoa(len(f.stack)) + " items (bad AST?)")
	}
	return e.trunc(f.stack[0]), nil
}

// frame holds the value stack of a single evaluation.
type frame struct {
	e     *Engine
	stack []decimal.Decimal
}

func (f *frame) push(d decimal.Decimal) {
	f.stack = append(f.stack, d)
}

// pop removes the top from the stack and returns it.
func (f *frame) pop() decimal.Decimal {
	r := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack for replacement.
func (f *frame) top() *decimal.Decimal {
	return &f.stack[len(f.stack)-1]
}

// num parses the text of a number token.
func num(s string) (decimal.Decimal, error) {
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &NumberError{Text: s}
	}
	return d, nil
}

// eval pushes the node's value to the frame's stack.
func (n *node) eval(f *frame) error {
	switch n.kind {
	case nodeNum:
		d, err := num(n.name)
		if err != nil {
			return err
		}
		f.push(d)
	case nodeCall:
		k := len(f.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(f); err != nil {
				return err
			}
		}
		r := n.fn.call(f.stack[k:len(f.stack):len(f.stack)])
		f.stack = f.stack[:k]
		f.push(f.e.trunc(r))
	case nodeArg:
		panic("decexpr: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(f); err != nil {
			return err
		}
		v := f.top()
		*v = v.Neg()
	case nodeNop:
		if err := n.left.eval(f); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := n.left.eval(f); err != nil {
			return err
		}
		if err := n.right.eval(f); err != nil {
			return err
		}
		r := f.pop()
		l := f.top()
		v, err := f.e.binary(n.kind, *l, r)
		if err != nil {
			return err
		}
		*l = v
	default:
		panic("decexpr: invalid AST node " + n.kind.String())
	}
	return nil
}

// Calc is a shortcut to evaluate an expression with a default engine.
func Calc(src string) (string, error) {
	return NewEngine().Evaluate(src)
}

// IsTrue is a shortcut to evaluate a comparison with a default engine.
func IsTrue(src string) (bool, error) {
	return NewEngine().IsTrue(src)
}
