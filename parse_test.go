package decexpr

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name || n.fn != m.fn {
			return n, m
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeArg, nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestSignsBindTightest(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		if b.op == nodeNone {
			continue
		}
		for _, u := range []string{"+", "-"} {
			if !unop(u).moreBinding(b) {
				t.Errorf("unary %s does not bind tighter than binary %c", u, r)
			}
		}
	}
}

func TestGlobalFuncs(t *testing.T) {
	cases := []struct {
		name string
		can  []int
		cant []int
	}{
		{"abs", []int{1}, []int{0, 2}},
		{"min", []int{2, 3, 10}, []int{0, 1}},
		{"max", []int{2, 3, 10}, []int{0, 1}},
	}
	if len(globalfuncs) != len(cases) {
		t.Errorf("want %d functions, have %d", len(cases), len(globalfuncs))
	}
	for _, c := range cases {
		fn := globalfuncs[c.name]
		if fn == nil {
			t.Errorf("no function %s", c.name)
			continue
		}
		for _, n := range c.can {
			if !fn.CanCall(n) {
				t.Errorf("%s cannot take %d arguments", c.name, n)
			}
		}
		for _, n := range c.cant {
			if fn.CanCall(n) {
				t.Errorf("%s can take %d arguments", c.name, n)
			}
		}
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "(((1)))", "1"},

		{"plus", "+1", "(+(1))"},
		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"mod", "1%2", "((1)%(2))"},
		{"pow", "1^2", "((1)^(2))"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"muldiv", "1*3/2*3", "((1*3)/2)*3"},
		{"mod4", "1%2%3%4", "((1%2)%3)%4"},
		{"pow4", "1^2^3^4", "((1^2)^3)^4"},

		{"negpow", "-2^2", "(-2)^2"},
		{"desc", "1^2*3+4", "((1^2)*3)+4"},
		{"asc", "1+2*3^4", "1+(2*(3^4))"},
		{"descasc", "1^2*3+4+5*6^7", "(((1^2)*3)+4)+(5*(6^7))"},
		{"powmod", "2^4%3^2", "(2^4)%(3^2)"},
		{"modmul", "1%2*3", "(1%2)*3"},
		{"negneg", "--1", "-(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"subneg", "1--1", "1-(-1)"},
		{"powneg", "2^-2", "2^(-2)"},
		{"pownegpow", "2^-2^3", "(2^(-2))^3"},
		{"mulneg", "2*-3+1", "(2*(-3))+1"},

		{"call1", "abs(1+2)", "abs((1+2))"},
		{"call3", "max(1,2,3)", "max((1),(2),(3))"},
		{"callnested", "min(abs(-1),(2))", "min(abs(-(1)),2)"},
		{"callpow", "abs(2)^2", "(abs(2))^2"},
		{"powcall", "2^-abs(1)", "2^(-(abs(1)))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := parse(strings.NewReader(c.a))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := parse(strings.NewReader(c.b))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.diff(b)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a, d, c.b, b, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	num := func(s string) *node { return &node{kind: nodeNum, name: s} }
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{"num", "1.5", num("1.5")},
		{"leading-dot", ".5", num(".5")},
		{"leading-zero", "010", num("010")},
		{"neg", "-1", &node{kind: nodeNeg, left: num("1")}},
		{"sub", "2-1", &node{kind: nodeSub, left: num("2"), right: num("1")}},
		{"call", "max(1,2)", &node{
			kind: nodeCall,
			name: "max",
			fn:   globalfuncs["max"],
			right: &node{
				kind:  nodeArg,
				left:  num("1"),
				right: &node{kind: nodeArg, left: num("2")},
			},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			d, e := a.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST: %q parses %v has %v, want %v has %v", c.src, a, d, c.n, e)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []string{
		"1",
		"-1",
		"+1",
		"1+2*3^4",
		"1^2*3+4",
		"2^4%3^2",
		"(1+2)*(3-4)",
		"--1",
		"2^-2",
		"abs(-1)",
		"max(1,2,3)",
		"min(abs(-5),3,max(1,2))",
		"1.5/.5",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := parse(strings.NewReader(src))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", src, err)
			}
			s := a.String()
			b, err := parse(strings.NewReader(s))
			if err != nil {
				t.Fatalf("failed to parse formatted %q (from %q): %v", s, src, err)
			}
			d, e := a.diff(b)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", src, a, d, s, b, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\bno\b.*\bexpression\b`}, []string{`(?i)\bend\b`}},
		{"emptyparen", "()", new(EmptyExpressionError), []string{`(?i)\bno\b.*\bexpression\b`, `\)`}, nil},
		{"emptyoperand", "1*", new(EmptyExpressionError), []string{`(?i)\bno\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyunary", "1*-", new(EmptyExpressionError), []string{`(?i)\bno\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"op-paren", "(1*)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"sign-paren", "(+)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"left", "(1", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"right", "1)", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"nonunary", "*1", new(OperatorError), []string{`(?i)\bunary\b`, `(?i)\bop`, `\*`}, nil},
		{"nonunary-pow", "2*^1", new(OperatorError), []string{`(?i)\bunary\b`, `\^`}, nil},
		{"sep", "1,2", new(SeparatorError), []string{`","`}, nil},
		{"sepbrackets", "(1,2)", new(SeparatorError), []string{`","`}, nil},
		{"juxtaposed", "(1)2", new(MissingOperatorError), []string{`(?i)\bmissing\b`, `"2"`}, nil},
		{"juxtaposed-call", "(1)abs(1)", new(MissingOperatorError), []string{`"abs"`}, nil},
		{"name", "foo(1)", new(NameError), []string{`(?i)\bundefined\b`, `"foo"`}, nil},
		{"name-letter", "2*x", new(NameError), []string{`"x"`}, nil},
		{"call-bare", "abs", new(CallError), []string{`(?i)\bcall\b`, `\babs\b`, `\b0\b`}, nil},
		{"call-sign", "abs-1", new(CallError), []string{`\babs\b`, `\b0\b`}, nil},
		{"call-0", "abs()", new(CallError), []string{`(?i)\bcall\b`, `\babs\b`, `\b0\b`}, nil},
		{"call-2", "abs(1,2)", new(CallError), []string{`\babs\b`, `\b2\b`}, nil},
		{"min-1", "min(1)", new(CallError), []string{`\bmin\b`, `\b1\b`}, nil},
		{"max-0", "max()", new(CallError), []string{`\bmax\b`, `\b0\b`}, nil},
		{"call-pareneof", "abs(", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"call-argeof", "max(1,2", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"call-leading", "max(,1)", new(SeparatorError), []string{`","`}, nil},
		{"call-trailing", "max(1,)", new(EmptyExpressionError), []string{`(?i)\bno\b.*\bexpression\b`, `\)`}, nil},
		{"call-double", "max(1,,2)", new(SeparatorError), []string{`","`}, nil},
		{"lexer", "2^abs(-$)", new(LexError), []string{`\$`}, nil},
		{"lexer-number", "1.2.3", new(LexError), []string{`(?i)\bnumber\b`, `1\.2\.`}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := parse(strings.NewReader(c.src))
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "1^2*3+4+5*6^7"},
		{"descasc-parens", "(((1^2)*3)+4)+5*(6^7)"},
		{"nums", "1.0000000001+2.1*3-2^(1+4/2)"},
		{"call", "min(abs(-5),3,max(1,2))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				parse(&src)
			}
		})
	}
}
