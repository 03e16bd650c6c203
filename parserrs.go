package decexpr

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

// Error kinds. Every error returned by an Engine matches exactly one of these
// with errors.Is.
var (
	// ErrMalformed is the kind of errors caused by expressions with broken
	// structure: unbalanced brackets, missing operands, misplaced separators,
	// or comparisons without an operator.
	ErrMalformed = errors.New("malformed expression")
	// ErrDivisionByZero is the kind of errors from division or modulo by
	// zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupported is the kind of errors from input which is not a decimal
	// expression at all, such as letters or stray symbols, and from
	// operations without a decimal result.
	ErrUnsupported = errors.New("unsupported expression")
)

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrMalformed
}

// MissingOperatorError is an error indicating two adjacent terms with no
// operator between them, e.g. "(1)2". It implements InputError.
type MissingOperatorError struct {
	// Col is the position of the second term.
	Col int
	// Text is the token that starts the second term.
	Text string
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
}

func (err *MissingOperatorError) Pos() int {
	return err.Col
}

func (err *MissingOperatorError) Unwrap() error {
	return ErrMalformed
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMalformed
}

// SeparatorError is an error indicating a comma outside of a function
// argument list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrMalformed
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the argument list.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the function call tried to imply.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrMalformed
}

// EmptyExpressionError is an error indicating an empty subexpression or a
// missing operand. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrMalformed
}

// ComparisonError is an error indicating that a comparison has no comparison
// operator. It implements InputError.
type ComparisonError struct {
	// Col is the position of the end of the expression.
	Col int
}

func (err *ComparisonError) Error() string {
	return errpos(err.Col, "no comparison operator")
}

func (err *ComparisonError) Pos() int {
	return err.Col
}

func (err *ComparisonError) Unwrap() error {
	return ErrMalformed
}

// NameError is an error indicating a word that is not a function name. It
// implements InputError.
type NameError struct {
	// Col is the position of the word.
	Col int
	// Name is the word.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined function: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnsupported
}

// NumberError is an error indicating text which should be a signed decimal
// number but isn't.
type NumberError struct {
	// Text is the offending text.
	Text string
}

func (err *NumberError) Error() string {
	return "not a decimal number: " + strconv.Quote(err.Text)
}

func (err *NumberError) Unwrap() error {
	return ErrUnsupported
}

// ZeroDivisionError is an error from dividing by zero.
type ZeroDivisionError struct {
	// X is the dividend.
	X decimal.Decimal
	// Op is the operator, either "/" or "%".
	Op string
}

func (err *ZeroDivisionError) Error() string {
	return "division by zero: " + err.X.String() + " " + err.Op + " 0"
}

func (err *ZeroDivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// DomainError is an error returned when an operation has no decimal result
// for its arguments.
type DomainError struct {
	// X is the out-of-domain argument.
	X decimal.Decimal
	// Func is a name identifying the operation.
	Func string
	// Reason is a short description of the problem.
	Reason string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Reason != "" {
		r += " (" + err.Reason + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return ErrUnsupported
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid expression syntax implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error. Positions count
	// runes of the normalized expression, which has no whitespace.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*ComparisonError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*LexError)(nil)
)
