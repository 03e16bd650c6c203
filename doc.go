// Package decexpr implements an arbitrary-precision decimal calculator.
//
// Expressions are made of decimal numbers, the operators + - * / % ^,
// parentheses, and the functions abs, min, and max. Whitespace is ignored,
// numbers may use scientific notation like 1.5E-3, and a number or a closing
// parenthesis directly before an opening parenthesis multiplies: "2(1+1)" is
// 4. Signs bind tightest, then ^, then * / %, then + -, and operators of equal
// precedence apply left to right, so "2^3^2" is 64 and "-2^2" is 4.
//
// Arithmetic is exact in base 10 up to a fixed scale, the number of
// fractional digits kept after every operation. Extra digits are truncated.
// The one exception is raising to a fractional power, which goes through a
// floating-point step accurate to about 14 significant digits.
//
// Comparisons like "1 < 2 <= 1+1" chain pairwise: each operand is compared
// only with its neighbors.
//
package decexpr
