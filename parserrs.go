package scicalc

import (
	"errors"
	"strconv"
)

var (
	// ErrSyntax is the category of errors caused by malformed expressions.
	// Every such error unwraps to it.
	ErrSyntax = errors.New("syntax error")
	// ErrDomain is the category of errors caused by applying an operator or
	// function outside its domain. DomainError unwraps to it.
	ErrDomain = errors.New("domain error")
)

// OperatorError is an error indicating an operator or function that is not
// understood. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Func is whether the token was a function.
	Func bool
}

func (err *OperatorError) Error() string {
	s := "operator"
	if err.Func {
		s = "function"
	}
	return errpos(err.Col, "unknown "+s+" "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, if it is the unmatched one.
	Left string
	// Right is the closing parenthesis, if it is the unmatched one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "mismatched parentheses: close "+err.Right+" with no open")
	}
	return errpos(err.Col, "mismatched parentheses: open "+err.Left+" with no close")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// OperandError is an error indicating an operator or function applied with
// too few operands, as in "2*" or "sin()". It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator or function name.
	Operator string
	// Want is the number of operands the operator needs.
	Want int
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "missing operand for "+strconv.Quote(err.Operator)+
		": need "+strconv.Itoa(err.Want)+", have "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Unwrap() error {
	return ErrSyntax
}

// ExpressionError is an error indicating that evaluation finished with other
// than exactly one value, as in "2 3" or "()". It implements InputError.
type ExpressionError struct {
	// Col is the position of the last token of the expression.
	Col int
	// Values is the number of values left after evaluation.
	Values int
}

func (err *ExpressionError) Error() string {
	return errpos(err.Col, "invalid expression: "+strconv.Itoa(err.Values)+" values left")
}

func (err *ExpressionError) Pos() int {
	return err.Col
}

func (err *ExpressionError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an expression with no tokens.
type EmptyExpressionError struct {
	// Col is the position at which the expression ended.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*ExpressionError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*DomainError)(nil)
)
