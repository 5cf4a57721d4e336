package scicalc

// Precedence levels, from loosest to tightest binding:
//
//	1	+ -          left
//	2	* / × ÷      left
//	3	^            right
//	3	unary -      right, written as 0 - x
//	4	² ! %        postfix, applied immediately
//	4	functions    applied when their argument's parenthesis closes

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// postfix indicates an operator applied to the preceding operand as soon
	// as it is read.
	postfix bool
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has a prec of 0.
func binop(text string) operator {
	switch text {
	case "+", "-":
		return operator{1, false, false}
	case "*", "/", "×", "÷":
		return operator{2, false, false}
	case "^":
		return operator{3, true, false}
	default:
		return operator{}
	}
}

// postop gets a postfix operator for a token string. If there is no such
// operator, then the result has a prec of 0.
func postop(text string) operator {
	switch text {
	case "²", "!", "%":
		return operator{4, false, true}
	default:
		return operator{}
	}
}

var (
	// negprec is the precedence of the subtraction in a negation 0 - x. It
	// binds tighter than multiplication, and being right-associative at the
	// level of ^ makes -2^2 = -(2^2) and 2^-1 = 2^(-1).
	negprec = operator{3, true, false}
	// funcprec is the precedence of a function awaiting its argument.
	funcprec = operator{4, false, false}
)

// canonop maps display forms of operators to the forms the dispatcher uses.
func canonop(text string) string {
	switch text {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return text
	}
}

// opToken creates an operator token. The text must be a binary or postfix
// operator.
func opToken(text string, pos int) Token {
	text = canonop(text)
	op := binop(text)
	if op.prec == 0 {
		op = postop(text)
	}
	if op.prec == 0 {
		panic("scicalc: not an operator: " + text)
	}
	return Token{Kind: TokenOperator, Text: text, Prec: op.prec, Right: op.right, Pos: pos}
}

// negToken creates the subtraction token of a negation.
func negToken(pos int) Token {
	return Token{Kind: TokenOperator, Text: "-", Prec: negprec.prec, Right: negprec.right, Pos: pos}
}

// funcToken creates a function token.
func funcToken(name string, pos int) Token {
	return Token{Kind: TokenFunction, Text: name, Prec: funcprec.prec, Pos: pos}
}

// negation reports whether t is the subtraction of a negation.
func (t Token) negation() bool {
	return t.Kind == TokenOperator && t.Text == "-" && t.Prec == negprec.prec && t.Right
}

// bindsBefore reports whether an operator on top of the operator stack must
// be applied before pushing next. A negation starts a new operand, so nothing
// on the stack is complete when one arrives.
func (top Token) bindsBefore(next Token) bool {
	if next.negation() {
		return false
	}
	if top.Prec != next.Prec {
		return top.Prec > next.Prec
	}
	return !next.Right
}

// reclassify checks a token supplied from outside the tokenizer and restores
// the precedence and associativity that the operator table assigns it. The
// subtraction of a negation keeps its precedence.
func reclassify(tok Token) (Token, error) {
	switch tok.Kind {
	case TokenNumber, TokenConstant:
		return tok, nil
	case TokenOperator:
		if tok.negation() {
			return negToken(tok.Pos), nil
		}
		text := canonop(tok.Text)
		if binop(text).prec == 0 && postop(text).prec == 0 {
			return tok, &OperatorError{Col: tok.Pos, Operator: tok.Text}
		}
		return opToken(text, tok.Pos), nil
	case TokenFunction:
		if globalfuncs[tok.Text] == nil {
			return tok, &OperatorError{Col: tok.Pos, Operator: tok.Text, Func: true}
		}
		return funcToken(tok.Text, tok.Pos), nil
	case TokenParen:
		if tok.Text != "(" && tok.Text != ")" {
			return tok, &OperatorError{Col: tok.Pos, Operator: tok.Text}
		}
		return tok, nil
	default:
		return tok, &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
}
