package scicalc

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// divEpsilon is the magnitude below which a divisor counts as zero.
const divEpsilon = 1e-15

var displayops = strings.NewReplacer("×", "*", "÷", "/")

// normalize replaces display-only operator symbols with their plain forms.
// Each replacement is one rune, so columns are unchanged.
func normalize(src string) string {
	return displayops.Replace(src)
}

// evaluator holds the two stacks of a single evaluation.
type evaluator struct {
	nums    []float64
	ops     []Token
	angle   AngleMode
	inverse bool
}

// Evaluate tokenizes and evaluates an expression. The angle mode selects the
// unit of trigonometric functions. If an error occurs, the result is 0 and the
// error is one of the types implementing InputError, unwrapping to ErrSyntax
// or ErrDomain.
func Evaluate(src string, angle AngleMode, opts ...Option) (float64, error) {
	cfg := configure(opts)
	if strings.TrimSpace(src) == "" {
		return 0, &EmptyExpressionError{Col: utf8.RuneCountInString(src) + 1}
	}
	toks, err := lex(strings.NewReader(normalize(src)), cfg.lenient).run()
	if err != nil {
		return 0, err
	}
	return evaltokens(toks, angle, cfg)
}

// EvalTokens evaluates a token sequence, such as one produced by Tokenize.
// Operator and function tokens take their precedence from the operator table
// regardless of their Prec and Right fields.
func EvalTokens(toks []Token, angle AngleMode, opts ...Option) (float64, error) {
	cfg := configure(opts)
	checked := make([]Token, len(toks))
	for i, tok := range toks {
		tok, err := reclassify(tok)
		if err != nil {
			return 0, err
		}
		checked[i] = tok
	}
	return evaltokens(checked, angle, cfg)
}

func evaltokens(toks []Token, angle AngleMode, cfg config) (float64, error) {
	if len(toks) == 0 {
		return 0, &EmptyExpressionError{Col: 1}
	}
	ev := evaluator{
		nums:    make([]float64, 0, len(toks)/2+1),
		angle:   angle,
		inverse: cfg.inverse,
	}
	return ev.run(toks)
}

// run is the shunting-yard loop.
func (ev *evaluator) run(toks []Token) (float64, error) {
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNumber, TokenConstant:
			ev.nums = append(ev.nums, tok.Value)
		case TokenFunction:
			// Resolved when the parenthesis around its argument closes.
			ev.ops = append(ev.ops, tok)
		case TokenOperator:
			if postop(tok.Text).postfix {
				if err := ev.apply(tok); err != nil {
					return 0, err
				}
				continue
			}
			for len(ev.ops) > 0 {
				top := ev.ops[len(ev.ops)-1]
				if top.Kind == TokenParen || !top.bindsBefore(tok) {
					break
				}
				ev.ops = ev.ops[:len(ev.ops)-1]
				if err := ev.apply(top); err != nil {
					return 0, err
				}
			}
			ev.ops = append(ev.ops, tok)
		case TokenParen:
			if tok.Text == "(" {
				ev.ops = append(ev.ops, tok)
				continue
			}
			if err := ev.close(tok); err != nil {
				return 0, err
			}
		default:
			panic("scicalc: unknown token: " + tok.String())
		}
	}
	for len(ev.ops) > 0 {
		top := ev.ops[len(ev.ops)-1]
		ev.ops = ev.ops[:len(ev.ops)-1]
		if top.Kind == TokenParen {
			return 0, &BracketError{Col: top.Pos, Left: top.Text}
		}
		if err := ev.apply(top); err != nil {
			return 0, err
		}
	}
	if len(ev.nums) != 1 {
		return 0, &ExpressionError{Col: toks[len(toks)-1].Pos, Values: len(ev.nums)}
	}
	return ev.nums[0], nil
}

// close handles a close parenthesis: everything back to the matching open
// parenthesis is applied, then the function owning the group, if any.
func (ev *evaluator) close(tok Token) error {
	for {
		if len(ev.ops) == 0 {
			return &BracketError{Col: tok.Pos, Right: tok.Text}
		}
		top := ev.ops[len(ev.ops)-1]
		ev.ops = ev.ops[:len(ev.ops)-1]
		if top.Kind == TokenParen && top.Text == "(" {
			break
		}
		if err := ev.apply(top); err != nil {
			return err
		}
	}
	if n := len(ev.ops); n > 0 && ev.ops[n-1].Kind == TokenFunction {
		fn := ev.ops[n-1]
		ev.ops = ev.ops[:n-1]
		return ev.apply(fn)
	}
	return nil
}

// apply pops the operands of an operator or function, dispatches it, and
// pushes the result.
func (ev *evaluator) apply(tok Token) error {
	var err error
	switch tok.Kind {
	case TokenFunction:
		err = ev.unary(tok, func(x float64) (float64, error) {
			return call(tok.Text, x, ev.angle, ev.inverse)
		})
	case TokenOperator:
		if postop(tok.Text).postfix {
			err = ev.unary(tok, func(x float64) (float64, error) {
				return postfix(tok.Text, x)
			})
			break
		}
		if len(ev.nums) < 2 {
			return &OperandError{Col: tok.Pos, Operator: tok.Text, Want: 2, Have: len(ev.nums)}
		}
		r := ev.nums[len(ev.nums)-1]
		ev.nums = ev.nums[:len(ev.nums)-1]
		l := &ev.nums[len(ev.nums)-1]
		*l, err = binary(tok.Text, *l, r)
	default:
		panic("scicalc: apply on non-operator " + tok.String())
	}
	if err != nil {
		return withpos(err, tok.Pos)
	}
	return nil
}

// unary replaces the top operand with f of it.
func (ev *evaluator) unary(tok Token, f func(float64) (float64, error)) error {
	if len(ev.nums) < 1 {
		return &OperandError{Col: tok.Pos, Operator: tok.Text, Want: 1}
	}
	x := &ev.nums[len(ev.nums)-1]
	r, err := f(*x)
	if err != nil {
		return err
	}
	*x = r
	return nil
}

// withpos fills in the position of a dispatch error.
func withpos(err error, pos int) error {
	var de *DomainError
	if errors.As(err, &de) && de.Col == 0 {
		de.Col = pos
	}
	var oe *OperatorError
	if errors.As(err, &oe) && oe.Col == 0 {
		oe.Col = pos
	}
	return err
}

// binary applies a binary operator.
func binary(op string, l, r float64) (float64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		// Guard against division by zero, or nearly so.
		if math.Abs(r) < divEpsilon {
			return 0, &DomainError{X: r, Func: "/", Reason: "division by zero"}
		}
		return l / r, nil
	case "^":
		if l == 0 && r < 0 {
			return 0, &DomainError{X: r, Func: "^", Reason: "0 to negative power is undefined"}
		}
		if l < 0 && r != math.Floor(r) {
			return 0, &DomainError{X: l, Func: "^", Reason: "complex result: negative base with non-integer exponent"}
		}
		return math.Pow(l, r), nil
	default:
		return 0, &OperatorError{Operator: op}
	}
}

// postfix applies a postfix operator.
func postfix(op string, x float64) (float64, error) {
	switch op {
	case "²":
		return x * x, nil
	case "!":
		return factorial(x)
	case "%":
		return x / 100, nil
	default:
		return 0, &OperatorError{Operator: op}
	}
}
