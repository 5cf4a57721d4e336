package scicalc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Token is a single lexical element of an expression. Tokens are values; the
// precedence and associativity of operators and functions are fixed by the
// operator table when the token is created.
type Token struct {
	// Kind is the variant of the token.
	Kind TokenKind
	// Text is the literal or symbol, e.g. "+", "sin", "(", or "2.5".
	Text string
	// Value is the numeric value of Number and Constant tokens.
	Value float64
	// Prec is the binding precedence of Operator and Function tokens, from 0
	// (none) to 4 (functions and postfix operators).
	Prec int8
	// Right indicates right-associativity.
	Right bool
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the variant of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenOperator is a binary or postfix operator.
	TokenOperator
	// TokenFunction is a named function of one argument.
	TokenFunction
	// TokenParen is an open or close parenthesis.
	TokenParen
	// TokenConstant is a named constant, π or e.
	TokenConstant
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenFunction:
		return "Function"
	case TokenParen:
		return "Paren"
	case TokenConstant:
		return "Constant"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be infix operators.
// × and ÷ are display forms of * and /.
const Operators = "+-*/^×÷"

// Postfix contains the runes which are considered to be postfix operators.
const Postfix = "²!%"

// funcnames lists the function names recognized by the tokenizer, longest
// first, so that a name is never shadowed by one of its own prefixes.
var funcnames = [...]string{"asin", "acos", "atan", "sqrt", "sin", "cos", "tan", "log", "ln"}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	fold cases.Caser
	rune int
	toks []Token
	// operand is whether the last token completed an operand. A - read while
	// operand is false is a negation.
	operand bool
	lenient bool
}

func lex(src io.RuneScanner, lenient bool) *lexer {
	return &lexer{
		src:     src,
		fold:    cases.Fold(),
		rune:    1,
		lenient: lenient,
	}
}

// Tokenize converts an expression into its token sequence.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	cfg := configure(opts)
	return lex(strings.NewReader(normalize(src)), cfg.lenient).run()
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// emit appends a token and records whether it completes an operand.
func (l *lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
	switch tok.Kind {
	case TokenNumber, TokenConstant:
		l.operand = true
	case TokenOperator:
		l.operand = postop(tok.Text).postfix
	case TokenFunction:
		l.operand = false
	case TokenParen:
		l.operand = tok.Text == ")"
	default:
		panic("scicalc: emit unknown token: " + tok.String())
	}
}

// run scans the entire input.
func (l *lexer) run() ([]Token, error) {
	for {
		pos := l.rune
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.toks, nil
			}
			return nil, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(pos); err != nil {
				return nil, err
			}
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanWord(pos); err != nil {
				return nil, err
			}
		case r == '(', r == ')':
			l.emit(Token{Kind: TokenParen, Text: string(r), Pos: pos})
		case r == '-':
			if l.operand {
				l.emit(opToken("-", pos))
				continue
			}
			// -x -> 0 - x, with the - binding tighter than any other
			// infix operator except a following ^.
			l.emit(Token{Kind: TokenNumber, Text: "0", Pos: pos})
			l.emit(negToken(pos))
		case r == '+' && !l.operand:
			// Unary plus does nothing.
			continue
		case r == '√':
			l.emit(funcToken("sqrt", pos))
		case r == '∞':
			l.emit(Token{Kind: TokenConstant, Text: "∞", Value: math.Inf(1), Pos: pos})
		case strings.ContainsRune(Operators, r):
			l.emit(opToken(string(r), pos))
		case strings.ContainsRune(Postfix, r):
			l.emit(opToken(string(r), pos))
		default:
			if l.lenient {
				continue
			}
			l.buf.Reset()
			l.buf.WriteRune(r)
			return nil, l.error(pos, "")
		}
	}
}

// scanNum scans a decimal number with an optional exponent written with an
// upper-case E, the form Format produces. A lower-case e is always the
// constant.
func (l *lexer) scanNum(pos int) error {
	l.buf.Reset()
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == 'E' && dig {
			l.buf.WriteRune(r)
			if err := l.scanExp(pos); err != nil {
				return err
			}
			break
		}
		if r != '.' && (r < '0' || '9' < r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		if r == '.' {
			if dot {
				return l.error(pos, "number")
			}
			dot = true
			continue
		}
		dig = true
	}
	if !dig {
		return l.error(pos, "number")
	}
	text := l.buf.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only range errors remain; ParseFloat still gives ±Inf or 0.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return l.error(pos, "number")
		}
	}
	l.emit(Token{Kind: TokenNumber, Text: text, Value: v, Pos: pos})
	return nil
}

// scanExp scans the signed digits following an exponent marker.
func (l *lexer) scanExp(pos int) error {
	var dig bool
	for first := true; ; first = false {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if first && (r == '+' || r == '-') {
			l.buf.WriteRune(r)
			continue
		}
		if r < '0' || '9' < r {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
	}
	if !dig {
		return l.error(pos, "number")
	}
	return nil
}

// scanWord scans a run of letters and splits it into functions and
// constants. Function names are matched without regard to case; constants
// are not.
func (l *lexer) scanWord(pos int) error {
	l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	word := []rune(l.buf.String())
	folded := []rune(l.fold.String(string(word)))
	if len(folded) != len(word) {
		// Folding changed the rune count, so offsets would disagree. Only
		// ASCII function names matter, so match them as written instead.
		folded = word
	}
	for i := 0; i < len(word); {
		if name := matchfunc(folded[i:]); name != "" {
			l.emit(funcToken(name, pos+i))
			i += len(name)
			continue
		}
		switch {
		case hasprefix(word[i:], "pi"):
			l.emit(Token{Kind: TokenConstant, Text: "pi", Value: math.Pi, Pos: pos + i})
			i += 2
		case word[i] == 'π':
			l.emit(Token{Kind: TokenConstant, Text: "π", Value: math.Pi, Pos: pos + i})
			i++
		case word[i] == 'e' && i == len(word)-1:
			// e is the constant only when no letter follows it.
			l.emit(Token{Kind: TokenConstant, Text: "e", Value: math.E, Pos: pos + i})
			i++
		case l.lenient:
			i++
		default:
			l.buf.Reset()
			l.buf.WriteString(string(word[i:]))
			return l.error(pos+i, "identifier")
		}
	}
	return nil
}

// matchfunc returns the function name that word starts with, or the empty
// string if there is none.
func matchfunc(word []rune) string {
	for _, name := range funcnames {
		if hasprefix(word, name) {
			return name
		}
	}
	return ""
}

func hasprefix(word []rune, prefix string) bool {
	i := 0
	for _, r := range prefix {
		if i >= len(word) || word[i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) error(col int, kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates an invalid token. It implements InputError and unwraps
// to ErrSyntax.
type LexError struct {
	// Text is the text the lexer was scanning when the invalid rune was
	// encountered, including the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "identifier", or the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the column of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrSyntax
}
