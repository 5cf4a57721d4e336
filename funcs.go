package scicalc

import (
	"math"
	"strconv"
	"strings"
)

// AngleMode selects the unit of angles taken and returned by trigonometric
// functions.
type AngleMode int8

const (
	// Degrees measures angles in degrees.
	Degrees AngleMode = iota
	// Radians measures angles in radians.
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseAngleMode parses "deg", "degrees", "rad", or "radians", ignoring case.
func ParseAngleMode(s string) (AngleMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, true
	case "rad", "radian", "radians":
		return Radians, true
	default:
		return Degrees, false
	}
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Func is a function of one real argument. The angle mode applies only to
// trigonometric functions.
type Func func(x float64, angle AngleMode) (float64, error)

var globalfuncs = map[string]Func{
	"sin":  trig(math.Sin),
	"cos":  trig(math.Cos),
	"tan":  trig(math.Tan),
	"asin": arc(math.Asin),
	"acos": arc(math.Acos),
	"atan": arc(math.Atan),
	"log":  positive("log", math.Log10),
	"ln":   positive("ln", math.Log),
	"sqrt": func(x float64, _ AngleMode) (float64, error) {
		if x < 0 {
			return 0, &DomainError{X: x, Func: "sqrt", Reason: "square root of negative number"}
		}
		return math.Sqrt(x), nil
	},

	// Reached through inverse mode only; the tokenizer never produces them.
	"10^x": plain(func(x float64) float64 { return math.Pow(10, x) }),
	"e^x":  plain(math.Exp),
	"x²":   plain(func(x float64) float64 { return x * x }),
}

// inverses maps each function to the one applied in inverse mode.
var inverses = map[string]string{
	"sin":  "asin",
	"cos":  "acos",
	"tan":  "atan",
	"asin": "sin",
	"acos": "cos",
	"atan": "tan",
	"log":  "10^x",
	"ln":   "e^x",
	"sqrt": "x²",
}

// trig wraps a trigonometric function so that it takes its argument in the
// angle mode's unit.
func trig(f func(float64) float64) Func {
	return func(x float64, angle AngleMode) (float64, error) {
		if angle == Degrees {
			x *= degToRad
		}
		return f(x), nil
	}
}

// arc wraps an inverse trigonometric function so that it returns its result
// in the angle mode's unit.
func arc(f func(float64) float64) Func {
	return func(x float64, angle AngleMode) (float64, error) {
		r := f(x)
		if angle == Degrees {
			r *= radToDeg
		}
		return r, nil
	}
}

// positive wraps a function defined only for positive arguments.
func positive(name string, f func(float64) float64) Func {
	return func(x float64, _ AngleMode) (float64, error) {
		if x <= 0 {
			return 0, &DomainError{X: x, Func: name, Reason: name + " of non-positive number"}
		}
		return f(x), nil
	}
}

func plain(f func(float64) float64) Func {
	return func(x float64, _ AngleMode) (float64, error) {
		return f(x), nil
	}
}

// call applies the named function.
func call(name string, x float64, angle AngleMode, inverse bool) (float64, error) {
	if inverse {
		if inv, ok := inverses[name]; ok {
			name = inv
		}
	}
	f := globalfuncs[name]
	if f == nil {
		return 0, &OperatorError{Operator: name, Func: true}
	}
	return f(x, angle)
}

// maxFactorial is the largest n for which n! is finite in a float64.
const maxFactorial = 170

// factorial computes x! for integral x in [0, 170].
func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Floor(x) {
		return 0, &DomainError{X: x, Func: "!", Reason: "factorial only works with non-negative integers"}
	}
	if x > maxFactorial {
		return 0, &DomainError{X: x, Func: "!", Reason: "factorial argument too large (max 170)"}
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}

// DomainError is an error returned when an operator or function is applied
// to arguments outside its domain. It implements InputError and unwraps to
// ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the operator or function.
	Func string
	// Reason describes the violation.
	Reason string
	// Col is the position of the operator, or 0 if unknown.
	Col int
}

func (err *DomainError) Error() string {
	r := err.Reason
	if r == "" {
		r = strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
		if err.Func != "" {
			r += " of " + err.Func
		}
	}
	if err.Col > 0 {
		return errpos(err.Col, r)
	}
	return r
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}
