// Package scicalc implements the expression engine of a scientific
// calculator.
//
// Expressions are written the way they are typed on a calculator: "2+3×4",
// "√16", "5!", "sin(30)", "-2^2". They are tokenized, evaluated with a
// shunting-yard loop in float64 arithmetic, and formatted for display with
// Format, which rounds to 15 significant digits so that "0.1+0.2" shows as
// 0.3.
//
// Trigonometric functions use the AngleMode passed to Evaluate; there is no
// package-level state, so concurrent evaluations in different modes do not
// interfere.
//
// Precedence, from loosest to tightest: + and -; *, /, ×, and ÷; ^ (right
// associative); postfix ², !, and %, which apply immediately to the value
// before them; and functions, which apply to their parenthesized argument.
// A leading or unary minus negates the term after it, including a power, so
// "-2^2" is -4 and "2^-1" is 0.5.
package scicalc
