package scicalc

// Option is an option for tokenizing and evaluating expressions.
type Option interface {
	option(config) config
}

type (
	invopt bool
	lenopt bool
)

// config holds the settings selected by options.
type config struct {
	// inverse swaps each function for its inverse at dispatch.
	inverse bool
	// lenient drops unrecognized runes instead of failing.
	lenient bool
}

// Inverse selects inverse-function mode, in which each function is replaced
// by its inverse when it is applied: sin, cos, and tan with asin, acos, and
// atan and vice versa, log with 10^x, ln with e^x, and sqrt with x².
func Inverse() Option {
	return invopt(true)
}

func (o invopt) option(c config) config {
	c.inverse = bool(o)
	return c
}

// Lenient tells the tokenizer to silently drop runes it does not recognize
// instead of returning a LexError. Malformed numbers are still errors.
func Lenient() Option {
	return lenopt(true)
}

func (o lenopt) option(c config) config {
	c.lenient = bool(o)
	return c
}

func configure(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}
