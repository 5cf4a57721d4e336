package scicalc

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/bigfloat"
)

// oraclePrec is the precision of reference results.
const oraclePrec = 256

func bf(x float64) *big.Float {
	return new(big.Float).SetPrec(oraclePrec).SetFloat64(x)
}

// near reports whether got is within a relative 1e-14 of want.
func near(got float64, want *big.Float) bool {
	w, _ := want.Float64()
	if w == 0 {
		return math.Abs(got) < 1e-300
	}
	return math.Abs(got-w) <= 1e-14*math.Abs(w)
}

func TestFuncsOracle(t *testing.T) {
	ln10 := bigfloat.Log(new(big.Float).SetPrec(oraclePrec), bf(10))
	cases := []struct {
		name   string
		inputs []float64
		oracle func(x *big.Float) *big.Float
	}{
		{"ln", []float64{1e-300, 0.001, 0.5, 1, 2, math.E, 10, 12345.678, 1e300}, func(x *big.Float) *big.Float {
			return bigfloat.Log(new(big.Float).SetPrec(oraclePrec), x)
		}},
		{"log", []float64{1e-300, 0.001, 0.5, 2, 10, 1000, 12345.678, 1e300}, func(x *big.Float) *big.Float {
			r := bigfloat.Log(new(big.Float).SetPrec(oraclePrec), x)
			return r.Quo(r, ln10)
		}},
		{"sqrt", []float64{0.25, 2, 3, 16, 1e-300, 1e300}, func(x *big.Float) *big.Float {
			return new(big.Float).SetPrec(oraclePrec).Sqrt(x)
		}},
		{"e^x", []float64{-20, -1, 0.5, 1, 2, 10, 100}, func(x *big.Float) *big.Float {
			return bigfloat.Exp(new(big.Float).SetPrec(oraclePrec), x)
		}},
		{"10^x", []float64{-20, -1, 0.5, 1, 2, 10, 100}, func(x *big.Float) *big.Float {
			return bigfloat.Pow(new(big.Float).SetPrec(oraclePrec), bf(10), x)
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			for _, x := range c.inputs {
				got, err := call(c.name, x, Radians, false)
				if err != nil {
					t.Errorf("%s(%v): unexpected error %v", c.name, x, err)
					continue
				}
				want := c.oracle(bf(x))
				if !near(got, want) {
					t.Errorf("%s(%v): want %v, got %v", c.name, x, want.Text('g', 20), got)
				}
			}
		})
	}
}

func TestPowOracle(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{2, 0.5},
		{2, 10},
		{3, -2},
		{1.5, 2.5},
		{10, -7},
		{7, 1.0 / 3},
	}
	for _, c := range cases {
		got, err := binary("^", c.x, c.y)
		if err != nil {
			t.Errorf("%v^%v: unexpected error %v", c.x, c.y, err)
			continue
		}
		want := bigfloat.Pow(new(big.Float).SetPrec(oraclePrec), bf(c.x), bf(c.y))
		if !near(got, want) {
			t.Errorf("%v^%v: want %v, got %v", c.x, c.y, want.Text('g', 20), got)
		}
	}
}

func TestTrig(t *testing.T) {
	cases := []struct {
		name  string
		x     float64
		angle AngleMode
		want  float64
	}{
		{"sin", 30, Degrees, 0.5},
		{"sin", math.Pi / 6, Radians, 0.5},
		{"cos", 180, Degrees, -1},
		{"cos", 0, Radians, 1},
		{"tan", 45, Degrees, 1},
		{"asin", 0.5, Degrees, 30},
		{"asin", 1, Radians, math.Pi / 2},
		{"acos", -1, Degrees, 180},
		{"acos", 0, Radians, math.Pi / 2},
		{"atan", 1, Degrees, 45},
		{"atan", 1, Radians, math.Pi / 4},
	}
	for _, c := range cases {
		got, err := call(c.name, c.x, c.angle, false)
		if err != nil {
			t.Errorf("%s(%v) %v: unexpected error %v", c.name, c.x, c.angle, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%s(%v) %v: want %v, got %v", c.name, c.x, c.angle, c.want, got)
		}
	}
	for _, name := range []string{"asin", "acos"} {
		for _, x := range []float64{-1.5, 2} {
			got, err := call(name, x, Degrees, false)
			if err != nil || !math.IsNaN(got) {
				t.Errorf("%s(%v): want NaN with no error, got %v, %v", name, x, got, err)
			}
		}
	}
}

func TestCallInverse(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"sin", 1, math.Pi / 2},
		{"asin", math.Pi / 2, 1},
		{"cos", 1, 0},
		{"acos", 0, 1},
		{"tan", 1, math.Pi / 4},
		{"atan", math.Pi / 4, 1},
		{"log", 3, 1000},
		{"ln", 1, math.E},
		{"sqrt", 5, 25},
	}
	for _, c := range cases {
		got, err := call(c.name, c.x, Radians, true)
		if err != nil {
			t.Errorf("inverse %s(%v): unexpected error %v", c.name, c.x, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("inverse %s(%v): want %v, got %v", c.name, c.x, c.want, got)
		}
	}
	if _, err := call("nope", 1, Radians, true); err == nil {
		t.Error("unknown function: expected error")
	}
}

func TestFactorial(t *testing.T) {
	want := 1.0
	for n := 0; n <= maxFactorial; n++ {
		if n > 1 {
			want *= float64(n)
		}
		got, err := factorial(float64(n))
		if err != nil {
			t.Fatalf("%d!: unexpected error %v", n, err)
		}
		if got != want {
			t.Fatalf("%d!: want %v, got %v", n, want, got)
		}
		if math.IsInf(got, 0) {
			t.Fatalf("%d!: overflowed", n)
		}
	}
	for _, x := range []float64{-1, 0.5, 171, 1e10, math.Inf(1), math.NaN()} {
		_, err := factorial(x)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%v!: want *DomainError, got %v", x, err)
			continue
		}
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%v!: %v does not unwrap to ErrDomain", x, err)
		}
	}
}

func TestBinaryDomain(t *testing.T) {
	cases := []struct {
		op   string
		l, r float64
		err  bool
	}{
		{"/", 1, 0, true},
		{"/", 1, -1e-16, true},
		{"/", 1, 1e-14, false},
		{"^", 0, -1, true},
		{"^", 0, 0, false},
		{"^", -8, 1.0 / 3, true},
		{"^", -2, 3, false},
		{"^", -2, -2, false},
		{"+", 1, 2, false},
		{"&", 1, 2, true},
	}
	for _, c := range cases {
		_, err := binary(c.op, c.l, c.r)
		if (err != nil) != c.err {
			t.Errorf("%v %s %v: want error %t, got %v", c.l, c.op, c.r, c.err, err)
		}
	}
}

func TestParseAngleMode(t *testing.T) {
	cases := []struct {
		in   string
		want AngleMode
		ok   bool
	}{
		{"deg", Degrees, true},
		{"Degrees", Degrees, true},
		{" rad ", Radians, true},
		{"RADIANS", Radians, true},
		{"grad", Degrees, false},
		{"", Degrees, false},
	}
	for _, c := range cases {
		got, ok := ParseAngleMode(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("%q: want %v %t, got %v %t", c.in, c.want, c.ok, got, ok)
		}
	}
	if Degrees.String() != "deg" || Radians.String() != "rad" {
		t.Errorf("wrong names %q %q", Degrees, Radians)
	}
}
