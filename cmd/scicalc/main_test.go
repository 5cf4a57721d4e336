package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/history"
)

func TestEval(t *testing.T) {
	cases := []struct {
		src  string
		opts []scicalc.Option
		want string
		ok   bool
	}{
		{"2+3*4", nil, "14\n", true},
		{" sin(90) ", nil, "1\n", true},
		{"5/0", nil, "error: 2: division by zero\n", false},
		{"(2+3", nil, "error: 1: mismatched parentheses: open ( with no close\n", false},
		{"log(3)", []scicalc.Option{scicalc.Inverse()}, "1000\n", true},
	}
	for _, c := range cases {
		s := history.NewMemory()
		rec := history.NewRecorder(s, 1)
		calc := calc{angle: scicalc.Degrees, opts: c.opts, rec: rec}
		var b bytes.Buffer
		if ok := calc.eval(&b, c.src); ok != c.ok {
			t.Errorf("%q: want success %t, got %t", c.src, c.ok, ok)
		}
		if got := b.String(); got != c.want {
			t.Errorf("%q: want output %q, got %q", c.src, c.want, got)
		}
		if err := rec.Close(); err != nil {
			t.Fatal(err)
		}
		entries, _ := s.Recent(0)
		switch {
		case c.ok && (len(entries) != 1 || entries[0].Expression != strings.TrimSpace(c.src) || entries[0].Result+"\n" != c.want):
			t.Errorf("%q: want one recorded entry, got %v", c.src, entries)
		case !c.ok && len(entries) != 0:
			t.Errorf("%q: failed evaluation was recorded: %v", c.src, entries)
		}
	}
}

func TestEvalEcho(t *testing.T) {
	calc := calc{angle: scicalc.Degrees, echo: true}
	var b bytes.Buffer
	calc.eval(&b, "1+2")
	want := "[Number:1@1 Operator:+@2 Number:2@3] : 3\n"
	if got := b.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestLines(t *testing.T) {
	calc := calc{angle: scicalc.Radians}
	var b bytes.Buffer
	in := "1+1\n\n   \ncos(0)\n2*\n"
	if err := calc.lines(&b, strings.NewReader(in), ""); err != nil {
		t.Fatal(err)
	}
	want := "2\n1\nerror: 2: missing operand for \"*\": need 2, have 1\n"
	if got := b.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}

	b.Reset()
	if err := calc.lines(&b, strings.NewReader("3!\n"), "> "); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "> 6\n> \n" {
		t.Errorf("prompted output: got %q", got)
	}
}

func TestDecode(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	utf16, err := enc.String("2×3\n√16\n")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		in   string
	}{
		{"utf8", "2×3\n√16\n"},
		{"utf8bom", "\ufeff2×3\n√16\n"},
		{"utf16", utf16},
	}
	for _, c := range cases {
		calc := calc{angle: scicalc.Degrees}
		var b bytes.Buffer
		if err := calc.lines(&b, decode(strings.NewReader(c.in)), ""); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got := b.String(); got != "6\n4\n" {
			t.Errorf("%s: want %q, got %q", c.name, "6\n4\n", got)
		}
	}
}

func TestHistcmd(t *testing.T) {
	s := history.NewMemory()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, e := range []string{"1+1", "2+2", "sqrt(9)"} {
		s.Insert(history.Entry{Expression: e, Result: "x", Timestamp: ts.Add(time.Duration(i) * time.Second)})
	}

	if (histcmd{list: -1}).any() {
		t.Error("empty command reports work to do")
	}

	var b bytes.Buffer
	if err := (histcmd{list: -1, count: true}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "3\n" {
		t.Errorf("count: want 3, got %q", got)
	}

	b.Reset()
	if err := (histcmd{list: 2}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "sqrt(9)") || !strings.Contains(lines[1], "2+2") {
		t.Errorf("list: got %q", b.String())
	}

	b.Reset()
	if err := (histcmd{list: -1, search: "SQRT"}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); !strings.HasPrefix(got, "3 ") || !strings.Contains(got, "2024-01-02 03:04:07") {
		t.Errorf("search: got %q", got)
	}

	b.Reset()
	if err := (histcmd{list: -1, del: 3, count: true}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "2\n" {
		t.Errorf("delete then count: want 2, got %q", got)
	}

	b.Reset()
	if err := (histcmd{list: -1, export: true}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); !strings.HasPrefix(got, "Calculator History Export\n") || strings.Count(got, "---\n") != 2 {
		t.Errorf("export: got %q", got)
	}

	b.Reset()
	if err := (histcmd{list: -1, clear: true, count: true}).run(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "0\n" {
		t.Errorf("clear then count: want 0, got %q", got)
	}
}

func TestOpenStore(t *testing.T) {
	s, err := openStore("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*history.Memory); !ok {
		t.Errorf("empty path: want memory store, got %T", s)
	}
	s.Close()
}
