package main

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// infile opens the expression input. With no name, stdin is used if std is
// true; otherwise there is no input file and the result is nil.
func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	default:
		return nil, nil
	}
}

// decode wraps r so that UTF-16 input, as saved by some Windows editors, is
// read as UTF-8. The encoding is chosen by the byte order mark; input without
// one is taken as UTF-8.
func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
