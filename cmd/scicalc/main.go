package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/history"
)

func main() {
	log.SetFlags(0)
	var (
		inname, anglename, dbpath string
		inv, lenient, echo, vb    bool
		hc                        histcmd
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&anglename, "angle", "deg", "angle mode for trigonometric functions: deg or rad")
	flag.BoolVar(&inv, "inv", false, "inverse-function mode: sin means asin, log means 10^x, etc.")
	flag.BoolVar(&lenient, "lenient", false, "ignore unrecognized characters instead of failing")
	flag.BoolVar(&echo, "echo", false, "print token streams")
	flag.StringVar(&dbpath, "db", "scicalc.db", "SQLite history database (empty for no persistent history)")
	flag.IntVar(&hc.list, "history", -1, "list the N most recent calculations (0 for all)")
	flag.StringVar(&hc.search, "search", "", "search history for calculations containing a string")
	flag.Int64Var(&hc.del, "delete", 0, "delete the history entry with the given id")
	flag.BoolVar(&hc.clear, "clear", false, "clear history")
	flag.BoolVar(&hc.count, "count", false, "print the number of history entries")
	flag.BoolVar(&hc.export, "export", false, "print a plain-text export of all history")
	flag.BoolVar(&vb, "v", false, "verbose logging")
	flag.Parse()

	vlog := log.New(io.Discard, "scicalc: ", 0)
	if vb {
		vlog.SetOutput(os.Stderr)
	}

	angle, ok := scicalc.ParseAngleMode(anglename)
	if !ok {
		log.Fatalf("unknown angle mode %q (use deg or rad)", anglename)
	}
	var opts []scicalc.Option
	if inv {
		opts = append(opts, scicalc.Inverse())
	}
	if lenient {
		opts = append(opts, scicalc.Lenient())
	}

	store, err := openStore(dbpath)
	if err != nil {
		log.Fatal(err)
	}
	vlog.Printf("history in %q", dbpath)

	if hc.any() {
		err := hc.run(os.Stdout, store)
		store.Close()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	rec := history.NewRecorder(store, 16)
	c := calc{angle: angle, opts: opts, echo: echo, rec: rec, vlog: vlog}

	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		prompt := ""
		if f == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
			prompt = "> "
		}
		if err := c.lines(os.Stdout, decode(f), prompt); err != nil {
			log.Print(err)
		}
		if f != os.Stdin {
			f.Close()
		}
	}
	for _, arg := range flag.Args() {
		c.eval(os.Stdout, arg)
	}

	if err := rec.Close(); err != nil {
		log.Printf("recording history: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Printf("closing history: %v", err)
	}
}

// calc evaluates expressions and records the successful ones.
type calc struct {
	angle scicalc.AngleMode
	opts  []scicalc.Option
	echo  bool
	rec   *history.Recorder
	vlog  *log.Logger
}

// eval evaluates one expression and writes its result or error to w. It
// reports whether evaluation succeeded. Only successes are recorded.
func (c *calc) eval(w io.Writer, src string) bool {
	if c.echo {
		toks, err := scicalc.Tokenize(src, c.opts...)
		if err == nil {
			fmt.Fprintf(w, "%v : ", toks)
		}
	}
	r, err := scicalc.Evaluate(src, c.angle, c.opts...)
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		return false
	}
	s := scicalc.Format(r)
	fmt.Fprintln(w, s)
	if c.rec != nil {
		c.rec.Record(strings.TrimSpace(src), s)
		if c.vlog != nil {
			c.vlog.Printf("recorded %q = %s", src, s)
		}
	}
	return true
}

// lines evaluates each non-blank line of r. If prompt is non-empty, it is
// written before reading each line.
func (c *calc) lines(w io.Writer, r io.Reader, prompt string) error {
	sc := bufio.NewScanner(r)
	for {
		if prompt != "" {
			fmt.Fprint(w, prompt)
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.eval(w, line)
	}
	if prompt != "" {
		fmt.Fprintln(w)
	}
	return sc.Err()
}
