package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/zephyrtronium/scicalc/history"
)

// histcmd is a history query or maintenance request from the command line.
type histcmd struct {
	list   int
	search string
	del    int64
	clear  bool
	count  bool
	export bool
}

func (h histcmd) any() bool {
	return h.list >= 0 || h.search != "" || h.del != 0 || h.clear || h.count || h.export
}

// run performs the requested operations in a fixed order: deletions first,
// then queries.
func (h histcmd) run(w io.Writer, s history.Store) error {
	if h.del != 0 {
		if err := s.Delete(h.del); err != nil {
			return fmt.Errorf("deleting entry %d: %w", h.del, err)
		}
	}
	if h.clear {
		if err := s.Clear(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
	}
	if h.count {
		n, err := s.Count()
		if err != nil {
			return fmt.Errorf("counting history: %w", err)
		}
		fmt.Fprintln(w, n)
	}
	if h.search != "" {
		entries, err := s.Search(h.search, history.DefaultLimit)
		if err != nil {
			return fmt.Errorf("searching history: %w", err)
		}
		if err := list(w, entries); err != nil {
			return err
		}
	}
	if h.list >= 0 {
		entries, err := s.Recent(h.list)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		if err := list(w, entries); err != nil {
			return err
		}
	}
	if h.export {
		entries, err := s.Recent(0)
		if err != nil {
			return fmt.Errorf("exporting history: %w", err)
		}
		return history.Export(w, entries)
	}
	return nil
}

// list writes entries as an aligned table.
func list(w io.Writer, entries []history.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t=\t%s\t%s\n", e.ID, e.Expression, e.Result, e.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// openStore opens the history store at path, or a memory store if path is
// empty.
func openStore(path string) (history.Store, error) {
	if path == "" {
		return history.NewMemory(), nil
	}
	s, err := history.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	return s, nil
}
