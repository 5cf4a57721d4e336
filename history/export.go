package history

import (
	"bufio"
	"io"
)

// exportTimeLayout is the date format used in exports.
const exportTimeLayout = "2006-01-02 15:04:05"

// Export writes entries as a plain-text report suitable for sharing. Dates are
// written in each entry's own location.
func Export(w io.Writer, entries []Entry) error {
	b := bufio.NewWriter(w)
	b.WriteString("Calculator History Export\n")
	b.WriteString("========================\n\n")
	for _, e := range entries {
		b.WriteString("Expression: " + e.Expression + "\n")
		b.WriteString("Result: " + e.Result + "\n")
		b.WriteString("Date: " + e.Timestamp.Format(exportTimeLayout) + "\n")
		b.WriteString("---\n")
	}
	return b.Flush()
}
