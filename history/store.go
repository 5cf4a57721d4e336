// Package history persists successful calculations.
package history

import "time"

// DefaultLimit is the number of entries a history listing shows unless told
// otherwise.
const DefaultLimit = 50

// Entry is one recorded calculation.
type Entry struct {
	// ID is assigned by the store on insert and increases monotonically.
	ID int64
	// Expression is the expression as the user typed it.
	Expression string
	// Result is the formatted result.
	Result string
	// Timestamp is when the calculation was made, with millisecond
	// resolution.
	Timestamp time.Time
}

// Store is the interface for calculation history persistence. Listings are
// ordered newest first.
type Store interface {
	// Insert records an entry and returns its assigned ID. The entry's ID is
	// ignored.
	Insert(e Entry) (int64, error)
	// Recent returns up to n of the most recent entries. If n <= 0, it
	// returns all entries.
	Recent(n int) ([]Entry, error)
	// Search returns up to n of the most recent entries whose expression or
	// result contains q, ignoring ASCII case. If n <= 0, there is no limit.
	Search(q string, n int) ([]Entry, error)
	// Delete removes the entry with the given ID. Deleting a missing ID is not
	// an error.
	Delete(id int64) error
	// Clear removes all entries.
	Clear() error
	// Count returns the number of entries.
	Count() (int, error)
	// Close releases resources.
	Close() error
}
