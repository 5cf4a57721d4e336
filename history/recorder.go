package history

import (
	"sync"
	"time"
)

// Recorder writes entries to a store in the background so that recording a
// calculation never waits on the database. It is safe for concurrent use.
type Recorder struct {
	store Store
	now   func() time.Time

	mu     sync.Mutex
	ch     chan Entry
	closed bool

	done chan struct{}
	err  error
}

// NewRecorder starts a recorder writing to s. buf is the number of entries
// that may be pending before Record blocks.
func NewRecorder(s Store, buf int) *Recorder {
	if buf < 0 {
		buf = 0
	}
	r := &Recorder{
		store: s,
		now:   time.Now,
		ch:    make(chan Entry, buf),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.ch {
		if _, err := r.store.Insert(e); err != nil && r.err == nil {
			r.err = err
		}
	}
}

// Record queues a calculation, stamped with the current time. Calls after
// Close are ignored.
func (r *Recorder) Record(expression, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.ch <- Entry{Expression: expression, Result: result, Timestamp: r.now()}
}

// Close waits for pending entries to be written and returns the first write
// error, if any. It does not close the store.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	r.mu.Unlock()
	<-r.done
	return r.err
}
