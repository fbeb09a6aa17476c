package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// CombinedWriter writes to all of its writers. A write succeeds as long as
// one writer took the bytes; failures of the others are kept in Err.
type CombinedWriter struct {
	Writers []io.Writer

	mu  sync.Mutex
	Err error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var errs error
	ok := 0
	for _, w := range cw.Writers {
		if _, err := w.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ok++
	}

	if errs == nil {
		return len(p), nil
	}
	if ok == 0 {
		return 0, errs
	}

	cw.mu.Lock()
	cw.Err = multierr.Append(cw.Err, errs)
	cw.mu.Unlock()
	return len(p), nil
}

// Errors returns and clears the failures collected so far.
func (cw *CombinedWriter) Errors() []error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	errs := multierr.Errors(cw.Err)
	cw.Err = nil
	return errs
}
