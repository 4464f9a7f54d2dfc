package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every log line out to all of its writers.
// A failing writer does not stop the others from receiving the line.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.writers = append(cw.writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

// Write reports the shortest write among the writers, so n < len(p) always comes with an error.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	n := len(p)
	for i, w := range cw.writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
		}
		n = min(n, written)
	}
	return n, err
}
