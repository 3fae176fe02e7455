package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans each write out to all of its writers, e.g. stdout and the rotating log file.
type CombinedWriter struct {
	Writers []io.Writer
}

// NewCombinedWriter skips nil writers.
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w == nil {
			continue
		}
		cw.Writers = append(cw.Writers, w)
	}
	return cw
}

// Write reports len(p) when at least one writer took the whole message, so a
// broken stdout does not stop logrus from writing to the file.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		err   error
		wrote bool
	)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if written == len(p) {
			wrote = true
		}
	}
	if wrote {
		return len(p), err
	}
	return 0, err
}
