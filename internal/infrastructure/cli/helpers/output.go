package helpers

import (
	"io"
	"sync"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/ports"
)

// StreamWriter forwards organize output to the terminal as it arrives.
// stdout chunks go to out unchanged, stderr chunks to errOut.
type StreamWriter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	errP   Printer
}

// NewStreamWriter builds a StreamWriter.
func NewStreamWriter(out, errOut io.Writer) *StreamWriter {
	return &StreamWriter{out: out, errOut: errOut, errP: NewPrinter(errOut)}
}

// Write implements ports.OutputSink.
func (s *StreamWriter) Write(chunk string, stream domain.Stream) {
	if chunk == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if stream == domain.StreamStderr {
		_, _ = io.WriteString(s.errOut, s.errP.Error(chunk))
		return
	}
	_, _ = io.WriteString(s.out, chunk)
}

var _ ports.OutputSink = (*StreamWriter)(nil)
