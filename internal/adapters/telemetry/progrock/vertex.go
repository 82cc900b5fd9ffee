package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write forwards log output to the vertex's stdout stream.
func (s *Span) Write(p []byte) (n int, err error) {
	return s.vertex.Stdout().Write(p)
}

// SetAttribute records the key-value pair as a log line on the vertex.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}

// RecordError records the error; it is reported when the span ends.
func (s *Span) RecordError(err error) {
	if err != nil {
		s.err = err
	}
}

// End marks the vertex as finished, with any recorded error.
func (s *Span) End() {
	s.vertex.Done(s.err)
}
