package markupwriter

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Sink receives the Writer's output. *strings.Builder, *bytes.Buffer and
// *bufio.Writer are all sinks. If the sink also has a Flush() error method,
// Finalize calls it.
type Sink interface {
	WriteString(s string) (int, error)
}

type flusher interface {
	Flush() error
}

// writerSink adapts an io.Writer. Nothing is buffered.
type writerSink struct {
	w io.Writer
}

func (s writerSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}

func (s writerSink) Flush() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// encodedSink transcodes UTF-8 input on the fly. The transformer may hold on
// to a partial rune until it is closed, so Flush closes it.
type encodedSink struct {
	w      io.Writer
	dest   io.Writer
	closed bool
}

func (s *encodedSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}

func (s *encodedSink) Flush() error {
	if !s.closed {
		s.closed = true
		if c, ok := s.w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				return err
			}
		}
	}
	if f, ok := s.dest.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// EncodingByName looks up an encoder by its WHATWG label, e.g. "windows-1252"
// or "iso-8859-1".
func EncodingByName(label string) (*encoding.Encoder, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("markupwriter: encoding %q: %w", label, err)
	}
	return enc.NewEncoder(), nil
}

// printer writes fragments to the sink, wrapping failures in WriteError.
type printer struct {
	sink Sink
}

func (p printer) write(strs ...string) error {
	for _, s := range strs {
		if s == "" {
			continue
		}
		if _, err := p.sink.WriteString(s); err != nil {
			return &WriteError{Err: err}
		}
	}
	return nil
}

func (p printer) flush() error {
	if f, ok := p.sink.(flusher); ok {
		if err := f.Flush(); err != nil {
			return &WriteError{Err: err}
		}
	}
	return nil
}
