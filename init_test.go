package markupwriter

import (
	"bytes"
	"io"
	"strings"
)

type Null struct{}

func (w Null) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type DodgyWriter struct {
	writer     io.Writer
	shouldFail func(b []byte) (fail bool, len int, err error)
}

func (d *DodgyWriter) Write(b []byte) (len int, err error) {
	if fail, len, err := d.shouldFail(b); fail {
		return len, err
	}
	return d.writer.Write(b)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func open(syntax *Syntax, o ...Option) (*bytes.Buffer, *Writer) {
	b := &bytes.Buffer{}
	w := Open(b, syntax, o...)
	return b, w
}

func openNull(o ...Option) *Writer {
	return Open(Null{}, HTML(), o...)
}

// str finalizes w and returns everything written to b.
func str(b *bytes.Buffer, w *Writer) string {
	must(w.Finalize())
	return b.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func ruled(w *Writer, rules map[Rule][]string) *Writer {
	for rule, tags := range rules {
		must(w.SetRule(rule, tags...))
	}
	return w
}
