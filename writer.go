package markupwriter

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

const (
	initialStackDepth = 8
	defaultIndent     = "    "
)

// Writer writes markup to a Sink, keeping track of open elements and asking
// its Formatter where whitespace goes.
//
// Nothing is buffered except two things that belong to the last event: the
// closing delimiter of an opening or self-closing tag ("<div" is written, ">"
// waits so Properties can still be added) and the whitespace decision made
// after it. Both are written as soon as the next event arrives.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	printer   printer
	syntax    *Syntax
	formatter Formatter
	stack     []string

	closer    string
	hasCloser bool
	pending   Whitespace

	started   bool
	finalized bool

	policy    DecrementPolicy
	hasPolicy bool

	// Defaults to \n.
	NewlineString string

	// Written once per indent level. Defaults to four spaces.
	IndentString string

	// Write the syntax's preamble before the first structural write.
	Preamble bool

	// End every open element in Finalize. Defaults to true.
	AutoClose bool
}

// Option is an option to the Writer.
type Option func(w *Writer)

// WithFormatter replaces the default AutoIndent formatter.
func WithFormatter(f Formatter) Option {
	return func(w *Writer) {
		w.formatter = f
	}
}

// WithNoFormat makes the Writer emit no whitespace of its own.
func WithNoFormat() Option {
	return WithFormatter(NoFormat{})
}

// WithIndentString sets the string written once per indent level.
func WithIndentString(indent string) Option {
	return func(w *Writer) {
		w.IndentString = indent
	}
}

// WithNewline sets the line feed string, e.g. "\r\n".
func WithNewline(nl string) Option {
	return func(w *Writer) {
		w.NewlineString = nl
	}
}

// WithPreamble writes the syntax's preamble (a DOCTYPE or XML declaration)
// before anything else.
func WithPreamble() Option {
	return func(w *Writer) {
		w.Preamble = true
	}
}

// WithoutAutoClose stops Finalize from ending elements that are still open.
func WithoutAutoClose() Option {
	return func(w *Writer) {
		w.AutoClose = false
	}
}

// WithDecrementPolicy sets the decrement policy of the Writer's formatter. It
// is applied once every option has run, so it may come before or after
// WithFormatter. Formatters without a policy ignore it.
func WithDecrementPolicy(policy DecrementPolicy) Option {
	return func(w *Writer) {
		w.policy = policy
		w.hasPolicy = true
	}
}

// New creates a Writer. The default formatter is an AutoIndent with no
// rules, which adds no whitespace until rules are assigned.
func New(sink Sink, syntax *Syntax, options ...Option) *Writer {
	w := &Writer{
		printer:       printer{sink: sink},
		syntax:        syntax,
		formatter:     NewAutoIndent(),
		stack:         make([]string, 0, initialStackDepth),
		NewlineString: "\n",
		IndentString:  defaultIndent,
		AutoClose:     true,
	}
	for _, o := range options {
		o(w)
	}
	if w.formatter == nil {
		w.formatter = NoFormat{}
	}
	if w.hasPolicy {
		switch f := w.formatter.(type) {
		case *AutoIndent:
			f.Policy = w.policy
		case *AlwaysIndent:
			f.Policy = w.policy
		}
	}
	return w
}

// Open creates a Writer on top of an io.Writer.
func Open(w io.Writer, syntax *Syntax, options ...Option) *Writer {
	if s, ok := w.(Sink); ok {
		return New(s, syntax, options...)
	}
	return New(writerSink{w}, syntax, options...)
}

// OpenEncoding creates a Writer that converts its output with encoder. You
// should still write UTF-8 strings; characters the target encoding can not
// represent are written as numeric character references.
//
//	enc := charmap.Windows1252.NewEncoder()
//	w := markupwriter.OpenEncoding(b, enc, markupwriter.XMLEncoding("windows-1252"))
func OpenEncoding(w io.Writer, encoder *encoding.Encoder, syntax *Syntax, options ...Option) *Writer {
	enc := encoding.HTMLEscapeUnsupported(encoder).Writer(w)
	return New(&encodedSink{w: enc, dest: w}, syntax, options...)
}

// Formatter returns the Writer's formatter.
func (w *Writer) Formatter() Formatter { return w.formatter }

// Syntax returns the Writer's syntax.
func (w *Writer) Syntax() *Syntax { return w.syntax }

// AutoIndent returns the Writer's formatter if it is an AutoIndent.
func (w *Writer) AutoIndent() (*AutoIndent, error) {
	if ai, ok := w.formatter.(*AutoIndent); ok {
		return ai, nil
	}
	return nil, fmt.Errorf("%w: %T is not an AutoIndent", ErrUnsupportedFormatter, w.formatter)
}

// SetRule assigns a rule to tags on a rule-driven formatter. Reassigning a tag
// replaces its rule.
func (w *Writer) SetRule(rule Rule, tags ...string) error {
	rs, ok := w.formatter.(RuleSetter)
	if !ok {
		return fmt.Errorf("%w: %T has no rules", ErrUnsupportedFormatter, w.formatter)
	}
	return rs.SetRule(rule, tags...)
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int { return len(w.stack) }

// Current returns the name of the innermost open element.
func (w *Writer) Current() (string, bool) {
	if len(w.stack) == 0 {
		return "", false
	}
	return w.stack[len(w.stack)-1], true
}

// Level returns the formatter's indent level, or 0 if it does not have one.
func (w *Writer) Level() int {
	if ic, ok := w.formatter.(IndentCounter); ok {
		return ic.Level()
	}
	return 0
}

// Finalized reports whether Finalize has been called.
func (w *Writer) Finalized() bool { return w.finalized }

// Start writes an opening tag and pushes name onto the stack.
func (w *Writer) Start(name string) error {
	d, err := w.prepare(ElementOpen)
	if err != nil {
		return err
	}
	if err := w.flushCloser(); err != nil {
		return err
	}
	ws := w.pending.merge(w.formatter.BeforeOpen(name))
	if err := w.writeSpace(ws); err != nil {
		return err
	}
	if err := w.printer.write(d.Open, name); err != nil {
		return err
	}
	w.setCloser(d.Close)
	w.pending = w.formatter.AfterOpen(name)
	w.stack = append(w.stack, name)
	return nil
}

// End writes the closing tag for the innermost open element and pops it.
//
// If a name is passed, it must match the innermost element. If no element is
// open, ErrUnbalanced is returned and nothing is written.
func (w *Writer) End(name ...string) error {
	if w.finalized {
		return ErrFinalized
	}
	if len(w.stack) == 0 {
		return ErrUnbalanced
	}
	top := w.stack[len(w.stack)-1]
	switch len(name) {
	case 0:
	case 1:
		if name[0] != top {
			return fmt.Errorf("%w: element %q did not match expected %q", ErrNameMismatch, top, name[0])
		}
	default:
		return fmt.Errorf("markupwriter: End takes at most one name, found %d", len(name))
	}
	return w.end()
}

func (w *Writer) end() error {
	d, err := w.prepare(ElementClose)
	if err != nil {
		return err
	}
	name := w.stack[len(w.stack)-1]
	if err := w.flushCloser(); err != nil {
		return err
	}
	ws := w.pending.merge(w.formatter.BeforeClose(name))
	w.pending = Whitespace{}
	if err := w.writeSpace(ws); err != nil {
		return err
	}
	if err := w.printer.write(d.Open, name, d.Close); err != nil {
		return err
	}
	w.pending = w.formatter.AfterClose(name)
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

// EndAll ends every open element. It is not an error if nothing is open.
func (w *Writer) EndAll() error {
	return w.EndToDepth(0)
}

// EndToDepth ends elements until depth remain open. This is useful if you
// want to ensure that everything you open inside a particular scope is
// closed at the end:
//
//	func section(w *markupwriter.Writer) error {
//		d := w.Depth()
//		defer w.EndToDepth(d)
//		w.Start("section")
//		w.Start("div")
//		...
//	}
func (w *Writer) EndToDepth(depth int) error {
	if w.finalized {
		return ErrFinalized
	}
	if depth < 0 {
		depth = 0
	}
	for len(w.stack) > depth {
		if err := w.end(); err != nil {
			return err
		}
	}
	return nil
}

// Text writes content verbatim. It is not escaped.
func (w *Writer) Text(content string) error {
	if err := w.check(); err != nil {
		return err
	}
	return w.leaf(Leaf{Kind: TextLeaf}, "", content, "", false)
}

// SelfClosing writes a tag that has no closing pair and is not pushed onto
// the stack, e.g. "<img>" in HTML or "<br />" in XML. Properties may follow.
func (w *Writer) SelfClosing(name string) error {
	d, err := w.prepare(ElementSelfClosing)
	if err != nil {
		return err
	}
	return w.leaf(Leaf{Kind: SelfClosingLeaf, Name: name}, d.Open, name, d.Close, true)
}

// Comment writes content wrapped in the syntax's comment delimiters.
func (w *Writer) Comment(content string) error {
	d, err := w.prepare(CommentBlock)
	if err != nil {
		return err
	}
	return w.leaf(Leaf{Kind: CommentLeaf}, d.Open, content, d.Close, false)
}

// Block writes an element containing only text: Start, Text, End.
func (w *Writer) Block(name, content string) error {
	if err := w.Start(name); err != nil {
		return err
	}
	if err := w.Text(content); err != nil {
		return err
	}
	return w.End()
}

// Properties adds properties to the tag that was just opened. It fails with
// ErrMisplacedProperties after anything other than Start or SelfClosing.
func (w *Writer) Properties(props ...Property) error {
	if err := w.check(); err != nil {
		return err
	}
	if !w.hasCloser {
		return ErrMisplacedProperties
	}
	sep, err := w.syntax.Delims(PropertySeparator)
	if err != nil {
		return err
	}
	assign, err := w.syntax.Delims(PropertyAssign)
	if err != nil {
		return err
	}
	for _, p := range props {
		if err := w.printer.write(sep.Open, p.Name, assign.Open, p.Value, assign.Close, sep.Close); err != nil {
			return err
		}
	}
	return nil
}

// NewLine writes a single line feed with no indentation, even straight after
// an opening tag. Whitespace the formatter has already asked for is still
// written before the next event.
//
// To start an indented line after an opening tag, use LineFeedInc and undo it
// with LineFeedDec before the closing tag:
//
//	w.Start("div")
//	w.LineFeedInc() // "<div>\n    "
//	w.Block("p", "x")
//	w.LineFeedDec() // "\n"
//	w.End()         // "</div>"
func (w *Writer) NewLine() error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushCloser(); err != nil {
		return err
	}
	return w.printer.write(w.NewlineString)
}

// LineFeedInc raises the formatter's indent level, then writes any pending
// whitespace followed by a line feed and the new level's indentation. Each
// call writes its own line feed, so two calls in a row leave a blank line.
func (w *Writer) LineFeedInc() error {
	ic, err := w.counter()
	if err != nil {
		return err
	}
	if err := w.lineFeed(ic.Increment()); err != nil {
		_, _ = ic.Decrement()
		return err
	}
	return nil
}

// LineFeedDec lowers the formatter's indent level, then writes any pending
// whitespace followed by a line feed and the new level's indentation. At level
// 0 the level stays at 0, unless the formatter's policy is Strict, in which
// case ErrIndentUnderflow is returned and nothing is written.
func (w *Writer) LineFeedDec() error {
	ic, err := w.counter()
	if err != nil {
		return err
	}
	before := ic.Level()
	level, err := ic.Decrement()
	if err != nil {
		return err
	}
	if err := w.lineFeed(level); err != nil {
		if level < before {
			ic.Increment()
		}
		return err
	}
	return nil
}

func (w *Writer) lineFeed(level int) error {
	if err := w.flushCloser(); err != nil {
		return err
	}
	if err := w.writeSpace(w.pending); err != nil {
		return err
	}
	return w.writeSpace(FeedIndent(level))
}

// Finalize ends any open elements (unless AutoClose is off), writes a final
// line feed if the formatter asked for one, and flushes the sink. The Writer
// can not be used afterwards.
func (w *Writer) Finalize() error {
	if err := w.check(); err != nil {
		return err
	}
	defer func() { w.finalized = true }()

	if w.AutoClose {
		if err := w.EndAll(); err != nil {
			return err
		}
	}
	if err := w.flushCloser(); err != nil {
		return err
	}
	if w.pending.Kind != None {
		w.pending = Whitespace{}
		if err := w.printer.write(w.NewlineString); err != nil {
			return err
		}
	}
	return w.printer.flush()
}

func (w *Writer) counter() (IndentCounter, error) {
	if err := w.check(); err != nil {
		return nil, err
	}
	ic, ok := w.formatter.(IndentCounter)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no indent level", ErrUnsupportedFormatter, w.formatter)
	}
	return ic, nil
}

// prepare checks the writer can write construct c and returns its delimiters.
func (w *Writer) prepare(c Construct) (Delims, error) {
	if w.finalized {
		return Delims{}, ErrFinalized
	}
	d, err := w.syntax.Delims(c)
	if err != nil {
		return Delims{}, err
	}
	return d, w.begin()
}

func (w *Writer) check() error {
	if w.finalized {
		return ErrFinalized
	}
	return w.begin()
}

// begin writes the preamble before the first structural write.
func (w *Writer) begin() error {
	if w.started {
		return nil
	}
	w.started = true
	if !w.Preamble {
		return nil
	}
	d, err := w.syntax.Delims(DocumentPreamble)
	if err != nil {
		return err
	}
	return w.leaf(Leaf{Kind: PreambleLeaf}, d.Open, "", d.Close, false)
}

func (w *Writer) leaf(leaf Leaf, open, content, close string, deferClose bool) error {
	if err := w.flushCloser(); err != nil {
		return err
	}
	ws := w.pending.merge(w.formatter.BeforeText(leaf))
	if err := w.writeSpace(ws); err != nil {
		return err
	}
	if deferClose {
		if err := w.printer.write(open, content); err != nil {
			return err
		}
		w.setCloser(close)
	} else if err := w.printer.write(open, content, close); err != nil {
		return err
	}
	w.pending = w.formatter.AfterText(leaf)
	return nil
}

func (w *Writer) setCloser(s string) {
	w.closer = s
	w.hasCloser = true
}

func (w *Writer) flushCloser() error {
	if !w.hasCloser {
		return nil
	}
	w.hasCloser = false
	return w.printer.write(w.closer)
}

// writeSpace renders a decision and clears the pending one.
func (w *Writer) writeSpace(ws Whitespace) error {
	w.pending = Whitespace{}
	switch ws.Kind {
	case LineFeed:
		return w.printer.write(w.NewlineString)
	case LineFeedIndent:
		if err := w.printer.write(w.NewlineString); err != nil {
			return err
		}
		for i := 0; i < ws.Level; i++ {
			if err := w.printer.write(w.IndentString); err != nil {
				return err
			}
		}
	}
	return nil
}
