package markupwriter

import "fmt"

// WhitespaceKind is the kind of whitespace a Formatter asks for.
type WhitespaceKind int

const (
	// None adds nothing.
	None WhitespaceKind = iota

	// LineFeed writes a newline without indentation.
	LineFeed

	// LineFeedIndent writes a newline followed by the indent string repeated
	// Level times.
	LineFeedIndent
)

// Whitespace is a Formatter's decision for one side of an event.
type Whitespace struct {
	Kind  WhitespaceKind
	Level int
}

// Feed returns a bare line feed decision.
func Feed() Whitespace { return Whitespace{Kind: LineFeed} }

// FeedIndent returns a line feed decision indented to level.
func FeedIndent(level int) Whitespace { return Whitespace{Kind: LineFeedIndent, Level: level} }

func (ws Whitespace) String() string {
	switch ws.Kind {
	case None:
		return "none"
	case LineFeed:
		return "lf"
	case LineFeedIndent:
		return fmt.Sprintf("lf+%d", ws.Level)
	}
	return fmt.Sprintf("whitespace(%d)", int(ws.Kind))
}

// merge resolves the pending decision left by the previous event against the
// decision made before the next one. The later line feed wins because it
// carries the most recent indent level.
func (ws Whitespace) merge(next Whitespace) Whitespace {
	if next.Kind != None {
		return next
	}
	return ws
}

// LeafKind identifies the event behind BeforeText and AfterText.
type LeafKind int

const (
	TextLeaf LeafKind = iota
	SelfClosingLeaf
	CommentLeaf
	PreambleLeaf
)

// Leaf is an event that does not change nesting. Name is only set for
// SelfClosingLeaf.
type Leaf struct {
	Kind LeafKind
	Name string
}

// Formatter decides the whitespace around every event the Writer emits.
//
// Before* is called immediately before the event is written, After* right
// after. The Writer does not render an After* decision straight away: it is
// kept until the next event and merged with that event's Before* decision, so
// a Formatter only ever describes one boundary at a time and never has to know
// what comes next.
//
// A Formatter belongs to exactly one Writer.
type Formatter interface {
	BeforeOpen(name string) Whitespace
	AfterOpen(name string) Whitespace
	BeforeClose(name string) Whitespace
	AfterClose(name string) Whitespace
	BeforeText(leaf Leaf) Whitespace
	AfterText(leaf Leaf) Whitespace
}

// RuleSetter is implemented by formatters driven by a per-tag rule table.
type RuleSetter interface {
	Formatter
	SetRule(rule Rule, tags ...string) error
}

// IndentCounter is implemented by formatters that own an indent level the
// Writer's manual line feed controls can adjust. Manual and rule-driven
// changes share the same counter.
type IndentCounter interface {
	Formatter
	Level() int
	Increment() int
	Decrement() (int, error)
}

// NoFormat passes everything through untouched, for exact or minified output.
type NoFormat struct{}

// BeforeOpen satisfies Formatter.
func (NoFormat) BeforeOpen(string) Whitespace { return Whitespace{} }

// AfterOpen satisfies Formatter.
func (NoFormat) AfterOpen(string) Whitespace { return Whitespace{} }

// BeforeClose satisfies Formatter.
func (NoFormat) BeforeClose(string) Whitespace { return Whitespace{} }

// AfterClose satisfies Formatter.
func (NoFormat) AfterClose(string) Whitespace { return Whitespace{} }

// BeforeText satisfies Formatter.
func (NoFormat) BeforeText(Leaf) Whitespace { return Whitespace{} }

// AfterText satisfies Formatter.
func (NoFormat) AfterText(Leaf) Whitespace { return Whitespace{} }

// DecrementPolicy controls what happens when the indent level would drop
// below zero.
type DecrementPolicy int

const (
	// Clamp keeps the level at zero.
	Clamp DecrementPolicy = iota

	// Strict makes manual decrements at level zero fail with
	// ErrIndentUnderflow. Decrements caused by closing tags always clamp.
	Strict
)

// AutoIndent lays out tags according to a RuleTable. It is the Writer's
// default Formatter.
//
//	ai := markupwriter.NewAutoIndent()
//	ai.SetRule(markupwriter.IndentAlways, "head", "body")
//	ai.SetRule(markupwriter.LfClosing, "title", "p")
//	w := markupwriter.New(&sb, markupwriter.HTML(), markupwriter.WithFormatter(ai))
type AutoIndent struct {
	Rules  RuleTable
	Policy DecrementPolicy

	level int

	// one entry per open element: whether opening it raised the level, so
	// closing it lowers the level again even if its rule has changed since.
	indented []bool
}

// NewAutoIndent creates an AutoIndent with an empty rule table.
func NewAutoIndent() *AutoIndent {
	return &AutoIndent{indented: make([]bool, 0, initialStackDepth)}
}

// SetRule satisfies RuleSetter. The last rule assigned to a tag wins.
func (a *AutoIndent) SetRule(rule Rule, tags ...string) error {
	return a.Rules.Set(rule, tags...)
}

// DefaultHTML assigns a set of rules that gives readable HTML documents.
func (a *AutoIndent) DefaultHTML() {
	a.Rules.Set(IndentAlways, "head", "body", "section", "header", "footer", "nav")
	a.Rules.Set(LfAlways, "html")
	a.Rules.Set(LfClosing, "title", "link", "div")
}

// Level satisfies IndentCounter.
func (a *AutoIndent) Level() int { return a.level }

// Increment satisfies IndentCounter.
func (a *AutoIndent) Increment() int {
	a.level++
	return a.level
}

// Decrement satisfies IndentCounter.
func (a *AutoIndent) Decrement() (int, error) {
	if a.level == 0 {
		if a.Policy == Strict {
			return 0, ErrIndentUnderflow
		}
		return 0, nil
	}
	a.level--
	return a.level, nil
}

// Reset clears the rules and the indent state.
func (a *AutoIndent) Reset() {
	a.Rules.Reset()
	a.level = 0
	a.indented = a.indented[:0]
}

func (a *AutoIndent) feed() Whitespace { return FeedIndent(a.level) }

// BeforeOpen satisfies Formatter.
func (a *AutoIndent) BeforeOpen(name string) Whitespace {
	if a.Rules.Rule(name) == LfAlways {
		return a.feed()
	}
	return Whitespace{}
}

// AfterOpen satisfies Formatter.
func (a *AutoIndent) AfterOpen(name string) Whitespace {
	rule := a.Rules.Rule(name)
	a.indented = append(a.indented, rule == IndentAlways)
	switch rule {
	case IndentAlways:
		a.level++
		return a.feed()
	case LfAlways:
		return a.feed()
	}
	return Whitespace{}
}

// BeforeClose satisfies Formatter. It does not change any state: the element
// is only closed in AfterClose, once the closing tag has been written.
func (a *AutoIndent) BeforeClose(name string) Whitespace {
	if n := len(a.indented); n > 0 && a.indented[n-1] {
		if a.level > 0 {
			return FeedIndent(a.level - 1)
		}
		return a.feed()
	}
	if a.Rules.Rule(name) == LfAlways {
		return a.feed()
	}
	return Whitespace{}
}

// AfterClose satisfies Formatter.
func (a *AutoIndent) AfterClose(name string) Whitespace {
	if n := len(a.indented); n > 0 {
		if a.indented[n-1] && a.level > 0 {
			a.level--
		}
		a.indented = a.indented[:n-1]
	}
	if a.Rules.Rule(name) != NoFormatting {
		return a.feed()
	}
	return Whitespace{}
}

// BeforeText satisfies Formatter.
func (a *AutoIndent) BeforeText(leaf Leaf) Whitespace {
	if leaf.Kind == SelfClosingLeaf && a.Rules.Rule(leaf.Name) == LfAlways {
		return a.feed()
	}
	return Whitespace{}
}

// AfterText satisfies Formatter.
func (a *AutoIndent) AfterText(leaf Leaf) Whitespace {
	switch leaf.Kind {
	case PreambleLeaf:
		return a.feed()
	case SelfClosingLeaf:
		if a.Rules.Rule(leaf.Name) != NoFormatting {
			return a.feed()
		}
	}
	return Whitespace{}
}

// AlwaysIndent puts every element on its own line and indents its children
// one level deeper. It has no rules: every tag is treated the same. Text stays
// on the line it is written on, while self-closing tags and comments get a
// line of their own.
//
//	w := markupwriter.New(&sb, markupwriter.HTML(), markupwriter.WithFormatter(&markupwriter.AlwaysIndent{}))
type AlwaysIndent struct {
	Policy DecrementPolicy

	level int
}

// Level satisfies IndentCounter.
func (a *AlwaysIndent) Level() int { return a.level }

// Increment satisfies IndentCounter.
func (a *AlwaysIndent) Increment() int {
	a.level++
	return a.level
}

// Decrement satisfies IndentCounter.
func (a *AlwaysIndent) Decrement() (int, error) {
	if a.level == 0 {
		if a.Policy == Strict {
			return 0, ErrIndentUnderflow
		}
		return 0, nil
	}
	a.level--
	return a.level, nil
}

// BeforeOpen satisfies Formatter.
func (a *AlwaysIndent) BeforeOpen(string) Whitespace { return Whitespace{} }

// AfterOpen satisfies Formatter.
func (a *AlwaysIndent) AfterOpen(string) Whitespace {
	a.level++
	return FeedIndent(a.level)
}

// BeforeClose satisfies Formatter.
func (a *AlwaysIndent) BeforeClose(string) Whitespace {
	if a.level > 0 {
		return FeedIndent(a.level - 1)
	}
	return FeedIndent(0)
}

// AfterClose satisfies Formatter.
func (a *AlwaysIndent) AfterClose(string) Whitespace {
	if a.level > 0 {
		a.level--
	}
	return FeedIndent(a.level)
}

// BeforeText satisfies Formatter.
func (a *AlwaysIndent) BeforeText(Leaf) Whitespace { return Whitespace{} }

// AfterText satisfies Formatter.
func (a *AlwaysIndent) AfterText(leaf Leaf) Whitespace {
	if leaf.Kind == TextLeaf {
		return Whitespace{}
	}
	return FeedIndent(a.level)
}
