package markupwriter

import "fmt"

// EventKind identifies which Formatter method produced an Event.
type EventKind int

const (
	BeforeOpenEvent EventKind = iota
	AfterOpenEvent
	BeforeCloseEvent
	AfterCloseEvent
	BeforeTextEvent
	AfterTextEvent
)

var eventKindName = [...]string{
	BeforeOpenEvent:  "before-open",
	AfterOpenEvent:   "after-open",
	BeforeCloseEvent: "before-close",
	AfterCloseEvent:  "after-close",
	BeforeTextEvent:  "before-text",
	AfterTextEvent:   "after-text",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindName) {
		return eventKindName[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one decision made by a Formatter. Name is the tag name for element
// events and the leaf name for self-closing leaves.
type Event struct {
	Kind  EventKind
	Name  string
	Leaf  LeafKind
	Space Whitespace
}

func (e Event) String() string {
	return fmt.Sprintf("%s\t%s\t%s", e.Kind, e.Name, e.Space)
}

// Trace wraps a Formatter and records every decision it makes. Wrapping hides
// the inner formatter's RuleSetter and IndentCounter, so configure it first.
//
//	ai := markupwriter.NewAutoIndent()
//	tr := &markupwriter.Trace{Formatter: ai}
//	w := markupwriter.New(&sb, markupwriter.HTML(), markupwriter.WithFormatter(tr))
type Trace struct {
	Formatter Formatter
	Events    []Event
}

func (t *Trace) record(kind EventKind, name string, leaf LeafKind, ws Whitespace) Whitespace {
	t.Events = append(t.Events, Event{Kind: kind, Name: name, Leaf: leaf, Space: ws})
	return ws
}

// BeforeOpen satisfies Formatter.
func (t *Trace) BeforeOpen(name string) Whitespace {
	return t.record(BeforeOpenEvent, name, 0, t.Formatter.BeforeOpen(name))
}

// AfterOpen satisfies Formatter.
func (t *Trace) AfterOpen(name string) Whitespace {
	return t.record(AfterOpenEvent, name, 0, t.Formatter.AfterOpen(name))
}

// BeforeClose satisfies Formatter.
func (t *Trace) BeforeClose(name string) Whitespace {
	return t.record(BeforeCloseEvent, name, 0, t.Formatter.BeforeClose(name))
}

// AfterClose satisfies Formatter.
func (t *Trace) AfterClose(name string) Whitespace {
	return t.record(AfterCloseEvent, name, 0, t.Formatter.AfterClose(name))
}

// BeforeText satisfies Formatter.
func (t *Trace) BeforeText(leaf Leaf) Whitespace {
	return t.record(BeforeTextEvent, leaf.Name, leaf.Kind, t.Formatter.BeforeText(leaf))
}

// AfterText satisfies Formatter.
func (t *Trace) AfterText(leaf Leaf) Whitespace {
	return t.record(AfterTextEvent, leaf.Name, leaf.Kind, t.Formatter.AfterText(leaf))
}
