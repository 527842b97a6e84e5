package markupwriter

import (
	"testing"

	tt "github.com/shabbyrobe/markupwriter/testtool"
)

func TestNoFormatDecisions(t *testing.T) {
	var f Formatter = NoFormat{}
	none := Whitespace{}
	tt.Equals(t, none, f.BeforeOpen("a"))
	tt.Equals(t, none, f.AfterOpen("a"))
	tt.Equals(t, none, f.BeforeClose("a"))
	tt.Equals(t, none, f.AfterClose("a"))
	tt.Equals(t, none, f.BeforeText(Leaf{Kind: PreambleLeaf}))
	tt.Equals(t, none, f.AfterText(Leaf{Kind: PreambleLeaf}))
}

func TestAutoIndentUnknownTag(t *testing.T) {
	ai := NewAutoIndent()
	none := Whitespace{}
	tt.Equals(t, none, ai.BeforeOpen("x"))
	tt.Equals(t, none, ai.AfterOpen("x"))
	tt.Equals(t, none, ai.BeforeClose("x"))
	tt.Equals(t, none, ai.AfterClose("x"))
	tt.Equals(t, none, ai.BeforeText(Leaf{Kind: SelfClosingLeaf, Name: "x"}))
	tt.Equals(t, none, ai.AfterText(Leaf{Kind: SelfClosingLeaf, Name: "x"}))
	tt.Equals(t, 0, ai.Level())
}

func TestAutoIndentRules(t *testing.T) {
	for _, tc := range []struct {
		rule                    Rule
		beforeOpen, afterOpen   Whitespace
		beforeClose, afterClose Whitespace
		levelAfterOpen          int
		beforeLeaf, afterLeaf   Whitespace
	}{
		{NoFormatting, Whitespace{}, Whitespace{}, Whitespace{}, Whitespace{}, 0, Whitespace{}, Whitespace{}},
		{LfAlways, FeedIndent(0), FeedIndent(0), FeedIndent(0), FeedIndent(0), 0, FeedIndent(0), FeedIndent(0)},
		{LfClosing, Whitespace{}, Whitespace{}, Whitespace{}, FeedIndent(0), 0, Whitespace{}, FeedIndent(0)},
		{IndentAlways, Whitespace{}, FeedIndent(1), FeedIndent(0), FeedIndent(0), 1, Whitespace{}, FeedIndent(0)},
	} {
		t.Run(tc.rule.String(), func(t *testing.T) {
			ai := NewAutoIndent()
			tt.OK(t, ai.SetRule(tc.rule, "t"))
			tt.Equals(t, tc.beforeOpen, ai.BeforeOpen("t"))
			tt.Equals(t, tc.afterOpen, ai.AfterOpen("t"))
			tt.Equals(t, tc.levelAfterOpen, ai.Level())
			tt.Equals(t, tc.beforeClose, ai.BeforeClose("t"))
			tt.Equals(t, tc.afterClose, ai.AfterClose("t"))
			tt.Equals(t, 0, ai.Level())

			leaf := Leaf{Kind: SelfClosingLeaf, Name: "t"}
			tt.Equals(t, tc.beforeLeaf, ai.BeforeText(leaf))
			tt.Equals(t, tc.afterLeaf, ai.AfterText(leaf))
		})
	}
}

func TestAutoIndentTextNeverBreaks(t *testing.T) {
	ai := NewAutoIndent()
	tt.OK(t, ai.SetRule(LfAlways, ""))
	for _, kind := range []LeafKind{TextLeaf, CommentLeaf} {
		tt.Equals(t, Whitespace{}, ai.BeforeText(Leaf{Kind: kind}))
		tt.Equals(t, Whitespace{}, ai.AfterText(Leaf{Kind: kind}))
	}
	tt.Equals(t, FeedIndent(0), ai.AfterText(Leaf{Kind: PreambleLeaf}))
}

func TestAutoIndentCounter(t *testing.T) {
	ai := NewAutoIndent()
	tt.Equals(t, 1, ai.Increment())
	tt.Equals(t, 2, ai.Increment())
	l, err := ai.Decrement()
	tt.OK(t, err)
	tt.Equals(t, 1, l)

	l, err = ai.Decrement()
	tt.OK(t, err)
	tt.Equals(t, 0, l)
	l, err = ai.Decrement()
	tt.OK(t, err)
	tt.Equals(t, 0, l)

	ai.Policy = Strict
	_, err = ai.Decrement()
	tt.ErrIs(t, ErrIndentUnderflow, err)
	tt.Equals(t, 0, ai.Level())
}

func TestAutoIndentCloseClampsAfterManualDecrement(t *testing.T) {
	ai := NewAutoIndent()
	tt.OK(t, ai.SetRule(IndentAlways, "t"))
	ai.Policy = Strict
	ai.AfterOpen("t")
	_, err := ai.Decrement()
	tt.OK(t, err)
	tt.Equals(t, FeedIndent(0), ai.BeforeClose("t"))
	tt.Equals(t, 0, ai.Level())
}

func TestAutoIndentReset(t *testing.T) {
	ai := NewAutoIndent()
	ai.DefaultHTML()
	tt.Assert(t, ai.Rules.Len() > 0)
	ai.AfterOpen("body")
	tt.Equals(t, 1, ai.Level())
	ai.Reset()
	tt.Equals(t, 0, ai.Level())
	tt.Equals(t, 0, ai.Rules.Len())
	tt.Equals(t, Whitespace{}, ai.BeforeClose("body"))
}

func TestWhitespaceMerge(t *testing.T) {
	tt.Equals(t, FeedIndent(2), FeedIndent(1).merge(FeedIndent(2)))
	tt.Equals(t, FeedIndent(1), FeedIndent(1).merge(Whitespace{}))
	tt.Equals(t, Feed(), Whitespace{}.merge(Feed()))
	tt.Equals(t, Whitespace{}, Whitespace{}.merge(Whitespace{}))
}

func TestWhitespaceString(t *testing.T) {
	tt.Equals(t, "none", Whitespace{}.String())
	tt.Equals(t, "lf", Feed().String())
	tt.Equals(t, "lf+3", FeedIndent(3).String())
}

func TestWriterFeedWithoutIndent(t *testing.T) {
	b, w := open(HTML(), WithFormatter(feedAfterClose{}))
	must(w.Block("a", "x"))
	must(w.Block("b", "y"))
	tt.Equals(t, "<a>x</a>\n<b>y</b>\n", str(b, w))
}

type feedAfterClose struct{ NoFormat }

func (feedAfterClose) AfterClose(string) Whitespace { return Feed() }

func TestAutoIndentCloseWaitsForAfterClose(t *testing.T) {
	ai := NewAutoIndent()
	tt.OK(t, ai.SetRule(IndentAlways, "a", "b"))
	ai.AfterOpen("a")
	ai.AfterOpen("b")
	tt.Equals(t, FeedIndent(1), ai.BeforeClose("b"))
	tt.Equals(t, 2, ai.Level())
	tt.Equals(t, FeedIndent(1), ai.BeforeClose("b"))
	tt.Equals(t, FeedIndent(1), ai.AfterClose("b"))
	tt.Equals(t, 1, ai.Level())
	tt.Equals(t, FeedIndent(0), ai.BeforeClose("a"))
	tt.Equals(t, FeedIndent(0), ai.AfterClose("a"))
	tt.Equals(t, 0, ai.Level())
}

func TestAlwaysIndentDecisions(t *testing.T) {
	a := &AlwaysIndent{}
	none := Whitespace{}
	tt.Equals(t, none, a.BeforeOpen("x"))
	tt.Equals(t, FeedIndent(1), a.AfterOpen("x"))
	tt.Equals(t, none, a.BeforeText(Leaf{Kind: TextLeaf}))
	tt.Equals(t, none, a.AfterText(Leaf{Kind: TextLeaf}))
	tt.Equals(t, FeedIndent(1), a.AfterText(Leaf{Kind: SelfClosingLeaf, Name: "br"}))
	tt.Equals(t, FeedIndent(1), a.AfterText(Leaf{Kind: CommentLeaf}))
	tt.Equals(t, FeedIndent(0), a.BeforeClose("x"))
	tt.Equals(t, 1, a.Level())
	tt.Equals(t, FeedIndent(0), a.AfterClose("x"))
	tt.Equals(t, 0, a.Level())
	tt.Equals(t, FeedIndent(0), a.BeforeClose("x"))
	tt.Equals(t, FeedIndent(0), a.AfterClose("x"))
	tt.Equals(t, 0, a.Level())
}

func TestAlwaysIndentCounter(t *testing.T) {
	a := &AlwaysIndent{}
	tt.Equals(t, 1, a.Increment())
	l, err := a.Decrement()
	tt.OK(t, err)
	tt.Equals(t, 0, l)
	l, err = a.Decrement()
	tt.OK(t, err)
	tt.Equals(t, 0, l)

	a.Policy = Strict
	_, err = a.Decrement()
	tt.ErrIs(t, ErrIndentUnderflow, err)
}

func TestWriterAlwaysIndent(t *testing.T) {
	b, w := open(HTML(), WithFormatter(&AlwaysIndent{}))
	tt.ErrIs(t, ErrUnsupportedFormatter, w.SetRule(LfAlways, "p"))
	must(w.Start("div"))
	must(w.Start("p"))
	must(w.Text("x"))
	must(w.End())
	must(w.Start("span"))
	must(w.End())
	must(w.SelfClosing("br"))
	tt.Text(t, lines(
		"<div>",
		"    <p>",
		"        x",
		"    </p>",
		"    <span>",
		"    </span>",
		"    <br>",
		"</div>",
		"",
	), str(b, w))
}
