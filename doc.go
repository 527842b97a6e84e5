/*
Package markupwriter provides a fast, non-cached, forward-only way to generate
HTML, XML or any other tag-based markup, with automatic line breaks and
indentation driven by per-tag rules.

It does not parse, escape or validate anything. Text, names and property
values are written exactly as given, so the caller is responsible for escaping
untrusted content.


Creating

A Writer takes a Sink (anything with a WriteString method, like
*strings.Builder, *bytes.Buffer or *bufio.Writer), a Syntax and a variable
list of options:

	var sb strings.Builder
	w := markupwriter.New(&sb, markupwriter.HTML())

Open does the same for any io.Writer:

	w := markupwriter.Open(os.Stdout, markupwriter.XML(), markupwriter.WithPreamble())

markupwriter options are based on Dave Cheney's functional options pattern
(https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis).

Provided options are:
  - WithFormatter(Formatter)
  - WithNoFormat()
  - WithIndentString(string)
  - WithNewline(string)
  - WithPreamble()
  - WithoutAutoClose()
  - WithDecrementPolicy(DecrementPolicy)

A Writer can also be described in YAML with a Config; see LoadConfig.


Overview

Element writes push and pop a stack of open names, so End knows what to close:

	ec := &markupwriter.ErrCollector{}
	defer ec.Panic()

	ai, _ := w.AutoIndent()
	ai.DefaultHTML()
	ec.Do(
		w.Start("html"),
		w.Start("head"),
		w.Block("title", "Hello"),
		w.End("head"),
		w.Start("body"),
		w.SelfClosing("img"),
		w.Properties(markupwriter.Props("src", "a.png")...),
		w.Block("p", "hi"),
		w.Finalize(),
	)

Properties must directly follow Start or SelfClosing: the closing ">" of the
tag is only written once the next thing arrives.


Formatting

A Formatter is asked for whitespace before and after every event. NoFormat
never adds any. AutoIndent looks up the tag's Rule:

  - NoFormatting: nothing, the default for any tag without a rule
  - LfAlways: a line break on both sides of both tags
  - LfClosing: a line break after the closing tag
  - IndentAlways: children go one level deeper, one per line

Rules can be changed at any time with SetRule; elements that are already open
still close at the level they opened at.

AlwaysIndent has no rules. Every element's children go one level deeper and
every closing tag gets a line of its own.

NewLine, LineFeedInc and LineFeedDec give manual control over line breaks.
LineFeedInc and LineFeedDec share the formatter's level.


Finalize

Don't forget to call Finalize. It closes any open elements, writes the last
line feed and flushes the sink if the sink can be flushed. The Writer can't be
used afterwards.


Encodings

markupwriter supports encoders from the golang.org/x/text/encoding package.
UTF-8 strings written in from Go are converted on the fly; characters the
encoding can't represent become numeric character references.

To write your XML using the windows-1252 encoder:

	b := &bytes.Buffer{}
	enc := charmap.Windows1252.NewEncoder()
	w := markupwriter.OpenEncoding(b, enc, markupwriter.XMLEncoding("windows-1252"), markupwriter.WithPreamble())
	markupwriter.Must(w.Block("hello", "Résumé"))
	markupwriter.Must(w.Finalize())

The document line will look like this:

	<?xml version="1.0" encoding="windows-1252"?>
*/
package markupwriter
