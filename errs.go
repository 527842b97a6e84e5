package markupwriter

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrUnbalanced is returned by End when there is no open element to end.
	ErrUnbalanced = errors.New("markupwriter: no open element")

	// ErrUnsupportedFormatter is returned when a formatter-specific call is made
	// against a Formatter that does not implement the required capability, for
	// example assigning rules to NoFormat.
	ErrUnsupportedFormatter = errors.New("markupwriter: operation not supported by formatter")

	// ErrFinalized is returned by every write after Finalize has been called.
	ErrFinalized = errors.New("markupwriter: writer already finalized")

	// ErrNameMismatch is returned by End when the expected name does not match
	// the element on top of the stack.
	ErrNameMismatch = errors.New("markupwriter: element name mismatch")

	// ErrMisplacedProperties is returned when properties are written anywhere
	// other than directly after an opening or self-closing tag.
	ErrMisplacedProperties = errors.New("markupwriter: properties must follow an opening or self-closing tag")

	// ErrUnsupportedConstruct is returned when the Syntax has no delimiters for
	// the construct an operation needs.
	ErrUnsupportedConstruct = errors.New("markupwriter: construct not supported by syntax")

	// ErrUnknownConstruct is returned when a Construct is out of range or a
	// construct name can not be parsed.
	ErrUnknownConstruct = errors.New("markupwriter: unknown construct")

	// ErrIndentUnderflow is returned by LineFeedDec at level 0 when the
	// formatter uses the Strict decrement policy.
	ErrIndentUnderflow = errors.New("markupwriter: indent level below zero")

	// ErrUnknownRule is returned when a rule name can not be parsed.
	ErrUnknownRule = errors.New("markupwriter: unknown rule")

	// ErrRuleConflict is returned by a Config that lists one tag under more
	// than one rule.
	ErrRuleConflict = errors.New("markupwriter: tag assigned to more than one rule")
)

// WriteError wraps an error returned by a Sink. Whatever was written to the
// sink before the failure stays written.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("markupwriter: write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

/*
ErrCollector allows you to defer raising or accumulating an error
until after a series of procedural calls.

ErrCollector it is intended to help cut down on boilerplate like this:

	if err := w.Start("html"); err != nil {
		return err
	}
	if err := w.Start("body"); err != nil {
		return err
	}
	if err := w.Text("hello"); err != nil {
		return err
	}

Writes after the first failure are safe to make: the Writer keeps returning
errors and the stack is never corrupted, so the collector can keep the first
error and discard the rest.

For functions that return an error:

	func page(w *markupwriter.Writer) (err error) {
		ec := &markupwriter.ErrCollector{}
		defer ec.Set(&err)
		ec.Do(
			w.Start("html"),
			w.Start("body"),
			w.Text("hello"),
			w.Finalize(),
		)
		return
	}

If you want to panic instead, just substitute `defer ec.Set(&err)` with `defer
ec.Panic()`

It is entirely the responsibility of the library's user to remember to call
either `ec.Set()` or `ec.Panic()`. If you don't, you'll be swallowing errors.
*/
type ErrCollector struct {
	File  string
	Line  int
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ErrCollector) Error() string {
	return fmt.Sprintf("error at %s:%d #%d - %v", e.File, e.Line, e.Index, e.Err)
}

// Unwrap returns the collected error.
func (e *ErrCollector) Unwrap() error { return e.Err }

// Panic causes the collector to panic if any error has been collected.
// This should be called in a defer.
func (e *ErrCollector) Panic() {
	if e.Err != nil {
		panic(e)
	}
}

// Set assigns the collector's internal error to an external error variable.
// This should be called in a defer with a named return.
func (e *ErrCollector) Set(err *error) {
	if e.Err != nil {
		*err = e
	}
}

// Do collects the first error in a list of errors and holds on to it. Once an
// error has been collected, later calls to Do are ignored.
func (e *ErrCollector) Do(errs ...error) {
	if e.Err != nil {
		return
	}
	e.collect(errs)
}

// Must collects the first error in a list of errors and panics with it.
func (e *ErrCollector) Must(errs ...error) {
	if e.collect(errs) {
		panic(e)
	}
}

func (e *ErrCollector) collect(errs []error) bool {
	for i, err := range errs {
		if err != nil {
			_, file, line, _ := runtime.Caller(2)
			e.Err = err
			e.Index = i + 1
			e.File = file
			e.Line = line
			return true
		}
	}
	return false
}

// Must panics if err is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
