package testtool

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
)

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, v ...interface{}) {
	tb.Helper()
	if !condition {
		_, file, line, _ := runtime.Caller(1)
		msg := ""
		if len(v) > 0 {
			msg, v = ": "+v[0].(string), v[1:]
		}
		fmt.Printf("\033[31m%s:%d"+msg+"\033[39m\n\n", append([]interface{}{filepath.Base(file), line}, v...)...)
		tb.FailNow()
	}
}

// Pattern fails the test if the input string does not match the supplied
// regular expression.
func Pattern(tb testing.TB, pattern string, in string) {
	tb.Helper()
	ptn, _ := regexp.Compile(pattern)
	if !ptn.MatchString(in) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\tptn: %#v\n\n\tgot: %#v\033[39m\n\n",
			filepath.Base(file), line, pattern, in)
		tb.FailNow()
	}
}

// OK fails the test if an err is not nil.
func OK(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d: unexpected error: %s\033[39m\n\n", filepath.Base(file), line, err.Error())
		tb.FailNow()
	}
}

// ErrIs fails the test if err does not wrap target.
func ErrIs(tb testing.TB, target, err error) {
	tb.Helper()
	if !errors.Is(err, target) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\texp error: %v\n\n\tgot: %v\033[39m\n\n", filepath.Base(file), line, target, err)
		tb.FailNow()
	}
}

// Equals fails the test if exp is not equal to act. Unexported fields are
// compared as well.
func Equals(tb testing.TB, exp, act interface{}) {
	tb.Helper()
	diff := cmp.Diff(exp, act, cmp.Exporter(func(reflect.Type) bool { return true }))
	if diff != "" {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\texp: %#v\n\n\tgot: %#v\n\n%s\033[39m\n\n", filepath.Base(file), line, exp, act, diff)
		tb.FailNow()
	}
}

// Text fails the test if two strings differ, printing a unified diff of the
// lines. Whitespace is shown as is, so check the diff for tabs and trailing
// spaces.
func Text(tb testing.TB, exp, act string) {
	tb.Helper()
	if exp == act {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "exp",
		ToFile:   "got",
		Context:  3,
	})
	_, file, line, _ := runtime.Caller(1)
	fmt.Printf("\033[31m%s:%d:\n\n%s\n\texp: %q\n\n\tgot: %q\033[39m\n\n", filepath.Base(file), line, diff, exp, act)
	tb.FailNow()
}
