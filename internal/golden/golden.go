// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package golden runs table-driven tests whose table lives in the file
// system: every input file is a test case and its expected outputs sit next to
// it, one file per output extension.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test cases.
type Corpus struct {
	// Directory holding the cases, relative to the file that calls Run.
	Root string

	// Environment variable holding a glob. Cases whose path relative to the
	// calling file matches it have their outputs rewritten instead of checked.
	Refresh string

	// Extension of case files without the dot, e.g. "yaml".
	Extension string

	// Outputs of each case. A missing output file is the same as an empty
	// one, and refreshing an empty output deletes the file.
	Outputs []Output

	// Test runs one case and returns one string per Output.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected result of a case, stored in "<case>.<Extension>".
type Output struct {
	Extension string

	// May be nil, in which case outputs are compared byte for byte.
	Compare Compare
}

// Compare returns an empty string if got matches want, otherwise a message.
type Compare func(got, want string) string

// Run runs every case under Root as a subtest.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var tests []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			tests = append(tests, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("golden: error while walking test data:", err)
	}
	sort.Strings(tests)

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range tests {
		path := path
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading input file %q: %v", path, err)
			}
			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refreshing, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				out := path + "." + output.Extension
				if refreshing {
					if err := write(out, results[i]); err != nil {
						t.Logf("golden: %v", err)
						t.Fail()
					}
					continue
				}

				want, err := os.ReadFile(out)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Logf("golden: error while loading output file %q: %v", out, err)
					t.Fail()
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = defaultCompare
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Logf("output mismatch for %q:\n%s", out, msg)
					t.Fail()
				}
			}
		})
	}
}

func write(path, content string) error {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("deleting %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	if diff == "" {
		// Only line endings differ.
		return fmt.Sprintf("want %q\ngot  %q", want, got)
	}

	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		if strings.HasPrefix(s, "+") {
			lines[i] = "\033[1;92m" + s + "\033[0m"
		} else if strings.HasPrefix(s, "-") {
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
