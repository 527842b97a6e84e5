package markupwriter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shabbyrobe/markupwriter/internal/golden"
	"github.com/shabbyrobe/markupwriter/internal/script"
)

// TestGolden runs every script under testdata. Set MARKUPWRITER_REFRESH to a
// glob such as "testdata/**" to rewrite the expected outputs.
func TestGolden(t *testing.T) {
	corpus := golden.Corpus{
		Root:      "testdata",
		Refresh:   "MARKUPWRITER_REFRESH",
		Extension: "yaml",
		Outputs: []golden.Output{
			{Extension: "out"},
			{Extension: "err"},
		},
		Test: func(t *testing.T, path, text string) []string {
			s, err := script.Parse([]byte(text))
			if err != nil {
				return []string{"", err.Error() + "\n"}
			}
			var out bytes.Buffer
			if err := s.Run(&out); err != nil {
				var cerr *script.CommandError
				if errors.As(err, &cerr) {
					t.Log(cerr.Dump())
				}
				return []string{out.String(), err.Error() + "\n"}
			}
			return []string{out.String(), ""}
		},
	}
	corpus.Run(t)
}
