package markupwriter

import (
	"fmt"

	"github.com/tidwall/btree"
)

// Rule tells AutoIndent how to lay out one tag.
type Rule int

const (
	// NoFormatting never adds whitespace around the tag. Tags without a rule
	// behave this way.
	NoFormatting Rule = iota

	// LfAlways breaks the line before and after both the opening and the
	// closing tag without changing the indent level, e.g. "<html>".
	LfAlways

	// LfClosing breaks the line after the closing tag only, so content stays
	// inline: "<p>text</p>" followed by a line feed.
	LfClosing

	// IndentAlways breaks the line after the opening tag and renders the
	// element's children one level deeper; the closing tag goes back on its
	// own line at the parent's level.
	IndentAlways

	ruleLength int = iota
)

var ruleName = [ruleLength]string{
	NoFormatting: "no-formatting",
	LfAlways:     "lf-always",
	LfClosing:    "lf-closing",
	IndentAlways: "indent-always",
}

// Name returns a stable name for the Rule, empty if the Rule is invalid.
func (r Rule) Name() string {
	if r >= 0 && int(r) < ruleLength {
		return ruleName[r]
	}
	return ""
}

func (r Rule) String() string {
	if s := r.Name(); s != "" {
		return s
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// ParseRule returns the Rule with the given Name.
func ParseRule(name string) (Rule, error) {
	for i, n := range ruleName {
		if n == name {
			return Rule(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownRule, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) error {
	rule, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if r.Name() == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(r))
	}
	return []byte(r.Name()), nil
}

// RuleTable maps tag names to rules. Lookups are exact; a tag that was never
// assigned resolves to NoFormatting. The zero value is an empty table.
type RuleTable struct {
	tree btree.Map[string, Rule]
}

// Set assigns rule to every tag, replacing any rule the tag had before.
// Assigning NoFormatting removes the tag from the table.
func (t *RuleTable) Set(rule Rule, tags ...string) error {
	if rule.Name() == "" {
		return fmt.Errorf("%w: %d", ErrUnknownRule, int(rule))
	}
	for _, tag := range tags {
		if rule == NoFormatting {
			t.tree.Delete(tag)
		} else {
			t.tree.Set(tag, rule)
		}
	}
	return nil
}

// Rule returns the rule for a tag.
func (t *RuleTable) Rule(tag string) Rule {
	rule, _ := t.tree.Get(tag)
	return rule
}

// Tags lists the tags assigned to rule in lexical order.
func (t *RuleTable) Tags(rule Rule) []string {
	var tags []string
	t.tree.Scan(func(tag string, r Rule) bool {
		if r == rule {
			tags = append(tags, tag)
		}
		return true
	})
	return tags
}

// Len returns the number of tags with a rule.
func (t *RuleTable) Len() int { return t.tree.Len() }

// Reset removes every rule.
func (t *RuleTable) Reset() {
	t.tree = btree.Map[string, Rule]{}
}
