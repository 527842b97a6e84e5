package markupwriter

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v3"
)

// Config describes a Writer in YAML:
//
//	language: html
//	format: auto
//	indent: "  "
//	preamble: true
//	rules:
//	  indent-always: [head, body]
//	  lf-closing: [title, p]
//
// A custom syntax lists one or two strings per construct name:
//
//	syntax:
//	  element-open: ["[", "]"]
//	  element-close: ["[/", "]"]
type Config struct {
	Language     Language            `yaml:"language"`
	Encoding     string              `yaml:"encoding"`
	Format       string              `yaml:"format"`
	Indent       *string             `yaml:"indent"`
	Newline      *string             `yaml:"newline"`
	Preamble     bool                `yaml:"preamble"`
	AutoClose    *bool               `yaml:"auto-close"`
	StrictIndent bool                `yaml:"strict-indent"`
	Syntax       map[string][]string `yaml:"syntax"`
	Rules        map[Rule][]string   `yaml:"rules"`
}

const (
	FormatAuto = "auto"
	FormatNone = "none"

	// FormatAlwaysIndent puts every element on its own line. See AlwaysIndent.
	FormatAlwaysIndent = "always-indent"
)

// LoadConfig decodes a Config. Unknown fields are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("markupwriter: config: %w", err)
	}
	return &c, nil
}

// BuildSyntax returns the custom syntax if one is configured, otherwise the
// built-in syntax for Language. An XML syntax declares Encoding if it is set.
func (c *Config) BuildSyntax() (*Syntax, error) {
	if len(c.Syntax) > 0 {
		delims := make(map[Construct]Delims, len(c.Syntax))
		for name, parts := range c.Syntax {
			construct, err := ParseConstruct(name)
			if err != nil {
				return nil, err
			}
			switch len(parts) {
			case 1:
				delims[construct] = Delims{Open: parts[0]}
			case 2:
				delims[construct] = Delims{Open: parts[0], Close: parts[1]}
			default:
				return nil, fmt.Errorf("markupwriter: syntax %q needs 1 or 2 strings, found %d", name, len(parts))
			}
		}
		name := string(c.Language)
		if name == "" {
			name = "custom"
		}
		return NewSyntax(name, delims)
	}

	lang := c.Language
	if lang == "" {
		lang = HTMLLanguage
	}
	if c.Encoding != "" && Language(strings.ToLower(string(lang))) == XMLLanguage {
		return XMLEncoding(c.Encoding), nil
	}
	return SyntaxFor(lang)
}

// Options returns the Writer options the Config describes.
func (c *Config) Options() ([]Option, error) {
	var opts []Option

	switch c.Format {
	case "", FormatAuto:
		ai := NewAutoIndent()
		if err := c.applyRules(ai); err != nil {
			return nil, err
		}
		if c.StrictIndent {
			ai.Policy = Strict
		}
		opts = append(opts, WithFormatter(ai))
	case FormatNone, FormatAlwaysIndent:
		if len(c.Rules) > 0 {
			return nil, fmt.Errorf("%w: format %q has no rules", ErrUnsupportedFormatter, c.Format)
		}
		if c.Format == FormatNone {
			opts = append(opts, WithNoFormat())
		} else {
			opts = append(opts, WithFormatter(&AlwaysIndent{}))
		}
		if c.StrictIndent {
			opts = append(opts, WithDecrementPolicy(Strict))
		}
	default:
		return nil, fmt.Errorf("markupwriter: unknown format %q", c.Format)
	}

	if c.Indent != nil {
		opts = append(opts, WithIndentString(*c.Indent))
	}
	if c.Newline != nil {
		opts = append(opts, WithNewline(*c.Newline))
	}
	if c.Preamble {
		opts = append(opts, WithPreamble())
	}
	if c.AutoClose != nil && !*c.AutoClose {
		opts = append(opts, WithoutAutoClose())
	}
	return opts, nil
}

func (c *Config) applyRules(ai *AutoIndent) error {
	rules := make([]Rule, 0, len(c.Rules))
	for rule := range c.Rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })

	seen := make(map[string]Rule)
	for _, rule := range rules {
		for _, tag := range c.Rules[rule] {
			if prev, ok := seen[tag]; ok && prev != rule {
				return fmt.Errorf("%w: %q is %s and %s", ErrRuleConflict, tag, prev, rule)
			}
			seen[tag] = rule
		}
		if err := ai.SetRule(rule, c.Rules[rule]...); err != nil {
			return err
		}
	}
	return nil
}

// New builds a Writer on sink. Encoding only affects the preamble here; use
// Open to transcode.
func (c *Config) New(sink Sink) (*Writer, error) {
	syntax, err := c.BuildSyntax()
	if err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return New(sink, syntax, opts...), nil
}

// Open builds a Writer on w, transcoding the output if Encoding names
// anything other than UTF-8.
func (c *Config) Open(w io.Writer) (*Writer, error) {
	syntax, err := c.BuildSyntax()
	if err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	enc, err := c.encoder()
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return Open(w, syntax, opts...), nil
	}
	return OpenEncoding(w, enc, syntax, opts...), nil
}

func (c *Config) encoder() (*encoding.Encoder, error) {
	switch strings.ToLower(c.Encoding) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	return EncodingByName(c.Encoding)
}
