package markupwriter

import (
	"fmt"
	"strings"
)

// Construct is a structural piece of markup that a Syntax supplies
// delimiters for.
type Construct int

// Range of allowed Construct values.
const (
	ElementOpen Construct = iota
	ElementClose
	ElementSelfClosing
	PropertyAssign
	PropertySeparator
	CommentBlock
	DocumentPreamble

	constructLength int = iota
)

var constructName = [constructLength]string{
	ElementOpen:        "element-open",
	ElementClose:       "element-close",
	ElementSelfClosing: "self-closing",
	PropertyAssign:     "property",
	PropertySeparator:  "property-separator",
	CommentBlock:       "comment",
	DocumentPreamble:   "preamble",
}

// Name returns a stable name for the Construct. If the Construct is invalid,
// the Name() will be empty.
func (c Construct) Name() string {
	if c >= 0 && int(c) < constructLength {
		return constructName[c]
	}
	return ""
}

// String returns a human-readable representation of the Construct. If a
// stable string is required, use Name().
func (c Construct) String() string {
	s := c.Name()
	if s == "" {
		s = "<unknown>"
	}
	return fmt.Sprintf("%s(%d)", s, int(c))
}

// ParseConstruct returns the Construct with the given Name.
func ParseConstruct(name string) (Construct, error) {
	for i, n := range constructName {
		if n == name {
			return Construct(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownConstruct, name)
}

// Delims is the literal text written either side of a construct. For an
// element the name goes between Open and Close (the opening Close may be
// deferred to allow properties), for a property it is the value, for a comment
// it is the content. A preamble is written as Open followed by Close.
type Delims struct {
	Open  string
	Close string
}

// Language selects one of the built-in syntaxes.
type Language string

const (
	HTMLLanguage Language = "html"
	XMLLanguage  Language = "xml"
)

// Syntax maps each Construct to the literal text that delimits it for one
// markup language. A Syntax is immutable once built and can be shared between
// writers.
type Syntax struct {
	name   string
	delims [constructLength]Delims
	has    [constructLength]bool
}

// NewSyntax builds a custom Syntax. Constructs missing from the map are
// unsupported; operations that need them fail with ErrUnsupportedConstruct.
func NewSyntax(name string, delims map[Construct]Delims) (*Syntax, error) {
	s := &Syntax{name: name}
	for c, d := range delims {
		if c.Name() == "" {
			return nil, fmt.Errorf("%w: %d in syntax %q", ErrUnknownConstruct, int(c), name)
		}
		s.delims[c] = d
		s.has[c] = true
	}
	return s, nil
}

func markupDelims(selfClose, preamble string) map[Construct]Delims {
	return map[Construct]Delims{
		ElementOpen:        {"<", ">"},
		ElementClose:       {"</", ">"},
		ElementSelfClosing: {"<", selfClose},
		PropertyAssign:     {`="`, `"`},
		PropertySeparator:  {" ", ""},
		CommentBlock:       {"<!--", "-->"},
		DocumentPreamble:   {preamble, ""},
	}
}

func mustSyntax(s *Syntax, err error) *Syntax {
	if err != nil {
		panic(err)
	}
	return s
}

// HTML returns the built-in HTML syntax. Self-closing tags are written without
// a slash ("<img>") and the preamble is the HTML5 DOCTYPE.
func HTML() *Syntax {
	return mustSyntax(NewSyntax(string(HTMLLanguage), markupDelims(">", "<!DOCTYPE html>")))
}

// XML returns the built-in XML syntax, declaring UTF-8 in the preamble.
func XML() *Syntax {
	return XMLEncoding("UTF-8")
}

// XMLEncoding returns the XML syntax with a preamble that declares the given
// encoding. It does not transcode anything; pair it with OpenEncoding.
func XMLEncoding(encoding string) *Syntax {
	decl := `<?xml version="1.0" encoding="` + encoding + `"?>`
	return mustSyntax(NewSyntax(string(XMLLanguage), markupDelims(" />", decl)))
}

// SyntaxFor returns the built-in Syntax for a Language.
func SyntaxFor(lang Language) (*Syntax, error) {
	switch Language(strings.ToLower(string(lang))) {
	case HTMLLanguage:
		return HTML(), nil
	case XMLLanguage:
		return XML(), nil
	default:
		return nil, fmt.Errorf("markupwriter: unknown language %q", string(lang))
	}
}

// Name returns the name the Syntax was built with.
func (s *Syntax) Name() string { return s.name }

// Has reports whether the Syntax supports the construct.
func (s *Syntax) Has(c Construct) bool {
	return c.Name() != "" && s.has[c]
}

// Delims returns the delimiters for a construct.
func (s *Syntax) Delims(c Construct) (Delims, error) {
	if c.Name() == "" {
		return Delims{}, fmt.Errorf("%w: %d", ErrUnknownConstruct, int(c))
	}
	if !s.has[c] {
		return Delims{}, fmt.Errorf("%w: %s in syntax %q", ErrUnsupportedConstruct, c.Name(), s.name)
	}
	return s.delims[c], nil
}
