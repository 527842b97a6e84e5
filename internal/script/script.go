// Package script drives a markupwriter.Writer from a YAML description, so
// whole documents can be kept as test data:
//
//	language: html
//	rules:
//	  indent-always: [div]
//	  lf-closing: [p]
//	commands:
//	  - start: div
//	  - properties: [class, box]
//	  - block: [p, hi]
//	  - end: div
//	  - finalize
//
// A command is either a bare action or a map with a single action key whose
// value is one argument or a list of arguments.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	mw "github.com/shabbyrobe/markupwriter"
)

const (
	actionStart       = "start"
	actionEnd         = "end"
	actionEndAll      = "end-all"
	actionEndToDepth  = "end-to-depth"
	actionText        = "text"
	actionSelfClosing = "self-closing"
	actionBlock       = "block"
	actionComment     = "comment"
	actionProperties  = "properties"
	actionRule        = "rule"
	actionNewLine     = "new-line"
	actionLfInc       = "lf-inc"
	actionLfDec       = "lf-dec"
	actionFinalize    = "finalize"
)

// Script is a Writer configuration plus the commands to run against it.
type Script struct {
	mw.Config `yaml:",inline"`

	Commands []Command `yaml:"commands"`
}

// Command is one call against the Writer.
type Command struct {
	Action string
	Args   []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Action
	}
	return fmt.Sprintf("%s %q", c.Action, c.Args)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Action = node.Value
		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: command must have exactly one action", node.Line)
		}
		c.Action = node.Content[0].Value
		arg := node.Content[1]
		switch arg.Kind {
		case yaml.ScalarNode:
			c.Args = []string{arg.Value}
			return nil
		case yaml.SequenceNode:
			return arg.Decode(&c.Args)
		}
		return fmt.Errorf("line %d: arguments to %q must be a scalar or a list", arg.Line, c.Action)
	}
	return fmt.Errorf("line %d: command must be a string or a map", node.Line)
}

// ErrUnknownAction is returned for a command the runner does not recognise.
var ErrUnknownAction = errors.New("script: unknown action")

// CommandError reports the command that failed.
type CommandError struct {
	// 1-based position of the command in the script.
	Index   int
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %d (%s): %v", e.Index, e.Command.Action, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Dump describes the failing command in full, for test logs.
func (e *CommandError) Dump() string {
	return spew.Sdump(e.Command)
}

// Parse decodes a Script. Unknown fields are an error.
func Parse(text []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("script: %w", err)
	}
	return &s, nil
}

// Run builds a Writer on out and runs every command, stopping at the first
// failure. Output written before the failure stays in out.
func (s *Script) Run(out io.Writer) error {
	w, err := s.Config.Open(out)
	if err != nil {
		return err
	}
	for i, cmd := range s.Commands {
		if err := run(w, cmd); err != nil {
			return &CommandError{Index: i + 1, Command: cmd, Err: err}
		}
	}
	return nil
}

func run(w *mw.Writer, cmd Command) error {
	args := cmd.Args
	switch cmd.Action {
	case actionStart:
		if err := argCount(cmd, 1); err != nil {
			return err
		}
		return w.Start(args[0])

	case actionEnd:
		if len(args) > 1 {
			return fmt.Errorf("%q takes at most 1 argument, found %d", cmd.Action, len(args))
		}
		return w.End(args...)

	case actionEndAll:
		if err := argCount(cmd, 0); err != nil {
			return err
		}
		return w.EndAll()

	case actionEndToDepth:
		if err := argCount(cmd, 1); err != nil {
			return err
		}
		depth, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", cmd.Action, err)
		}
		return w.EndToDepth(depth)

	case actionText:
		if err := argCount(cmd, 1); err != nil {
			return err
		}
		return w.Text(args[0])

	case actionSelfClosing:
		if err := argCount(cmd, 1); err != nil {
			return err
		}
		return w.SelfClosing(args[0])

	case actionBlock:
		if err := argCount(cmd, 2); err != nil {
			return err
		}
		return w.Block(args[0], args[1])

	case actionComment:
		if err := argCount(cmd, 1); err != nil {
			return err
		}
		return w.Comment(args[0])

	case actionProperties:
		return w.Properties(mw.Props(args...)...)

	case actionRule:
		if len(args) < 1 {
			return fmt.Errorf("%q needs a rule name", cmd.Action)
		}
		rule, err := mw.ParseRule(args[0])
		if err != nil {
			return err
		}
		return w.SetRule(rule, args[1:]...)

	case actionNewLine:
		if err := argCount(cmd, 0); err != nil {
			return err
		}
		return w.NewLine()

	case actionLfInc:
		if err := argCount(cmd, 0); err != nil {
			return err
		}
		return w.LineFeedInc()

	case actionLfDec:
		if err := argCount(cmd, 0); err != nil {
			return err
		}
		return w.LineFeedDec()

	case actionFinalize:
		if err := argCount(cmd, 0); err != nil {
			return err
		}
		return w.Finalize()
	}
	return fmt.Errorf("%w %q", ErrUnknownAction, cmd.Action)
}

func argCount(cmd Command, n int) error {
	if len(cmd.Args) != n {
		return fmt.Errorf("%q takes %d argument(s), found %d", cmd.Action, n, len(cmd.Args))
	}
	return nil
}
