// Package cli is a schema-driven command-line parsing and validation engine.
// Commands declare their parameters, groups, validators, and post-processors
// up front; one Parse walks the token stream, resolves and coerces every
// argument, and runs the two-phase pipeline, yielding a flat name-to-value
// map.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/subedit/subedit/internal/logging"
)

// Kind is the declared behavior of a parameter.
type Kind int

const (
	// KindValue takes exactly one value.
	KindValue Kind = iota

	// KindEnable is a boolean switch, false unless supplied.
	KindEnable

	// KindDisable is a boolean switch, true unless supplied.
	KindDisable

	// KindOptional takes at most one value, falling back to the default.
	KindOptional

	// KindMultiple absorbs values until the next flag or subcommand token.
	KindMultiple
)

// Param describes one flag or positional. A name with a leading '-' is a
// flag; without, a positional identified by its queue position.
type Param struct {
	Name        string
	Shorthand   string
	Help        string
	DisplayName string
	Kind        Kind
	Choices     []string
	Convert     Convert
	Default     string
	HasDefault  bool
}

// Group is a logical group of parameters, optionally mutually exclusive, that
// can carry its own validators and post-processors. Group fragments run
// before the owning command's own fragments, in declaration order.
type Group struct {
	Params            []Param
	MutuallyExclusive bool
	Validators        []Validator
	PostProcessors    []PostProcessor
}

// Schema is a Param or a Group in a Command's parameter list.
type Schema interface {
	isSchema()
}

func (Param) isSchema() {}
func (Group) isSchema() {}

// Command describes a subcommand (or the root): its parameters and its slice
// of the validation pipeline. Commands are owned by static program
// configuration; the engine borrows them for the duration of one parse.
type Command struct {
	Name           string
	Help           string
	Run            func(*Context) error
	Params         []Schema
	Validators     []Validator
	PostProcessors []PostProcessor
}

// postProcessors returns the command's post-processors, group fragments
// first.
func (c *Command) postProcessors() []PostProcessor {
	var combined []PostProcessor

	for _, schema := range c.Params {
		if group, ok := schema.(Group); ok {
			combined = append(combined, group.PostProcessors...)
		}
	}

	return append(combined, c.PostProcessors...)
}

// validators returns the command's validators, group fragments first.
func (c *Command) validators() []Validator {
	var combined []Validator

	for _, schema := range c.Params {
		if group, ok := schema.(Group); ok {
			combined = append(combined, group.Validators...)
		}
	}

	return append(combined, c.Validators...)
}

// Context is passed to validators, post-processors, and command handlers. It
// carries the parse's logger explicitly; there is no global logging state in
// the engine.
type Context struct {
	Log  *logging.Logger
	Out  io.Writer
	Args Args
}

// Validator checks the argument map after post-processing. Returning false
// stops the pipeline; the validator is responsible for reporting the reason
// through ctx.Log before returning.
type Validator func(ctx *Context) bool

// PostProcessor rewrites the argument map in place before validation.
type PostProcessor func(ctx *Context)

// KeySubcommand is the reserved Args key holding the matched subcommand name;
// empty when no subcommand matched.
const KeySubcommand = "subcmd"

// ErrNoValue reports a missing argument key.
var ErrNoValue = errors.New("no value for argument")

// Args is the final argument map: canonical parameter name (no dashes) to
// typed value.
type Args map[string]Value

// Subcommand returns the matched subcommand name, or "" when none matched.
func (a Args) Subcommand() string {
	v, ok := a[KeySubcommand]
	if !ok {
		return ""
	}

	name, err := v.AsString()
	if err != nil {
		return ""
	}

	return name
}

// String fetches a string argument by name.
func (a Args) String(name string) (string, error) {
	v, err := a.value(name)
	if err != nil {
		return "", err
	}

	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return s, nil
}

// Bool fetches a bool argument by name.
func (a Args) Bool(name string) (bool, error) {
	v, err := a.value(name)
	if err != nil {
		return false, err
	}

	b, err := v.AsBool()
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	return b, nil
}

// Int fetches an int argument by name.
func (a Args) Int(name string) (int, error) {
	v, err := a.value(name)
	if err != nil {
		return 0, err
	}

	n, err := v.AsInt()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	return n, nil
}

// Strings fetches a string-list argument by name.
func (a Args) Strings(name string) ([]string, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}

	list, err := v.AsStrings()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return list, nil
}

// Any fetches an opaque argument by name.
func (a Args) Any(name string) (any, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}

	inner, err := v.AsAny()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return inner, nil
}

func (a Args) value(name string) (Value, error) {
	v, ok := a[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrNoValue, name)
	}

	return v, nil
}

// canonicalName strips the flag markers from a parameter name.
func canonicalName(name string) string {
	return strings.TrimLeft(name, "-")
}

// isFlagName reports whether the declared name carries a flag marker.
func isFlagName(name string) bool {
	return strings.HasPrefix(name, "-")
}
