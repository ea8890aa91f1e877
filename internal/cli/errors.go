package cli

import "errors"

// Structural parse errors. All are fatal to the current parse and reach the
// caller wrapped with the offending token or parameter name; discriminate
// with errors.Is.
var (
	// ErrUnknownFlag reports a flag token that resolves to no registered
	// name.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrPositionalAsFlag reports a positional's name used in flag
	// position.
	ErrPositionalAsFlag = errors.New("positional argument cannot be used as a flag")

	// ErrTooManyPositionals reports more positional values than declared.
	ErrTooManyPositionals = errors.New("too many positional arguments provided")

	// ErrMissingPositional reports a declared positional with neither a
	// supplied value nor a default.
	ErrMissingPositional = errors.New("no value provided for positional argument")

	// ErrConflictingFlags reports two or more supplied members of a
	// mutually-exclusive group.
	ErrConflictingFlags = errors.New("conflicting flags")

	// ErrInvalidChoice reports a value outside a parameter's declared
	// choice set.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidValue reports a supplied value that failed type
	// conversion, or a value count the parameter's kind does not permit.
	ErrInvalidValue = errors.New("invalid value")

	// ErrBadSchema reports a structurally invalid command declaration,
	// e.g. a positional declared as a boolean switch.
	ErrBadSchema = errors.New("invalid command schema")
)

// Pipeline signals. Not structural errors.
var (
	// ErrHelp is returned after help output was requested and rendered.
	ErrHelp = errors.New("help requested")

	// ErrReported is the "no result" signal: a validator returned false
	// after reporting its reason itself. Callers exit without printing.
	ErrReported = errors.New("validation failed")
)
