package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/subedit/subedit/internal/logging"
)

// help aliases recognized anywhere on the command line.
var helpAliases = []string{"-h", "-help", "--help"}

// Option configures a Parser.
type Option func(*Parser)

// WithOutput directs help and display output to w.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) { p.out = w }
}

// WithLogger injects the logger threaded through the pipeline context.
func WithLogger(log *logging.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithoutLogFlags suppresses the built-in verbose/debug/quiet flag group.
func WithoutLogFlags() Option {
	return func(p *Parser) { p.logFlags = false }
}

// Parser parses one token list per Parse call against a root command and its
// registered subcommands.
type Parser struct {
	name        string
	description string
	root        *Command
	subcommands map[string]*Command
	order       []string
	out         io.Writer
	log         *logging.Logger
	logFlags    bool

	// per-parse state, reset by Parse
	pool          *Pool
	intermediates map[string][]string
	seen          []string
	matched       string
	current       *Param
	currentValues []string
}

// New creates a Parser for the named program.
func New(name, description string, opts ...Option) *Parser {
	p := &Parser{
		name:        name,
		description: description,
		subcommands: map[string]*Command{},
		out:         os.Stdout,
		logFlags:    true,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = logging.New(os.Stderr, name)
	}

	root := &Command{Name: name, Help: description}
	if p.logFlags {
		root.Params = []Schema{logFlagsGroup()}
	}

	p.root = root

	return p
}

// AddCommand registers a subcommand.
func (p *Parser) AddCommand(cmd *Command) {
	if _, ok := p.subcommands[cmd.Name]; !ok {
		p.order = append(p.order, cmd.Name)
	}

	p.subcommands[cmd.Name] = cmd
}

// Command returns a registered subcommand by name.
func (p *Parser) Command(name string) (*Command, bool) {
	cmd, ok := p.subcommands[name]

	return cmd, ok
}

// Logger returns the parser's logger.
func (p *Parser) Logger() *logging.Logger {
	return p.log
}

// Parse consumes one token list to completion: tokenization, resolution and
// coercion, then the post-processing/validation pipeline. On success the
// returned Args holds a value or default for every declared parameter plus
// the matched subcommand name under KeySubcommand.
//
// Failure modes: structural parse errors wrap the sentinels in errors.go;
// ErrHelp means help was rendered; ErrReported means a validator already
// reported the reason.
func (p *Parser) Parse(tokens []string) (Args, error) {
	pool, err := newPool(p.root)
	if err != nil {
		return nil, err
	}

	p.pool = pool
	p.intermediates = map[string][]string{}
	p.seen = nil
	p.matched = ""
	p.current = nil
	p.currentValues = nil

	for _, alias := range helpAliases {
		if slices.Contains(tokens, alias) {
			p.printHelp(tokens)

			return nil, ErrHelp
		}
	}

	if err := p.processTokens(tokens); err != nil {
		return nil, err
	}

	args, err := p.resolveArgs()
	if err != nil {
		return nil, err
	}

	if err := p.runPipeline(args); err != nil {
		return nil, err
	}

	return args, nil
}

// Run dispatches the matched subcommand's handler with a fresh pipeline
// context over the parsed arguments. With no subcommand matched, general
// help is rendered and ErrHelp returned.
func (p *Parser) Run(args Args) error {
	name := args.Subcommand()
	if name == "" {
		p.printGeneralHelp()

		return ErrHelp
	}

	cmd, ok := p.subcommands[name]
	if !ok || cmd.Run == nil {
		return nil
	}

	return cmd.Run(&Context{Log: p.log, Out: p.out, Args: args})
}

// processTokens walks the token stream, classifying each token and
// accumulating raw values per parameter.
func (p *Parser) processTokens(tokens []string) error {
	for _, token := range tokens {
		if err := p.processToken(token); err != nil {
			return err
		}
	}

	// finalize a still-open flag with whatever values accumulated
	return p.flushCurrent()
}

// processToken dispatches on token class. Precedence follows the declared
// classification order: numeric literal, help alias, subcommand name, bare
// value, flag-value pair, bare flag.
func (p *Parser) processToken(token string) error {
	switch {
	case isNumeric(token):
		return p.addValue(token)
	case slices.Contains(helpAliases, token):
		// handled before tokenization; unreachable in normal parses
		return nil
	case p.isSubcommandToken(token):
		return p.setSubcommand(token)
	case !strings.HasPrefix(token, "-") || token == "-":
		// "-" is the stdin/stdout sentinel, not a flag
		return p.addValue(token)
	case strings.ContainsAny(token, ":="):
		return p.splitFlagValuePair(token)
	default:
		return p.setFlag(token)
	}
}

// isNumeric reports whether the token parses as a number. Numeric tokens are
// always values; this is what lets negative amounts like "-100" through.
func isNumeric(token string) bool {
	_, err := strconv.ParseFloat(token, 64)

	return err == nil
}

// isSubcommandToken reports whether the token selects a subcommand. Only one
// subcommand can match per parse; later occurrences of command names are
// ordinary positional tokens.
func (p *Parser) isSubcommandToken(token string) bool {
	if p.matched != "" {
		return false
	}

	_, ok := p.subcommands[token]

	return ok
}

// setSubcommand records the match and extends the pool with the subcommand's
// parameters mid-stream.
func (p *Parser) setSubcommand(token string) error {
	if err := p.flushCurrent(); err != nil {
		return err
	}

	p.matched = token

	return p.pool.Register(p.subcommands[token])
}

// addValue routes a value token to the open flag, or to the next positional.
func (p *Parser) addValue(token string) error {
	if p.current == nil {
		param, err := p.pool.NextPositional()
		if err != nil {
			return err
		}

		p.current = param
		p.currentValues = nil
	}

	p.currentValues = append(p.currentValues, token)

	if p.current.Kind != KindMultiple {
		return p.flushCurrent()
	}

	return nil
}

// splitFlagValuePair handles "flag:value" and "flag=value" tokens. A
// Multiple-kind flag's value splits further on ';'.
func (p *Parser) splitFlagValuePair(token string) error {
	if err := p.flushCurrent(); err != nil {
		return err
	}

	sep := ":"
	if !strings.Contains(token, ":") {
		sep = "="
	}

	name, value, _ := strings.Cut(token, sep)

	param, err := p.pool.Resolve(name)
	if err != nil {
		return err
	}

	if value == "" {
		return fmt.Errorf("%w: value cannot be blank in pair %q", ErrInvalidValue, token)
	}

	if param.Kind == KindMultiple {
		p.store(param, strings.Split(value, ";"))

		return nil
	}

	p.store(param, []string{value})

	return nil
}

// setFlag opens a bare flag token. Switches finalize immediately and never
// consume a value.
func (p *Parser) setFlag(token string) error {
	if err := p.flushCurrent(); err != nil {
		return err
	}

	param, err := p.pool.Resolve(token)
	if err != nil {
		return err
	}

	if param.Kind == KindEnable || param.Kind == KindDisable {
		p.store(param, nil)

		return nil
	}

	p.current = param
	p.currentValues = nil

	return nil
}

// flushCurrent stores the open flag's accumulated values, if any flag is
// open.
func (p *Parser) flushCurrent() error {
	if p.current == nil {
		return nil
	}

	p.store(p.current, p.currentValues)
	p.current = nil
	p.currentValues = nil

	return nil
}

// store accumulates raw values for the parameter's canonical name. Repeated
// occurrences of one flag extend the same intermediate tuple.
func (p *Parser) store(param *Param, values []string) {
	name := canonicalName(param.Name)

	if _, ok := p.intermediates[name]; !ok {
		p.seen = append(p.seen, name)
	}

	p.intermediates[name] = append(p.intermediates[name], values...)
}

// logFlagsGroup is the built-in root flag group controlling logging
// verbosity, with its post-processor deriving the level.
func logFlagsGroup() Group {
	return Group{
		Params: []Param{
			{
				Name:      "-verbose",
				Shorthand: "-V",
				Help:      "Enable verbose feedback",
				Kind:      KindEnable,
			},
			{
				Name: "-debug",
				Help: "Enable debug feedback",
				Kind: KindEnable,
			},
			{
				Name:      "-quiet",
				Shorthand: "-q",
				Help:      "Print no output; use this if you batch commands",
				Kind:      KindEnable,
			},
		},
		PostProcessors: []PostProcessor{applyLogLevel},
	}
}

// applyLogLevel derives the logging level from the built-in switches and
// installs it on the context's logger before any validators run.
func applyLogLevel(ctx *Context) {
	level := logging.LevelInfo

	if on, err := ctx.Args.Bool("verbose"); err == nil && on {
		level = logging.LevelVerbose
	}

	if on, err := ctx.Args.Bool("debug"); err == nil && on {
		level = logging.LevelDebug
	}

	if on, err := ctx.Args.Bool("quiet"); err == nil && on {
		level = logging.LevelQuiet
	}

	ctx.Args["verbosity"] = IntValue(int(level))
	ctx.Log.SetLevel(level)
}
