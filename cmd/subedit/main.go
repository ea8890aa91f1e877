// Package main provides the subedit CLI tool for editing subtitle files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/config"
	"github.com/subedit/subedit/internal/logging"
	"github.com/subedit/subedit/internal/subcommand"
)

const description = "Just enough subtitle editing"

// exit codes. Validators report their own reasons, so reported failures exit
// without extra output.
const (
	exitOK       = 0
	exitReported = 1
	exitUsage    = 2
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return exitUsage
	}

	p := newParser(cfg)

	args, err := p.Parse(os.Args[1:])
	if err != nil {
		return exitCode(p, err)
	}

	return exitCode(p, p.Run(args))
}

// newParser assembles the parser from the user's preferences: logger setup
// and subcommand schemas.
func newParser(cfg config.Config) *cli.Parser {
	log := logging.NewWithOptions(os.Stderr, logging.Options{
		Name:    "subedit",
		NoColor: cfg.Color != nil && !*cfg.Color,
	})
	if cfg.Verbosity != "" {
		log.SetLevel(logging.ParseLevel(cfg.Verbosity))
	}

	p := cli.New("subedit", description, cli.WithLogger(log))
	for _, cmd := range subcommand.Commands(cfg) {
		p.AddCommand(cmd)
	}

	return p
}

func exitCode(p *cli.Parser, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrHelp):
		return exitOK
	case errors.Is(err, cli.ErrReported):
		return exitReported
	default:
		p.Logger().Errorf("%v", err)

		return exitUsage
	}
}
