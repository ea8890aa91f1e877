package subcommand

import (
	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/filerange"
	"github.com/subedit/subedit/internal/srt"
)

const (
	keyRange    = "range"
	keyRangeErr = "range_error"
)

// Trim builds the trim subcommand. The range to remove comes either from a
// suffix on the input file or from the -range flag, never both.
func Trim() *cli.Command {
	return &cli.Command{
		Name: "trim",
		Help: "Remove a range of subtitles from the file",
		Params: []cli.Schema{
			singleFileInput(),
			outputGroup(),
			cli.Param{
				Name:       "-" + keyRange,
				Shorthand:  "-r",
				Help:       "Range to remove, as #n-#n or hh:mm:ss,mmm-hh:mm:ss,mmm",
				Default:    "",
				HasDefault: true,
			},
		},
		PostProcessors: []cli.PostProcessor{parseTrimRange},
		Validators:     []cli.Validator{validTrimRange},
		Run:            runTrim,
	}
}

func parseTrimRange(ctx *cli.Context) {
	raw, err := ctx.Args.String(keyRange)
	if err != nil || raw == "" {
		return
	}

	fr, err := filerange.ParseRange(raw)
	if err != nil {
		ctx.Args[keyRangeErr] = cli.AnyValue(err)

		return
	}

	ctx.Args[keyRange] = cli.AnyValue(fr)
}

// validTrimRange ensures exactly one range source was given.
func validTrimRange(ctx *cli.Context) bool {
	if v, err := ctx.Args.Any(keyRangeErr); err == nil {
		ctx.Log.Errorf("%v", v)

		return false
	}

	input, err := InputFile(ctx)
	if err != nil {
		// reported by the input group's validator
		return true
	}

	_, flagged := trimFlagRange(ctx)
	embedded := input.LineRange != nil || input.TimeRange != nil

	switch {
	case flagged && embedded:
		ctx.Log.Errorf("give the range on the input file or with -%s, not both", keyRange)

		return false
	case !flagged && !embedded:
		ctx.Log.Errorf("nothing to trim; give a range on the input file or with -%s", keyRange)

		return false
	}

	return true
}

// trimFlagRange fetches the parsed -range value, when one was supplied.
func trimFlagRange(ctx *cli.Context) (filerange.FileRange, bool) {
	v, err := ctx.Args.Any(keyRange)
	if err != nil {
		return filerange.FileRange{}, false
	}

	fr, ok := v.(filerange.FileRange)

	return fr, ok
}

func runTrim(ctx *cli.Context) error {
	input, err := InputFile(ctx)
	if err != nil {
		return err
	}

	trimRange := input
	if fr, ok := trimFlagRange(ctx); ok {
		trimRange = fr
	}

	f, err := decode(ctx, input)
	if err != nil {
		return err
	}

	doomed := selector(trimRange)

	var kept []srt.Line

	for i, line := range f.Lines {
		if doomed(i+1, line) {
			continue
		}

		kept = append(kept, line)
	}

	ctx.Log.Verbosef("trimmed %d of %d subtitles", len(f.Lines)-len(kept), len(f.Lines))

	f.Lines = kept
	reindex(f)

	return saveFile(ctx, f)
}
