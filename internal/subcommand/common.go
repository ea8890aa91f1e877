// Package subcommand declares the subedit subcommands: their parameter
// schemas, their pipeline fragments, and their handlers. The shared input and
// output groups live here so every subcommand accepts files and ranges the
// same way.
package subcommand

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/config"
	"github.com/subedit/subedit/internal/filerange"
	"github.com/subedit/subedit/internal/fileglob"
	"github.com/subedit/subedit/internal/logging"
	"github.com/subedit/subedit/internal/srt"
)

// argument map keys shared across subcommands.
const (
	keyInput     = "input"
	keyInputs    = "inputs"
	keyInputErr  = "input_error"
	keyUseRanges = "use-ranges"
	keyOutput    = "output"
	keyOverwrite = "overwrite"
)

var finishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

// Commands returns every subcommand, with preference-derived defaults baked
// into the schemas.
func Commands(cfg config.Config) []*cli.Command {
	return []*cli.Command{Delay(cfg), Trim(), Display(), Extend()}
}

// singleFileInput is the schema fragment for subcommands operating on one
// subtitle file. Its post-processor replaces the raw input token with a
// parsed range; a parse failure is recorded for the paired validator, which
// runs after all post-processing.
func singleFileInput() cli.Group {
	return cli.Group{
		Params: []cli.Param{
			{
				Name: keyInput,
				Help: "Subtitle file to operate on",
			},
			{
				Name:      "-" + keyUseRanges,
				Shorthand: "-R",
				Help:      "Parse a range suffix on the input file, e.g. file.srt:#3-#9",
				Kind:      cli.KindEnable,
			},
		},
		PostProcessors: []cli.PostProcessor{parseInputRange},
		Validators:     []cli.Validator{validInput},
	}
}

// multiFileInput is the schema fragment for subcommands operating on any
// number of subtitle files, with glob expansion.
func multiFileInput() cli.Group {
	return cli.Group{
		Params: []cli.Param{
			{
				Name: keyInputs,
				Help: "Subtitle files to operate on; glob patterns like *.srt work",
				Kind: cli.KindMultiple,
			},
			{
				Name:      "-" + keyUseRanges,
				Shorthand: "-R",
				Help:      "Parse a range suffix on each input file, e.g. file.srt:#3-#9",
				Kind:      cli.KindEnable,
			},
		},
		PostProcessors: []cli.PostProcessor{parseInputFiles},
		Validators:     []cli.Validator{validInputs},
	}
}

// outputGroup is the schema fragment for subcommands that write a result
// file. Exactly one destination must be chosen.
func outputGroup() cli.Group {
	return cli.Group{
		MutuallyExclusive: true,
		Params: []cli.Param{
			{
				Name:       "-" + keyOutput,
				Shorthand:  "-o",
				Help:       "File to write the result to",
				Default:    "",
				HasDefault: true,
			},
			{
				Name:      "-" + keyOverwrite,
				Shorthand: "-O",
				Help:      "Write the result over the input file",
				Kind:      cli.KindEnable,
			},
		},
		Validators: []cli.Validator{validOutput},
	}
}

// InputFile returns the parsed input range installed by the single-file
// input group's post-processor.
func InputFile(ctx *cli.Context) (filerange.FileRange, error) {
	v, err := ctx.Args.Any(keyInput)
	if err != nil {
		return filerange.FileRange{}, err
	}

	fr, ok := v.(filerange.FileRange)
	if !ok {
		return filerange.FileRange{}, fmt.Errorf("%s is not a parsed file range", keyInput)
	}

	return fr, nil
}

// InputFiles returns the parsed input ranges installed by the multi-file
// input group's post-processor.
func InputFiles(ctx *cli.Context) ([]filerange.FileRange, error) {
	v, err := ctx.Args.Any(keyInputs)
	if err != nil {
		return nil, err
	}

	files, ok := v.([]filerange.FileRange)
	if !ok {
		return nil, fmt.Errorf("%s is not a parsed file range list", keyInputs)
	}

	return files, nil
}

func parseInputRange(ctx *cli.Context) {
	raw, err := ctx.Args.String(keyInput)
	if err != nil {
		return
	}

	useRanges, _ := ctx.Args.Bool(keyUseRanges)
	if !useRanges {
		ctx.Args[keyInput] = cli.AnyValue(filerange.Whole(raw))

		return
	}

	fr, err := filerange.Parse(raw)
	if err != nil {
		ctx.Args[keyInputErr] = cli.AnyValue(err)

		return
	}

	ctx.Args[keyInput] = cli.AnyValue(fr)
}

func parseInputFiles(ctx *cli.Context) {
	raw, err := ctx.Args.Strings(keyInputs)
	if err != nil {
		return
	}

	useRanges, _ := ctx.Args.Bool(keyUseRanges)

	var files []filerange.FileRange

	for _, token := range raw {
		fr := filerange.Whole(token)

		if useRanges {
			fr, err = filerange.Parse(token)
			if err != nil {
				ctx.Args[keyInputErr] = cli.AnyValue(err)

				return
			}
		}

		matches, err := fileglob.Expand(fr.Filename)
		if err != nil {
			ctx.Args[keyInputErr] = cli.AnyValue(err)

			return
		}

		for _, match := range matches {
			entry := fr
			entry.Filename = match
			files = append(files, entry)
		}
	}

	ctx.Args[keyInputs] = cli.AnyValue(files)
}

func validInput(ctx *cli.Context) bool {
	if !reportInputErr(ctx) {
		return false
	}

	fr, err := InputFile(ctx)
	if err != nil {
		ctx.Log.Errorf("%v", err)

		return false
	}

	return validFiletype(ctx, fr.Filename)
}

func validInputs(ctx *cli.Context) bool {
	if !reportInputErr(ctx) {
		return false
	}

	files, err := InputFiles(ctx)
	if err != nil {
		ctx.Log.Errorf("%v", err)

		return false
	}

	for _, fr := range files {
		if !validFiletype(ctx, fr.Filename) {
			return false
		}
	}

	return true
}

// reportInputErr surfaces a failure recorded by an input post-processor.
func reportInputErr(ctx *cli.Context) bool {
	v, err := ctx.Args.Any(keyInputErr)
	if err != nil {
		return true
	}

	ctx.Log.Errorf("%v", v)

	return false
}

func validFiletype(ctx *cli.Context, filename string) bool {
	if strings.HasSuffix(filename, ".srt") {
		return true
	}

	if strings.Contains(filename, ":") {
		ctx.Log.Warnf("a range suffix is only parsed when -%s is passed", keyUseRanges)
	}

	ctx.Log.Errorf("%s is not an srt file", filename)

	return false
}

func validOutput(ctx *cli.Context) bool {
	overwrite, _ := ctx.Args.Bool(keyOverwrite)

	output, _ := ctx.Args.String(keyOutput)
	if !overwrite && output == "" {
		ctx.Log.Errorf("choose a destination: -%s <file> or -%s", keyOutput, keyOverwrite)

		return false
	}

	return true
}

// decode reads the subtitle file named by the range, logging through the
// pipeline's logger.
func decode(ctx *cli.Context, fr filerange.FileRange) (*srt.File, error) {
	return srt.NewDecoder(fr, ctx.Log).Decode()
}

// selector builds the membership predicate for a range: 1-based position for
// line ranges, subtitle start time for time ranges. A whole-file range
// selects everything.
func selector(fr filerange.FileRange) func(pos int, line srt.Line) bool {
	switch {
	case fr.LineRange != nil:
		start, end := fr.LineRange.Start, fr.LineRange.End

		return func(pos int, _ srt.Line) bool {
			if pos < start {
				return false
			}

			return end == filerange.LineEnd || pos <= end
		}
	case fr.TimeRange != nil:
		tr := *fr.TimeRange

		return func(_ int, line srt.Line) bool {
			begin := line.Duration.Begin
			if begin.Before(tr.Begin) {
				return false
			}

			return tr.End.Millis < 0 || begin.Before(tr.End)
		}
	default:
		return func(int, srt.Line) bool { return true }
	}
}

// reindex renumbers the subtitles 1-based in their current order.
func reindex(f *srt.File) {
	for i := range f.Lines {
		f.Lines[i].Index = i + 1
	}
}

// outputPath resolves the destination chosen through the output group.
func outputPath(ctx *cli.Context, f *srt.File) string {
	if output, err := ctx.Args.String(keyOutput); err == nil && output != "" {
		return output
	}

	return f.Range.Filename
}

// saveFile writes the result to the chosen destination and reports
// completion.
func saveFile(ctx *cli.Context, f *srt.File) error {
	target := outputPath(ctx, f)
	if err := f.WriteFile(target); err != nil {
		return err
	}

	ctx.Log.Verbosef("wrote %s", target)

	if ctx.Log.Level() <= logging.LevelInfo {
		msg := "Finished!"
		if ctx.Log.Colors() {
			msg = finishedStyle.Render(msg)
		}

		fmt.Fprintln(ctx.Out, msg)
	}

	return nil
}
