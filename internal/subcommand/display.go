package subcommand

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/srt"
)

var filenameStyle = lipgloss.NewStyle().Bold(true)

// Display builds the display subcommand: per-file diagnostics, optionally
// with the subtitles themselves.
func Display() *cli.Command {
	return &cli.Command{
		Name: "display",
		Help: "Display diagnostic information about subtitle files",
		Params: []cli.Schema{
			multiFileInput(),
			cli.Param{
				Name:      "-long",
				Shorthand: "-l",
				Help:      "Also print every subtitle in the selected range",
				Kind:      cli.KindEnable,
			},
		},
		Run: runDisplay,
	}
}

func runDisplay(ctx *cli.Context) error {
	files, err := InputFiles(ctx)
	if err != nil {
		return err
	}

	long, err := ctx.Args.Bool("long")
	if err != nil {
		return err
	}

	for _, fr := range files {
		dec := srt.NewDecoder(fr, ctx.Log)

		f, err := dec.Decode()
		if err != nil {
			return err
		}

		displayFile(ctx, f, dec.Stats, long)
	}

	return nil
}

func displayFile(ctx *cli.Context, f *srt.File, stats srt.Stats, long bool) {
	name := f.Range.Filename
	if ctx.Log.Colors() {
		name = filenameStyle.Render(name)
	}

	fmt.Fprintf(ctx.Out, "%s\n", name)
	fmt.Fprintf(ctx.Out, "\tencoding: %s\n", f.Encoding)
	fmt.Fprintf(ctx.Out, "\tsubtitles: %d\n", len(f.Lines))

	for _, m := range srt.CheckIndexMismatch(f) {
		fmt.Fprintf(ctx.Out, "\tindex %d out of place, position says %d\n", m.Reported, m.Actual)
	}

	if stats.MissingFinalBlank {
		fmt.Fprintf(ctx.Out, "\tmissing blank line at end of file\n")
	}

	for _, at := range stats.ConsecutiveBlankLines {
		fmt.Fprintf(ctx.Out, "\textra blank line before line %d\n", at+1)
	}

	if long {
		displayLines(ctx, f)
	}
}

func displayLines(ctx *cli.Context, f *srt.File) {
	selected := selector(f.Range)

	for i, line := range f.Lines {
		if !selected(i+1, line) {
			continue
		}

		fmt.Fprintf(ctx.Out, "\t%d: %s\n", line.Index, line.Duration)

		for _, content := range line.Content {
			fmt.Fprintf(ctx.Out, "\t\t%s\n", content)
		}
	}
}
