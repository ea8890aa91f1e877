package subcommand

import (
	"github.com/subedit/subedit/internal/cli"
)

// Extend builds the extend subcommand: push each subtitle's end time later so
// it stays on screen until just before the next one appears.
func Extend() *cli.Command {
	return &cli.Command{
		Name: "extend",
		Help: "Extend how long subtitles stay on screen",
		Params: []cli.Schema{
			singleFileInput(),
			outputGroup(),
			cli.Param{
				Name:        "extend",
				DisplayName: "extend_by",
				Help:        "Milliseconds to extend each subtitle by",
				Convert:     cli.ToInt,
			},
			cli.Param{
				Name:       "gap",
				Help:       "Minimum milliseconds to leave before the next subtitle",
				Kind:       cli.KindOptional,
				Convert:    cli.ToInt,
				Default:    "100",
				HasDefault: true,
			},
		},
		Run: runExtend,
	}
}

func runExtend(ctx *cli.Context) error {
	ctx.Log.Warnf("extend is experimental; check the result before discarding the original")

	fr, err := InputFile(ctx)
	if err != nil {
		return err
	}

	f, err := decode(ctx, fr)
	if err != nil {
		return err
	}

	extendBy, err := ctx.Args.Int("extend")
	if err != nil {
		return err
	}

	gap, err := ctx.Args.Int("gap")
	if err != nil {
		return err
	}

	selected := selector(f.Range)
	extended := 0

	for i := range f.Lines {
		if !selected(i+1, f.Lines[i]) {
			continue
		}

		end := f.Lines[i].Duration.End.Add(extendBy)

		if i+1 < len(f.Lines) {
			limit := f.Lines[i+1].Duration.Begin.Add(-gap)
			if limit.Before(end) {
				end = limit
			}
		}

		// the gap cap never shortens an existing duration
		if end.Before(f.Lines[i].Duration.End) {
			continue
		}

		f.Lines[i].Duration.End = end
		extended++
	}

	ctx.Log.Verbosef("extended %d subtitles by up to %d ms", extended, extendBy)

	return saveFile(ctx, f)
}
