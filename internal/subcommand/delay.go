package subcommand

import (
	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/config"
	"github.com/subedit/subedit/internal/srt"
	"github.com/subedit/subedit/internal/stime"
)

// delayUnits are the accepted spellings for the delay unit.
var delayUnits = []string{"millisecond", "second", "minute", "ms", "s"}

// Delay builds the delay subcommand. The preferences file can change the
// default unit.
func Delay(cfg config.Config) *cli.Command {
	unit := cfg.Unit
	if unit == "" {
		unit = "ms"
	}

	return &cli.Command{
		Name: "delay",
		Help: "Delay a range of subtitles by a specified amount",
		Params: []cli.Schema{
			singleFileInput(),
			outputGroup(),
			cli.Param{
				Name:       "-unit",
				Shorthand:  "-u",
				Help:       "Unit of the delay amount",
				Choices:    delayUnits,
				Default:    unit,
				HasDefault: true,
			},
			cli.Param{
				Name:      "-exclusive",
				Shorthand: "-x",
				Help:      "Write only the delayed range to the output",
				Kind:      cli.KindEnable,
			},
			cli.Param{
				Name:        "delay",
				DisplayName: "delay_by",
				Help:        "Amount of units to delay by; negative amounts rewind",
				Convert:     cli.ToInt,
			},
		},
		Run: runDelay,
	}
}

func unitMillis(unit string) int {
	switch unit {
	case "second", "s":
		return stime.MsPerSecond
	case "minute":
		return stime.MsPerMinute
	default:
		return 1
	}
}

func runDelay(ctx *cli.Context) error {
	fr, err := InputFile(ctx)
	if err != nil {
		return err
	}

	f, err := decode(ctx, fr)
	if err != nil {
		return err
	}

	amount, err := ctx.Args.Int("delay")
	if err != nil {
		return err
	}

	unit, err := ctx.Args.String("unit")
	if err != nil {
		return err
	}

	exclusive, err := ctx.Args.Bool("exclusive")
	if err != nil {
		return err
	}

	millis := amount * unitMillis(unit)
	selected := selector(f.Range)

	var (
		kept    []srt.Line
		delayed int
	)

	for i, line := range f.Lines {
		in := selected(i+1, line)
		if in {
			line.Duration.AddDelay(millis)
			delayed++
		}

		if exclusive && !in {
			continue
		}

		kept = append(kept, line)
	}

	f.Lines = kept
	if exclusive {
		reindex(f)
	}

	// a negative delay can reorder overlapping ranges
	f.Sort()

	ctx.Log.Verbosef("delayed %d subtitles by %d ms", delayed, millis)

	return saveFile(ctx, f)
}
