package subcommand_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/subedit/subedit/internal/cli"
	"github.com/subedit/subedit/internal/config"
	"github.com/subedit/subedit/internal/filerange"
	"github.com/subedit/subedit/internal/logging"
	"github.com/subedit/subedit/internal/srt"
	"github.com/subedit/subedit/internal/subcommand"
)

const sample = `1
00:00:01,000 --> 00:00:02,000
hello

2
00:00:10,000 --> 00:00:12,000
out there
world

`

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func runSubedit(t *testing.T, cfg config.Config, tokens ...string) (*bytes.Buffer, error) {
	t.Helper()

	var out bytes.Buffer

	log := logging.NewWithOptions(io.Discard, logging.Options{NoColor: true})

	p := cli.New("subedit", "Just enough subtitle editing",
		cli.WithOutput(&out), cli.WithLogger(log))
	for _, cmd := range subcommand.Commands(cfg) {
		p.AddCommand(cmd)
	}

	args, err := p.Parse(tokens)
	if err != nil {
		return &out, err
	}

	return &out, p.Run(args)
}

func decodeFile(t *testing.T, path string) *srt.File {
	t.Helper()

	f, err := srt.NewDecoder(filerange.Whole(path), nil).Decode()
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}

	return f
}

func TestDelayShiftsEverySubtitle(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{}, "delay", path, "500", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines).To(HaveLen(2))
	g.Expect(f.Lines[0].Duration.Begin.Millis).To(Equal(1500))
	g.Expect(f.Lines[0].Duration.End.Millis).To(Equal(2500))
	g.Expect(f.Lines[1].Duration.Begin.Millis).To(Equal(10500))
}

func TestDelayUnitSeconds(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{}, "delay", path, "2", "-unit:s", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.Begin.Millis).To(Equal(3000))
}

func TestDelayUnitDefaultFromPreferences(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{Unit: "s"}, "delay", path, "1", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.Begin.Millis).To(Equal(2000))
}

func TestDelayExclusiveKeepsOnlyTheRange(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "out.srt")

	_, err := runSubedit(t, config.Config{},
		"delay", path+":#2-#2", "-use-ranges", "100", "-exclusive", "-o", out)
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, out)
	g.Expect(f.Lines).To(HaveLen(1))
	g.Expect(f.Lines[0].Index).To(Equal(1))
	g.Expect(f.Lines[0].Duration.Begin.Millis).To(Equal(10100))
	g.Expect(f.Lines[0].Content).To(Equal([]string{"out there", "world"}))

	// the original is untouched
	g.Expect(decodeFile(t, path).Lines[0].Duration.Begin.Millis).To(Equal(1000))
}

func TestDelayTimeRangeOnlyShiftsMembers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{},
		"delay", path+":00:00:05,000-end", "-use-ranges", "250", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.Begin.Millis).To(Equal(1000))
	g.Expect(f.Lines[1].Duration.Begin.Millis).To(Equal(10250))
}

func TestDelayRequiresAnOutputChoice(t *testing.T) {
	t.Parallel()

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{}, "delay", path, "100")
	if !errors.Is(err, cli.ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
}

func TestDelayRejectsNonSrtInput(t *testing.T) {
	t.Parallel()

	_, err := runSubedit(t, config.Config{}, "delay", "movie.txt", "100", "-overwrite")
	if !errors.Is(err, cli.ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
}

func TestTrimRemovesLineRange(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "out.srt")

	_, err := runSubedit(t, config.Config{}, "trim", path, "-range:#1-#1", "-o", out)
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, out)
	g.Expect(f.Lines).To(HaveLen(1))
	g.Expect(f.Lines[0].Index).To(Equal(1))
	g.Expect(f.Lines[0].Content).To(Equal([]string{"out there", "world"}))
}

func TestTrimEmbeddedRange(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{},
		"trim", path+":00:00:05,000-end", "-use-ranges", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines).To(HaveLen(1))
	g.Expect(f.Lines[0].Content).To(Equal([]string{"hello"}))
}

func TestTrimRejectsTwoRangeSources(t *testing.T) {
	t.Parallel()

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{},
		"trim", path+":#1-#1", "-use-ranges", "-range:#2-#2", "-overwrite")
	if !errors.Is(err, cli.ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
}

func TestTrimRequiresSomeRange(t *testing.T) {
	t.Parallel()

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{}, "trim", path, "-overwrite")
	if !errors.Is(err, cli.ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
}

func TestExtendCapsAtTheGap(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	// 20s of requested extension collides with the second subtitle; the
	// first ends 100ms before it instead
	_, err := runSubedit(t, config.Config{}, "extend", path, "20000", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.End.Millis).To(Equal(9900))
	g.Expect(f.Lines[1].Duration.End.Millis).To(Equal(32000))
}

func TestExtendCustomGap(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	_, err := runSubedit(t, config.Config{}, "extend", path, "20000", "500", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.End.Millis).To(Equal(9500))
}

func TestExtendNeverShortens(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	// a huge gap would pull the end backward; the duration stays put
	_, err := runSubedit(t, config.Config{}, "extend", path, "1", "9000", "-overwrite")
	g.Expect(err).NotTo(HaveOccurred())

	f := decodeFile(t, path)
	g.Expect(f.Lines[0].Duration.End.Millis).To(Equal(2000))
}

func TestDisplayReportsDiagnostics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	out, err := runSubedit(t, config.Config{}, "display", path)
	g.Expect(err).NotTo(HaveOccurred())

	report := out.String()
	g.Expect(report).To(ContainSubstring(path))
	g.Expect(report).To(ContainSubstring("encoding: utf-8"))
	g.Expect(report).To(ContainSubstring("subtitles: 2"))
	g.Expect(report).NotTo(ContainSubstring("hello"))
}

func TestDisplayLongShowsContent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := writeSample(t)

	out, err := runSubedit(t, config.Config{}, "display", path, "-long")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("hello"))
	g.Expect(out.String()).To(ContainSubstring("00:00:01,000 --> 00:00:02,000"))
}

func TestDisplayGlobCoversMultipleFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	for _, name := range []string{"a.srt", "b.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sample), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runSubedit(t, config.Config{}, "display", filepath.Join(dir, "*.srt"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("a.srt"))
	g.Expect(out.String()).To(ContainSubstring("b.srt"))
}

func TestDisplayReportsIndexMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mangled := `1
00:00:01,000 --> 00:00:02,000
hello

5
00:00:10,000 --> 00:00:12,000
world

`

	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte(mangled), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runSubedit(t, config.Config{}, "display", path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("index 5 out of place, position says 2"))
}

func TestRangeHintWithoutUseRanges(t *testing.T) {
	t.Parallel()

	path := writeSample(t)

	// the range suffix makes the filename fail the srt check
	_, err := runSubedit(t, config.Config{}, "delay", path+":#1-#1", "100", "-overwrite")
	if !errors.Is(err, cli.ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
}

func TestNoSubcommandShowsHelp(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out, err := runSubedit(t, config.Config{})
	g.Expect(err).To(MatchError(cli.ErrHelp))
	g.Expect(out.String()).To(ContainSubstring("delay"))
	g.Expect(out.String()).To(ContainSubstring("trim"))
}
