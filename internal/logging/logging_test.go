package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/subedit/subedit/internal/logging"
)

func TestLevelsFilterOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    logging.Level
		wantMsgs []string
		dropMsgs []string
	}{
		{
			name:     "info drops verbose and debug",
			level:    logging.LevelInfo,
			wantMsgs: []string{"info msg", "warn msg", "error msg"},
			dropMsgs: []string{"verbose msg", "debug msg"},
		},
		{
			name:     "debug passes everything",
			level:    logging.LevelDebug,
			wantMsgs: []string{"debug msg", "verbose msg", "info msg", "warn msg", "error msg"},
		},
		{
			name:     "quiet drops everything",
			level:    logging.LevelQuiet,
			dropMsgs: []string{"debug msg", "verbose msg", "info msg", "warn msg", "error msg"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			l := logging.NewWithOptions(&buf, logging.Options{Name: "test", NoColor: true})
			l.SetLevel(tc.level)

			l.Debugf("debug msg")
			l.Verbosef("verbose msg")
			l.Infof("info msg")
			l.Warnf("warn msg")
			l.Errorf("error msg")

			out := buf.String()
			for _, want := range tc.wantMsgs {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			for _, drop := range tc.dropMsgs {
				if strings.Contains(out, drop) {
					t.Errorf("output should not contain %q:\n%s", drop, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  logging.Level
	}{
		{"debug", logging.LevelDebug},
		{"verbose", logging.LevelVerbose},
		{"quiet", logging.LevelQuiet},
		{"", logging.LevelInfo},
		{"bogus", logging.LevelInfo},
	}

	for _, tc := range tests {
		if got := logging.ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestDiscardEmitsNothing(t *testing.T) {
	t.Parallel()

	l := logging.Discard()
	l.Errorf("should vanish")
}
