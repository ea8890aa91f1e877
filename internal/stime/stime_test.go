package stime_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/subedit/subedit/internal/stime"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int
	}{
		{"00:00:00,000", 0},
		{"00:00:01,000", stime.MsPerSecond},
		{"00:01:00,000", stime.MsPerMinute},
		{"01:00:00,000", stime.MsPerHour},
		{"01:02:03,004", stime.MsPerHour + 2*stime.MsPerMinute + 3*stime.MsPerSecond + 4},
	}

	for _, tc := range tests {
		got, err := stime.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
		}

		if got.Millis != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.input, got.Millis, tc.want)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "abc", "00:00:00", "1:2", "00.00.00,000"} {
		if _, err := stime.Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	r, err := stime.ParseDuration("00:00:01,000 --> 00:00:04,500")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Begin.Millis).To(Equal(1000))
	g.Expect(r.End.Millis).To(Equal(4500))
}

func TestRangeAddDelay(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	r := stime.Range{Begin: stime.Time{Millis: 1000}, End: stime.Time{Millis: 2000}}
	r.AddDelay(-500)

	g.Expect(r.Begin.Millis).To(Equal(500))
	g.Expect(r.End.Millis).To(Equal(1500))
}

func TestRangeContains(t *testing.T) {
	t.Parallel()

	r := stime.Range{Begin: stime.Time{Millis: 1000}, End: stime.Time{Millis: 2000}}

	tests := []struct {
		millis int
		want   bool
	}{
		{999, false},
		{1000, true},
		{1999, true},
		{2000, false},
	}

	for _, tc := range tests {
		if got := r.Contains(stime.Time{Millis: tc.millis}); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.millis, got, tc.want)
		}
	}
}
