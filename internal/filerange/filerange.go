// Package filerange parses the command-line notation for a range of subtitle
// lines inside a file, e.g. "movie.srt:#10-#20" (line numbers) or
// "movie.srt:00:01:00,000-00:02:00,000" (timestamps). A bare filename selects
// the whole file.
package filerange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/subedit/subedit/internal/stime"
)

// end-of-file sentinels.
const (
	LineStart = 0
	LineEnd   = -1
)

// ErrMalformedRange reports a range that is neither a line range nor a
// time range.
var ErrMalformedRange = errors.New(
	"malformed range, expected hh:mm:ss,mmm-hh:mm:ss,mmm or #n-#n")

// LineRange selects subtitle lines by index. End of LineEnd means
// end-of-file.
type LineRange struct {
	Start int
	End   int
}

// FileRange is a filename plus an optional selection of its lines, by either
// line index or timestamp. At most one of TimeRange and LineRange is set;
// when both are nil the range covers the whole file.
type FileRange struct {
	Filename  string
	TimeRange *stime.Range
	LineRange *LineRange
}

// Whole returns a FileRange covering the entire file.
func Whole(filename string) FileRange {
	return FileRange{Filename: filename}
}

// Parse converts a command-line value to a FileRange. The filename is
// separated from the range by the first ':'; everything after it is parsed
// by ParseRange.
func Parse(value string) (FileRange, error) {
	filename, rangeStr, ok := strings.Cut(value, ":")
	if !ok {
		return Whole(value), nil
	}

	fr, err := ParseRange(rangeStr)
	if err != nil {
		return FileRange{}, err
	}

	fr.Filename = filename

	return fr, nil
}

// ParseRange converts a bare range (no filename) to a FileRange with an empty
// Filename. Line ranges are tried first, then time ranges. The words "start"
// and "end" stand for the ends of the file in either form.
func ParseRange(rangeStr string) (FileRange, error) {
	start, end, ok := splitRange(rangeStr)
	if !ok {
		return FileRange{}, fmt.Errorf("%w: %q", ErrMalformedRange, rangeStr)
	}

	if lr, ok := toLineRange(start, end); ok {
		return FileRange{LineRange: &lr}, nil
	}

	if tr, ok := toTimeRange(start, end); ok {
		return FileRange{TimeRange: &tr}, nil
	}

	return FileRange{}, fmt.Errorf("%w: %q", ErrMalformedRange, rangeStr)
}

// splitRange splits at the separating '-'. Timestamps contain no '-', so a
// well-formed range splits into exactly two parts.
func splitRange(rangeStr string) (start, end string, ok bool) {
	parts := strings.Split(rangeStr, "-")
	if len(parts) != 2 {
		return "", "", false
	}

	return parts[0], parts[1], true
}

func toLineRange(startStr, endStr string) (LineRange, bool) {
	start, ok := toLineIndex(startStr, LineStart)
	if !ok {
		return LineRange{}, false
	}

	end, ok := toLineIndex(endStr, LineEnd)
	if !ok {
		return LineRange{}, false
	}

	return LineRange{Start: start, End: end}, true
}

func toLineIndex(s string, word int) (int, bool) {
	s = strings.TrimPrefix(s, "#")
	switch strings.ToLower(s) {
	case "start", "end":
		return word, true
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

func toTimeRange(startStr, endStr string) (stime.Range, bool) {
	start, ok := toTimestamp(startStr, stime.Time{Millis: 0})
	if !ok {
		return stime.Range{}, false
	}

	end, ok := toTimestamp(endStr, stime.Time{Millis: -1})
	if !ok {
		return stime.Range{}, false
	}

	return stime.Range{Begin: start, End: end}, true
}

func toTimestamp(s string, word stime.Time) (stime.Time, bool) {
	switch strings.ToLower(s) {
	case "start", "end":
		return word, true
	}

	t, err := stime.Parse(s)
	if err != nil {
		return stime.Time{}, false
	}

	return t, true
}
