// Package stime provides millisecond-backed subtitle timestamps and ranges.
package stime

import (
	"errors"
	"fmt"
	"strings"
)

// Milliseconds per unit of subtitle time.
const (
	MsPerSecond = 1000
	MsPerMinute = 60 * MsPerSecond
	MsPerHour   = 60 * MsPerMinute
)

// DurationSeparator joins the two endpoints of a subtitle duration line.
const DurationSeparator = " --> "

// unexported variables.
var (
	errMalformedTimestamp = errors.New("malformed timestamp, expected hh:mm:ss,mmm")
	errMalformedDuration  = errors.New("malformed duration line")
)

// Time is an instant in a subtitle file, stored as milliseconds from zero.
// A negative value is the end-of-file sentinel used by open ranges.
type Time struct {
	Millis int
}

// FromParts builds a Time from separated components.
func FromParts(hour, minute, second, millisecond int) Time {
	return Time{Millis: hour*MsPerHour + minute*MsPerMinute + second*MsPerSecond + millisecond}
}

// Parse reads a timestamp in the form "hh:mm:ss,mmm".
func Parse(s string) (Time, error) {
	var hour, minute, second, millisecond int

	n, err := fmt.Sscanf(s, "%d:%d:%d,%d", &hour, &minute, &second, &millisecond)
	if err != nil || n != 4 {
		return Time{}, fmt.Errorf("%w: %q", errMalformedTimestamp, s)
	}

	return FromParts(hour, minute, second, millisecond), nil
}

// Parts splits the time back into separated components.
func (t Time) Parts() (hour, minute, second, millisecond int) {
	v := t.Millis
	hour, v = v/MsPerHour, v%MsPerHour
	minute, v = v/MsPerMinute, v%MsPerMinute
	second, millisecond = v/MsPerSecond, v%MsPerSecond

	return hour, minute, second, millisecond
}

// Add returns the time shifted by the given number of milliseconds.
func (t Time) Add(milliseconds int) Time {
	return Time{Millis: t.Millis + milliseconds}
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return t.Millis < other.Millis
}

// String renders the timestamp in "hh:mm:ss,mmm" form.
func (t Time) String() string {
	hour, minute, second, millisecond := t.Parts()

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hour, minute, second, millisecond)
}

// Range is a pair of subtitle times. An End of Time{-1} means end-of-file.
type Range struct {
	Begin Time
	End   Time
}

// ParseDuration reads an srt duration line, e.g.
// "00:01:02,000 --> 00:01:05,500".
func ParseDuration(line string) (Range, error) {
	begin, end, ok := strings.Cut(line, DurationSeparator)
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", errMalformedDuration, line)
	}

	beginTime, err := Parse(strings.TrimSpace(begin))
	if err != nil {
		return Range{}, err
	}

	endTime, err := Parse(strings.TrimSpace(end))
	if err != nil {
		return Range{}, err
	}

	return Range{Begin: beginTime, End: endTime}, nil
}

// AddDelay shifts both endpoints by the given number of milliseconds.
func (r *Range) AddDelay(milliseconds int) {
	r.Begin = r.Begin.Add(milliseconds)
	r.End = r.End.Add(milliseconds)
}

// Contains reports whether the time falls within [Begin, End).
func (r Range) Contains(t Time) bool {
	return r.Begin.Millis <= t.Millis && t.Millis < r.End.Millis
}

// String renders the range as an srt duration line.
func (r Range) String() string {
	return r.Begin.String() + DurationSeparator + r.End.String()
}
