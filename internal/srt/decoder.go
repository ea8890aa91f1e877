package srt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/subedit/subedit/internal/filerange"
	"github.com/subedit/subedit/internal/logging"
	"github.com/subedit/subedit/internal/stime"
)

// supported encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// ErrDecode reports a subtitle file that could not be decoded.
var ErrDecode = errors.New("could not decode subtitle file")

type parserState int

const (
	stateBeforeSubline parserState = iota
	stateDurationLine
	stateContents
	stateEndOfSubline
)

// Stats records structural oddities noticed while decoding, for the display
// subcommand's diagnostics.
type Stats struct {
	// ConsecutiveBlankLines lists buffer indexes where a second or later
	// consecutive blank line was seen.
	ConsecutiveBlankLines []int

	// MissingFinalBlank is set when the file ends inside a subtitle; the
	// final subtitle is recovered anyway.
	MissingFinalBlank bool
}

// Decoder reads a subtitle file into a File. The zero encoding is UTF-8 with
// an automatic latin-1 retry when the bytes are not valid UTF-8.
type Decoder struct {
	Range    filerange.FileRange
	Encoding string
	Stats    Stats

	log *logging.Logger
	buf []string
}

// NewDecoder creates a Decoder for the given range. A nil logger discards
// decoder diagnostics.
func NewDecoder(fr filerange.FileRange, log *logging.Logger) *Decoder {
	if log == nil {
		log = logging.Discard()
	}

	return &Decoder{Range: fr, Encoding: EncodingUTF8, log: log}
}

// SetEncoding overrides the file encoding used for the next read.
func (d *Decoder) SetEncoding(encoding string) {
	d.Encoding = encoding
	d.log.Verbosef("encoding set to %s", encoding)
}

// readFile loads the file into the line buffer, decoding per d.Encoding.
func (d *Decoder) readFile() error {
	d.buf = d.buf[:0]

	raw, err := os.ReadFile(d.Range.Filename)
	if err != nil {
		d.log.Errorf("%s cannot be opened", d.Range.Filename)

		return fmt.Errorf("%w: %s", ErrDecode, d.Range.Filename)
	}

	text := string(raw)
	if d.Encoding == EncodingUTF8 && !utf8.Valid(raw) {
		d.log.Verbosef("invalid unicode sequence detected")
		d.SetEncoding(EncodingLatin1)

		text = decodeLatin1(raw)
	}

	text = stripByteOrderMark(text, d.log)

	d.buf = splitLines(text)
	d.log.Verbosef("%s read with %s encoding", d.Range.Filename, d.Encoding)

	return nil
}

// Decode runs the state machine over the buffered lines.
func (d *Decoder) Decode() (*File, error) {
	if len(d.buf) == 0 {
		if err := d.readFile(); err != nil {
			return nil, err
		}
	}

	var (
		lines    []Line
		index    int
		duration stime.Range
		content  []string
	)

	state := stateBeforeSubline
	blankRun := 0

	for lineIndex, line := range d.buf {
		if len(line) == 0 {
			blankRun++
		} else {
			blankRun = 0
		}

		if blankRun > 1 {
			d.Stats.ConsecutiveBlankLines = append(d.Stats.ConsecutiveBlankLines, lineIndex)
		}

		if state == stateBeforeSubline {
			parsed, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				index = parsed
				state = stateDurationLine

				continue
			}
		}

		if state == stateDurationLine {
			parsed, err := stime.ParseDuration(line)
			if err != nil {
				d.log.Errorf("bad duration line in %s: %v", d.Range.Filename, err)

				return nil, fmt.Errorf("%w: %s", ErrDecode, d.Range.Filename)
			}

			duration = parsed
			state = stateContents

			continue
		}

		if state == stateContents {
			if len(line) != 0 {
				content = append(content, line)

				continue
			}

			state = stateEndOfSubline
		}

		if state == stateEndOfSubline {
			lines = append(lines, Line{Index: index, Duration: duration, Content: content})
			content = nil
			state = stateBeforeSubline
		}
	}

	switch state {
	case stateContents:
		// missing blank line at EOF; recover the final subtitle
		lines = append(lines, Line{Index: index, Duration: duration, Content: content})
		d.Stats.MissingFinalBlank = true
		d.log.Warnf("'%s' is missing a blank line at the end of the file", d.Range.Filename)
	case stateBeforeSubline:
	default:
		return nil, fmt.Errorf("%w: %s", ErrDecode, d.Range.Filename)
	}

	d.log.Verbosef("decoded %s", d.Range.Filename)
	d.buf = nil

	return &File{Range: d.Range, Lines: lines, Encoding: d.Encoding}, nil
}

// decodeLatin1 reinterprets raw bytes as latin-1, where every byte is its own
// code point.
func decodeLatin1(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}

	return string(runes)
}

func stripByteOrderMark(text string, log *logging.Logger) string {
	if strings.HasPrefix(text, "\uFEFF") {
		log.Verbosef("byte order mark detected in file")

		return strings.TrimPrefix(text, "\uFEFF")
	}

	return text
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	// trailing newline produces one empty trailing element; keep it, the
	// state machine treats it as the final separator
	return lines
}
