// Package srt decodes and encodes SubRip subtitle files with a line-oriented
// state machine, and carries the in-memory representation the subcommands
// operate on.
package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/subedit/subedit/internal/filerange"
	"github.com/subedit/subedit/internal/stime"
)

// Line is one subtitle: its reported index, display duration, and content
// lines.
type Line struct {
	Index    int
	Duration stime.Range
	Content  []string
}

// File is a decoded subtitle file.
type File struct {
	Range    filerange.FileRange
	Lines    []Line
	Encoding string
}

// Sort orders the subtitles by ascending start time. The sort is stable so
// identically-timed lines keep their decoded order.
func (f *File) Sort() {
	sort.SliceStable(f.Lines, func(i, j int) bool {
		return f.Lines[i].Duration.Begin.Before(f.Lines[j].Duration.Begin)
	})
}

// Encode writes the file in srt form: index line, duration line, content
// lines, blank separator.
func (f *File) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, line := range f.Lines {
		fmt.Fprintf(bw, "%d\n", line.Index)
		fmt.Fprintf(bw, "%s\n", line.Duration)

		for _, content := range line.Content {
			fmt.Fprintf(bw, "%s\n", content)
		}

		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// WriteFile encodes the subtitles to the named file.
func (f *File) WriteFile(filename string) error {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	err = f.Encode(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	return nil
}

// Save encodes the subtitles back to the file they were decoded from.
func (f *File) Save() error {
	return f.WriteFile(f.Range.Filename)
}

// IndexMismatch pairs a subtitle's reported index with its actual 1-based
// position in the file.
type IndexMismatch struct {
	Reported int
	Actual   int
}

// CheckIndexMismatch discovers subtitles whose reported index disagrees with
// their position.
func CheckIndexMismatch(f *File) []IndexMismatch {
	var mismatches []IndexMismatch

	for i, line := range f.Lines {
		if line.Index != i+1 {
			mismatches = append(mismatches, IndexMismatch{Reported: line.Index, Actual: i + 1})
		}
	}

	return mismatches
}
