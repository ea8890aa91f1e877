// Package fileglob expands command-line file patterns for subcommands that
// accept multiple input files.
package fileglob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var errNoMatches = errors.New("no files match pattern")

// Expand resolves each pattern with doublestar globs (including ** and {a,b}).
// A pattern with no glob metacharacters passes through unchanged, so literal
// filenames never need to exist at expansion time. Results are deduplicated;
// glob matches are sorted while literal patterns keep their position.
func Expand(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)

	var expanded []string

	appendPath := func(path string) {
		if !seen[path] {
			seen[path] = true
			expanded = append(expanded, path)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			appendPath(pattern)

			continue
		}

		matches, err := glob(filepath.Clean(pattern))
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", errNoMatches, pattern)
		}

		sort.Strings(matches)

		for _, match := range matches {
			appendPath(match)
		}
	}

	return expanded, nil
}

func glob(pattern string) ([]string, error) {
	fsys, base := patternFS(pattern)

	if base != "" {
		pattern = filepath.Clean(strings.TrimPrefix(pattern, base))
	}

	matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	if base != "" {
		for i, match := range matches {
			matches[i] = filepath.Join(base, match)
		}
	}

	return matches, nil
}

func patternFS(pattern string) (fs.FS, string) {
	if filepath.IsAbs(pattern) {
		volume := filepath.VolumeName(pattern)
		base := volume + string(filepath.Separator)

		return os.DirFS(base), base
	}

	return os.DirFS("."), ""
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
