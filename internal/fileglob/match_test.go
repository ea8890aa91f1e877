package fileglob_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/subedit/subedit/internal/fileglob"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func touch(t *testing.T, dir, name string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandLiteralPassesThrough(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// literal names need not exist
	got, err := fileglob.Expand("missing.srt", "other.srt")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal([]string{"missing.srt", "other.srt"}))
}

func TestExpandGlob(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	touch(t, dir, "b.srt")
	touch(t, dir, "a.srt")
	touch(t, dir, "notes.txt")
	chdir(t, dir)

	got, err := fileglob.Expand("*.srt")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal([]string{"a.srt", "b.srt"}))
}

func TestExpandDeduplicates(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	touch(t, dir, "a.srt")
	chdir(t, dir)

	got, err := fileglob.Expand("a.srt", "*.srt")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal([]string{"a.srt"}))
}

func TestExpandNoMatches(t *testing.T) {
	g := NewWithT(t)

	chdir(t, t.TempDir())

	_, err := fileglob.Expand("*.srt")
	g.Expect(err).To(HaveOccurred())
}
