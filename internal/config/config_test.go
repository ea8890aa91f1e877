package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/subedit/subedit/internal/config"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "unit = \"s\"\ncolor = false\nverbosity = \"verbose\"\n"
	g.Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

	cfg, err := config.LoadFrom(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Unit).To(Equal("s"))
	g.Expect(cfg.Color).NotTo(BeNil())
	g.Expect(*cfg.Color).To(BeFalse())
	g.Expect(cfg.Verbosity).To(Equal("verbose"))
}

func TestLoadFromMissingFileIsNotAnError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg).To(Equal(config.Config{}))
}

func TestLoadFromMalformedFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	g.Expect(os.WriteFile(path, []byte("unit = ["), 0o644)).To(Succeed())

	_, err := config.LoadFrom(path)
	g.Expect(err).To(HaveOccurred())
}

func TestPathHonorsXDGConfigHome(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	g.Expect(config.Path()).To(Equal(filepath.Join("/tmp/xdg", "subedit", "config.toml")))
}
