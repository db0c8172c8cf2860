package testsupport

import (
	"path/filepath"
	"testing"

	"renamer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig returns a default config whose journal lives in a per-test temp
// directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")
	cfgVal.Output.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithoutJournal disables the rename journal.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithFFprobeScript installs script as the ffprobe binary used by keywords.
func WithFFprobeScript(script string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Keywords.FFprobeBinary = WriteExecutable(b.t, filepath.Join(b.baseDir, "bin", "ffprobe"), script)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Journal.Path))
}
