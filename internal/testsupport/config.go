package testsupport

import (
	"path/filepath"
	"testing"

	"mediastore/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.PhotosDir = filepath.Join(base, "photos")
	cfgVal.Paths.VideosDir = filepath.Join(base, "videos")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockDir = filepath.Join(base, "locks")

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

// WithImageMaxBytes overrides the image upload cap on the test config.
func WithImageMaxBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Uploads.ImageMaxBytes = limit
	}
}

// WithVideoMaxBytes overrides the video upload cap on the test config.
func WithVideoMaxBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Uploads.VideoMaxBytes = limit
	}
}

// WithoutChecksum disables migration checksum verification.
func WithoutChecksum() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Migration.Checksum = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.PhotosDir)
}
