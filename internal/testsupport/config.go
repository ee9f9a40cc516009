package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"doorops/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The asset root exists and is empty; the database is a fresh SQLite file.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.AssetRoot = filepath.Join(base, "public", "uploads")
	cfgVal.Database.Driver = config.DriverSQLite
	cfgVal.Database.Path = filepath.Join(base, "data", "storefront.db")
	cfgVal.Database.DSN = ""
	cfgVal.Storefront.BaseURL = "http://127.0.0.1:0"

	if err := os.MkdirAll(cfgVal.Paths.AssetRoot, 0o755); err != nil {
		t.Fatalf("mkdir asset root: %v", err)
	}

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

// WithStorefront points the storefront client at baseURL.
func WithStorefront(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storefront.BaseURL = baseURL
	}
}

// WithoutAssetRoot removes the asset root to simulate an unmounted volume.
func WithoutAssetRoot() ConfigOption {
	return func(b *configBuilder) {
		if err := os.RemoveAll(b.cfg.Paths.AssetRoot); err != nil {
			b.t.Fatalf("remove asset root: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
