// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/planboard/lib/blobstore"
	"github.com/bureau-foundation/planboard/lib/recordstore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Store.Backend != blobstore.BackendFile {
		t.Errorf("expected backend=file, got %s", cfg.Store.Backend)
	}
	if cfg.Store.Key != recordstore.DefaultKey {
		t.Errorf("expected key=%s, got %s", recordstore.DefaultKey, cfg.Store.Key)
	}
	if cfg.UI.PageSize != 25 {
		t.Errorf("expected page_size=25, got %d", cfg.UI.PageSize)
	}
	if cfg.Policy.AllowUnassigned {
		t.Error("expected allow_unassigned=false")
	}
}

func TestLoad_RequiresPlanboardConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PLANBOARD_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "PLANBOARD_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithPlanboardConfig(t *testing.T) {
	path := writeConfig(t, `
environment: production
paths:
  data: /srv/planboard
store:
  backend: sqlite
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Environment != Production {
		t.Errorf("expected environment=production, got %s", cfg.Environment)
	}
	if cfg.Store.SQLitePath != "/srv/planboard/planboard.db" {
		t.Errorf("expected sqlite_path under paths.data, got %s", cfg.Store.SQLitePath)
	}
	if cfg.Users.File != "/srv/planboard/users.yaml" {
		t.Errorf("expected users file under paths.data, got %s", cfg.Users.File)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "store: [unterminated")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
paths:
  data: /data
store:
  backend: file
ui:
  flash: 800ms
development:
  store:
    backend: memory
production:
  store:
    backend: redis
    redis_addr: cache:6379
    redis_db: 3
  policy:
    allow_unassigned: true
  ui:
    flash: 1s
    no_color: true
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Store.Backend != blobstore.BackendRedis {
		t.Errorf("expected production backend=redis, got %s", cfg.Store.Backend)
	}
	if cfg.Store.RedisAddr != "cache:6379" || cfg.Store.RedisDB != 3 {
		t.Errorf("redis override not applied: %+v", cfg.Store)
	}
	if !cfg.Policy.AllowUnassigned {
		t.Error("policy override not applied")
	}
	if !cfg.UI.NoColor {
		t.Error("ui.no_color override not applied")
	}
	if cfg.UI.PageSize != 25 {
		t.Errorf("page_size should keep its base value, got %d", cfg.UI.PageSize)
	}
	flash, err := cfg.FlashDuration()
	if err != nil || flash != time.Second {
		t.Errorf("FlashDuration() = %v, %v; want 1s", flash, err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("PLANBOARD_TEST_VAR", "from-env")
	vars := map[string]string{"PLANBOARD_DATA": "/data"}

	tests := []struct {
		input string
		want  string
	}{
		{"${PLANBOARD_DATA}/blobs", "/data/blobs"},
		{"${PLANBOARD_TEST_VAR}/x", "from-env/x"},
		{"${PLANBOARD_UNSET_VAR:-fallback}", "fallback"},
		{"/plain/path", "/plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, "invalid environment"},
		{"bad backend", func(c *Config) { c.Store.Backend = "s3" }, "unknown backend"},
		{"redis without addr", func(c *Config) { c.Store.Backend = blobstore.BackendRedis }, "redis_addr"},
		{"bad format", func(c *Config) { c.Store.Format = "xml" }, "store.format"},
		{"bad compression", func(c *Config) { c.Store.Compression = "brotli" }, "store.compression"},
		{"bad key", func(c *Config) { c.Store.Key = "../escape" }, "store.key"},
		{"bad flash", func(c *Config) { c.UI.Flash = "soon" }, "ui.flash"},
		{"zero flash", func(c *Config) { c.UI.Flash = "0s" }, "ui.flash"},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }, "ui.page_size"},
		{"no users file", func(c *Config) { c.Users.File = "" }, "users.file"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			cfg.expandVariables()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestBlobOptions(t *testing.T) {
	cfg := Default()
	cfg.Paths.Data = "/data"
	cfg.expandVariables()
	cfg.Store.Compression = "lz4"

	options := cfg.BlobOptions(nil)
	if options.Backend != blobstore.BackendFile || options.Directory != "/data/blobs" {
		t.Errorf("options = %+v", options)
	}
	if options.Compression != blobstore.CompressionLZ4 {
		t.Errorf("compression = %v, want lz4", options.Compression)
	}
}

func TestEnsurePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.Data = filepath.Join(t.TempDir(), "nested", "data")
	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths() failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.Data); err != nil || !info.IsDir() {
		t.Fatalf("data directory not created: %v", err)
	}
}
