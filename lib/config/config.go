// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/planboard/lib/blobstore"
	"github.com/bureau-foundation/planboard/lib/codec"
	"github.com/bureau-foundation/planboard/lib/recordstore"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "PLANBOARD_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for a local workstation.
	Development Environment = "development"
	// Production is for a shared deployment.
	Production Environment = "production"
)

// Config is the planboard configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	Paths  PathsConfig  `yaml:"paths"`
	Store  StoreConfig  `yaml:"store"`
	Users  UsersConfig  `yaml:"users"`
	Seed   SeedConfig   `yaml:"seed"`
	Policy PolicyConfig `yaml:"policy"`
	UI     UIConfig     `yaml:"ui"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides holds the sections an environment may override. Empty
// strings and nil pointers leave the base value alone.
type Overrides struct {
	Store  *StoreConfig     `yaml:"store,omitempty"`
	Policy *PolicyOverrides `yaml:"policy,omitempty"`
	UI     *UIOverrides     `yaml:"ui,omitempty"`
}

// PolicyOverrides overrides [PolicyConfig].
type PolicyOverrides struct {
	AllowUnassigned *bool `yaml:"allow_unassigned,omitempty"`
}

// UIOverrides overrides [UIConfig].
type UIOverrides struct {
	Flash    string `yaml:"flash,omitempty"`
	PageSize int    `yaml:"page_size,omitempty"`
	NoColor  *bool  `yaml:"no_color,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Data is the base directory for persisted state. Other paths may
	// refer to it as ${PLANBOARD_DATA}.
	Data string `yaml:"data"`
}

// StoreConfig selects where the record list is persisted.
type StoreConfig struct {
	// Backend is file, sqlite, redis, or memory.
	// Default: file
	Backend string `yaml:"backend"`

	// Key is the logical key of the record list.
	// Default: pm_projectsData
	Key string `yaml:"key"`

	// Format is json or cbor.
	// Default: json
	Format string `yaml:"format"`

	// Directory holds the blobs of the file backend.
	// Default: ${PLANBOARD_DATA}/blobs
	Directory string `yaml:"directory"`

	// Compression is none, lz4, or zstd (file backend).
	// Default: zstd
	Compression string `yaml:"compression"`

	// SQLitePath is the database of the sqlite backend.
	// Default: ${PLANBOARD_DATA}/planboard.db
	SQLitePath string `yaml:"sqlite_path"`

	// RedisAddr, RedisDB, and RedisPrefix configure the redis backend.
	RedisAddr   string `yaml:"redis_addr"`
	RedisDB     int    `yaml:"redis_db"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// UsersConfig locates the user directory.
type UsersConfig struct {
	// File is the YAML user directory.
	// Default: ${PLANBOARD_DATA}/users.yaml
	File string `yaml:"file"`
}

// SeedConfig overrides the built-in seed dataset.
type SeedConfig struct {
	// File is a JSONC record list used when nothing is persisted yet.
	// Empty uses the built-in dataset.
	File string `yaml:"file"`
}

// PolicyConfig tunes the edit permission policy.
type PolicyConfig struct {
	// AllowUnassigned lets standard actors edit records that have no
	// assignee.
	// Default: false
	AllowUnassigned bool `yaml:"allow_unassigned"`
}

// UIConfig configures the terminal grid.
type UIConfig struct {
	// Flash is how long a committed cell flashes, as a Go duration.
	// Default: 800ms
	Flash string `yaml:"flash"`

	// PageSize is the number of rows shown at once.
	// Default: 25
	PageSize int `yaml:"page_size"`

	// NoColor renders without colour.
	NoColor bool `yaml:"no_color"`
}

// Default returns the configuration every file is merged onto. It
// fills zero-values; the config file itself is still required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Data: filepath.Join(homeDir, ".local", "share", "planboard"),
		},
		Store: StoreConfig{
			Backend:     blobstore.BackendFile,
			Key:         recordstore.DefaultKey,
			Format:      string(codec.FormatJSON),
			Directory:   "${PLANBOARD_DATA}/blobs",
			Compression: blobstore.CompressionZstd.String(),
			SQLitePath:  "${PLANBOARD_DATA}/planboard.db",
			RedisPrefix: "planboard:",
		},
		Users: UsersConfig{
			File: "${PLANBOARD_DATA}/users.yaml",
		},
		UI: UIConfig{
			Flash:    "800ms",
			PageSize: 25,
		},
	}
}

// Load loads the file named by PLANBOARD_CONFIG. There is no fallback:
// an unset variable is an error.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your planboard.yaml config file, or use --config", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, applies the section for the
// configured environment, and expands path variables. The result is
// not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if store := overrides.Store; store != nil {
		setString(&c.Store.Backend, store.Backend)
		setString(&c.Store.Key, store.Key)
		setString(&c.Store.Format, store.Format)
		setString(&c.Store.Directory, store.Directory)
		setString(&c.Store.Compression, store.Compression)
		setString(&c.Store.SQLitePath, store.SQLitePath)
		setString(&c.Store.RedisAddr, store.RedisAddr)
		setString(&c.Store.RedisPrefix, store.RedisPrefix)
		if store.RedisDB != 0 {
			c.Store.RedisDB = store.RedisDB
		}
	}

	if policy := overrides.Policy; policy != nil && policy.AllowUnassigned != nil {
		c.Policy.AllowUnassigned = *policy.AllowUnassigned
	}

	if ui := overrides.UI; ui != nil {
		setString(&c.UI.Flash, ui.Flash)
		if ui.PageSize != 0 {
			c.UI.PageSize = ui.PageSize
		}
		if ui.NoColor != nil {
			c.UI.NoColor = *ui.NoColor
		}
	}
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVariables expands ${HOME}, ${PLANBOARD_DATA}, and
// ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.Data = expandVars(c.Paths.Data, vars)
	vars["PLANBOARD_DATA"] = c.Paths.Data

	c.Store.Directory = expandVars(c.Store.Directory, vars)
	c.Store.SQLitePath = expandVars(c.Store.SQLitePath, vars)
	c.Users.File = expandVars(c.Users.File, vars)
	c.Seed.File = expandVars(c.Seed.File, vars)
}

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Paths.Data == "" {
		errs = append(errs, errors.New("paths.data is required"))
	}

	switch c.Store.Backend {
	case blobstore.BackendFile:
		if c.Store.Directory == "" {
			errs = append(errs, errors.New("store.directory is required for the file backend"))
		}
	case blobstore.BackendSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite backend"))
		}
	case blobstore.BackendRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr is required for the redis backend"))
		}
	case blobstore.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if err := blobstore.ValidateKey(c.Store.Key); err != nil {
		errs = append(errs, fmt.Errorf("store.key: %w", err))
	}
	if _, err := codec.ParseFormat(c.Store.Format); err != nil {
		errs = append(errs, fmt.Errorf("store.format: %w", err))
	}
	if _, err := blobstore.ParseCompression(c.Store.Compression); err != nil {
		errs = append(errs, fmt.Errorf("store.compression: %w", err))
	}

	if c.Users.File == "" {
		errs = append(errs, errors.New("users.file is required"))
	}
	if _, err := c.FlashDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.UI.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize))
	}

	return errors.Join(errs...)
}

// FlashDuration parses ui.flash.
func (c *Config) FlashDuration() (time.Duration, error) {
	duration, err := time.ParseDuration(c.UI.Flash)
	if err != nil {
		return 0, fmt.Errorf("ui.flash: %w", err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("ui.flash must be positive, got %s", c.UI.Flash)
	}
	return duration, nil
}

// BlobOptions translates the store section into blob store options.
// Call Validate first; an invalid compression falls back to none.
func (c *Config) BlobOptions(logger *slog.Logger) blobstore.Options {
	compression, _ := blobstore.ParseCompression(c.Store.Compression)
	return blobstore.Options{
		Backend:     c.Store.Backend,
		Directory:   c.Store.Directory,
		Compression: compression,
		SQLitePath:  c.Store.SQLitePath,
		Redis: blobstore.RedisOptions{
			Addr:   c.Store.RedisAddr,
			DB:     c.Store.RedisDB,
			Prefix: c.Store.RedisPrefix,
		},
		Logger: logger,
	}
}

// EnsurePaths creates the data directory.
func (c *Config) EnsurePaths() error {
	if err := os.MkdirAll(c.Paths.Data, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.Data, err)
	}
	return nil
}
