// Package config loads manifest generation settings from defaults and an
// optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taigrr/modelindex/internal/pathfilter"
	"github.com/taigrr/modelindex/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is the config file looked up in the working directory.
	DefaultFileName = ".modelindex.yaml"

	DefaultInputDir   = "./models"
	DefaultSuffix     = ".glb"
	DefaultOutputFile = "models.json"
)

var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates the config file or the merged settings are invalid.
	ErrInvalidConfig = errors.New("invalid config")
)

// Defaults returns the settings used when nothing else is configured.
func Defaults() types.Config {
	return types.Config{
		InputDir:   DefaultInputDir,
		Suffix:     DefaultSuffix,
		OutputFile: DefaultOutputFile,
		Sort:       true,
		Format:     types.FormatNames,
	}
}

// Discover returns the path of the default config file in dir, or "" when
// there is none.
func Discover(dir string) string {
	path := filepath.Join(dir, DefaultFileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

// Load reads the config file at path on top of Defaults.
// An empty path returns Defaults unchanged. Relative inputDir and outputFile
// values, defaults included, are resolved against the config file's
// directory, so the same file works from any working directory.
func Load(path string) (types.Config, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return types.Config{}, fmt.Errorf("failed to read config file: %s - %w", path, err)
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return types.Config{}, fmt.Errorf("%s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return types.Config{}, fmt.Errorf("failed to resolve config directory: %s - %w", path, err)
	}
	cfg.InputDir = relativeTo(base, cfg.InputDir)
	cfg.OutputFile = relativeTo(base, cfg.OutputFile)

	return cfg, nil
}

func relativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// LoadFromBytes parses YAML on top of Defaults. Keys absent from data keep
// their default values; unknown keys are rejected.
func LoadFromBytes(data []byte) (types.Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return types.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks merged settings before a run.
func Validate(cfg types.Config) error {
	if cfg.InputDir == "" {
		return fmt.Errorf("%w: inputDir cannot be empty", ErrInvalidConfig)
	}
	if cfg.OutputFile == "" {
		return fmt.Errorf("%w: outputFile cannot be empty", ErrInvalidConfig)
	}
	if !cfg.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q (use %q or %q)",
			ErrInvalidConfig, cfg.Format, types.FormatNames, types.FormatEntries)
	}
	if bad, ok := pathfilter.ValidPatterns(cfg.Exclude); !ok {
		return fmt.Errorf("%w: invalid exclude pattern %q", ErrInvalidConfig, bad)
	}
	return nil
}
