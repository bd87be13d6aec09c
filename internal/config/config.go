package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds filesystem locations used by the CIA build pipeline.
// All relative defaults are resolved against the directory containing
// the cia-forge executable, so a packaged release works out of the box.
type Config struct {
	// ElfPath is the EasyRPG Player ELF embedded into every package.
	ElfPath string `yaml:"elf_path"`
	// RSFTemplate is the ROM spec template carrying the {{UNIQUE_ID}} token.
	RSFTemplate string `yaml:"rsf_template"`
	// RTPDir contains one subdirectory per runtime package variant.
	RTPDir string `yaml:"rtp_dir"`
	// DefaultsDir contains the stock 3DS assets shipped with the tool,
	// used to warn when a game still carries them. Optional.
	DefaultsDir string `yaml:"defaults_dir"`
	// OutputDir receives the finished .cia files.
	OutputDir string `yaml:"output_dir"`
	// TempDir holds per-build artifacts and is emptied after every build.
	TempDir string `yaml:"temp_dir"`
	// SkipRTP is set at runtime by the --no-rtp flag. It is not persisted to YAML.
	SkipRTP bool `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default filename for pipeline settings.
	DefaultConfigFilename = "cia-forge-settings.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// DefaultDirPermissions is the default permission for created directories.
	DefaultDirPermissions os.FileMode = 0o755
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errSameTempAndOutput is returned when temp and output dirs collide,
	// which would delete finished packages during cleanup.
	errSameTempAndOutput = errors.New("temp and output directories must differ")
)

// Default returns a configuration with every path resolved
// relative to the executable's directory.
func Default() *Config {
	base := baseDir()

	return &Config{
		ElfPath:     filepath.Join(base, "assets", "easyrpg-player.elf"),
		RSFTemplate: filepath.Join(base, "assets", "spec.rsf"),
		RTPDir:      filepath.Join(base, "assets", "rtp"),
		DefaultsDir: filepath.Join(base, "assets", "defaults"),
		OutputDir:   filepath.Join(base, "out"),
		TempDir:     filepath.Join(base, "tmp"),
	}
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file at the default path is not an error: defaults are returned,
// so the tool runs without any settings file at all.
func Load(path string) (*Config, error) {
	usingDefaultPath := path == ""
	if usingDefaultPath {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills empty fields from defaults and rejects inconsistent values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if cfg.ElfPath == "" {
		cfg.ElfPath = defaults.ElfPath
	}

	if cfg.RSFTemplate == "" {
		cfg.RSFTemplate = defaults.RSFTemplate
	}

	if cfg.RTPDir == "" {
		cfg.RTPDir = defaults.RTPDir
	}

	if cfg.DefaultsDir == "" {
		cfg.DefaultsDir = defaults.DefaultsDir
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}

	if cfg.TempDir == "" {
		cfg.TempDir = defaults.TempDir
	}

	if filepath.Clean(cfg.TempDir) == filepath.Clean(cfg.OutputDir) {
		return errSameTempAndOutput
	}

	return nil
}

// baseDir returns the directory containing the running executable,
// falling back to the current directory when it cannot be resolved.
func baseDir() string {
	executable, err := os.Executable()
	if err != nil {
		return "."
	}

	return filepath.Dir(executable)
}
