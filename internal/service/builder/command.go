package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/cia-forge/internal/config"
	"github.com/oshokin/cia-forge/internal/logger"
	"github.com/oshokin/cia-forge/internal/repository/rtp"
	"github.com/oshokin/cia-forge/internal/tools"
)

// Options contains inputs for the build entry points.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
	// ElfPath overrides the configured EasyRPG ELF when non-empty.
	ElfPath string
	// RSFTemplate overrides the configured RSF template when non-empty.
	RSFTemplate string
	// RTPDir overrides the configured RTP root when non-empty.
	RTPDir string
	// NoRTP disables runtime package copying for this run.
	NoRTP bool
}

// errBuildUnsuccessful is returned by RunGame when the single game was not built.
var errBuildUnsuccessful = errors.New("build unsuccessful")

// RunGame builds a single game directory. Unlike batch mode, anything but
// a produced package is an error so the process exits non-zero.
func RunGame(ctx context.Context, gameDir string, opts *Options) error {
	ctx = logger.WithName(ctx, "cia-forge")

	builder, release, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	defer release()

	result := builder.Build(ctx, gameDir)
	reportResult(ctx, result)

	if result.Status != StatusSuccess {
		if result.Err != nil {
			return result.Err
		}

		return fmt.Errorf("%w: %s", errBuildUnsuccessful, result.Reason)
	}

	return nil
}

// RunBatch builds every immediate subdirectory of gamesDir in sequence.
// Skips and per-game failures are reported and do not stop the batch,
// nor do they produce a non-zero exit.
func RunBatch(ctx context.Context, gamesDir string, opts *Options) error {
	ctx = logger.WithName(ctx, "cia-forge")

	builder, release, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	defer release()

	entries, err := os.ReadDir(gamesDir)
	if err != nil {
		return fmt.Errorf("read games directory: %w", err)
	}

	var builtCount, skippedCount, failedCount int

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if err = ctx.Err(); err != nil {
			return fmt.Errorf("batch interrupted: %w", err)
		}

		result := builder.Build(ctx, filepath.Join(gamesDir, entry.Name()))
		reportResult(ctx, result)

		switch result.Status {
		case StatusSuccess:
			builtCount++
		case StatusSkipped:
			skippedCount++
		case StatusFailed:
			failedCount++
		}
	}

	logger.Infof(ctx, "Batch finished: %d built, %d skipped, %d failed", builtCount, skippedCount, failedCount)

	return nil
}

// Check verifies the environment without building anything: external tools
// on PATH, the EasyRPG ELF, the RSF template and the installed RTPs.
func Check(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "cia-forge")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if err = checkStaticInputs(cfg); err != nil {
		return err
	}

	repo, err := rtp.NewDirRepository(cfg.RTPDir)
	if err != nil {
		return err
	}

	if codes := repo.Codes(); len(codes) > 0 {
		logger.InfoKV(ctx, "Installed runtime packages", "codes", strings.Join(codes, ", "))
	} else {
		logger.WarnKV(ctx, "No runtime packages installed, non-self-sufficient games will not run on hardware",
			"rtp_dir", cfg.RTPDir)
	}

	logger.Info(ctx, "All prerequisites are in place")

	return nil
}

// loadConfig loads settings and applies command line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	if opts.ElfPath != "" {
		cfg.ElfPath = opts.ElfPath
	}

	if opts.RSFTemplate != "" {
		cfg.RSFTemplate = opts.RSFTemplate
	}

	if opts.RTPDir != "" {
		cfg.RTPDir = opts.RTPDir
	}

	cfg.SkipRTP = opts.NoRTP

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkStaticInputs verifies the tools and fixed assets every build needs.
// Failures here abort the whole run before any game is touched.
func checkStaticInputs(cfg *config.Config) error {
	if err := tools.CheckPrerequisites(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ElfPath); err != nil {
		return fmt.Errorf("EasyRPG ELF not found at %s: %w", cfg.ElfPath, err)
	}

	if _, err := os.Stat(cfg.RSFTemplate); err != nil {
		return fmt.Errorf("RSF template not found at %s: %w", cfg.RSFTemplate, err)
	}

	return nil
}

// setup prepares a Builder and claims the shared temp directory.
// The returned release function must be called when the run is over.
func setup(ctx context.Context, opts *Options) (*Builder, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	if err = checkStaticInputs(cfg); err != nil {
		return nil, nil, err
	}

	repo, err := rtp.NewDirRepository(cfg.RTPDir)
	if err != nil {
		return nil, nil, err
	}

	if len(repo.Codes()) == 0 {
		logger.WarnKV(ctx, "No runtime packages installed", "rtp_dir", cfg.RTPDir)
	}

	release, err := acquireBuildMarker(ctx, cfg.TempDir)
	if err != nil {
		return nil, nil, err
	}

	return New(cfg, tools.NewExecToolchain(), repo), release, nil
}

// reportResult logs one build outcome with enough context to diagnose it.
func reportResult(ctx context.Context, result *Result) {
	switch result.Status {
	case StatusSuccess:
		logger.InfoKV(ctx, "Built", "game", result.Slug, "output", result.OutputPath)
	case StatusSkipped:
		logger.WarnKV(ctx, "Skipped", "game", result.Slug, "reason", result.Reason)
	case StatusFailed:
		logger.ErrorKV(ctx, "Build failed", "game", result.Slug, "error", result.Err)
	}
}
