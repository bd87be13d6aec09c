package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oshokin/cia-forge/internal/config"
	"github.com/oshokin/cia-forge/internal/domain/game"
	"github.com/oshokin/cia-forge/internal/logger"
	"github.com/oshokin/cia-forge/internal/repository/rtp"
	"github.com/oshokin/cia-forge/internal/rsf"
	"github.com/oshokin/cia-forge/internal/tools"
)

// Temporary artifact names inside the shared temp directory.
// The external tools expect plain file paths, so the names are fixed.
const (
	bannerArtifact     = "banner.bin"
	iconArtifact       = "icon.bin"
	filesystemArtifact = "romfs.bin"
	rsfArtifact        = "spec.rsf"

	// packageExtension is appended to the game slug for the output file.
	packageExtension = ".cia"
)

// errDefaultMetadata fails a build whose gameinfo.cfg is the stock file.
var errDefaultMetadata = errors.New("gameinfo.cfg is the shipped default, fill in the game metadata")

// Builder turns one game directory into one CIA package.
// It owns the shared temporary directory for the duration of a run
// and must not be used from multiple goroutines.
type Builder struct {
	// cfg provides every filesystem location the pipeline touches.
	cfg *config.Config
	// toolchain invokes the external packaging binaries.
	toolchain *tools.Toolchain
	// rtpRepo resolves and stages runtime package assets.
	rtpRepo rtp.Repository
	// defaults carries checksums of the stock assets, nil when unavailable.
	defaults *defaultAssets
}

// New creates a Builder over the provided configuration and collaborators.
func New(cfg *config.Config, toolchain *tools.Toolchain, rtpRepo rtp.Repository) *Builder {
	return &Builder{
		cfg:       cfg,
		toolchain: toolchain,
		rtpRepo:   rtpRepo,
		defaults:  loadDefaultAssets(cfg.DefaultsDir),
	}
}

// Build runs the full pipeline for one game directory:
// validation, RTP staging, banner/icon generation, filesystem packing,
// RSF materialization and final composition. Incomplete inputs produce a
// skip; a failing external tool fails this game only. The temp directory
// is emptied afterwards in either case.
func (b *Builder) Build(ctx context.Context, gameDir string) *Result {
	name := filepath.Base(filepath.Clean(gameDir))
	ctx = logger.WithKV(ctx, "game", name)

	bundle, err := game.Open(gameDir)
	if err != nil {
		return skipped(name, err.Error())
	}

	slugName := bundle.Slug()

	if missing := bundle.MissingAssets(); len(missing) > 0 {
		return skipped(slugName, "missing 3DS assets: "+strings.Join(missing, ", "))
	}

	metadata, err := bundle.Metadata()
	if err != nil {
		return skipped(slugName, err.Error())
	}

	if err = metadata.Validate(); err != nil {
		return skipped(slugName, err.Error())
	}

	if b.defaults != nil {
		matched := b.defaults.matches(bundle)
		if slices.Contains(matched, game.MetadataFilename) {
			return failed(slugName, errDefaultMetadata)
		}

		if len(matched) > 1 {
			logger.WarnKV(ctx, "Game still uses stock assets", "assets", strings.Join(matched, ", "))
		}
	}

	if err = b.stageRTP(ctx, bundle, metadata); err != nil {
		return failed(slugName, err)
	}

	// Idempotent: a leftover directory from an interrupted run is fine,
	// its contents are replaced below and removed afterwards.
	if err = os.MkdirAll(b.cfg.TempDir, config.DefaultDirPermissions); err != nil {
		return failed(slugName, fmt.Errorf("create temp directory: %w", err))
	}

	defer b.cleanupTemp(ctx)

	var (
		bannerPath     = filepath.Join(b.cfg.TempDir, bannerArtifact)
		iconPath       = filepath.Join(b.cfg.TempDir, iconArtifact)
		filesystemPath = filepath.Join(b.cfg.TempDir, filesystemArtifact)
		rsfPath        = filepath.Join(b.cfg.TempDir, rsfArtifact)
	)

	if err = b.toolchain.Banner.MakeBanner(ctx, bundle.BannerPath(), bundle.AudioPath(), bannerPath); err != nil {
		return failed(slugName, err)
	}

	if err = b.toolchain.Banner.MakeIcon(ctx, bundle.IconPath(), metadata.Title, metadata.Author, iconPath); err != nil {
		return failed(slugName, err)
	}

	if err = b.toolchain.Packer.PackFilesystem(ctx, bundle.Root, filesystemPath); err != nil {
		return failed(slugName, err)
	}

	if err = rsf.Materialize(b.cfg.RSFTemplate, rsfPath, metadata.UniqueID); err != nil {
		return failed(slugName, err)
	}

	if err = os.MkdirAll(b.cfg.OutputDir, config.DefaultDirPermissions); err != nil {
		return failed(slugName, fmt.Errorf("create output directory: %w", err))
	}

	outputPath := filepath.Join(b.cfg.OutputDir, slugName+packageExtension)

	composeInput := &tools.ComposeInput{
		ElfPath:        b.cfg.ElfPath,
		RSFPath:        rsfPath,
		IconPath:       iconPath,
		BannerPath:     bannerPath,
		FilesystemPath: filesystemPath,
		OutputPath:     outputPath,
	}
	if err = b.toolchain.Composer.ComposeCIA(ctx, composeInput); err != nil {
		return failed(slugName, err)
	}

	logger.InfoKV(ctx, "Package built", "output", outputPath)

	return success(slugName, outputPath)
}

// stageRTP copies the runtime package the game depends on into its root.
// Self-sufficient games and --no-rtp runs copy nothing; a missing runtime
// package is a warning because the user may ship it separately.
func (b *Builder) stageRTP(ctx context.Context, bundle *game.Bundle, metadata *game.Metadata) error {
	if bundle.FullPackage() {
		logger.Debugf(ctx, "Game is self-sufficient, no RTP needed")
		return nil
	}

	if b.cfg.SkipRTP {
		logger.WarnKV(ctx, "Game depends on an RTP but copying is disabled, the package may not run on hardware",
			"rtp", metadata.RTP)

		return nil
	}

	match, err := b.rtpRepo.Resolve(metadata.RTP, bundle.Variant())
	if err != nil {
		if errors.Is(err, rtp.ErrNoMatch) {
			logger.WarnKV(ctx, "No matching runtime package installed, the package may not run on hardware",
				"rtp", metadata.RTP, "variant", string(bundle.Variant()))

			return nil
		}

		return err
	}

	if match.Fallback {
		logger.WarnKV(ctx, "Requested RTP is not installed, substituting a same-variant one",
			"wanted", metadata.RTP, "using", match.Code)
	}

	logger.InfoKV(ctx, "Copying runtime package into the game", "rtp", match.Code)

	return b.rtpRepo.CopyInto(ctx, match, bundle.Root)
}

// cleanupTemp empties the shared temp directory so stale artifacts never
// leak into the next game's build. The build marker survives the sweep.
func (b *Builder) cleanupTemp(ctx context.Context) {
	entries, err := os.ReadDir(b.cfg.TempDir)
	if err != nil {
		logger.Warnf(ctx, "Unable to read temp directory for cleanup: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.Name() == markerFilename {
			continue
		}

		if err = os.RemoveAll(filepath.Join(b.cfg.TempDir, entry.Name())); err != nil {
			logger.Warnf(ctx, "Unable to remove temp artifact %s: %v", entry.Name(), err)
		}
	}
}
