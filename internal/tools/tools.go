package tools

import "context"

// BannerGenerator produces the banner and icon binaries consumed by the composer.
// The two outputs are independent of each other.
type BannerGenerator interface {
	// MakeBanner renders the top screen banner from an image and an audio clip.
	MakeBanner(ctx context.Context, image, audio, output string) error
	// MakeIcon renders the SMDH home menu icon carrying title and author.
	MakeIcon(ctx context.Context, image, title, author, output string) error
}

// FilesystemPacker packs a game directory into a ROM filesystem image.
type FilesystemPacker interface {
	PackFilesystem(ctx context.Context, gameDir, output string) error
}

// ComposeInput names every artifact the composer needs to produce a CIA.
type ComposeInput struct {
	// ElfPath is the EasyRPG Player executable.
	ElfPath string
	// RSFPath is the materialized ROM spec with the game's unique ID.
	RSFPath string
	// IconPath is the SMDH icon binary.
	IconPath string
	// BannerPath is the banner binary.
	BannerPath string
	// FilesystemPath is the packed ROM filesystem image.
	FilesystemPath string
	// OutputPath is the final .cia location.
	OutputPath string
}

// PackageComposer assembles the final installable package.
type PackageComposer interface {
	ComposeCIA(ctx context.Context, input *ComposeInput) error
}

// Toolchain groups the three external capabilities the pipeline needs.
type Toolchain struct {
	Banner   BannerGenerator
	Packer   FilesystemPacker
	Composer PackageComposer
}

// NewExecToolchain returns a toolchain backed by the real external binaries.
func NewExecToolchain() *Toolchain {
	return &Toolchain{
		Banner:   Bannertool{},
		Packer:   RomTool{},
		Composer: Makerom{},
	}
}
