package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// BannertoolExecutable renders banners and SMDH icons.
	BannertoolExecutable = "bannertool"
	// RomToolExecutable packs ROM filesystem images.
	RomToolExecutable = "3dstool"
	// ComposerExecutable assembles CIA packages.
	ComposerExecutable = "makerom"
)

// ExternalError reports a failed external tool invocation,
// keeping the tool name and its combined output for diagnostics.
type ExternalError struct {
	// Tool is the executable that failed.
	Tool string
	// Output is the trimmed combined stdout/stderr of the failed run.
	Output string
	// Err is the underlying exec error.
	Err error
}

// Error renders the tool name, the exec error and any captured output.
func (e *ExternalError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}

	return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Output)
}

// Unwrap exposes the underlying exec error.
func (e *ExternalError) Unwrap() error {
	return e.Err
}

// run executes a tool synchronously and converts failures into ExternalError.
// The tools are chatty on success, so output is only kept for failures.
func run(ctx context.Context, tool string, args ...string) error {
	output, err := exec.CommandContext(ctx, tool, args...).CombinedOutput()
	if err != nil {
		return &ExternalError{
			Tool:   tool,
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}

	return nil
}

// Bannertool invokes the bannertool executable.
type Bannertool struct{}

var _ BannerGenerator = Bannertool{}

// MakeBanner renders the banner binary from an image and an audio clip.
func (Bannertool) MakeBanner(ctx context.Context, image, audio, output string) error {
	return run(ctx, BannertoolExecutable, "makebanner",
		"-i", image,
		"-a", audio,
		"-o", output)
}

// MakeIcon renders the SMDH icon binary. The title doubles as both the
// short and long home menu captions.
func (Bannertool) MakeIcon(ctx context.Context, image, title, author, output string) error {
	return run(ctx, BannertoolExecutable, "makesmdh",
		"-s", title,
		"-l", title,
		"-p", author,
		"-i", image,
		"-o", output)
}

// RomTool invokes the 3dstool executable.
type RomTool struct{}

var _ FilesystemPacker = RomTool{}

// PackFilesystem packs the game directory into a ROM filesystem image.
func (RomTool) PackFilesystem(ctx context.Context, gameDir, output string) error {
	return run(ctx, RomToolExecutable, "-cvtf", "romfs", output, "--romfs-dir", gameDir)
}

// Makerom invokes the makerom executable.
type Makerom struct{}

var _ PackageComposer = Makerom{}

// ComposeCIA assembles the final package from the staged artifacts.
func (Makerom) ComposeCIA(ctx context.Context, input *ComposeInput) error {
	return run(ctx, ComposerExecutable,
		"-f", "cia",
		"-o", input.OutputPath,
		"-elf", input.ElfPath,
		"-rsf", input.RSFPath,
		"-icon", input.IconPath,
		"-banner", input.BannerPath,
		"-exefslogo",
		"-target", "t",
		"-romfs", input.FilesystemPath)
}
