package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"gopkg.in/ini.v1"
)

// Variant identifies which RPG Maker runtime a game targets.
type Variant string

const (
	// VariantUnknown means no recognized runtime executable was found.
	VariantUnknown Variant = ""
	// Variant2000 is RPG Maker 2000.
	Variant2000 Variant = "2000"
	// Variant2003 is RPG Maker 2003.
	Variant2003 Variant = "2003"
)

const (
	// AssetsDirName is the subdirectory holding 3DS-specific assets.
	AssetsDirName = "3DS"

	// IconFilename is the home menu icon image.
	IconFilename = "icon.png"
	// BannerFilename is the top screen banner image.
	BannerFilename = "banner.png"
	// AudioFilename is the banner audio clip.
	AudioFilename = "audio.wav"
	// MetadataFilename is the per-game metadata file.
	MetadataFilename = "gameinfo.cfg"

	// engineConfigFilename marks a directory as an RPG Maker game.
	engineConfigFilename = "RPG_RT.ini"
	// engineConfigSection is the section of the engine config carrying flags.
	engineConfigSection = "RPG_RT"
	// fullPackageKey marks a game that bundles all RTP assets it needs.
	fullPackageKey = "FullPackageFlag"

	// rm2000Executable ships with RPG Maker 2000 games.
	rm2000Executable = "RPG_RT.exe"
	// rm2003Executable ships with RPG Maker 2003 games (the battle engine binary).
	rm2003Executable = "ultimate_rt_eb.exe"
)

var (
	// ErrNotAGame is returned when a directory has no RPG Maker engine config.
	ErrNotAGame = errors.New("not an RPG Maker 2000/2003 game")
	// ErrNotADirectory is returned when the game path is not a directory.
	ErrNotADirectory = errors.New("not a directory")
)

// Bundle is one game directory together with its 3DS asset set.
type Bundle struct {
	// Root is the game directory containing the engine-readable data.
	Root string
	// Name is the base name of the game directory.
	Name string
}

// Open inspects a path and returns a Bundle when it looks like an RPG Maker game.
func Open(root string) (*Bundle, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat game directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}

	if !IsGame(root) {
		return nil, fmt.Errorf("%s: %w", root, ErrNotAGame)
	}

	return &Bundle{
		Root: filepath.Clean(root),
		Name: filepath.Base(filepath.Clean(root)),
	}, nil
}

// IsGame reports whether a directory contains an RPG Maker 2000/2003 game.
// Both common spellings of the engine config are accepted because games are
// frequently extracted from archives produced on Windows.
func IsGame(root string) bool {
	return fileExists(filepath.Join(root, engineConfigFilename)) ||
		fileExists(filepath.Join(root, "rpg_rt.ini"))
}

// Slug returns the filesystem-safe name used for the output package.
func (b *Bundle) Slug() string {
	return slug.Make(b.Name)
}

// AssetsDir returns the 3DS assets subdirectory of the game.
func (b *Bundle) AssetsDir() string {
	return filepath.Join(b.Root, AssetsDirName)
}

// IconPath returns the location of the home menu icon image.
func (b *Bundle) IconPath() string {
	return filepath.Join(b.AssetsDir(), IconFilename)
}

// BannerPath returns the location of the banner image.
func (b *Bundle) BannerPath() string {
	return filepath.Join(b.AssetsDir(), BannerFilename)
}

// AudioPath returns the location of the banner audio clip.
func (b *Bundle) AudioPath() string {
	return filepath.Join(b.AssetsDir(), AudioFilename)
}

// MetadataPath returns the location of the game metadata file.
func (b *Bundle) MetadataPath() string {
	return filepath.Join(b.AssetsDir(), MetadataFilename)
}

// MissingAssets returns the names of required 3DS assets that are absent.
func (b *Bundle) MissingAssets() []string {
	required := []string{
		AudioFilename,
		BannerFilename,
		IconFilename,
		MetadataFilename,
	}

	var missing []string

	for _, name := range required {
		if !fileExists(filepath.Join(b.AssetsDir(), name)) {
			missing = append(missing, name)
		}
	}

	return missing
}

// Variant detects the targeted runtime from the executables shipped with the game.
// The 2003 battle engine binary wins over the shared RPG_RT.exe when both exist.
func (b *Bundle) Variant() Variant {
	if fileExists(filepath.Join(b.Root, rm2003Executable)) {
		return Variant2003
	}

	if fileExists(filepath.Join(b.Root, rm2000Executable)) {
		return Variant2000
	}

	return VariantUnknown
}

// FullPackage reports whether the game declares itself self-sufficient,
// meaning it bundles every RTP asset it references. A missing or unreadable
// engine config counts as not self-sufficient.
func (b *Bundle) FullPackage() bool {
	cfg, err := ini.Load(filepath.Join(b.Root, engineConfigFilename))
	if err != nil {
		cfg, err = ini.Load(filepath.Join(b.Root, "rpg_rt.ini"))
		if err != nil {
			return false
		}
	}

	return cfg.Section(engineConfigSection).Key(fullPackageKey).MustInt(0) == 1
}

// Metadata reads the game's metadata file fresh from disk.
func (b *Bundle) Metadata() (*Metadata, error) {
	return ReadMetadata(b.MetadataPath())
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
