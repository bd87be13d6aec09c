package builder

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/oshokin/cia-forge/internal/domain/game"
)

// defaultAssets holds CRC32 checksums of the stock 3DS assets shipped with
// the tool. Games still carrying them are flagged: every game should have
// its own icon, and a stock gameinfo.cfg means nobody filled the metadata.
type defaultAssets struct {
	// checksums maps asset filenames to the CRC32 of the shipped default.
	checksums map[string]uint32
}

// loadDefaultAssets reads the shipped defaults from dir.
// It returns nil when the directory or any default file is absent,
// which silently disables the check.
func loadDefaultAssets(dir string) *defaultAssets {
	names := []string{
		game.AudioFilename,
		game.BannerFilename,
		game.IconFilename,
		game.MetadataFilename,
	}

	checksums := make(map[string]uint32, len(names))

	for _, name := range names {
		sum, err := fileChecksum(filepath.Join(dir, name))
		if err != nil {
			return nil
		}

		checksums[name] = sum
	}

	return &defaultAssets{checksums: checksums}
}

// matches returns the names of the bundle's assets that are byte-identical
// to the shipped defaults.
func (d *defaultAssets) matches(bundle *game.Bundle) []string {
	var matched []string

	for _, name := range []string{
		game.AudioFilename,
		game.BannerFilename,
		game.IconFilename,
		game.MetadataFilename,
	} {
		sum, err := fileChecksum(filepath.Join(bundle.AssetsDir(), name))
		if err != nil {
			continue
		}

		if sum == d.checksums[name] {
			matched = append(matched, name)
		}
	}

	return matched
}

// fileChecksum calculates the CRC32 of a file.
func fileChecksum(path string) (uint32, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("checksum %s: %w", path, err)
	}

	return crc32.ChecksumIEEE(contents), nil
}
