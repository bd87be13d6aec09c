package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// scaffoldGame creates a minimal valid game directory and returns its root.
func scaffoldGame(t *testing.T, name string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	writeFile(t, filepath.Join(root, "RPG_RT.ini"), "[RPG_RT]\nGameTitle=Test\n")
	writeFile(t, filepath.Join(root, AssetsDirName, IconFilename), "png")
	writeFile(t, filepath.Join(root, AssetsDirName, BannerFilename), "png")
	writeFile(t, filepath.Join(root, AssetsDirName, AudioFilename), "wav")
	writeFile(t, filepath.Join(root, AssetsDirName, MetadataFilename),
		"[metadata]\ncia_id = 8D29C9\ntitle = Test Game\nauthor = Tester\n")

	return root
}

// TestOpen accepts game directories and rejects everything else.
func TestOpen(t *testing.T) {
	t.Parallel()

	root := scaffoldGame(t, "My Game")

	bundle, err := Open(root)
	require.NoError(t, err)
	require.Equal(t, "My Game", bundle.Name)
	require.Equal(t, "my-game", bundle.Slug())

	_, err = Open(t.TempDir())
	require.ErrorIs(t, err, ErrNotAGame)

	_, err = Open(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

// TestMissingAssets lists absent required files by name.
func TestMissingAssets(t *testing.T) {
	t.Parallel()

	root := scaffoldGame(t, "game")
	require.NoError(t, os.Remove(filepath.Join(root, AssetsDirName, BannerFilename)))
	require.NoError(t, os.Remove(filepath.Join(root, AssetsDirName, AudioFilename)))

	bundle, err := Open(root)
	require.NoError(t, err)
	require.Equal(t, []string{AudioFilename, BannerFilename}, bundle.MissingAssets())
}

// TestVariantDetection resolves the runtime from shipped executables.
func TestVariantDetection(t *testing.T) {
	t.Parallel()

	root := scaffoldGame(t, "game")
	bundle, err := Open(root)
	require.NoError(t, err)
	require.Equal(t, VariantUnknown, bundle.Variant())

	writeFile(t, filepath.Join(root, "RPG_RT.exe"), "MZ")
	require.Equal(t, Variant2000, bundle.Variant())

	// The 2003 battle engine binary wins when both are present.
	writeFile(t, filepath.Join(root, "ultimate_rt_eb.exe"), "MZ")
	require.Equal(t, Variant2003, bundle.Variant())
}

// TestFullPackageFlag reads the self-sufficiency flag from the engine config.
func TestFullPackageFlag(t *testing.T) {
	t.Parallel()

	root := scaffoldGame(t, "game")
	bundle, err := Open(root)
	require.NoError(t, err)
	require.False(t, bundle.FullPackage())

	writeFile(t, filepath.Join(root, "RPG_RT.ini"), "[RPG_RT]\nGameTitle=Test\nFullPackageFlag=1\n")
	require.True(t, bundle.FullPackage())
}

// TestReadMetadata parses gameinfo.cfg permissively.
func TestReadMetadata(t *testing.T) {
	t.Parallel()

	root := scaffoldGame(t, "game")
	bundle, err := Open(root)
	require.NoError(t, err)

	metadata, err := bundle.Metadata()
	require.NoError(t, err)
	require.Equal(t, "8D29C9", metadata.UniqueID)
	require.Equal(t, "Test Game", metadata.Title)
	require.Equal(t, "Tester", metadata.Author)
	require.Empty(t, metadata.RTP)
}

// TestMetadataValidate covers required fields, placeholder and format checks.
func TestMetadataValidate(t *testing.T) {
	t.Parallel()

	valid := &Metadata{UniqueID: "8D29C9", Title: "T", Author: "A"}
	require.NoError(t, valid.Validate())

	missing := &Metadata{UniqueID: "8D29C9"}
	err := missing.Validate()
	require.ErrorIs(t, err, ErrIncompleteMetadata)
	require.Contains(t, err.Error(), "title")
	require.Contains(t, err.Error(), "author")

	placeholder := &Metadata{UniqueID: PlaceholderUniqueID, Title: "T", Author: "A"}
	err = placeholder.Validate()
	require.ErrorIs(t, err, ErrPlaceholderUniqueID)
	require.Contains(t, err.Error(), "unique ID")

	short := &Metadata{UniqueID: "8D2", Title: "T", Author: "A"}
	require.ErrorIs(t, short.Validate(), ErrInvalidUniqueID)

	notHex := &Metadata{UniqueID: "8D29CZ", Title: "T", Author: "A"}
	require.ErrorIs(t, notHex.Validate(), ErrInvalidUniqueID)
}
