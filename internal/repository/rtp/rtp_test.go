package rtp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/cia-forge/internal/domain/game"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// scaffoldLibrary creates an RTP root with the provided variant codes.
func scaffoldLibrary(t *testing.T, codes ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, code := range codes {
		writeFile(t, filepath.Join(root, code, "Backdrop", "clouds.png"), code)
	}

	return root
}

// TestNewDirRepositoryMissingRoot yields an empty repository, not an error.
func TestNewDirRepositoryMissingRoot(t *testing.T) {
	t.Parallel()

	repo, err := NewDirRepository(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Empty(t, repo.Codes())

	_, err = repo.Resolve("2000-jp", game.Variant2000)
	require.ErrorIs(t, err, ErrNoMatch)
}

// TestResolve covers exact matches, variant fallbacks and the universal replacement.
func TestResolve(t *testing.T) {
	t.Parallel()

	root := scaffoldLibrary(t, "2000-jp", "2003-en-official", "easyrpg")

	repo, err := NewDirRepository(root)
	require.NoError(t, err)
	require.Equal(t, []string{"2000-jp", "2003-en-official", "easyrpg"}, repo.Codes())

	// Exact code.
	match, err := repo.Resolve("2000-jp", game.Variant2000)
	require.NoError(t, err)
	require.Equal(t, "2000-jp", match.Code)
	require.False(t, match.Fallback)

	// Same-variant substitute.
	match, err = repo.Resolve("2003-jp", game.Variant2003)
	require.NoError(t, err)
	require.Equal(t, "2003-en-official", match.Code)
	require.True(t, match.Fallback)

	// No code in metadata: the variant decides.
	match, err = repo.Resolve("", game.Variant2000)
	require.NoError(t, err)
	require.Equal(t, "2000-jp", match.Code)
	require.False(t, match.Fallback)

	// Unknown variant falls through to the universal replacement.
	match, err = repo.Resolve("2000-ru", game.VariantUnknown)
	require.NoError(t, err)
	require.Equal(t, "easyrpg", match.Code)
}

// TestCopyIntoNeverOverwrites keeps game-provided files intact across copies.
func TestCopyIntoNeverOverwrites(t *testing.T) {
	t.Parallel()

	root := scaffoldLibrary(t, "2000-jp")

	repo, err := NewDirRepository(root)
	require.NoError(t, err)

	match, err := repo.Resolve("2000-jp", game.Variant2000)
	require.NoError(t, err)

	gameRoot := t.TempDir()
	custom := filepath.Join(gameRoot, "Backdrop", "clouds.png")
	writeFile(t, custom, "game-provided")

	ctx := context.Background()
	require.NoError(t, repo.CopyInto(ctx, match, gameRoot))

	contents, err := os.ReadFile(custom)
	require.NoError(t, err)
	require.Equal(t, "game-provided", string(contents))

	// Running the copy twice changes nothing.
	require.NoError(t, repo.CopyInto(ctx, match, gameRoot))

	contents, err = os.ReadFile(custom)
	require.NoError(t, err)
	require.Equal(t, "game-provided", string(contents))
}
