package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAcquireAndReleaseBuildMarker claims the temp dir and releases it cleanly.
func TestAcquireAndReleaseBuildMarker(t *testing.T) {
	t.Parallel()

	tempDir := filepath.Join(t.TempDir(), "tmp")
	ctx := context.Background()

	release, err := acquireBuildMarker(ctx, tempDir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(tempDir, markerFilename))

	release()
	require.NoFileExists(t, filepath.Join(tempDir, markerFilename))

	// Reacquire after release.
	release, err = acquireBuildMarker(ctx, tempDir)
	require.NoError(t, err)

	release()
}

// TestAcquireRecoversStaleMarker removes a marker left by a dead process.
func TestAcquireRecoversStaleMarker(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, markerFilename), []byte("999999"), 0o600))

	release, err := acquireBuildMarker(context.Background(), tempDir)
	require.NoError(t, err)

	release()
}
