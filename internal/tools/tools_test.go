package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExternalErrorRendering includes the tool name and captured output.
func TestExternalErrorRendering(t *testing.T) {
	t.Parallel()

	underlying := errors.New("exit status 1")
	err := &ExternalError{Tool: "makerom", Output: "bad RSF", Err: underlying}

	require.Contains(t, err.Error(), "makerom")
	require.Contains(t, err.Error(), "bad RSF")
	require.ErrorIs(t, err, underlying)

	bare := &ExternalError{Tool: "3dstool", Err: underlying}
	require.Contains(t, bare.Error(), "3dstool")
}

// TestRunMissingBinary converts exec failures into ExternalError.
func TestRunMissingBinary(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), "cia-forge-no-such-binary")
	require.Error(t, err)

	var externalErr *ExternalError
	require.ErrorAs(t, err, &externalErr)
	require.Equal(t, "cia-forge-no-such-binary", externalErr.Tool)
}

// TestCheckPrerequisitesNamesEveryMissingTool reports all gaps in one error.
func TestCheckPrerequisitesNamesEveryMissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := CheckPrerequisites()
	require.ErrorIs(t, err, ErrMissingTools)

	for _, tool := range RequiredExecutables() {
		require.True(t, strings.Contains(err.Error(), tool), "error should name %s", tool)
	}
}
