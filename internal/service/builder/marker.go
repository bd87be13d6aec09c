package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/cia-forge/internal/config"
	"github.com/oshokin/cia-forge/internal/logger"
)

// markerFilename marks that a build is running right now. All builds share
// one temporary directory, so parallel invocations would corrupt each
// other's artifacts and must be refused.
const markerFilename = "cia-forge-build-marker.bin"

// errBuildRunning indicates another cia-forge invocation owns the temp directory.
var errBuildRunning = errors.New("another build is running now")

// acquireBuildMarker claims the shared temporary directory for this process.
// A leftover marker from a crashed run is removed when no other cia-forge
// process is alive; otherwise the caller must not start building.
func acquireBuildMarker(ctx context.Context, tempDir string) (func(), error) {
	if err := os.MkdirAll(tempDir, config.DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	path := filepath.Join(tempDir, markerFilename)

	if _, err := os.Stat(path); err == nil {
		if isAnotherBuildRunning(ctx) {
			return nil, errBuildRunning
		}

		logger.Info(ctx, "Removing stale build marker")

		if err = os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale build marker: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read build marker: %w", err)
	}

	contents := []byte(strconv.Itoa(os.Getpid()))
	if err := os.WriteFile(path, contents, config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write build marker: %w", err)
	}

	release := func() {
		_ = os.Remove(path)
	}

	return release, nil
}

// isAnotherBuildRunning scans the process table for a second cia-forge
// instance. Errors are treated as "running" to stay on the safe side.
func isAnotherBuildRunning(ctx context.Context) bool {
	processList, err := ps.Processes()
	if err != nil {
		logger.Infof(ctx, "Unable to list processes: %v", err)
		return true
	}

	var (
		thisProcessID = os.Getpid()
		selfName      = executableName()
	)

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == selfName {
			return true
		}
	}

	return false
}

// executableName returns the base name of the running binary.
func executableName() string {
	executable, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(executable)
}
