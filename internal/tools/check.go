package tools

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingTools is returned when required external executables are not on PATH.
var ErrMissingTools = errors.New("missing required tools")

// RequiredExecutables lists every external binary the pipeline shells out to.
func RequiredExecutables() []string {
	return []string{
		BannertoolExecutable,
		RomToolExecutable,
		ComposerExecutable,
	}
}

// CheckPrerequisites verifies that every required executable is resolvable
// on PATH. The returned error names all missing tools at once, so the user
// fixes the environment in one pass.
func CheckPrerequisites() error {
	var missing []string

	for _, tool := range RequiredExecutables() {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(missing, ", "))
	}

	return nil
}
